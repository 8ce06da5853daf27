package publishers

import "context"

// Publisher delivers a rendered digest to a downstream sink (file, HTTP,
// SQS, SNS, Pub/Sub).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, d Digest) error
}
