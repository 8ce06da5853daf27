package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/semanario-hq/semanario/internal/config"
	"github.com/semanario-hq/semanario/internal/domain"
	"github.com/semanario-hq/semanario/internal/filter"
	"github.com/semanario-hq/semanario/internal/logger"
	"github.com/semanario-hq/semanario/internal/markdown"
	"github.com/semanario-hq/semanario/internal/scraper"
	"github.com/semanario-hq/semanario/internal/storage"
	"github.com/semanario-hq/semanario/internal/week"
	"github.com/semanario-hq/semanario/pkg/httpclient"
	"github.com/semanario-hq/semanario/pkg/publishers"
	"github.com/semanario-hq/semanario/pkg/raindrop"
)

// BookmarkFetcher retrieves the full bookmark set for a token.
type BookmarkFetcher interface {
	Fetch(ctx context.Context, token string) ([]domain.Bookmark, error)
}

// Enricher fills in metadata missing from fetched bookmarks.
type Enricher interface {
	Enrich(ctx context.Context, bookmarks []domain.Bookmark) []domain.Bookmark
}

// Digest wires the fetch → filter → render pipeline and owns the refresh
// lifecycle. Refreshes are stamped with a sequence number; only the run
// holding the newest stamp when its fetch completes may display and publish,
// so a slow fetch for an abandoned refresh never clobbers a newer result.
type Digest struct {
	cfg      *config.Config
	store    storage.Store
	fetcher  BookmarkFetcher
	enricher Enricher
	fanout   *publishers.Fanout
	log      logger.Logger

	token string
	rng   domain.DateRange

	seq atomic.Uint64
	mu  sync.Mutex // serializes writes to out
	out io.Writer
}

// New builds the digest runtime: credential store, raindrop client, optional
// cover enrichment, and the configured publisher fan-out.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*Digest, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath)
	if err != nil {
		return nil, fmt.Errorf("init credential storage: %w", err)
	}

	token, err := resolveToken(cfg, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	fetcher := raindrop.NewClient(httpclient.NewRestyClient(cfg.FetchTimeout), cfg.RaindropBaseURL)

	var enricher Enricher
	if cfg.EnrichCovers {
		enricher = scraper.New(nil, cfg.ScrapeDelay)
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	rng := domain.DateRange{Start: cfg.DateFrom, End: cfg.DateTo}
	if cfg.DateFrom == "" && cfg.DateTo == "" {
		rng = week.Current(time.Now())
	}

	log.InfoObj("digest runtime ready", "digest_meta", map[string]any{
		"range":            rng.Start + ".." + rng.End,
		"enrich_covers":    cfg.EnrichCovers,
		"publishers_count": fanout.Size(),
		"watch":            cfg.Watch,
	})

	return &Digest{
		cfg:      cfg,
		store:    store,
		fetcher:  fetcher,
		enricher: enricher,
		fanout:   fanout,
		log:      log,
		token:    token,
		rng:      rng,
		out:      os.Stdout,
	}, nil
}

// resolveToken picks the credential: an explicitly supplied token wins and is
// persisted for later runs; otherwise the stored one is used.
func resolveToken(cfg *config.Config, store storage.Store) (string, error) {
	supplied := strings.TrimSpace(cfg.RaindropToken)

	stored, err := store.Token()
	if err != nil {
		return "", fmt.Errorf("read stored token: %w", err)
	}

	if supplied != "" {
		if supplied != stored {
			if err := store.SaveToken(supplied); err != nil {
				return "", fmt.Errorf("persist token: %w", err)
			}
		}
		return supplied, nil
	}
	if stored != "" {
		return stored, nil
	}
	return "", errors.New("no raindrop token: pass -token or set RAINDROP_TOKEN")
}

// buildFanout loads and instantiates publishers when a file is configured.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(cfg.PublishersFile) == "" {
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), reg.Enabled(), log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	return publishers.NewFanout(pubs), nil
}

// Run executes one refresh, or keeps refreshing on the watch interval until
// the context is cancelled.
func (d *Digest) Run(ctx context.Context) error {
	if d == nil || d.fetcher == nil {
		return fmt.Errorf("digest runtime is not initialized")
	}

	if !d.cfg.Watch {
		return d.refresh(ctx)
	}

	if err := d.refresh(ctx); err != nil {
		d.log.ErrorObj("initial refresh failed", "error", err)
	}

	ticker := time.NewTicker(d.cfg.WatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.InfoObj("watch loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := d.refresh(ctx); err != nil {
				d.log.ErrorObj("scheduled refresh failed", "error", err)
			}
		}
	}
}

// refresh fetches, filters, renders, displays, and publishes one digest.
func (d *Digest) refresh(ctx context.Context) error {
	seq := d.seq.Add(1)
	start := time.Now()

	bookmarks, err := d.fetcher.Fetch(ctx, d.token)
	if err != nil {
		return fmt.Errorf("fetch bookmarks: %w", err)
	}

	if d.enricher != nil {
		bookmarks = d.enricher.Enrich(ctx, bookmarks)
	}

	// a newer refresh has started since this fetch went out: drop it
	if d.seq.Load() != seq {
		d.log.WarnObj("stale refresh result dropped", "refresh_meta", map[string]any{
			"seq":    seq,
			"newest": d.seq.Load(),
		})
		return nil
	}

	filtered := filter.ByRange(bookmarks, d.rng)
	rendered := markdown.Render(filtered)

	d.display(filtered, rendered)

	count, err := d.fanout.Publish(ctx, publishers.NewDigest(d.rng, len(filtered), rendered))
	if err != nil {
		d.log.ErrorObj("digest publish failed", "publish_error", err.Error())
	}

	d.log.InfoObj("refresh completed", "refresh_meta", map[string]any{
		"seq":              seq,
		"fetched":          len(bookmarks),
		"in_range":         len(filtered),
		"published":        count,
		"elapsed_ms":       time.Since(start).Milliseconds(),
		"publishers_count": d.fanout.Size(),
	})
	return err
}

// display writes the bookmark cards and the generated markdown to out.
func (d *Digest) display(bookmarks []domain.Bookmark, rendered string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintf(d.out, "Bookmarks %s..%s (%d)\n\n", d.rng.Start, d.rng.End, len(bookmarks))
	fmt.Fprint(d.out, renderCards(bookmarks))
	fmt.Fprintln(d.out, "---")
	if rendered != "" {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, rendered)
	}
}

// renderCards produces the plain-text card listing: title, link, tags, and
// cover when present.
func renderCards(bookmarks []domain.Bookmark) string {
	var sb strings.Builder
	for _, b := range bookmarks {
		sb.WriteString("* ")
		sb.WriteString(b.Title)
		sb.WriteString("\n  ")
		sb.WriteString(b.Link)
		sb.WriteString("\n")
		if len(b.Tags) > 0 {
			sb.WriteString("  tags: ")
			sb.WriteString(strings.Join(b.Tags, ", "))
			sb.WriteString("\n")
		}
		if b.Cover != "" {
			sb.WriteString("  cover: ")
			sb.WriteString(b.Cover)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Close releases the credential store.
func (d *Digest) Close() {
	if d == nil || d.store == nil {
		return
	}
	if err := d.store.Close(); err != nil {
		d.log.ErrorObj("credential storage close failed", "error", err)
	}
}
