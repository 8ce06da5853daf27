package app

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/semanario-hq/semanario/internal/config"
	"github.com/semanario-hq/semanario/internal/domain"
	"github.com/semanario-hq/semanario/internal/logger"
	"github.com/semanario-hq/semanario/internal/storage"
	"github.com/semanario-hq/semanario/pkg/publishers"
)

type stubFetcher struct {
	items []domain.Bookmark
	err   error
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) ([]domain.Bookmark, error) {
	return s.items, s.err
}

// gatedFetcher blocks its first call until released; later calls return
// immediately with a different result set.
type gatedFetcher struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
	slow    []domain.Bookmark
	fast    []domain.Bookmark
}

func (g *gatedFetcher) Fetch(_ context.Context, _ string) ([]domain.Bookmark, error) {
	g.mu.Lock()
	g.calls++
	first := g.calls == 1
	g.mu.Unlock()

	if first {
		close(g.started)
		<-g.release
		return g.slow, nil
	}
	return g.fast, nil
}

type countingPublisher struct {
	mu    sync.Mutex
	count int
}

func (c *countingPublisher) ID() string   { return "counter" }
func (c *countingPublisher) Type() string { return "test" }
func (c *countingPublisher) Publish(context.Context, publishers.Digest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return nil
}

func (c *countingPublisher) published() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func newTestDigest(fetcher BookmarkFetcher, pub publishers.Publisher, out *bytes.Buffer) *Digest {
	var pubs []publishers.Publisher
	if pub != nil {
		pubs = append(pubs, pub)
	}
	return &Digest{
		cfg:     &config.Config{},
		fetcher: fetcher,
		fanout:  publishers.NewFanout(pubs),
		log:     logger.NopLogger{},
		token:   "tok",
		rng:     domain.DateRange{Start: "2024-05-13", End: "2024-05-19"},
		out:     out,
	}
}

func TestRefreshRendersAndPublishes(t *testing.T) {
	var out bytes.Buffer
	pub := &countingPublisher{}
	d := newTestDigest(&stubFetcher{items: []domain.Bookmark{
		{Title: "Foo", Link: "https://example.com/a", Tags: []string{"design/ui"}, Created: "2024-05-14T10:00:00Z"},
		{Title: "Old", Link: "https://example.com/old", Created: "2023-01-01T10:00:00Z"},
	}}, pub, &out)

	if err := d.refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Bookmarks 2024-05-13..2024-05-19 (1)") {
		t.Errorf("missing filtered card header:\n%s", text)
	}
	if !strings.Contains(text, "## diseño") {
		t.Errorf("missing rendered markdown:\n%s", text)
	}
	if strings.Contains(text, "Old") {
		t.Errorf("out-of-range bookmark displayed:\n%s", text)
	}
	if pub.published() != 1 {
		t.Errorf("published %d times, want 1", pub.published())
	}
}

func TestRefreshStaleResultIsDropped(t *testing.T) {
	var out bytes.Buffer
	pub := &countingPublisher{}

	fetcher := &gatedFetcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
		slow:    []domain.Bookmark{{Title: "Slow", Link: "https://example.com/slow", Created: "2024-05-14T10:00:00Z"}},
		fast:    []domain.Bookmark{{Title: "Fresh", Link: "https://example.com/fresh", Created: "2024-05-14T10:00:00Z"}},
	}
	d := newTestDigest(fetcher, pub, &out)

	done := make(chan error, 1)
	go func() { done <- d.refresh(context.Background()) }()

	// Supersede the in-flight refresh while its fetch is still outstanding.
	<-fetcher.started
	if err := d.refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	close(fetcher.release)
	if err := <-done; err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	text := out.String()
	if strings.Contains(text, "Slow") {
		t.Errorf("stale refresh result displayed:\n%s", text)
	}
	if !strings.Contains(text, "Fresh") {
		t.Errorf("fresh refresh result missing:\n%s", text)
	}
	if pub.published() != 1 {
		t.Errorf("published %d times, want 1 (stale run must not publish)", pub.published())
	}
}

func TestResolveTokenPersistsSuppliedToken(t *testing.T) {
	store, err := storage.NewStore("bbolt", t.TempDir()+"/cred.db")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	cfg := &config.Config{RaindropToken: "fresh-token"}
	token, err := resolveToken(cfg, store)
	if err != nil {
		t.Fatalf("resolveToken: %v", err)
	}
	if token != "fresh-token" {
		t.Errorf("token = %q", token)
	}

	saved, _ := store.Token()
	if saved != "fresh-token" {
		t.Errorf("supplied token not persisted, stored %q", saved)
	}

	// A later run without an explicit token falls back to the stored one.
	token, err = resolveToken(&config.Config{}, store)
	if err != nil || token != "fresh-token" {
		t.Errorf("stored token not used: %q err=%v", token, err)
	}
}

func TestResolveTokenMissingEverywhere(t *testing.T) {
	store, _ := storage.NewStore("none", "")
	if _, err := resolveToken(&config.Config{}, store); err == nil {
		t.Fatal("expected error when no token is available anywhere")
	}
}

func TestRenderCards(t *testing.T) {
	got := renderCards([]domain.Bookmark{
		{Title: "Foo", Link: "https://example.com/a", Tags: []string{"design/ui", "misc"}, Cover: "https://img/c.png"},
		{Title: "Bare", Link: "https://example.com/b"},
	})

	for _, want := range []string{
		"* Foo",
		"  https://example.com/a",
		"  tags: design/ui, misc",
		"  cover: https://img/c.png",
		"* Bare",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("cards missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Bare\n  https://example.com/b\n  tags:") {
		t.Errorf("tag line rendered for tag-less bookmark:\n%s", got)
	}
}
