package site_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-coursesite/internal/adapters/storage"
	"github.com/goliatone/go-coursesite/internal/markdown"
	"github.com/goliatone/go-coursesite/pkg/site"
)

func TestNewServiceBuildsThroughFacade(t *testing.T) {
	provider := storage.NewMemory()
	svc := site.NewService(site.Config{OutputDir: "out"}, site.Dependencies{
		Lessons: fstest.MapFS{
			"L01-demo/overview.md":   {Data: []byte("# Demo\n")},
			"L01-demo/assessment.md": {Data: []byte("Done?\n")},
		},
		Renderer: markdown.NewService(markdown.Config{}, nil, nil),
		Storage:  provider,
	})

	result, err := svc.Build(context.Background(), site.BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Summary() != "Generated site for 1 lessons at: out" {
		t.Fatalf("unexpected summary %q", result.Summary())
	}
	data, ok := provider.File("style.css")
	if !ok || string(data) != site.Stylesheet() {
		t.Fatalf("expected stylesheet to be written")
	}
}
