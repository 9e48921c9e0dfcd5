package site

import (
	"context"
	"strings"

	"github.com/goliatone/go-coursesite/pkg/interfaces"
	artifacts "github.com/goliatone/go-coursesite/pkg/storage"
)

type writeCategory string

const (
	categoryPage       writeCategory = "page"
	categoryStylesheet writeCategory = "stylesheet"
	categoryManifest   writeCategory = "manifest"
)

func (c writeCategory) contentType() string {
	switch c {
	case categoryStylesheet:
		return cssType
	case categoryManifest:
		return jsonType
	default:
		return htmlType
	}
}

// outputTree is where a build lands. Paths are relative to the output
// directory and "." names the directory itself.
type outputTree interface {
	Clear(ctx context.Context) error
	Mkdir(ctx context.Context, dir string) error
	Put(ctx context.Context, page RenderedPage) (int64, error)
}

func newOutputTree(storage interfaces.StorageProvider, dryRun bool) outputTree {
	if storage == nil || dryRun {
		return discardTree{}
	}
	return providerTree{storage: storage}
}

// providerTree issues storage provider operations. Put passes the path and
// body first, followed by size, category, content type and checksum for
// providers that record metadata.
type providerTree struct {
	storage interfaces.StorageProvider
}

func (t providerTree) Clear(ctx context.Context) error {
	_, err := t.storage.Exec(ctx, artifacts.OpRemove, ".")
	return err
}

func (t providerTree) Mkdir(ctx context.Context, dir string) error {
	if dir == "" {
		dir = "."
	}
	_, err := t.storage.Exec(ctx, artifacts.OpEnsureDir, dir)
	return err
}

func (t providerTree) Put(ctx context.Context, page RenderedPage) (int64, error) {
	size := int64(len(page.Content))
	_, err := t.storage.Exec(ctx, artifacts.OpWrite,
		page.Path,
		strings.NewReader(page.Content),
		size,
		string(page.category),
		page.category.contentType(),
		page.Checksum,
	)
	return size, err
}

// discardTree backs dry runs.
type discardTree struct{}

func (discardTree) Clear(context.Context) error { return nil }

func (discardTree) Mkdir(context.Context, string) error { return nil }

func (discardTree) Put(_ context.Context, page RenderedPage) (int64, error) {
	return int64(len(page.Content)), nil
}
