package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-coursesite/pkg/interfaces"
	artifacts "github.com/goliatone/go-coursesite/pkg/storage"
)

var (
	// ErrReadOnly is returned for mutations against a read-only provider.
	ErrReadOnly = errors.New("storage: provider is read-only")
	// ErrPathOutsideRoot is returned when a relative path resolves outside the root.
	ErrPathOutsideRoot = errors.New("storage: path escapes root")
)

// FilesystemProvider writes artifacts below a root directory. Paths passed to
// the operations are slash separated and relative to the root.
type FilesystemProvider struct {
	cfg artifacts.Config
}

// NewFilesystem returns a provider rooted at cfg.Root.
func NewFilesystem(cfg artifacts.Config) (*FilesystemProvider, error) {
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		return nil, errors.New("storage: filesystem provider requires a root")
	}
	cfg.Root = filepath.Clean(root)
	if cfg.Driver == "" {
		cfg.Driver = "filesystem"
	}
	return &FilesystemProvider{cfg: cfg}, nil
}

// Root returns the cleaned root directory.
func (s *FilesystemProvider) Root() string {
	return s.cfg.Root
}

func (s *FilesystemProvider) Capabilities() artifacts.Capabilities {
	return artifacts.Capabilities{
		Persistent: true,
		Metadata: map[string]any{
			"driver":    s.cfg.Driver,
			"root":      s.cfg.Root,
			"read_only": s.cfg.ReadOnly,
		},
	}
}

func (s *FilesystemProvider) Query(_ context.Context, query string, args ...any) (interfaces.Rows, error) {
	if query != artifacts.OpRead || len(args) == 0 {
		return nil, nil
	}
	full, err := s.abs(args[0])
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fileRows{data: data}, nil
}

func (s *FilesystemProvider) Exec(ctx context.Context, query string, args ...any) (interfaces.Result, error) {
	if err := ctx.Err(); err != nil {
		return emptyResult{}, err
	}
	switch query {
	case artifacts.OpEnsureDir, artifacts.OpWrite, artifacts.OpRemove:
		if s.cfg.ReadOnly {
			return emptyResult{}, fmt.Errorf("%w: %s", ErrReadOnly, query)
		}
	default:
		return emptyResult{}, nil
	}

	if len(args) == 0 {
		return emptyResult{}, fmt.Errorf("%s requires path", query)
	}
	full, err := s.abs(args[0])
	if err != nil {
		return emptyResult{}, err
	}

	switch query {
	case artifacts.OpEnsureDir:
		return emptyResult{}, os.MkdirAll(full, 0o755)
	case artifacts.OpWrite:
		if len(args) < 2 {
			return emptyResult{}, fmt.Errorf("write requires path and reader")
		}
		reader, ok := args[1].(io.Reader)
		if !ok || reader == nil {
			return emptyResult{}, fmt.Errorf("write expects io.Reader content")
		}
		return writeFile(full, reader)
	default:
		if full == s.cfg.Root && unsafeRoot(full) {
			return emptyResult{}, fmt.Errorf("%w: refusing to remove %s", ErrPathOutsideRoot, full)
		}
		err := os.RemoveAll(full)
		if errors.Is(err, os.ErrNotExist) {
			return emptyResult{}, nil
		}
		return emptyResult{}, err
	}
}

func writeFile(full string, reader io.Reader) (interfaces.Result, error) {
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return emptyResult{}, err
	}
	file, err := os.Create(full)
	if err != nil {
		return emptyResult{}, err
	}
	written, copyErr := io.Copy(file, reader)
	closeErr := file.Close()
	if copyErr != nil {
		return emptyResult{}, copyErr
	}
	if closeErr != nil {
		return emptyResult{}, closeErr
	}
	return emptyResult{affected: written}, nil
}

// unsafeRoot reports roots that must never be removed wholesale: the working
// directory and filesystem roots.
func unsafeRoot(root string) bool {
	return root == "." || filepath.Dir(root) == root
}

// abs resolves a relative artifact path against the root.
func (s *FilesystemProvider) abs(arg any) (string, error) {
	raw, _ := arg.(string)
	rel := path.Clean(filepath.ToSlash(strings.TrimSpace(raw)))
	if path.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: %q", ErrPathOutsideRoot, raw)
	}
	if rel == "." {
		return s.cfg.Root, nil
	}
	return filepath.Join(s.cfg.Root, filepath.FromSlash(rel)), nil
}

type emptyResult struct {
	affected int64
}

func (r emptyResult) RowsAffected() (int64, error) { return r.affected, nil }

type fileRows struct {
	data []byte
	read bool
}

func (r *fileRows) Next() bool {
	if r.read {
		return false
	}
	r.read = true
	return true
}

func (r *fileRows) Scan(dest ...any) error {
	if len(dest) == 0 {
		return fmt.Errorf("scan requires destination")
	}
	bytesDest, ok := dest[0].(*[]byte)
	if !ok {
		return fmt.Errorf("unsupported scan destination %T", dest[0])
	}
	*bytesDest = append((*bytesDest)[:0], r.data...)
	return nil
}

func (r *fileRows) Close() error {
	return nil
}
