package storage

import "context"

// Operation names understood by artifact providers. Providers receive them as
// the query argument of Exec/Query so new operations can be added without
// widening the interface.
const (
	OpEnsureDir = "site.ensure_dir"
	OpWrite     = "site.write"
	OpRead      = "site.read"
	OpRemove    = "site.remove"
)

// Provider stores build artifacts. Exec performs mutations (ensure_dir, write,
// remove); Query reads existing artifacts back.
type Provider interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
}

// Config describes where a provider writes.
type Config struct {
	Name     string
	Driver   string
	Root     string
	ReadOnly bool
}

// Capabilities documents optional provider behaviour.
type Capabilities struct {
	Persistent bool
	Metadata   map[string]any
}

// CapabilityReporter is implemented by providers that expose Capabilities.
type CapabilityReporter interface {
	Capabilities() Capabilities
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

type Result interface {
	RowsAffected() (int64, error)
}
