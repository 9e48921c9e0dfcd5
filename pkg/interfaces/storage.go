package interfaces

import "github.com/goliatone/go-coursesite/pkg/storage"

// StorageProvider is the artifact sink used by the site builder.
type StorageProvider = storage.Provider

// Rows aliases storage.Rows.
type Rows = storage.Rows

// Result aliases storage.Result.
type Result = storage.Result
