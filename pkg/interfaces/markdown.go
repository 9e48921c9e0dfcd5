package interfaces

// MarkdownParser converts Markdown into an HTML fragment.
type MarkdownParser interface {
	// Parse renders using the parser defaults.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions renders using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions selects renderer behaviour. Extension names are resolved by
// the parser's registry; unknown names are rejected at configuration time.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// NormalizeOptions toggles the lesson pre-processing passes that run before
// Markdown is handed to the parser. CodeIndent is the number of spaces added
// to an indented fence's indentation when it is rewritten as an indented code
// block; zero selects the default of 5.
type NormalizeOptions struct {
	SkipListIndentation bool
	SkipFencedCode      bool
	CodeIndent          int
}
