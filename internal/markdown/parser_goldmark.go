package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// ErrUnknownExtension is returned by ValidateExtensions for names missing from
// the registry.
var ErrUnknownExtension = errors.New("markdown: unknown extension")

// DefaultExtensions is the extension set lesson pages are rendered with.
var DefaultExtensions = []string{"fenced_code", "tables", "toc", "sane_lists"}

// extensionSpec binds a configuration name to goldmark extenders and parser
// options. Entries with neither are accepted names whose behaviour goldmark's
// CommonMark core already provides.
type extensionSpec struct {
	extenders     []goldmark.Extender
	parserOptions []parser.Option
}

var extensionRegistry = map[string]extensionSpec{
	// Fenced code blocks are part of CommonMark.
	"fenced_code": {},
	// CommonMark lists already start a new list when the marker type changes.
	"sane_lists":    {},
	"toc":           {parserOptions: []parser.Option{parser.WithAutoHeadingID()}},
	"tables":        {extenders: []goldmark.Extender{extension.Table}},
	"gfm":           {extenders: []goldmark.Extender{extension.GFM}},
	"strikethrough": {extenders: []goldmark.Extender{extension.Strikethrough}},
	"linkify":       {extenders: []goldmark.Extender{extension.Linkify}},
	"tasklist":      {extenders: []goldmark.Extender{extension.TaskList}},
	"definition":    {extenders: []goldmark.Extender{extension.DefinitionList}},
	"footnote":      {extenders: []goldmark.Extender{extension.Footnote}},
}

// SupportedExtensions lists the registry names in sorted order.
func SupportedExtensions() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateExtensions reports the first name that is not in the registry.
func ValidateExtensions(names []string) error {
	for _, name := range names {
		key := normalizeExtensionName(name)
		if key == "" {
			continue
		}
		if _, ok := extensionRegistry[key]; !ok {
			return fmt.Errorf("%w %q (supported: %s)", ErrUnknownExtension, name, strings.Join(SupportedExtensions(), ", "))
		}
	}
	return nil
}

// GoldmarkParser implements interfaces.MarkdownParser. The default engine is
// built once; ParseWithOptions builds a new engine per call.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
	engine         goldmark.Markdown
}

// NewGoldmarkParser returns a parser using defaults. An empty extension list
// selects DefaultExtensions.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaultOptions: defaults,
		engine:         newGoldmarkEngine(defaults),
	}
}

// Parse renders markdown with the parser defaults.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return convert(p.engine, markdown)
}

// ParseWithOptions renders markdown with opts instead of the defaults.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	return convert(newGoldmarkEngine(opts), markdown)
}

func convert(engine goldmark.Markdown, markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	names := opts.Extensions
	if len(names) == 0 {
		names = DefaultExtensions
	}

	var (
		extenders     []goldmark.Extender
		parserOptions []parser.Option
		seen          = map[string]struct{}{}
	)
	for _, name := range names {
		key := normalizeExtensionName(name)
		if _, ok := seen[key]; ok {
			continue
		}
		spec, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		seen[key] = struct{}{}
		extenders = append(extenders, spec.extenders...)
		parserOptions = append(parserOptions, spec.parserOptions...)
	}

	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	// Lesson sources may embed raw HTML (figures, details blocks).
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if len(extenders) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(extenders...))
	}
	return goldmark.New(engineOptions...)
}

func normalizeExtensionName(name string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if key == "table" {
		return "tables"
	}
	return key
}
