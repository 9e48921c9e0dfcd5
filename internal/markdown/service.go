package markdown

import (
	"context"
	"fmt"

	"github.com/goliatone/go-coursesite/internal/logging"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// Config controls lesson rendering.
type Config struct {
	Parser    interfaces.ParseOptions
	Normalize interfaces.NormalizeOptions
}

// Service prepares and renders lesson documents.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	logger interfaces.Logger
}

// RenderedLesson is the result of rendering one lesson.
type RenderedLesson struct {
	Title   string
	Summary string
	// Source is the merged Markdown before normalization.
	Source string
	HTML   []byte
}

// NewService returns a Service. A nil parser selects a GoldmarkParser built
// from cfg.Parser.
func NewService(cfg Config, parser interfaces.MarkdownParser, logger interfaces.Logger) *Service {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}
	return &Service{
		cfg:    cfg,
		parser: parser,
		logger: logging.Ensure(logger),
	}
}

// Render normalizes markdown and converts it to an HTML fragment.
func (s *Service) Render(ctx context.Context, markdown string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	normalized := Normalize(markdown, s.cfg.Normalize)
	return s.parser.Parse([]byte(normalized))
}

// RenderLesson merges a lesson's overview and assessment, derives its title
// and renders the merged document. The title is the overview's first level-1
// heading, then the overview front matter title, then fallback.
func (s *Service) RenderLesson(ctx context.Context, fallback string, overview, assessment []byte) (*RenderedLesson, error) {
	overviewMeta, overviewBody, err := SplitFrontMatter(overview)
	if err != nil {
		return nil, fmt.Errorf("markdown: overview of %s: %w", fallback, err)
	}
	_, assessmentBody, err := SplitFrontMatter(assessment)
	if err != nil {
		return nil, fmt.Errorf("markdown: assessment of %s: %w", fallback, err)
	}

	titleFallback := fallback
	if overviewMeta.Title != "" {
		titleFallback = overviewMeta.Title
	}

	lesson := &RenderedLesson{
		Title:   FirstHeading(string(overviewBody), titleFallback),
		Summary: overviewMeta.Summary,
		Source:  MergeLesson(string(overviewBody), string(assessmentBody)),
	}

	html, err := s.Render(ctx, lesson.Source)
	if err != nil {
		return nil, fmt.Errorf("markdown: render %s: %w", fallback, err)
	}
	lesson.HTML = html

	s.logger.Debug("markdown.lesson.rendered",
		"lesson", fallback,
		"title", lesson.Title,
		"source_bytes", len(lesson.Source),
		"html_bytes", len(html),
	)
	return lesson, nil
}
