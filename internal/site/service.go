package site

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-coursesite/internal/identity"
	"github.com/goliatone/go-coursesite/internal/lessons"
	"github.com/goliatone/go-coursesite/internal/logging"
	"github.com/goliatone/go-coursesite/internal/markdown"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

const (
	// LessonsDir is the output subdirectory holding lesson pages.
	LessonsDir   = "lessons"
	indexPage    = "index.html"
	syllabusPage = "syllabus.html"
	htmlType     = "text/html; charset=utf-8"
	cssType      = "text/css; charset=utf-8"
	jsonType     = "application/json"
)

var (
	// ErrLessonsRequired indicates the builder was wired without a lessons source.
	ErrLessonsRequired = errors.New("site: lessons source is required")
	// ErrRendererRequired indicates the builder was wired without a lesson renderer.
	ErrRendererRequired = errors.New("site: lesson renderer is required")
	// ErrLessonNotFound indicates a selected lesson was not discovered.
	ErrLessonNotFound = errors.New("site: lesson not found")
)

// Service builds the static course site.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
}

// LessonRenderer turns a lesson's sources into an HTML fragment.
type LessonRenderer interface {
	RenderLesson(ctx context.Context, fallback string, overview, assessment []byte) (*markdown.RenderedLesson, error)
}

// Config captures site level settings.
type Config struct {
	// OutputDir is reported in results and the build id; writes go through
	// Dependencies.Storage rooted at the output directory.
	OutputDir     string
	Title         string
	CleanBuild    bool
	WriteManifest bool
}

// BuildOptions narrows a single build.
type BuildOptions struct {
	DryRun bool
	// Lessons restricts the build to the named lesson directories. Empty
	// builds every discovered lesson.
	Lessons []string
}

// Dependencies lists the collaborators of the builder.
type Dependencies struct {
	Lessons  fs.FS
	Renderer LessonRenderer
	Storage  interfaces.StorageProvider
	Logger   interfaces.Logger
}

// LessonEntry is one syllabus row.
type LessonEntry struct {
	ID      uuid.UUID
	Name    string
	Slug    string
	Title   string
	Summary string
	Output  string
}

// RenderedPage is a file produced by the build, relative to the output root.
type RenderedPage struct {
	Path     string
	Title    string
	Lesson   string
	Content  string
	Checksum string
	category writeCategory
}

// BuildResult reports what a build produced.
type BuildResult struct {
	BuildID   uuid.UUID
	OutputDir string
	Lessons   []LessonEntry
	Skipped   []lessons.Skip
	Pages     []RenderedPage
	Duration  time.Duration
	DryRun    bool
}

// LessonCount is the number of lessons with a generated page.
func (r *BuildResult) LessonCount() int {
	if r == nil {
		return 0
	}
	return len(r.Lessons)
}

// Summary is the one line report printed after a build.
func (r *BuildResult) Summary() string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("Generated site for %d lessons at: %s", r.LessonCount(), r.OutputDir)
}

// Page returns the rendered page stored at rel.
func (r *BuildResult) Page(rel string) (RenderedPage, bool) {
	if r == nil {
		return RenderedPage{}, false
	}
	for _, page := range r.Pages {
		if page.Path == rel {
			return page, true
		}
	}
	return RenderedPage{}, false
}

// NewService wires a builder with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = DefaultTitle
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logging.Ensure(deps.Logger),
		now:    time.Now,
	}
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Lessons == nil {
		return nil, ErrLessonsRequired
	}
	if s.deps.Renderer == nil {
		return nil, ErrRendererRequired
	}

	start := s.now()
	result := &BuildResult{
		BuildID:   identity.BuildUUID(s.cfg.OutputDir, start.UTC().Format(time.RFC3339Nano)),
		OutputDir: s.cfg.OutputDir,
		DryRun:    opts.DryRun,
	}
	logger := logging.WithFields(s.logger.WithContext(ctx), map[string]any{"build_id": result.BuildID.String()})

	discovery, err := lessons.Discover(ctx, s.deps.Lessons, logger)
	if err != nil {
		return nil, fmt.Errorf("site: discover lessons: %w", err)
	}
	selected, err := selectLessons(discovery, opts.Lessons)
	if err != nil {
		return nil, err
	}
	result.Skipped = discovery.Skipped
	for _, skip := range discovery.Skipped {
		logger.Debug("site.build.lesson_skipped", "lesson", skip.Name, "reason", skip.Reason)
	}

	result.Pages = append(result.Pages, RenderedPage{
		Path:     StylesheetName,
		Content:  Stylesheet(),
		category: categoryStylesheet,
	})

	for _, lesson := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, page, err := s.renderLesson(ctx, lesson)
		if err != nil {
			return nil, err
		}
		result.Lessons = append(result.Lessons, entry)
		result.Pages = append(result.Pages, page)
	}

	indexBody, err := renderIndexBody()
	if err != nil {
		return nil, err
	}
	index, err := newPage(indexPage, s.cfg.Title, indexBody, "")
	if err != nil {
		return nil, err
	}
	syllabusBody, err := renderSyllabusBody(result.Lessons)
	if err != nil {
		return nil, err
	}
	syllabus, err := newPage(syllabusPage, SyllabusTitle, syllabusBody, "")
	if err != nil {
		return nil, err
	}
	result.Pages = append(result.Pages, index, syllabus)

	for i := range result.Pages {
		result.Pages[i].Checksum = computeHash(result.Pages[i].Content)
	}

	if err := s.persist(ctx, newOutputTree(s.deps.Storage, opts.DryRun), result, start); err != nil {
		return nil, err
	}

	result.Duration = s.now().Sub(start)
	logger.Info("site.build.completed",
		"lessons", result.LessonCount(),
		"skipped", len(result.Skipped),
		"pages", len(result.Pages),
		"output_dir", result.OutputDir,
		"dry_run", result.DryRun,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

func (s *service) renderLesson(ctx context.Context, lesson lessons.Lesson) (LessonEntry, RenderedPage, error) {
	output := path.Join(LessonsDir, lesson.Name+".html")
	logger := logging.WithLessonContext(s.logger, lesson.Name, lesson.Dir, output)

	rendered, err := s.deps.Renderer.RenderLesson(ctx, lesson.Name, lesson.Overview, lesson.Assessment)
	if err != nil {
		return LessonEntry{}, RenderedPage{}, fmt.Errorf("site: render lesson %s: %w", lesson.Name, err)
	}
	page, err := newPage(output, rendered.Title, rendered.HTML, lessonAssetPrefix)
	if err != nil {
		return LessonEntry{}, RenderedPage{}, err
	}
	page.Lesson = lesson.Name

	logger.Debug("site.build.lesson_rendered", "title", rendered.Title, "bytes", len(page.Content))
	return LessonEntry{
		ID:      lesson.ID,
		Name:    lesson.Name,
		Slug:    lesson.Slug,
		Title:   rendered.Title,
		Summary: rendered.Summary,
		Output:  output,
	}, page, nil
}

// persist recreates the output tree and writes every page in order.
func (s *service) persist(ctx context.Context, tree outputTree, result *BuildResult, generatedAt time.Time) error {
	if s.cfg.CleanBuild {
		if err := tree.Clear(ctx); err != nil {
			return fmt.Errorf("site: clean output %s: %w", s.cfg.OutputDir, err)
		}
	}
	for _, dir := range []string{".", LessonsDir} {
		if err := tree.Mkdir(ctx, dir); err != nil {
			return fmt.Errorf("site: create %s: %w", path.Join(s.cfg.OutputDir, dir), err)
		}
	}

	pages := result.Pages
	if s.cfg.WriteManifest {
		data, err := newBuildManifest(result, s.cfg.Title, generatedAt).marshal()
		if err != nil {
			return err
		}
		pages = append(pages[:len(pages):len(pages)], RenderedPage{
			Path:     ManifestFileName,
			Content:  string(data),
			Checksum: computeHash(string(data)),
			category: categoryManifest,
		})
	}

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		size, err := tree.Put(ctx, page)
		if err != nil {
			return fmt.Errorf("site: write %s: %w", path.Join(s.cfg.OutputDir, page.Path), err)
		}
		s.logger.Debug("site.build.file_written", "path", page.Path, "bytes", size)
	}
	return nil
}

// selectLessons keeps discovery order. Names that were skipped for missing
// documents are reported as not found.
func selectLessons(discovery *lessons.Discovery, names []string) ([]lessons.Lesson, error) {
	if len(names) == 0 {
		return discovery.Lessons, nil
	}
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[strings.TrimSpace(name)] = struct{}{}
	}
	selected := make([]lessons.Lesson, 0, len(wanted))
	for _, lesson := range discovery.Lessons {
		if _, ok := wanted[lesson.Name]; ok {
			selected = append(selected, lesson)
			delete(wanted, lesson.Name)
		}
	}
	if len(wanted) > 0 {
		missing := slices.Sorted(maps.Keys(wanted))
		return nil, fmt.Errorf("%w: %s", ErrLessonNotFound, strings.Join(missing, ", "))
	}
	return selected, nil
}

func newPage(rel, title string, body []byte, assetPrefix string) (RenderedPage, error) {
	html, err := RenderPage(title, body, assetPrefix)
	if err != nil {
		return RenderedPage{}, err
	}
	return RenderedPage{
		Path:     rel,
		Title:    title,
		Content:  html,
		category: categoryPage,
	}, nil
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
