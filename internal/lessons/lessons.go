// Package lessons discovers lesson directories and loads their source
// documents.
package lessons

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-coursesite/internal/identity"
	"github.com/goliatone/go-coursesite/internal/logging"
	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

const (
	OverviewFile   = "overview.md"
	AssessmentFile = "assessment.md"
)

var namePattern = regexp.MustCompile(`^L[0-9A-Z]+-.+`)

// Lesson is one discovered lesson directory with its raw sources.
type Lesson struct {
	ID         uuid.UUID
	Name       string
	Dir        string
	Slug       string
	Overview   []byte
	Assessment []byte
}

// Skip records a lesson directory left out of the build.
type Skip struct {
	Name   string
	Reason string
}

// Discovery is the outcome of scanning a lessons root.
type Discovery struct {
	Lessons []Lesson
	Skipped []Skip
}

// IsLessonName reports whether name follows the L<id>-<slug> convention.
func IsLessonName(name string) bool {
	return namePattern.MatchString(name)
}

// SlugFor normalizes the part of a lesson name after its first dash.
func SlugFor(name string) string {
	_, rest, ok := strings.Cut(name, "-")
	if !ok {
		rest = name
	}
	if normalized, err := slug.Normalize(rest); err == nil && normalized != "" {
		return normalized
	}
	return strings.ToLower(rest)
}

// Discover lists lesson directories at the root of fsys in name order and
// loads both source documents of each. A missing root yields an empty
// Discovery. Directories lacking a document are reported in Skipped.
func Discover(ctx context.Context, fsys fs.FS, logger interfaces.Logger) (*Discovery, error) {
	logger = logging.Ensure(logger)
	result := &Discovery{}

	entries, err := fs.ReadDir(fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("lessons.discover.root_missing")
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lessons: read root: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && IsLessonName(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		overview, err := readDocument(fsys, name, OverviewFile)
		if err != nil {
			return nil, err
		}
		assessment, err := readDocument(fsys, name, AssessmentFile)
		if err != nil {
			return nil, err
		}

		if reason := missingReason(overview, assessment); reason != "" {
			result.Skipped = append(result.Skipped, Skip{Name: name, Reason: reason})
			logger.Debug("lessons.discover.skipped", "lesson", name, "reason", reason)
			continue
		}

		result.Lessons = append(result.Lessons, Lesson{
			ID:         identity.LessonUUID(name),
			Name:       name,
			Dir:        name,
			Slug:       SlugFor(name),
			Overview:   overview,
			Assessment: assessment,
		})
	}

	logger.Debug("lessons.discover.completed",
		"lessons", len(result.Lessons),
		"skipped", len(result.Skipped),
	)
	return result, nil
}

// readDocument returns nil without error when the document does not exist.
func readDocument(fsys fs.FS, dir, file string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, dir+"/"+file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lessons: read %s/%s: %w", dir, file, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func missingReason(overview, assessment []byte) string {
	switch {
	case overview == nil:
		return "missing " + OverviewFile
	case assessment == nil:
		return "missing " + AssessmentFile
	default:
		return ""
	}
}
