package site

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// ManifestFileName is written to the output root when manifests are enabled.
	ManifestFileName    = "manifest.json"
	manifestFileVersion = 1
)

type buildManifest struct {
	Version     int              `json:"version"`
	BuildID     string           `json:"build_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Title       string           `json:"title"`
	Lessons     []manifestLesson `json:"lessons"`
	Skipped     []manifestSkip   `json:"skipped"`
	Pages       []manifestPage   `json:"pages"`
}

type manifestLesson struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Output  string `json:"output"`
}

type manifestSkip struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type manifestPage struct {
	Path     string `json:"path"`
	Checksum string `json:"checksum"`
	Size     int    `json:"size"`
}

func newBuildManifest(result *BuildResult, title string, generatedAt time.Time) *buildManifest {
	manifest := &buildManifest{
		Version:     manifestFileVersion,
		BuildID:     result.BuildID.String(),
		GeneratedAt: generatedAt.UTC(),
		Title:       title,
		Lessons:     make([]manifestLesson, 0, len(result.Lessons)),
		Skipped:     make([]manifestSkip, 0, len(result.Skipped)),
		Pages:       make([]manifestPage, 0, len(result.Pages)),
	}
	for _, lesson := range result.Lessons {
		manifest.Lessons = append(manifest.Lessons, manifestLesson{
			ID:      lesson.ID.String(),
			Name:    lesson.Name,
			Slug:    lesson.Slug,
			Title:   lesson.Title,
			Summary: lesson.Summary,
			Output:  lesson.Output,
		})
	}
	for _, skip := range result.Skipped {
		manifest.Skipped = append(manifest.Skipped, manifestSkip{Name: skip.Name, Reason: skip.Reason})
	}
	for _, page := range result.Pages {
		manifest.Pages = append(manifest.Pages, manifestPage{
			Path:     page.Path,
			Checksum: page.Checksum,
			Size:     len(page.Content),
		})
	}
	return manifest
}

func (m *buildManifest) marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("site: marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}
