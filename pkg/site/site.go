// Package site exposes the course site builder for hosts that wire their own
// storage or lesson sources. Use NewService with Config and Dependencies to
// render lesson pages, the index, the syllabus and the shared stylesheet.
package site

import internal "github.com/goliatone/go-coursesite/internal/site"

type (
	Service        = internal.Service
	Config         = internal.Config
	BuildOptions   = internal.BuildOptions
	BuildResult    = internal.BuildResult
	RenderedPage   = internal.RenderedPage
	LessonEntry    = internal.LessonEntry
	Dependencies   = internal.Dependencies
	LessonRenderer = internal.LessonRenderer
)

var (
	ErrLessonsRequired  = internal.ErrLessonsRequired
	ErrRendererRequired = internal.ErrRendererRequired
	ErrLessonNotFound   = internal.ErrLessonNotFound
)

// NewService wires a site builder with the supplied configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	return internal.NewService(cfg, deps)
}

// Stylesheet returns the CSS written to style.css.
func Stylesheet() string {
	return internal.Stylesheet()
}
