package sitecmd

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-coursesite/internal/site"
)

const buildSiteMessageType = "coursesite.site.build"

var lessonNamePattern = regexp.MustCompile(`^L[0-9A-Z]+-.+`)

// ResultCallback receives the build result. It is optional and invoked
// synchronously from the handler.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope carries a BuildResult out of the handler.
type ResultEnvelope struct {
	Result   *site.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand regenerates the course site.
type BuildSiteCommand struct {
	Lessons        []string       `json:"lessons,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures selected lesson names follow the lesson directory convention.
func (m BuildSiteCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Lessons,
			validation.Each(
				validation.Required.ErrorObject(validation.NewError("coursesite.site.build.lesson_empty", "lessons must not contain empty values")),
				validation.Match(lessonNamePattern).ErrorObject(validation.NewError("coursesite.site.build.lesson_invalid", "lessons must match L<id>-<name>")),
			),
		),
	)
}
