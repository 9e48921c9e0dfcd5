package envcheckcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-coursesite/internal/envcheck"
)

const (
	runChecksMessageType = "coursesite.envcheck.run"
	maxHeadingLength     = 112
)

// ResultCallback receives the check report and the exit code derived from
// the strict flags.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope carries a Report out of the handler.
type ResultEnvelope struct {
	Report   *envcheck.Report
	ExitCode int
	// Heading is the report title, defaulting to envcheck.DefaultHeading.
	Heading string
}

// RunChecksCommand runs the toolchain checks.
type RunChecksCommand struct {
	Strict         bool           `json:"strict,omitempty"`
	StrictAll      bool           `json:"strict_all,omitempty"`
	Heading        string         `json:"heading,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (RunChecksCommand) Type() string { return runChecksMessageType }

// Validate keeps the heading within the report width.
func (m RunChecksCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Heading, validation.RuneLength(0, maxHeadingLength)),
	)
}
