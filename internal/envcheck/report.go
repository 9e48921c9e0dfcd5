package envcheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	// DefaultHeading is the first line of the printed report.
	DefaultHeading = "L00 environment check"
	tableWidth     = 112
)

// Result is the outcome of one check.
type Result struct {
	Label    string
	Kind     Kind
	Required bool
	Status   Status
	Details  string
}

// Report collects the results of a run.
type Report struct {
	// Interpreter is the python3 used for package checks, empty when absent.
	Interpreter string
	Results     []Result
}

// RequiredFound returns how many required checks were found and how many
// required checks ran.
func (r *Report) RequiredFound() (found, total int) {
	for _, result := range r.Results {
		if !result.Required {
			continue
		}
		total++
		if result.Status == StatusFound {
			found++
		}
	}
	return found, total
}

// MissingRequired lists required checks that were not found.
func (r *Report) MissingRequired() []Result {
	return r.filter(func(res Result) bool {
		return res.Required && res.Status != StatusFound
	})
}

// MissingRecommended lists optional checks that are missing or errored.
func (r *Report) MissingRecommended() []Result {
	return r.filter(func(res Result) bool {
		return !res.Required && (res.Status == StatusMissing || res.Status == StatusError)
	})
}

// Skipped lists checks that could not run.
func (r *Report) Skipped() []Result {
	return r.filter(func(res Result) bool {
		return res.Status == StatusSkipped
	})
}

// ExitCode is 1 when strict is set and a required check failed, or when
// strictAll is set and any required or recommended check failed.
func (r *Report) ExitCode(strict, strictAll bool) int {
	missingRequired := len(r.MissingRequired()) > 0
	if strict && missingRequired {
		return 1
	}
	if strictAll && (missingRequired || len(r.MissingRecommended()) > 0) {
		return 1
	}
	return 0
}

func (r *Report) filter(keep func(Result) bool) []Result {
	var out []Result
	for _, result := range r.Results {
		if keep(result) {
			out = append(out, result)
		}
	}
	return out
}

var statusColors = map[Status]*color.Color{
	StatusFound:   color.New(color.FgGreen),
	StatusMissing: color.New(color.FgYellow),
	StatusError:   color.New(color.FgRed, color.Bold),
	StatusSkipped: color.New(color.FgCyan),
}

// WriteReport prints the check table and the summary sections.
func WriteReport(w io.Writer, heading string, report *Report) error {
	if heading == "" {
		heading = DefaultHeading
	}
	interpreter := report.Interpreter
	if interpreter == "" {
		interpreter = "not found"
	}

	var b strings.Builder
	fmt.Fprintln(&b, heading)
	fmt.Fprintf(&b, "Python interpreter for package checks: %s\n", interpreter)
	fmt.Fprintln(&b, strings.Repeat("=", tableWidth))
	fmt.Fprintf(&b, "%-36s %-12s %-8s %-8s %s\n", "Item", "Type", "Required", "Status", "Details")
	fmt.Fprintln(&b, strings.Repeat("-", tableWidth))

	for _, result := range report.Results {
		required := "no"
		if result.Required {
			required = "yes"
		}
		fmt.Fprintf(&b, "%-36s %-12s %-8s %s %s\n",
			result.Label, string(result.Kind), required, colorStatus(result.Status), result.Details)
	}

	found, total := report.RequiredFound()
	fmt.Fprintln(&b, strings.Repeat("=", tableWidth))
	fmt.Fprintf(&b, "Required checks found: %d/%d\n", found, total)

	if missing := report.MissingRequired(); len(missing) > 0 {
		writeSection(&b, "Missing required tools:", missing)
	} else {
		fmt.Fprintln(&b, "All required tools are present.")
	}
	if missing := report.MissingRecommended(); len(missing) > 0 {
		writeSection(&b, "Missing recommended checks (can be completed later):", missing)
	}
	if skipped := report.Skipped(); len(skipped) > 0 {
		writeSection(&b, "Skipped checks:", skipped)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSection(b *strings.Builder, title string, results []Result) {
	fmt.Fprintln(b, title)
	for _, result := range results {
		fmt.Fprintf(b, "- %s: %s\n", result.Label, result.Details)
	}
}

// colorStatus pads before colouring so escape codes do not break alignment.
func colorStatus(status Status) string {
	padded := fmt.Sprintf("%-8s", string(status))
	if c, ok := statusColors[status]; ok {
		return c.Sprint(padded)
	}
	return padded
}
