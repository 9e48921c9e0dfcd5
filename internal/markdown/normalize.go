package markdown

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-coursesite/pkg/interfaces"
)

// DefaultCodeIndent is added to the fence indentation when an indented fenced
// block is rewritten as an indented code block, keeping it attached to the
// owning list item.
const DefaultCodeIndent = 5

const fenceMarker = "```"

var (
	listItemPattern      = regexp.MustCompile(`^( +)([-*+] |\d+\. )`)
	indentedFencePattern = regexp.MustCompile("^( +)```([A-Za-z0-9_-]*)\\s*$")
)

// Normalize runs the list-indentation pass followed by the indented fence
// pass, honouring the skip toggles in opts.
func Normalize(text string, opts interfaces.NormalizeOptions) string {
	if !opts.SkipListIndentation {
		text = NormalizeListIndentation(text)
	}
	if !opts.SkipFencedCode {
		text = NormalizeIndentedFencesWithIndent(text, opts.CodeIndent)
	}
	return text
}

// NormalizeListIndentation doubles the leading spaces of nested list items
// (items indented by two or more spaces). Lines inside fenced code blocks are
// left untouched.
func NormalizeListIndentation(text string) string {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	var fences fenceScanner

	for _, line := range lines {
		if !fences.step(line) {
			if m := listItemPattern.FindStringSubmatch(line); m != nil && len(m[1]) >= 2 {
				line = strings.Repeat(" ", len(m[1])*2) + line[len(m[1]):]
			}
		}
		out = append(out, line)
	}

	return joinLines(out, text)
}

// NormalizeIndentedFences rewrites fenced blocks whose opening fence is
// indented as classic indented code blocks. Content lines lose the fence
// indentation and gain fence indentation plus DefaultCodeIndent spaces; the
// block is surrounded by blank lines. An unclosed fence runs to end of input.
func NormalizeIndentedFences(text string) string {
	return NormalizeIndentedFencesWithIndent(text, DefaultCodeIndent)
}

// NormalizeIndentedFencesWithIndent is NormalizeIndentedFences with a custom
// extra indentation. Values below 1 select DefaultCodeIndent.
func NormalizeIndentedFencesWithIndent(text string, extra int) string {
	if extra < 1 {
		extra = DefaultCodeIndent
	}
	lines := splitLines(text)
	out := make([]string, 0, len(lines))

	for idx := 0; idx < len(lines); {
		m := indentedFencePattern.FindStringSubmatch(lines[idx])
		if m == nil {
			out = append(out, lines[idx])
			idx++
			continue
		}

		fenceIndent := m[1]
		idx++

		var code []string
		for idx < len(lines) && !isClosingFence(lines[idx], fenceIndent) {
			code = append(code, strings.TrimPrefix(lines[idx], fenceIndent))
			idx++
		}
		if idx < len(lines) {
			idx++
		}

		codeIndent := strings.Repeat(" ", len(fenceIndent)+extra)
		if len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
		for _, line := range code {
			out = append(out, codeIndent+line)
		}
		out = append(out, "")
	}

	return joinLines(out, text)
}

// fenceScanner tracks fenced code while walking lines. A fence in column 0
// opens a top-level block that only another column-0 fence closes. An
// indented fence opens a nested block only outside a top-level one and
// closes on a fence at the same indentation.
type fenceScanner struct {
	topLevel     bool
	nested       bool
	nestedIndent string
}

// step consumes line and reports whether it is a fence line or lies inside a
// fenced block.
func (f *fenceScanner) step(line string) bool {
	switch {
	case f.topLevel:
		if strings.HasPrefix(line, fenceMarker) {
			f.topLevel = false
		}
		return true
	case f.nested:
		if isClosingFence(line, f.nestedIndent) {
			f.nested = false
		}
		return true
	case strings.HasPrefix(line, fenceMarker):
		f.topLevel = true
		return true
	}
	if m := indentedFencePattern.FindStringSubmatch(line); m != nil {
		f.nested, f.nestedIndent = true, m[1]
		return true
	}
	return false
}

func isClosingFence(line, indent string) bool {
	rest, ok := strings.CutPrefix(line, indent+fenceMarker)
	return ok && strings.TrimSpace(rest) == ""
}

// splitLines splits on \n after folding \r\n. A single trailing newline does
// not produce an empty final line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// joinLines joins lines and restores the trailing newline of the source.
func joinLines(lines []string, source string) string {
	joined := strings.Join(lines, "\n")
	if strings.HasSuffix(source, "\n") && !strings.HasSuffix(joined, "\n") {
		joined += "\n"
	}
	return joined
}
