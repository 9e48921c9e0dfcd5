package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeLesson(t *testing.T) {
	tests := []struct {
		name       string
		overview   string
		assessment string
		want       string
	}{
		{
			name:       "titles replaced by assessment heading",
			overview:   "# Demo\n\nBody text.\n",
			assessment: "# Quiz\n\nQuestion?\n",
			want:       "Body text.\n\n## Assessment\n\nQuestion?\n",
		},
		{
			name:       "empty overview",
			overview:   "# Only a title\n",
			assessment: "Question?",
			want:       "## Assessment\n\nQuestion?\n",
		},
		{
			name:       "empty assessment keeps heading and trailing newline",
			overview:   "Intro",
			assessment: "\n\n",
			want:       "Intro\n\n## Assessment\n\n\n",
		},
		{
			name:       "leading blank lines before title",
			overview:   "\n\n# Demo\nBody\n",
			assessment: "Q",
			want:       "Body\n\n## Assessment\n\nQ\n",
		},
		{
			name:       "non h1 first line kept",
			overview:   "## Intro\nBody\n",
			assessment: "Q",
			want:       "## Intro\nBody\n\n## Assessment\n\nQ\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeLesson(tt.overview, tt.assessment)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("MergeLesson mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStripLeadingH1Idempotent(t *testing.T) {
	inputs := []string{
		"# Title\n\nBody\n",
		"Body only\n",
		"\n# Title\nText\n## Sub\n",
		"",
	}
	for _, input := range inputs {
		once := StripLeadingH1(input)
		twice := StripLeadingH1(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("StripLeadingH1(%q) not idempotent (-once +twice):\n%s", input, diff)
		}
	}
}

func TestFirstHeading(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fallback string
		want     string
	}{
		{name: "first h1", text: "intro\n# Blink an LED \n# Second\n", fallback: "L01-blink", want: "Blink an LED"},
		{name: "h2 ignored", text: "## Not a title\n", fallback: "L02-uart", want: "L02-uart"},
		{name: "fenced comment ignored", text: "```bash\n# comment\n```\n# Real\n", fallback: "x", want: "Real"},
		{name: "hash without space", text: "#hashtag\n", fallback: "L03-x", want: "L03-x"},
		{name: "indented fence inside fence", text: "```text\n  ```\n# literal\n```\n# Real\n", fallback: "x", want: "Real"},
		{name: "empty", text: "", fallback: "L04-y", want: "L04-y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstHeading(tt.text, tt.fallback); got != tt.want {
				t.Fatalf("FirstHeading() = %q, want %q", got, tt.want)
			}
		})
	}
}
