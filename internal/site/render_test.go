package site

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderPage(t *testing.T) {
	got, err := RenderPage("Blink & Fade", []byte("<p>x</p>"), "")
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	want := `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Blink &amp; Fade</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <div class="wrap">
    <header>
      <h1>Blink &amp; Fade</h1>
      <nav>
        <a href="index.html">Home</a>
        <a href="syllabus.html">Syllabus</a>
      </nav>
    </header>
    <article>
      <p>x</p>
    </article>
  </div>
</body>
</html>
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("RenderPage mismatch (-want +got):\n%s", diff)
	}
}

func TestSyllabusBodyEscapesTitles(t *testing.T) {
	body, err := renderSyllabusBody([]LessonEntry{{Name: "L01-x", Title: "<b>Bold</b>", Output: "lessons/L01-x.html"}})
	if err != nil {
		t.Fatalf("renderSyllabusBody: %v", err)
	}
	if !strings.Contains(string(body), "&lt;b&gt;Bold&lt;/b&gt;") {
		t.Fatalf("expected escaped title, got %s", body)
	}
}

func TestStylesheetEndsWithNewline(t *testing.T) {
	css := Stylesheet()
	if !strings.HasPrefix(css, ":root {") || !strings.HasSuffix(css, ".muted { color: var(--muted); }\n") {
		t.Fatalf("unexpected stylesheet framing: %q", css[:20])
	}
}
