package site

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	// DefaultTitle is the index page title.
	DefaultTitle = "RP Pico Self-Study"
	// SyllabusTitle is the syllabus page title.
	SyllabusTitle = "Syllabus"

	lessonAssetPrefix = "../"
)

var (
	pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="{{.AssetPrefix}}style.css">
</head>
<body>
  <div class="wrap">
    <header>
      <h1>{{.Title}}</h1>
      <nav>
        <a href="{{.AssetPrefix}}index.html">Home</a>
        <a href="{{.AssetPrefix}}syllabus.html">Syllabus</a>
      </nav>
    </header>
    <article>
      {{.Body}}
    </article>
  </div>
</body>
</html>
`))

	indexTemplate = template.Must(template.New("index").Parse(`<p class="muted">Published from lesson sources by GitHub Actions.</p>
<p>Start with the syllabus:</p>
<ul><li><a href="syllabus.html">Open Syllabus</a></li></ul>
`))

	syllabusTemplate = template.Must(template.New("syllabus").Parse(`<p>The following lessons were generated from <code>lessons/</code>:</p>
<ul>
{{range .}}<li><a href="{{.Output}}">{{.Title}}</a>{{if .Summary}} <span class="muted">{{.Summary}}</span>{{end}}</li>
{{end}}</ul>
`))
)

// PageData is the data passed to the page template.
type PageData struct {
	Title       string
	AssetPrefix string
	Body        template.HTML
}

// RenderPage wraps an HTML fragment in the shared page layout. assetPrefix is
// prepended to the stylesheet and navigation links.
func RenderPage(title string, body []byte, assetPrefix string) (string, error) {
	var buf bytes.Buffer
	data := PageData{
		Title:       title,
		AssetPrefix: assetPrefix,
		Body:        template.HTML(body),
	}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("site: render page %q: %w", title, err)
	}
	return buf.String(), nil
}

func renderIndexBody() ([]byte, error) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, nil); err != nil {
		return nil, fmt.Errorf("site: render index: %w", err)
	}
	return buf.Bytes(), nil
}

func renderSyllabusBody(entries []LessonEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := syllabusTemplate.Execute(&buf, entries); err != nil {
		return nil, fmt.Errorf("site: render syllabus: %w", err)
	}
	return buf.Bytes(), nil
}
