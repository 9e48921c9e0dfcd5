package site

import "strings"

// StylesheetName is the stylesheet path relative to the output root.
const StylesheetName = "style.css"

const stylesheet = `
:root {
  color-scheme: light;
  --bg: #f6f7fb;
  --surface: #ffffff;
  --text: #1f2430;
  --muted: #5b6375;
  --accent: #0d6efd;
  --border: #dde2ef;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  font-family: "Segoe UI", Tahoma, sans-serif;
  color: var(--text);
  background: radial-gradient(circle at 20% 0%, #e8eefc, var(--bg));
}
.wrap {
  max-width: 980px;
  margin: 0 auto;
  padding: 1.5rem 1rem 3rem;
}
header {
  background: var(--surface);
  border: 1px solid var(--border);
  border-radius: 12px;
  padding: 1rem 1.25rem;
  margin-bottom: 1rem;
}
nav a {
  color: var(--accent);
  margin-right: 1rem;
  text-decoration: none;
  font-weight: 600;
}
article {
  background: var(--surface);
  border: 1px solid var(--border);
  border-radius: 12px;
  padding: 1.25rem;
}
h1, h2, h3, h4 { line-height: 1.25; }
pre {
  background: #101522;
  color: #dbe7ff;
  padding: 0.85rem;
  border-radius: 8px;
  overflow-x: auto;
}
code {
  font-family: "Consolas", "SFMono-Regular", monospace;
}
ul, ol { padding-left: 1.35rem; }
a { color: var(--accent); }
.muted { color: var(--muted); }
`

// Stylesheet returns the shared site stylesheet.
func Stylesheet() string {
	return strings.TrimSpace(stylesheet) + "\n"
}
