package markdown

import (
	"bytes"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// FrontMatter is the optional YAML header of a lesson document.
type FrontMatter struct {
	Title   string         `yaml:"title"`
	Summary string         `yaml:"summary"`
	Custom  map[string]any `yaml:",inline"`
}

// Lesson documents only carry YAML front matter.
var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// SplitFrontMatter separates a leading YAML front matter block from the
// Markdown body. Sources without front matter, and sources whose leading
// "---" block is not a YAML mapping (a thematic break followed by prose, for
// instance), are returned unchanged with a zero FrontMatter.
func SplitFrontMatter(source []byte) (FrontMatter, []byte, error) {
	plain := FrontMatter{Custom: map[string]any{}}
	if !bytes.HasPrefix(bytes.TrimLeft(source, " \t\r\n"), []byte("---")) {
		return plain, source, nil
	}
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, yamlFrontMatter)
	if err != nil {
		return plain, source, nil
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}
