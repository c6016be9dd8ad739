package render

import (
	"bytes"
	"fmt"
	"github.com/thluiz/vox/internal/domain/content"
	"strings"
	"text/template"
)

// ItemRenderer renders one list line per recent post.
type ItemRenderer struct {
	tpl *template.Template
}

func NewItemRenderer(itemTemplate string) (*ItemRenderer, error) {
	tpl, err := template.New("item").Funcs(templateFuncs()).Option("missingkey=error").Parse(itemTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse item template: %w", err)
	}
	return &ItemRenderer{tpl: tpl}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"trim":  strings.TrimSpace,
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

func (r *ItemRenderer) RenderItems(posts []content.RecentPost) ([]string, error) {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		line, err := r.exec(p)
		if err != nil {
			return nil, fmt.Errorf("render item %s: %w", p.Link, err)
		}
		out = append(out, line)
	}
	return out, nil
}

func (r *ItemRenderer) exec(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	line := buf.String()
	// anything else would not be recognized as part of the section next run
	if !strings.HasPrefix(line, "- ") || len(line) < 3 || strings.ContainsAny(line, "\r\n") {
		return "", fmt.Errorf("item %q is not a single '- ' list line", line)
	}
	return line, nil
}
