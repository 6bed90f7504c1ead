package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"cssfrag/misc"
)

//go:embed page.html.tmpl
var DefaultPageTemplate string

// Values is a struct that holds variables we make available for page
// template expansion.
type Values struct {
	Title     string
	Source    string
	Body      string
	Generator string
	Version   string
	Created   time.Time
}

// Page wraps rendered stylesheet into complete HTML document using text
// template with sprig functions. Empty tmpl selects DefaultPageTemplate.
func Page(tmpl, title, source, body string) ([]byte, error) {
	if tmpl == "" {
		tmpl = DefaultPageTemplate
	}
	t, err := template.New("page").Funcs(sprig.FuncMap()).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse page template: %w", err)
	}

	values := Values{
		Title:     title,
		Source:    source,
		Body:      body,
		Generator: misc.GetAppName(),
		Version:   misc.GetVersion(),
		Created:   time.Now(),
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, values); err != nil {
		return nil, fmt.Errorf("unable to expand page template: %w", err)
	}
	return buf.Bytes(), nil
}
