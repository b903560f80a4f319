package renderer

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const templateDir = "templates/"

//go:embed templates/*.tmpl
var tplFS embed.FS

var tplCache sync.Map

// funcs adds to sprig what the templates need for input checks.
var funcs = template.FuncMap{
	"required": required,
}

// required returns val, or fails the execution with msg when val is nil or
// an empty string.
func required(msg string, val interface{}) (interface{}, error) {
	if val == nil {
		return nil, errors.New(msg)
	}
	if s, ok := val.(string); ok && s == "" {
		return nil, errors.New(msg)
	}
	return val, nil
}

func parse(name TemplateName) (*template.Template, error) {
	if cached, ok := tplCache.Load(name); ok {
		return cached.(*template.Template), nil
	}

	path := templateDir + string(name)
	t, err := template.New(string(name)).
		Funcs(sprig.TxtFuncMap()).
		Funcs(funcs).
		Option("missingkey=error").
		ParseFS(tplFS, path)
	if err != nil {
		return nil, fmt.Errorf("parsing template %q: %w", path, err)
	}

	actual, _ := tplCache.LoadOrStore(name, t)
	return actual.(*template.Template), nil
}

// Render merges the named template file with data.
func Render(name TemplateName, data any) (string, error) {
	t, err := parse(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// RenderS3URI renders TplS3URI without the trailing newline of the file.
func RenderS3URI(data S3URIData) (string, error) {
	out, err := Render(TplS3URI, data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// MustRenderS3URI is RenderS3URI for synth time, where a broken template
// can only abort.
func MustRenderS3URI(data S3URIData) string {
	out, err := RenderS3URI(data)
	if err != nil {
		panic(err)
	}
	return out
}
