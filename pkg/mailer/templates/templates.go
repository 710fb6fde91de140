package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

var parsed = htmpl.Must(htmpl.ParseFS(FS, "*.tmpl"))

// RenderHTML renders the named template ("verify_email", "welcome",
// "order_confirmation") with the given data.
func RenderHTML(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := parsed.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Subject returns the subject line for a known template name.
func Subject(name, storeName string) string {
	switch name {
	case "verify_email":
		return "Verify your " + storeName + " account"
	case "welcome":
		return "Welcome to " + storeName + "!"
	case "order_confirmation":
		return "Your " + storeName + " order"
	}
	return storeName
}
