package errormail

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ListRenderer renders the report's metadata block as an HTML list.
type ListRenderer interface {
	RenderList(ctx context.Context, items []string) (string, error)
}

// ListRendererFunc adapts a plain function to ListRenderer.
type ListRendererFunc func(ctx context.Context, items []string) (string, error)

func (f ListRendererFunc) RenderList(ctx context.Context, items []string) (string, error) {
	return f(ctx, items)
}

// ItemList is an unordered list component; every item is escaped.
func ItemList(items []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="item-list"><ul>`); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := io.WriteString(w, "<li>"+templ.EscapeString(item)+"</li>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul></div>`)
		return err
	})
}

// TemplList renders items through the ItemList component.
type TemplList struct{}

func (TemplList) RenderList(ctx context.Context, items []string) (string, error) {
	var b strings.Builder
	if err := ItemList(items).Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// plainList is the fallback when the configured renderer fails.
func plainList(items []string) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(item))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
