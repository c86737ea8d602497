package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"

	"github.com/yuin/goldmark"
)

// Renderer wraps HTML bodies in layout templates read from a filesystem.
type Renderer struct {
	fs fs.FS
	md goldmark.Markdown

	// Parsed layouts, keyed by file name.
	layoutCache map[string]*template.Template
	layoutDir   string

	mu sync.RWMutex
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	LayoutDir string // Default: "layouts"
}

// NewRenderer creates a renderer with default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a renderer with custom config.
func NewRendererWithConfig(filesystem fs.FS, opts RendererConfig) *Renderer {
	if opts.LayoutDir == "" {
		opts.LayoutDir = "layouts"
	}

	return &Renderer{
		fs:          filesystem,
		layoutDir:   opts.LayoutDir,
		md:          goldmark.New(goldmark.WithExtensions(NewRunbookExtension())),
		layoutCache: make(map[string]*template.Template),
	}
}

// LayoutData is passed to every layout.
type LayoutData struct {
	Content template.HTML // trusted body, inserted as is
	Note    template.HTML // rendered markdown note, may be empty
	Subject string
	Locale  string
}

// Markdown converts a markdown note to HTML. Raw HTML in the note is dropped.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: markdown: %v", ErrRenderFailed, err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML by default
}

// Wrap executes the named layout around data.Content.
// An empty layout name returns the content unchanged.
func (r *Renderer) Wrap(layout string, data LayoutData) (string, error) {
	if layout == "" {
		return string(data.Content), nil
	}

	tmpl, err := r.getLayout(layout)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("%w: failed to execute layout %s: %v", ErrRenderFailed, layout, err)
	}
	return out.String(), nil
}

// getLayout returns a cached layout template or parses and caches it.
func (r *Renderer) getLayout(name string) (*template.Template, error) {
	r.mu.RLock()
	if cached, ok := r.layoutCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := r.layoutCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layoutCache[name] = tmpl
	return tmpl, nil
}
