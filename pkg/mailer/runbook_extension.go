package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// RunbookNode is an operator runbook link inside a mail note.
type RunbookNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

// KindRunbook is the node kind for RunbookNode.
var KindRunbook = ast.NewNodeKind("Runbook")

const runbookPrefix = "[!runbook|"

func (n *RunbookNode) Kind() ast.NodeKind {
	return KindRunbook
}

func (n *RunbookNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"URL": string(n.URL)}, nil)
}

// runbookParser parses [!runbook|Label](https://...).
type runbookParser struct{}

// NewRunbookParser creates the inline parser of runbook links.
func NewRunbookParser() parser.InlineParser {
	return &runbookParser{}
}

func (p *runbookParser) Trigger() []byte {
	return []byte{'['}
}

func (p *runbookParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, []byte(runbookPrefix)) {
		return nil
	}

	rest := line[len(runbookPrefix):]
	labelEnd := bytes.IndexByte(rest, ']')
	if labelEnd == -1 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != '(' {
		return nil
	}
	label := rest[:labelEnd]

	target := rest[labelEnd+2:]
	urlEnd := bytes.IndexByte(target, ')')
	if urlEnd == -1 {
		return nil
	}
	url := bytes.TrimSpace(target[:urlEnd])

	// Only web links make sense in an operator mail.
	if !bytes.HasPrefix(url, []byte("https://")) && !bytes.HasPrefix(url, []byte("http://")) {
		return nil
	}

	block.Advance(len(runbookPrefix) + labelEnd + 2 + urlEnd + 1)

	return &RunbookNode{URL: url, Label: label}
}

type runbookRenderer struct {
	html.Config
}

// NewRunbookRenderer creates the HTML renderer of runbook links.
func NewRunbookRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &runbookRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *runbookRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindRunbook, r.render)
}

func (r *runbookRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*RunbookNode)
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(n.URL))
	_, _ = w.WriteString(`" class="runbook">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)

	return ast.WalkContinue, nil
}

// RunbookExtension adds runbook links to goldmark.
type RunbookExtension struct{}

func (e *RunbookExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewRunbookParser(), 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRunbookRenderer(), 50),
	))
}

// NewRunbookExtension creates the runbook link extension.
func NewRunbookExtension() goldmark.Extender {
	return &RunbookExtension{}
}
