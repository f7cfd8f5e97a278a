package entforge

import (
	"net/http"

	"github.com/gin-gonic/gin/render"
)

var _ render.HTMLRender = (*PreviewRender)(nil)

// PreviewRender is a gin render.HTMLRender backed by an Engine, so generated
// artifacts can be previewed from a gin app before being written anywhere.
type PreviewRender struct {
	e *Engine
}

// NewPreviewRender creates a new PreviewRender.
func NewPreviewRender(e *Engine) *PreviewRender {
	return &PreviewRender{e: e}
}

// Instance returns a new render.Render for the named template.
func (p *PreviewRender) Instance(name string, data any) render.Render {
	ctx, _ := data.(Context)
	if ctx == nil {
		if m, ok := data.(map[string]any); ok {
			ctx = Context(m)
		}
	}
	return &Render{e: p.e, name: name, ctx: ctx}
}

// Render renders one template with its context and writes to w.
type Render struct {
	e    *Engine
	name string
	ctx  Context
}

// Render writes the rendered template to w.
func (r *Render) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	return r.e.Render(w, r.name, r.ctx)
}

// WriteContentType writes a plain-text content type to the response header if
// not set. Generated output is source text, not HTML.
func (r *Render) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = []string{"text/plain; charset=utf-8"}
	}
}
