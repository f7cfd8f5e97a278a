package entforge

import (
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"model.stub":                 {Data: []byte("type {{ Name }} struct {}")},
		"nested/repository.tmpl":     {Data: []byte("repo for {{ Name }}")},
		"notes.txt":                  {Data: []byte("not a template")},
		"nested/deeper/handler.stub": {Data: []byte("handler {{ Name }}")},
	}
}

func TestEngineLoad(t *testing.T) {
	eng := NewEngineFS(testFS())
	require.NoError(t, eng.Load())

	assert.Equal(t, []string{"model", "nested/deeper/handler", "nested/repository"}, eng.Names())

	_, ok := eng.Template("notes")
	assert.False(t, ok, "non-template extensions must be skipped")
}

func TestEngineLoadFailsOnBadTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"good.stub": {Data: []byte("{{ Name }}")},
		"bad.stub":  {Data: []byte("{% if a %}X")},
	}
	eng := NewEngineFS(fsys)
	err := eng.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnterminatedBlock)

	// a failed load leaves nothing half-registered
	assert.Empty(t, eng.Names())
}

func TestEngineRenderByName(t *testing.T) {
	eng := NewEngineFS(testFS())
	require.NoError(t, eng.Load())

	var sb strings.Builder
	require.NoError(t, eng.Render(&sb, "model", Context{"Name": "Order"}))
	assert.Equal(t, "type Order struct {}", sb.String())

	out, err := eng.RenderString("nested/repository", Context{"Name": "Order"})
	require.NoError(t, err)
	assert.Equal(t, "repo for Order", out)
}

func TestEngineRenderUnknownName(t *testing.T) {
	eng := NewEngineFS(testFS())
	require.NoError(t, eng.Load())

	var sb strings.Builder
	err := eng.Render(&sb, "nope", Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not loaded")
}

func TestEngineParseCachesByContent(t *testing.T) {
	eng := NewEngineFS(nil)

	a, err := eng.Parse("{{ Name }} one")
	require.NoError(t, err)
	b, err := eng.Parse("{{ Name }} one")
	require.NoError(t, err)
	c, err := eng.Parse("{{ Name }} two")
	require.NoError(t, err)

	assert.Same(t, a, b, "identical content must parse once")
	assert.NotSame(t, a, c)
}

func TestEngineParseConcurrent(t *testing.T) {
	eng := NewEngineFS(nil)
	src := "{% for x in xs %}{{ x }}{% endfor %}"

	var wg sync.WaitGroup
	results := make([]*Template, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tmpl, err := eng.Parse(src)
			if err == nil {
				results[i] = tmpl
			}
		}(i)
	}
	wg.Wait()

	// all callers converge on one cached template
	cached, err := eng.Parse(src)
	require.NoError(t, err)
	for i, tmpl := range results {
		require.NotNil(t, tmpl, "goroutine %d", i)
		assert.Same(t, cached, tmpl, "goroutine %d", i)
	}
}

func TestEnginePrefixedFS(t *testing.T) {
	fsys := fstest.MapFS{
		"views/model.stub": {Data: []byte("{{ Name }}")},
	}
	eng := NewEngineFS(fsys, "views")
	require.NoError(t, eng.Load())

	_, ok := eng.Template("model")
	assert.True(t, ok)
}
