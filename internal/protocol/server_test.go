package protocol

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/pyselect/internal/project"
)

const source = "def foo():\n" +
	"    x = 1\n" +
	"\n" +
	"    y = 2\n" +
	"def bar():\n" +
	"    return 3"

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	s, err := NewServer(opts...)
	require.NoError(t, err)
	return s
}

// request builds a request line with params set from path/value pairs.
func request(t *testing.T, id any, method string, params ...any) []byte {
	t.Helper()
	req, err := sjson.SetBytes([]byte(`{}`), "id", id)
	require.NoError(t, err)
	req, err = sjson.SetBytes(req, "method", method)
	require.NoError(t, err)
	for i := 0; i+1 < len(params); i += 2 {
		req, err = sjson.SetBytes(req, "params."+params[i].(string), params[i+1])
		require.NoError(t, err)
	}
	return req
}

func handle(t *testing.T, s *Server, line []byte) gjson.Result {
	t.Helper()
	resp, err := s.Handle(line)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(resp), "invalid response %s", resp)
	return gjson.ParseBytes(resp)
}

func TestResolveCursor(t *testing.T) {
	s := newTestServer(t)

	resp := handle(t, s, request(t, 1, MethodResolve, "text", source, "selection.start", 0, "selection.end", 0))

	assert.Equal(t, int64(1), resp.Get("id").Int())
	assert.False(t, resp.Get("error").Exists())
	assert.Equal(t, int64(0), resp.Get("result.startLine").Int())
	assert.Equal(t, int64(3), resp.Get("result.endLine").Int())
	assert.Equal(t, int64(9), resp.Get("result.endColumn").Int())
}

func TestResolveExtendsSelection(t *testing.T) {
	s := newTestServer(t)

	resp := handle(t, s, request(t, 2, MethodResolve,
		"text", source,
		"selection.start", 0, "selection.end", 3, "selection.active", 3, "selection.empty", false,
		"includeText", true))

	assert.Equal(t, int64(0), resp.Get("result.startLine").Int())
	assert.Equal(t, int64(5), resp.Get("result.endLine").Int())
	assert.Equal(t, int64(12), resp.Get("result.endColumn").Int())
	assert.Equal(t, source, resp.Get("result.text").String())
}

func TestResolveNoSelection(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		params []any
	}{
		{"blank anchor", []any{"text", source, "line", 2}},
		{"past end", []any{"text", source, "line", 40}},
		{"end of buffer", []any{"text", source, "selection.start", 0, "selection.end", 5, "selection.empty", false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := handle(t, s, request(t, 3, MethodResolve, tt.params...))
			result := resp.Get("result")
			require.True(t, result.Exists())
			assert.Equal(t, gjson.Null, result.Type)
			assert.False(t, resp.Get("error").Exists())
		})
	}
}

func TestResolveModeAndKeywordOverrides(t *testing.T) {
	s := newTestServer(t)

	resp := handle(t, s, request(t, 4, MethodResolve, "text", source, "line", 1, "mode", "forward"))
	assert.Equal(t, int64(1), resp.Get("result.startLine").Int())
	assert.Equal(t, int64(1), resp.Get("result.endLine").Int())

	src := "match x:\n    case 1:\n\n        pass\ndef g():\n    pass"
	resp = handle(t, s, request(t, 5, MethodResolve, "text", src, "line", 0))
	assert.Equal(t, int64(1), resp.Get("result.endLine").Int(), "a plain anchor stops at the blank line")

	resp = handle(t, s, request(t, 6, MethodResolve, "text", src, "line", 0, "keywords", []string{"match", "case"}))
	assert.Equal(t, int64(0), resp.Get("result.startLine").Int())
	assert.Equal(t, int64(3), resp.Get("result.endLine").Int())
}

func TestResolveLanguageGuard(t *testing.T) {
	m, err := project.NewLanguageMatcher([]string{"python"}, []string{"**/*.py"})
	require.NoError(t, err)
	s := newTestServer(t, WithLanguageGuard(m))

	resp := handle(t, s, request(t, 6, MethodResolve, "text", source, "line", 0, "language", "go", "path", "main.go"))
	assert.Equal(t, gjson.Null, resp.Get("result").Type)

	resp = handle(t, s, request(t, 7, MethodResolve, "text", source, "line", 0, "path", "pkg/app.py"))
	assert.Equal(t, int64(3), resp.Get("result.endLine").Int())

	resp = handle(t, s, request(t, 8, MethodResolve, "text", source, "line", 0))
	assert.Equal(t, int64(3), resp.Get("result.endLine").Int(), "documents without path or language are not filtered")
}

func TestResolvePathUsesCache(t *testing.T) {
	cache, err := NewDocumentCache(4, 0)
	require.NoError(t, err)
	s := newTestServer(t, WithCache(cache))

	path := filepath.Join(t.TempDir(), "app.py")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	for i := 0; i < 2; i++ {
		resp := handle(t, s, request(t, i, MethodResolve, "path", path, "line", 0))
		assert.Equal(t, int64(3), resp.Get("result.endLine").Int())
	}
	assert.Equal(t, 1, cache.Len())

	require.NoError(t, os.WriteFile(path, []byte("x = 1\ny = 2\n"), 0o644))
	resp := handle(t, s, request(t, 3, MethodResolve, "path", path, "line", 0))
	assert.Equal(t, int64(1), resp.Get("result.endLine").Int(), "a changed file is re-read")
	assert.Equal(t, 2, cache.Len())

	cache.Purge()
	assert.Zero(t, cache.Len())
}

func TestRequestErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		line []byte
		id   string
		code int64
	}{
		{"invalid json", []byte(`{"id":1,`), "null", CodeParseError},
		{"not an object", []byte(`[1,2]`), "null", CodeInvalidRequest},
		{"missing method", []byte(`{"id":"a"}`), `"a"`, CodeInvalidRequest},
		{"unknown method", request(t, "b", "explode"), `"b"`, CodeMethodNotFound},
		{"no document", request(t, 1, MethodResolve, "line", 0), "1", CodeInvalidParams},
		{"missing file", request(t, 1, MethodResolve, "path", "/does/not/exist.py", "line", 0), "1", CodeInvalidParams},
		{"no selection", request(t, 1, MethodResolve, "text", source), "1", CodeInvalidParams},
		{"inverted selection", request(t, 1, MethodResolve, "text", source, "selection.start", 3, "selection.end", 1), "1", CodeInvalidParams},
		{"empty multi-line", request(t, 1, MethodResolve, "text", source, "selection.start", 1, "selection.end", 2, "selection.empty", true), "1", CodeInvalidParams},
		{"bad mode", request(t, 1, MethodResolve, "text", source, "line", 0, "mode", "sideways"), "1", CodeInvalidParams},
		{"classify without line", request(t, 1, MethodClassify, "path", "x.py"), "1", CodeInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := handle(t, s, tt.line)
			assert.Equal(t, tt.id, resp.Get("id").Raw)
			assert.Equal(t, tt.code, resp.Get("error.code").Int())
			assert.NotEmpty(t, resp.Get("error.message").String())
			assert.False(t, resp.Get("result").Exists())
		})
	}
	assert.Equal(t, int64(len(tests)), s.Failures())
}

func TestClassify(t *testing.T) {
	s := newTestServer(t)

	resp := handle(t, s, request(t, 1, MethodClassify, "text", "    if x:"))
	assert.Equal(t, "opener", resp.Get("result.kind").String())
	assert.Equal(t, int64(4), resp.Get("result.indent").Int())
	assert.False(t, resp.Get("result.blank").Bool())

	resp = handle(t, s, request(t, 2, MethodClassify, "text", source, "line", 4))
	assert.Equal(t, "definition", resp.Get("result.kind").String())

	resp = handle(t, s, request(t, 3, MethodClassify, "text", " \t"))
	assert.Equal(t, "plain", resp.Get("result.kind").String())
	assert.True(t, resp.Get("result.blank").Bool())

	resp = handle(t, s, request(t, 4, MethodClassify, "text", source, "line", 9))
	assert.Equal(t, int64(CodeInvalidParams), resp.Get("error.code").Int())
}

func TestOutline(t *testing.T) {
	src := "import os\n\n@decorator\ndef f():\n    if x:\n        a()\n    return 1\n\nclass C:\n    def m(self):\n        pass"
	s := newTestServer(t)

	resp := handle(t, s, request(t, 1, MethodOutline, "text", src))
	blocks := resp.Get("result").Array()
	require.Len(t, blocks, 3)
	assert.Equal(t, "import os", blocks[0].Get("header").String())
	assert.Equal(t, "decorator", blocks[1].Get("kind").String())
	assert.Equal(t, int64(2), blocks[1].Get("startLine").Int())
	assert.Equal(t, int64(6), blocks[1].Get("endLine").Int())
	assert.False(t, blocks[2].Get("children").Exists())

	resp = handle(t, s, request(t, 2, MethodOutline, "text", src, "maxDepth", 2))
	children := resp.Get("result.2.children").Array()
	require.Len(t, children, 1)
	assert.Equal(t, "def m(self):", children[0].Get("header").String())
	assert.Equal(t, int64(9), children[0].Get("startLine").Int())
	assert.Equal(t, int64(10), children[0].Get("endLine").Int())
}

func TestServe(t *testing.T) {
	s := newTestServer(t)

	var in bytes.Buffer
	in.Write(request(t, 1, MethodResolve, "text", source, "line", 0))
	in.WriteString("\n\n")
	in.Write(request(t, 2, MethodShutdown))
	in.WriteString("\n")
	in.Write(request(t, 3, MethodResolve, "text", source, "line", 0))
	in.WriteString("\n")

	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), &in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2, "requests after shutdown are not answered")
	assert.Equal(t, int64(3), gjson.Get(lines[0], "result.endLine").Int())
	assert.Equal(t, `{"id":2,"result":null}`, lines[1])
	assert.Equal(t, int64(2), s.Requests())
}

func TestServeEndOfInput(t *testing.T) {
	s := newTestServer(t)

	in := strings.NewReader(string(request(t, 1, MethodClassify, "text", "def f():")) + "\n")
	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), in, &out))
	assert.Equal(t, "definition", gjson.Get(out.String(), "result.kind").String())
}

func TestServeLineTooLong(t *testing.T) {
	s := newTestServer(t, WithMaxLineSize(32))

	in := strings.NewReader(strings.Repeat("x", 100) + "\n")
	err := s.Serve(context.Background(), in, io.Discard)
	assert.ErrorIs(t, err, ErrLineTooLong)
}

func TestServeCanceled(t *testing.T) {
	s := newTestServer(t)

	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Serve(ctx, r, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRPCError(t *testing.T) {
	e := newError(CodeInvalidParams, ErrNoDocument)
	assert.ErrorIs(t, e, ErrNoDocument)
	assert.Contains(t, e.Error(), "-32602")
}
