package protocol

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/pyselect/internal/block"
	"github.com/dshills/pyselect/internal/engine/buffer"
	"github.com/dshills/pyselect/internal/logging"
	"github.com/dshills/pyselect/internal/project"
)

// DefaultMaxLineSize is the longest request line accepted.
const DefaultMaxLineSize = 16 << 20

// Method names.
const (
	MethodResolve  = "resolve"
	MethodClassify = "classify"
	MethodOutline  = "outline"
	MethodShutdown = "shutdown"
)

// LanguageGuard decides whether a document may be resolved.
type LanguageGuard interface {
	Matches(path, languageID string) bool
}

// Server answers JSON-lines requests.
type Server struct {
	resolver    *block.Resolver
	languages   LanguageGuard
	docs        *DocumentCache
	logger      *logging.Logger
	maxLineSize int
	maxDepth    int

	mu  sync.Mutex
	out *bufio.Writer

	requests atomic.Int64
	failures atomic.Int64
}

// Option configures a Server.
type Option func(*Server)

// WithResolver sets the default resolver. Requests may override its mode
// and keywords.
func WithResolver(r *block.Resolver) Option {
	return func(s *Server) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithLanguageGuard restricts resolve to matching documents.
func WithLanguageGuard(g LanguageGuard) Option {
	return func(s *Server) {
		s.languages = g
	}
}

// WithCache sets the document cache.
func WithCache(c *DocumentCache) Option {
	return func(s *Server) {
		if c != nil {
			s.docs = c
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l.WithComponent("protocol")
		}
	}
}

// WithMaxLineSize sets the longest request line accepted.
func WithMaxLineSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLineSize = n
		}
	}
}

// WithOutlineDepth sets the default nesting depth of outline results.
func WithOutlineDepth(depth int) Option {
	return func(s *Server) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// NewServer creates a server.
func NewServer(opts ...Option) (*Server, error) {
	s := &Server{
		resolver:    block.NewResolver(),
		logger:      logging.NullLogger,
		maxLineSize: DefaultMaxLineSize,
		maxDepth:    1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.docs == nil {
		docs, err := NewDocumentCache(DefaultCacheSize, 0)
		if err != nil {
			return nil, err
		}
		s.docs = docs
	}
	return s, nil
}

// Requests returns the number of requests handled.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// Failures returns the number of requests answered with an error.
func (s *Server) Failures() int64 {
	return s.failures.Load()
}

// Serve reads requests from r and writes responses to w until r is
// exhausted, a shutdown request arrives or ctx is canceled.
// End of input and shutdown return nil.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.mu.Lock()
	s.out = bufio.NewWriter(w)
	s.mu.Unlock()

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, min(64*1024, s.maxLineSize)), s.maxLineSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
		err := scanner.Err()
		if errors.Is(err, bufio.ErrTooLong) {
			err = ErrLineTooLong
		}
		readErr <- err
	}()

	s.logger.Info("serving requests")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("read request: %w", err)
			}
			s.logger.Info("input closed after %d requests", s.requests.Load())
			return nil
		case line := <-lines:
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			resp, err := s.Handle(line)
			if werr := s.write(resp); werr != nil {
				return fmt.Errorf("write response: %w", werr)
			}
			if errors.Is(err, ErrShutdown) {
				s.logger.Info("shutdown after %d requests", s.requests.Load())
				return nil
			}
		}
	}
}

func (s *Server) write(resp []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(resp); err != nil {
		return err
	}
	if err := s.out.WriteByte('\n'); err != nil {
		return err
	}
	return s.out.Flush()
}

// Handle answers a single request line. The returned error is ErrShutdown
// for a shutdown request and nil otherwise; request failures are reported
// inside the response.
func (s *Server) Handle(line []byte) ([]byte, error) {
	s.requests.Add(1)

	if !gjson.ValidBytes(line) {
		return s.fail("null", errorf(CodeParseError, "invalid JSON")), nil
	}
	req := gjson.ParseBytes(line)
	if !req.IsObject() {
		return s.fail("null", errorf(CodeInvalidRequest, "request must be an object")), nil
	}

	id := req.Get("id").Raw
	if id == "" {
		id = "null"
	}
	method := req.Get("method")
	if method.Type != gjson.String || method.Str == "" {
		return s.fail(id, errorf(CodeInvalidRequest, "missing method")), nil
	}
	params := req.Get("params")

	log := s.logger.WithFields(map[string]any{"method": method.Str, "id": id})
	log.Debug("request")

	var (
		result string
		rpcErr *RPCError
	)
	switch method.Str {
	case MethodResolve:
		result, rpcErr = s.resolve(params)
	case MethodClassify:
		result, rpcErr = s.classify(params)
	case MethodOutline:
		result, rpcErr = s.outline(params)
	case MethodShutdown:
		return s.reply(id, "null"), ErrShutdown
	default:
		rpcErr = errorf(CodeMethodNotFound, "unknown method %q", method.Str)
	}

	if rpcErr != nil {
		log.Warn("request failed: %v", rpcErr)
		return s.fail(id, rpcErr), nil
	}
	return s.reply(id, result), nil
}

func (s *Server) reply(id, result string) []byte {
	resp, _ := sjson.SetRawBytes([]byte(`{}`), "id", []byte(id))
	resp, _ = sjson.SetRawBytes(resp, "result", []byte(result))
	return resp
}

func (s *Server) fail(id string, e *RPCError) []byte {
	s.failures.Add(1)
	resp, _ := sjson.SetRawBytes([]byte(`{}`), "id", []byte(id))
	resp, _ = sjson.SetBytes(resp, "error.code", e.Code)
	resp, _ = sjson.SetBytes(resp, "error.message", e.Message)
	return resp
}

// resolve answers {"startLine","endLine","endColumn"} or null.
func (s *Server) resolve(params gjson.Result) (string, *RPCError) {
	path := params.Get("path").String()
	lang := params.Get("language").String()
	if s.languages != nil && (lang != "" || path != "") {
		if !s.languages.Matches(path, lang) {
			s.logger.Debug("skipping document %s (language %q)", path, lang)
			return "null", nil
		}
	}

	snap, rpcErr := s.document(params)
	if rpcErr != nil {
		return "", rpcErr
	}
	sel, rpcErr := selectionParam(params)
	if rpcErr != nil {
		return "", rpcErr
	}
	r, rpcErr := s.resolverFor(params)
	if rpcErr != nil {
		return "", rpcErr
	}

	rng, err := r.Resolve(snap, sel)
	if err != nil {
		if block.IsNoSelection(err) {
			s.logger.Debug("no selection for %s: %v", sel, err)
			return "null", nil
		}
		return "", newError(CodeInternalError, err)
	}

	out, _ := sjson.Set(`{}`, "startLine", rng.StartLine)
	out, _ = sjson.Set(out, "endLine", rng.EndLine)
	out, _ = sjson.Set(out, "endColumn", snap.LineLen(rng.EndLine))
	if params.Get("includeText").Bool() {
		out, _ = sjson.Set(out, "text", snap.RangeText(rng))
	}
	return out, nil
}

// classify answers the kind and indentation of one line, given either
// "text" or a document and "line".
func (s *Server) classify(params gjson.Result) (string, *RPCError) {
	var text string
	if t := params.Get("text"); t.Exists() && !params.Get("line").Exists() {
		text = t.String()
	} else {
		snap, rpcErr := s.document(params)
		if rpcErr != nil {
			return "", rpcErr
		}
		n := params.Get("line")
		if !n.Exists() {
			return "", errorf(CodeInvalidParams, "classify needs text or line")
		}
		if n.Int() < 0 || n.Int() >= int64(snap.LineCount()) {
			return "", errorf(CodeInvalidParams, "line %d out of range", n.Int())
		}
		text = snap.LineText(int(n.Int()))
	}

	r, rpcErr := s.resolverFor(params)
	if rpcErr != nil {
		return "", rpcErr
	}
	indent, blank := block.MeasureIndent(text)
	kind := block.KindPlain
	if !blank {
		kind = r.Classifier().Classify(text)
	}

	out, _ := sjson.Set(`{}`, "kind", kind.String())
	out, _ = sjson.Set(out, "indent", indent)
	out, _ = sjson.Set(out, "blank", blank)
	return out, nil
}

// outline answers the block outline of a document as a JSON array.
func (s *Server) outline(params gjson.Result) (string, *RPCError) {
	snap, rpcErr := s.document(params)
	if rpcErr != nil {
		return "", rpcErr
	}
	r, rpcErr := s.resolverFor(params)
	if rpcErr != nil {
		return "", rpcErr
	}
	depth := s.maxDepth
	if d := params.Get("maxDepth"); d.Exists() {
		depth = int(d.Int())
	}
	return OutlineJSON(project.Outline(snap, r, depth)), nil
}

// OutlineJSON encodes blocks as a JSON array of {startLine, endLine, kind,
// header, children} objects.
func OutlineJSON(blocks []project.Block) string {
	items := make([]string, 0, len(blocks))
	for _, b := range blocks {
		item, _ := sjson.Set(`{}`, "startLine", b.Range.StartLine)
		item, _ = sjson.Set(item, "endLine", b.Range.EndLine)
		item, _ = sjson.Set(item, "kind", b.Kind.String())
		item, _ = sjson.Set(item, "header", b.Header)
		if len(b.Children) > 0 {
			item, _ = sjson.SetRaw(item, "children", OutlineJSON(b.Children))
		}
		items = append(items, item)
	}
	return "[" + strings.Join(items, ",") + "]"
}

// document returns the request's document from "text" or "path".
func (s *Server) document(params gjson.Result) (*buffer.Snapshot, *RPCError) {
	if text := params.Get("text"); text.Exists() {
		return buffer.NewBufferFromString(text.String()).Snapshot(), nil
	}
	path := params.Get("path").String()
	if path == "" {
		return nil, newError(CodeInvalidParams, ErrNoDocument)
	}
	snap, err := s.docs.Get(path)
	if err != nil {
		return nil, newError(CodeInvalidParams, err)
	}
	return snap, nil
}

// resolverFor applies the request's "mode" and "keywords" overrides.
func (s *Server) resolverFor(params gjson.Result) (*block.Resolver, *RPCError) {
	mode := params.Get("mode")
	keywords := params.Get("keywords")
	if !mode.Exists() && !keywords.Exists() {
		return s.resolver, nil
	}

	opts := []block.Option{block.WithMode(s.resolver.Mode()), block.WithClassifier(s.resolver.Classifier())}
	if mode.Exists() {
		m, err := block.ParseMode(mode.String())
		if err != nil {
			return nil, newError(CodeInvalidParams, err)
		}
		opts = append(opts, block.WithMode(m))
	}
	if keywords.Exists() {
		if !keywords.IsArray() {
			return nil, errorf(CodeInvalidParams, "keywords must be an array")
		}
		var kws []string
		for _, k := range keywords.Array() {
			kws = append(kws, k.String())
		}
		opts = append(opts, block.WithKeywords(kws...))
	}
	return block.NewResolver(opts...), nil
}

// selectionParam reads "selection" ({start, end, active, empty}) or a bare
// "line" cursor.
func selectionParam(params gjson.Result) (block.Selection, *RPCError) {
	sel := params.Get("selection")
	if !sel.Exists() {
		line := params.Get("line")
		if !line.Exists() {
			return block.Selection{}, errorf(CodeInvalidParams, "missing selection")
		}
		if line.Int() < 0 {
			return block.Selection{}, errorf(CodeInvalidParams, "negative line %d", line.Int())
		}
		return block.Cursor(int(line.Int())), nil
	}
	if !sel.IsObject() {
		return block.Selection{}, errorf(CodeInvalidParams, "selection must be an object")
	}

	start, end := int(sel.Get("start").Int()), int(sel.Get("end").Int())
	if !sel.Get("end").Exists() {
		end = start
	}
	if start < 0 || end < start {
		return block.Selection{}, errorf(CodeInvalidParams, "invalid selection lines %d-%d", start, end)
	}

	empty := start == end
	if e := sel.Get("empty"); e.Exists() {
		empty = e.Bool()
	}
	active := end
	if a := sel.Get("active"); a.Exists() {
		active = int(a.Int())
		if active < start || active > end {
			return block.Selection{}, errorf(CodeInvalidParams, "active line %d outside selection %d-%d", active, start, end)
		}
	}

	if empty {
		if start != end {
			return block.Selection{}, errorf(CodeInvalidParams, "empty selection spans lines %d-%d", start, end)
		}
		return block.Cursor(start), nil
	}
	return block.Selection{StartLine: start, EndLine: end, ActiveLine: active}, nil
}
