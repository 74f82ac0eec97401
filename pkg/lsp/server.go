package lsp

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"unicode/utf8"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.yle.sh/pkg/cli/linebuf"
	"src.yle.sh/pkg/edit/complete"
	"src.yle.sh/pkg/logutil"
	"src.yle.sh/pkg/parse"
)

var logger = logutil.GetLogger("[lsp] ")

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	gen     complete.Generator
	trace   *log.Logger
	content map[lsp.DocumentURI]string
}

func newServer(gen complete.Generator, trace *log.Logger) *server {
	return &server{gen, trace, make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/completion": s.completion,

		// Required by the protocol.
		"initialized": noop,
		// Called by clients even when server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			logger.Printf("unsupported method %s", req.Method)
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{
				TriggerCharacters: []string{"/"},
			},
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	idx := lspPositionToIdx(content, params.Position)
	buf := linebuf.New(content)
	buf.SetDot(utf8.RuneCountInString(content[:idx]))
	ctx := complete.ContextAt(buf)

	s.trace.Print("completion start")
	cands, err := s.gen.Generate(ctx)
	if err != nil {
		s.trace.Printf("generator failed: %v", err)
		logger.Printf("generator failed: %v", err)
		cands = nil
	}
	s.trace.Printf("got %d candidate(s)", len(cands))
	s.trace.Print("completion end")

	// Edits insert at the cursor, so that the text already typed and its
	// quoting are left alone. A dangling backslash is replaced, since the
	// inserted text carries its own escapes.
	pos := lspPositionFromIdx(content, idx)
	lspRange := lsp.Range{Start: pos, End: pos}
	if ctx.PendingBackslash {
		lspRange.Start = lspPositionFromIdx(content, idx-1)
	}
	lspItems := make([]lsp.CompletionItem, len(cands))
	for i, c := range cands {
		lspItems[i] = lsp.CompletionItem{
			Label:      c.Display(),
			Kind:       lspKind(c.Kind),
			FilterText: c.Value,
			TextEdit: &lsp.TextEdit{
				Range:   lspRange,
				NewText: insertText(c, ctx),
			},
		}
	}
	return lspItems, nil
}

// Returns the text that completes the word to c, quoted as the word is.
// Directories keep the word open so that completion can continue in them.
func insertText(c complete.Candidate, ctx complete.Context) string {
	tail := c.Value
	if runes := []rune(tail); ctx.ExpandedLen <= len(runes) {
		tail = string(runes[ctx.ExpandedLen:])
	} else {
		tail = ""
	}
	text := parse.Quote(tail, ctx.Quote)
	if c.Kind == complete.Dir {
		if c.Value != "" && !strings.HasSuffix(c.Value, "/") {
			text += "/"
		}
		return text
	}
	switch ctx.Quote {
	case parse.QuoteSingle:
		text += "'"
	case parse.QuoteDouble:
		text += `"`
	}
	return text
}

func lspKind(k complete.Kind) lsp.CompletionItemKind {
	switch k {
	case complete.File:
		return lsp.CIKFile
	case complete.Dir:
		return lsp.CIKFolder
	case complete.Command:
		return lsp.CIKFunction
	default:
		return lsp.CIKText
	}
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(content)})
}

// Reports quotes that are not closed at the end of the document. Comments
// are ignored.
func diagnostics(content string) []lsp.Diagnostic {
	_, err := parse.Unquote(parse.StripComments(content))
	if err == nil {
		return []lsp.Diagnostic{}
	}
	end := lspPositionFromIdx(content, len(content))
	return []lsp.Diagnostic{{
		Range:    lsp.Range{Start: end, End: end},
		Severity: lsp.Error,
		Source:   "parse",
		Message:  err.Error(),
	}}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// Ignore \n if it's part of a \r\n sequence
			} else {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
