package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/cyls/grammar"
)

// publishDiagnostics parses the document and reports the span the parser
// could not place, if any. The parse is best-effort, so there is at most one
// such span per document.
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	res := grammar.Parse(doc.Content)

	var diagnostics []protocol.Diagnostic
	if errNode := errorNode(res.Tree); errNode != nil {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    nodeRange(res, errNode),
			Severity: protocol.DiagnosticSeverityError,
			Source:   "cyls",
			Message:  "unparseable input",
		})
	}

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     uint32(doc.Version), //nolint:gosec // LSP version numbers are always non-negative
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.logger.Error("Failed to publish diagnostics", zap.Error(err))
	}
}

func errorNode(root *grammar.Node) *grammar.Node {
	for _, child := range root.Children {
		if child.Kind == grammar.RuleError {
			return child
		}
	}

	return nil
}

// nodeRange converts a node's token span to an LSP range. Lexer positions
// are one-based; LSP positions are zero-based.
func nodeRange(res *grammar.Result, node *grammar.Node) protocol.Range {
	start := res.Tokens[node.StartToken]
	stop := res.Tokens[node.StopToken]

	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(start.Pos.Line - 1),
			Character: uint32(start.Pos.Column - 1),
		},
		End: protocol.Position{
			Line:      uint32(stop.Pos.Line - 1),
			Character: uint32(stop.Pos.Column-1) + uint32(len(stop.Value)),
		},
	}
}
