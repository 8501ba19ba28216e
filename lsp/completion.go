package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/cyls"
	"github.com/rlch/cyls/completion"
)

// Completion handles textDocument/completion requests.
func (s *Server) Completion(_ context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	s.logger.Debug("Completion",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		s.logger.Warn("Completion for unknown document", zap.String("uri", string(params.TextDocument.URI)))

		return nil, nil
	}

	caret := completion.Caret{Line: params.Position.Line, Column: params.Position.Character}
	items, ok := s.engine.Resolve(doc.Content, caret, s.Schema())
	if !ok {
		// No opinion; let the client fall back to its own behavior.
		return nil, nil
	}

	list := &protocol.CompletionList{
		IsIncomplete: false,
		Items:        make([]protocol.CompletionItem, 0, len(items)),
	}
	for _, item := range items {
		list.Items = append(list.Items, protocol.CompletionItem{
			Label: item.Label,
			Kind:  completionItemKind(item.Kind),
		})
	}

	return list, nil
}

func completionItemKind(kind cyls.ItemKind) protocol.CompletionItemKind {
	switch kind {
	case cyls.KindKeyword:
		return protocol.CompletionItemKindKeyword
	case cyls.KindTypeParameter:
		return protocol.CompletionItemKindTypeParameter
	case cyls.KindFunction:
		return protocol.CompletionItemKindFunction
	case cyls.KindValue:
		return protocol.CompletionItemKindValue
	default:
		return protocol.CompletionItemKindText
	}
}
