// Package lsp implements a Language Server Protocol server for Cypher.
package lsp

import (
	"context"
	"sync"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/cyls"
	"github.com/rlch/cyls/completion"
)

// Server implements the LSP server surface for Cypher documents. The
// embedded noopServer answers methods for capabilities we do not
// advertise; the protocol handler dispatches those regardless of what
// initialize returned.
type Server struct {
	noopServer

	client protocol.Client
	logger *zap.Logger
	engine *completion.Engine

	// Document and schema state
	mu        sync.RWMutex
	documents map[protocol.DocumentURI]*Document
	schema    *cyls.Schema

	// Server state
	initialized   bool
	shutdown      bool
	workspaceRoot string
}

var _ protocol.Server = (*Server)(nil)

// Document represents an open document in the server.
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Content string
}

// NewServer creates a new LSP server. schema may be nil; completions then
// offer keywords only until SetSchema is called.
func NewServer(client protocol.Client, logger *zap.Logger, schema *cyls.Schema) *Server {
	return &Server{
		client:    client,
		logger:    logger,
		engine:    completion.New(),
		documents: make(map[protocol.DocumentURI]*Document),
		schema:    schema,
	}
}

// SetSchema swaps the schema used for subsequent completions.
func (s *Server) SetSchema(schema *cyls.Schema) {
	s.mu.Lock()
	s.schema = schema
	s.mu.Unlock()
}

// Schema returns the current schema, which may be nil.
func (s *Server) Schema() *cyls.Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.schema
}

// Initialize handles the initialize request.
func (s *Server) Initialize(_ context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.logger.Info("Initialize", zap.Any("params", params))

	if params.RootURI != "" {
		s.workspaceRoot = URIToPath(params.RootURI)
	} else if params.RootPath != "" {
		s.workspaceRoot = params.RootPath
	}
	if s.workspaceRoot != "" {
		s.logger.Info("Workspace root", zap.String("root", s.workspaceRoot))
		s.loadWorkspaceSchema()
	}

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			// Full document sync - client sends entire content on change
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{":", ".", "$", "(", "["},
				ResolveProvider:   false,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "cyls",
			Version: "0.1.0",
		},
	}, nil
}

// loadWorkspaceSchema loads a schema file named by the workspace config, if
// any. Connection-based introspection is the caller's business; the server
// only reads what is already on disk.
func (s *Server) loadWorkspaceSchema() {
	cfg, path, err := cyls.FindConfig(s.workspaceRoot)
	if err != nil {
		s.logger.Info("No workspace config", zap.Error(err))

		return
	}
	if cfg.SchemaFile == "" {
		return
	}
	schema, err := cyls.LoadSchema(cfg.SchemaFile)
	if err != nil {
		s.logger.Warn("Failed to load schema file",
			zap.String("config", path),
			zap.String("schema", cfg.SchemaFile),
			zap.Error(err))

		return
	}
	s.logger.Info("Loaded workspace schema",
		zap.String("schema", cfg.SchemaFile),
		zap.Int("labels", len(schema.Labels)),
		zap.Int("relationshipTypes", len(schema.RelationshipTypes)))
	s.SetSchema(schema)
}

// DidChangeConfiguration reloads the workspace schema so a snapshot refreshed
// on disk takes effect without a restart.
func (s *Server) DidChangeConfiguration(_ context.Context, _ *protocol.DidChangeConfigurationParams) error {
	s.logger.Info("DidChangeConfiguration")
	if s.workspaceRoot != "" {
		s.loadWorkspaceSchema()
	}

	return nil
}

// Initialized handles the initialized notification.
func (s *Server) Initialized(_ context.Context, _ *protocol.InitializedParams) error {
	s.logger.Info("Initialized")
	s.initialized = true

	return nil
}

// Shutdown handles the shutdown request.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info("Shutdown")
	s.shutdown = true

	return nil
}

// Exit handles the exit notification.
func (s *Server) Exit(_ context.Context) error {
	s.logger.Info("Exit")
	// The main loop should handle exiting after this
	return nil
}

// DidOpen handles textDocument/didOpen notifications.
func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.logger.Info("DidOpen", zap.String("uri", string(params.TextDocument.URI)))

	doc := &Document{
		URI:     params.TextDocument.URI,
		Version: params.TextDocument.Version,
		Content: params.TextDocument.Text,
	}

	// Hold lock only for document map update
	s.mu.Lock()
	s.documents[params.TextDocument.URI] = doc
	s.mu.Unlock()

	// Publish diagnostics outside the lock to prevent deadlock
	s.publishDiagnostics(ctx, doc)

	return nil
}

// DidChange handles textDocument/didChange notifications.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.logger.Info("DidChange",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Int32("version", params.TextDocument.Version))

	// Hold the lock only for document state updates, not for RPC calls.
	// This prevents deadlock when the client sends requests while we're
	// publishing diagnostics.
	var docForDiagnostics *Document

	s.mu.Lock()
	doc, ok := s.documents[params.TextDocument.URI]
	if !ok {
		s.mu.Unlock()
		s.logger.Warn("DidChange for unknown document", zap.String("uri", string(params.TextDocument.URI)))

		return nil
	}

	// Full sync - take the last content change (should only be one with full sync)
	if len(params.ContentChanges) > 0 {
		doc.Content = params.ContentChanges[len(params.ContentChanges)-1].Text
		doc.Version = params.TextDocument.Version
		docForDiagnostics = doc
	}
	s.mu.Unlock()

	if docForDiagnostics != nil {
		s.publishDiagnostics(ctx, docForDiagnostics)
	}

	return nil
}

// DidClose handles textDocument/didClose notifications.
func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.logger.Info("DidClose", zap.String("uri", string(params.TextDocument.URI)))

	// Hold lock only for document map update
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	// Clear diagnostics outside the lock to prevent deadlock
	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	if err != nil {
		s.logger.Error("Failed to clear diagnostics", zap.Error(err))
	}

	return nil
}

// DidSave handles textDocument/didSave notifications.
func (s *Server) DidSave(_ context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.logger.Info("DidSave", zap.String("uri", string(params.TextDocument.URI)))

	return nil
}

// getDocument returns a document by URI (read-locked).
func (s *Server) getDocument(uri protocol.DocumentURI) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[uri]

	return doc, ok
}
