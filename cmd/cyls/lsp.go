package main

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rlch/cyls"
	"github.com/rlch/cyls/lsp"
)

func lspCommand() *cli.Command {
	return &cli.Command{
		Name:  "lsp",
		Usage: "Run the language server over stdio",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "schema",
				Usage: "schema YAML file to complete against",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: runLSP,
	}
}

func runLSP(ctx context.Context, cmd *cli.Command) error {
	// Log to stderr; stdout carries the LSP stream.
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cmd.Bool("debug") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	var schema *cyls.Schema
	if path := cmd.String("schema"); path != "" {
		schema, err = cyls.LoadSchema(path)
		if err != nil {
			return err
		}
	}

	logger.Info("Starting cyls language server")

	return serve(ctx, logger, os.Stdin, os.Stdout, schema)
}

func serve(ctx context.Context, logger *zap.Logger, in io.Reader, out io.Writer, schema *cyls.Schema) error {
	// JSON-RPC connection over stdio
	stream := jsonrpc2.NewStream(&readWriteCloser{in, out})
	conn := jsonrpc2.NewConn(stream)

	client := protocol.ClientDispatcher(conn, logger)
	server := lsp.NewServer(client, logger, schema)

	conn.Go(ctx, protocol.ServerHandler(server, nil))

	<-conn.Done()

	return conn.Err()
}

// readWriteCloser wraps separate reader/writer into io.ReadWriteCloser.
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error {
	if c, ok := rwc.Writer.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
