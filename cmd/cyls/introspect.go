package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rlch/cyls"
	"github.com/rlch/cyls/databases/neo4j"
)

// ErrNoURI is returned when neither flags nor config name a server.
var ErrNoURI = errors.New("no connection URI specified (use --uri or .cyls.yaml)")

func introspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "introspect",
		Usage: "Dump a completion schema from a running Neo4j server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "uri",
				Usage:   "database connection URI",
				Sources: cli.EnvVars("CYLS_URI"),
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "database username",
				Sources: cli.EnvVars("CYLS_USER"),
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "database password",
				Sources: cli.EnvVars("CYLS_PASS"),
			},
			&cli.StringFlag{
				Name:    "database",
				Aliases: []string{"d"},
				Usage:   "database to introspect",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write schema YAML to file instead of stdout",
			},
		},
		Action: runIntrospect,
	}
}

func runIntrospect(ctx context.Context, cmd *cli.Command) error {
	cfg := neo4jConfig(cmd)
	if cfg.URI == "" {
		return ErrNoURI
	}

	db, err := neo4j.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	schema, err := db.IntrospectSchema(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(schema)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if path := cmd.String("output"); path != "" {
		return os.WriteFile(path, data, 0o644)
	}
	_, err = os.Stdout.Write(data)

	return err
}

// neo4jConfig resolves connection settings, flags first, then any .cyls.yaml
// found from the working directory up.
func neo4jConfig(cmd *cli.Command) *cyls.Neo4jConfig {
	cfg := &cyls.Neo4jConfig{
		URI:      cmd.String("uri"),
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Database: cmd.String("database"),
	}
	if cfg.URI != "" {
		return cfg
	}

	wd, err := os.Getwd()
	if err != nil {
		return cfg
	}
	loaded, _, err := cyls.FindConfig(wd)
	if err != nil || loaded.Neo4j == nil {
		return cfg
	}

	cfg.URI = loaded.Neo4j.URI
	if cfg.Username == "" {
		cfg.Username = loaded.Neo4j.Username
	}
	if cfg.Password == "" {
		cfg.Password = loaded.Neo4j.Password
	}
	if cfg.Database == "" {
		cfg.Database = loaded.Neo4j.Database
	}

	return cfg
}
