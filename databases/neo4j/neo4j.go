// Package neo4j introspects completion schemas from a live Neo4j server.
package neo4j

import (
	"context"
	"fmt"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/rlch/cyls"
)

// Database holds a Neo4j connection used for schema introspection.
type Database struct {
	driver  neo4j.DriverWithContext
	session neo4j.SessionWithContext
	db      string
}

// New creates a new Neo4j connection from the given configuration.
func New(cfg *cyls.Neo4jConfig) (*Database, error) {
	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to create driver: %w", err)
	}

	d := &Database{
		driver: driver,
		db:     cfg.Database,
	}

	// Verify connectivity
	ctx := context.Background()

	err = driver.VerifyConnectivity(ctx)
	if err != nil {
		_ = driver.Close(ctx)

		return nil, fmt.Errorf("neo4j: failed to connect: %w", err)
	}

	sessionCfg := neo4j.SessionConfig{
		AccessMode: neo4j.AccessModeRead,
	}
	if d.db != "" {
		sessionCfg.DatabaseName = d.db
	}

	d.session = driver.NewSession(ctx, sessionCfg)

	return d, nil
}

// IntrospectSchema queries the server for everything completion needs:
// labels, relationship types, procedures, functions, databases, and aliases.
// Catalog queries that the server does not support, such as SHOW ALIASES on
// older versions, degrade to empty lists instead of failing the whole
// introspection.
func (d *Database) IntrospectSchema(ctx context.Context) (*cyls.Schema, error) {
	schema := &cyls.Schema{
		Procedures: map[string]cyls.Signature{},
		Functions:  map[string]cyls.Signature{},
	}

	labels, err := d.collectStrings(ctx, "CALL db.labels() YIELD label RETURN label", "label")
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to introspect labels: %w", err)
	}
	schema.Labels = labels

	relTypes, err := d.collectStrings(ctx,
		"CALL db.relationshipTypes() YIELD relationshipType RETURN relationshipType",
		"relationshipType")
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to introspect relationship types: %w", err)
	}
	schema.RelationshipTypes = relTypes

	schema.Procedures, err = d.collectSignatures(ctx, "SHOW PROCEDURES YIELD name, description RETURN name, description")
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to introspect procedures: %w", err)
	}

	schema.Functions, err = d.collectSignatures(ctx, "SHOW FUNCTIONS YIELD name, description RETURN name, description")
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to introspect functions: %w", err)
	}

	// Databases and aliases need catalog privileges and a recent server;
	// treat failures as "none visible".
	if dbs, err := d.collectStrings(ctx, "SHOW DATABASES YIELD name RETURN name", "name"); err == nil {
		schema.Databases = dbs
	}
	if aliases, err := d.collectStrings(ctx, "SHOW ALIASES FOR DATABASE YIELD name RETURN name", "name"); err == nil {
		schema.Aliases = aliases
	}

	return schema, nil
}

func (d *Database) collectStrings(ctx context.Context, query, key string) ([]string, error) {
	result, err := d.session.Run(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(records))
	for _, record := range records {
		value, ok := record.Get(key)
		if !ok {
			continue
		}
		if s, ok := value.(string); ok {
			values = append(values, s)
		}
	}
	sort.Strings(values)

	return values, nil
}

func (d *Database) collectSignatures(ctx context.Context, query string) (map[string]cyls.Signature, error) {
	result, err := d.session.Run(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}

	signatures := make(map[string]cyls.Signature, len(records))
	for _, record := range records {
		nameVal, ok := record.Get("name")
		if !ok {
			continue
		}
		name, ok := nameVal.(string)
		if !ok {
			continue
		}
		var sig cyls.Signature
		if descVal, ok := record.Get("description"); ok {
			if desc, ok := descVal.(string); ok {
				sig.Description = desc
			}
		}
		signatures[name] = sig
	}

	return signatures, nil
}

// Close releases the database connection.
func (d *Database) Close() error {
	ctx := context.Background()

	if d.session != nil {
		err := d.session.Close(ctx)
		if err != nil {
			return fmt.Errorf("neo4j: failed to close session: %w", err)
		}
	}

	if d.driver != nil {
		err := d.driver.Close(ctx)
		if err != nil {
			return fmt.Errorf("neo4j: failed to close driver: %w", err)
		}
	}

	return nil
}

// Compile-time interface check.
var _ cyls.SchemaIntrospector = (*Database)(nil)
