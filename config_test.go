package cyls_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cyls"
)

const configYAML = `neo4j:
  uri: neo4j://localhost:7687
  username: neo4j
  password: secret
  database: movies
schema: schema.yaml
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), cyls.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := cyls.LoadConfig(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Neo4j)
	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.Username)
	assert.Equal(t, "movies", cfg.Neo4j.Database)
	assert.Equal(t, "schema.yaml", cfg.SchemaFile)
}

func TestFindConfig_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "queries", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path := filepath.Join(root, cyls.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, found, err := cyls.FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)
	assert.Equal(t, "schema.yaml", cfg.SchemaFile)
}

func TestFindConfig_NotFound(t *testing.T) {
	_, _, err := cyls.FindConfig(t.TempDir())

	assert.ErrorIs(t, err, cyls.ErrConfigNotFound)
}
