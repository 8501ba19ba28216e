package cyls_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cyls"
)

const schemaYAML = `labels:
  - Person
  - Movie
relationshipTypes:
  - ACTED_IN
procedures:
  db.labels:
    returns: [label]
    description: List all labels in the database.
  dbms.info: {}
functions:
  toUpper:
    args: [input]
    returns: [output]
databases:
  - neo4j
  - system
aliases:
  - films
`

func TestParseSchema(t *testing.T) {
	schema, err := cyls.ParseSchema([]byte(schemaYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"Person", "Movie"}, schema.Labels)
	assert.Equal(t, []string{"ACTED_IN"}, schema.RelationshipTypes)
	assert.Equal(t, []string{"neo4j", "system"}, schema.Databases)
	assert.Equal(t, []string{"films"}, schema.Aliases)
	assert.Equal(t, []string{"label"}, schema.Procedures["db.labels"].Returns)
	assert.Equal(t, []string{"input"}, schema.Functions["toUpper"].Args)
}

func TestParseSchema_Invalid(t *testing.T) {
	_, err := cyls.ParseSchema([]byte("labels: {not: a list}"))

	assert.Error(t, err)
}

func TestSchema_SortedNames(t *testing.T) {
	schema := &cyls.Schema{
		Procedures: map[string]cyls.Signature{
			"dbms.info": {},
			"db.labels": {},
			"apoc.help": {},
		},
		Functions: map[string]cyls.Signature{
			"toUpper": {},
			"size":    {},
		},
	}

	assert.Equal(t, []string{"apoc.help", "db.labels", "dbms.info"}, schema.ProcedureNames())
	assert.Equal(t, []string{"size", "toUpper"}, schema.FunctionNames())
}

func TestSchema_EmptyNames(t *testing.T) {
	schema := &cyls.Schema{}

	assert.Nil(t, schema.ProcedureNames())
	assert.Nil(t, schema.FunctionNames())
}

func TestLoadSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(schemaYAML), 0o644))

	schema, err := cyls.LoadSchema(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Person", "Movie"}, schema.Labels)
}

func TestLoadSchema_Missing(t *testing.T) {
	_, err := cyls.LoadSchema(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}
