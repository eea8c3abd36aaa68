package db

import (
	"strings"
	"testing"
)

func TestSchemaDeclaresTablesAndVectorColumn(t *testing.T) {
	ddl := Schema()
	for _, want := range []string{
		"CREATE EXTENSION IF NOT EXISTS vector",
		"CREATE TABLE IF NOT EXISTS characters",
		"big5              vector(5)",
		"CREATE TABLE IF NOT EXISTS matches",
	} {
		if !strings.Contains(ddl, want) {
			t.Fatalf("schema misses %q", want)
		}
	}
}
