package iocache

import (
	"strings"
	"testing"
	"time"

	"github.com/huangsam/dealsense/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName(decisionsTable))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("1table"))
	assert.Error(t, validateTableName("runs; DROP TABLE x"))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`runs`", quoteTableName("runs", schema.MySQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.PostgreSQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.SQLiteBackend))
}

func TestRebind(t *testing.T) {
	query := "UPDATE t SET a = ?, b = ? WHERE id = ?"
	assert.Equal(t, query, rebind(query, schema.SQLiteBackend))
	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", rebind(query, schema.PostgreSQLBackend))
}

func TestFormatTime(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 5, time.FixedZone("X", 3600))
	assert.Equal(t, "2024-06-01T11:00:00.000000005Z", formatTime(at, schema.SQLiteBackend))
	assert.Equal(t, at.UTC(), formatTime(at, schema.PostgreSQLBackend))
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := mysqlDSN("user:pass@tcp(localhost:3306)/dealsense")
	require.NoError(t, err)
	assert.True(t, strings.Contains(dsn, "parseTime=true"))
	assert.True(t, strings.Contains(dsn, "multiStatements=true"))

	_, err = mysqlDSN("not a dsn")
	assert.Error(t, err)
}

func TestCreateTableQuery(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		for _, table := range analysisTables {
			query := createTableQuery(table, backend)
			assert.Contains(t, query, table, "%s/%s", backend, table)
			assert.Contains(t, query, "CREATE TABLE IF NOT EXISTS")
		}
	}
}
