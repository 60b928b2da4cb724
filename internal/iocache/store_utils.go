package iocache

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
)

var tableNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// sqliteTimeLayout is fixed-width so stored times sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// validateTableName rejects names that cannot be safely interpolated into SQL.
func validateTableName(name string) error {
	if name == "" {
		return eris.New("table name cannot be empty")
	}
	if !tableNameRe.MatchString(name) {
		return eris.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default:
		return fmt.Sprintf("%q", name)
	}
}

// rebind rewrites '?' placeholders as $1..$n for PostgreSQL.
func rebind(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(sqliteTimeLayout)
	default:
		return t.UTC()
	}
}

// storedTime scans a timestamp column that SQLite keeps as RFC3339 text
// and the server backends keep as a native datetime.
type storedTime struct {
	backend schema.DatabaseBackend
	text    sql.NullString
	native  sql.NullTime
}

func (st *storedTime) dest() any {
	if st.backend == schema.SQLiteBackend {
		return &st.text
	}
	return &st.native
}

func (st *storedTime) value() (*time.Time, error) {
	if st.backend == schema.SQLiteBackend {
		if !st.text.Valid {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339Nano, st.text.String)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to parse stored time %q", st.text.String)
		}
		return &t, nil
	}
	if !st.native.Valid {
		return nil, nil
	}
	t := st.native.Time.UTC()
	return &t, nil
}

func (st *storedTime) required() (time.Time, error) {
	t, err := st.value()
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, eris.New("unexpected NULL timestamp")
	}
	return *t, nil
}

// nullableString maps empty strings to NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// mysqlDSN enables the options the store relies on: native time scanning
// and multi-statement migration files.
func mysqlDSN(connStr string) (string, error) {
	cfg, err := mysql.ParseDSN(connStr)
	if err != nil {
		return "", eris.Wrap(err, "invalid MySQL connection string. Expected format: user:password@tcp(host:port)/dbname")
	}
	cfg.ParseTime = true
	cfg.MultiStatements = true
	return cfg.FormatDSN(), nil
}
