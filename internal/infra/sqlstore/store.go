package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/marcboeker/go-duckdb"
	_ "modernc.org/sqlite"

	"phodata/internal/domain"
	"phodata/internal/infra/fs"
)

const TableName = "photos"

// Dialect describes how one embedded engine opens a file and spells the
// column types.
type Dialect struct {
	Name     string
	types    map[domain.ColumnType]string
	sidecars []string
	open     func(path string) (*sql.DB, error)
}

var SQLite = Dialect{
	Name: "sqlite",
	types: map[domain.ColumnType]string{
		domain.ColumnText:    "text",
		domain.ColumnReal:    "real",
		domain.ColumnInteger: "integer",
	},
	sidecars: []string{"-journal", "-wal", "-shm"},
	open: func(path string) (*sql.DB, error) {
		return sql.Open("sqlite", path)
	},
}

var DuckDB = Dialect{
	Name: "duckdb",
	types: map[domain.ColumnType]string{
		domain.ColumnText:    "VARCHAR",
		domain.ColumnReal:    "DOUBLE",
		domain.ColumnInteger: "BIGINT",
	},
	sidecars: []string{".wal"},
	open: func(path string) (*sql.DB, error) {
		connector, err := duckdb.NewConnector(path, func(execer driver.ExecerContext) error {
			pragmas := []string{
				"PRAGMA threads=1",
				"PRAGMA enable_progress_bar=false",
			}
			for _, pragma := range pragmas {
				if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
		}
		return sql.OpenDB(connector), nil
	},
}

func DialectFor(format domain.Format) (Dialect, error) {
	switch format {
	case domain.FormatSQLite:
		return SQLite, nil
	case domain.FormatDuckDB:
		return DuckDB, nil
	default:
		return Dialect{}, fmt.Errorf("%s is not a relational format", format)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d Dialect) CreateTableSQL() string {
	cols := make([]string, len(domain.Columns))
	for i, c := range domain.Columns {
		cols[i] = quoteIdent(c.Name) + " " + d.types[c.Type]
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(TableName), strings.Join(cols, ", "))
}

func InsertSQL() string {
	names := make([]string, len(domain.Columns))
	marks := make([]string, len(domain.Columns))
	for i, c := range domain.Columns {
		names[i] = quoteIdent(c.Name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(TableName), strings.Join(names, ", "), strings.Join(marks, ", "))
}

// Store builds the photos table in a fresh temporary database file. The
// table is committed on creation, every insert runs in one transaction, and
// Commit moves the finished file over the destination.
type Store struct {
	dialect Dialect
	dest    string
	tmp     string
	db      *sql.DB
	tx      *sql.Tx
	insert  *sql.Stmt
	done    bool
}

func Create(ctx context.Context, dialect Dialect, dest string) (*Store, error) {
	tmp, err := fs.TempSibling(dest)
	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", dest, err)
	}

	db, err := dialect.open(tmp)
	if err != nil {
		return nil, errors.Join(err, fs.Discard(tmp, dialect.sidecars...))
	}
	s := &Store{dialect: dialect, dest: dest, tmp: tmp, db: db}

	if _, err := db.ExecContext(ctx, dialect.CreateTableSQL()); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create table: %w", err), s.Abort())
	}

	s.tx, err = db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to begin transaction: %w", err), s.Abort())
	}
	s.insert, err = s.tx.PrepareContext(ctx, InsertSQL())
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to prepare insert: %w", err), s.Abort())
	}
	return s, nil
}

func (s *Store) Destination() string { return s.dest }

func (s *Store) Write(rec domain.PhotoRecord) error {
	if s.done {
		return errors.New("store already closed")
	}
	_, err := s.insert.Exec(rec.Values()...)
	return err
}

func (s *Store) Commit() error {
	if s.done {
		return errors.New("store already closed")
	}
	if err := s.insert.Close(); err != nil {
		return fmt.Errorf("close statement: %w", err)
	}
	s.insert = nil
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.tx = nil
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	s.done = true
	if err := fs.Promote(s.tmp, s.dest); err != nil {
		return errors.Join(fmt.Errorf("rename to %s: %w", s.dest, err), fs.Discard(s.tmp, s.dialect.sidecars...))
	}
	return nil
}

func (s *Store) Abort() error {
	if s.done {
		return nil
	}
	s.done = true
	var errs []error
	if s.insert != nil {
		if err := s.insert.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close statement: %w", err))
		}
	}
	if s.tx != nil {
		if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			errs = append(errs, fmt.Errorf("rollback: %w", err))
		}
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	errs = append(errs, fs.Discard(s.tmp, s.dialect.sidecars...))
	return errors.Join(errs...)
}
