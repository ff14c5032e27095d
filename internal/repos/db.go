package repos

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"storekeeper/internal/errs"
	applog "storekeeper/internal/log"
)

// DatabaseName is the fixed file name of the local database.
const DatabaseName = "storekeeper.db"

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

const versionTable = "goose_db_version"

// DSN returns the data source for the database file inside dir.
func DSN(dir string) string {
	return "file:" + filepath.Join(dir, DatabaseName) + "?_pragma=busy_timeout(5000)"
}

// Store owns the single database handle for the process.
type Store struct {
	dsn string

	mu sync.Mutex
	db *sqlx.DB
}

func NewStore(dsn string) *Store { return &Store{dsn: dsn} }

// Open returns the handle, opening the database and applying the schema the
// first time. Later calls return the same handle.
func (s *Store) Open(ctx context.Context) (*sqlx.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}
	db, err := OpenDB(ctx, s.dsn)
	if err != nil {
		return nil, err
	}
	s.db = db
	return db, nil
}

// Reinitialize drops the current handle and opens a new one against the same
// DSN. With MemoryDSN this yields an empty database.
func (s *Store) Reinitialize(ctx context.Context) (*sqlx.DB, error) {
	if err := s.Close(); err != nil {
		return nil, err
	}
	return s.Open(ctx)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return errs.Wrap(errs.CodeStorageUnavailable, err, "close database")
	}
	return nil
}

// OpenDB opens dsn and brings the schema up to SchemaVersion.
func OpenDB(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errs.Wrap(errs.CodeStorageUnavailable, err, "open database")
	}
	// One connection: SQLite serializes writers anyway, and an in-memory
	// database exists only on the connection that created it.
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errs.Wrap(errs.CodeStorageUnavailable, err, "ping database")
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies every entry of Migrations not yet recorded in the version
// table. It is a no-op on an up-to-date database.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	p, err := newProvider(db)
	if err != nil {
		return err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return errs.Wrap(errs.CodeStorageUnavailable, err, "apply schema")
	}
	for _, r := range results {
		applog.Info(nil, "db.migrate", map[string]any{
			"version":     r.Source.Version,
			"duration_ms": r.Duration.Milliseconds(),
		})
	}
	return nil
}

// CurrentVersion reports the schema version recorded in the database.
func CurrentVersion(ctx context.Context, db *sqlx.DB) (int64, error) {
	p, err := newProvider(db)
	if err != nil {
		return 0, err
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, errs.Wrap(errs.CodeStorageUnavailable, err, "read schema version")
	}
	return v, nil
}

// Reset drops all tables and reapplies the schema.
func Reset(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, DropAll+"\nDROP TABLE IF EXISTS "+versionTable+";"); err != nil {
		return errs.Wrap(errs.CodeStorageUnavailable, err, "drop tables")
	}
	return Migrate(ctx, db)
}

func newProvider(db *sqlx.DB) (*goose.Provider, error) {
	versions := make([]int64, 0, len(Migrations))
	for v := range Migrations {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })

	migrations := make([]*goose.Migration, 0, len(versions))
	for _, v := range versions {
		stmt := Migrations[v]
		migrations = append(migrations, goose.NewGoMigration(v, &goose.GoFunc{
			RunTx: func(ctx context.Context, tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, stmt)
				return err
			},
		}, nil))
	}

	p, err := goose.NewProvider(goose.DialectSQLite3, db.DB, nil,
		goose.WithGoMigrations(migrations...),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return nil, errs.Wrap(errs.CodeStorageUnavailable, err, "load migrations")
	}
	return p, nil
}

// storageError classifies a driver error.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return errs.Wrap(errs.CodeConstraintViolation, err, op)
	}
	return errs.Wrap(errs.CodeStorageUnavailable, err, op)
}
