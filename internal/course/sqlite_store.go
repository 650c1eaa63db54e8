package course

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// SQLiteStore holds the single shared connection to the course database and
// implements UserRepository, ExerciseRepository and SubmissionRepository on
// top of it.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewSQLiteStore(path string, log zerolog.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "coursedb.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// One connection, one writer at a time: submission id resolution relies on
	// last_insert_rowid() being scoped to the inserting connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db, log: log}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("course store ready")
	return store, nil
}

func (s *SQLiteStore) Close() error {
	s.log.Debug().Msg("closing course store")
	return s.db.Close()
}
