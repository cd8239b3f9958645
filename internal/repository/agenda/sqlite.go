package agenda

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"

	// Registers the pure Go "sqlite" driver.
	_ "modernc.org/sqlite"

	domain "github.com/oshokin/alarm-agenda/internal/domain/alarm"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS alarms (
	date TEXT NOT NULL,
	hour TEXT NOT NULL,
	minute TEXT NOT NULL,
	description TEXT NOT NULL,
	PRIMARY KEY (date, hour, minute)
);
`

// alarmRow is one agenda entry as stored in the alarms table.
type alarmRow struct {
	Date        string `db:"date"`
	Hour        string `db:"hour"`
	Minute      string `db:"minute"`
	Description string `db:"description"`
}

// SQLiteRepository persists the agenda in a SQLite database.
type SQLiteRepository struct {
	// path is the location of the database file.
	path string
	// db is opened lazily by Init.
	db *sqlx.DB
	// mu serialises whole-agenda reads and rewrites.
	mu sync.Mutex
}

// NewSQLiteRepository creates a repository backed by the database file at path.
func NewSQLiteRepository(path string) *SQLiteRepository {
	return &SQLiteRepository{
		path: filepath.Clean(path),
	}
}

// Init opens the database and creates the alarms table when missing.
func (r *SQLiteRepository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return nil
	}

	db, err := sqlx.Open("sqlite", r.path)
	if err != nil {
		return fmt.Errorf("open agenda database: %w", err)
	}

	// One connection keeps writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()

		return fmt.Errorf("ping agenda database: %w", err)
	}

	if _, err = db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()

		return fmt.Errorf("create alarms table: %w", err)
	}

	r.db = db

	return nil
}

// Load reads every row into an agenda.
func (r *SQLiteRepository) Load(ctx context.Context) (domain.Agenda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil, ErrNotFound
	}

	var rows []alarmRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT date, hour, minute, description FROM alarms"); err != nil {
		return nil, fmt.Errorf("select alarms: %w", err)
	}

	agenda := domain.NewAgenda()

	for _, row := range rows {
		agenda.Set(domain.Slot{Date: row.Date, Hour: row.Hour, Minute: row.Minute}, row.Description)
	}

	return agenda, nil
}

// Save replaces the table contents with the agenda inside one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, agenda domain.Agenda) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return ErrNotFound
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	//nolint:errcheck // Rollback after Commit is a no-op.
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, "DELETE FROM alarms"); err != nil {
		return fmt.Errorf("clear alarms: %w", err)
	}

	for date, hours := range agenda {
		for hour, minutes := range hours {
			for minute, description := range minutes {
				row := alarmRow{
					Date:        date,
					Hour:        hour,
					Minute:      minute,
					Description: description,
				}

				_, err = tx.NamedExecContext(ctx,
					"INSERT INTO alarms (date, hour, minute, description) VALUES (:date, :hour, :minute, :description)",
					row,
				)
				if err != nil {
					return fmt.Errorf("insert alarm %s %s:%s: %w", date, hour, minute, err)
				}
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit alarms: %w", err)
	}

	return nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}

	err := r.db.Close()
	r.db = nil

	return err
}
