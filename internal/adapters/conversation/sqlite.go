package conversation

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
)

// DefaultSQLiteDSN is a shared in-memory database that lives as long as the process.
const DefaultSQLiteDSN = "file:chatassist?mode=memory&cache=shared"

// SQLiteStore keeps conversations in SQLite.
// Turn order is the insertion order of the autoincrement seq column.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens dsn and creates the schema.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps a memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_turns_user ON turns(user_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a turn to the end of the user's conversation.
func (s *SQLiteStore) Append(ctx context.Context, userID string, turn entities.Turn) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO turns (user_id, role, content) VALUES (?, ?, ?)",
		userID, string(turn.Role), turn.Content,
	)
	if err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}
	return nil
}

// Turns returns the user's turns in order.
func (s *SQLiteStore) Turns(ctx context.Context, userID string) ([]entities.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT role, content FROM turns WHERE user_id = ? ORDER BY seq",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	turns := []entities.Turn{}
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		turns = append(turns, entities.Turn{Role: entities.Role(role), Content: content})
	}
	return turns, rows.Err()
}

// Users lists known user ids, sorted.
func (s *SQLiteStore) Users(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT user_id FROM turns ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// TurnCount returns the number of stored turns across all users.
func (s *SQLiteStore) TurnCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM turns").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
