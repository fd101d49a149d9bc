package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Pure Go SQLite driver with JSON1 support.
	_ "modernc.org/sqlite"

	"github.com/good-yellow-bee/innohub/internal/models"
)

const backendSQLite = "sqlite"

// SQLiteStorage implements Storage using SQLite with one JSON document table
// per collection.
type SQLiteStorage struct {
	path string
	db   *sql.DB

	repos
}

// NewSQLiteStorage creates a new SQLite storage.
func NewSQLiteStorage(path string) *SQLiteStorage {
	return &SQLiteStorage{path: path}
}

// Open initializes the database connection.
func (s *SQLiteStorage) Open(ctx context.Context) error {
	if s.path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0) // Keep connection alive

	// Test connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	s.db = db
	s.repos = newRepos(
		newSQLiteCollection[models.User](db, collUsers),
		newSQLiteCollection[models.Profile](db, collProfiles),
		newSQLiteCollection[models.Project](db, collProjects),
		newSQLiteCollection[models.Mentor](db, collMentors),
		newSQLiteCollection[models.Grant](db, collGrants),
		newSQLiteCollection[models.Launch](db, collLaunches),
		newSQLiteCollection[models.Subscriber](db, collSubscribers),
	)

	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying database connection for health checks.
func (s *SQLiteStorage) DB() *sql.DB {
	return s.db
}

// Migrate runs database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	return runMigrations(ctx, s.db)
}

// Ping verifies the database is reachable.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return s.db.PingContext(ctx)
}

// Backend returns "sqlite".
func (s *SQLiteStorage) Backend() string {
	return backendSQLite
}

// sqliteCollection stores documents as JSON text keyed by id.
type sqliteCollection[T any] struct {
	db    *sql.DB
	table string
}

func newSQLiteCollection[T any](db *sql.DB, table string) *sqliteCollection[T] {
	return &sqliteCollection[T]{db: db, table: table}
}

func (c *sqliteCollection[T]) Insert(ctx context.Context, id string, createdAt time.Time, doc *T) (err error) {
	defer observe(backendSQLite, c.table, "insert", time.Now(), &err)

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.table, err)
	}
	_, err = c.db.ExecContext(ctx,
		"INSERT INTO "+c.table+" (id, doc, created_at) VALUES (?, ?, ?)",
		id, string(data), createdAt.UnixNano(),
	)
	if err != nil {
		return mapSQLiteError(err)
	}
	return nil
}

func (c *sqliteCollection[T]) Replace(ctx context.Context, id string, doc *T) (err error) {
	defer observe(backendSQLite, c.table, "replace", time.Now(), &err)

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.table, err)
	}
	_, err = c.db.ExecContext(ctx, "UPDATE "+c.table+" SET doc = ? WHERE id = ?", string(data), id)
	if err != nil {
		return mapSQLiteError(err)
	}
	return nil
}

func (c *sqliteCollection[T]) Get(ctx context.Context, id string) (doc *T, err error) {
	defer observe(backendSQLite, c.table, "get", time.Now(), &err)

	var data string
	err = c.db.QueryRowContext(ctx, "SELECT doc FROM "+c.table+" WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.table, err)
	}
	return decodeDocument[T](c.table, data)
}

func (c *sqliteCollection[T]) FindOne(ctx context.Context, q Query) (*T, error) {
	q.Limit = 1
	docs, err := c.Find(ctx, q)
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

func (c *sqliteCollection[T]) Find(ctx context.Context, q Query) (docs []*T, err error) {
	defer observe(backendSQLite, c.table, "find", time.Now(), &err)

	where, args, err := sqliteWhere(q)
	if err != nil {
		return nil, err
	}
	query := "SELECT doc FROM " + c.table + where + " ORDER BY created_at DESC, rowid DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.table, err)
		}
		doc, err := decodeDocument[T](c.table, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (c *sqliteCollection[T]) Delete(ctx context.Context, id string) (deleted bool, err error) {
	defer observe(backendSQLite, c.table, "delete", time.Now(), &err)

	result, err := c.db.ExecContext(ctx, "DELETE FROM "+c.table+" WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", c.table, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (c *sqliteCollection[T]) Count(ctx context.Context, q Query) (n int64, err error) {
	defer observe(backendSQLite, c.table, "count", time.Now(), &err)

	where, args, err := sqliteWhere(q)
	if err != nil {
		return 0, err
	}
	err = c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.table, err)
	}
	return n, nil
}

// sqliteWhere translates a Query into a WHERE clause over the doc column.
func sqliteWhere(q Query) (string, []any, error) {
	var clauses []string
	var args []any

	for _, field := range sortedKeys(q.Equals) {
		if field == "id" {
			clauses = append(clauses, "id = ?")
			args = append(args, q.Equals[field])
			continue
		}
		if err := checkField(field); err != nil {
			return "", nil, err
		}
		clauses = append(clauses, "json_extract(doc, '$."+field+"') = ?")
		args = append(args, q.Equals[field])
	}

	if q.ExcludeID != "" {
		clauses = append(clauses, "id <> ?")
		args = append(args, q.ExcludeID)
	}

	for _, path := range sortedKeys(q.HasElement) {
		array, field, err := splitElementPath(path)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses,
			"EXISTS (SELECT 1 FROM json_each(doc, '$."+array+"') je WHERE json_extract(je.value, '$."+field+"') = ?)")
		args = append(args, q.HasElement[path])
	}

	if search := strings.TrimSpace(q.Search); search != "" && len(q.SearchFields) > 0 {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		var ors []string
		for _, field := range q.SearchFields {
			if err := checkField(field); err != nil {
				return "", nil, err
			}
			// json_each yields one row for a scalar and one per element for an array.
			ors = append(ors,
				"EXISTS (SELECT 1 FROM json_each(doc, '$."+field+"') je WHERE lower(je.value) LIKE ? ESCAPE '\\')")
			args = append(args, pattern)
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	if len(clauses) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func decodeDocument[T any](table, data string) (*T, error) {
	var doc T
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", table, err)
	}
	return &doc, nil
}

func mapSQLiteError(err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
