package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/spec-kit/housekeeping-service/internal/domain"
	"github.com/spec-kit/housekeeping-service/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS staff (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL,
	role     TEXT NOT NULL DEFAULT 'Housekeeper',
	type     TEXT NOT NULL DEFAULT 'Room Cleaning',
	status   TEXT NOT NULL DEFAULT 'Active',
	assigned INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS rooms (
	id     INTEGER PRIMARY KEY,
	status TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	assignee    TEXT NOT NULL DEFAULT '',
	assignee_id INTEGER REFERENCES staff(id) ON DELETE SET NULL,
	room_id     INTEGER,
	status      TEXT NOT NULL DEFAULT 'Pending',
	done_on     TEXT
);
CREATE TABLE IF NOT EXISTS activity (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	event TEXT NOT NULL,
	date  TEXT NOT NULL
);`

// Store is the durable SQLite backing.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path, ensures the schema exists and
// seeds the default dataset into a fresh database.
func New(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "housekeeping.db"
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers, which is all this workload
	// needs and sidesteps SQLITE_BUSY under concurrent updates.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seed(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff`).Scan(&count); err != nil {
		return fmt.Errorf("count staff: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.Update(ctx, func(tx store.Tx) error {
		for _, st := range domain.SeedStaff() {
			staff := st
			if err := tx.Staff().Insert(ctx, &staff); err != nil {
				return err
			}
		}
		for _, r := range domain.SeedRooms() {
			room := r
			if err := tx.Rooms().Upsert(ctx, &room); err != nil {
				return err
			}
		}
		for _, t := range domain.SeedTasks() {
			task := t
			if err := tx.Tasks().Insert(ctx, &task); err != nil {
				return err
			}
		}
		return nil
	})
}

// View runs fn inside a transaction that is always rolled back.
func (s *Store) View(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck
	return fn(&sqlTx{tx: tx})
}

// Update runs fn inside a transaction committed on success.
func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&sqlTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Ping verifies the database file is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying pool.
func (s *Store) Close() {
	_ = s.db.Close()
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Staff() store.StaffCollection { return &staffCollection{tx: t.tx} }
func (t *sqlTx) Rooms() store.RoomCollection  { return &roomCollection{tx: t.tx} }
func (t *sqlTx) Tasks() store.TaskCollection  { return &taskCollection{tx: t.tx} }
func (t *sqlTx) Activity() store.ActivityLog  { return &activityLog{tx: t.tx} }

type staffCollection struct {
	tx *sql.Tx
}

const staffColumns = `id, name, role, type, status, assigned`

func scanStaff(row interface{ Scan(...any) error }) (*domain.Staff, error) {
	var staff domain.Staff
	if err := row.Scan(&staff.ID, &staff.Name, &staff.Role, &staff.Type, &staff.Status, &staff.Assigned); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &staff, nil
}

func (c *staffCollection) List(ctx context.Context) ([]domain.Staff, error) {
	rows, err := c.tx.QueryContext(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Staff
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *staff)
	}
	return result, rows.Err()
}

func (c *staffCollection) Get(ctx context.Context, id int64) (*domain.Staff, error) {
	row := c.tx.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff WHERE id=?`, id)
	return scanStaff(row)
}

func (c *staffCollection) GetByName(ctx context.Context, name string) (*domain.Staff, error) {
	row := c.tx.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff WHERE name=?`, name)
	return scanStaff(row)
}

func (c *staffCollection) NameTaken(ctx context.Context, name string) (bool, error) {
	var count int
	err := c.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff WHERE lower(name)=lower(?)`, name).Scan(&count)
	return count > 0, err
}

func (c *staffCollection) Insert(ctx context.Context, staff *domain.Staff) error {
	res, err := c.tx.ExecContext(ctx,
		`INSERT INTO staff (name, role, type, status, assigned) VALUES (?,?,?,?,?)`,
		staff.Name, staff.Role, staff.Type, staff.Status, staff.Assigned,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	staff.ID = id
	return nil
}

func (c *staffCollection) Update(ctx context.Context, staff *domain.Staff) error {
	res, err := c.tx.ExecContext(ctx,
		`UPDATE staff SET name=?, role=?, type=?, status=?, assigned=? WHERE id=?`,
		staff.Name, staff.Role, staff.Type, staff.Status, staff.Assigned, staff.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (c *staffCollection) Delete(ctx context.Context, id int64) error {
	res, err := c.tx.ExecContext(ctx, `DELETE FROM staff WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type roomCollection struct {
	tx *sql.Tx
}

func (c *roomCollection) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := c.tx.QueryContext(ctx, `SELECT id, status FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Status); err != nil {
			return nil, err
		}
		result = append(result, room)
	}
	return result, rows.Err()
}

func (c *roomCollection) Get(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	err := c.tx.QueryRowContext(ctx, `SELECT id, status FROM rooms WHERE id=?`, id).Scan(&room.ID, &room.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *roomCollection) Upsert(ctx context.Context, room *domain.Room) error {
	_, err := c.tx.ExecContext(ctx,
		`INSERT INTO rooms (id, status) VALUES (?,?) ON CONFLICT(id) DO UPDATE SET status=excluded.status`,
		room.ID, room.Status,
	)
	return err
}

type taskCollection struct {
	tx *sql.Tx
}

const taskColumns = `id, title, assignee, assignee_id, room_id, status, done_on`

func scanTask(row interface{ Scan(...any) error }) (*domain.Task, error) {
	var (
		task   domain.Task
		doneOn sql.NullString
	)
	if err := row.Scan(&task.ID, &task.Title, &task.Assignee, &task.AssigneeID, &task.Room, &task.Status, &doneOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if doneOn.Valid {
		parsed, err := time.Parse(domain.ActivityDateLayout, doneOn.String)
		if err != nil {
			return nil, fmt.Errorf("parse done_on %q: %w", doneOn.String, err)
		}
		task.DoneOn = &parsed
	}
	return &task, nil
}

func formatDoneOn(doneOn *time.Time) any {
	if doneOn == nil {
		return nil
	}
	return doneOn.Format(domain.ActivityDateLayout)
}

func (c *taskCollection) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := c.tx.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *task)
	}
	return result, rows.Err()
}

func (c *taskCollection) Get(ctx context.Context, id int64) (*domain.Task, error) {
	row := c.tx.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=?`, id)
	return scanTask(row)
}

func (c *taskCollection) Insert(ctx context.Context, task *domain.Task) error {
	res, err := c.tx.ExecContext(ctx,
		`INSERT INTO tasks (title, assignee, assignee_id, room_id, status, done_on) VALUES (?,?,?,?,?,?)`,
		task.Title, task.Assignee, task.AssigneeID, task.Room, task.Status, formatDoneOn(task.DoneOn),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

func (c *taskCollection) Update(ctx context.Context, task *domain.Task) error {
	res, err := c.tx.ExecContext(ctx,
		`UPDATE tasks SET title=?, assignee=?, assignee_id=?, room_id=?, status=?, done_on=? WHERE id=?`,
		task.Title, task.Assignee, task.AssigneeID, task.Room, task.Status, formatDoneOn(task.DoneOn), task.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type activityLog struct {
	tx *sql.Tx
}

func (l *activityLog) Append(ctx context.Context, entry *domain.Activity) error {
	res, err := l.tx.ExecContext(ctx, `INSERT INTO activity (event, date) VALUES (?,?)`, entry.Event, entry.Date)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

func (l *activityLog) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	rows, err := l.tx.QueryContext(ctx, `SELECT id, event, date FROM activity ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var newestFirst []domain.Activity
	for rows.Next() {
		var entry domain.Activity
		if err := rows.Scan(&entry.ID, &entry.Event, &entry.Date); err != nil {
			return nil, err
		}
		newestFirst = append(newestFirst, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Present the window oldest-first.
	result := make([]domain.Activity, len(newestFirst))
	for i, entry := range newestFirst {
		result[len(newestFirst)-1-i] = entry
	}
	return result, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
