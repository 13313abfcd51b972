package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/housekeeping-service/internal/domain"
	"github.com/spec-kit/housekeeping-service/internal/store"
)

// Store is the durable Postgres backing on a pgx connection pool. The schema
// is managed by the SQL migrations under /migrations.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an established pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// View runs fn inside a read-only transaction that is always rolled back.
func (s *Store) View(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck
	return fn(&pgTx{tx: tx})
}

// Update runs fn inside a transaction committed on success.
func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(&pgTx{tx: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases pool resources.
func (s *Store) Close() {
	s.pool.Close()
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Staff() store.StaffCollection { return &staffCollection{tx: t.tx} }
func (t *pgTx) Rooms() store.RoomCollection  { return &roomCollection{tx: t.tx} }
func (t *pgTx) Tasks() store.TaskCollection  { return &taskCollection{tx: t.tx} }
func (t *pgTx) Activity() store.ActivityLog  { return &activityLog{tx: t.tx} }

type staffCollection struct {
	tx pgx.Tx
}

const staffColumns = `id, name, role, type, status, assigned`

func (c *staffCollection) List(ctx context.Context) ([]domain.Staff, error) {
	rows, err := c.tx.Query(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Staff
	for rows.Next() {
		var staff domain.Staff
		if err := rows.Scan(&staff.ID, &staff.Name, &staff.Role, &staff.Type, &staff.Status, &staff.Assigned); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}

func (c *staffCollection) get(ctx context.Context, query string, arg any) (*domain.Staff, error) {
	var staff domain.Staff
	err := c.tx.QueryRow(ctx, query, arg).Scan(
		&staff.ID, &staff.Name, &staff.Role, &staff.Type, &staff.Status, &staff.Assigned,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (c *staffCollection) Get(ctx context.Context, id int64) (*domain.Staff, error) {
	return c.get(ctx, `SELECT `+staffColumns+` FROM staff WHERE id=$1`, id)
}

func (c *staffCollection) GetByName(ctx context.Context, name string) (*domain.Staff, error) {
	return c.get(ctx, `SELECT `+staffColumns+` FROM staff WHERE name=$1`, name)
}

func (c *staffCollection) NameTaken(ctx context.Context, name string) (bool, error) {
	var taken bool
	err := c.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM staff WHERE lower(name)=lower($1))`, name).Scan(&taken)
	return taken, err
}

func (c *staffCollection) Insert(ctx context.Context, staff *domain.Staff) error {
	const query = `
        INSERT INTO staff (name, role, type, status, assigned)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return c.tx.QueryRow(ctx, query,
		staff.Name, staff.Role, staff.Type, staff.Status, staff.Assigned,
	).Scan(&staff.ID)
}

func (c *staffCollection) Update(ctx context.Context, staff *domain.Staff) error {
	const query = `
        UPDATE staff SET name=$1, role=$2, type=$3, status=$4, assigned=$5
        WHERE id=$6`
	cmd, err := c.tx.Exec(ctx, query,
		staff.Name, staff.Role, staff.Type, staff.Status, staff.Assigned, staff.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *staffCollection) Delete(ctx context.Context, id int64) error {
	cmd, err := c.tx.Exec(ctx, `DELETE FROM staff WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

type roomCollection struct {
	tx pgx.Tx
}

func (c *roomCollection) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := c.tx.Query(ctx, `SELECT id, status FROM rooms ORDER BY id`)
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
	err := c.tx.QueryRow(ctx, `SELECT id, status FROM rooms WHERE id=$1`, id).Scan(&room.ID, &room.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *roomCollection) Upsert(ctx context.Context, room *domain.Room) error {
	const query = `
        INSERT INTO rooms (id, status) VALUES ($1,$2)
        ON CONFLICT (id) DO UPDATE SET status=EXCLUDED.status`
	_, err := c.tx.Exec(ctx, query, room.ID, room.Status)
	return err
}

type taskCollection struct {
	tx pgx.Tx
}

const taskColumns = `id, title, assignee, assignee_id, room_id, status, done_on`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task   domain.Task
		doneOn *time.Time
	)
	err := row.Scan(&task.ID, &task.Title, &task.Assignee, &task.AssigneeID, &task.Room, &task.Status, &doneOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	task.DoneOn = doneOn
	return &task, nil
}

func (c *taskCollection) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := c.tx.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
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
	return scanTask(c.tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=$1`, id))
}

func (c *taskCollection) Insert(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (title, assignee, assignee_id, room_id, status, done_on)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return c.tx.QueryRow(ctx, query,
		task.Title, task.Assignee, task.AssigneeID, task.Room, task.Status, task.DoneOn,
	).Scan(&task.ID)
}

func (c *taskCollection) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET title=$1, assignee=$2, assignee_id=$3, room_id=$4, status=$5, done_on=$6
        WHERE id=$7`
	cmd, err := c.tx.Exec(ctx, query,
		task.Title, task.Assignee, task.AssigneeID, task.Room, task.Status, task.DoneOn, task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

type activityLog struct {
	tx pgx.Tx
}

func (l *activityLog) Append(ctx context.Context, entry *domain.Activity) error {
	const query = `INSERT INTO activity (event, date) VALUES ($1,$2) RETURNING id`
	return l.tx.QueryRow(ctx, query, entry.Event, entry.Date).Scan(&entry.ID)
}

func (l *activityLog) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	const query = `
        SELECT id, event, date FROM (
            SELECT id, event, date FROM activity ORDER BY id DESC LIMIT $1
        ) recent ORDER BY id ASC`
	rows, err := l.tx.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Activity
	for rows.Next() {
		var entry domain.Activity
		if err := rows.Scan(&entry.ID, &entry.Event, &entry.Date); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
