package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/spec-kit/housekeeping-service/internal/domain"
	"github.com/spec-kit/housekeeping-service/internal/store"
)

// Store is the volatile in-process backing. All collections live on a single
// state value owned by the store; writers stage their changes on a deep copy
// and swap it in on commit, so a failed Update leaves no trace and readers
// only ever see fully committed states.
type Store struct {
	writeMu sync.Mutex   // serializes Update calls
	stateMu sync.RWMutex // guards the state pointer swap
	state   *state
}

type state struct {
	staff        []domain.Staff
	rooms        []domain.Room
	tasks        []domain.Task
	activity     []domain.Activity
	lastActivity int64
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{state: &state{}}
}

// NewSeeded returns an in-memory store preloaded with the default roster,
// room inventory and task board.
func NewSeeded() *Store {
	return &Store{state: &state{
		staff: domain.SeedStaff(),
		rooms: domain.SeedRooms(),
		tasks: domain.SeedTasks(),
	}}
}

func (s *state) clone() *state {
	next := &state{
		staff:        make([]domain.Staff, len(s.staff)),
		rooms:        make([]domain.Room, len(s.rooms)),
		tasks:        make([]domain.Task, len(s.tasks)),
		activity:     make([]domain.Activity, len(s.activity)),
		lastActivity: s.lastActivity,
	}
	copy(next.staff, s.staff)
	copy(next.rooms, s.rooms)
	copy(next.tasks, s.tasks)
	copy(next.activity, s.activity)
	return next
}

func (s *Store) current() *state {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// View runs fn against the current committed state. Committed states are
// never mutated in place, so no lock is held while fn runs.
func (s *Store) View(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&memTx{state: s.current()})
}

// Update stages fn's writes on a copy of the state and publishes the copy
// only when fn succeeds.
func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	staged := s.current().clone()
	if err := fn(&memTx{state: staged}); err != nil {
		return err
	}

	s.stateMu.Lock()
	s.state = staged
	s.stateMu.Unlock()
	return nil
}

// Ping always succeeds for the in-process backing.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Close is a no-op.
func (s *Store) Close() {}

type memTx struct {
	state *state
}

func (t *memTx) Staff() store.StaffCollection { return &staffCollection{state: t.state} }
func (t *memTx) Rooms() store.RoomCollection  { return &roomCollection{state: t.state} }
func (t *memTx) Tasks() store.TaskCollection  { return &taskCollection{state: t.state} }
func (t *memTx) Activity() store.ActivityLog  { return &activityLog{state: t.state} }

type staffCollection struct {
	state *state
}

func (c *staffCollection) List(ctx context.Context) ([]domain.Staff, error) {
	out := make([]domain.Staff, len(c.state.staff))
	copy(out, c.state.staff)
	return out, nil
}

func (c *staffCollection) Get(ctx context.Context, id int64) (*domain.Staff, error) {
	for i := range c.state.staff {
		if c.state.staff[i].ID == id {
			found := c.state.staff[i]
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *staffCollection) GetByName(ctx context.Context, name string) (*domain.Staff, error) {
	for i := range c.state.staff {
		if c.state.staff[i].Name == name {
			found := c.state.staff[i]
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *staffCollection) NameTaken(ctx context.Context, name string) (bool, error) {
	for i := range c.state.staff {
		if strings.EqualFold(c.state.staff[i].Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (c *staffCollection) Insert(ctx context.Context, staff *domain.Staff) error {
	var maxID int64
	for i := range c.state.staff {
		if c.state.staff[i].ID > maxID {
			maxID = c.state.staff[i].ID
		}
	}
	staff.ID = maxID + 1
	c.state.staff = append(c.state.staff, *staff)
	return nil
}

func (c *staffCollection) Update(ctx context.Context, staff *domain.Staff) error {
	for i := range c.state.staff {
		if c.state.staff[i].ID == staff.ID {
			c.state.staff[i] = *staff
			return nil
		}
	}
	return store.ErrNotFound
}

func (c *staffCollection) Delete(ctx context.Context, id int64) error {
	for i := range c.state.staff {
		if c.state.staff[i].ID == id {
			c.state.staff = append(c.state.staff[:i], c.state.staff[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type roomCollection struct {
	state *state
}

func (c *roomCollection) List(ctx context.Context) ([]domain.Room, error) {
	out := make([]domain.Room, len(c.state.rooms))
	copy(out, c.state.rooms)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *roomCollection) Get(ctx context.Context, id int64) (*domain.Room, error) {
	for i := range c.state.rooms {
		if c.state.rooms[i].ID == id {
			found := c.state.rooms[i]
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *roomCollection) Upsert(ctx context.Context, room *domain.Room) error {
	for i := range c.state.rooms {
		if c.state.rooms[i].ID == room.ID {
			c.state.rooms[i] = *room
			return nil
		}
	}
	c.state.rooms = append(c.state.rooms, *room)
	return nil
}

type taskCollection struct {
	state *state
}

func (c *taskCollection) List(ctx context.Context) ([]domain.Task, error) {
	out := make([]domain.Task, len(c.state.tasks))
	copy(out, c.state.tasks)
	return out, nil
}

func (c *taskCollection) Get(ctx context.Context, id int64) (*domain.Task, error) {
	for i := range c.state.tasks {
		if c.state.tasks[i].ID == id {
			found := c.state.tasks[i]
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *taskCollection) Insert(ctx context.Context, task *domain.Task) error {
	var maxID int64
	for i := range c.state.tasks {
		if c.state.tasks[i].ID > maxID {
			maxID = c.state.tasks[i].ID
		}
	}
	task.ID = maxID + 1
	c.state.tasks = append(c.state.tasks, *task)
	return nil
}

func (c *taskCollection) Update(ctx context.Context, task *domain.Task) error {
	for i := range c.state.tasks {
		if c.state.tasks[i].ID == task.ID {
			c.state.tasks[i] = *task
			return nil
		}
	}
	return store.ErrNotFound
}

type activityLog struct {
	state *state
}

func (l *activityLog) Append(ctx context.Context, entry *domain.Activity) error {
	l.state.lastActivity++
	entry.ID = l.state.lastActivity
	l.state.activity = append(l.state.activity, *entry)
	// Only the display window is retained in the volatile backing.
	if excess := len(l.state.activity) - domain.ActivityWindow; excess > 0 {
		l.state.activity = l.state.activity[excess:]
	}
	return nil
}

func (l *activityLog) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	entries := l.state.activity
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]domain.Activity, len(entries))
	copy(out, entries)
	return out, nil
}
