package store

import (
	"context"
	"errors"

	"github.com/spec-kit/housekeeping-service/internal/domain"
)

// ErrNotFound is returned by collections when a referenced id is absent.
var ErrNotFound = errors.New("record not found")

// Store is the persistence gateway. Implementations must guarantee that the
// function passed to Update runs as a single atomic unit: either every write
// it performs becomes visible together, or none do. View observes committed
// state only and never interleaves with an in-flight Update.
type Store interface {
	// View runs fn against a read-only consistent snapshot of the store.
	View(ctx context.Context, fn func(tx Tx) error) error
	// Update runs fn inside a write transaction, committing on nil error
	// and rolling back otherwise.
	Update(ctx context.Context, fn func(tx Tx) error) error
	// Ping verifies the backing is reachable.
	Ping(ctx context.Context) error
	// Close releases backing resources.
	Close()
}

// Tx exposes the entity collections of one transaction.
type Tx interface {
	Staff() StaffCollection
	Rooms() RoomCollection
	Tasks() TaskCollection
	Activity() ActivityLog
}

// StaffCollection persists staff records.
type StaffCollection interface {
	List(ctx context.Context) ([]domain.Staff, error)
	Get(ctx context.Context, id int64) (*domain.Staff, error)
	// GetByName finds a staff member by exact, case-sensitive name.
	GetByName(ctx context.Context, name string) (*domain.Staff, error)
	// NameTaken reports whether a staff member with the given name exists,
	// compared case-insensitively.
	NameTaken(ctx context.Context, name string) (bool, error)
	// Insert persists a new record and assigns the next id on it.
	Insert(ctx context.Context, staff *domain.Staff) error
	Update(ctx context.Context, staff *domain.Staff) error
	Delete(ctx context.Context, id int64) error
}

// RoomCollection persists room records.
type RoomCollection interface {
	List(ctx context.Context) ([]domain.Room, error)
	Get(ctx context.Context, id int64) (*domain.Room, error)
	// Upsert creates the room when absent, otherwise replaces its status.
	Upsert(ctx context.Context, room *domain.Room) error
}

// TaskCollection persists task records.
type TaskCollection interface {
	List(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id int64) (*domain.Task, error)
	// Insert persists a new record and assigns the next id on it.
	Insert(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
}

// ActivityLog persists the append-only activity feed.
type ActivityLog interface {
	Append(ctx context.Context, entry *domain.Activity) error
	// Recent returns up to limit of the newest entries, ordered
	// oldest-first within the returned window.
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
}
