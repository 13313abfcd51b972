package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/housekeeping-service/internal/domain"
	"github.com/spec-kit/housekeeping-service/internal/events"
	"github.com/spec-kit/housekeeping-service/internal/store"
	apperrors "github.com/spec-kit/housekeeping-service/pkg/util"
)

// HousekeepingService implements the mutation and snapshot operations over
// the persistence gateway. Every mutation runs as one atomic store update:
// validate, mutate, append exactly one activity entry, and rebuild the
// snapshot inside the same transaction.
type HousekeepingService struct {
	store      store.Store
	cache      SnapshotCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// SnapshotCache caches the serialized snapshot between reads. Writes only
// invalidate; the next read repopulates.
type SnapshotCache interface {
	Get(ctx context.Context) ([]byte, bool)
	Set(ctx context.Context, payload []byte)
	Invalidate(ctx context.Context)
}

// Dependencies encapsulates collaborators for the service. Cache, Dispatcher
// and Clock are optional; Clock defaults to time.Now.
type Dependencies struct {
	Store      store.Store
	Cache      SnapshotCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// NewHousekeepingService constructs the service.
func NewHousekeepingService(deps Dependencies) *HousekeepingService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &HousekeepingService{
		store:      deps.Store,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// StaffInput carries fields for creating a staff member. Empty Role, Type
// and Status fall back to the roster defaults.
type StaffInput struct {
	Name     string
	Role     string
	Type     string
	Status   domain.StaffStatus
	Assigned int
}

// StaffPatch carries partial-update fields; nil fields retain prior values.
type StaffPatch struct {
	Name     *string
	Role     *string
	Type     *string
	Status   *domain.StaffStatus
	Assigned *int
}

// TaskInput carries fields for creating a task.
type TaskInput struct {
	Title    string
	Assignee string
	Room     *int64
}

// Snapshot assembles the full current state from a single consistent view of
// the store. It is the only read operation and has no side effects beyond
// cache population.
func (s *HousekeepingService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx); ok {
			var snap domain.Snapshot
			if err := json.Unmarshal(payload, &snap); err == nil {
				return &snap, nil
			}
			s.cache.Invalidate(ctx)
		}
	}

	var snap *domain.Snapshot
	err := s.store.View(ctx, func(tx store.Tx) error {
		var err error
		snap, err = buildSnapshot(ctx, tx)
		return err
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(snap); err == nil {
			s.cache.Set(ctx, payload)
		}
	}
	return snap, nil
}

// AddStaff creates a staff member. Names are trimmed, must be non-empty and
// must be unique case-insensitively among current staff.
func (s *HousekeepingService) AddStaff(ctx context.Context, input StaffInput) (*domain.Snapshot, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name cannot be empty", nil)
	}

	staff := &domain.Staff{
		Name:     name,
		Role:     defaultString(input.Role, "Housekeeper"),
		Type:     defaultString(input.Type, "Room Cleaning"),
		Status:   input.Status,
		Assigned: input.Assigned,
	}
	if staff.Status == "" {
		staff.Status = domain.StaffStatusActive
	}

	return s.mutate(ctx, func(tx store.Tx) (*events.Event, error) {
		taken, err := tx.Staff().NameTaken(ctx, name)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if taken {
			return nil, apperrors.NewConflict("staff already exists", map[string]any{"name": name})
		}
		if err := tx.Staff().Insert(ctx, staff); err != nil {
			return nil, apperrors.MapError(err)
		}
		if err := s.recordActivity(ctx, tx, fmt.Sprintf("Added staff %s", name)); err != nil {
			return nil, err
		}
		return &events.Event{
			Type:    events.EventStaffAdded,
			Payload: events.StaffPayload{StaffID: staff.ID, Name: staff.Name, Status: staff.Status},
		}, nil
	})
}

// UpdateStaff applies a partial update to an existing staff member.
func (s *HousekeepingService) UpdateStaff(ctx context.Context, id int64, patch StaffPatch) (*domain.Snapshot, error) {
	return s.mutate(ctx, func(tx store.Tx) (*events.Event, error) {
		staff, err := tx.Staff().Get(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperrors.NewNotFound("staff", map[string]any{"id": id})
			}
			return nil, apperrors.MapError(err)
		}

		if patch.Name != nil {
			staff.Name = *patch.Name
		}
		if patch.Role != nil {
			staff.Role = *patch.Role
		}
		if patch.Type != nil {
			staff.Type = *patch.Type
		}
		if patch.Status != nil {
			staff.Status = *patch.Status
		}
		if patch.Assigned != nil {
			staff.Assigned = *patch.Assigned
		}

		if err := tx.Staff().Update(ctx, staff); err != nil {
			return nil, apperrors.MapError(err)
		}
		if err := s.recordActivity(ctx, tx, fmt.Sprintf("Updated staff %s", staff.Name)); err != nil {
			return nil, err
		}
		return &events.Event{
			Type:    events.EventStaffUpdated,
			Payload: events.StaffPayload{StaffID: staff.ID, Name: staff.Name, Status: staff.Status},
		}, nil
	})
}

// DeleteStaff removes a staff member. Their tasks keep the stale display
// name; relational backings detach the identity link.
func (s *HousekeepingService) DeleteStaff(ctx context.Context, id int64) (*domain.Snapshot, error) {
	return s.mutate(ctx, func(tx store.Tx) (*events.Event, error) {
		staff, err := tx.Staff().Get(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperrors.NewNotFound("staff", map[string]any{"id": id})
			}
			return nil, apperrors.MapError(err)
		}

		if err := tx.Staff().Delete(ctx, id); err != nil {
			return nil, apperrors.MapError(err)
		}
		if err := s.recordActivity(ctx, tx, fmt.Sprintf("Removed staff %s", staff.Name)); err != nil {
			return nil, err
		}
		return &events.Event{
			Type:    events.EventStaffRemoved,
			Payload: events.StaffPayload{StaffID: staff.ID, Name: staff.Name},
		}, nil
	})
}

// SetRoomStatus updates a room's status, creating the room when absent.
func (s *HousekeepingService) SetRoomStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Snapshot, error) {
	if !domain.ValidRoomStatus(status) {
		return nil, apperrors.NewValidationError("invalid room status", map[string]any{"status": status})
	}

	return s.mutate(ctx, func(tx store.Tx) (*events.Event, error) {
		if err := tx.Rooms().Upsert(ctx, &domain.Room{ID: id, Status: status}); err != nil {
			return nil, apperrors.MapError(err)
		}
		if err := s.recordActivity(ctx, tx, fmt.Sprintf("Room %d set to %s", id, status)); err != nil {
			return nil, err
		}
		return &events.Event{
			Type:    events.EventRoomStatusChanged,
			Payload: events.RoomStatusChangedPayload{RoomID: id, Status: status},
		}, nil
	})
}

// CreateTask creates a task in Pending state. The assignee display name is
// stored verbatim; when it exactly matches a staff name the staff identity
// is linked as well, for informational purposes only.
func (s *HousekeepingService) CreateTask(ctx context.Context, input TaskInput) (*domain.Snapshot, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("task title required", nil)
	}

	return s.mutate(ctx, func(tx store.Tx) (*events.Event, error) {
		task := &domain.Task{
			Title:    title,
			Assignee: input.Assignee,
			Room:     input.Room,
			Status:   domain.TaskStatusPending,
		}
		if input.Assignee != "" {
			staff, err := tx.Staff().GetByName(ctx, input.Assignee)
			switch {
			case err == nil:
				task.AssigneeID = &staff.ID
			case errors.Is(err, store.ErrNotFound):
				// no matching staff; keep the display name only
			default:
				return nil, apperrors.MapError(err)
			}
		}

		if err := tx.Tasks().Insert(ctx, task); err != nil {
			return nil, apperrors.MapError(err)
		}
		if err := s.recordActivity(ctx, tx, fmt.Sprintf("Created task '%s'", title)); err != nil {
			return nil, err
		}
		return &events.Event{
			Type: events.EventTaskCreated,
			Payload: events.TaskPayload{
				TaskID:   task.ID,
				Title:    task.Title,
				Assignee: task.Assignee,
				RoomID:   task.Room,
				Status:   task.Status,
			},
		}, nil
	})
}

// CompleteTask marks a task Completed and stamps today's date. Completing an
// already-completed task refreshes the date.
func (s *HousekeepingService) CompleteTask(ctx context.Context, id int64) (*domain.Snapshot, error) {
	return s.mutate(ctx, func(tx store.Tx) (*events.Event, error) {
		task, err := tx.Tasks().Get(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperrors.NewNotFound("task", map[string]any{"id": id})
			}
			return nil, apperrors.MapError(err)
		}

		doneOn := s.today()
		task.Status = domain.TaskStatusCompleted
		task.DoneOn = &doneOn

		if err := tx.Tasks().Update(ctx, task); err != nil {
			return nil, apperrors.MapError(err)
		}
		if err := s.recordActivity(ctx, tx, fmt.Sprintf("Completed task %s", task.Title)); err != nil {
			return nil, err
		}
		return &events.Event{
			Type: events.EventTaskCompleted,
			Payload: events.TaskPayload{
				TaskID:   task.ID,
				Title:    task.Title,
				Assignee: task.Assignee,
				RoomID:   task.Room,
				Status:   task.Status,
			},
		}, nil
	})
}

// mutate runs fn inside one atomic store update, rebuilds the snapshot in
// the same transaction, then invalidates the cache and publishes the event.
func (s *HousekeepingService) mutate(ctx context.Context, fn func(tx store.Tx) (*events.Event, error)) (*domain.Snapshot, error) {
	var (
		snap *domain.Snapshot
		evt  *events.Event
	)
	err := s.store.Update(ctx, func(tx store.Tx) error {
		var err error
		if evt, err = fn(tx); err != nil {
			return err
		}
		snap, err = buildSnapshot(ctx, tx)
		return err
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	// Invalidate only. Repopulating here would race a concurrent writer and
	// could pin the older snapshot until TTL; the next read refills the cache.
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.publish(ctx, evt)
	return snap, nil
}

func (s *HousekeepingService) recordActivity(ctx context.Context, tx store.Tx, event string) error {
	entry := &domain.Activity{
		Event: event,
		Date:  s.now().Format(domain.ActivityDateLayout),
	}
	if err := tx.Activity().Append(ctx, entry); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *HousekeepingService) publish(ctx context.Context, evt *events.Event) {
	if s.dispatcher == nil || evt == nil {
		return
	}
	evt.ID = uuid.NewString()
	evt.Timestamp = s.now()
	if err := s.dispatcher.Publish(ctx, *evt); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(evt.Type)), zap.Error(err))
	}
}

// today returns the current date truncated to midnight UTC.
func (s *HousekeepingService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func buildSnapshot(ctx context.Context, tx store.Tx) (*domain.Snapshot, error) {
	staff, err := tx.Staff().List(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := tx.Rooms().List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := tx.Tasks().List(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := tx.Activity().Recent(ctx, domain.ActivityWindow)
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{
		Staff:    staff,
		Rooms:    rooms,
		Tasks:    tasks,
		Activity: activity,
	}, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
