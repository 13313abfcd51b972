package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/housekeeping-service/internal/domain"
	"github.com/spec-kit/housekeeping-service/internal/events"
	"github.com/spec-kit/housekeeping-service/internal/service"
	"github.com/spec-kit/housekeeping-service/internal/store/memory"
	apperrors "github.com/spec-kit/housekeeping-service/pkg/util"
)

var testClock = func() time.Time {
	return time.Date(2025, 10, 12, 15, 4, 5, 0, time.UTC)
}

func newTestService(t *testing.T) *service.HousekeepingService {
	t.Helper()
	return service.NewHousekeepingService(service.Dependencies{
		Store: memory.NewSeeded(),
		Clock: testClock,
	})
}

func requireDomainError(t *testing.T, err error, code string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}

func TestSnapshot_ReturnsSeededState(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Staff, 6)
	assert.Len(t, snap.Rooms, 7)
	assert.Len(t, snap.Tasks, 5)
	assert.Empty(t, snap.Activity)
}

func TestAddStaff_AppendsWithDefaultsAndActivity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	snap, err := svc.AddStaff(ctx, service.StaffInput{Name: "  Frank Ocean  "})
	require.NoError(t, err)

	require.Len(t, snap.Staff, 7)
	added := snap.Staff[len(snap.Staff)-1]
	assert.Equal(t, int64(7), added.ID)
	assert.Equal(t, "Frank Ocean", added.Name)
	assert.Equal(t, "Housekeeper", added.Role)
	assert.Equal(t, "Room Cleaning", added.Type)
	assert.Equal(t, domain.StaffStatusActive, added.Status)
	assert.Zero(t, added.Assigned)

	require.Len(t, snap.Activity, 1)
	assert.Equal(t, "Added staff Frank Ocean", snap.Activity[0].Event)
	assert.Equal(t, "2025-10-12", snap.Activity[0].Date)
}

func TestAddStaff_EmptyNameRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.AddStaff(ctx, service.StaffInput{Name: "   "})
	requireDomainError(t, err, "VALIDATION_FAILED")

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Staff, 6)
	assert.Empty(t, snap.Activity)
}

func TestAddStaff_DuplicateNameConflictLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.AddStaff(ctx, service.StaffInput{Name: "ALICE johnson"})
	requireDomainError(t, err, "CONFLICT")

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Staff, 6)
	assert.Empty(t, snap.Activity)
}

func TestUpdateStaff_PatchChangesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	status := domain.StaffStatusInactive
	snap, err := svc.UpdateStaff(ctx, 2, service.StaffPatch{Status: &status})
	require.NoError(t, err)

	var bob domain.Staff
	for _, member := range snap.Staff {
		if member.ID == 2 {
			bob = member
		}
	}
	assert.Equal(t, "Bob Smith", bob.Name)
	assert.Equal(t, "Floor Cleaning", bob.Type)
	assert.Equal(t, domain.StaffStatusInactive, bob.Status)
	assert.Equal(t, 3, bob.Assigned)

	require.NotEmpty(t, snap.Activity)
	assert.Equal(t, "Updated staff Bob Smith", snap.Activity[len(snap.Activity)-1].Event)
}

func TestUpdateStaff_UnknownIDNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.UpdateStaff(ctx, 999, service.StaffPatch{})
	requireDomainError(t, err, "NOT_FOUND")
}

func TestDeleteStaff_RemovesMemberAndKeepsTaskAssigneeName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	snap, err := svc.DeleteStaff(ctx, 1)
	require.NoError(t, err)

	assert.Len(t, snap.Staff, 5)
	for _, member := range snap.Staff {
		assert.NotEqual(t, int64(1), member.ID)
	}

	// The removed member's task keeps its display name.
	require.NotEmpty(t, snap.Tasks)
	assert.Equal(t, "Alice Johnson", snap.Tasks[0].Assignee)

	require.NotEmpty(t, snap.Activity)
	assert.Equal(t, "Removed staff Alice Johnson", snap.Activity[len(snap.Activity)-1].Event)
}

func TestDeleteStaff_UnknownIDNotFoundAndStateUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.DeleteStaff(ctx, 999)
	requireDomainError(t, err, "NOT_FOUND")

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Staff, 6)
	assert.Empty(t, snap.Activity)
}

func TestSetRoomStatus_UpdatesExistingRoom(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	snap, err := svc.SetRoomStatus(ctx, 101, domain.RoomStatusNeeds)
	require.NoError(t, err)

	var room101 domain.Room
	for _, room := range snap.Rooms {
		if room.ID == 101 {
			room101 = room
		}
	}
	assert.Equal(t, domain.RoomStatusNeeds, room101.Status)
	assert.Len(t, snap.Rooms, 7)

	require.NotEmpty(t, snap.Activity)
	assert.Equal(t, "Room 101 set to Needs", snap.Activity[len(snap.Activity)-1].Event)
}

func TestSetRoomStatus_CreatesUnknownRoom(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	snap, err := svc.SetRoomStatus(ctx, 305, domain.RoomStatusVacant)
	require.NoError(t, err)

	assert.Len(t, snap.Rooms, 8)
	var found bool
	for _, room := range snap.Rooms {
		if room.ID == 305 {
			found = true
			assert.Equal(t, domain.RoomStatusVacant, room.Status)
		}
	}
	assert.True(t, found)
}

func TestSetRoomStatus_InvalidStatusRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.SetRoomStatus(ctx, 101, domain.RoomStatus("Bogus"))
	requireDomainError(t, err, "VALIDATION_FAILED")

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	for _, room := range snap.Rooms {
		if room.ID == 101 {
			assert.Equal(t, domain.RoomStatusVacant, room.Status)
		}
	}
	assert.Empty(t, snap.Activity)
}

func TestCreateTask_LinksExactStaffNameOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	snap, err := svc.CreateTask(ctx, service.TaskInput{Title: "Room 105 – Turnover", Assignee: "Alice Johnson"})
	require.NoError(t, err)

	require.Len(t, snap.Tasks, 6)
	created := snap.Tasks[len(snap.Tasks)-1]
	assert.Equal(t, int64(6), created.ID)
	assert.Equal(t, domain.TaskStatusPending, created.Status)
	assert.Nil(t, created.DoneOn)
	assert.Equal(t, "Alice Johnson", created.Assignee)
	require.NotNil(t, created.AssigneeID)
	assert.Equal(t, int64(1), *created.AssigneeID)

	require.NotEmpty(t, snap.Activity)
	assert.Equal(t, "Created task 'Room 105 – Turnover'", snap.Activity[len(snap.Activity)-1].Event)
}

func TestCreateTask_UnknownAssigneeKeptVerbatimWithoutLink(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	snap, err := svc.CreateTask(ctx, service.TaskInput{Title: "Window Wash", Assignee: "alice johnson"})
	require.NoError(t, err)

	created := snap.Tasks[len(snap.Tasks)-1]
	assert.Equal(t, "alice johnson", created.Assignee)
	assert.Nil(t, created.AssigneeID)
}

func TestCreateTask_EmptyTitleRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateTask(ctx, service.TaskInput{Title: "  "})
	requireDomainError(t, err, "VALIDATION_FAILED")
}

func TestCompleteTask_SetsStatusAndDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	snap, err := svc.CompleteTask(ctx, 1)
	require.NoError(t, err)

	var task domain.Task
	for _, candidate := range snap.Tasks {
		if candidate.ID == 1 {
			task = candidate
		}
	}
	assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	require.NotNil(t, task.DoneOn)
	assert.Equal(t, "2025-10-12", task.DoneOn.Format(domain.ActivityDateLayout))

	require.NotEmpty(t, snap.Activity)
	assert.Equal(t, "Completed task Room 101 – Standard Clean", snap.Activity[len(snap.Activity)-1].Event)
}

func TestCompleteTask_RecompletionRefreshesDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	// Task 3 is already completed with DoneOn 2025-10-11 in the seed data.
	snap, err := svc.CompleteTask(ctx, 3)
	require.NoError(t, err)

	var task domain.Task
	for _, candidate := range snap.Tasks {
		if candidate.ID == 3 {
			task = candidate
		}
	}
	assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	require.NotNil(t, task.DoneOn)
	assert.Equal(t, "2025-10-12", task.DoneOn.Format(domain.ActivityDateLayout))
}

func TestCompleteTask_UnknownIDNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CompleteTask(ctx, 999)
	requireDomainError(t, err, "NOT_FOUND")
}

func TestActivity_WindowCapsAtFiftyEntries(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	var snap *domain.Snapshot
	var err error
	for i := 0; i < 60; i++ {
		snap, err = svc.SetRoomStatus(ctx, 101, domain.RoomStatusVacant)
		require.NoError(t, err)
	}

	require.Len(t, snap.Activity, domain.ActivityWindow)
	for i := 1; i < len(snap.Activity); i++ {
		assert.Greater(t, snap.Activity[i].ID, snap.Activity[i-1].ID)
	}
}

func TestMutations_PublishEvents(t *testing.T) {
	ctx := context.Background()
	dispatcher := events.NewInMemoryDispatcher()

	var mu sync.Mutex
	var seen []events.EventType
	record := func(_ context.Context, evt events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, evt.Type)
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventStaffAdded,
		events.EventRoomStatusChanged,
		events.EventTaskCreated,
		events.EventTaskCompleted,
	} {
		dispatcher.Subscribe(eventType, record)
	}

	svc := service.NewHousekeepingService(service.Dependencies{
		Store:      memory.NewSeeded(),
		Dispatcher: dispatcher,
		Clock:      testClock,
	})

	_, err := svc.AddStaff(ctx, service.StaffInput{Name: "Frank Ocean"})
	require.NoError(t, err)
	_, err = svc.SetRoomStatus(ctx, 101, domain.RoomStatusOccupied)
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, service.TaskInput{Title: "Hall Sweep"})
	require.NoError(t, err)
	_, err = svc.CompleteTask(ctx, 6)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []events.EventType{
		events.EventStaffAdded,
		events.EventRoomStatusChanged,
		events.EventTaskCreated,
		events.EventTaskCompleted,
	}, seen)
}

type recordingCache struct {
	mu          sync.Mutex
	payload     []byte
	sets        int
	invalidates int
}

func (c *recordingCache) Get(_ context.Context) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.payload == nil {
		return nil, false
	}
	return c.payload, true
}

func (c *recordingCache) Set(_ context.Context, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = payload
	c.sets++
}

func (c *recordingCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = nil
	c.invalidates++
}

func TestSnapshot_ServedFromCacheUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	cache := &recordingCache{}
	svc := service.NewHousekeepingService(service.Dependencies{
		Store: memory.NewSeeded(),
		Cache: cache,
		Clock: testClock,
	})

	// First read fills the cache, second is served from it.
	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Staff, 6)
	assert.Equal(t, 1, cache.sets)
}

func TestMutations_InvalidateCacheWithoutRepopulating(t *testing.T) {
	ctx := context.Background()
	cache := &recordingCache{}
	svc := service.NewHousekeepingService(service.Dependencies{
		Store: memory.NewSeeded(),
		Cache: cache,
		Clock: testClock,
	})

	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)

	// A write drops the cached snapshot and does not write a fresh one.
	_, err = svc.AddStaff(ctx, service.StaffInput{Name: "Frank Ocean"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidates)
	assert.Equal(t, 1, cache.sets)
	assert.Nil(t, cache.payload)

	// The next read observes the write and refills the cache.
	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Staff, 7)
	assert.Equal(t, 2, cache.sets)
}

func TestConcurrentMutationsAndSnapshots(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_, err := svc.AddStaff(ctx, service.StaffInput{Name: fmt.Sprintf("Worker %02d", n)})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			snap, err := svc.Snapshot(ctx)
			assert.NoError(t, err)
			for _, member := range snap.Staff {
				assert.NotEmpty(t, member.Name)
				assert.NotZero(t, member.ID)
			}
		}()
	}
	wg.Wait()

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Staff, 26)
	assert.Len(t, snap.Activity, 20)
}
