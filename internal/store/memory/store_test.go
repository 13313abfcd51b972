package memory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/housekeeping-service/internal/domain"
	"github.com/spec-kit/housekeeping-service/internal/store"
	"github.com/spec-kit/housekeeping-service/internal/store/memory"
)

func TestStore_SeededState(t *testing.T) {
	ctx := context.Background()
	st := memory.NewSeeded()

	err := st.View(ctx, func(tx store.Tx) error {
		staff, err := tx.Staff().List(ctx)
		require.NoError(t, err)
		assert.Len(t, staff, 6)

		rooms, err := tx.Rooms().List(ctx)
		require.NoError(t, err)
		assert.Len(t, rooms, 7)

		tasks, err := tx.Tasks().List(ctx)
		require.NoError(t, err)
		assert.Len(t, tasks, 5)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_StaffInsertAssignsNextID(t *testing.T) {
	ctx := context.Background()
	st := memory.NewSeeded()

	err := st.Update(ctx, func(tx store.Tx) error {
		staff := &domain.Staff{Name: "Frank Ocean", Role: "Housekeeper", Type: "Laundry", Status: domain.StaffStatusActive}
		require.NoError(t, tx.Staff().Insert(ctx, staff))
		assert.Equal(t, int64(7), staff.ID)
		return nil
	})
	require.NoError(t, err)

	// Empty store starts at 1.
	empty := memory.New()
	err = empty.Update(ctx, func(tx store.Tx) error {
		staff := &domain.Staff{Name: "First Hire", Status: domain.StaffStatusActive}
		require.NoError(t, tx.Staff().Insert(ctx, staff))
		assert.Equal(t, int64(1), staff.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_UpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := memory.NewSeeded()
	boom := errors.New("boom")

	err := st.Update(ctx, func(tx store.Tx) error {
		staff := &domain.Staff{Name: "Ghost Writer", Status: domain.StaffStatusActive}
		require.NoError(t, tx.Staff().Insert(ctx, staff))
		require.NoError(t, tx.Activity().Append(ctx, &domain.Activity{Event: "never seen", Date: "2025-10-12"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = st.View(ctx, func(tx store.Tx) error {
		staff, err := tx.Staff().List(ctx)
		require.NoError(t, err)
		assert.Len(t, staff, 6)

		activity, err := tx.Activity().Recent(ctx, domain.ActivityWindow)
		require.NoError(t, err)
		assert.Empty(t, activity)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_StaffNameTakenIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	st := memory.NewSeeded()

	err := st.View(ctx, func(tx store.Tx) error {
		taken, err := tx.Staff().NameTaken(ctx, "alice JOHNSON")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = tx.Staff().NameTaken(ctx, "Nobody Here")
		require.NoError(t, err)
		assert.False(t, taken)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_StaffGetByNameIsExact(t *testing.T) {
	ctx := context.Background()
	st := memory.NewSeeded()

	err := st.View(ctx, func(tx store.Tx) error {
		staff, err := tx.Staff().GetByName(ctx, "Alice Johnson")
		require.NoError(t, err)
		assert.Equal(t, int64(1), staff.ID)

		_, err = tx.Staff().GetByName(ctx, "alice johnson")
		assert.ErrorIs(t, err, store.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_StaffDelete(t *testing.T) {
	ctx := context.Background()
	st := memory.NewSeeded()

	err := st.Update(ctx, func(tx store.Tx) error {
		return tx.Staff().Delete(ctx, 2)
	})
	require.NoError(t, err)

	err = st.View(ctx, func(tx store.Tx) error {
		_, err := tx.Staff().Get(ctx, 2)
		assert.ErrorIs(t, err, store.ErrNotFound)
		return nil
	})
	require.NoError(t, err)

	err = st.Update(ctx, func(tx store.Tx) error {
		return tx.Staff().Delete(ctx, 2)
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_RoomUpsertCreatesAndReplaces(t *testing.T) {
	ctx := context.Background()
	st := memory.NewSeeded()

	err := st.Update(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Rooms().Upsert(ctx, &domain.Room{ID: 301, Status: domain.RoomStatusNeeds}))
		return tx.Rooms().Upsert(ctx, &domain.Room{ID: 101, Status: domain.RoomStatusOccupied})
	})
	require.NoError(t, err)

	err = st.View(ctx, func(tx store.Tx) error {
		created, err := tx.Rooms().Get(ctx, 301)
		require.NoError(t, err)
		assert.Equal(t, domain.RoomStatusNeeds, created.Status)

		replaced, err := tx.Rooms().Get(ctx, 101)
		require.NoError(t, err)
		assert.Equal(t, domain.RoomStatusOccupied, replaced.Status)

		rooms, err := tx.Rooms().List(ctx)
		require.NoError(t, err)
		assert.Len(t, rooms, 8)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ActivityWindowTrimsAndOrders(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	err := st.Update(ctx, func(tx store.Tx) error {
		for i := 1; i <= 60; i++ {
			entry := &domain.Activity{Event: fmt.Sprintf("event %d", i), Date: "2025-10-12"}
			if err := tx.Activity().Append(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	err = st.View(ctx, func(tx store.Tx) error {
		recent, err := tx.Activity().Recent(ctx, domain.ActivityWindow)
		require.NoError(t, err)
		require.Len(t, recent, domain.ActivityWindow)

		// Oldest retained entry first, ids keep increasing past the trim.
		assert.Equal(t, "event 11", recent[0].Event)
		assert.Equal(t, "event 60", recent[len(recent)-1].Event)
		assert.Equal(t, int64(11), recent[0].ID)
		assert.Equal(t, int64(60), recent[len(recent)-1].ID)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ViewDoesNotObserveStagedWrites(t *testing.T) {
	ctx := context.Background()
	st := memory.NewSeeded()

	err := st.Update(ctx, func(tx store.Tx) error {
		staff := &domain.Staff{Name: "Mid Flight", Status: domain.StaffStatusActive}
		require.NoError(t, tx.Staff().Insert(ctx, staff))

		// A concurrent reader must still see the pre-update state.
		return st.View(ctx, func(view store.Tx) error {
			list, err := view.Staff().List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 6)
			return nil
		})
	})
	require.NoError(t, err)
}
