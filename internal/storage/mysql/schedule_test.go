package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

func TestCreateSchedule(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)

	id := seedSchedule(t, s, f.scheduleFor("2030-03-01"))

	got, err := s.GetSchedule(testCtx(t), id)
	require.NoError(t, err)
	assert.Equal(t, "2030-03-01", got.Date)
	assert.Equal(t, "Pandesal", got.RecipeName)
	assert.Equal(t, 3, got.BatchNumber)
	assert.Equal(t, 90.0, got.QuantityToProduce)
	assert.Equal(t, storage.StatusPending, got.Status)
	assert.Len(t, got.Users, 2)
	require.Len(t, got.Equipment, 1)
	assert.Equal(t, storage.EquipmentInUse, got.Equipment[0].Status)
}

func TestCreateSchedule_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f fixture, w *storage.ScheduleWrite)
		kind   apperr.Kind
	}{
		{
			name:   "unknown recipe",
			mutate: func(f fixture, w *storage.ScheduleWrite) { w.RecipeID = 999 },
			kind:   apperr.KindValidation,
		},
		{
			name:   "unknown user",
			mutate: func(f fixture, w *storage.ScheduleWrite) { w.UserIDs = []int64{999} },
			kind:   apperr.KindValidation,
		},
		{
			name:   "admin cannot be scheduled",
			mutate: func(f fixture, w *storage.ScheduleWrite) { w.UserIDs = []int64{f.admin} },
			kind:   apperr.KindValidation,
		},
		{
			name:   "unknown equipment",
			mutate: func(f fixture, w *storage.ScheduleWrite) { w.EquipmentIDs = []int64{999} },
			kind:   apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStorage(t)
			f := newFixture(t, s)
			w := f.scheduleFor("2030-03-01")
			tt.mutate(f, &w)

			_, err := s.CreateSchedule(testCtx(t), w)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
			assert.Equal(t, 0, countRows(t, s, `SELECT COUNT(*) FROM tbl_schedule`))
		})
	}
}

func TestCreateSchedule_DoubleBooking(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	seedSchedule(t, s, f.scheduleFor("2030-03-01"))

	w := f.scheduleFor("2030-03-01")
	w.EquipmentIDs = nil
	_, err := s.CreateSchedule(testCtx(t), w)
	require.ErrorIs(t, err, apperr.ErrResourceConflict)
	assert.Contains(t, apperr.Message(err), "Ana Baker")

	w = f.scheduleFor("2030-03-01")
	w.UserIDs = []int64{f.baker2}
	_, err = s.CreateSchedule(testCtx(t), w)
	require.ErrorIs(t, err, apperr.ErrResourceConflict)
	assert.Contains(t, apperr.Message(err), "Deck Oven")

	// another day is fine
	seedSchedule(t, s, f.scheduleFor("2030-03-02"))
	assert.Equal(t, 2, countRows(t, s, `SELECT COUNT(*) FROM tbl_schedule`))
}

func TestCreateSchedule_OutOfOrderEquipment(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	broken := seedEquipment(t, s, "Proofer", storage.EquipmentOutOfOrder)

	w := f.scheduleFor("2030-03-01")
	w.EquipmentIDs = []int64{broken}
	_, err := s.CreateSchedule(testCtx(t), w)
	require.ErrorIs(t, err, apperr.ErrResourceConflict)
	assert.Equal(t, storage.EquipmentOutOfOrder, equipmentStatus(t, s, broken))
}

func TestUpdateSchedule_KeepsLinkedEquipmentThatBrokeDown(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	id := seedSchedule(t, s, f.scheduleFor("2030-03-01"))
	require.NoError(t, s.SetEquipmentStatus(testCtx(t), f.oven, storage.EquipmentOutOfOrder))

	w := f.scheduleFor("2030-03-01")
	w.Status = storage.StatusInProgress
	require.NoError(t, s.UpdateSchedule(testCtx(t), id, w))
	assert.Equal(t, storage.EquipmentOutOfOrder, equipmentStatus(t, s, f.oven))

	broken := seedEquipment(t, s, "Proofer", storage.EquipmentOutOfOrder)
	w.EquipmentIDs = []int64{f.oven, broken}
	err := s.UpdateSchedule(testCtx(t), id, w)
	require.ErrorIs(t, err, apperr.ErrResourceConflict)

	for day := 1; day <= 3; day++ {
		seedBatch(t, s, f.batchFor(id, day))
	}
	_, err = s.db.Exec(`UPDATE tbl_batches SET batch_status = ? WHERE schedule_id = ?`, storage.StatusCompleted, id)
	require.NoError(t, err)

	w.EquipmentIDs = []int64{f.oven}
	w.Status = storage.StatusCompleted
	require.NoError(t, s.UpdateSchedule(testCtx(t), id, w))

	got, err := s.GetSchedule(testCtx(t), id)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusCompleted, got.Status)
	assert.Equal(t, storage.EquipmentOutOfOrder, equipmentStatus(t, s, f.oven))
}

func TestUpdateSchedule_ReplacesAssignmentsAndReconcilesEquipment(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	id := seedSchedule(t, s, f.scheduleFor("2030-03-01"))
	require.Equal(t, storage.EquipmentInUse, equipmentStatus(t, s, f.oven))

	w := f.scheduleFor("2030-03-01")
	w.UserIDs = []int64{f.baker2}
	w.EquipmentIDs = []int64{f.mixer}
	w.Status = storage.StatusInProgress
	require.NoError(t, s.UpdateSchedule(testCtx(t), id, w))

	got, err := s.GetSchedule(testCtx(t), id)
	require.NoError(t, err)
	require.Len(t, got.Users, 1)
	assert.Equal(t, f.baker2, got.Users[0].UserID)
	require.Len(t, got.Equipment, 1)
	assert.Equal(t, f.mixer, got.Equipment[0].EquipmentID)
	assert.Equal(t, storage.StatusInProgress, got.Status)

	assert.Equal(t, storage.EquipmentAvailable, equipmentStatus(t, s, f.oven))
	assert.Equal(t, storage.EquipmentInUse, equipmentStatus(t, s, f.mixer))
}

func TestUpdateSchedule_ReleaseKeepsItemsHeldElsewhere(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	first := seedSchedule(t, s, f.scheduleFor("2030-03-01"))

	other := f.scheduleFor("2030-03-02")
	other.UserIDs = []int64{f.baker2}
	seedSchedule(t, s, other)

	w := f.scheduleFor("2030-03-01")
	w.EquipmentIDs = nil
	require.NoError(t, s.UpdateSchedule(testCtx(t), first, w))

	assert.Equal(t, storage.EquipmentInUse, equipmentStatus(t, s, f.oven))
}

func TestUpdateSchedule_CompletedIsImmutable(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	id := seedSchedule(t, s, f.scheduleFor("2030-03-01"))
	_, err := s.db.Exec(`UPDATE tbl_schedule SET schedule_status = ? WHERE schedule_id = ?`, storage.StatusCompleted, id)
	require.NoError(t, err)

	before, err := s.GetSchedule(testCtx(t), id)
	require.NoError(t, err)

	w := f.scheduleFor("2030-03-05")
	w.OrderVolume = 300
	w.BatchNumber = 10
	w.QuantityToProduce = 300
	w.UserIDs = []int64{f.baker2}
	err = s.UpdateSchedule(testCtx(t), id, w)
	require.ErrorIs(t, err, apperr.ErrImmutableSchedule)

	after, err := s.GetSchedule(testCtx(t), id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateSchedule_CompletionNeedsCompletedBatches(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	id := seedSchedule(t, s, f.scheduleFor("2030-03-01"))

	var batches []int64
	for day := 1; day <= 3; day++ {
		batches = append(batches, seedBatch(t, s, f.batchFor(id, day)))
	}
	_, err := s.db.Exec(`UPDATE tbl_batches SET batch_status = ? WHERE batch_id IN (?, ?)`,
		storage.StatusCompleted, batches[0], batches[1])
	require.NoError(t, err)

	w := f.scheduleFor("2030-03-01")
	w.Status = storage.StatusCompleted
	err = s.UpdateSchedule(testCtx(t), id, w)
	require.ErrorIs(t, err, apperr.ErrIncompleteBatches)

	_, err = s.db.Exec(`UPDATE tbl_batches SET batch_status = ? WHERE batch_id = ?`, storage.StatusCompleted, batches[2])
	require.NoError(t, err)
	require.NoError(t, s.UpdateSchedule(testCtx(t), id, w))

	got, err := s.GetSchedule(testCtx(t), id)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusCompleted, got.Status)
	assert.Equal(t, 3, got.CompletedBatches)
	assert.Equal(t, storage.EquipmentAvailable, equipmentStatus(t, s, f.oven))
}

func TestUpdateSchedule_BatchNumberBelowAssigned(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	id := seedSchedule(t, s, f.scheduleFor("2030-03-01"))
	seedBatch(t, s, f.batchFor(id, 1))
	seedBatch(t, s, f.batchFor(id, 2))

	w := f.scheduleFor("2030-03-01")
	w.OrderVolume = 30
	w.BatchNumber = 1
	w.QuantityToProduce = 30
	err := s.UpdateSchedule(testCtx(t), id, w)
	require.ErrorIs(t, err, apperr.ErrCapacityExceeded)
}

func TestUpdateSchedule_NotFound(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)

	err := s.UpdateSchedule(testCtx(t), 42, f.scheduleFor("2030-03-01"))
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteSchedule(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	id := seedSchedule(t, s, f.scheduleFor("2030-03-01"))
	seedBatch(t, s, f.batchFor(id, 1))

	require.NoError(t, s.DeleteSchedule(testCtx(t), id))

	assert.Equal(t, 0, countRows(t, s, `SELECT COUNT(*) FROM tbl_schedule`))
	assert.Equal(t, 0, countRows(t, s, `SELECT COUNT(*) FROM tbl_schedule_assignments`))
	assert.Equal(t, 0, countRows(t, s, `SELECT COUNT(*) FROM tbl_schedule_equipment`))
	assert.Equal(t, 0, countRows(t, s, `SELECT COUNT(*) FROM tbl_batches`))
	assert.Equal(t, 0, countRows(t, s, `SELECT COUNT(*) FROM tbl_batch_assignments`))
	assert.Equal(t, storage.EquipmentAvailable, equipmentStatus(t, s, f.oven))

	err := s.DeleteSchedule(testCtx(t), id)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteSchedule_RollsBackOnFailure(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	id := seedSchedule(t, s, f.scheduleFor("2030-03-01"))

	_, err := s.db.Exec(`CREATE TRIGGER fail_schedule_delete BEFORE DELETE ON tbl_schedule
		BEGIN SELECT RAISE(ABORT, 'disk full'); END`)
	require.NoError(t, err)

	err = s.DeleteSchedule(testCtx(t), id)
	require.Error(t, err)

	assert.Equal(t, 1, countRows(t, s, `SELECT COUNT(*) FROM tbl_schedule`))
	assert.Equal(t, 2, countRows(t, s, `SELECT COUNT(*) FROM tbl_schedule_assignments WHERE schedule_id = ?`, id))
	assert.Equal(t, 1, countRows(t, s, `SELECT COUNT(*) FROM tbl_schedule_equipment WHERE schedule_id = ?`, id))
	assert.Equal(t, storage.EquipmentInUse, equipmentStatus(t, s, f.oven))
}

func TestListSchedules(t *testing.T) {
	s := newTestStorage(t)
	f := newFixture(t, s)
	rye := seedRecipe(t, s, "Rye", 10)

	first := seedSchedule(t, s, f.scheduleFor("2030-03-01"))
	second := f.scheduleFor("2030-03-02")
	second.RecipeID = rye
	second.OrderVolume = 25
	second.BatchNumber = 3
	second.QuantityToProduce = 30
	secondID := seedSchedule(t, s, second)

	all, err := s.ListSchedules(testCtx(t), storage.ScheduleFilter{Sort: "schedule_date", Order: "ASC"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0].ID)
	assert.Equal(t, secondID, all[1].ID)

	byRecipe, err := s.ListSchedules(testCtx(t), storage.ScheduleFilter{RecipeID: rye})
	require.NoError(t, err)
	require.Len(t, byRecipe, 1)
	assert.Equal(t, "Rye", byRecipe[0].RecipeName)

	byDate, err := s.ListSchedules(testCtx(t), storage.ScheduleFilter{Date: "2030-03-01"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, first, byDate[0].ID)

	ranged, err := s.ListSchedules(testCtx(t), storage.ScheduleFilter{From: "2030-03-02", To: "2030-03-31"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, secondID, ranged[0].ID)

	// unknown sort columns fall back to the default order instead of reaching the query
	_, err = s.ListSchedules(testCtx(t), storage.ScheduleFilter{Sort: "schedule_id; DROP TABLE tbl_schedule"})
	require.NoError(t, err)
}
