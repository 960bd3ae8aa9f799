package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

// BatchStaffRoles are the roles that can take a batch task.
var BatchStaffRoles = []storage.Role{storage.RoleBaker}

var batchSortColumns = map[string]string{
	"batch_id":        "b.batch_id",
	"recipe_name":     "r.recipe_name",
	"schedule_date":   "s.schedule_date",
	"batch_startTime": "b.batch_startTime",
	"batch_status":    "b.batch_status",
	"quality_check":   "b.quality_check",
}

type lockedSchedule struct {
	recipeID    int64
	batchNumber int
	status      storage.Status
}

func (s *Storage) lockSchedule(ctx context.Context, tx *sql.Tx, id int64) (*lockedSchedule, error) {
	var ls lockedSchedule
	err := tx.QueryRowContext(ctx, `SELECT recipe_id, schedule_batchNum, schedule_status
		FROM tbl_schedule WHERE schedule_id = ?`+s.forUpdate(), id).Scan(&ls.recipeID, &ls.batchNumber, &ls.status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Validation("schedule %d does not exist", id)
		}
		return nil, fmt.Errorf("select schedule id=%d: %w", id, err)
	}
	return &ls, nil
}

// guardSchedule checks that a batch for recipeID may be placed on the locked schedule, which
// must still have room for one more batch beyond the others it already holds.
func guardSchedule(ctx context.Context, tx *sql.Tx, scheduleID int64, ls *lockedSchedule, recipeID, excludeBatchID int64) error {
	if ls.status == storage.StatusCompleted {
		return apperr.New(apperr.KindImmutableSchedule, "schedule %d is completed and accepts no batch changes", scheduleID)
	}
	if ls.recipeID != recipeID {
		return apperr.Validation("recipe %d does not match the recipe of schedule %d", recipeID, scheduleID)
	}

	var others int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tbl_batches WHERE schedule_id = ? AND batch_id <> ?`,
		scheduleID, excludeBatchID).Scan(&others)
	if err != nil {
		return fmt.Errorf("count batches schedule id=%d: %w", scheduleID, err)
	}
	if others >= ls.batchNumber {
		return apperr.New(apperr.KindCapacityExceeded,
			"schedule %d already has %d of %d batches assigned", scheduleID, others, ls.batchNumber)
	}
	return nil
}

func (s *Storage) CreateBatch(ctx context.Context, w storage.BatchWrite) (int64, error) {
	const op = "storage.mysql.CreateBatch"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	ls, err := s.lockSchedule(ctx, tx, w.ScheduleID)
	if err != nil {
		return 0, translate(op, err)
	}
	if err := guardSchedule(ctx, tx, w.ScheduleID, ls, w.RecipeID, 0); err != nil {
		return 0, translate(op, err)
	}
	if err := s.checkStaff(ctx, tx, assignmentUsers(w.Assignments), BatchStaffRoles, "", 0); err != nil {
		return 0, translate(op, err)
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO tbl_batches
		(recipe_id, schedule_id, batch_startTime, batch_endTime, batch_status, batch_remarks, quality_check)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.RecipeID, w.ScheduleID, w.Start.Format(storage.DateTimeLayout), w.End.Format(storage.DateTimeLayout),
		storage.StatusPending, w.Remarks, w.QualityCheck)
	if err != nil {
		return 0, translate(op, fmt.Errorf("insert batch: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	if err := replaceBatchAssignments(ctx, tx, id, w.Assignments); err != nil {
		return 0, translate(op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, translate(op, fmt.Errorf("commit: %w", err))
	}

	return id, nil
}

func (s *Storage) UpdateBatch(ctx context.Context, id int64, w storage.BatchWrite) error {
	const op = "storage.mysql.UpdateBatch"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var currentSchedule int64
	err = tx.QueryRowContext(ctx, `SELECT schedule_id FROM tbl_batches WHERE batch_id = ?`+s.forUpdate(), id).Scan(&currentSchedule)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("batch %d not found", id)
		}
		return fmt.Errorf("%s: select batch id=%d: %w", op, id, err)
	}

	if currentSchedule != w.ScheduleID {
		current, err := s.lockSchedule(ctx, tx, currentSchedule)
		if err != nil {
			return translate(op, err)
		}
		if current.status == storage.StatusCompleted {
			return apperr.New(apperr.KindImmutableSchedule,
				"schedule %d is completed and accepts no batch changes", currentSchedule)
		}
	}

	target, err := s.lockSchedule(ctx, tx, w.ScheduleID)
	if err != nil {
		return translate(op, err)
	}
	if err := guardSchedule(ctx, tx, w.ScheduleID, target, w.RecipeID, id); err != nil {
		return translate(op, err)
	}
	if err := s.checkStaff(ctx, tx, assignmentUsers(w.Assignments), BatchStaffRoles, "", 0); err != nil {
		return translate(op, err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE tbl_batches SET
		recipe_id = ?, schedule_id = ?, batch_startTime = ?, batch_endTime = ?,
		batch_status = ?, batch_remarks = ?, quality_check = ?
		WHERE batch_id = ?`,
		w.RecipeID, w.ScheduleID, w.Start.Format(storage.DateTimeLayout), w.End.Format(storage.DateTimeLayout),
		w.Status, w.Remarks, w.QualityCheck, id)
	if err != nil {
		return translate(op, fmt.Errorf("update batch id=%d: %w", id, err))
	}

	if err := replaceBatchAssignments(ctx, tx, id, w.Assignments); err != nil {
		return translate(op, err)
	}

	if err := tx.Commit(); err != nil {
		return translate(op, fmt.Errorf("commit: %w", err))
	}

	return nil
}

// DeleteBatch removes the batch and its assignments. Deleting a missing batch is not an error.
func (s *Storage) DeleteBatch(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteBatch"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tbl_batch_assignments WHERE batch_id = ?`, id); err != nil {
		return translate(op, fmt.Errorf("delete assignments: %w", err))
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tbl_batches WHERE batch_id = ?`, id); err != nil {
		return translate(op, fmt.Errorf("delete batch: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return translate(op, fmt.Errorf("commit: %w", err))
	}

	return nil
}

func (s *Storage) GetBatch(ctx context.Context, id int64) (*storage.Batch, error) {
	const op = "storage.mysql.GetBatch"

	batches, err := s.selectBatches(ctx, `WHERE b.batch_id = ?`, []interface{}{id}, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(batches) == 0 {
		return nil, apperr.NotFound("batch %d not found", id)
	}

	return &batches[0], nil
}

func (s *Storage) ListBatches(ctx context.Context, f storage.BatchFilter) ([]storage.Batch, error) {
	const op = "storage.mysql.ListBatches"

	var (
		conds []string
		args  []interface{}
	)
	if f.RecipeID > 0 {
		conds = append(conds, "b.recipe_id = ?")
		args = append(args, f.RecipeID)
	}
	if f.Status != "" {
		conds = append(conds, "b.batch_status = ?")
		args = append(args, f.Status)
	}
	if f.Date != "" {
		conds = append(conds, "DATE(b.batch_startTime) = ?")
		args = append(args, f.Date)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	column, ok := batchSortColumns[f.Sort]
	if !ok {
		column = "b.batch_startTime"
	}
	orderBy := fmt.Sprintf("ORDER BY %s %s, b.batch_id %s", column, sortOrder(f.Order), sortOrder(f.Order))

	batches, err := s.selectBatches(ctx, where, args, orderBy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return batches, nil
}

func (s *Storage) selectBatches(ctx context.Context, where string, args []interface{}, orderBy string) ([]storage.Batch, error) {
	query := `SELECT b.batch_id, b.recipe_id, r.recipe_name, b.schedule_id, s.schedule_date, s.schedule_batchNum,
			(SELECT COUNT(*) FROM tbl_batches b2 WHERE b2.schedule_id = b.schedule_id),
			b.batch_startTime, b.batch_endTime, b.batch_status,
			COALESCE(b.batch_remarks, ''), COALESCE(b.quality_check, '')
		FROM tbl_batches b
		JOIN tbl_recipe r ON r.recipe_id = b.recipe_id
		JOIN tbl_schedule s ON s.schedule_id = b.schedule_id ` + where + " " + orderBy

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select batches: %w", err)
	}
	defer rows.Close()

	batches := []storage.Batch{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			b    storage.Batch
			date time.Time
		)
		if err := rows.Scan(&b.ID, &b.RecipeID, &b.RecipeName, &b.ScheduleID, &date, &b.ScheduleBatchNum,
			&b.AssignedBatches, &b.StartTime, &b.EndTime, &b.Status, &b.Remarks, &b.QualityCheck); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.ScheduleDate = date.Format(storage.DateLayout)
		b.Assignments = []storage.BatchAssignment{}
		index[b.ID] = len(batches)
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(batches) == 0 {
		return batches, nil
	}

	ids := make([]int64, len(batches))
	for i, b := range batches {
		ids[i] = b.ID
	}

	query = fmt.Sprintf(`SELECT ba.batch_id, ba.ba_id, ba.user_id, u.user_fullName, ba.ba_task, ba.ba_status
		FROM tbl_batch_assignments ba
		JOIN tbl_users u ON u.user_id = ba.user_id
		WHERE ba.batch_id IN (%s)
		ORDER BY ba.ba_id`, placeholders(len(ids)))

	arows, err := s.db.QueryContext(ctx, query, toInterfaceSlice(ids)...)
	if err != nil {
		return nil, fmt.Errorf("select assignments: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		var (
			batchID int64
			a       storage.BatchAssignment
		)
		if err := arows.Scan(&batchID, &a.ID, &a.UserID, &a.FullName, &a.Task, &a.Status); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		i := index[batchID]
		batches[i].Assignments = append(batches[i].Assignments, a)
	}

	return batches, arows.Err()
}

func replaceBatchAssignments(ctx context.Context, tx *sql.Tx, batchID int64, assignments []storage.TaskAssignment) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tbl_batch_assignments WHERE batch_id = ?`, batchID); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tbl_batch_assignments (batch_id, user_id, ba_task, ba_status) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare assignments: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		if _, err := stmt.ExecContext(ctx, batchID, a.UserID, a.Task, storage.StatusPending); err != nil {
			return fmt.Errorf("insert assignment user=%d task=%s: %w", a.UserID, a.Task, err)
		}
	}
	return nil
}

func assignmentUsers(assignments []storage.TaskAssignment) []int64 {
	seen := make(map[int64]struct{}, len(assignments))
	ids := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		if _, ok := seen[a.UserID]; ok {
			continue
		}
		seen[a.UserID] = struct{}{}
		ids = append(ids, a.UserID)
	}
	return ids
}
