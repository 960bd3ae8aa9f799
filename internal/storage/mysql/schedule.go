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

// ScheduleStaffRoles are the roles that can be attached to a schedule.
var ScheduleStaffRoles = []storage.Role{storage.RoleBaker, storage.RoleSupervisor}

var scheduleSortColumns = map[string]string{
	"schedule_date":        "s.schedule_date",
	"schedule_orderVolumn": "s.schedule_orderVolumn",
	"schedule_status":      "s.schedule_status",
	"schedule_id":          "s.schedule_id",
}

func (s *Storage) CreateSchedule(ctx context.Context, w storage.ScheduleWrite) (int64, error) {
	const op = "storage.mysql.CreateSchedule"

	tx, err := s.db.BeginTx(ctx, s.writeTxOptions())
	if err != nil {
		return 0, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if err := s.checkRecipe(ctx, tx, w.RecipeID); err != nil {
		return 0, translate(op, err)
	}
	if err := s.checkStaff(ctx, tx, w.UserIDs, ScheduleStaffRoles, w.Date, 0); err != nil {
		return 0, translate(op, err)
	}
	if err := s.checkEquipment(ctx, tx, w.EquipmentIDs, w.Date, 0); err != nil {
		return 0, translate(op, err)
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO tbl_schedule
		(recipe_id, schedule_date, schedule_quantityToProduce, schedule_status, schedule_orderVolumn, schedule_batchNum)
		VALUES (?, ?, ?, ?, ?, ?)`,
		w.RecipeID, w.Date, w.QuantityToProduce, storage.StatusPending, w.OrderVolume, w.BatchNumber)
	if err != nil {
		return 0, translate(op, fmt.Errorf("insert schedule: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	if err := replaceScheduleUsers(ctx, tx, id, w.UserIDs); err != nil {
		return 0, translate(op, err)
	}
	if err := replaceScheduleEquipment(ctx, tx, id, w.EquipmentIDs); err != nil {
		return 0, translate(op, err)
	}
	if err := markEquipmentInUse(ctx, tx, w.EquipmentIDs); err != nil {
		return 0, translate(op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, translate(op, fmt.Errorf("commit: %w", err))
	}

	return id, nil
}

func (s *Storage) UpdateSchedule(ctx context.Context, id int64, w storage.ScheduleWrite) error {
	const op = "storage.mysql.UpdateSchedule"

	tx, err := s.db.BeginTx(ctx, s.writeTxOptions())
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var current storage.Status
	err = tx.QueryRowContext(ctx, `SELECT schedule_status FROM tbl_schedule WHERE schedule_id = ?`+s.forUpdate(), id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("schedule %d not found", id)
		}
		return fmt.Errorf("%s: select schedule id=%d: %w", op, id, err)
	}
	if current == storage.StatusCompleted {
		return apperr.New(apperr.KindImmutableSchedule, "schedule %d is completed and can no longer be edited", id)
	}

	assigned, completed, err := countBatches(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if w.BatchNumber < assigned {
		return apperr.New(apperr.KindCapacityExceeded,
			"order volume needs %d batches but %d are already assigned to this schedule", w.BatchNumber, assigned)
	}
	if w.Status == storage.StatusCompleted && completed < w.BatchNumber {
		return apperr.New(apperr.KindIncompleteBatches,
			"only %d of %d batches are completed", completed, w.BatchNumber)
	}

	if err := s.checkRecipe(ctx, tx, w.RecipeID); err != nil {
		return translate(op, err)
	}
	if err := s.checkStaff(ctx, tx, w.UserIDs, ScheduleStaffRoles, w.Date, id); err != nil {
		return translate(op, err)
	}
	if err := s.checkEquipment(ctx, tx, w.EquipmentIDs, w.Date, id); err != nil {
		return translate(op, err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE tbl_schedule SET
		recipe_id = ?, schedule_date = ?, schedule_quantityToProduce = ?, schedule_status = ?,
		schedule_orderVolumn = ?, schedule_batchNum = ?
		WHERE schedule_id = ?`,
		w.RecipeID, w.Date, w.QuantityToProduce, w.Status, w.OrderVolume, w.BatchNumber, id)
	if err != nil {
		return translate(op, fmt.Errorf("update schedule id=%d: %w", id, err))
	}

	previous, err := scanIDs(ctx, tx, `SELECT equipment_id FROM tbl_schedule_equipment WHERE schedule_id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: select equipment: %w", op, err)
	}

	if err := replaceScheduleUsers(ctx, tx, id, w.UserIDs); err != nil {
		return translate(op, err)
	}
	if err := replaceScheduleEquipment(ctx, tx, id, w.EquipmentIDs); err != nil {
		return translate(op, err)
	}

	if err := releaseEquipment(ctx, tx, difference(previous, w.EquipmentIDs), id); err != nil {
		return translate(op, err)
	}
	if w.Status == storage.StatusCompleted {
		err = releaseEquipment(ctx, tx, w.EquipmentIDs, id)
	} else {
		err = markEquipmentInUse(ctx, tx, w.EquipmentIDs)
	}
	if err != nil {
		return translate(op, err)
	}

	if err := tx.Commit(); err != nil {
		return translate(op, fmt.Errorf("commit: %w", err))
	}

	return nil
}

func (s *Storage) DeleteSchedule(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteSchedule"

	tx, err := s.db.BeginTx(ctx, s.writeTxOptions())
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRowContext(ctx, `SELECT schedule_id FROM tbl_schedule WHERE schedule_id = ?`+s.forUpdate(), id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("schedule %d not found", id)
		}
		return fmt.Errorf("%s: select schedule id=%d: %w", op, id, err)
	}

	equipment, err := scanIDs(ctx, tx, `SELECT equipment_id FROM tbl_schedule_equipment WHERE schedule_id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: select equipment: %w", op, err)
	}

	steps := []struct {
		name string
		stmt string
	}{
		{"batch assignments", `DELETE FROM tbl_batch_assignments WHERE batch_id IN (SELECT batch_id FROM tbl_batches WHERE schedule_id = ?)`},
		{"batches", `DELETE FROM tbl_batches WHERE schedule_id = ?`},
		{"user assignments", `DELETE FROM tbl_schedule_assignments WHERE schedule_id = ?`},
		{"equipment links", `DELETE FROM tbl_schedule_equipment WHERE schedule_id = ?`},
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.stmt, id); err != nil {
			return translate(op, fmt.Errorf("delete %s: %w", step.name, err))
		}
	}

	if err := releaseEquipment(ctx, tx, equipment, id); err != nil {
		return translate(op, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tbl_schedule WHERE schedule_id = ?`, id); err != nil {
		return translate(op, fmt.Errorf("delete schedule: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return translate(op, fmt.Errorf("commit: %w", err))
	}

	return nil
}

func (s *Storage) GetSchedule(ctx context.Context, id int64) (*storage.Schedule, error) {
	const op = "storage.mysql.GetSchedule"

	schedules, err := s.selectSchedules(ctx, `WHERE s.schedule_id = ?`, []interface{}{id}, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(schedules) == 0 {
		return nil, apperr.NotFound("schedule %d not found", id)
	}

	return &schedules[0], nil
}

func (s *Storage) ListSchedules(ctx context.Context, f storage.ScheduleFilter) ([]storage.Schedule, error) {
	const op = "storage.mysql.ListSchedules"

	var (
		conds []string
		args  []interface{}
	)
	if f.Date != "" {
		conds = append(conds, "s.schedule_date = ?")
		args = append(args, f.Date)
	}
	if f.From != "" {
		conds = append(conds, "s.schedule_date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		conds = append(conds, "s.schedule_date <= ?")
		args = append(args, f.To)
	}
	if f.RecipeID > 0 {
		conds = append(conds, "s.recipe_id = ?")
		args = append(args, f.RecipeID)
	}
	if f.Status != "" {
		conds = append(conds, "s.schedule_status = ?")
		args = append(args, f.Status)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	column, ok := scheduleSortColumns[f.Sort]
	if !ok {
		column = "s.schedule_date"
	}
	orderBy := fmt.Sprintf("ORDER BY %s %s, s.schedule_id %s", column, sortOrder(f.Order), sortOrder(f.Order))

	schedules, err := s.selectSchedules(ctx, where, args, orderBy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return schedules, nil
}

func (s *Storage) selectSchedules(ctx context.Context, where string, args []interface{}, orderBy string) ([]storage.Schedule, error) {
	query := `SELECT s.schedule_id, s.recipe_id, r.recipe_name, s.schedule_date, s.schedule_orderVolumn,
			s.schedule_batchNum, s.schedule_quantityToProduce, s.schedule_status,
			(SELECT COUNT(*) FROM tbl_batches b WHERE b.schedule_id = s.schedule_id),
			(SELECT COUNT(*) FROM tbl_batches b WHERE b.schedule_id = s.schedule_id AND b.batch_status = ?)
		FROM tbl_schedule s
		JOIN tbl_recipe r ON r.recipe_id = s.recipe_id ` + where + " " + orderBy

	rows, err := s.db.QueryContext(ctx, query, append([]interface{}{storage.StatusCompleted}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("select schedules: %w", err)
	}
	defer rows.Close()

	schedules := []storage.Schedule{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			sc   storage.Schedule
			date time.Time
		)
		if err := rows.Scan(&sc.ID, &sc.RecipeID, &sc.RecipeName, &date, &sc.OrderVolume, &sc.BatchNumber,
			&sc.QuantityToProduce, &sc.Status, &sc.AssignedBatches, &sc.CompletedBatches); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		sc.Date = date.Format(storage.DateLayout)
		sc.Users = []storage.AssignedUser{}
		sc.Equipment = []storage.AssignedEquipment{}
		index[sc.ID] = len(schedules)
		schedules = append(schedules, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(schedules) == 0 {
		return schedules, nil
	}

	ids := make([]int64, len(schedules))
	for i, sc := range schedules {
		ids[i] = sc.ID
	}

	if err := s.attachScheduleUsers(ctx, schedules, index, ids); err != nil {
		return nil, err
	}
	if err := s.attachScheduleEquipment(ctx, schedules, index, ids); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (s *Storage) attachScheduleUsers(ctx context.Context, schedules []storage.Schedule, index map[int64]int, ids []int64) error {
	query := fmt.Sprintf(`SELECT sa.schedule_id, u.user_id, u.user_fullName, u.user_role
		FROM tbl_schedule_assignments sa
		JOIN tbl_users u ON u.user_id = sa.user_id
		WHERE sa.schedule_id IN (%s)
		ORDER BY u.user_fullName`, placeholders(len(ids)))

	rows, err := s.db.QueryContext(ctx, query, toInterfaceSlice(ids)...)
	if err != nil {
		return fmt.Errorf("select schedule users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			scheduleID int64
			u          storage.AssignedUser
		)
		if err := rows.Scan(&scheduleID, &u.UserID, &u.FullName, &u.Role); err != nil {
			return fmt.Errorf("scan schedule user: %w", err)
		}
		i := index[scheduleID]
		schedules[i].Users = append(schedules[i].Users, u)
	}

	return rows.Err()
}

func (s *Storage) attachScheduleEquipment(ctx context.Context, schedules []storage.Schedule, index map[int64]int, ids []int64) error {
	query := fmt.Sprintf(`SELECT se.schedule_id, e.equipment_id, e.equipment_name, e.equipment_status
		FROM tbl_schedule_equipment se
		JOIN tbl_equipments e ON e.equipment_id = se.equipment_id
		WHERE se.schedule_id IN (%s)
		ORDER BY e.equipment_name`, placeholders(len(ids)))

	rows, err := s.db.QueryContext(ctx, query, toInterfaceSlice(ids)...)
	if err != nil {
		return fmt.Errorf("select schedule equipment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			scheduleID int64
			e          storage.AssignedEquipment
		)
		if err := rows.Scan(&scheduleID, &e.EquipmentID, &e.Name, &e.Status); err != nil {
			return fmt.Errorf("scan schedule equipment: %w", err)
		}
		i := index[scheduleID]
		schedules[i].Equipment = append(schedules[i].Equipment, e)
	}

	return rows.Err()
}

func (s *Storage) checkRecipe(ctx context.Context, q querier, recipeID int64) error {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT recipe_id FROM tbl_recipe WHERE recipe_id = ?`, recipeID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Validation("recipe %d does not exist", recipeID)
		}
		return fmt.Errorf("select recipe id=%d: %w", recipeID, err)
	}
	return nil
}

// countBatches returns how many batches reference the schedule and how many of them are completed.
func countBatches(ctx context.Context, q querier, scheduleID int64) (assigned, completed int, err error) {
	err = q.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(CASE WHEN batch_status = ? THEN 1 ELSE 0 END), 0)
		FROM tbl_batches WHERE schedule_id = ?`, storage.StatusCompleted, scheduleID).Scan(&assigned, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("count batches schedule id=%d: %w", scheduleID, err)
	}
	return assigned, completed, nil
}

func replaceScheduleUsers(ctx context.Context, tx *sql.Tx, scheduleID int64, userIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tbl_schedule_assignments WHERE schedule_id = ?`, scheduleID); err != nil {
		return fmt.Errorf("delete schedule users: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tbl_schedule_assignments (schedule_id, user_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare schedule users: %w", err)
	}
	defer stmt.Close()

	for _, userID := range userIDs {
		if _, err := stmt.ExecContext(ctx, scheduleID, userID); err != nil {
			return fmt.Errorf("insert schedule user %d: %w", userID, err)
		}
	}
	return nil
}

func replaceScheduleEquipment(ctx context.Context, tx *sql.Tx, scheduleID int64, equipmentIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tbl_schedule_equipment WHERE schedule_id = ?`, scheduleID); err != nil {
		return fmt.Errorf("delete schedule equipment: %w", err)
	}
	if len(equipmentIDs) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tbl_schedule_equipment (schedule_id, equipment_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare schedule equipment: %w", err)
	}
	defer stmt.Close()

	for _, equipmentID := range equipmentIDs {
		if _, err := stmt.ExecContext(ctx, scheduleID, equipmentID); err != nil {
			return fmt.Errorf("insert schedule equipment %d: %w", equipmentID, err)
		}
	}
	return nil
}

func sortOrder(order string) string {
	if strings.EqualFold(order, "ASC") {
		return "ASC"
	}
	return "DESC"
}
