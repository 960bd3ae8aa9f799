package mysql

import (
	"context"
	"fmt"
	"strings"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

// checkStaff locks the requested user rows and verifies each user exists, holds one of the
// allowed roles and, when date is set, is not already booked on another active schedule that day.
func (s *Storage) checkStaff(ctx context.Context, q querier, ids []int64, roles []storage.Role, date string, excludeScheduleID int64) error {
	const op = "storage.mysql.checkStaff"

	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`SELECT user_id, user_fullName, user_role FROM tbl_users WHERE user_id IN (%s)%s`,
		placeholders(len(ids)), s.forUpdate())
	rows, err := q.QueryContext(ctx, query, toInterfaceSlice(ids)...)
	if err != nil {
		return fmt.Errorf("%s: select users: %w", op, err)
	}

	type staff struct {
		name string
		role storage.Role
	}
	found := make(map[int64]staff, len(ids))
	for rows.Next() {
		var (
			id int64
			st staff
		)
		if err := rows.Scan(&id, &st.name, &st.role); err != nil {
			rows.Close()
			return fmt.Errorf("%s: scan: %w", op, err)
		}
		found[id] = st
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: rows: %w", op, err)
	}

	for _, id := range ids {
		st, ok := found[id]
		if !ok {
			return apperr.Validation("user %d does not exist", id)
		}
		if !hasRole(st.role, roles) {
			return apperr.Validation("user %s must have role %s", st.name, joinRoles(roles))
		}
	}

	if date == "" {
		return nil
	}

	query = fmt.Sprintf(`SELECT DISTINCT u.user_fullName
		FROM tbl_schedule_assignments sa
		JOIN tbl_schedule s ON sa.schedule_id = s.schedule_id
		JOIN tbl_users u ON u.user_id = sa.user_id
		WHERE sa.user_id IN (%s)
		  AND s.schedule_date = ?
		  AND s.schedule_status <> ?
		  AND s.schedule_id <> ?
		ORDER BY u.user_fullName`, placeholders(len(ids)))
	args := append(toInterfaceSlice(ids), date, storage.StatusCompleted, excludeScheduleID)

	busy, err := scanStrings(ctx, q, query, args...)
	if err != nil {
		return fmt.Errorf("%s: select conflicts: %w", op, err)
	}
	if len(busy) > 0 {
		return apperr.New(apperr.KindResourceConflict, "already scheduled on %s: %s", date, strings.Join(busy, ", "))
	}

	return nil
}

// checkEquipment locks the requested equipment rows and rejects missing, broken or
// double-booked items. Broken items already linked to excludeScheduleID are accepted.
func (s *Storage) checkEquipment(ctx context.Context, q querier, ids []int64, date string, excludeScheduleID int64) error {
	const op = "storage.mysql.checkEquipment"

	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`SELECT equipment_id, equipment_name, equipment_status FROM tbl_equipments WHERE equipment_id IN (%s)%s`,
		placeholders(len(ids)), s.forUpdate())
	rows, err := q.QueryContext(ctx, query, toInterfaceSlice(ids)...)
	if err != nil {
		return fmt.Errorf("%s: select equipment: %w", op, err)
	}

	type item struct {
		name   string
		status storage.EquipmentStatus
	}
	found := make(map[int64]item, len(ids))
	for rows.Next() {
		var (
			id int64
			it item
		)
		if err := rows.Scan(&id, &it.name, &it.status); err != nil {
			rows.Close()
			return fmt.Errorf("%s: scan: %w", op, err)
		}
		found[id] = it
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: rows: %w", op, err)
	}

	// Broken items already on the schedule being edited stay accepted for it.
	linked := map[int64]bool{}
	if excludeScheduleID > 0 {
		held, err := scanIDs(ctx, q, `SELECT equipment_id FROM tbl_schedule_equipment WHERE schedule_id = ?`, excludeScheduleID)
		if err != nil {
			return fmt.Errorf("%s: select linked equipment: %w", op, err)
		}
		for _, id := range held {
			linked[id] = true
		}
	}

	for _, id := range ids {
		it, ok := found[id]
		if !ok {
			return apperr.Validation("equipment %d does not exist", id)
		}
		if it.status == storage.EquipmentOutOfOrder && !linked[id] {
			return apperr.New(apperr.KindResourceConflict, "equipment %s is out of order", it.name)
		}
	}

	query = fmt.Sprintf(`SELECT DISTINCT e.equipment_name
		FROM tbl_schedule_equipment se
		JOIN tbl_schedule s ON se.schedule_id = s.schedule_id
		JOIN tbl_equipments e ON e.equipment_id = se.equipment_id
		WHERE se.equipment_id IN (%s)
		  AND s.schedule_date = ?
		  AND s.schedule_status <> ?
		  AND s.schedule_id <> ?
		ORDER BY e.equipment_name`, placeholders(len(ids)))
	args := append(toInterfaceSlice(ids), date, storage.StatusCompleted, excludeScheduleID)

	busy, err := scanStrings(ctx, q, query, args...)
	if err != nil {
		return fmt.Errorf("%s: select conflicts: %w", op, err)
	}
	if len(busy) > 0 {
		return apperr.New(apperr.KindResourceConflict, "equipment already in use on %s: %s", date, strings.Join(busy, ", "))
	}

	return nil
}

// markEquipmentInUse flags the given items as In Use. Broken items keep their status.
func markEquipmentInUse(ctx context.Context, q querier, ids []int64) error {
	const op = "storage.mysql.markEquipmentInUse"

	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE tbl_equipments SET equipment_status = ?
		WHERE equipment_id IN (%s) AND equipment_status <> ?`, placeholders(len(ids)))
	args := append([]interface{}{storage.EquipmentInUse}, toInterfaceSlice(ids)...)
	args = append(args, storage.EquipmentOutOfOrder)

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// releaseEquipment returns In Use items to Available unless another active schedule still
// holds them.
func releaseEquipment(ctx context.Context, q querier, ids []int64, scheduleID int64) error {
	const op = "storage.mysql.releaseEquipment"

	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE tbl_equipments SET equipment_status = ?
		WHERE equipment_id IN (%s)
		  AND equipment_status = ?
		  AND NOT EXISTS (
			SELECT 1 FROM tbl_schedule_equipment se
			JOIN tbl_schedule s ON se.schedule_id = s.schedule_id
			WHERE se.equipment_id = tbl_equipments.equipment_id
			  AND s.schedule_status <> ?
			  AND s.schedule_id <> ?
		  )`, placeholders(len(ids)))
	args := append([]interface{}{storage.EquipmentAvailable}, toInterfaceSlice(ids)...)
	args = append(args, storage.EquipmentInUse, storage.StatusCompleted, scheduleID)

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func scanStrings(ctx context.Context, q querier, query string, args ...interface{}) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanIDs(ctx context.Context, q querier, query string, args ...interface{}) ([]int64, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func hasRole(role storage.Role, allowed []storage.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func joinRoles(roles []storage.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}

// difference returns the ids in a that are not in b.
func difference(a, b []int64) []int64 {
	keep := make(map[int64]struct{}, len(b))
	for _, id := range b {
		keep[id] = struct{}{}
	}
	var out []int64
	for _, id := range a {
		if _, ok := keep[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
