package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"bakery-production/internal/storage"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so the conflict queries below serve the
// advisory read path and the in-transaction re-check alike.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

const userBusyExpr = `EXISTS (
		SELECT 1 FROM tbl_schedule_assignments sa
		JOIN tbl_schedule s ON sa.schedule_id = s.schedule_id
		WHERE sa.user_id = u.user_id
		  AND s.schedule_date = ?
		  AND s.schedule_status <> ?
		  AND s.schedule_id <> ?
	)`

const equipmentBusyExpr = `EXISTS (
		SELECT 1 FROM tbl_schedule_equipment se
		JOIN tbl_schedule s ON se.schedule_id = s.schedule_id
		WHERE se.equipment_id = e.equipment_id
		  AND s.schedule_date = ?
		  AND s.schedule_status <> ?
		  AND s.schedule_id <> ?
	)`

func (s *Storage) UserAvailability(ctx context.Context, date string, excludeScheduleID int64) ([]storage.UserAvailability, error) {
	const op = "storage.mysql.UserAvailability"

	query := `SELECT u.user_id, u.user_fullName, u.user_role, ` + userBusyExpr + ` AS busy,
		(SELECT COUNT(DISTINCT sa2.schedule_id)
		   FROM tbl_schedule_assignments sa2
		   JOIN tbl_schedule s2 ON sa2.schedule_id = s2.schedule_id
		  WHERE sa2.user_id = u.user_id
		    AND s2.schedule_status <> ?
		    AND s2.schedule_id <> ?) AS assignment_count
		FROM tbl_users u
		WHERE u.user_role IN (?, ?)
		ORDER BY u.user_role, u.user_fullName`

	rows, err := s.db.QueryContext(ctx, query,
		date, storage.StatusCompleted, excludeScheduleID,
		storage.StatusCompleted, excludeScheduleID,
		storage.RoleBaker, storage.RoleSupervisor,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: date=%s: %w", op, date, err)
	}
	defer rows.Close()

	users := []storage.UserAvailability{}
	for rows.Next() {
		var (
			u    storage.UserAvailability
			busy bool
		)
		if err := rows.Scan(&u.UserID, &u.FullName, &u.Role, &busy, &u.AssignmentCount); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		u.Status = storage.Available
		if busy {
			u.Status = storage.Unavailable
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (s *Storage) EquipmentAvailability(ctx context.Context, date string, excludeScheduleID int64) ([]storage.EquipmentAvailability, error) {
	const op = "storage.mysql.EquipmentAvailability"

	query := `SELECT e.equipment_id, e.equipment_name, e.equipment_status, ` + equipmentBusyExpr + ` AS busy
		FROM tbl_equipments e
		ORDER BY e.equipment_name`

	rows, err := s.db.QueryContext(ctx, query, date, storage.StatusCompleted, excludeScheduleID)
	if err != nil {
		return nil, fmt.Errorf("%s: date=%s: %w", op, date, err)
	}
	defer rows.Close()

	equipment := []storage.EquipmentAvailability{}
	for rows.Next() {
		var (
			e      storage.EquipmentAvailability
			status storage.EquipmentStatus
			busy   bool
		)
		if err := rows.Scan(&e.EquipmentID, &e.Name, &status, &busy); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		e.Status = equipmentAvailability(status, busy)
		equipment = append(equipment, e)
	}

	return equipment, rows.Err()
}

// equipmentAvailability applies the resolver rule: a broken item is reported as such on
// every date, otherwise a conflicting active schedule makes it In Use.
func equipmentAvailability(status storage.EquipmentStatus, busy bool) string {
	switch {
	case status == storage.EquipmentOutOfOrder:
		return storage.OutOfOrder
	case busy:
		return storage.InUse
	default:
		return storage.Available
	}
}
