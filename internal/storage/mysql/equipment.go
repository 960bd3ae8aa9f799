package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

// SetEquipmentStatus is the operator override for the cached equipment status. In Use is
// derived from schedule links and cannot be set here.
func (s *Storage) SetEquipmentStatus(ctx context.Context, id int64, status storage.EquipmentStatus) error {
	const op = "storage.mysql.SetEquipmentStatus"

	if status != storage.EquipmentAvailable && status != storage.EquipmentOutOfOrder {
		return apperr.Validation("equipment status must be %s or %s", storage.EquipmentAvailable, storage.EquipmentOutOfOrder)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var current storage.EquipmentStatus
	err = tx.QueryRowContext(ctx, `SELECT equipment_status FROM tbl_equipments WHERE equipment_id = ?`+s.forUpdate(), id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("equipment %d not found", id)
		}
		return fmt.Errorf("%s: select equipment id=%d: %w", op, id, err)
	}

	if status == storage.EquipmentAvailable {
		var held int
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tbl_schedule_equipment se
			JOIN tbl_schedule s ON se.schedule_id = s.schedule_id
			WHERE se.equipment_id = ? AND s.schedule_status <> ?`, id, storage.StatusCompleted).Scan(&held)
		if err != nil {
			return fmt.Errorf("%s: count schedules: %w", op, err)
		}
		if held > 0 {
			status = storage.EquipmentInUse
			if current == storage.EquipmentInUse {
				return apperr.New(apperr.KindResourceConflict, "equipment %d is held by %d active schedules", id, held)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE tbl_equipments SET equipment_status = ? WHERE equipment_id = ?`, status, id); err != nil {
		return translate(op, fmt.Errorf("update equipment id=%d: %w", id, err))
	}

	return tx.Commit()
}
