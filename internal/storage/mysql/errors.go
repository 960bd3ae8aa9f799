package mysql

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"bakery-production/internal/apperr"
)

// MySQL server error numbers the service reacts to.
const (
	errLockWaitTimeout = 1205
	errDeadlock        = 1213
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
	errDuplicateEntry  = 1062
)

// translate turns driver errors with a client-meaningful cause into taxonomy errors and
// wraps everything else with op.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case errNoReferencedRow:
			return apperr.Wrap(apperr.KindValidation, err, "referenced record does not exist")
		case errRowIsReferenced:
			return apperr.Wrap(apperr.KindValidation, err, "record is still referenced by other records")
		case errDuplicateEntry:
			return apperr.Wrap(apperr.KindValidation, err, "duplicate entry")
		case errDeadlock, errLockWaitTimeout:
			return apperr.Wrap(apperr.KindResourceConflict, err, "another request is changing the same records, retry the request")
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
