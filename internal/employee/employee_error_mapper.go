package employee

import (
	"errors"

	employeeerrors "go-empedge/internal/employee/errors"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	mysqlErrDataTooLong   = 1406
	pgErrStringTruncation = "22001"
)

// mapRepositoryError translates driver errors the client can act on. Anything
// else is returned untouched and surfaces as a 500 with its own message.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlErrDataTooLong {
		return employeeerrors.ErrFieldTooLong
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrStringTruncation {
		return employeeerrors.ErrFieldTooLong
	}

	return err
}
