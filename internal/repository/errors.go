// Package repository defines the MySQL data access layer and the error
// values shared across repositories. These sentinel values allow higher
// layers such as the booking engine and handlers to distinguish between
// failure scenarios without inspecting driver errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate is returned when an insert violates a unique key, e.g. a
// second booking row for the same seat or a repeated seat number within a
// screening.
var ErrDuplicate = errors.New("duplicate entry")

// ErrBadReference is returned when an insert points at a parent row that
// does not exist (unknown movie, theater or screening).
var ErrBadReference = errors.New("referenced row does not exist")

// ErrInUse is returned when a row cannot be deleted because other rows
// still reference it, e.g. a theater that has screenings.
var ErrInUse = errors.New("row is still referenced")

// ErrNotFound is returned by catalog updates and deletes that match no row.
var ErrNotFound = errors.New("not found")

// MySQL server error numbers we translate.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// translate maps driver errors onto repository sentinels and returns all
// other errors unchanged.
func translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return ErrDuplicate
		case mysqlNoReferencedRow:
			return ErrBadReference
		case mysqlRowIsReferenced:
			return ErrInUse
		}
	}
	return err
}

// inClause returns "?,?,?" for n placeholders.
func inClause(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// deleteByID removes one row from table and maps "no row" to ErrNotFound.
func deleteByID(ctx context.Context, db *sql.DB, table string, id uint64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func uint64Args(ids []uint64) []interface{} {
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
