package database

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{DBUser: "app", DBPass: "p@ss", DBHost: "db", DBPort: "3306", DBName: "cinema"})
	assert.True(t, strings.HasPrefix(dsn, "app:p@ss@tcp(db:3306)/cinema?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestStatements(t *testing.T) {
	got := statements("-- header\nCREATE TABLE a (\n  id INT\n);\n\nCREATE TABLE b (id INT);\n")
	require.Len(t, got, 2)
	assert.Equal(t, "CREATE TABLE a (\n  id INT\n)", got[0])
	assert.Equal(t, "CREATE TABLE b (id INT)", got[1])
}

func TestEmbeddedSchemaTables(t *testing.T) {
	stmts := statements(schema)
	require.Len(t, stmts, 6)
	for i, table := range []string{"users", "theaters", "movies", "screenings", "seats", "bookings"} {
		assert.Contains(t, stmts[i], "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS theaters")).WillReturnError(errors.New("access denied"))

	err = Migrate(context.Background(), db)
	assert.EqualError(t, err, "schema statement 2: access denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmbeddedSeed(t *testing.T) {
	stmts := statements(seedScript)
	require.Len(t, stmts, 4)
	assert.True(t, strings.HasPrefix(stmts[0], "INSERT INTO theaters"))
	assert.True(t, strings.HasPrefix(stmts[1], "INSERT INTO movies"))
	assert.True(t, strings.HasPrefix(stmts[2], "INSERT INTO screenings"))
	assert.True(t, strings.HasPrefix(stmts[3], "INSERT INTO seats"))
}

func TestSeed_EmptyCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM theaters")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO theaters").WillReturnResult(sqlmock.NewResult(1, 3))
	mock.ExpectExec("INSERT INTO movies").WillReturnResult(sqlmock.NewResult(1, 6))
	mock.ExpectExec("INSERT INTO screenings").WillReturnResult(sqlmock.NewResult(1, 18))
	mock.ExpectExec("INSERT INTO seats").WillReturnResult(sqlmock.NewResult(1, 900))
	mock.ExpectCommit()

	seeded, err := Seed(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_SkipsExistingCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM theaters")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	mock.ExpectRollback()

	seeded, err := Seed(context.Background(), db)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM theaters")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO theaters").WillReturnResult(sqlmock.NewResult(1, 3))
	mock.ExpectExec("INSERT INTO movies").WillReturnError(errors.New("data too long"))
	mock.ExpectRollback()

	_, err = Seed(context.Background(), db)
	assert.EqualError(t, err, "seed statement 2: data too long")
	assert.NoError(t, mock.ExpectationsWereMet())
}
