package migrate

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	createTable   = `CREATE TABLE IF NOT EXISTS schema_migrations`
	checkApplied  = `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`
	recordApplied = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

func TestUp(t *testing.T) {
	src := fstest.MapFS{
		"002_more.sql": {Data: []byte(`ALTER TABLE t ADD COLUMN b INT`)},
		"001_init.sql": {Data: []byte(`CREATE TABLE t (a INT)`)},
		"README.md":    {Data: []byte(`not a migration`)},
	}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(createTable)).WillReturnResult(sqlmock.NewResult(0, 0))

	// 001 уже применена
	mock.ExpectQuery(regexp.QuoteMeta(checkApplied)).WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(regexp.QuoteMeta(checkApplied)).WithArgs("002_more.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`ALTER TABLE t ADD COLUMN b INT`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(recordApplied)).WithArgs("002_more.sql").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := up(context.Background(), db, src, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUp_FailedMigrationRollsBack(t *testing.T) {
	src := fstest.MapFS{
		"001_init.sql": {Data: []byte(`CREATE TABLE t (a INT)`)},
	}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(createTable)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(checkApplied)).WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE t`)).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	n, err := up(context.Background(), db, src, zaptest.NewLogger(t).Sugar())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply 001_init.sql")
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmbeddedSchema(t *testing.T) {
	body, err := files.ReadFile("001_init.sql")
	require.NoError(t, err)

	for _, table := range []string{"users", "venues", "bookings", "feedback", "notices", "venue_demand"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, string(body), "UNIQUE (user_id, venue_id)")
	assert.Contains(t, string(body), "CHECK (hours BETWEEN 1 AND 12)")
}
