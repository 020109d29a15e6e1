package venue

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	myErr "venue-booking/internal/types/errors"
)

var columns = []string{"id", "venue_name", "type", "capacity", "location", "description", "image_id", "image_url", "created_by", "created_at"}

func newRepo(t *testing.T) (*VenueDBRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewVenueDBRepository(db, zaptest.NewLogger(t).Sugar()), mock
}

func row(rows *sqlmock.Rows, id, name string) *sqlmock.Rows {
	return rows.AddRow(id, name, "hall", 50, "Riverside", "", "", "", "u-1", time.Now())
}

func TestVenueDBRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO venues`).
		WithArgs("Grand Hall", "hall", 50, "Riverside", "", "img", "https://img", "u-1").
		WillReturnRows(row(sqlmock.NewRows(columns), "v-1", "Grand Hall"))

	v, err := repo.Create(context.Background(), Venue{
		Name: "Grand Hall", Type: "hall", Capacity: 50, Location: "Riverside",
		ImageID: "img", ImageURL: "https://img", CreatedBy: "u-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "v-1", v.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueDBRepository_GetByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM venues WHERE id = \$1`).WithArgs("v-x").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "v-x")
	assert.ErrorIs(t, err, myErr.ErrNotFound)
}

func TestVenueDBRepository_GetByIDs_KeepsOrder(t *testing.T) {
	repo, mock := newRepo(t)

	ids := []string{"v-3", "v-1", "v-gone"}
	rows := sqlmock.NewRows(columns)
	row(rows, "v-1", "A")
	row(rows, "v-3", "C")
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = ANY($1)`)).
		WithArgs(pq.Array(ids)).
		WillReturnRows(rows)

	list, err := repo.GetByIDs(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "v-3", list[0].ID)
	assert.Equal(t, "v-1", list[1].ID)

	empty, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestVenueDBRepository_Search_EscapesPattern(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`LOWER\(venue_name\) LIKE \$1`).
		WithArgs(`%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows(columns))

	list, err := repo.Search(context.Background(), " 50%_OFF ")
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueDBRepository_Ratings(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT venue_id, rating FROM feedback`).
		WillReturnRows(sqlmock.NewRows([]string{"venue_id", "rating"}).
			AddRow("v-1", 5).
			AddRow("v-1", 3).
			AddRow("v-2", 4))

	ratings, err := repo.Ratings(context.Background(), []string{"v-1", "v-2", "v-3"})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3}, ratings["v-1"])
	assert.Equal(t, []int{4}, ratings["v-2"])
	assert.Empty(t, ratings["v-3"])
}

func TestVenueDBRepository_Delete(t *testing.T) {
	t.Run("cascade in one transaction", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT image_id FROM venues WHERE id = $1 FOR UPDATE`)).
			WithArgs("v-1").
			WillReturnRows(sqlmock.NewRows([]string{"image_id"}).AddRow("venues/abc"))
		mock.ExpectExec(`DELETE FROM bookings WHERE venue_id = \$1`).WithArgs("v-1").WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM feedback WHERE venue_id = \$1`).WithArgs("v-1").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM venues WHERE id = \$1`).WithArgs("v-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		imageID, err := repo.Delete(context.Background(), "v-1")
		require.NoError(t, err)
		assert.Equal(t, "venues/abc", imageID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing venue", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).WithArgs("v-1").WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.Delete(context.Background(), "v-1")
		require.ErrorIs(t, err, myErr.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure rolls back", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).WithArgs("v-1").
			WillReturnRows(sqlmock.NewRows([]string{"image_id"}).AddRow(""))
		mock.ExpectExec(`DELETE FROM bookings`).WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		_, err := repo.Delete(context.Background(), "v-1")
		require.ErrorIs(t, err, myErr.ErrDBInternal)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
