package etl_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"venue-booking/internal/etl"
	"venue-booking/internal/types/elastic"
	"venue-booking/internal/venue"
)

const (
	extractQuery = `SELECT id, venue_name, type, location, description FROM venues WHERE searching = FALSE`
	markQuery    = `UPDATE venues SET searching = TRUE WHERE id = ANY($1)`
)

var venueColumns = []string{"id", "venue_name", "type", "location", "description"}

type fakeIndexer struct {
	docs []elastic.VenueDoc
	err  error
}

func (f *fakeIndexer) BulkIndex(_ context.Context, docs []elastic.VenueDoc) error {
	f.docs = append(f.docs, docs...)
	return f.err
}

func TestPostgresExtractor_ExtractNew(t *testing.T) {
	logger := zap.NewNop().Sugar()

	tests := []struct {
		name          string
		mockQuery     func(mock sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success with two rows",
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(venueColumns).
					AddRow("v-1", "Grand Hall", "hall", "Riverside", "Wedding hall").
					AddRow("v-2", "Studio 5", "studio", "Old town", "")
				mock.ExpectQuery(regexp.QuoteMeta(extractQuery)).WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "query error",
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(extractQuery)).WillReturnError(errors.New("query failed"))
			},
			expectedError: true,
		},
		{
			name: "rows iteration error",
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(venueColumns).
					AddRow("v-1", "Grand Hall", "hall", "Riverside", "").
					RowError(0, errors.New("broken row"))
				mock.ExpectQuery(regexp.QuoteMeta(extractQuery)).WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mockQuery(mock)

			results, err := etl.NewPostgresExtractor(db, logger).ExtractNew(context.Background())
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, results, tt.expectedCount)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresExtractor_ResetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE venues SET searching = FALSE`)).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := etl.NewPostgresExtractor(db, zap.NewNop().Sugar()).ResetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestTransformer_Transform(t *testing.T) {
	tests := []struct {
		name   string
		input  []venue.Venue
		expect []elastic.VenueDoc
	}{
		{
			name:   "empty input",
			input:  []venue.Venue{},
			expect: []elastic.VenueDoc{},
		},
		{
			name: "keeps searchable fields only",
			input: []venue.Venue{
				{ID: "v-1", Name: "Grand Hall", Type: "hall", Capacity: 300, Location: "Riverside", Description: "Wedding hall", ImageURL: "http://img"},
			},
			expect: []elastic.VenueDoc{
				{ID: "v-1", Name: "Grand Hall", Type: "hall", Location: "Riverside", Description: "Wedding hall"},
			},
		},
	}

	transformer := etl.NewTransformer(zap.NewNop().Sugar())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, transformer.Transform(tt.input))
		})
	}
}

func TestElasticLoader_Load(t *testing.T) {
	docs := []elastic.VenueDoc{{ID: "v-1"}, {ID: "v-2"}}

	t.Run("marks indexed venues", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(markQuery)).
			WithArgs(pq.Array([]string{"v-1", "v-2"})).
			WillReturnResult(sqlmock.NewResult(0, 2))

		idx := &fakeIndexer{}
		require.NoError(t, etl.NewElasticLoader(idx, zap.NewNop().Sugar(), db).Load(context.Background(), docs))
		assert.Len(t, idx.docs, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("index failure leaves flags untouched", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		idx := &fakeIndexer{err: errors.New("es down")}
		assert.Error(t, etl.NewElasticLoader(idx, zap.NewNop().Sugar(), db).Load(context.Background(), docs))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing to load", func(t *testing.T) {
		idx := &fakeIndexer{}
		require.NoError(t, etl.NewElasticLoader(idx, zap.NewNop().Sugar(), nil).Load(context.Background(), nil))
		assert.Empty(t, idx.docs)
	})
}

func TestPipeline_RunOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	logger := zap.NewNop().Sugar()
	idx := &fakeIndexer{}
	p := etl.NewPipeline(
		etl.NewPostgresExtractor(db, logger),
		etl.NewTransformer(logger),
		etl.NewElasticLoader(idx, logger, db),
		logger,
		0,
	)

	mock.ExpectQuery(regexp.QuoteMeta(extractQuery)).
		WillReturnRows(sqlmock.NewRows(venueColumns).AddRow("v-9", "Loft", "loft", "Center", ""))
	mock.ExpectExec(regexp.QuoteMeta(markQuery)).
		WithArgs(pq.Array([]string{"v-9"})).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Loft", idx.docs[0].Name)

	mock.ExpectQuery(regexp.QuoteMeta(extractQuery)).WillReturnRows(sqlmock.NewRows(venueColumns))

	n, err = p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
