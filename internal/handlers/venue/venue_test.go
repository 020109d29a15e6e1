package venue

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"venue-booking/internal/blob"
	"venue-booking/internal/contextutil"
	"venue-booking/internal/mocks"
	myErr "venue-booking/internal/types/errors"
	types "venue-booking/internal/types/venue"
	"venue-booking/internal/venue"
)

type fixture struct {
	handler *VenueHandler
	repo    *mocks.MockVenueRepo
	images  *mocks.MockImageStore
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockVenueRepo(ctrl)
	images := mocks.NewMockImageStore(ctrl)
	logger := zap.NewNop().Sugar()
	catalog := venue.NewCatalog(repo, images, nil, nil, logger)

	return fixture{
		handler: NewVenueHandler(logger, catalog, images),
		repo:    repo,
		images:  images,
	}
}

func serve(h http.HandlerFunc, method, pattern, target string, body *bytes.Buffer, contentType string, p *contextutil.Principal) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc(pattern, h).Methods(method)

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if p != nil {
		req = req.WithContext(contextutil.WithPrincipal(req.Context(), *p))
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

const venueID = "5e2b8c1a-9d3f-4a6e-b7c0-1f4d8e2a9b35"

var (
	member = &contextutil.Principal{UserID: "u-1", Role: contextutil.RoleUser}
	admin  = &contextutil.Principal{UserID: "u-2", Role: contextutil.RoleAdmin}
)

func TestVenueHandler_List(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().List(gomock.Any()).Return([]venue.Venue{{ID: "v-1"}, {ID: "v-2"}}, nil)
	f.repo.EXPECT().Ratings(gomock.Any(), []string{"v-1", "v-2"}).Return(map[string][]int{"v-1": {3, 4, 5}}, nil)

	rr := serve(f.handler.List, http.MethodGet, "/api/venues", "/api/venues", nil, "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var list []venue.Venue
	assert.Equal(t, nil, json.NewDecoder(rr.Body).Decode(&list))
	assert.Equal(t, 2, len(list))
	assert.Equal(t, 4.0, *list[0].AverageRating)
	assert.Equal(t, 3, list[0].FeedbackCount)
	assert.Equal(t, true, list[1].AverageRating == nil)
}

func TestVenueHandler_Hot(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().List(gomock.Any()).Return([]venue.Venue{{ID: "v-1"}, {ID: "v-2"}, {ID: "v-3"}}, nil)
	f.repo.EXPECT().Ratings(gomock.Any(), gomock.Any()).
		Return(map[string][]int{"v-1": {2}, "v-3": {5, 4}}, nil)

	rr := serve(f.handler.Hot, http.MethodGet, "/api/venues/hot", "/api/venues/hot?limit=2", nil, "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var list []venue.Venue
	assert.Equal(t, nil, json.NewDecoder(rr.Body).Decode(&list))
	assert.Equal(t, 2, len(list))
	assert.Equal(t, "v-3", list[0].ID)
	assert.Equal(t, "v-1", list[1].ID)

	rr = serve(f.handler.Hot, http.MethodGet, "/api/venues/hot", "/api/venues/hot?limit=abc", nil, "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVenueHandler_Search(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.handler.Search, http.MethodGet, "/api/venues/search", "/api/venues/search?q=", nil, "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// без индекса поиск идет в базу
	f.repo.EXPECT().Search(gomock.Any(), "hall").Return([]venue.Venue{{ID: "v-1", Name: "Grand Hall"}}, nil)
	f.repo.EXPECT().Ratings(gomock.Any(), []string{"v-1"}).Return(map[string][]int{}, nil)

	rr = serve(f.handler.Search, http.MethodGet, "/api/venues/search", "/api/venues/search?q=hall", nil, "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestVenueHandler_Get(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetByID(gomock.Any(), venueID).Return(nil, myErr.ErrNotFound)

	rr := serve(f.handler.Get, http.MethodGet, "/api/venues/{id}", "/api/venues/" + venueID, nil, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// до базы не доходит
	rr = serve(f.handler.Get, http.MethodGet, "/api/venues/{id}", "/api/venues/missing", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVenueHandler_Create(t *testing.T) {
	valid := types.CreateVenue{Name: "Grand Hall", Type: "hall", Capacity: 100, Location: "Riverside", ImageID: "venues/abc"}

	tests := []struct {
		name           string
		body           types.CreateVenue
		principal      *contextutil.Principal
		mockBehavior   func(f fixture)
		expectedStatus int
	}{
		{
			name:      "Success",
			body:      valid,
			principal: member,
			mockBehavior: func(f fixture) {
				f.images.EXPECT().URL("venues/abc").Return("https://img/abc.jpg", nil)
				f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ interface{}, v venue.Venue) (*venue.Venue, error) {
						v.ID = "v-9"
						return &v, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Zero Capacity",
			body:           types.CreateVenue{Name: "Hall", Type: "hall", Location: "Riverside"},
			principal:      member,
			mockBehavior:   func(f fixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "Unknown Image",
			body:      valid,
			principal: member,
			mockBehavior: func(f fixture) {
				f.images.EXPECT().URL("venues/abc").Return("", myErr.ErrUpload)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Anonymous",
			body:           valid,
			mockBehavior:   func(f fixture) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mockBehavior(f)

			body, _ := json.Marshal(tt.body) // nolint:errcheck
			rr := serve(f.handler.Create, http.MethodPost, "/api/venues", "/api/venues", bytes.NewBuffer(body), "application/json", tt.principal)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func multipartBody(t *testing.T, field string) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	part, err := mw.CreateFormFile(field, "hall.jpg")
	assert.Equal(t, nil, err)
	_, err = part.Write([]byte("fake-jpeg"))
	assert.Equal(t, nil, err)
	assert.Equal(t, nil, mw.Close())

	return buf, mw.FormDataContentType()
}

func TestVenueHandler_UploadImage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.images.EXPECT().Upload(gomock.Any(), "hall.jpg", gomock.Any()).
			Return(&blob.Image{ID: "venues/hall", URL: "https://img/hall.jpg"}, nil)

		body, ct := multipartBody(t, "image")
		rr := serve(f.handler.UploadImage, http.MethodPost, "/api/venues/images", "/api/venues/images", body, ct, member)
		assert.Equal(t, http.StatusCreated, rr.Code)

		var img blob.Image
		assert.Equal(t, nil, json.NewDecoder(rr.Body).Decode(&img))
		assert.Equal(t, "venues/hall", img.ID)
	})

	t.Run("Wrong Field", func(t *testing.T) {
		f := newFixture(t)

		body, ct := multipartBody(t, "photo")
		rr := serve(f.handler.UploadImage, http.MethodPost, "/api/venues/images", "/api/venues/images", body, ct, member)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Upload Failed", func(t *testing.T) {
		f := newFixture(t)
		f.images.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, myErr.ErrUpload)

		body, ct := multipartBody(t, "image")
		rr := serve(f.handler.UploadImage, http.MethodPost, "/api/venues/images", "/api/venues/images", body, ct, member)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("No Store", func(t *testing.T) {
		h := NewVenueHandler(zap.NewNop().Sugar(), nil, nil)

		body, ct := multipartBody(t, "image")
		rr := serve(h.UploadImage, http.MethodPost, "/api/venues/images", "/api/venues/images", body, ct, member)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestVenueHandler_Delete(t *testing.T) {
	t.Run("Admin", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Delete(gomock.Any(), venueID).Return("venues/abc", nil)
		f.images.EXPECT().Delete(gomock.Any(), "venues/abc").Return(nil)

		rr := serve(f.handler.Delete, http.MethodDelete, "/api/venues/{id}", "/api/venues/" + venueID, nil, "", admin)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Member", func(t *testing.T) {
		f := newFixture(t)

		rr := serve(f.handler.Delete, http.MethodDelete, "/api/venues/{id}", "/api/venues/" + venueID, nil, "", member)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Malformed ID", func(t *testing.T) {
		f := newFixture(t)

		rr := serve(f.handler.Delete, http.MethodDelete, "/api/venues/{id}", "/api/venues/v-1", nil, "", admin)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Missing", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Delete(gomock.Any(), venueID).Return("", myErr.ErrNotFound)

		rr := serve(f.handler.Delete, http.MethodDelete, "/api/venues/{id}", "/api/venues/" + venueID, nil, "", admin)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
