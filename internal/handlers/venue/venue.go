package venue

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"venue-booking/internal/blob"
	"venue-booking/internal/contextutil"
	"venue-booking/internal/handlers"
	myErr "venue-booking/internal/types/errors"
	types "venue-booking/internal/types/venue"
	"venue-booking/internal/venue"
)

const maxImageSize = 10 << 20

type VenueHandler struct {
	Logger  *zap.SugaredLogger
	Catalog *venue.Catalog
	Images  blob.ImageStore
}

func NewVenueHandler(l *zap.SugaredLogger, catalog *venue.Catalog, images blob.ImageStore) *VenueHandler {
	return &VenueHandler{
		Logger:  l,
		Catalog: catalog,
		Images:  images,
	}
}

func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Catalog.List(r.Context())
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, list, h.Logger)
}

// Hot - GET /api/venues/hot?limit=
func (h *VenueHandler) Hot(w http.ResponseWriter, r *http.Request) {
	limit, err := handlers.QueryInt(r, "limit", venue.DefaultHotLimit)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	list, err := h.Catalog.Hot(r.Context(), limit)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, list, h.Logger)
}

// Search - GET /api/venues/search?q=
func (h *VenueHandler) Search(w http.ResponseWriter, r *http.Request) {
	list, err := h.Catalog.Find(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, list, h.Logger)
}

func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	v, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, v, h.Logger)
}

func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())

	var form types.CreateVenue
	if err := handlers.DecodeJSON(r, &form); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	v, err := h.Catalog.Create(r.Context(), p, form)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.Logger.Infof("venue %s created by %s", v.ID, p.UserID)
	handlers.SendJSON(w, http.StatusCreated, v, h.Logger)
}

// UploadImage - multipart поле image, в ответ id и URL для CreateVenue
func (h *VenueHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.Images == nil {
		myErr.SendErrorTo(w, myErr.ErrUpload, http.StatusServiceUnavailable, h.Logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		myErr.SendErrorTo(w, errors.New("image is missing or too large"), http.StatusBadRequest, h.Logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		myErr.SendErrorTo(w, errors.New("image is missing or too large"), http.StatusBadRequest, h.Logger)
		return
	}
	defer file.Close()

	img, err := h.Images.Upload(r.Context(), header.Filename, file)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusCreated, img, h.Logger)
}

func (h *VenueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())
	id, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	if err = h.Catalog.Delete(r.Context(), p, id); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.Logger.Infof("venue %s deleted by %s", id, p.UserID)
	handlers.SendOK(w, h.Logger)
}
