package venue

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"venue-booking/internal/blob"
	"venue-booking/internal/contextutil"
	"venue-booking/internal/kafka"
	esDoc "venue-booking/internal/types/elastic"
	myErr "venue-booking/internal/types/errors"
	"venue-booking/internal/types/validation"
	types "venue-booking/internal/types/venue"
)

const (
	DefaultHotLimit = 6
	maxHotLimit     = 50
)

// Searcher - полнотекстовый индекс площадок
type Searcher interface {
	SearchVenues(ctx context.Context, query string) ([]esDoc.VenueDoc, error)
	DeleteVenue(ctx context.Context, id string) error
}

// Catalog - операции над площадками поверх VenueRepo
type Catalog struct {
	Repo     VenueRepo
	Images   blob.ImageStore
	Search   Searcher
	Producer kafka.EventProducer
	Logger   *zap.SugaredLogger
}

func NewCatalog(
	repo VenueRepo,
	images blob.ImageStore,
	search Searcher,
	producer kafka.EventProducer,
	logger *zap.SugaredLogger,
) *Catalog {
	return &Catalog{
		Repo:     repo,
		Images:   images,
		Search:   search,
		Producer: producer,
		Logger:   logger,
	}
}

// Create - создает площадку от имени аутентифицированного пользователя
func (c *Catalog) Create(ctx context.Context, p contextutil.Principal, form types.CreateVenue) (*Venue, error) {
	if !p.Authenticated() {
		return nil, myErr.ErrNoAuth
	}
	if err := validation.Struct(form); err != nil {
		return nil, err
	}

	v := Venue{
		Name:        strings.TrimSpace(form.Name),
		Type:        strings.TrimSpace(form.Type),
		Capacity:    form.Capacity,
		Location:    strings.TrimSpace(form.Location),
		Description: strings.TrimSpace(form.Description),
		ImageID:     form.ImageID,
		CreatedBy:   p.UserID,
	}

	if v.ImageID != "" && c.Images != nil {
		url, err := c.Images.URL(v.ImageID)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown image %s", myErr.ErrValidation, v.ImageID)
		}
		v.ImageURL = url
	}

	return c.Repo.Create(ctx, v)
}

func (c *Catalog) Get(ctx context.Context, id string) (*Venue, error) {
	v, err := c.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	list, err := c.withRatings(ctx, []Venue{*v})
	if err != nil {
		return nil, err
	}

	return &list[0], nil
}

func (c *Catalog) List(ctx context.Context) ([]Venue, error) {
	list, err := c.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return c.withRatings(ctx, list)
}

// Hot - площадки с лучшим средним рейтингом, без оценок в конце
func (c *Catalog) Hot(ctx context.Context, limit int) ([]Venue, error) {
	if limit <= 0 {
		limit = DefaultHotLimit
	}
	if limit > maxHotLimit {
		limit = maxHotLimit
	}

	list, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		return rank(list[i]) > rank(list[j])
	})

	if len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

func rank(v Venue) float64 {
	if v.AverageRating == nil {
		return -1
	}
	return *v.AverageRating
}

// Find - поиск через индекс, при его недоступности через базу
func (c *Catalog) Find(ctx context.Context, query string) ([]Venue, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: missing query parameter", myErr.ErrValidation)
	}

	var (
		list []Venue
		err  error
	)
	if c.Search != nil {
		list, err = c.findIndexed(ctx, query)
		if err != nil {
			c.Logger.Warnf("search index unavailable, falling back to database: %v", err)
		}
	}
	if c.Search == nil || err != nil {
		list, err = c.Repo.Search(ctx, query)
		if err != nil {
			return nil, err
		}
	}

	return c.withRatings(ctx, list)
}

func (c *Catalog) findIndexed(ctx context.Context, query string) ([]Venue, error) {
	docs, err := c.Search.SearchVenues(ctx, query)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}

	return c.Repo.GetByIDs(ctx, ids)
}

// Delete - только для админа. Брони и отзывы удаляются вместе с площадкой,
// затем освобождаются изображение и документ индекса.
func (c *Catalog) Delete(ctx context.Context, p contextutil.Principal, id string) error {
	if !p.Authenticated() {
		return myErr.ErrNoAuth
	}
	if !p.IsAdmin() {
		return myErr.ErrNotAuthorized
	}

	imageID, err := c.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if imageID != "" && c.Images != nil {
		if err := c.Images.Delete(ctx, imageID); err != nil {
			c.Logger.Warnf("failed to release image %s of venue %s: %v", imageID, id, err)
		}
	}

	if c.Search != nil {
		if err := c.Search.DeleteVenue(ctx, id); err != nil {
			c.Logger.Warnf("failed to remove venue %s from search index: %v", id, err)
		}
	}

	if c.Producer != nil {
		evt := kafka.Event{Type: kafka.EventTypeVenueDeleted, VenueID: id, Timestamp: time.Now().UTC()}
		if err := c.Producer.SendEvent(ctx, evt); err != nil {
			c.Logger.Warnf("failed to publish venue_deleted for %s: %v", id, err)
		}
	}

	return nil
}

func (c *Catalog) withRatings(ctx context.Context, list []Venue) ([]Venue, error) {
	ids := make([]string, 0, len(list))
	for _, v := range list {
		ids = append(ids, v.ID)
	}

	ratings, err := c.Repo.Ratings(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range list {
		r := ratings[list[i].ID]
		list[i].AverageRating = AverageRating(r)
		list[i].FeedbackCount = len(r)
	}

	return list, nil
}
