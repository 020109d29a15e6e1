package feedback

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"venue-booking/internal/contextutil"
	types "venue-booking/internal/types/feedback"
	myErr "venue-booking/internal/types/errors"
	"venue-booking/internal/types/validation"
)

type Service struct {
	Repo   FeedbackRepo
	Logger *zap.SugaredLogger
}

func NewService(repo FeedbackRepo, logger *zap.SugaredLogger) *Service {
	return &Service{
		Repo:   repo,
		Logger: logger,
	}
}

func validate(rating int, comment string) error {
	if rating < MinRating || rating > MaxRating {
		return myErr.ErrRatingIsInvalid
	}
	if len([]rune(comment)) > MaxCommentLength {
		return myErr.ErrCommentIsTooLong
	}
	return nil
}

// Submit - новый отзыв от принципала, один на площадку
func (s *Service) Submit(ctx context.Context, p contextutil.Principal, form types.CreateFeedback) (*Feedback, error) {
	if !p.Authenticated() {
		return nil, myErr.ErrNoAuth
	}
	if err := validation.Struct(form); err != nil {
		return nil, err
	}

	comment := strings.TrimSpace(form.Comment)
	if err := validate(form.Rating, comment); err != nil {
		return nil, err
	}

	return s.Repo.Create(ctx, Feedback{
		VenueID: form.VenueID,
		UserID:  p.UserID,
		Rating:  form.Rating,
		Comment: comment,
	})
}

// Update - менять отзыв может только автор
func (s *Service) Update(ctx context.Context, p contextutil.Principal, id string, form types.UpdateFeedback) (*Feedback, error) {
	if !p.Authenticated() {
		return nil, myErr.ErrNoAuth
	}

	comment := strings.TrimSpace(form.Comment)
	if err := validate(form.Rating, comment); err != nil {
		return nil, err
	}

	if err := s.checkOwner(ctx, p, id); err != nil {
		return nil, err
	}

	return s.Repo.Update(ctx, id, form.Rating, comment)
}

// Delete - удалять отзыв может только автор
func (s *Service) Delete(ctx context.Context, p contextutil.Principal, id string) error {
	if !p.Authenticated() {
		return myErr.ErrNoAuth
	}

	if err := s.checkOwner(ctx, p, id); err != nil {
		return err
	}

	return s.Repo.Delete(ctx, id)
}

// ForVenue - последние отзывы площадки, limit по умолчанию 5
func (s *Service) ForVenue(ctx context.Context, venueID string, limit int) ([]Feedback, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	return s.Repo.GetByVenueID(ctx, venueID, limit)
}

// ForUser - отзывы принципала
func (s *Service) ForUser(ctx context.Context, p contextutil.Principal) ([]Feedback, error) {
	if !p.Authenticated() {
		return nil, myErr.ErrNoAuth
	}

	return s.Repo.GetByUserID(ctx, p.UserID)
}

func (s *Service) checkOwner(ctx context.Context, p contextutil.Principal, id string) error {
	f, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f.UserID != p.UserID {
		return myErr.ErrNotAuthorized
	}
	return nil
}
