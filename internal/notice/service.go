package notice

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"venue-booking/internal/contextutil"
	myErr "venue-booking/internal/types/errors"
	types "venue-booking/internal/types/notice"
	"venue-booking/internal/types/validation"
)

// Board - объявления: читать могут все, писать только админы
type Board struct {
	Repo   NoticeRepo
	Logger *zap.SugaredLogger
}

func NewBoard(repo NoticeRepo, logger *zap.SugaredLogger) *Board {
	return &Board{
		Repo:   repo,
		Logger: logger,
	}
}

func (b *Board) Latest(ctx context.Context, limit *int) ([]Notice, error) {
	return b.Repo.GetLatest(ctx, ClampLimit(limit))
}

func (b *Board) Post(ctx context.Context, p contextutil.Principal, form types.NoticeForm) (*Notice, error) {
	form, err := b.check(p, form)
	if err != nil {
		return nil, err
	}

	return b.Repo.Create(ctx, Notice{AuthorID: p.UserID, Title: form.Title, Message: form.Message})
}

func (b *Board) Edit(ctx context.Context, p contextutil.Principal, id string, form types.NoticeForm) (*Notice, error) {
	form, err := b.check(p, form)
	if err != nil {
		return nil, err
	}

	return b.Repo.Update(ctx, id, form.Title, form.Message)
}

func (b *Board) Remove(ctx context.Context, p contextutil.Principal, id string) error {
	if err := authorize(p); err != nil {
		return err
	}

	return b.Repo.Delete(ctx, id)
}

func (b *Board) check(p contextutil.Principal, form types.NoticeForm) (types.NoticeForm, error) {
	if err := authorize(p); err != nil {
		return form, err
	}

	form.Title = strings.TrimSpace(form.Title)
	form.Message = strings.TrimSpace(form.Message)

	return form, validation.Struct(form)
}

func authorize(p contextutil.Principal) error {
	if !p.Authenticated() {
		return myErr.ErrNoAuth
	}
	if !p.IsAdmin() {
		return myErr.ErrNotAuthorized
	}
	return nil
}
