package blob

import (
	"context"
	"io"
)

// Image - загруженное изображение площадки
type Image struct {
	ID  string `json:"image_id"`
	URL string `json:"image_url"`
}

//go:generate mockgen -source=blob.go -destination=../mocks/mock_image_store.go -package=mocks
type ImageStore interface {
	// Upload - загружает изображение, возвращает его id и публичный URL
	Upload(ctx context.Context, name string, r io.Reader) (*Image, error)
	// URL - публичный URL по id
	URL(id string) (string, error)
	// Delete - освобождает изображение, повторное удаление не ошибка
	Delete(ctx context.Context, id string) error
}
