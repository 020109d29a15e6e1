package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrDBInternal    = errors.New("database internal error")
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")

	ErrValidation    = errors.New("validation error")
	ErrSlotConflict  = errors.New("venue is already booked for this time")
	ErrNotAuthorized = errors.New("not authorized")

	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionIsExpired = errors.New("session is expired")
	ErrNoAuth           = errors.New("authorization required")

	ErrBadPassword = errors.New("bad password")
	ErrBadID       = errors.New("bad id")

	ErrRatingIsInvalid  = errors.New("rating must be between 1 and 5")
	ErrCommentIsTooLong = errors.New("comment must be less than 1000 characters")

	ErrInvalidJSONPayload = errors.New("invalid JSON payload")

	ErrIndexing = errors.New("indexing error")
	ErrSearch   = errors.New("search error")
	ErrUpload   = errors.New("image upload error")
)

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

// StatusCode - переводит доменную ошибку в HTTP статус
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidJSONPayload),
		errors.Is(err, ErrRatingIsInvalid),
		errors.Is(err, ErrCommentIsTooLong):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoAuth),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrSessionIsExpired),
		errors.Is(err, ErrBadPassword):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrBadID):
		return http.StatusNotFound
	case errors.Is(err, ErrSlotConflict), errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}

// SendError - то же самое, что SendErrorTo, но статус выводится из ошибки
func SendError(w http.ResponseWriter, err error, logger *zap.SugaredLogger) {
	SendErrorTo(w, err, StatusCode(err), logger)
}
