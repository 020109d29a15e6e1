package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	myErr "venue-booking/internal/types/errors"
)

// SendJSON пишет v с заданным статусом
func SendJSON(w http.ResponseWriter, status int, v interface{}, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

// SendOK - {"message":"success"}
func SendOK(w http.ResponseWriter, logger *zap.SugaredLogger) {
	SendJSON(w, http.StatusOK, myErr.NewErrorServer(nil), logger)
}

// DecodeJSON читает тело запроса в dst, ошибка приводится к ErrInvalidJSONPayload
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", myErr.ErrInvalidJSONPayload, err)
	}
	return nil
}

// QueryInt - целый query параметр, def если он не задан
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", myErr.ErrValidation, name)
	}
	return v, nil
}

// CheckID - для id, который не uuid, записи заведомо нет
func CheckID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", myErr.ErrBadID, id)
	}
	return nil
}

// PathID - uuid из пути запроса
func PathID(r *http.Request, name string) (string, error) {
	id := mux.Vars(r)[name]
	if err := CheckID(id); err != nil {
		return "", err
	}
	return id, nil
}
