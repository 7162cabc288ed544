package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

// Заголовки, которые читает веб-клиент
const (
	HeaderSessionLogout = "X-Session-Logout"
	HeaderAccessToken   = "X-Access-Token"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgUnauthorized  = "сессия истекла, выполните вход заново"
	msgServiceError  = "удаленный сервис вернул ошибку"
	maxBodyBytes     = 1 << 20
)

// Envelope формат ответа, совпадающий с удаленным API
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// RespondJSON успешный ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Envelope{
		StatusCode: status,
		Success:    status < http.StatusBadRequest,
		Data:       data,
	})
}

// RespondMessage успешный ответ с сообщением
func RespondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	write(w, status, Envelope{
		StatusCode: status,
		Success:    status < http.StatusBadRequest,
		Message:    message,
		Data:       data,
	})
}

// RespondError ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{
		StatusCode: status,
		Success:    false,
		Message:    message,
	})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondUnauthorized 401 с сигналом веб-клиенту завершить сессию
func RespondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set(HeaderSessionLogout, "true")
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondRemoteError отвечает на ошибки удаленного API
// Возвращает false, если err не относится к удаленному API
func RespondRemoteError(w http.ResponseWriter, err error) bool {
	if errors.Is(err, domain.ErrUnauthorized) {
		RespondUnauthorized(w, msgUnauthorized)
		return true
	}

	var svcErr *domain.ServiceError
	if errors.As(err, &svcErr) {
		message := svcErr.Message
		if message == "" {
			message = msgServiceError
		}
		RespondError(w, http.StatusBadGateway, message)
		return true
	}

	if errors.Is(err, domain.ErrServiceError) {
		RespondError(w, http.StatusBadGateway, msgServiceError)
		return true
	}

	return false
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
