package apiclient

import "encoding/json"

// Envelope конверт ответа удаленного API
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Meta       *Meta           `json:"meta,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// Meta параметры пагинации
type Meta struct {
	Total          int `json:"total"`
	PageNumber     int `json:"pageNumber"`
	LimitDataCount int `json:"limitDataCount"`
	TotalPage      int `json:"totalPage"`
}

// errorPayload тело ошибки удаленного API
type errorPayload struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
	Success bool   `json:"success"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}
