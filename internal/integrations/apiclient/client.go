package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-RentalBookingService/internal/auth"
	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
)

const (
	// DefaultRefreshPath endpoint обновления access token
	DefaultRefreshPath = "/auth/refreshToken"

	// RefreshTokenCookie cookie с refresh token
	RefreshTokenCookie = "refreshToken"
)

// Client общий REST клиент удаленного API аренды
// Подставляет access token из контекста и один раз обновляет его после 401
type Client struct {
	baseURL     string
	refreshPath string
	httpClient  *http.Client
	metrics     Metrics
	log         Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		refreshPath: DefaultRefreshPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithRefreshPath переопределяет endpoint обновления токена
func (c *Client) WithRefreshPath(path string) *Client {
	if path != "" {
		c.refreshPath = path
	}
	return c
}

// WithMetrics включает сбор метрик
func (c *Client) WithMetrics(m Metrics) *Client {
	c.metrics = m
	return c
}

// Do выполняет запрос и декодирует поле data конверта в out (если out != nil)
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (*Meta, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request body: %v", ErrInternal, err)
		}
	}

	creds, _ := auth.FromContext(ctx)
	endpoint := endpointLabel(method, path)

	status, respBody, err := c.send(ctx, method, path, query, payload, creds)
	if err != nil {
		c.observe(endpoint, "error")
		return nil, err
	}

	if status == http.StatusUnauthorized {
		c.log.Warn("RentalAPI: %s returned 401, refreshing access token", endpoint)
		if err := c.refresh(ctx, creds); err != nil {
			c.observe(endpoint, "unauthorized")
			return nil, err
		}

		status, respBody, err = c.send(ctx, method, path, query, payload, creds)
		if err != nil {
			c.observe(endpoint, "error")
			return nil, err
		}
		if status == http.StatusUnauthorized {
			c.log.Warn("RentalAPI: %s returned 401 after token refresh", endpoint)
			c.observe(endpoint, "unauthorized")
			return nil, fmt.Errorf("%w: %s rejected refreshed token", domain.ErrUnauthorized, endpoint)
		}
	}

	meta, err := decode(status, respBody, out)
	if err != nil {
		var svcErr *domain.ServiceError
		if errors.As(err, &svcErr) {
			c.log.Warn("RentalAPI: %s failed: status=%d, message=%s", endpoint, svcErr.StatusCode, svcErr.Message)
			c.observe(endpoint, "service_error")
		} else {
			c.log.Error("RentalAPI: %s invalid response: %v", endpoint, err)
			c.observe(endpoint, "error")
		}
		return nil, err
	}

	c.observe(endpoint, "ok")
	return meta, nil
}

func (c *Client) send(
	ctx context.Context,
	method, path string,
	query url.Values,
	payload []byte,
	creds *auth.Credentials,
) (int, []byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if creds != nil {
		if token := creds.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	return resp.StatusCode, body, nil
}

// refresh запрашивает новый access token по refresh token (cookie)
func (c *Client) refresh(ctx context.Context, creds *auth.Credentials) error {
	if creds == nil || creds.RefreshToken == "" {
		c.metricsRefresh("skipped")
		return fmt.Errorf("%w: no refresh token", domain.ErrUnauthorized)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.refreshPath, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create refresh request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: creds.RefreshToken})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metricsRefresh("error")
		return fmt.Errorf("%w: failed to execute refresh request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metricsRefresh("error")
		return fmt.Errorf("%w: failed to read refresh response: %v", ErrInternal, err)
	}

	var data refreshResponse
	if _, err := decode(resp.StatusCode, body, &data); err != nil || data.AccessToken == "" {
		c.log.Warn("RentalAPI: token refresh rejected: status=%d", resp.StatusCode)
		c.metricsRefresh("rejected")
		return fmt.Errorf("%w: token refresh rejected", domain.ErrUnauthorized)
	}

	creds.SetAccessToken(data.AccessToken)
	c.log.Info("RentalAPI: access token refreshed for user=%s", creds.UserID)
	c.metricsRefresh("ok")
	return nil
}

// decode разбирает конверт; не 2xx и success=false превращаются в domain.ServiceError
func decode(status int, body []byte, out interface{}) (*Meta, error) {
	if status < 200 || status >= 300 {
		return nil, serviceError(status, body)
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: failed to decode envelope: %v", ErrInvalidResponse, err)
	}

	if !env.Success {
		return nil, &domain.ServiceError{StatusCode: status, Message: env.Message, Success: false}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("%w: failed to decode data: %v", ErrInvalidResponse, err)
		}
	}

	return env.Meta, nil
}

func serviceError(status int, body []byte) *domain.ServiceError {
	svcErr := &domain.ServiceError{StatusCode: status}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		svcErr.Message = payload.Message
		svcErr.Stack = payload.Stack
		svcErr.Success = payload.Success
		return svcErr
	}

	svcErr.Message = http.StatusText(status)
	return svcErr
}

// IsNotFound true, если удаленный API ответил 404
func IsNotFound(err error) bool {
	var svcErr *domain.ServiceError
	return errors.As(err, &svcErr) && svcErr.StatusCode == http.StatusNotFound
}

// endpointLabel метка для метрик и логов без идентификаторов: "GET /bookings"
func endpointLabel(method, path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.Index(trimmed, "/"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return method + " /" + trimmed
}

func (c *Client) observe(endpoint, outcome string) {
	if c.metrics != nil {
		c.metrics.IntegrationCall(endpoint, outcome)
	}
}

func (c *Client) metricsRefresh(result string) {
	if c.metrics != nil {
		c.metrics.TokenRefresh(result)
	}
}
