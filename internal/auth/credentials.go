package auth

import (
	"context"
	"sync"
)

type contextKey string

const credentialsKey contextKey = "credentials"

// SystemUserID идентификатор фоновых операций сервиса
const SystemUserID = "system"

// Credentials учетные данные пользователя для запросов к удаленному API
// Access token может быть заменен после обновления по refresh token
type Credentials struct {
	UserID       string
	Role         string
	RefreshToken string

	mu          sync.RWMutex
	accessToken string
	refreshed   bool
}

// NewCredentials создает учетные данные запроса
func NewCredentials(userID, role, accessToken, refreshToken string) *Credentials {
	return &Credentials{
		UserID:       userID,
		Role:         role,
		RefreshToken: refreshToken,
		accessToken:  accessToken,
	}
}

// ServiceCredentials учетные данные сервиса для фоновых задач (проверка оплат, webhook)
func ServiceCredentials(accessToken string) *Credentials {
	return NewCredentials(SystemUserID, "admin", accessToken, "")
}

// AccessToken текущий access token
func (c *Credentials) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetAccessToken сохраняет обновленный access token
func (c *Credentials) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
	c.refreshed = true
}

// RefreshedToken возвращает новый access token, если он был обновлен в ходе запроса
func (c *Credentials) RefreshedToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshed
}

// WithCredentials кладет учетные данные в контекст
func WithCredentials(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey, creds)
}

// FromContext извлекает учетные данные из контекста
func FromContext(ctx context.Context) (*Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey).(*Credentials)
	return creds, ok && creds != nil
}

// UserIDFromContext извлекает ID пользователя из контекста
func UserIDFromContext(ctx context.Context) (string, bool) {
	creds, ok := FromContext(ctx)
	if !ok || creds.UserID == "" {
		return "", false
	}
	return creds.UserID, true
}
