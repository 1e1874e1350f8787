package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "session:"

var ErrNotFound = errors.New("session not found")

// Manager хранит сессии в Redis: session:<token> -> user id с TTL.
// Logout удаляет ключ, так что сессию можно отозвать на сервере.
type Manager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	return &Manager{client: client, ttl: ttl}
}

// Create выдаёт новый токен и привязывает его к пользователю.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := generateToken(32)
	if err != nil {
		return "", err
	}

	if err := m.client.Set(ctx, keyPrefix+token, userID.String(), m.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// UserID возвращает владельца сессии или ErrNotFound.
func (m *Manager) UserID(ctx context.Context, token string) (uuid.UUID, error) {
	raw, err := m.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}

	return userID, nil
}

func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.client.Del(ctx, keyPrefix+token).Err()
}

// TTL отдаёт срок жизни сессии; cookie живёт столько же.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func generateToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
