package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned for unknown or expired verification tokens.
var ErrTokenNotFound = errors.New("verification token not found")

// ErrTokenStoreUnavailable means no Redis is connected, so a token cannot be
// stored and an emailed verification link could never resolve.
var ErrTokenStoreUnavailable = errors.New("verification token store unavailable")

// VerificationTokenRepository stores short-lived email verification tokens.
type VerificationTokenRepository interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Consume returns the user ID for the token and deletes it, so a token
	// verifies exactly once.
	Consume(ctx context.Context, token string) (string, error)
}

type verificationTokenRepository struct {
	client *redis.Client
}

func NewVerificationTokenRepository(client *redis.Client) VerificationTokenRepository {
	return &verificationTokenRepository{client: client}
}

func verificationKey(token string) string {
	return fmt.Sprintf("verify:token:%s", token)
}

func (r *verificationTokenRepository) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if r.client == nil {
		// without Redis the caller must not send a verification link
		return ErrTokenStoreUnavailable
	}
	return r.client.Set(ctx, verificationKey(token), userID, ttl).Err()
}

func (r *verificationTokenRepository) Consume(ctx context.Context, token string) (string, error) {
	if r.client == nil {
		return "", ErrTokenNotFound
	}
	userID, err := r.client.GetDel(ctx, verificationKey(token)).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
