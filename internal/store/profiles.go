package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pingpay/dashboard/internal/model"
)

// ProfileStore resolves the dashboard role for an authenticated user.
type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

func (s *ProfileStore) Role(ctx context.Context, userID string) (model.Role, error) {
	var role string
	err := s.pool.QueryRow(ctx,
		`SELECT role FROM profiles WHERE id = $1::uuid`, userID).Scan(&role)
	if err != nil {
		return "", fmt.Errorf("profile role for %s: %w", userID, err)
	}
	return model.ParseRole(role)
}
