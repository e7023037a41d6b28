package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsStore invokes get_dashboard_analytics. The aggregation lives in
// the function; the JSON object it builds is passed through untouched.
type AnalyticsStore struct {
	pool *pgxpool.Pool
}

func NewAnalyticsStore(pool *pgxpool.Pool) *AnalyticsStore {
	return &AnalyticsStore{pool: pool}
}

func (s *AnalyticsStore) Dashboard(ctx context.Context) (json.RawMessage, error) {
	var payload []byte
	if err := s.pool.QueryRow(ctx, `SELECT get_dashboard_analytics()`).Scan(&payload); err != nil {
		return nil, fmt.Errorf("get_dashboard_analytics: %w", err)
	}
	return json.RawMessage(payload), nil
}
