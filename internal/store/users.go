package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pingpay/dashboard/internal/model"
)

// UserStore invokes the user-management database functions. All filtering,
// search, and bulk-update logic lives in the functions themselves; this type
// only binds parameters and scans rows.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// ListParams are the five parameters of get_admin_users.
type ListParams struct {
	KYC    string
	Status string
	Limit  int
	Offset int
	Search string
}

// List returns one page of users plus the total filtered row count as
// reported by the database.
func (s *UserStore) List(ctx context.Context, p ListParams) ([]model.User, int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, full_name, email, phone_number, kyc_level, status,
		       created_at, last_login, country, total_transactions,
		       total_volume::float8, total_count
		FROM get_admin_users($1, $2, $3, $4, $5)`,
		p.KYC, p.Status, p.Limit, p.Offset, p.Search)
	if err != nil {
		return nil, 0, fmt.Errorf("get_admin_users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	var total int64
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PhoneNumber,
			&u.KYCLevel, &u.Status, &u.CreatedAt, &u.LastLogin, &u.Country,
			&u.TotalTransactions, &u.TotalVolume, &total); err != nil {
			return nil, 0, fmt.Errorf("scan admin user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("get_admin_users rows: %w", err)
	}
	return users, int(total), nil
}

// Action forwards a bulk action to admin_user_action and returns the updated
// rows. Invalid actions raise inside the function and come back as the
// database error message.
func (s *UserStore) Action(ctx context.Context, action string, userIDs []string) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, full_name, email, phone_number, kyc_level, status,
		       created_at, last_login, country
		FROM admin_user_action($1, $2::uuid[])`,
		action, userIDs)
	if err != nil {
		return nil, fmt.Errorf("admin_user_action: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PhoneNumber,
			&u.KYCLevel, &u.Status, &u.CreatedAt, &u.LastLogin, &u.Country); err != nil {
			return nil, fmt.Errorf("scan admin user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin_user_action rows: %w", err)
	}
	return users, nil
}
