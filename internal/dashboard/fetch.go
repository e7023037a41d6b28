package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

// ErrUnauthorized reports a 401 from the users endpoint. The coordinator has
// already triggered the login redirect side effect when it is returned.
var ErrUnauthorized = errors.New("session expired or missing")

// User is the row view-model for the user-management table: the wire row
// plus the phone alias, with numeric aggregates defaulting to 0.
type User struct {
	ID                string  `json:"id"`
	FullName          string  `json:"full_name"`
	Email             string  `json:"email"`
	PhoneNumber       string  `json:"phone_number"`
	Phone             string  `json:"phone"`
	KYCLevel          string  `json:"kyc_level"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"created_at"`
	LastLogin         string  `json:"last_login"`
	Country           string  `json:"country"`
	TotalTransactions int64   `json:"total_transactions"`
	TotalVolume       float64 `json:"total_volume"`
}

// DefaultPageSize matches the server's default page_limit.
const DefaultPageSize = 20

// CoordinatorOptions configures a Coordinator.
type CoordinatorOptions struct {
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Token is the auth provider's session token, sent as a bearer header.
	Token string
	// PageSize defaults to DefaultPageSize.
	PageSize int
	// OnUnauthorized runs when a fetch gets a 401, before ErrUnauthorized
	// is returned. Typically navigates to /login.
	OnUnauthorized func()
}

// Coordinator fetches pages of the user-management table. Each fetch carries
// a monotonically increasing token; a completion whose token is no longer
// the latest is discarded, so a slow early response can never overwrite a
// newer one. A failed fetch leaves the previous rows untouched.
type Coordinator struct {
	client         *http.Client
	baseURL        string
	token          string
	pageSize       int
	onUnauthorized func()

	mu      sync.Mutex
	seq     uint64
	applied uint64
	users   []User
	total   int
	loading bool
}

func NewCoordinator(baseURL string, opts CoordinatorOptions) *Coordinator {
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Coordinator{
		client:         client,
		baseURL:        baseURL,
		token:          opts.Token,
		pageSize:       pageSize,
		onUnauthorized: opts.OnUnauthorized,
	}
}

// Fetch loads the given page under the given filters and replaces the row
// collection wholesale. page is 1-based.
func (c *Coordinator) Fetch(ctx context.Context, filters FilterState, page int) error {
	c.mu.Lock()
	c.seq++
	token := c.seq
	c.loading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if token == c.seq {
			c.loading = false
		}
		c.mu.Unlock()
	}()

	users, total, err := c.fetchPage(ctx, filters, page)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if token < c.seq || token <= c.applied {
		// A newer request completed first; this response is stale.
		return nil
	}
	c.applied = token
	c.users = users
	c.total = total
	return nil
}

func (c *Coordinator) fetchPage(ctx context.Context, filters FilterState, page int) ([]User, int, error) {
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("filter_kyc", valueOr(filters[KeyTypeFilter], "all"))
	q.Set("filter_status", valueOr(filters[KeyStatusFilter], "all"))
	q.Set("page_limit", strconv.Itoa(c.pageSize))
	q.Set("page_offset", strconv.Itoa((page-1)*c.pageSize))
	q.Set("search_term", filters[KeySearchTerm])

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/dashboard/admin/users?"+q.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, 0, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, errors.New(serverError(resp, "failed to fetch users"))
	}

	var body struct {
		Data  []User `json:"data"`
		Count int    `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("decode users response: %w", err)
	}

	users := body.Data
	if users == nil {
		users = []User{}
	}
	for i := range users {
		users[i].Phone = users[i].PhoneNumber
	}
	return users, body.Count, nil
}

// Users returns a copy of the current row collection.
func (c *Coordinator) Users() []User {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]User, len(c.users))
	copy(out, c.users)
	return out
}

// Total returns the server-reported filtered row count.
func (c *Coordinator) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// TotalPages returns ceil(total / pageSize).
func (c *Coordinator) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return (c.total + c.pageSize - 1) / c.pageSize
}

// Loading reports whether a fetch is in flight.
func (c *Coordinator) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// PageSize returns the configured page size.
func (c *Coordinator) PageSize() int {
	return c.pageSize
}

func (c *Coordinator) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// serverError extracts the server-supplied error message, falling back to
// the given generic text.
func serverError(resp *http.Response, fallback string) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return fallback
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
