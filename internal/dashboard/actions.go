package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Action is a bulk or single user action tag.
type Action string

const (
	ActionActivate Action = "activate"
	ActionSuspend  Action = "suspend"
	ActionDelete   Action = "delete"
)

// ErrNoSelection reports an action request with no user IDs.
var ErrNoSelection = errors.New("no users selected")

// ExecuteAction posts the action for the given user IDs and, on success,
// refetches the current filters/page so the table reflects the change. IDs
// must be valid UUIDs; the caller is responsible for gating the call behind
// an explicit confirmation.
func (c *Coordinator) ExecuteAction(ctx context.Context, action Action, userIDs []string, filters FilterState, page int) error {
	if len(userIDs) == 0 {
		return ErrNoSelection
	}
	for _, id := range userIDs {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("invalid user id %q: %w", id, err)
		}
	}

	payload, err := json.Marshal(map[string]any{
		"action":   action,
		"user_ids": userIDs,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/dashboard/admin/users/actions", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post action: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New(serverError(resp, "Action failed"))
	}

	return c.Fetch(ctx, filters, page)
}
