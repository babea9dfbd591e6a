package adminclient

import (
	"context"
	"net/http"
)

// RoleClient wraps the role collection endpoints
type RoleClient struct {
	c *Client
}

// List returns all roles
func (rc *RoleClient) List(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := rc.c.doJSON(ctx, "roles", http.MethodGet, "/roles", nil, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Create creates a new role
func (rc *RoleClient) Create(ctx context.Context, input RoleInput) (*Role, error) {
	var role Role
	if err := rc.c.doJSON(ctx, "roles", http.MethodPost, "/roles", nil, input, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// Update applies a partial role update
func (rc *RoleClient) Update(ctx context.Context, id string, update RoleUpdate) (*Role, error) {
	var role Role
	if err := rc.c.doJSON(ctx, "roles", http.MethodPatch, "/roles/"+id, nil, update, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// Delete removes a role. Success is determined solely by response status.
func (rc *RoleClient) Delete(ctx context.Context, id string) error {
	return rc.c.doJSON(ctx, "roles", http.MethodDelete, "/roles/"+id, nil, nil, nil)
}
