package adminclient

import (
	"context"
	"net/http"
	"net/url"
)

// UserClient wraps the user collection endpoints
type UserClient struct {
	c *Client
}

// List returns users in the given tenant scope. An empty tenantID issues an
// unscoped list, which the backend restricts to tenant-less users.
func (uc *UserClient) List(ctx context.Context, tenantID string) ([]User, error) {
	var query url.Values
	if tenantID != "" {
		query = url.Values{"tenantId": {tenantID}}
	}

	var users []User
	if err := uc.c.doJSON(ctx, "users", http.MethodGet, "/users", query, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreatePlatformAdmin creates a tenant-less user with a platform role
func (uc *UserClient) CreatePlatformAdmin(ctx context.Context, input PlatformAdminInput) (*User, error) {
	var user User
	if err := uc.c.doJSON(ctx, "users", http.MethodPost, "/users/platform-admin", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateTenantUser creates a user inside a tenant. The tenant identifier is
// sent both as a query parameter and as a body field, and must be a
// canonically shaped UUID; a malformed id is rejected before any network call.
func (uc *UserClient) CreateTenantUser(ctx context.Context, input TenantUserInput) (*User, error) {
	if err := ValidateUUID("tenant id", input.TenantID); err != nil {
		return nil, err
	}

	query := url.Values{"tenantId": {input.TenantID}}

	var user User
	if err := uc.c.doJSON(ctx, "users", http.MethodPost, "/users/tenant-user", query, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial user update
func (uc *UserClient) Update(ctx context.Context, id string, update UserUpdate) (*User, error) {
	var user User
	if err := uc.c.doJSON(ctx, "users", http.MethodPatch, "/users/"+id, nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user. Success is determined solely by response status.
func (uc *UserClient) Delete(ctx context.Context, id string) error {
	return uc.c.doJSON(ctx, "users", http.MethodDelete, "/users/"+id, nil, nil, nil)
}
