package adminclient

import (
	"context"
	"net/http"
)

// TenantClient wraps the tenant collection endpoints
type TenantClient struct {
	c *Client
}

// List returns all tenants
func (tc *TenantClient) List(ctx context.Context) ([]Tenant, error) {
	var tenants []Tenant
	if err := tc.c.doJSON(ctx, "tenants", http.MethodGet, "/tenants", nil, nil, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// Create creates a new tenant
func (tc *TenantClient) Create(ctx context.Context, input TenantInput) (*Tenant, error) {
	var tenant Tenant
	if err := tc.c.doJSON(ctx, "tenants", http.MethodPost, "/tenants", nil, input, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Update replaces a tenant's writable fields
func (tc *TenantClient) Update(ctx context.Context, id string, input TenantInput) (*Tenant, error) {
	var tenant Tenant
	if err := tc.c.doJSON(ctx, "tenants", http.MethodPut, "/tenants/"+id, nil, input, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Delete removes a tenant. Success is determined solely by response status.
func (tc *TenantClient) Delete(ctx context.Context, id string) error {
	return tc.c.doJSON(ctx, "tenants", http.MethodDelete, "/tenants/"+id, nil, nil, nil)
}
