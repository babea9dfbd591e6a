package console

import (
	"context"

	"go.uber.org/zap"

	"github.com/suteetoe/platformadmin/pkg/adminclient"
)

// RoleManager orchestrates the role screen
type RoleManager struct {
	api   RoleAPI
	store *Store[adminclient.Role]
	coord *MutationCoordinator
	log   *zap.Logger
}

// NewRoleManager creates a role manager around the given API client
func NewRoleManager(api RoleAPI, log *zap.Logger) *RoleManager {
	return &RoleManager{
		api:   api,
		store: NewStore[adminclient.Role](log),
		coord: NewMutationCoordinator(log),
		log:   log,
	}
}

// Load fetches the role collection. A successful load also clears the
// mutation error channel.
func (m *RoleManager) Load(ctx context.Context) error {
	err := m.store.Load(ctx, func(ctx context.Context) ([]adminclient.Role, error) {
		return m.api.List(ctx)
	})
	if err == nil {
		m.coord.ClearOperationErr()
	}
	return err
}

// InvalidateAndReload refetches the collection so the next render observes a
// completed write. It runs after every successful mutation.
func (m *RoleManager) InvalidateAndReload(ctx context.Context) error {
	return m.Load(ctx)
}

// Create creates a role, then reloads the collection
func (m *RoleManager) Create(ctx context.Context, input adminclient.RoleInput) error {
	return m.coord.Run(ctx,
		func(ctx context.Context) error {
			_, err := m.api.Create(ctx, input)
			return err
		},
		m.InvalidateAndReload,
	)
}

// Update edits a role, then reloads the collection
func (m *RoleManager) Update(ctx context.Context, id string, update adminclient.RoleUpdate) error {
	return m.coord.Run(ctx,
		func(ctx context.Context) error {
			_, err := m.api.Update(ctx, id, update)
			return err
		},
		m.InvalidateAndReload,
	)
}

// Delete removes a role, then reloads the collection
func (m *RoleManager) Delete(ctx context.Context, id string) error {
	return m.coord.Run(ctx,
		func(ctx context.Context) error {
			return m.api.Delete(ctx, id)
		},
		m.InvalidateAndReload,
	)
}

// Roles returns the cached collection
func (m *RoleManager) Roles() []adminclient.Role { return m.store.Items() }

// PlatformRoles returns only the platform-scope roles from the cache
func (m *RoleManager) PlatformRoles() []adminclient.Role {
	var out []adminclient.Role
	for _, r := range m.store.Items() {
		if r.IsPlatformRole {
			out = append(out, r)
		}
	}
	return out
}

// TenantRoles returns only the tenant-scope roles from the cache
func (m *RoleManager) TenantRoles() []adminclient.Role {
	var out []adminclient.Role
	for _, r := range m.store.Items() {
		if !r.IsPlatformRole {
			out = append(out, r)
		}
	}
	return out
}

// State returns the store's lifecycle state
func (m *RoleManager) State() LoadState { return m.store.State() }

// LoadErr returns the collection load error channel
func (m *RoleManager) LoadErr() error { return m.store.Err() }

// OperationErr returns the mutation error channel
func (m *RoleManager) OperationErr() error { return m.coord.OperationErr() }

// Busy reports whether a mutation is in flight
func (m *RoleManager) Busy() bool { return m.coord.Busy() }
