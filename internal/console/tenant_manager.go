package console

import (
	"context"

	"go.uber.org/zap"

	"github.com/suteetoe/platformadmin/pkg/adminclient"
)

// TenantManager orchestrates the tenant screen: one collection store plus one
// mutation coordinator
type TenantManager struct {
	api   TenantAPI
	store *Store[adminclient.Tenant]
	coord *MutationCoordinator
	log   *zap.Logger
}

// NewTenantManager creates a tenant manager around the given API client
func NewTenantManager(api TenantAPI, log *zap.Logger) *TenantManager {
	return &TenantManager{
		api:   api,
		store: NewStore[adminclient.Tenant](log),
		coord: NewMutationCoordinator(log),
		log:   log,
	}
}

// Load fetches the tenant collection. A successful load also clears the
// mutation error channel: once fresh rows are on screen, a previously failed
// write is stale information.
func (m *TenantManager) Load(ctx context.Context) error {
	err := m.store.Load(ctx, func(ctx context.Context) ([]adminclient.Tenant, error) {
		return m.api.List(ctx)
	})
	if err == nil {
		m.coord.ClearOperationErr()
	}
	return err
}

// InvalidateAndReload refetches the collection so the next render observes a
// completed write. It runs after every successful mutation.
func (m *TenantManager) InvalidateAndReload(ctx context.Context) error {
	return m.Load(ctx)
}

// Create creates a tenant, then reloads the collection
func (m *TenantManager) Create(ctx context.Context, input adminclient.TenantInput) error {
	return m.coord.Run(ctx,
		func(ctx context.Context) error {
			_, err := m.api.Create(ctx, input)
			return err
		},
		m.InvalidateAndReload,
	)
}

// Update edits a tenant, then reloads the collection
func (m *TenantManager) Update(ctx context.Context, id string, input adminclient.TenantInput) error {
	return m.coord.Run(ctx,
		func(ctx context.Context) error {
			_, err := m.api.Update(ctx, id, input)
			return err
		},
		m.InvalidateAndReload,
	)
}

// Delete removes a tenant, then reloads the collection
func (m *TenantManager) Delete(ctx context.Context, id string) error {
	return m.coord.Run(ctx,
		func(ctx context.Context) error {
			return m.api.Delete(ctx, id)
		},
		m.InvalidateAndReload,
	)
}

// Tenants returns the cached collection
func (m *TenantManager) Tenants() []adminclient.Tenant { return m.store.Items() }

// State returns the store's lifecycle state
func (m *TenantManager) State() LoadState { return m.store.State() }

// LoadErr returns the collection load error channel
func (m *TenantManager) LoadErr() error { return m.store.Err() }

// OperationErr returns the mutation error channel
func (m *TenantManager) OperationErr() error { return m.coord.OperationErr() }

// Busy reports whether a mutation is in flight
func (m *TenantManager) Busy() bool { return m.coord.Busy() }
