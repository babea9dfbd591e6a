package console

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/suteetoe/platformadmin/pkg/adminclient"
)

// UserManager orchestrates the user screen. Besides the user collection it
// owns two dependency stores, roles and tenants, because user rows render
// denormalized role and tenant names: the first user list waits until both
// dependencies have completed once.
type UserManager struct {
	api     UserAPI
	roles   RoleAPI
	tenants TenantAPI

	userStore   *Store[adminclient.User]
	roleStore   *Store[adminclient.Role]
	tenantStore *Store[adminclient.Tenant]
	coord       *MutationCoordinator

	mu           sync.Mutex
	mode         ViewMode
	tenantFilter string

	log *zap.Logger
}

// NewUserManager creates a user manager. The initial view shows platform
// admins.
func NewUserManager(api UserAPI, roles RoleAPI, tenants TenantAPI, log *zap.Logger) *UserManager {
	return &UserManager{
		api:         api,
		roles:       roles,
		tenants:     tenants,
		userStore:   NewStore[adminclient.User](log),
		roleStore:   NewStore[adminclient.Role](log),
		tenantStore: NewStore[adminclient.Tenant](log),
		coord:       NewMutationCoordinator(log),
		mode:        ViewPlatformAdmins,
		log:         log,
	}
}

// LoadDependencies fetches the role and tenant collections concurrently.
// The two loads have no ordering dependency between them.
func (m *UserManager) LoadDependencies(ctx context.Context) error {
	var wg sync.WaitGroup
	var roleErr, tenantErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		roleErr = m.roleStore.Load(ctx, func(ctx context.Context) ([]adminclient.Role, error) {
			return m.roles.List(ctx)
		})
	}()
	go func() {
		defer wg.Done()
		tenantErr = m.tenantStore.Load(ctx, func(ctx context.Context) ([]adminclient.Tenant, error) {
			return m.tenants.List(ctx)
		})
	}()
	wg.Wait()

	if roleErr != nil {
		return roleErr
	}
	return tenantErr
}

// LoadUsers fetches the user collection under the current view parameters.
// Dependencies are loaded first when they have not completed yet, since user
// rows need role and tenant names. When the parameters say no fetch should be
// issued, the collection is cleared and the UI prompts for a tenant.
func (m *UserManager) LoadUsers(ctx context.Context) error {
	if !m.roleStore.Loaded() || !m.tenantStore.Loaded() {
		if err := m.LoadDependencies(ctx); err != nil {
			return err
		}
	}

	params := m.params()
	if params.Skip {
		m.userStore.Clear()
		m.coord.ClearOperationErr()
		return nil
	}

	err := m.userStore.Load(ctx, func(ctx context.Context) ([]adminclient.User, error) {
		return m.api.List(ctx, params.TenantID)
	})
	if err == nil {
		// Fresh rows on screen make a previously failed write stale information
		m.coord.ClearOperationErr()
	}
	return err
}

// InvalidateAndReload refetches the user collection under the current view
// parameters. It runs after every successful mutation.
func (m *UserManager) InvalidateAndReload(ctx context.Context) error {
	return m.LoadUsers(ctx)
}

// SetViewMode switches between the platform-admin and tenant-user views.
// The tenant filter resets and the displayed collection empties immediately,
// before any new load resolves, so stale cross-scope rows never flash.
func (m *UserManager) SetViewMode(mode ViewMode) {
	m.mu.Lock()
	if m.mode == mode {
		m.mu.Unlock()
		return
	}
	m.mode = mode
	m.tenantFilter = ""
	m.mu.Unlock()

	m.userStore.Clear()
	m.log.Debug("View mode switched", zap.String("mode", string(mode)))
}

// SetTenantFilter selects the tenant whose users the tenant-user view shows.
// The collection empties immediately; the caller follows up with LoadUsers.
func (m *UserManager) SetTenantFilter(tenantID string) {
	m.mu.Lock()
	m.tenantFilter = tenantID
	m.mu.Unlock()

	m.userStore.Clear()
}

// ViewMode returns the active view mode
func (m *UserManager) ViewMode() ViewMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// TenantFilter returns the selected tenant id, empty when none is selected
func (m *UserManager) TenantFilter() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tenantFilter
}

// NeedsTenantSelection reports whether the current view cannot fetch until a
// tenant is selected
func (m *UserManager) NeedsTenantSelection() bool {
	return m.params().Skip
}

func (m *UserManager) params() FetchParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ParamsFor(m.mode, m.tenantFilter)
}

// CreatePlatformAdmin creates a tenant-less admin. The initial password is
// mandatory and checked against the minimum length before any network call.
func (m *UserManager) CreatePlatformAdmin(ctx context.Context, input adminclient.PlatformAdminInput) error {
	return m.coord.Run(ctx,
		func(ctx context.Context) error {
			if len(input.Password) < adminclient.MinPasswordLength {
				return &adminclient.ArgumentError{Message: "password must be at least 8 characters"}
			}
			_, err := m.api.CreatePlatformAdmin(ctx, input)
			return err
		},
		m.InvalidateAndReload,
	)
}

// CreateTenantUser creates a user inside the currently selected tenant. With
// no tenant selected the discriminant is ambiguous and the call fails fast,
// issuing zero network requests. A supplied password is optional but must
// meet the minimum length.
func (m *UserManager) CreateTenantUser(ctx context.Context, input adminclient.TenantUserInput) error {
	return m.coord.Run(ctx,
		func(ctx context.Context) error {
			if input.TenantID == "" {
				input.TenantID = m.TenantFilter()
			}
			if input.TenantID == "" {
				return &adminclient.ArgumentError{Message: "no tenant selected for tenant user creation"}
			}
			if input.Password != "" && len(input.Password) < adminclient.MinPasswordLength {
				return &adminclient.ArgumentError{Message: "password must be at least 8 characters"}
			}
			_, err := m.api.CreateTenantUser(ctx, input)
			return err
		},
		m.InvalidateAndReload,
	)
}

// Update edits a user, then reloads the collection under the current view
func (m *UserManager) Update(ctx context.Context, id string, update adminclient.UserUpdate) error {
	return m.coord.Run(ctx,
		func(ctx context.Context) error {
			if update.Password != nil && len(*update.Password) < adminclient.MinPasswordLength {
				return &adminclient.ArgumentError{Message: "password must be at least 8 characters"}
			}
			_, err := m.api.Update(ctx, id, update)
			return err
		},
		m.InvalidateAndReload,
	)
}

// Delete removes a user, then reloads the collection under the current view
func (m *UserManager) Delete(ctx context.Context, id string) error {
	return m.coord.Run(ctx,
		func(ctx context.Context) error {
			return m.api.Delete(ctx, id)
		},
		m.InvalidateAndReload,
	)
}

// Users returns the cached user collection
func (m *UserManager) Users() []adminclient.User { return m.userStore.Items() }

// Roles returns the cached dependency role collection
func (m *UserManager) Roles() []adminclient.Role { return m.roleStore.Items() }

// Tenants returns the cached dependency tenant collection
func (m *UserManager) Tenants() []adminclient.Tenant { return m.tenantStore.Items() }

// RoleName resolves a role id against the dependency cache, falling back to
// the raw id
func (m *UserManager) RoleName(id string) string {
	for _, r := range m.roleStore.Items() {
		if r.ID == id {
			return r.Name
		}
	}
	return id
}

// TenantName resolves a tenant id against the dependency cache, falling back
// to the raw id
func (m *UserManager) TenantName(id string) string {
	for _, t := range m.tenantStore.Items() {
		if t.ID == id {
			return t.Name
		}
	}
	return id
}

// State returns the user store's lifecycle state
func (m *UserManager) State() LoadState { return m.userStore.State() }

// LoadErr returns the user collection load error channel
func (m *UserManager) LoadErr() error { return m.userStore.Err() }

// OperationErr returns the mutation error channel
func (m *UserManager) OperationErr() error { return m.coord.OperationErr() }

// Busy reports whether a mutation is in flight
func (m *UserManager) Busy() bool { return m.coord.Busy() }
