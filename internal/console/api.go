package console

import (
	"context"

	"github.com/suteetoe/platformadmin/pkg/adminclient"
)

// TenantAPI is the slice of the admin API the tenant manager needs
type TenantAPI interface {
	List(ctx context.Context) ([]adminclient.Tenant, error)
	Create(ctx context.Context, input adminclient.TenantInput) (*adminclient.Tenant, error)
	Update(ctx context.Context, id string, input adminclient.TenantInput) (*adminclient.Tenant, error)
	Delete(ctx context.Context, id string) error
}

// RoleAPI is the slice of the admin API the role manager needs
type RoleAPI interface {
	List(ctx context.Context) ([]adminclient.Role, error)
	Create(ctx context.Context, input adminclient.RoleInput) (*adminclient.Role, error)
	Update(ctx context.Context, id string, update adminclient.RoleUpdate) (*adminclient.Role, error)
	Delete(ctx context.Context, id string) error
}

// UserAPI is the slice of the admin API the user manager needs
type UserAPI interface {
	List(ctx context.Context, tenantID string) ([]adminclient.User, error)
	CreatePlatformAdmin(ctx context.Context, input adminclient.PlatformAdminInput) (*adminclient.User, error)
	CreateTenantUser(ctx context.Context, input adminclient.TenantUserInput) (*adminclient.User, error)
	Update(ctx context.Context, id string, update adminclient.UserUpdate) (*adminclient.User, error)
	Delete(ctx context.Context, id string) error
}
