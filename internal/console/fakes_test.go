package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/suteetoe/platformadmin/pkg/adminclient"
)

// fakeBackend is an in-memory stand-in for the platform-admin API, shared by
// the fake per-collection clients so mutations show up in subsequent lists.
type fakeBackend struct {
	mu      sync.Mutex
	tenants []adminclient.Tenant
	roles   []adminclient.Role
	users   []adminclient.User
	nextID  int

	listCalls   int
	createCalls int

	failNextList error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 1}
}

func (b *fakeBackend) id(prefix string) string {
	id := fmt.Sprintf("%s%d", prefix, b.nextID)
	b.nextID++
	return id
}

type fakeTenantAPI struct{ b *fakeBackend }

func (f *fakeTenantAPI) List(ctx context.Context) ([]adminclient.Tenant, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	f.b.listCalls++
	if err := f.b.failNextList; err != nil {
		f.b.failNextList = nil
		return nil, err
	}
	out := make([]adminclient.Tenant, len(f.b.tenants))
	copy(out, f.b.tenants)
	return out, nil
}

func (f *fakeTenantAPI) Create(ctx context.Context, input adminclient.TenantInput) (*adminclient.Tenant, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	f.b.createCalls++
	t := adminclient.Tenant{ID: f.b.id("t"), Name: input.Name, Address: input.Address}
	f.b.tenants = append(f.b.tenants, t)
	return &t, nil
}

func (f *fakeTenantAPI) Update(ctx context.Context, id string, input adminclient.TenantInput) (*adminclient.Tenant, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for i := range f.b.tenants {
		if f.b.tenants[i].ID == id {
			f.b.tenants[i].Name = input.Name
			f.b.tenants[i].Address = input.Address
			t := f.b.tenants[i]
			return &t, nil
		}
	}
	return nil, &adminclient.RequestError{StatusCode: 404, Message: "tenant not found"}
}

func (f *fakeTenantAPI) Delete(ctx context.Context, id string) error {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for i := range f.b.tenants {
		if f.b.tenants[i].ID == id {
			f.b.tenants = append(f.b.tenants[:i], f.b.tenants[i+1:]...)
			return nil
		}
	}
	return &adminclient.RequestError{StatusCode: 404, Message: "tenant not found"}
}

type fakeRoleAPI struct{ b *fakeBackend }

func (f *fakeRoleAPI) List(ctx context.Context) ([]adminclient.Role, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	out := make([]adminclient.Role, len(f.b.roles))
	copy(out, f.b.roles)
	return out, nil
}

func (f *fakeRoleAPI) Create(ctx context.Context, input adminclient.RoleInput) (*adminclient.Role, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	r := adminclient.Role{ID: f.b.id("r"), Name: input.Name, Description: input.Description, IsPlatformRole: input.IsPlatformRole}
	f.b.roles = append(f.b.roles, r)
	return &r, nil
}

func (f *fakeRoleAPI) Update(ctx context.Context, id string, update adminclient.RoleUpdate) (*adminclient.Role, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for i := range f.b.roles {
		if f.b.roles[i].ID == id {
			if update.Name != nil {
				f.b.roles[i].Name = *update.Name
			}
			if update.Description != nil {
				f.b.roles[i].Description = *update.Description
			}
			r := f.b.roles[i]
			return &r, nil
		}
	}
	return nil, &adminclient.RequestError{StatusCode: 404, Message: "role not found"}
}

func (f *fakeRoleAPI) Delete(ctx context.Context, id string) error {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for i := range f.b.roles {
		if f.b.roles[i].ID == id {
			f.b.roles = append(f.b.roles[:i], f.b.roles[i+1:]...)
			return nil
		}
	}
	return &adminclient.RequestError{StatusCode: 404, Message: "role not found"}
}

type fakeUserAPI struct {
	b *fakeBackend

	mu          sync.Mutex
	listCalls   int
	createCalls int
	failCreate  error
}

func (f *fakeUserAPI) List(ctx context.Context, tenantID string) ([]adminclient.User, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()

	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	var out []adminclient.User
	for _, u := range f.b.users {
		if tenantID == "" {
			if u.TenantID == nil {
				out = append(out, u)
			}
		} else if u.TenantID != nil && *u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserAPI) CreatePlatformAdmin(ctx context.Context, input adminclient.PlatformAdminInput) (*adminclient.User, error) {
	f.mu.Lock()
	f.createCalls++
	err := f.failCreate
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	u := adminclient.User{ID: f.b.id("u"), Email: input.Email, Name: input.Name, RoleID: input.RoleID}
	f.b.users = append(f.b.users, u)
	return &u, nil
}

func (f *fakeUserAPI) CreateTenantUser(ctx context.Context, input adminclient.TenantUserInput) (*adminclient.User, error) {
	f.mu.Lock()
	f.createCalls++
	err := f.failCreate
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	tenantID := input.TenantID
	u := adminclient.User{ID: f.b.id("u"), Email: input.Email, Name: input.Name, RoleID: input.RoleID, TenantID: &tenantID}
	f.b.users = append(f.b.users, u)
	return &u, nil
}

func (f *fakeUserAPI) Update(ctx context.Context, id string, update adminclient.UserUpdate) (*adminclient.User, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for i := range f.b.users {
		if f.b.users[i].ID == id {
			if update.Email != nil {
				f.b.users[i].Email = *update.Email
			}
			if update.Name != nil {
				f.b.users[i].Name = *update.Name
			}
			if update.RoleID != nil {
				f.b.users[i].RoleID = *update.RoleID
			}
			u := f.b.users[i]
			return &u, nil
		}
	}
	return nil, &adminclient.RequestError{StatusCode: 404, Message: "user not found"}
}

func (f *fakeUserAPI) Delete(ctx context.Context, id string) error {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for i := range f.b.users {
		if f.b.users[i].ID == id {
			f.b.users = append(f.b.users[:i], f.b.users[i+1:]...)
			return nil
		}
	}
	return &adminclient.RequestError{StatusCode: 404, Message: "user not found"}
}
