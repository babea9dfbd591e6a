package adminclient

import "time"

// MinPasswordLength is the shortest initial password the API accepts
const MinPasswordLength = 8

// Tenant is the wire representation of a customer organization
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TenantInput carries the writable tenant fields for create and update
type TenantInput struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Role is the wire representation of an assignable role
type Role struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	IsPlatformRole bool      `json:"isPlatformRole"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// RoleInput carries the writable role fields for creation
type RoleInput struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	IsPlatformRole bool   `json:"isPlatformRole"`
}

// RoleUpdate carries the optional role fields for a PATCH update
type RoleUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// User is the wire representation of a platform or tenant user.
// The password never appears on read paths.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	RoleID    string    `json:"roleId"`
	TenantID  *string   `json:"tenantId"`
	Role      *Role     `json:"role,omitempty"`
	Tenant    *Tenant   `json:"tenant,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlatformAdminInput carries the fields for creating a tenant-less admin.
// The initial password is mandatory.
type PlatformAdminInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	RoleID   string `json:"roleId"`
	Password string `json:"password"`
}

// TenantUserInput carries the fields for creating a user inside a tenant.
// The tenant id is duplicated into the query string on dispatch; the initial
// password is optional.
type TenantUserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	RoleID   string `json:"roleId"`
	TenantID string `json:"tenantId"`
	Password string `json:"password,omitempty"`
}

// UserUpdate carries the optional user fields for a PATCH update.
// Password is write-only: present means rotate, absent means keep.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	RoleID   *string `json:"roleId,omitempty"`
	TenantID *string `json:"tenantId,omitempty"`
	Password *string `json:"password,omitempty"`
}
