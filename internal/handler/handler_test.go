package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suteetoe/platformadmin/internal/middleware"
	"github.com/suteetoe/platformadmin/internal/model"
	"github.com/suteetoe/platformadmin/pkg/database"
	"github.com/suteetoe/platformadmin/pkg/jwtutil"
)

// newTestServer wires the platform-admin routes against a fresh in-memory
// database and returns a superadmin bearer token for it.
func newTestServer(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	require.NoError(t, database.InitTestDB())

	e := echo.New()

	admin := e.Group("/platform-admin")
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.RequireSuperAdmin)

	tenants := admin.Group("/tenants")
	tenants.GET("", ListTenants)
	tenants.POST("", CreateTenant)
	tenants.PUT("/:id", UpdateTenant)
	tenants.DELETE("/:id", DeleteTenant)

	roles := admin.Group("/roles")
	roles.GET("", ListRoles)
	roles.POST("", CreateRole)
	roles.PATCH("/:id", UpdateRole)
	roles.DELETE("/:id", DeleteRole)

	users := admin.Group("/users")
	users.GET("", ListUsers)
	users.POST("/platform-admin", CreatePlatformAdmin)
	users.POST("/tenant-user", CreateTenantUser)
	users.PATCH("/:id", UpdateUser)
	users.DELETE("/:id", DeleteUser)

	token, err := jwtutil.GenerateToken("root@platform.io", "u-root", jwtutil.RoleSuperAdmin, nil)
	require.NoError(t, err)

	return e, token
}

func doJSON(t *testing.T, e *echo.Echo, token, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAuth_MissingTokenRejected(t *testing.T) {
	e, _ := newTestServer(t)
	rec := doJSON(t, e, "", http.MethodGet, "/platform-admin/tenants", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_NonSuperadminRejected(t *testing.T) {
	e, _ := newTestServer(t)
	token, err := jwtutil.GenerateToken("member@acme.com", "u-member", "member", nil)
	require.NoError(t, err)

	rec := doJSON(t, e, token, http.MethodGet, "/platform-admin/tenants", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTenantCRUD(t *testing.T) {
	e, token := newTestServer(t)

	// Create
	rec := doJSON(t, e, token, http.MethodPost, "/platform-admin/tenants", `{"name":"Acme","address":"1 Main St"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.Tenant](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Acme", created.Name)

	// List
	rec = doJSON(t, e, token, http.MethodGet, "/platform-admin/tenants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	tenants := decode[[]model.Tenant](t, rec)
	require.Len(t, tenants, 1)

	// Update (PUT)
	rec = doJSON(t, e, token, http.MethodPut, "/platform-admin/tenants/"+created.ID, `{"name":"Acme Corp"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.Tenant](t, rec)
	assert.Equal(t, "Acme Corp", updated.Name)

	// Delete
	rec = doJSON(t, e, token, http.MethodDelete, "/platform-admin/tenants/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, token, http.MethodGet, "/platform-admin/tenants", "")
	tenants = decode[[]model.Tenant](t, rec)
	assert.Empty(t, tenants)
}

func TestTenantCreate_MissingNameRejected(t *testing.T) {
	e, token := newTestServer(t)
	rec := doJSON(t, e, token, http.MethodPost, "/platform-admin/tenants", `{"address":"nowhere"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[map[string]string](t, rec)
	assert.Contains(t, body["message"], "name")
}

func TestRoleCRUD(t *testing.T) {
	e, token := newTestServer(t)

	rec := doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Platform Owner","isPlatformRole":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	role := decode[model.Role](t, rec)
	assert.True(t, role.IsPlatformRole)

	// PATCH updates only the supplied fields
	rec = doJSON(t, e, token, http.MethodPatch, "/platform-admin/roles/"+role.ID, `{"description":"full platform access"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode[model.Role](t, rec)
	assert.Equal(t, "Platform Owner", patched.Name)
	assert.Equal(t, "full platform access", patched.Description)

	rec = doJSON(t, e, token, http.MethodDelete, "/platform-admin/roles/"+role.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRoleDelete_StillAssignedRejected(t *testing.T) {
	e, token := newTestServer(t)

	role := decode[model.Role](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Platform Owner","isPlatformRole":true}`))
	rec := doJSON(t, e, token, http.MethodPost, "/platform-admin/users/platform-admin",
		`{"email":"root@platform.io","name":"Root","roleId":"`+role.ID+`","password":"supersecret"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, token, http.MethodDelete, "/platform-admin/roles/"+role.ID, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreatePlatformAdmin_RequiresPasswordAndPlatformRole(t *testing.T) {
	e, token := newTestServer(t)

	platformRole := decode[model.Role](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Platform Owner","isPlatformRole":true}`))
	tenantRole := decode[model.Role](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Member"}`))

	// Too-short password rejected
	rec := doJSON(t, e, token, http.MethodPost, "/platform-admin/users/platform-admin",
		`{"email":"root@platform.io","name":"Root","roleId":"`+platformRole.ID+`","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Tenant role rejected for a tenant-less user
	rec = doJSON(t, e, token, http.MethodPost, "/platform-admin/users/platform-admin",
		`{"email":"root@platform.io","name":"Root","roleId":"`+tenantRole.ID+`","password":"supersecret"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Valid creation; the password never appears on the read path
	rec = doJSON(t, e, token, http.MethodPost, "/platform-admin/users/platform-admin",
		`{"email":"root@platform.io","name":"Root","roleId":"`+platformRole.ID+`","password":"supersecret"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "supersecret")

	created := decode[model.User](t, rec)
	assert.Nil(t, created.TenantID)
}

func TestCreateTenantUser_QueryBodyMismatchRejected(t *testing.T) {
	e, token := newTestServer(t)

	tenant := decode[model.Tenant](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/tenants", `{"name":"Acme"}`))
	role := decode[model.Role](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Member"}`))

	rec := doJSON(t, e, token, http.MethodPost, "/platform-admin/users/tenant-user?tenantId="+tenant.ID,
		`{"email":"m@acme.com","name":"M","roleId":"`+role.ID+`","tenantId":"some-other-tenant"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[map[string]string](t, rec)
	assert.Contains(t, body["message"], "do not match")
}

func TestCreateTenantUser_AutoGeneratesPassword(t *testing.T) {
	e, token := newTestServer(t)

	tenant := decode[model.Tenant](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/tenants", `{"name":"Acme"}`))
	role := decode[model.Role](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Member"}`))

	rec := doJSON(t, e, token, http.MethodPost, "/platform-admin/users/tenant-user?tenantId="+tenant.ID,
		`{"email":"m@acme.com","name":"M","roleId":"`+role.ID+`","tenantId":"`+tenant.ID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[model.User](t, rec)
	require.NotNil(t, created.TenantID)
	assert.Equal(t, tenant.ID, *created.TenantID)
}

func TestListUsers_UnscopedReturnsOnlyPlatformAdmins(t *testing.T) {
	e, token := newTestServer(t)

	platformRole := decode[model.Role](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Platform Owner","isPlatformRole":true}`))
	tenantRole := decode[model.Role](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Member"}`))
	tenant := decode[model.Tenant](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/tenants", `{"name":"Acme"}`))

	doJSON(t, e, token, http.MethodPost, "/platform-admin/users/platform-admin",
		`{"email":"root@platform.io","name":"Root","roleId":"`+platformRole.ID+`","password":"supersecret"}`)
	doJSON(t, e, token, http.MethodPost, "/platform-admin/users/tenant-user?tenantId="+tenant.ID,
		`{"email":"m@acme.com","name":"M","roleId":"`+tenantRole.ID+`","tenantId":"`+tenant.ID+`"}`)

	// Unscoped: tenant-less users only
	rec := doJSON(t, e, token, http.MethodGet, "/platform-admin/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]model.User](t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, "root@platform.io", users[0].Email)
	require.NotNil(t, users[0].Role)
	assert.True(t, users[0].Role.IsPlatformRole)

	// Scoped: the tenant's users with denormalized relations
	rec = doJSON(t, e, token, http.MethodGet, "/platform-admin/users?tenantId="+tenant.ID, "")
	users = decode[[]model.User](t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, "m@acme.com", users[0].Email)
	require.NotNil(t, users[0].Tenant)
	assert.Equal(t, "Acme", users[0].Tenant.Name)
}

func TestUpdateUser_RoleScopeInvariant(t *testing.T) {
	e, token := newTestServer(t)

	platformRole := decode[model.Role](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Platform Owner","isPlatformRole":true}`))
	tenantRole := decode[model.Role](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Member"}`))
	tenant := decode[model.Tenant](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/tenants", `{"name":"Acme"}`))

	created := decode[model.User](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/users/tenant-user?tenantId="+tenant.ID,
		`{"email":"m@acme.com","name":"M","roleId":"`+tenantRole.ID+`","tenantId":"`+tenant.ID+`"}`))

	// Promoting to a platform role clears the tenant
	rec := doJSON(t, e, token, http.MethodPatch, "/platform-admin/users/"+created.ID,
		`{"roleId":"`+platformRole.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	promoted := decode[model.User](t, rec)
	assert.Nil(t, promoted.TenantID)

	// Demoting back to a tenant role without a tenant is rejected
	rec = doJSON(t, e, token, http.MethodPatch, "/platform-admin/users/"+created.ID,
		`{"roleId":"`+tenantRole.ID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Demoting with a tenant succeeds
	rec = doJSON(t, e, token, http.MethodPatch, "/platform-admin/users/"+created.ID,
		`{"roleId":"`+tenantRole.ID+`","tenantId":"`+tenant.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	demoted := decode[model.User](t, rec)
	require.NotNil(t, demoted.TenantID)
	assert.Equal(t, tenant.ID, *demoted.TenantID)
}

func TestDeleteUser(t *testing.T) {
	e, token := newTestServer(t)

	platformRole := decode[model.Role](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/roles", `{"name":"Platform Owner","isPlatformRole":true}`))
	created := decode[model.User](t, doJSON(t, e, token, http.MethodPost, "/platform-admin/users/platform-admin",
		`{"email":"root@platform.io","name":"Root","roleId":"`+platformRole.ID+`","password":"supersecret"}`))

	rec := doJSON(t, e, token, http.MethodDelete, "/platform-admin/users/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, token, http.MethodGet, "/platform-admin/users", "")
	users := decode[[]model.User](t, rec)
	assert.Empty(t, users)
}
