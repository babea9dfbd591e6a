package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suteetoe/platformadmin/pkg/adminclient"
)

func TestTenantManager_CreateThenReloadContainsNewTenant(t *testing.T) {
	b := newFakeBackend()
	m := NewTenantManager(&fakeTenantAPI{b: b}, zap.NewNop())

	require.NoError(t, m.Load(context.Background()))
	assert.Empty(t, m.Tenants())

	require.NoError(t, m.Create(context.Background(), adminclient.TenantInput{Name: "Acme"}))

	// The write went out, the reload followed, and the cache holds exactly
	// what the backend returned
	assert.Equal(t, 1, b.createCalls)
	tenants := m.Tenants()
	require.Len(t, tenants, 1)
	assert.Equal(t, "Acme", tenants[0].Name)
	assert.Equal(t, "t1", tenants[0].ID)
	assert.NoError(t, m.OperationErr())
	assert.NoError(t, m.LoadErr())
}

func TestTenantManager_DeleteRemovesExactlyOneRow(t *testing.T) {
	b := newFakeBackend()
	m := NewTenantManager(&fakeTenantAPI{b: b}, zap.NewNop())

	for _, name := range []string{"Acme", "Globex", "Initech"} {
		require.NoError(t, m.Create(context.Background(), adminclient.TenantInput{Name: name}))
	}
	require.Len(t, m.Tenants(), 3)

	victim := m.Tenants()[1]
	require.NoError(t, m.Delete(context.Background(), victim.ID))

	tenants := m.Tenants()
	require.Len(t, tenants, 2)
	for _, tenant := range tenants {
		assert.NotEqual(t, victim.ID, tenant.ID)
	}
}

func TestTenantManager_FailedMutationKeepsCollectionAndSetsOperationErr(t *testing.T) {
	b := newFakeBackend()
	m := NewTenantManager(&fakeTenantAPI{b: b}, zap.NewNop())

	require.NoError(t, m.Create(context.Background(), adminclient.TenantInput{Name: "Acme"}))

	err := m.Update(context.Background(), "missing", adminclient.TenantInput{Name: "Nope"})
	require.Error(t, err)

	// Dual error channels: the operation failed but the table stays intact
	assert.Error(t, m.OperationErr())
	assert.NoError(t, m.LoadErr())
	assert.Len(t, m.Tenants(), 1)
}

func TestTenantManager_SuccessfulLoadClearsOperationErr(t *testing.T) {
	b := newFakeBackend()
	m := NewTenantManager(&fakeTenantAPI{b: b}, zap.NewNop())

	require.Error(t, m.Update(context.Background(), "missing", adminclient.TenantInput{Name: "Nope"}))
	require.Error(t, m.OperationErr())

	// A later successful load settles the screen; the resolved failure must
	// not keep rendering next to fresh rows
	require.NoError(t, m.Load(context.Background()))
	assert.NoError(t, m.OperationErr())
}

func TestTenantManager_FailedRefreshKeepsOperationErr(t *testing.T) {
	b := newFakeBackend()
	m := NewTenantManager(&fakeTenantAPI{b: b}, zap.NewNop())

	require.Error(t, m.Update(context.Background(), "missing", adminclient.TenantInput{Name: "Nope"}))

	b.failNextList = &adminclient.RequestError{StatusCode: 502, Message: "bad gateway"}
	require.Error(t, m.Load(context.Background()))

	// Only a successful load clears the mutation channel
	assert.Error(t, m.OperationErr())
}

func TestTenantManager_RefreshFailureKeepsRows(t *testing.T) {
	b := newFakeBackend()
	m := NewTenantManager(&fakeTenantAPI{b: b}, zap.NewNop())

	require.NoError(t, m.Create(context.Background(), adminclient.TenantInput{Name: "Acme"}))
	require.Len(t, m.Tenants(), 1)

	b.failNextList = &adminclient.RequestError{StatusCode: 502, Message: "bad gateway"}
	require.Error(t, m.Load(context.Background()))

	assert.Len(t, m.Tenants(), 1, "a failed refresh must not blank the table")
	assert.Error(t, m.LoadErr())
}
