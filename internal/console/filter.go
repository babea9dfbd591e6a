package console

// ViewMode selects which user population the console displays
type ViewMode string

const (
	// ViewPlatformAdmins shows tenant-less users
	ViewPlatformAdmins ViewMode = "platformAdmins"
	// ViewTenantUsers shows the users of one selected tenant
	ViewTenantUsers ViewMode = "tenantUsers"
)

// FetchParams is the derived query for a user list call. Skip means no fetch
// should be issued at all; the collection stays empty until a tenant is
// selected.
type FetchParams struct {
	Skip     bool
	TenantID string
}

// ParamsFor derives the fetch parameters from the view mode and the tenant
// filter. Platform-admin view issues an unscoped list call and trusts the
// backend to return only tenant-less users; the client does not filter
// further. Tenant-user view with no tenant selected issues nothing.
func ParamsFor(mode ViewMode, tenantFilter string) FetchParams {
	switch mode {
	case ViewTenantUsers:
		if tenantFilter == "" {
			return FetchParams{Skip: true}
		}
		return FetchParams{TenantID: tenantFilter}
	default:
		return FetchParams{}
	}
}
