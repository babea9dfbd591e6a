package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/suteetoe/platformadmin/internal/console"
	"github.com/suteetoe/platformadmin/pkg/adminclient"
	"github.com/suteetoe/platformadmin/pkg/config"
	"github.com/suteetoe/platformadmin/pkg/logger"
)

var (
	baseURL string
	token   string

	rootCmd = &cobra.Command{
		Use:   "adminctl",
		Short: "Platform administration console",
		Long:  `adminctl manages tenants, roles and users of the multi-tenant platform through the platform-admin API`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "platform-admin API base URL (defaults to ADMIN_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "superadmin bearer token (defaults to ADMIN_TOKEN)")

	rootCmd.AddCommand(tenantsCmd())
	rootCmd.AddCommand(rolesCmd())
	rootCmd.AddCommand(usersCmd())
}

// newClient builds the API client from flags, environment and config defaults
func newClient() *adminclient.Client {
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	logger.InitLogger(cfg)

	url := baseURL
	if url == "" {
		url = cfg.AdminAPI.BaseURL
	}

	bearer := token
	if bearer == "" {
		bearer = os.Getenv("ADMIN_TOKEN")
	}

	return adminclient.NewClient(url, adminclient.StaticToken(bearer), logger.GetLogger())
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func tenantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "Manage tenants",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all tenants",
		Run: func(cmd *cobra.Command, args []string) {
			m := console.NewTenantManager(newClient().Tenants(), logger.GetLogger())
			if err := m.Load(context.Background()); err != nil {
				fatal(err)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tADDRESS")
			for _, t := range m.Tenants() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Address)
			}
			w.Flush()
		},
	})

	var address string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tenant",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			m := console.NewTenantManager(newClient().Tenants(), logger.GetLogger())
			if err := m.Create(context.Background(), adminclient.TenantInput{Name: args[0], Address: address}); err != nil {
				fatal(err)
			}
			fmt.Printf("Tenant %q created, %d tenants total\n", args[0], len(m.Tenants()))
		},
	}
	create.Flags().StringVar(&address, "address", "", "tenant address")
	cmd.AddCommand(create)

	var updName, updAddress string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a tenant",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			m := console.NewTenantManager(newClient().Tenants(), logger.GetLogger())
			if err := m.Update(context.Background(), args[0], adminclient.TenantInput{Name: updName, Address: updAddress}); err != nil {
				fatal(err)
			}
			fmt.Printf("Tenant %s updated\n", args[0])
		},
	}
	update.Flags().StringVar(&updName, "name", "", "new tenant name")
	update.Flags().StringVar(&updAddress, "address", "", "new tenant address")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tenant",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			m := console.NewTenantManager(newClient().Tenants(), logger.GetLogger())
			if err := m.Delete(context.Background(), args[0]); err != nil {
				fatal(err)
			}
			fmt.Printf("Tenant %s deleted\n", args[0])
		},
	})

	return cmd
}

func rolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Manage roles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all roles",
		Run: func(cmd *cobra.Command, args []string) {
			m := console.NewRoleManager(newClient().Roles(), logger.GetLogger())
			if err := m.Load(context.Background()); err != nil {
				fatal(err)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSCOPE\tDESCRIPTION")
			for _, r := range m.Roles() {
				scope := "tenant"
				if r.IsPlatformRole {
					scope = "platform"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Name, scope, r.Description)
			}
			w.Flush()
		},
	})

	var description string
	var platform bool
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a role",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			m := console.NewRoleManager(newClient().Roles(), logger.GetLogger())
			input := adminclient.RoleInput{Name: args[0], Description: description, IsPlatformRole: platform}
			if err := m.Create(context.Background(), input); err != nil {
				fatal(err)
			}
			fmt.Printf("Role %q created\n", args[0])
		},
	}
	create.Flags().StringVar(&description, "description", "", "role description")
	create.Flags().BoolVar(&platform, "platform", false, "create a platform-scope role")
	cmd.AddCommand(create)

	var updName, updDescription string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a role",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			m := console.NewRoleManager(newClient().Roles(), logger.GetLogger())
			var upd adminclient.RoleUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &updName
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &updDescription
			}
			if err := m.Update(context.Background(), args[0], upd); err != nil {
				fatal(err)
			}
			fmt.Printf("Role %s updated\n", args[0])
		},
	}
	update.Flags().StringVar(&updName, "name", "", "new role name")
	update.Flags().StringVar(&updDescription, "description", "", "new role description")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a role",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			m := console.NewRoleManager(newClient().Roles(), logger.GetLogger())
			if err := m.Delete(context.Background(), args[0]); err != nil {
				fatal(err)
			}
			fmt.Printf("Role %s deleted\n", args[0])
		},
	})

	return cmd
}

func newUserManager() *console.UserManager {
	client := newClient()
	return console.NewUserManager(client.Users(), client.Roles(), client.Tenants(), logger.GetLogger())
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	var view, tenantID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List users by view",
		Run: func(cmd *cobra.Command, args []string) {
			m := newUserManager()
			if view == string(console.ViewTenantUsers) {
				m.SetViewMode(console.ViewTenantUsers)
				m.SetTenantFilter(tenantID)
			}
			if err := m.LoadUsers(context.Background()); err != nil {
				fatal(err)
			}
			if m.NeedsTenantSelection() {
				fmt.Println("Select a tenant with --tenant to list tenant users")
				return
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tTENANT")
			for _, u := range m.Users() {
				tenant := "-"
				if u.TenantID != nil {
					tenant = m.TenantName(*u.TenantID)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, m.RoleName(u.RoleID), tenant)
			}
			w.Flush()
		},
	}
	list.Flags().StringVar(&view, "view", string(console.ViewPlatformAdmins), "user view: platformAdmins or tenantUsers")
	list.Flags().StringVar(&tenantID, "tenant", "", "tenant id for the tenantUsers view")
	cmd.AddCommand(list)

	var adminEmail, adminName, adminRole, adminPassword string
	createAdmin := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a platform admin",
		Run: func(cmd *cobra.Command, args []string) {
			m := newUserManager()
			input := adminclient.PlatformAdminInput{
				Email:    adminEmail,
				Name:     adminName,
				RoleID:   adminRole,
				Password: adminPassword,
			}
			if err := m.CreatePlatformAdmin(context.Background(), input); err != nil {
				fatal(err)
			}
			fmt.Printf("Platform admin %q created\n", adminEmail)
		},
	}
	createAdmin.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdmin.Flags().StringVar(&adminName, "name", "", "admin display name")
	createAdmin.Flags().StringVar(&adminRole, "role", "", "platform role id")
	createAdmin.Flags().StringVar(&adminPassword, "password", "", "initial password")
	cmd.AddCommand(createAdmin)

	var userEmail, userName, userRole, userTenant, userPassword string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a tenant user",
		Run: func(cmd *cobra.Command, args []string) {
			m := newUserManager()
			m.SetViewMode(console.ViewTenantUsers)
			m.SetTenantFilter(userTenant)
			input := adminclient.TenantUserInput{
				Email:    userEmail,
				Name:     userName,
				RoleID:   userRole,
				TenantID: userTenant,
				Password: userPassword,
			}
			if err := m.CreateTenantUser(context.Background(), input); err != nil {
				fatal(err)
			}
			fmt.Printf("Tenant user %q created in tenant %s\n", userEmail, userTenant)
		},
	}
	create.Flags().StringVar(&userEmail, "email", "", "user email")
	create.Flags().StringVar(&userName, "name", "", "user display name")
	create.Flags().StringVar(&userRole, "role", "", "tenant role id")
	create.Flags().StringVar(&userTenant, "tenant", "", "tenant id")
	create.Flags().StringVar(&userPassword, "password", "", "initial password (auto-generated when empty)")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			m := newUserManager()
			if err := m.Delete(context.Background(), args[0]); err != nil {
				fatal(err)
			}
			fmt.Printf("User %s deleted\n", args[0])
		},
	})

	return cmd
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
