package catalog

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	hierarchydto "warden/internal/application/hierarchy/dto"
	roledto "warden/internal/application/role/dto"
	userdto "warden/internal/application/user/dto"
	"warden/internal/interfaces/cli/container"
	"warden/internal/interfaces/cli/flags"
	"warden/internal/interfaces/cli/output"
)

var (
	activeOnly bool
	format     string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List modules, sub-modules, permissions, roles and users",
	}

	cmd.PersistentFlags().StringVarP(&format, "output", "o", "table", "Output format (table, json, yaml)")

	cmd.AddCommand(
		listCommand("modules", "List modules with their sub-modules", true, runModules),
		listCommand("submodules", "List sub-modules", true, runSubModules),
		listCommand("permissions", "List permissions", true, runPermissions),
		listCommand("roles", "List roles", true, runRoles),
		listCommand("users", "List users", false, runUsers),
	)

	return cmd
}

type lister func(ctx context.Context, c *container.Container, f output.Format, cmd *cobra.Command) error

func listCommand(use, short string, filterable bool, fn lister) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			c, err := container.Open(flags.Env())
			if err != nil {
				return err
			}
			defer c.Close()
			return fn(context.Background(), c, f, cmd)
		},
	}
	if filterable {
		cmd.Flags().BoolVar(&activeOnly, "active", false, "Only list entries that are active along their whole chain")
	}
	return cmd
}

func runModules(ctx context.Context, c *container.Container, f output.Format, cmd *cobra.Command) error {
	list := c.Modules.List
	if activeOnly {
		list = c.Modules.ListActive
	}
	items, err := list(ctx)
	if err != nil {
		return err
	}
	resp := hierarchydto.ToModuleResponses(items)
	return output.Render(cmd.OutOrStdout(), f, resp, func() *output.Table {
		t := &output.Table{Header: []string{"ID", "MODULE", "ACTIVE", "SUB-MODULES"}}
		for _, m := range resp {
			t.Add(m.ID, m.Name, m.IsActive, len(m.SubModules))
		}
		return t
	})
}

func runSubModules(ctx context.Context, c *container.Container, f output.Format, cmd *cobra.Command) error {
	list := c.SubModules.List
	if activeOnly {
		list = c.SubModules.ListActive
	}
	items, err := list(ctx)
	if err != nil {
		return err
	}
	resp := hierarchydto.ToSubModuleResponses(items)
	return output.Render(cmd.OutOrStdout(), f, resp, func() *output.Table {
		t := &output.Table{Header: []string{"ID", "MODULE", "SUB-MODULE", "URL", "ACTIVE"}}
		for _, s := range resp {
			t.Add(s.ID, s.ModuleName, s.Name, s.URL, s.IsActive)
		}
		return t
	})
}

func runPermissions(ctx context.Context, c *container.Container, f output.Format, cmd *cobra.Command) error {
	list := c.Permissions.List
	if activeOnly {
		list = c.Permissions.ListActive
	}
	items, err := list(ctx)
	if err != nil {
		return err
	}
	resp := hierarchydto.ToPermissionResponses(items)
	return output.Render(cmd.OutOrStdout(), f, resp, func() *output.Table {
		t := &output.Table{Header: []string{"ID", "PERMISSION", "ACTIVE"}}
		for _, p := range resp {
			t.Add(p.ID, p.QualifiedName, p.IsActive)
		}
		return t
	})
}

func runRoles(ctx context.Context, c *container.Container, f output.Format, cmd *cobra.Command) error {
	list := c.Roles.List
	if activeOnly {
		list = c.Roles.ListActive
	}
	items, err := list(ctx)
	if err != nil {
		return err
	}
	for _, r := range items {
		perms, err := c.Roles.GetPermissions(ctx, r.ID())
		if err != nil {
			return err
		}
		r.SetPermissions(perms)
	}
	resp := roledto.ToRoleResponses(items)
	return output.Render(cmd.OutOrStdout(), f, resp, func() *output.Table {
		t := &output.Table{Header: []string{"ID", "ROLE", "ACTIVE", "PERMISSIONS"}}
		for _, r := range resp {
			t.Add(r.ID, r.Name, r.IsActive, len(r.Permissions))
		}
		return t
	})
}

func runUsers(ctx context.Context, c *container.Container, f output.Format, cmd *cobra.Command) error {
	items, err := c.Users.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range items {
		roles, err := c.Users.GetRoles(ctx, u.ID())
		if err != nil {
			return err
		}
		u.SetRoles(roles)
	}
	resp := userdto.ToUserResponses(items)
	return output.Render(cmd.OutOrStdout(), f, resp, func() *output.Table {
		t := &output.Table{Header: []string{"ID", "NAME", "EMAIL", "ACTIVE", "ROLES"}}
		for _, u := range resp {
			names := make([]string, 0, len(u.Roles))
			for _, r := range u.Roles {
				names = append(names, r.Name)
			}
			t.Add(u.ID, u.FullName, u.Email, u.IsActive, strings.Join(names, ","))
		}
		return t
	})
}
