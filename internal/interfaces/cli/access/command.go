package access

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	hierarchydto "warden/internal/application/hierarchy/dto"
	"warden/internal/interfaces/cli/container"
	"warden/internal/interfaces/cli/flags"
	"warden/internal/interfaces/cli/output"
)

var (
	userID       uint
	permissionID uint
	snapshot     bool
	email        string
	format       string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access",
		Short: "Inspect and check user permissions",
	}

	cmd.AddCommand(
		newResolveCommand(),
		newCheckCommand(),
		newSyncCommand(),
		newSnapshotCommand(),
		newValidateCommand(),
	)

	return cmd
}

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "List the effective permissions of a user",
		RunE:  runResolve,
	}
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "User ID (required)")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format (table, json, yaml)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a user holds a permission",
		Long: `Check one permission for one user. By default the store is read directly;
with --snapshot the answer comes from the policy snapshot instead.`,
		RunE: runCheck,
	}
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "User ID (required)")
	cmd.Flags().UintVarP(&permissionID, "permission", "p", 0, "Permission ID (required)")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Answer from the policy snapshot")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("permission")
	return cmd
}

func newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Rebuild the policy snapshot from the store",
		RunE:  runSync,
	}
}

func newSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show the roles and permissions the policy snapshot holds for a user",
		RunE:  runSnapshot,
	}
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "User ID (required)")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format (table, json, yaml)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a user's credentials",
		Long:  `Read a password from the terminal (or the first line of stdin) and check it against the account.`,
		RunE:  runValidate,
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	c, err := container.Open(flags.Env())
	if err != nil {
		return err
	}
	defer c.Close()

	perms, err := c.Access.ResolveEffectivePermissions(context.Background(), userID)
	if err != nil {
		return err
	}

	resp := hierarchydto.ToPermissionResponses(perms)
	return output.Render(cmd.OutOrStdout(), f, resp, func() *output.Table {
		t := &output.Table{Header: []string{"ID", "PERMISSION"}}
		for _, p := range resp {
			t.Add(p.ID, p.QualifiedName)
		}
		return t
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	c, err := container.Open(flags.Env())
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := context.Background()

	var allowed bool
	if snapshot {
		// an in-memory snapshot starts empty in every process
		if !c.PersistentPolicies() {
			if _, err := c.Access.SyncPolicies(ctx); err != nil {
				return err
			}
		}
		allowed, err = c.Access.Enforce(userID, permissionID)
	} else {
		allowed, err = c.Access.HasPermission(ctx, userID, permissionID)
	}
	if err != nil {
		return err
	}

	verdict := "denied"
	if allowed {
		verdict = "allowed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "user %d permission %d: %s\n", userID, permissionID, verdict)
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	c, err := container.Open(flags.Env())
	if err != nil {
		return err
	}
	defer c.Close()

	result, err := c.Access.SyncPolicies(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "synced %d policies and %d role links (persisted: %t)\n",
		result.Policies, result.RoleLinks, c.PersistentPolicies())
	return nil
}

// snapshotView is what the policy snapshot knows about one user.
type snapshotView struct {
	UserID      uint   `json:"user_id" yaml:"user_id"`
	Roles       []uint `json:"roles" yaml:"roles"`
	Permissions []uint `json:"permissions" yaml:"permissions"`
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	c, err := container.Open(flags.Env())
	if err != nil {
		return err
	}
	defer c.Close()

	if !c.PersistentPolicies() {
		if _, err := c.Access.SyncPolicies(context.Background()); err != nil {
			return err
		}
	}

	view, err := loadSnapshot(c.Access, userID)
	if err != nil {
		return err
	}
	return output.Render(cmd.OutOrStdout(), f, view, func() *output.Table {
		t := &output.Table{Header: []string{"KIND", "ID"}}
		for _, id := range view.Roles {
			t.Add("role", id)
		}
		for _, id := range view.Permissions {
			t.Add("permission", id)
		}
		return t
	})
}

type snapshotReader interface {
	SnapshotRoles(userID uint) ([]uint, error)
	SnapshotPermissions(userID uint) ([]uint, error)
}

func loadSnapshot(r snapshotReader, userID uint) (*snapshotView, error) {
	roles, err := r.SnapshotRoles(userID)
	if err != nil {
		return nil, err
	}
	perms, err := r.SnapshotPermissions(userID)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []uint{}
	}
	if perms == nil {
		perms = []uint{}
	}
	return &snapshotView{UserID: userID, Roles: roles, Permissions: perms}, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	c, err := container.Open(flags.Env())
	if err != nil {
		return err
	}
	defer c.Close()

	u, err := c.Users.Validate(context.Background(), email, password)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("invalid credentials")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "valid credentials for user %d (%s)\n", u.ID(), u.FullName())
	return nil
}

func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
