package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbalakin/notewall/cmd/cli/output"
	"github.com/dbalakin/notewall/cmd/cli/root"
	"github.com/dbalakin/notewall/internal/auth"
	"github.com/dbalakin/notewall/internal/repo"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
		Long:  "Create and inspect NoteWall accounts directly in the database.",
	}

	usersCmd.AddCommand(createCmd(), listCmd())
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// Create User
// ==========================
func createCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Long:  "Create an account without going through the registration form. Useful for seeding the first user.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			db, cfg, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			// Same bcrypt cost the server uses, so CLI-created accounts
			// are indistinguishable from registered ones.
			return Create(ctx, repo.NewUserRepo(db), cfg.BcryptCost, username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new account")
	cmd.Flags().StringVar(&password, "password", "", "Password for the new account")

	return cmd
}

// Create registers the account through the same validation and hashing
// path as the web form. Split out so tests can feed it a mock database.
func Create(ctx context.Context, users *repo.UserRepo, bcryptCost int, username, password string) error {
	svc := auth.NewService(users, bcryptCost)
	user, fields, err := svc.Register(ctx, username, password, password)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		for field, msg := range fields {
			fmt.Printf("%s: %s\n", field, msg)
		}
		return errors.New("account not created")
	}

	fmt.Printf("Created user %q (id %d)\n", user.Username, user.ID)
	return nil
}

// ==========================
// List Users
// ==========================
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			return List(ctx, repo.NewUserRepo(db))
		},
	}
}

// List renders the account table. Split out so tests can feed it a mock
// database.
func List(ctx context.Context, users *repo.UserRepo) error {
	all, err := users.List(ctx)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(all))
	for _, u := range all {
		rows = append(rows, []interface{}{u.ID, u.Username, u.CreatedAt.Format("2006-01-02 15:04")})
	}
	output.RenderTable([]string{"ID", "Username", "Created"}, rows)
	return nil
}
