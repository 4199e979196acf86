package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbalakin/notewall/cmd/cli/root"
	"github.com/dbalakin/notewall/internal/repo"
)

func init() {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage login sessions",
	}

	sessionsCmd.AddCommand(purgeCmd())
	root.GetRoot().AddCommand(sessionsCmd)
}

// purgeCmd deletes expired session rows on demand. The server does this on
// a schedule; the command exists for one-off cleanup and scripting.
func purgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions now",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			n, err := repo.NewSessionRepo(db).DeleteExpired(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Purged %d expired session(s)\n", n)
			return nil
		},
	}
}
