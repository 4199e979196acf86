package notes

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbalakin/notewall/cmd/cli/output"
	"github.com/dbalakin/notewall/cmd/cli/root"
	"github.com/dbalakin/notewall/internal/repo"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	notesCmd := &cobra.Command{
		Use:   "notes",
		Short: "Inspect and moderate notes",
		Long:  "List notes on the wall or remove one, bypassing the ownership rule. For moderation, not everyday use.",
	}

	notesCmd.AddCommand(listCmd(), rmCmd())
	root.GetRoot().AddCommand(notesCmd)
}

// ==========================
// List Notes
// ==========================
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			return List(ctx, repo.NewNoteRepo(db))
		},
	}
}

// List renders the note table. Split out so tests can feed it a mock
// database.
func List(ctx context.Context, notes *repo.NoteRepo) error {
	all, err := notes.List(ctx)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(all))
	for _, n := range all {
		owner := "-"
		if n.OwnerID != nil {
			owner = strconv.FormatInt(*n.OwnerID, 10)
		}
		rows = append(rows, []interface{}{
			n.ID,
			output.Truncate(n.Title, 40),
			owner,
			n.CreatedAt.Format("2006-01-02 15:04"),
			output.Timestamp(n.UpdatedAt),
		})
	}
	output.RenderTable([]string{"ID", "Title", "Owner", "Created", "Updated"}, rows)
	return nil
}

// ==========================
// Remove Note
// ==========================
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid note id %q", args[0])
			}

			db, _, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if err := repo.NewNoteRepo(db).Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted note %d\n", id)
			return nil
		},
	}
}
