package root

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbalakin/notewall/internal/config"
	"github.com/dbalakin/notewall/internal/db"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "notewall",
	Short: "NoteWall admin CLI",
	Long:  "Administration tool for a NoteWall instance. Talks straight to the database, so run it where the database is reachable.",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}

// OpenDB connects using the same environment the server reads, and hands
// back the loaded config so commands share the server's policy knobs.
func OpenDB() (*sql.DB, config.Config, error) {
	cfg := config.Load()
	conn, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	return conn, cfg, err
}
