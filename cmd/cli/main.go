package main

import (
	"fmt"
	"os"

	"github.com/dbalakin/notewall/cmd/cli/root"

	_ "github.com/dbalakin/notewall/cmd/cli/notes"
	_ "github.com/dbalakin/notewall/cmd/cli/sessions"
	_ "github.com/dbalakin/notewall/cmd/cli/users"
)

func main() {
	// Execute the root Cobra command
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
