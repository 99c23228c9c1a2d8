// Command libraryctl is the operator CLI for schema migrations, demo data,
// catalog imports and librarian credentials.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "libraryctl",
		Short:        "Operate the library API",
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newImportCmd(),
		newTokenCmd(),
		newHashPasswordCmd(),
	)
	return root
}
