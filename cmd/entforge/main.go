package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/entforge/entforge/internal/cli"
	"github.com/entforge/entforge/internal/version"
)

func main() {
	// optional .env for ENTFORGE_* defaults; absence is fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "entforge",
		Short:   "entforge - entity-driven multi-file code generator",
		Version: version.String(),
		Long: `entforge expands an entity spec (name, fields, feature flags) through a
template set into a coordinated group of source files. All name variants are
derived from the single canonical entity name, so generated artifacts never
disagree on casing or pluralization.`,
	}

	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.CheckCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
