package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/entforge/entforge"
)

// CheckCmd returns the check command
func CheckCmd() *cobra.Command {
	var templateDir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every template in a directory",
		Long: `Check parses each template file and reports unbalanced or malformed
directives without rendering anything. Templates are validated independently
of any entity spec.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := os.DirFS(templateDir)
			var failed int
			var checked int

			err := fs.WalkDir(fsys, ".", func(path string, info fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					return nil
				}
				ext := strings.ToLower(filepath.Ext(path))
				if !slices.Contains(entforge.ValidFileExtensions, ext) {
					return nil
				}
				f, err := fsys.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				raw, err := io.ReadAll(f)
				if err != nil {
					return err
				}

				checked++
				if _, perr := entforge.ParseNamed(path, string(raw)); perr != nil {
					failed++
					fmt.Printf("  %s %s\n         %v\n", color.New(color.FgRed).Sprint("INVALID"), path, perr)
					return nil
				}
				fmt.Printf("  %s %s\n", color.New(color.FgGreen).Sprint("OK     "), path)
				return nil
			})
			if err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d templates invalid", failed, checked)
			}
			fmt.Printf("\n%d templates OK\n", checked)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateDir, "templates", "t", defaultTemplateDir(), "template directory to validate")

	return cmd
}
