package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/entforge/entforge"
	"github.com/entforge/entforge/scaffold"
)

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	var (
		specPath     string
		templateDir  string
		manifestPath string
		outDir       string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate files for an entity from a template set",
		Long: `Generate expands an entity spec through a template set and writes the
rendered files. Generation is best-effort: a failing unit is reported and the
remaining units still render. The command exits non-zero if any unit failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := scaffold.LoadSpec(specPath)
			if err != nil {
				return err
			}

			eng := entforge.NewEngine(templateDir)
			if err := eng.Load(); err != nil {
				return err
			}

			if manifestPath == "" {
				manifestPath = filepath.Join(templateDir, "manifest.yaml")
			}
			manifest, err := scaffold.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			units, err := manifest.Resolve(eng)
			if err != nil {
				return err
			}

			plan, err := scaffold.BuildPlan(spec, units)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Printf("Plan for %s (%d units):\n", plan.Entity, len(plan.Units))
				for _, unit := range plan.Units {
					fmt.Printf("  %s %s -> %s\n", color.New(color.FgBlue).Sprint("PLAN  "), unit.Name, filepath.Join(outDir, unit.Path))
				}
				return nil
			}

			result := scaffold.Generate(eng, plan)
			for _, out := range result.Outputs {
				target := filepath.Join(outDir, out.Path)
				if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
					return err
				}
				if err := os.WriteFile(target, []byte(out.Content), 0o644); err != nil {
					return err
				}
				fmt.Printf("  %s %s\n", color.New(color.FgGreen).Sprint("CREATE"), target)
			}
			for _, f := range result.Failures {
				fmt.Printf("  %s %s: [%s] %s\n", color.New(color.FgRed).Sprint("FAILED"), f.Unit, f.Kind, f.Message)
			}

			fmt.Printf("\n%s: %d generated, %d failed (run %s, %v)\n",
				plan.Entity, len(result.Outputs), len(result.Failures), result.ID, result.Duration)

			if !result.OK() {
				return fmt.Errorf("%d of %d units failed", len(result.Failures), len(plan.Units))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&specPath, "spec", "s", "entity.yaml", "entity spec YAML file")
	cmd.Flags().StringVarP(&templateDir, "templates", "t", defaultTemplateDir(), "template directory (.stub/.tmpl files)")
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "generator manifest (default: <templates>/manifest.yaml)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the plan without writing files")

	return cmd
}

// defaultTemplateDir honors the ENTFORGE_TEMPLATES env var (also settable via
// a .env file loaded at startup).
func defaultTemplateDir() string {
	if dir := os.Getenv("ENTFORGE_TEMPLATES"); dir != "" {
		return dir
	}
	return "templates"
}
