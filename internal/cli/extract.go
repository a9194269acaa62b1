package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kolah/restdoc/internal/apidoc"
	"github.com/kolah/restdoc/internal/config"
	"github.com/kolah/restdoc/internal/loader"
	"github.com/kolah/restdoc/internal/render"
)

func ExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [packages...]",
		Short: "Extract endpoints and models from annotated packages",
		Long: `Extract loads the given Go packages, collects every type carrying a
//restdoc:path directive and documents its operations together with the
models they reach.`,
		RunE: runExtract,
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd, args)
	if err != nil {
		return err
	}

	result, err := load(cmd, cfg)
	if err != nil {
		return err
	}
	cmd.PrintErrf("Loaded %d packages\n", len(result.Packages))
	cmd.PrintErrf("  Resources: %d\n", len(result.Resources))

	gen, err := apidoc.New(cfg, newLogger(cmd))
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}

	doc, err := gen.Generate(cmd.Context(), result.Resources)
	if err != nil {
		return fmt.Errorf("generating documentation: %w", err)
	}
	cmd.PrintErrf("  Endpoints: %d\n", len(doc.Endpoints()))
	cmd.PrintErrf("  Models: %d\n", len(doc.Models))

	return writeOutput(cmd, cfg, func(w io.Writer, r *render.Renderer, f render.Format) error {
		return r.Document(w, f, doc)
	})
}

func load(cmd *cobra.Command, cfg *config.Config) (*loader.Result, error) {
	result, err := loader.Load(cmd.Context(), loader.Options{
		Dir:              cfg.Dir,
		Patterns:         cfg.Packages,
		InjectedTypes:    cfg.InjectedTypes,
		ReservedPackages: cfg.ReservedPackages,
	})
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	return result, nil
}

// writeOutput renders into memory first so that a failed render never
// leaves a truncated file behind.
func writeOutput(cmd *cobra.Command, cfg *config.Config, emit func(io.Writer, *render.Renderer, render.Format) error) error {
	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg.Templates.Dir)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := emit(&buf, renderer, format); err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun || cfg.Output.File == "" {
		_, err := buf.WriteTo(cmd.OutOrStdout())
		return err
	}

	path := cfg.Output.File
	if filepath.Ext(path) == "" {
		path += format.Extension()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	cmd.PrintErrf("Written: %s\n", path)

	return nil
}
