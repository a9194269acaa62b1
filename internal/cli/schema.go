package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kolah/restdoc/internal/apidoc"
	"github.com/kolah/restdoc/internal/config"
	"github.com/kolah/restdoc/internal/render"
)

func SchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <package> <type>",
		Short: "Print the models reachable from one type",
		Args:  cobra.ExactArgs(2),
		RunE:  runSchema,
	}
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd, args[:1])
	if err != nil {
		return err
	}

	result, err := load(cmd, cfg)
	if err != nil {
		return err
	}

	root, err := result.LookupType(args[1])
	if err != nil {
		return err
	}

	gen, err := apidoc.New(cfg, newLogger(cmd))
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}

	schemas := gen.Schemas(root)
	cmd.PrintErrf("Models reachable from %s: %d\n", root.QualifiedName(), len(schemas))

	return writeOutput(cmd, cfg, func(w io.Writer, r *render.Renderer, f render.Format) error {
		return r.Schemas(w, f, schemas)
	})
}
