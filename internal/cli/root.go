package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kolah/restdoc/internal/config"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "restdoc",
		Short:   "restdoc - REST API documentation from annotated Go packages",
		Version: "1.0.0",

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindCommonFlags(root)
	root.AddCommand(ExtractCommand(), SchemaCommand())

	return root
}

// newLogger returns a debug logger on stderr when --verbose is set, and nil
// otherwise.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}
