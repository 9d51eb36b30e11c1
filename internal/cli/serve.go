package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/avi3tal/flowguard/internal/server"
	"github.com/avi3tal/flowguard/pkg/validation"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			logger := rootOpts.Logger()
			srv := server.New(validation.New(), logger)
			if err := srv.Run(addr); err != nil {
				return errors.Wrapf(err, "serving on %s", addr)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
