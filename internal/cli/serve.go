package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/c4dgml/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP API",
		Long: `Run the conversion HTTP API.

Routes:
  GET  /healthz      liveness probe
  POST /v1/convert   convert the workspace in the request body

Example:
  curl --data-binary @workspace.json 'localhost:8080/v1/convert?format=svg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Serve.Addr
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Config{
				Addr:           addr,
				MaxBodyBytes:   cfg.Serve.MaxBodyBytes,
				RequestTimeout: cfg.Serve.RequestTimeout,
			})
			printInfo(cmd.OutOrStdout(), "Serving on %s", StyleHighlight.Render(srv.Addr()))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
