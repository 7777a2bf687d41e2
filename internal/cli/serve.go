package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/internal/server"
	"github.com/matzehuels/mondrian/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compositions over HTTP",
		Long: `Serve starts an HTTP server that renders compositions on request.

Routes:
  GET /v1/mondrian.{svg,png,json}?seed=&size=&step=&strategy=
  GET /v1/seed
  GET /healthz
  GET /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			srvCfg := server.Config{
				Addr:     cfg.Server.Addr,
				Defaults: cfg,
				Logger:   c.Logger,
			}
			if !noMetrics {
				metrics, err := server.NewMetrics(server.MetricsConfig{})
				if err != nil {
					return err
				}
				observability.SetPipelineHooks(metrics)
				observability.SetSeedHooks(metrics)
				observability.SetHTTPHooks(metrics)
				defer observability.Reset()
				srvCfg.Metrics = metrics
			}

			printInfo("Listening on %s", StyleValue.Render(cfg.Server.Addr))
			return server.New(srvCfg).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable /metrics and prometheus collection")

	return cmd
}
