package main

import (
	"github.com/spf13/cobra"

	linesections "github.com/theoremus-urban-solutions/line-sections"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lines API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.closer()
			if port > 0 {
				a.cfg.Server.Port = port
			}

			srv := linesections.NewServer(a.cfg, a.svc, a.log)
			srv.Start()
			return srv.HandleGracefulShutdown(cmd.Context())
		},
	}
	c.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	return c
}
