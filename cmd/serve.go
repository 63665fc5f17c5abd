package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream records over websocket and emit heartbeats.",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = application.Close(context.WithoutCancel(cmd.Context())) }()

		cfg := application.Config.Serve
		return reportRunError(application.Serve(cmd.Context(), cfg.Addr, cfg.Interval))
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8088", "Listen address")
	serveCmd.Flags().Duration("interval", 2*time.Second, "Heartbeat interval")

	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("serve.interval", serveCmd.Flags().Lookup("interval"))
}
