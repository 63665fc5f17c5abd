package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/olusolaa/hilog/internal/app"
)

var (
	demoOverride string
	demoTag      string
)

var demoCmd = &cobra.Command{
	Use:   "demo [message...]",
	Short: "Log through a per-call override and show the overlay.",
	Long: `Opens the log overlay, logs the messages at ERROR with the given
per-call override, logs a fixed ASSERT record through the global config
and prints the overlay panel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = application.Close(context.WithoutCancel(cmd.Context())) }()

		return reportRunError(application.RunDemo(cmd.Context(), cmd.OutOrStdout(), app.DemoOptions{
			Override: demoOverride,
			Tag:      demoTag,
			Messages: args,
		}))
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoOverride, "override", app.DefaultDemoOverride,
		`Per-call override, e.g. "thread=true;depth=0;tag=----;level=error"`)
	demoCmd.Flags().StringVar(&demoTag, "tag", app.DefaultDemoTag, "Tag of the demo record")
}
