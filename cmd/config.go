package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/olusolaa/hilog/internal/config"
	apperrors "github.com/olusolaa/hilog/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Decode(viper.GetViper())
		if err != nil {
			return reportRunError(err)
		}
		if err := config.Validate(cmd.Context(), cfg); err != nil {
			return reportRunError(err)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode configuration")
		}
		return enc.Close()
	},
}
