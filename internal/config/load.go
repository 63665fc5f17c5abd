package config

import (
	"context"
	stderrs "errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/errors"
)

// Decode unmarshals everything viper knows (file, env, bound flags) over the
// defaults.
func Decode(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		LevelHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigParseError,
			"failed to unmarshal configuration", "Check the types of the values in your configuration file.")
	}
	return cfg, nil
}

// LevelHookFunc decodes level names ("error", "E") and Android priorities
// (2..7) into domain.Level. Priorities may arrive as strings from env vars
// and flags.
func LevelHookFunc() mapstructure.DecodeHookFuncType {
	levelType := reflect.TypeOf(domain.Level(0))
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != levelType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return priority(n)
			}
			return domain.ParseLevel(v)
		case int:
			return priority(v)
		case int64:
			return priority(int(v))
		case float64:
			return priority(int(v))
		}
		return data, nil
	}
}

func priority(n int) (domain.Level, error) {
	l := domain.Level(n)
	if !l.Valid() {
		return 0, fmt.Errorf("log priority %d out of range %d..%d", n, domain.LevelVerbose, domain.LevelAssert)
	}
	return l, nil
}

// Validate checks cfg and returns a user-facing error listing every failed
// field.
func Validate(ctx context.Context, cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(ctx, cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrs.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeConfigValidation, "configuration validation failed")
	}

	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file or flags.")
}
