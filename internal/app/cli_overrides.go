package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/errors"
)

// parseOverride turns "thread=true;depth=0;tag=----;level=error" into a
// per-call override. Unknown keys and malformed values are rejected.
func parseOverride(override string) (*domain.Override, error) {
	override = strings.TrimSpace(override)
	if override == "" {
		return nil, nil
	}

	var opts []domain.OverrideOption
	for _, pair := range strings.Split(override, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, invalidOverride(pair, "expected key=value")
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "thread":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, invalidOverride(pair, "thread must be true or false")
			}
			opts = append(opts, domain.WithIncludeThread(b))
		case "depth":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, invalidOverride(pair, "depth must be an integer")
			}
			opts = append(opts, domain.WithStackTraceDepth(n))
		case "tag":
			opts = append(opts, domain.WithTag(value))
		case "level":
			lvl, err := domain.ParseLevel(value)
			if err != nil {
				return nil, invalidOverride(pair, "unknown level")
			}
			opts = append(opts, domain.WithMinLevel(lvl))
		case "enabled":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, invalidOverride(pair, "enabled must be true or false")
			}
			opts = append(opts, domain.WithEnabled(b))
		default:
			return nil, invalidOverride(pair, fmt.Sprintf("unknown key %q", key))
		}
	}
	if len(opts) == 0 {
		return nil, nil
	}
	return domain.NewOverride(opts...), nil
}

func invalidOverride(pair, reason string) error {
	return errors.NewUserFacing(errors.CodeConfigValidation,
		fmt.Sprintf("invalid override %q: %s", pair, reason),
		"Use keys thread, depth, tag, level and enabled, e.g. \"thread=true;depth=0;level=error\"")
}
