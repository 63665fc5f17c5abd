package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/errors"
	"github.com/olusolaa/hilog/pkg/reflectutil"
)

const contentSeparator = ";"

// renderBody turns the call's contents into the record message. Structured
// values go through the configured JSON parser even when they implement
// fmt.Stringer; without one, or when it fails, they fall back to the default
// %+v formatting.
func (m *Manager) renderBody(cfg domain.LogConfig, contents []any) string {
	switch len(contents) {
	case 0:
		return ""
	case 1:
		return m.renderValue(cfg.Parser(), contents[0])
	}

	parts := make([]string, len(contents))
	for i, c := range contents {
		parts[i] = m.renderValue(cfg.Parser(), c)
	}
	return strings.Join(parts, contentSeparator)
}

func (m *Manager) renderValue(parser domain.JSONParser, v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return val
	case []byte:
		return string(val)
	case error:
		return val.Error()
	}

	if !reflectutil.IsStructured(v) {
		return fmt.Sprint(v)
	}
	if parser != nil {
		s, err := parser(v)
		if err == nil {
			return s
		}
		m.logger.Debugf(context.Background(), "%v",
			errors.Wrap(err, errors.CodeSerialization, fmt.Sprintf("json parser failed for %T, using default formatting", v)))
	}
	return fmt.Sprintf("%+v", v)
}
