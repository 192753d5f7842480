package layout

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches any *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid worksheet configuration")

// ConfigurationError reports a cell or page setting that cannot be laid out.
type ConfigurationError struct {
	Field  string // "cell.size", "cell.margin", "page.width", ...
	Value  Length
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("配置无效 %s=%s: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErr(field string, v Length, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: v, Reason: fmt.Sprintf(format, args...)}
}
