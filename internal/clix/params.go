package clix

import (
	"strings"

	"github.com/spf13/pflag"
)

// ParseLimit reads an int "limit" flag, falling back to def when unset or
// not positive.
func ParseLimit(flags *pflag.FlagSet, def int) int {
	limit, _ := flags.GetInt("limit")
	if limit <= 0 {
		return def
	}
	return limit
}

// ParseList reads a comma-separated string flag into trimmed, non-empty,
// lower-cased values.
func ParseList(flags *pflag.FlagSet, name string) ([]string, error) {
	raw, err := flags.GetString(name)
	if err != nil {
		return nil, err
	}
	var values []string
	if raw != "" {
		// Trim space and filter out empty strings in one pass
		for _, v := range strings.Split(raw, ",") {
			trimmed := strings.ToLower(strings.TrimSpace(v))
			if trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	return values, nil
}

// JoinArgs joins positional arguments into one message.
func JoinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
