package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
)

// parseSnowflakeID parses a path id. Anything that cannot name a row,
// including the zero id, reports ErrNotFound so handlers map it straight
// to a 404.
func parseSnowflakeID(value string) (snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, ErrNotFound
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed == 0 {
		return 0, ErrNotFound
	}
	return parsed, nil
}
