package helpers

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string such as "90s" or "1m". An empty or
// unparsable value yields def.
func ParseDuration(durationStr string, def time.Duration) time.Duration {
	durationStr = strings.TrimSpace(durationStr)
	if durationStr == "" {
		return def
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil || duration <= 0 {
		// global logger, config may not have configured one yet
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return duration
}
