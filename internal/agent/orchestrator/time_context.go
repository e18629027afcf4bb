package orchestrator

import (
	"fmt"
	"time"
)

// buildTimeContext creates the per-turn context block appended to the
// system prompt.
func buildTimeContext(now time.Time, requestTimestamp, login string) string {
	if requestTimestamp == "" {
		requestTimestamp = "unknown"
	}
	if login == "" {
		login = "unknown"
	}
	return fmt.Sprintf(
		TimeContextTemplate,
		now.UTC().Format(time.RFC3339),
		requestTimestamp,
		login,
	)
}
