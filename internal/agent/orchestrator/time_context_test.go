package orchestrator

import (
	"strings"
	"testing"
	"time"
)

func TestBuildTimeContext(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 30, 0, 0, time.FixedZone("ICT", 7*3600))
	context := buildTimeContext(now, "2024-03-05T08:30:00+07:00", "alice")

	if !strings.Contains(context, "SYSTEM CONTEXT") {
		t.Error("Context should contain 'SYSTEM CONTEXT'")
	}
	if !strings.Contains(context, "Server time (UTC): 2024-03-05T01:30:00Z") {
		t.Errorf("Context should contain the UTC server time: %q", context)
	}
	if !strings.Contains(context, "Request timestamp: 2024-03-05T08:30:00+07:00") {
		t.Error("Context should contain the request timestamp")
	}
	if !strings.Contains(context, "Authenticated GitHub user: alice") {
		t.Error("Context should contain the login")
	}
}

func TestBuildTimeContext_MissingValues(t *testing.T) {
	context := buildTimeContext(time.Now(), "", "")

	if strings.Count(context, "unknown") != 2 {
		t.Errorf("expected placeholders for missing values, got %q", context)
	}
}
