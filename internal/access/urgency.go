package access

import (
	"fmt"
	"strings"
	"time"
)

const StatusActive = "active"

const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

var mostUrgentFirst = []string{UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow}

var urgencyRank = map[string]int{
	UrgencyLow:      1,
	UrgencyMedium:   2,
	UrgencyHigh:     3,
	UrgencyCritical: 4,
}

// urgencyOrderSQL is the SQL form of UrgencyRank, highest rank first.
var urgencyOrderSQL = func() string {
	var b strings.Builder
	b.WriteString("CASE urgency")
	for _, u := range mostUrgentFirst {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", u, urgencyRank[u])
	}
	b.WriteString(" ELSE 0 END DESC")
	return b.String()
}()

// UrgencyRank is the ordinal used for feed ordering; unknown values sort last.
func UrgencyRank(urgency string) int {
	return urgencyRank[urgency]
}

// Visible is the in-memory form of EmergencyFeed.
func Visible(status string, expiresAt, now time.Time) bool {
	return status == StatusActive && expiresAt.After(now)
}
