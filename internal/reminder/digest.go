package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/gravityless/internal/events"
	"github.com/rgehrsitz/gravityless/internal/output"
	"github.com/shopspring/decimal"
)

// Digest renders the upcoming events for one recipient. Callers skip empty event lists.
func Digest(to string, list []events.Event, windowDays int, now time.Time) Message {
	total := decimal.Zero
	for _, e := range list {
		total = total.Add(e.Amount)
	}

	noun := "events"
	if len(list) == 1 {
		noun = "event"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Upcoming payouts and maturities for the next %d days (as of %s):\n\n", windowDays, now.Format("2006-01-02"))
	for _, e := range list {
		fmt.Fprintf(&b, "  %s  %-36s %14s  (%s)\n", e.Date.Format("02 Jan 2006"), e.Title, output.FormatCurrency(e.Amount), dueIn(e.DaysUntil))
	}
	fmt.Fprintf(&b, "\nTotal expected: %s\n", output.FormatCurrency(total))

	return Message{
		To:      to,
		Subject: fmt.Sprintf("%d upcoming %s, %s expected", len(list), noun, output.FormatCurrency(total)),
		Body:    b.String(),
	}
}

func dueIn(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
