package crawl

import (
	cronlib "github.com/robfig/cron/v3"
)

// loopParser supports standard 5-field cron and descriptors like
// "@every 90s".
var loopParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// ParseSchedule parses a control-loop schedule expression.
func ParseSchedule(expr string) (cronlib.Schedule, error) {
	return loopParser.Parse(expr)
}
