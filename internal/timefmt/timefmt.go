// Package timefmt parses the ISO-8601 timestamps produced by the usage
// fetcher and renders countdowns and reset times for display. Parsing is
// deliberately lenient: a timestamp that cannot be understood yields
// ok=false, and callers treat that as "omit", never as an error.
package timefmt

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const naiveLayout = "2006-01-02T15:04:05"

var (
	fracRe   = regexp.MustCompile(`\.\d+`)
	offsetRe = regexp.MustCompile(`[+-]\d{2}:?\d{2}$`)
)

// permissiveLayouts are tried in order when the strict naive layout fails.
var permissiveLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse accepts an ISO-8601 datetime that may carry fractional seconds
// and/or a numeric UTC offset. Both are stripped before parsing against the
// fixed local-naive layout; a set of more permissive layouts is tried as a
// fallback. The wall-clock fields are interpreted in local time.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	s = fracRe.ReplaceAllString(s, "")
	s = strings.TrimSuffix(s, "Z")
	s = offsetRe.ReplaceAllString(s, "")

	if t, err := time.ParseInLocation(naiveLayout, s, time.Local); err == nil {
		return t, true
	}
	for _, layout := range permissiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Countdown renders the time until target as a compact three-tier string:
// "2d3h", "5h12m", or "8m". A target not strictly in the future yields
// ok=false.
func Countdown(target, now time.Time) (string, bool) {
	remain := target.Sub(now)
	if remain <= 0 {
		return "", false
	}
	secs := int64(remain / time.Second)
	switch {
	case secs >= 86400:
		return fmt.Sprintf("%dd%dh", secs/86400, secs%86400/3600), true
	case secs >= 3600:
		return fmt.Sprintf("%dh%dm", secs/3600, secs%3600/60), true
	default:
		return fmt.Sprintf("%dm", secs/60), true
	}
}

// CountdownVerbose is Countdown spelled out for the dashboard:
// "2 days and 3 hours", "5 hours and 12 minutes", "8 minutes".
func CountdownVerbose(target, now time.Time) (string, bool) {
	remain := target.Sub(now)
	if remain <= 0 {
		return "", false
	}
	secs := int64(remain / time.Second)
	switch {
	case secs >= 86400:
		return plural(secs/86400, "day") + " and " + plural(secs%86400/3600, "hour"), true
	case secs >= 3600:
		return plural(secs/3600, "hour") + " and " + plural(secs%3600/60, "minute"), true
	default:
		return plural(secs/60, "minute"), true
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// ResetLine renders a human reset description for the dashboard, e.g.
//
//	Resets in 3 hours and 14 minutes at 2am (America/New_York)
//	Resets in 1 day and 2 hours on Mar 4 (Europe/Oslo)
//
// A target at exactly local midnight is treated as date-only. The calendar
// date is appended only when the target falls on neither today nor tomorrow.
func ResetLine(target, now time.Time) string {
	loc := target.Location()
	zone := loc.String()
	countdown, haveCountdown := CountdownVerbose(target, now)
	date := target.Format("Jan 2")

	if target.Hour() == 0 && target.Minute() == 0 {
		if haveCountdown {
			return fmt.Sprintf("Resets in %s on %s (%s)", countdown, date, zone)
		}
		return fmt.Sprintf("Resets on %s (%s)", date, zone)
	}

	clock := target.Format("3:04pm")
	if target.Minute() == 0 {
		clock = target.Format("3pm")
	}

	when := "at " + clock
	if !sameDate(target, now.In(loc)) && !sameDate(target, now.In(loc).AddDate(0, 0, 1)) {
		when += " on " + date
	}

	if haveCountdown {
		return fmt.Sprintf("Resets in %s %s (%s)", countdown, when, zone)
	}
	return fmt.Sprintf("Resets %s (%s)", when, zone)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
