package record

import "time"

// LocaleDate renders t the way en-US short dates read, e.g. 10/18/2026.
func LocaleDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// LocaleDateTime renders t as an en-US date and 12-hour time, e.g. 10/18/2026, 3:04:05 PM.
func LocaleDateTime(t time.Time) string {
	return t.Format("1/2/2006, 3:04:05 PM")
}

// LocaleTime renders only the 12-hour clock part of t.
func LocaleTime(t time.Time) string {
	return t.Format("3:04:05 PM")
}

// ISO renders t in RFC 3339 UTC with millisecond precision.
func ISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
