package normalizer

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrUnparsedDate marks a timestamp the parser could not recognize in any of
// the source's known shapes.
var ErrUnparsedDate = errors.New("unparsed date")

// dayFirstLayouts cover the source's rendered date formats. The feed proper
// ships unix timestamps; these appear on standings and bracket pages.
var dayFirstLayouts = []string{
	"02.01.2006 15:04",
	"02.01.2006",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// textualMonths maps the source's localized month abbreviations, English and
// French, to month numbers.
var textualMonths = map[string]time.Month{
	"jan": time.January, "janv": time.January,
	"feb": time.February, "fevr": time.February, "févr": time.February,
	"mar": time.March, "mars": time.March,
	"apr": time.April, "avr": time.April,
	"may": time.May, "mai": time.May,
	"jun": time.June, "juin": time.June,
	"jul": time.July, "juil": time.July,
	"aug": time.August, "aout": time.August, "août": time.August,
	"sep": time.September, "sept": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December, "déc": time.December,
}

// parseKickoff reads the match timestamp from whichever field the source
// provided: a unix timestamp under "start_timestamp", or a rendered date
// string under "date".
func parseKickoff(fields map[string]any) (time.Time, error) {
	if raw, ok := fields["start_timestamp"]; ok && raw != nil {
		ts, err := unixTimestamp(raw)
		if err != nil {
			return time.Time{}, reject(CategoryMatch, "start_timestamp", err.Error())
		}
		return ts, nil
	}

	raw := stringField(fields, "date")
	if raw == "" {
		return time.Time{}, reject(CategoryMatch, "date", "missing timestamp")
	}
	ts, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, reject(CategoryMatch, "date", err.Error())
	}
	return ts, nil
}

func unixTimestamp(raw any) (time.Time, error) {
	var seconds int64
	switch v := raw.(type) {
	case int:
		seconds = int64(v)
	case int64:
		seconds = v
	case float64:
		seconds = int64(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return time.Time{}, errors.Wrapf(ErrUnparsedDate, "not a unix timestamp: %q", v)
		}
		seconds = parsed
	default:
		return time.Time{}, errors.Wrapf(ErrUnparsedDate, "unsupported timestamp type %T", raw)
	}
	if seconds <= 0 {
		return time.Time{}, errors.Wrapf(ErrUnparsedDate, "non-positive unix timestamp %d", seconds)
	}
	return time.Unix(seconds, 0).UTC(), nil
}

// ParseDate parses the source's rendered date strings. Numeric dates are
// day-first ("15.03.2026"); textual months may be English or French
// abbreviations ("15 mars 2026").
func ParseDate(raw string) (time.Time, error) {
	cleaned := strings.Join(strings.Fields(raw), " ")
	if cleaned == "" {
		return time.Time{}, errors.Wrap(ErrUnparsedDate, "empty date string")
	}

	for _, layout := range dayFirstLayouts {
		if ts, err := time.Parse(layout, cleaned); err == nil {
			return ts.UTC(), nil
		}
	}

	if ts, ok := parseTextualDate(cleaned); ok {
		return ts, nil
	}

	return time.Time{}, errors.Wrapf(ErrUnparsedDate, "unrecognized date %q", raw)
}

// parseTextualDate handles "15 mars 2026" and "15 Mar 2026 18:30" shapes.
func parseTextualDate(cleaned string) (time.Time, bool) {
	parts := strings.Fields(cleaned)
	if len(parts) < 3 || len(parts) > 4 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(strings.TrimSuffix(parts[0], "."))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	monthKey := strings.ToLower(strings.TrimSuffix(parts[1], "."))
	month, ok := textualMonths[monthKey]
	if !ok {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 1900 {
		return time.Time{}, false
	}

	hour, minute := 0, 0
	if len(parts) == 4 {
		clock, err := time.Parse("15:04", parts[3])
		if err != nil {
			return time.Time{}, false
		}
		hour, minute = clock.Hour(), clock.Minute()
	}

	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC), true
}
