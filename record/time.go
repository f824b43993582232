package record

import (
	"fmt"
	"time"
)

// Timestamps arrive in several near-ISO-8601 shapes, with and without zone
// designators and sub-second digits, so parsing is lenient and multi-format.
// Values are carried in UTC at microsecond precision, the precision the
// documents are written with.

// MetadataTimeLayout is the canonical layout timestamps are written with:
// UTC, fixed six-digit fractional seconds, no zone designator.
const MetadataTimeLayout = "2006-01-02T15:04:05.000000"

var metadataTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseMetadataTime is a drop-in replacement for time.Parse, but matching
// against multiple possible metadata time formats. The result is normalized
// to UTC at microsecond precision.
func ParseMetadataTime(input string) (parsedTime time.Time, err error) {
	for _, layout := range metadataTimeLayouts {
		parsedTime, err = time.Parse(layout, input)
		if err == nil {
			parsedTime = NormalizeTime(parsedTime)
			return
		}
	}
	parsedTime = time.Time{}
	err = fmt.Errorf("Date could not be parsed by any expected time format: `%s`", input)
	return
}

// FormatMetadataTime writes a timestamp in the canonical metadata layout.
func FormatMetadataTime(t time.Time) string {
	return t.UTC().Format(MetadataTimeLayout)
}

// NormalizeTime converts a timestamp to the canonical UTC microsecond form.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Now returns the current time in the canonical UTC microsecond form.
func Now() time.Time {
	return NormalizeTime(time.Now())
}
