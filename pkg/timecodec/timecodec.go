package timecodec

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// Layouts accepted for user-supplied local times and the one produced when
// rendering an instant back into a local wall-clock string.
const (
	layoutMinute = "2006-01-02 15:04"
	layoutSecond = "2006-01-02 15:04:05"

	// WireUTC is the serialized form of a stored instant: millisecond
	// precision with a literal Z suffix.
	WireUTC = "2006-01-02T15:04:05.000Z"
)

var offsetPattern = regexp.MustCompile(`^[+-]\d{2}:\d{2}$`)

var (
	ErrBadOffset    = errors.New("timecodec: offset must match ±HH:MM")
	ErrBadLocalTime = errors.New("timecodec: local time must match YYYY-MM-DD HH:MM[:SS]")
)

// OffsetMinutes parses a signed ±HH:MM offset into minutes east of UTC.
// Offsets are raw numeric shifts; no timezone-name resolution happens here.
func OffsetMinutes(offset string) (int, error) {
	if !offsetPattern.MatchString(offset) {
		return 0, ErrBadOffset
	}
	hours, _ := strconv.Atoi(offset[1:3])
	minutes, _ := strconv.Atoi(offset[4:6])
	total := hours*60 + minutes
	if offset[0] == '-' {
		total = -total
	}
	return total, nil
}

// ToUTC converts a naive local wall-clock time plus a UTC offset into the
// absolute instant it denotes: UTC = local - offset.
func ToUTC(local, offset string) (time.Time, error) {
	shift, err := OffsetMinutes(offset)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(layoutSecond, local)
	if err != nil {
		t, err = time.Parse(layoutMinute, local)
		if err != nil {
			return time.Time{}, ErrBadLocalTime
		}
	}
	return t.Add(-time.Duration(shift) * time.Minute), nil
}

// ToLocal renders an instant as the wall-clock time seen at the given offset:
// local = UTC + offset. Seconds are dropped from the output.
func ToLocal(t time.Time, offset string) (string, error) {
	shift, err := OffsetMinutes(offset)
	if err != nil {
		return "", err
	}
	return t.UTC().Add(time.Duration(shift) * time.Minute).Format(layoutMinute), nil
}

// FormatUTC renders a stored instant in the API wire form.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(WireUTC)
}
