//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimestamp is returned for timestamps in none of the accepted layouts.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// LocalLayout is the layout of an HTML datetime-local input.
const LocalLayout = "2006-01-02T15:04"

// instantLayouts are tried in order. The job service returns naive ISO-8601
// timestamps, which are read in the caller's location.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	LocalLayout,
}

// Instant is a UTC point in time encoded as RFC 3339.
type Instant struct {
	time.Time
}

// NewInstant converts t to UTC.
func NewInstant(t time.Time) Instant {
	return Instant{Time: t.UTC()}
}

// ParseInstant parses s using the accepted layouts. Timestamps without a
// zone are read in loc (UTC when nil). The result is in UTC.
func ParseInstant(s string, loc *time.Location) (Instant, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return NewInstant(t), nil
		}
	}
	return Instant{}, fmt.Errorf("%w %q: expected RFC 3339 or %s", ErrInvalidTimestamp, s, LocalLayout)
}

// MarshalJSON encodes the instant as an RFC 3339 string in UTC.
func (i Instant) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts null and any of the accepted layouts.
func (i *Instant) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = Instant{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimestamp, data)
	}
	parsed, err := ParseInstant(s, time.UTC)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
