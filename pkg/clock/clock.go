package clock

import (
	"fmt"
	"time"
)

// DateLayout is the civil-date format used for delivery and meal dates.
const DateLayout = "2006-01-02"

// Clock supplies civil time in the business timezone. All cutoff math is
// timezone-sensitive, so services never call time.Now directly.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Today returns the current civil date in the clock's timezone.
func Today(c Clock) string {
	return c.Now().In(c.Location()).Format(DateLayout)
}

// DeliveryAt resolves a (date, HH:MM) pair to an instant in the clock's timezone.
func DeliveryAt(c Clock, date, hhmm string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" 15:04", date+" "+hhmm, c.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid delivery time %q %q: %w", date, hhmm, err)
	}
	return t, nil
}

// ParseHHMM validates a wall-clock time string.
func ParseHHMM(hhmm string) error {
	if _, err := time.Parse("15:04", hhmm); err != nil {
		return fmt.Errorf("invalid time %q, want HH:MM: %w", hhmm, err)
	}
	return nil
}

// ParseDate validates a civil date string.
func ParseDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", date, err)
	}
	return nil
}

type business struct {
	loc *time.Location
}

// New returns a Clock fixed to the named IANA timezone.
func New(tz string) (Clock, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	return &business{loc: loc}, nil
}

func (b *business) Now() time.Time            { return time.Now().In(b.loc) }
func (b *business) Location() *time.Location { return b.loc }

// Fixed is a test clock pinned to one instant.
type Fixed struct {
	T   time.Time
	Loc *time.Location
}

func (f Fixed) Now() time.Time { return f.T.In(f.Location()) }

func (f Fixed) Location() *time.Location {
	if f.Loc != nil {
		return f.Loc
	}
	return time.UTC
}
