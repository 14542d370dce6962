package galaxy

import "fmt"

// Status is the lifecycle stage of an idea. It drives the star's colour,
// size and brightness.
type Status string

// Known statuses, in lifecycle order.
const (
	StatusSpark      Status = "spark"
	StatusDeveloping Status = "developing"
	StatusRefined    Status = "refined"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

// Statuses returns every known status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusSpark, StatusDeveloping, StatusRefined, StatusCompleted, StatusArchived}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusSpark, StatusDeveloping, StatusRefined, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Next returns the following status in lifecycle order, wrapping around.
func (s Status) Next() Status {
	all := Statuses()
	for i, st := range all {
		if st == s {
			return all[(i+1)%len(all)]
		}
	}
	return StatusSpark
}

// Public reports whether ideas in this status appear on shared profiles.
func (s Status) Public() bool {
	return s == StatusRefined || s == StatusCompleted
}

// ParseStatus converts a string into a Status. The empty string maps to spark.
func ParseStatus(v string) (Status, error) {
	if v == "" {
		return StatusSpark, nil
	}
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}

// BrightnessFor returns the brightness assigned to ideas in status s.
func BrightnessFor(s Status) float64 {
	switch s {
	case StatusSpark:
		return 0.3
	case StatusDeveloping:
		return 0.5
	case StatusRefined:
		return 0.7
	case StatusCompleted:
		return 1.0
	case StatusArchived:
		return 0.2
	}
	return 0.5
}
