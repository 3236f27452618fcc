package appointment

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Input is the raw appointment payload as received from a caller.
type Input struct {
	ClientID  string
	BarberID  string
	ServiceID string
	Date      string
	Time      string
	Revenue   *float64
}

// Fields is an Input that passed validation, with the date canonicalized
// and the time normalized to HH:MM.
type Fields struct {
	ClientID  uuid.UUID
	BarberID  uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time
	Time      string
	Revenue   float64
}

// Slot identifies one bookable (barber, date, time) triple.
type Slot struct {
	BarberID uuid.UUID
	Date     time.Time
	Time     string
}

func (f Fields) Slot() Slot {
	return Slot{BarberID: f.BarberID, Date: f.Date, Time: f.Time}
}

// Validate reports every missing field at once. When nothing is missing it
// runs the format checks and reports all of their failures together.
func (in Input) Validate() (Fields, error) {
	verr := &ValidationError{}

	required := []struct {
		field string
		value string
	}{
		{"clientId", in.ClientID},
		{"barberId", in.BarberID},
		{"serviceId", in.ServiceID},
		{"date", in.Date},
		{"time", in.Time},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.add(r.field, r.field+" is required")
		}
	}
	// A zero amount counts as missing.
	if in.Revenue == nil || *in.Revenue == 0 {
		verr.add("revenue", "revenue is required")
	}
	if err := verr.orNil(); err != nil {
		return Fields{}, err
	}

	var f Fields
	f.ClientID = parseID(verr, "clientId", in.ClientID)
	f.BarberID = parseID(verr, "barberId", in.BarberID)
	f.ServiceID = parseID(verr, "serviceId", in.ServiceID)
	f.Date = parseDate(verr, in.Date)
	f.Time = parseTime(verr, in.Time)

	revenue := *in.Revenue
	if math.IsNaN(revenue) || math.IsInf(revenue, 0) || revenue < 0 {
		verr.add("revenue", "revenue must be a non-negative number")
	}
	f.Revenue = revenue

	if err := verr.orNil(); err != nil {
		return Fields{}, err
	}
	return f, nil
}

// ValidateSlot checks the fields that identify a slot, as used by the
// availability endpoint.
func ValidateSlot(barberID, date, hm string) (Slot, error) {
	verr := &ValidationError{}

	if strings.TrimSpace(barberID) == "" {
		verr.add("barberId", "barberId is required")
	}
	if strings.TrimSpace(date) == "" {
		verr.add("date", "date is required")
	}
	if strings.TrimSpace(hm) == "" {
		verr.add("time", "time is required")
	}
	if err := verr.orNil(); err != nil {
		return Slot{}, err
	}

	slot := Slot{
		BarberID: parseID(verr, "barberId", barberID),
		Date:     parseDate(verr, date),
		Time:     parseTime(verr, hm),
	}
	if err := verr.orNil(); err != nil {
		return Slot{}, err
	}
	return slot, nil
}

// ParseID validates a single entity reference.
func ParseID(field, raw string) (uuid.UUID, error) {
	verr := &ValidationError{}
	id := parseID(verr, field, raw)
	if err := verr.orNil(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func parseID(verr *ValidationError, field, raw string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		verr.add(field, field+" must be a valid id")
		return uuid.Nil
	}
	return id
}

func parseDate(verr *ValidationError, raw string) time.Time {
	d, err := ParseDate(raw)
	if err != nil {
		verr.add("date", "date must be a valid calendar date (YYYY-MM-DD)")
	}
	return d
}

func parseTime(verr *ValidationError, raw string) string {
	raw = strings.TrimSpace(raw)
	if !timePattern.MatchString(raw) {
		verr.add("time", "time must be in HH:MM format (00:00-23:59)")
		return ""
	}
	var h, m int
	_, _ = fmt.Sscanf(raw, "%d:%d", &h, &m)
	return fmt.Sprintf("%02d:%02d", h, m)
}
