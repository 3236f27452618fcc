package appointment

import (
	"strings"

	"github.com/google/uuid"
)

type AvailabilityInput struct {
	BarberID             string
	Date                 string
	Time                 string
	ExcludeAppointmentID string
}

type AvailabilityResult struct {
	Available bool     `json:"available"`
	Conflict  *Summary `json:"conflictingAppointment"`
}

// Validate returns the slot to check and the appointment to ignore, if any.
func (in AvailabilityInput) Validate() (Slot, *uuid.UUID, error) {
	slot, err := ValidateSlot(in.BarberID, in.Date, in.Time)
	if err != nil {
		return Slot{}, nil, err
	}

	if strings.TrimSpace(in.ExcludeAppointmentID) == "" {
		return slot, nil, nil
	}
	id, err := ParseID("excludeAppointmentId", in.ExcludeAppointmentID)
	if err != nil {
		return Slot{}, nil, err
	}
	return slot, &id, nil
}

// ListQuery holds the raw list filters from a query string. Empty values
// are treated as absent.
type ListQuery struct {
	Date      string
	BarberID  string
	Completed string
}

func (q ListQuery) Filter() (ListFilter, error) {
	verr := &ValidationError{}
	var f ListFilter

	if strings.TrimSpace(q.Date) != "" {
		d := parseDate(verr, q.Date)
		f.Date = &d
	}
	if strings.TrimSpace(q.BarberID) != "" {
		id := parseID(verr, "barberId", q.BarberID)
		f.BarberID = &id
	}
	switch strings.TrimSpace(q.Completed) {
	case "":
	case "true":
		v := true
		f.Completed = &v
	case "false":
		v := false
		f.Completed = &v
	default:
		verr.add("completed", `completed must be "true" or "false"`)
	}

	if err := verr.orNil(); err != nil {
		return ListFilter{}, err
	}
	return f, nil
}
