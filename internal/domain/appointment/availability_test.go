package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityInput_Validate(t *testing.T) {
	barberID := uuid.New()
	excludeID := uuid.New()

	slot, exclude, err := AvailabilityInput{
		BarberID: barberID.String(),
		Date:     "2024-03-15",
		Time:     "14:30",
	}.Validate()
	require.NoError(t, err)
	assert.Nil(t, exclude)
	assert.Equal(t, barberID, slot.BarberID)

	_, exclude, err = AvailabilityInput{
		BarberID:             barberID.String(),
		Date:                 "2024-03-15",
		Time:                 "14:30",
		ExcludeAppointmentID: excludeID.String(),
	}.Validate()
	require.NoError(t, err)
	require.NotNil(t, exclude)
	assert.Equal(t, excludeID, *exclude)

	_, _, err = AvailabilityInput{
		BarberID:             barberID.String(),
		Date:                 "2024-03-15",
		Time:                 "14:30",
		ExcludeAppointmentID: "not-an-id",
	}.Validate()
	assert.Equal(t, []string{"excludeAppointmentId"}, fieldsOf(t, err))
}

func TestListQuery_Filter(t *testing.T) {
	f, err := ListQuery{}.Filter()
	require.NoError(t, err)
	assert.Equal(t, ListFilter{}, f)

	barberID := uuid.New()
	f, err = ListQuery{
		Date:      "2024-03-15T23:10:00Z",
		BarberID:  barberID.String(),
		Completed: "false",
	}.Filter()
	require.NoError(t, err)
	require.NotNil(t, f.Date)
	assert.True(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC).Equal(*f.Date))
	assert.Equal(t, barberID, *f.BarberID)
	assert.False(t, *f.Completed)

	f, err = ListQuery{Completed: "true"}.Filter()
	require.NoError(t, err)
	assert.True(t, *f.Completed)
}

func TestListQuery_FilterRejectsMalformed(t *testing.T) {
	_, err := ListQuery{Date: "yesterday", BarberID: "7", Completed: "yes"}.Filter()
	assert.Equal(t, []string{"date", "barberId", "completed"}, fieldsOf(t, err))
}
