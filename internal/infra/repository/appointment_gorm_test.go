package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-appointments/internal/db/dbtest"
	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

var march15 = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newAppointment(fx dbtest.Fixtures, date time.Time, hm string) *models.Appointment {
	return &models.Appointment{
		ClientID:  fx.Client.ID,
		BarberID:  fx.Barber.ID,
		ServiceID: fx.Service.ID,
		Date:      date,
		Time:      hm,
		Revenue:   50,
	}
}

func setup(t *testing.T) (*AppointmentGormRepository, *gorm.DB, dbtest.Fixtures) {
	t.Helper()

	db := dbtest.New(t)
	return NewAppointmentGormRepository(db), db, dbtest.Seed(t, db)
}

func TestFindSlotConflict(t *testing.T) {
	repo, _, fx := setup(t)
	ctx := context.Background()

	ap := newAppointment(fx, march15, "14:30")
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	slot := domain.Slot{BarberID: fx.Barber.ID, Date: march15, Time: "14:30"}

	got, err := repo.FindSlotConflict(ctx, slot, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.Summary{ID: ap.ID, Time: "14:30"}, *got)

	got, err = repo.FindSlotConflict(ctx, slot, &ap.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	other := slot
	other.Time = "15:00"
	got, err = repo.FindSlotConflict(ctx, other, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateAppointment_UniqueSlotBackstop(t *testing.T) {
	repo, db, fx := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateAppointment(ctx, newAppointment(fx, march15, "14:30")))

	err := repo.CreateAppointment(ctx, newAppointment(fx, march15, "14:30"))
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateAppointment(t *testing.T) {
	repo, _, fx := setup(t)
	ctx := context.Background()

	first := newAppointment(fx, march15, "14:30")
	second := newAppointment(fx, march15, "15:00")
	require.NoError(t, repo.CreateAppointment(ctx, first))
	require.NoError(t, repo.CreateAppointment(ctx, second))

	second.Time = "14:30"
	assert.ErrorIs(t, repo.UpdateAppointment(ctx, second), domain.ErrSlotTaken)

	second.Time = "16:00"
	second.Revenue = 80
	require.NoError(t, repo.UpdateAppointment(ctx, second))

	got, err := repo.GetAppointment(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "16:00", got.Time)
	assert.Equal(t, 80.0, got.Revenue)

	missing := newAppointment(fx, march15, "17:00")
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.UpdateAppointment(ctx, missing), domain.ErrNotFound)
}

func TestDeleteAppointment(t *testing.T) {
	repo, _, fx := setup(t)
	ctx := context.Background()

	ap := newAppointment(fx, march15, "14:30")
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	require.NoError(t, repo.DeleteAppointment(ctx, ap.ID))
	_, err := repo.GetAppointment(ctx, ap.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteAppointment(ctx, ap.ID), domain.ErrNotFound)
}

func TestIncrementClientPoints(t *testing.T) {
	repo, db, fx := setup(t)
	ctx := context.Background()

	ok, err := repo.IncrementClientPoints(ctx, fx.Client.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	var client models.Client
	require.NoError(t, db.First(&client, "id = ?", fx.Client.ID).Error)
	assert.Equal(t, 1, client.Points)

	ok, err = repo.IncrementClientPoints(ctx, uuid.New(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCollaboratorLookups(t *testing.T) {
	repo, _, fx := setup(t)
	ctx := context.Background()

	barber, err := repo.GetBarber(ctx, fx.Barber.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos", barber.User.Name)

	_, err = repo.GetClient(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
	_, err = repo.GetBarber(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
	_, err = repo.GetService(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

func TestTransaction_RollsBack(t *testing.T) {
	repo, db, fx := setup(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.CreateAppointment(ctx, newAppointment(fx, march15, "09:00")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListAppointments(t *testing.T) {
	repo, db, fx := setup(t)
	ctx := context.Background()

	otherBarber := dbtest.SeedBarber(t, db, "Pedro", "pedro@barbearia.test")
	march14 := march15.AddDate(0, 0, -1)

	late := newAppointment(fx, march15, "16:00")
	early := newAppointment(fx, march15, "09:00")
	dayBefore := newAppointment(fx, march14, "18:00")
	others := newAppointment(fx, march15, "10:00")
	others.BarberID = otherBarber.ID

	for _, ap := range []*models.Appointment{late, early, dayBefore, others} {
		require.NoError(t, repo.CreateAppointment(ctx, ap))
	}
	require.NoError(t, db.Model(&models.Appointment{}).
		Where("id = ?", early.ID).
		Update("completed", true).Error)

	ids := func(list []models.Appointment) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(list))
		for _, ap := range list {
			out = append(out, ap.ID)
		}
		return out
	}

	all, err := repo.ListAppointments(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{dayBefore.ID, early.ID, others.ID, late.ID}, ids(all))
	assert.Equal(t, "Carlos", all[0].Barber.User.Name)
	assert.Equal(t, fx.Client.Name, all[0].Client.Name)
	assert.Equal(t, fx.Service.Name, all[0].Service.Name)

	date := march15
	byDate, err := repo.ListAppointments(ctx, domain.ListFilter{Date: &date})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{early.ID, others.ID, late.ID}, ids(byDate))

	barberID := fx.Barber.ID
	pending := false
	filtered, err := repo.ListAppointments(ctx, domain.ListFilter{
		Date:      &date,
		BarberID:  &barberID,
		Completed: &pending,
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{late.ID}, ids(filtered))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: appointments.barber_id")))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, IsForeignKeyViolation(errors.New("connection refused")))
}
