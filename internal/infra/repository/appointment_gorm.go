package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-appointments/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var _ domain.Repository = (*AppointmentGormRepository)(nil)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Collaborators
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrReferenceNotFound, "get client")
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&barber, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrReferenceNotFound, "get barber")
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrReferenceNotFound, "get service")
	}
	return &service, nil
}

func (r *AppointmentGormRepository) IncrementClientPoints(
	ctx context.Context,
	clientID uuid.UUID,
	delta int,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Update("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return false, domain.Infrastructure(res.Error, "increment client points")
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *AppointmentGormRepository) FindSlotConflict(
	ctx context.Context,
	slot domain.Slot,
	exclude *uuid.UUID,
) (*domain.Summary, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "slot_time").
		Where(
			"barber_id = ? AND slot_date = ? AND slot_time = ?",
			slot.BarberID,
			slot.Date,
			slot.Time,
		)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}

	var hits []models.Appointment
	if err := q.Limit(1).Find(&hits).Error; err != nil {
		return nil, domain.Infrastructure(err, "find slot conflict")
	}
	if len(hits) == 0 {
		return nil, nil
	}

	return &domain.Summary{ID: hits[0].ID, Time: hits[0].Time}, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound, "get appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound, "lock appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error
	return writeError(err, "create appointment")
}

// UpdateAppointment writes every mutable column of ap. Associations are
// never touched.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{ID: ap.ID}).
		Updates(map[string]any{
			"client_id":    ap.ClientID,
			"barber_id":    ap.BarberID,
			"service_id":   ap.ServiceID,
			"slot_date":    ap.Date,
			"slot_time":    ap.Time,
			"revenue":      ap.Revenue,
			"completed":    ap.Completed,
			"completed_at": ap.CompletedAt,
		})
	if res.Error != nil {
		return writeError(res.Error, "update appointment")
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uuid.UUID,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return domain.Infrastructure(res.Error, "delete appointment")
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Read side
// --------------------------------------------------

func (r *AppointmentGormRepository) withDisplay() *gorm.DB {
	return r.db.
		Preload("Client").
		Preload("Barber.User").
		Preload("Service")
}

func (r *AppointmentGormRepository) LoadAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withDisplay().
		WithContext(ctx).
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound, "load appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.withDisplay().WithContext(ctx)

	if filter.Date != nil {
		q = q.Where("slot_date = ?", *filter.Date)
	}
	if filter.BarberID != nil {
		q = q.Where("barber_id = ?", *filter.BarberID)
	}
	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}

	var list []models.Appointment
	if err := q.
		Order("slot_date ASC").
		Order("slot_time ASC").
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, domain.Infrastructure(err, "list appointments")
	}
	return list, nil
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

func notFound(err error, sentinel error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return domain.Infrastructure(err, op)
}

func writeError(err error, op string) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return domain.Infrastructure(err, op)
}

// IsUniqueViolation recognises a unique index rejection from either driver,
// translated or not.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation recognises a write rejected because other rows still
// reference the record.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
