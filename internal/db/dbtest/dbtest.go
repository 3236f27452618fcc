// Package dbtest opens throwaway sqlite databases and seeds the collaborator
// records appointments point to.
package dbtest

import (
	"testing"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-appointments/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-appointments/internal/db"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := dbpkg.Open(config.NewTestConfig().DB)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = dbpkg.Close(db)
	})
	return db
}

func SeedClient(t testing.TB, db *gorm.DB, name string) models.Client {
	t.Helper()

	client := models.Client{Name: name, Phone: "11999990000"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func SeedBarber(t testing.TB, db *gorm.DB, name, email string) models.Barber {
	t.Helper()

	barber := models.Barber{
		User: models.User{
			Name:  name,
			Email: email,
			Role:  models.RoleBarber,
		},
		Specialties: []string{"corte"},
		Available:   true,
	}
	if err := db.Create(&barber).Error; err != nil {
		t.Fatalf("seed barber: %v", err)
	}
	return barber
}

func SeedService(t testing.TB, db *gorm.DB, name string, price float64, duration int) models.Service {
	t.Helper()

	service := models.Service{Name: name, Price: price, Duration: duration}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return service
}

// Fixtures groups one record of each collaborator.
type Fixtures struct {
	Client  models.Client
	Barber  models.Barber
	Service models.Service
}

func Seed(t testing.TB, db *gorm.DB) Fixtures {
	t.Helper()

	return Fixtures{
		Client:  SeedClient(t, db, "João"),
		Barber:  SeedBarber(t, db, "Carlos", "carlos@barbearia.test"),
		Service: SeedService(t, db, "Corte", 50, 30),
	}
}
