package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mio254/spacer/internal/domain"
	"github.com/Mio254/spacer/internal/repository"
)

// newTestDB opens an isolated in-memory sqlite database with the full
// schema. cache=shared keeps it alive across the pool's connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(
		&domain.Space{}, &domain.Booking{}, &domain.Payment{}, &domain.Invoice{},
		&domain.User{}, &domain.AgreementAcceptance{}, &domain.EventConsumed{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedSpace(t *testing.T, gdb *gorm.DB, rate float64) *domain.Space {
	t.Helper()
	sp := &domain.Space{
		Name:         "Studio A",
		Description:  "ground floor studio",
		Location:     "Building 1",
		PricePerHour: rate,
		Capacity:     8,
		IsActive:     true,
	}
	if err := repository.NewSpaceRepo(gdb).Create(context.Background(), sp); err != nil {
		t.Fatalf("seed space: %v", err)
	}
	return sp
}

func window(hhmm string, hours int) (time.Time, time.Time) {
	start, err := time.Parse("2006-01-02 15:04", "2030-06-01 "+hhmm)
	if err != nil {
		panic(err)
	}
	return start.UTC(), start.Add(time.Duration(hours) * time.Hour).UTC()
}

var (
	alice = domain.Actor{ID: "user-alice", Role: domain.RoleUser}
	bob   = domain.Actor{ID: "user-bob", Role: domain.RoleUser}
	admin = domain.Actor{ID: "user-admin", Role: domain.RoleAdmin}
)
