package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"cafe-api/database"
	"cafe-api/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// newTestService returns a service backed by a private in-memory sqlite database.
func newTestService(t *testing.T) *CafeService {
	t.Helper()

	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewCafeService(db)
}

func strPtr(s string) *string { return &s }

func sampleInput(name, location string) CreateCafeInput {
	return CreateCafeInput{
		Name:         name,
		MapURL:       "https://maps.example/" + name,
		ImgURL:       "https://img.example/" + name + ".jpg",
		Location:     location,
		Seats:        "10-20",
		HasToilet:    true,
		HasWifi:      true,
		HasSockets:   false,
		CanTakeCalls: true,
		CoffeePrice:  strPtr("£2.50"),
	}
}

func mustCreate(t *testing.T, s *CafeService, name, location string) model.Cafe {
	t.Helper()
	cafe, err := s.Create(context.Background(), sampleInput(name, location))
	if err != nil {
		t.Fatalf("Create(%q): %v", name, err)
	}
	return cafe
}

func ids(cafes []model.Cafe) []uint {
	out := make([]uint, len(cafes))
	for i, c := range cafes {
		out[i] = c.ID
	}
	return out
}
