package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"stayhub/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{TranslateError: true},
	)
}

// Migrate applies the schema for every aggregate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Property{},
		&domain.RoomType{},
		&domain.Room{},
		&domain.RoomBlock{},
		&domain.Coupon{},
		&domain.Offer{},
		&domain.SeasonalRate{},
		&domain.Booking{},
		&domain.Payment{},
		&domain.ChannelPartner{},
		&domain.PartnerLevel{},
		&domain.CPTransaction{},
		&domain.Income{},
		&domain.AuditLog{},
	)
}
