package storage

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"hotel-booking-server/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Booking{},
		&models.Review{},
		&models.Notification{},
	)
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}

var testDBCounter uint64

// InitializeTestDB swaps DB for a fresh in-memory sqlite database. Each call
// gets its own database so tests don't see each other's rows.
func InitializeTestDB() *gorm.DB {
	n := atomic.AddUint64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)

	db, dbError := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error opening test db: " + dbError.Error())
	}

	performMigrations(db)
	DB = db
	return db
}
