package database

import (
	"database/sql"
	"log"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/venividilaundry/veni-vidi-laundry/internal/models"
)

var db *gorm.DB

// Connect initializes the database connection, runs migrations and seeds the
// reference tables.
func Connect(dsn string) *gorm.DB {
	if db != nil {
		return db
	}

	if err := ensureDatabase(dsn); err != nil {
		log.Fatalf("failed to ensure database: %v", err)
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := Seed(conn); err != nil {
		log.Fatalf("database seeding failed: %v", err)
	}

	db = conn
	return db
}

// DB exposes the initialized gorm.DB instance.
func DB() *gorm.DB {
	return db
}

// Migrate creates or updates the five application tables.
func Migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.Account{},
		&models.ServiceAreaRule{},
		&models.PricingItem{},
		&models.Subscription{},
		&models.Order{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

// Seed inserts the service-area and a-la-carte reference rows, skipping any
// that already exist.
func Seed(conn *gorm.DB) error {
	serviceAreas := []models.ServiceAreaRule{
		{PostcodePrefix: "SW", AreaName: "South West London", Active: true},
		{PostcodePrefix: "W", AreaName: "West London", Active: true},
		{PostcodePrefix: "TW", AreaName: "Twickenham/Heathrow/Staines Area", Active: true},
		{PostcodePrefix: "KT13", AreaName: "Weybridge", Active: true},
		{PostcodePrefix: "KT15", AreaName: "Weybridge", Active: true},
		{PostcodePrefix: "WC", AreaName: "Central London", Active: true},
		{PostcodePrefix: "EC", AreaName: "Central London", Active: true},
	}

	for _, area := range serviceAreas {
		if err := conn.Where("postcode_prefix = ?", area.PostcodePrefix).
			FirstOrCreate(&area).Error; err != nil {
			return err
		}
	}

	pricingItems := []models.PricingItem{
		{ItemName: "Shirt", Category: "dry_clean", Price: 3.50, Description: "Professionally cleaned and pressed"},
		{ItemName: "Trousers", Category: "dry_clean", Price: 5.00, Description: "Professionally cleaned and pressed"},
		{ItemName: "Suit (2 piece)", Category: "dry_clean", Price: 15.00, Description: "Jacket and trousers"},
		{ItemName: "Suit (3 piece)", Category: "dry_clean", Price: 20.00, Description: "Jacket, trousers, and waistcoat"},
		{ItemName: "Dress", Category: "dry_clean", Price: 12.00, Description: "Standard dress"},
		{ItemName: "Evening Dress", Category: "dry_clean", Price: 18.00, Description: "Formal or evening gown"},
		{ItemName: "Coat", Category: "dry_clean", Price: 14.00, Description: "Standard coat"},
		{ItemName: "Winter Coat", Category: "dry_clean", Price: 18.00, Description: "Heavy winter coat"},
		{ItemName: "Blazer/Jacket", Category: "dry_clean", Price: 8.50, Description: "Casual or formal jacket"},
		{ItemName: "Skirt", Category: "dry_clean", Price: 6.00, Description: "Any length skirt"},
		{ItemName: "Jumper/Sweater", Category: "dry_clean", Price: 7.00, Description: "Wool or delicate knitwear"},
		{ItemName: "Tie", Category: "dry_clean", Price: 4.00, Description: "Standard tie"},
		{ItemName: "Duvet (Single)", Category: "dry_clean", Price: 18.00, Description: "Single size duvet"},
		{ItemName: "Duvet (Double)", Category: "dry_clean", Price: 24.00, Description: "Double size duvet"},
		{ItemName: "Duvet (King)", Category: "dry_clean", Price: 28.00, Description: "King size duvet"},
	}

	for _, item := range pricingItems {
		if err := conn.Where("item_name = ?", item.ItemName).
			FirstOrCreate(&item).Error; err != nil {
			return err
		}
	}

	return nil
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
