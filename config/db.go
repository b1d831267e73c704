package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gorm.io/driver/mysql"

	"grandstay-backend/models"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "grandstay_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedPricing fills the rate table with the standard room types when empty.
func SeedPricing(db *gorm.DB) {
	var count int64
	db.Model(&models.RoomPricing{}).Count(&count)
	if count > 0 {
		return
	}

	pricing := []models.RoomPricing{
		{RoomType: "Standard", BasePrice: 5000, Currency: "PKR", SeasonMultiplier: 1, WeekendMultiplier: 1.1},
		{RoomType: "Deluxe", BasePrice: 8500, Currency: "PKR", SeasonMultiplier: 1.15, WeekendMultiplier: 1.2},
		{RoomType: "Family Suite", BasePrice: 12000, Currency: "PKR", SeasonMultiplier: 1.2, WeekendMultiplier: 1.25},
		{RoomType: "Executive Suite", BasePrice: 18000, Currency: "PKR", SeasonMultiplier: 1.25, WeekendMultiplier: 1.3},
	}
	if err := db.Create(&pricing).Error; err != nil {
		log.Printf("warning: failed to seed room pricing: %v", err)
		return
	}
	log.Println("Room pricing seeded")
}

// ConnectDatabase opens the MySQL connection, applies migrations, and seeds
// the pricing table. The returned handle is the single DB client for the
// process; it is created once at startup and closed at shutdown.
func ConnectDatabase() (*gorm.DB, error) {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.RoomPricing{},
		&models.Room{},
		&models.Booking{},
		&models.Inquiry{},
	); err != nil {
		return nil, err
	}

	SeedPricing(db)
	return db, nil
}
