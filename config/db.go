package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-pms/models"
	"hotel-pms/pricing"
)

func mysqlDSN(user, pass, host, port, dbName string, params url.Values) string {
	c := gomysql.NewConfig()
	c.User = user
	c.Passwd = pass
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(host, port)
	c.DBName = dbName
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	for key := range params {
		switch key {
		case "parseTime", "loc":
			continue
		}
		c.Params[key] = params.Get(key)
	}
	return c.FormatDSN()
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	pass, _ := u.User.Password()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	return mysqlDSN(u.User.Username(), pass, u.Hostname(), port, dbName, u.Query()), nil
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

	return mysqlDSN(
		envOrDefault("DB_USER", "root"),
		os.Getenv("DB_PASS"),
		envOrDefault("DB_HOST", "127.0.0.1"),
		envOrDefault("DB_PORT", "3306"),
		envOrDefault("DB_NAME", "hotel_db"),
		nil,
	), nil
}

// resolvePostgresDSN accepts a postgres:// URL (hosted databases hand these
// out) or builds a key/value DSN from the DB_* variables.
func resolvePostgresDSN() string {
	if raw := strings.TrimSpace(os.Getenv("DATABASE_URL")); raw != "" {
		return raw
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		envOrDefault("DB_HOST", "127.0.0.1"),
		envOrDefault("DB_USER", "postgres"),
		os.Getenv("DB_PASS"),
		envOrDefault("DB_NAME", "hotel_db"),
		envOrDefault("DB_PORT", "5432"),
		envOrDefault("DB_SSLMODE", "disable"),
	)
}

func dialector(cfg *AppConfig) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		return postgres.Open(resolvePostgresDSN()), nil
	case "mysql", "":
		dsn, err := resolveMySQLDSN()
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

// NewLogger routes gorm's SQL log to stdout.
func NewLogger(level string) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

// ConnectDatabase opens the store, migrates the schema and seeds defaults.
func ConnectDatabase(cfg *AppConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{Logger: NewLogger(cfg.DBLogLevel)})
	if err != nil {
		return nil, err
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		log.Printf("info: cannot get raw sql.DB: %v", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	Seed(db, SeedOptions{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		SampleData:    cfg.SeedSampleData,
	})
	return db, nil
}

// Migrate creates or updates every table, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.HotelSetting{},
		&models.AdditionalService{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
		&models.ReservationHistory{},
		&models.Payment{},
	)
}

type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	SampleData    bool
}

// DefaultServices is the add-on catalog offered by the booking wizard.
var DefaultServices = []models.AdditionalService{
	{ID: "breakfast", Name: "Breakfast", Price: 15, Active: true},
	{ID: "parking", Name: "Parking", Price: 10, Active: true},
	{ID: "airport_shuttle", Name: "Airport Shuttle", Price: 25, Active: true},
	{ID: "late_checkout", Name: "Late Checkout", Price: 30, Active: true},
	{ID: "spa_access", Name: "Spa Access", Price: 20, Active: true},
	{ID: "minibar", Name: "Minibar Package", Price: 40, Active: true},
}

func sampleRooms() []models.Room {
	return []models.Room{
		{RoomNumber: "101", Type: "Standard", Floor: "1", Status: models.RoomAvailable, Capacity: 2,
			RateMode: pricing.PerRoom, Rate: 180, Amenities: []string{"wifi", "tv"}},
		{RoomNumber: "102", Type: "Standard", Floor: "1", Status: models.RoomAvailable, Capacity: 2,
			RateMode: pricing.PerRoom, Rate: 180, Amenities: []string{"wifi", "tv", "ac"}},
		{RoomNumber: "201", Type: "Family", Floor: "2", Status: models.RoomAvailable, Capacity: 4,
			RateMode: pricing.PerPerson, RatesPerPerson: []float64{200, 260, 320, 380}, Amenities: []string{"wifi", "tv", "ac", "minibar"}},
		{RoomNumber: "301", Type: "Suite", Floor: "3", Status: models.RoomAvailable, Capacity: 3,
			RateMode: pricing.PerPerson, RatesPerPerson: []float64{800, 1200, 1500}, Amenities: []string{"wifi", "tv", "ac", "jacuzzi"}},
	}
}

// Seed inserts the default admin, the service catalog, the hotel settings
// row and, when asked, a few sample rooms. Existing rows are left alone.
func Seed(db *gorm.DB, opts SeedOptions) {
	// ---------------- Admins ----------------
	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 && opts.AdminUsername != "" && opts.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: opts.AdminUsername,
				Password: string(hash),
				Role:     "manager",
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Additional services ----------------
	var svcCount int64
	db.Model(&models.AdditionalService{}).Count(&svcCount)
	if svcCount == 0 {
		services := make([]models.AdditionalService, len(DefaultServices))
		copy(services, DefaultServices)
		if err := db.Create(&services).Error; err != nil {
			log.Printf("warning: failed to seed additional services: %v", err)
		} else {
			log.Println("Additional services seeded")
		}
	}

	// ---------------- Hotel settings ----------------
	var settingCount int64
	db.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		if err := db.Create(&models.HotelSetting{Name: "Hotel", Currency: "PEN"}).Error; err != nil {
			log.Printf("warning: failed to seed hotel settings: %v", err)
		}
	}

	// ---------------- Rooms ----------------
	if opts.SampleData {
		var roomCount int64
		db.Model(&models.Room{}).Count(&roomCount)
		if roomCount == 0 {
			rooms := sampleRooms()
			if err := db.Create(&rooms).Error; err != nil {
				log.Printf("warning: failed to seed rooms: %v", err)
			} else {
				log.Println("Sample rooms seeded")
			}
		}
	}
}
