package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings, filled from the environment
type Config struct {
	Port       string `envconfig:"PORT" default:"8080"`
	GinMode    string `envconfig:"GIN_MODE" default:"debug"`
	DBPath     string `envconfig:"DB_PATH" default:"booking.db"`
	JWTSecret  string `envconfig:"JWT_SECRET" default:"service_booking_super_secret_2024"`
	AdminEmail string `envconfig:"ADMIN_EMAIL" default:"admin@bookings.local"`
	AdminName  string `envconfig:"ADMIN_NAME" default:"Admin"`
	AdminPass  string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
}

// App is the process-wide configuration, populated by Load
var App Config

// JWTSecret used to sign tokens — kept as bytes for the jwt library
var JWTSecret []byte

func Load() Config {
	if err := envconfig.Process("", &App); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	JWTSecret = []byte(App.JWTSecret)
	return App
}
