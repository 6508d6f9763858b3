package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Common
	Env         string
	LogLevel    string
	ServiceName string
	// API
	Port string
	// Source
	Provider          string
	SourceURL         string
	SourceInsecureTLS bool
	USDSelector       string
	EURSelector       string
	FechaSelector     string
	StaticFile        string
	RequestTimeout    time.Duration
	// History storage
	Storage       string
	HistorialFile string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	// Scheduling
	Timezone     string
	ScheduleMode string
	ScheduleHour int
	TickInterval time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

// Load reads environment variables and applies defaults.
func Load() Config {
	hour := atoiDef(getEnv("SCHEDULE_HOUR", "8"), 8)
	if hour < 0 || hour > 23 {
		hour = 8
	}
	return Config{
		Env:               getEnv("ENV", "local"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ServiceName:       getEnv("SERVICE_NAME", "bcv-rates"),
		Port:              getEnv("PORT", "10000"),
		Provider:          getEnv("PROVIDER", "bcv"),
		SourceURL:         getEnv("SOURCE_URL", "https://www.bcv.org.ve/"),
		SourceInsecureTLS: boolDef(getEnv("SOURCE_INSECURE_TLS", "false"), false),
		USDSelector:       getEnv("USD_SELECTOR", "#dolar .centrado"),
		EURSelector:       getEnv("EUR_SELECTOR", "#euro .centrado"),
		FechaSelector:     getEnv("FECHA_SELECTOR", ".pull-right.dinpro.center span.date-display-single"),
		StaticFile:        getEnv("STATIC_FILE", "tasas.json"),
		RequestTimeout:    time.Duration(atoiDef(getEnv("REQUEST_TIMEOUT_MS", "15000"), 15000)) * time.Millisecond,
		Storage:           getEnv("STORAGE", "file"),
		HistorialFile:     getEnv("HISTORIAL_FILE", "historial.json"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           atoiDef(getEnv("REDIS_DB", "0"), 0),
		RedisPrefix:       getEnv("REDIS_PREFIX", "bcv"),
		Timezone:          getEnv("TIMEZONE", "America/Caracas"),
		ScheduleMode:      getEnv("SCHEDULE_MODE", "timer"),
		ScheduleHour:      hour,
		TickInterval:      time.Duration(atoiDef(getEnv("TICK_INTERVAL_MS", "3600000"), 3600000)) * time.Millisecond,
	}
}

// Location resolves the source calendar timezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
