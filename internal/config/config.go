package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	DBDriver     string // sqlite | postgres
	DBDSN        string
	LogFile      string
	StaticDir    string
	TemplatesDir string

	// Product submission and deletion policy.
	StrictNumbers    bool
	GuardReentry     bool
	EnforceOwnership bool
	StoreTimeout     time.Duration

	AdminEmail    string
	AdminPassword string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "swapnstay.db") // sqlite file in project root
	v.SetDefault("LOG_FILE", "./swapnstay.log")
	v.SetDefault("STATIC_DIR", "./web/static")
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("STRICT_NUMBERS", true)
	v.SetDefault("GUARD_REENTRY", true)
	v.SetDefault("ENFORCE_OWNERSHIP", true)
	v.SetDefault("STORE_TIMEOUT", "0s")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
}

// Load reads .env (if present), the environment and an optional CONFIG_FILE.
// Environment values win over the file.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	if f := v.GetString("CONFIG_FILE"); f != "" {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("[warn] could not read config file %s: %v", f, err)
		}
	}

	cfg := Config{
		Port:             v.GetString("PORT"),
		DBDriver:         v.GetString("DB_DRIVER"),
		DBDSN:            v.GetString("DB_DSN"),
		LogFile:          v.GetString("LOG_FILE"),
		StaticDir:        v.GetString("STATIC_DIR"),
		TemplatesDir:     v.GetString("TEMPLATES_DIR"),
		StrictNumbers:    v.GetBool("STRICT_NUMBERS"),
		GuardReentry:     v.GetBool("GUARD_REENTRY"),
		EnforceOwnership: v.GetBool("ENFORCE_OWNERSHIP"),
		StoreTimeout:     v.GetDuration("STORE_TIMEOUT"),
		AdminEmail:       v.GetString("ADMIN_EMAIL"),
		AdminPassword:    v.GetString("ADMIN_PASSWORD"),
	}
	if cfg.DBDriver != "postgres" {
		cfg.DBDriver = "sqlite"
	}
	if cfg.StoreTimeout < 0 {
		cfg.StoreTimeout = 0
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_DSN=%s LOG_FILE=%s STRICT_NUMBERS=%t GUARD_REENTRY=%t ENFORCE_OWNERSHIP=%t STORE_TIMEOUT=%s",
		cfg.Port, cfg.DBDriver, redactDSN(cfg.DBDriver, cfg.DBDSN), cfg.LogFile,
		cfg.StrictNumbers, cfg.GuardReentry, cfg.EnforceOwnership, cfg.StoreTimeout)
	return cfg
}

// Postgres DSNs carry credentials; sqlite DSNs are file paths.
func redactDSN(driver, dsn string) string {
	if driver == "postgres" {
		return "<redacted>"
	}
	return dsn
}
