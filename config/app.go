package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName    string
	Port       string
	Env        string
	Debug      bool
	DataDir    string
	RefreshTTL time.Duration
	// Add more fields as needed
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:    os.Getenv("APP_NAME"),
			Port:       os.Getenv("PORT"),
			Env:        os.Getenv("APP_ENV"),
			Debug:      os.Getenv("DEBUG") == "true",
			DataDir:    dataDir(),
			RefreshTTL: refreshTTL(),
		}
	})
}

// dataDir resolves the directory holding the catalog DB and logo files.
// DATA_DIR wins; otherwise ~/.portal is created on demand.
func dataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(home, ".portal")
	_ = os.MkdirAll(dir, 0755)
	return dir
}

// refreshTTL returns the catalog staleness threshold. REFRESH_TTL is in
// seconds; the default matches the daily refresh cadence of the portals.
func refreshTTL() time.Duration {
	if v := os.Getenv("REFRESH_TTL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 24 * time.Hour
}
