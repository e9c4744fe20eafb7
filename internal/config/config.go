package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// APIURLEnv overrides the resolved API base URL verbatim when set.
	APIURLEnv = "AGENCY_API_URL"

	ProductionOrigin  = "https://sitegenit-backend.onrender.com"
	DevelopmentOrigin = "http://localhost:8000"
	APIPrefix         = "/api"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		_ = godotenv.Load()

		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Errorw("Error merging test config file", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// ResolveBaseURL picks the backend base URL: a non-empty override is used
// verbatim, otherwise the fixed production or development origin plus /api.
func ResolveBaseURL(override string, production bool) string {
	if override != "" {
		return override
	}
	if production {
		return ProductionOrigin + APIPrefix
	}
	return DevelopmentOrigin + APIPrefix
}

// GetAPIBaseURL resolves the base URL from AGENCY_API_URL (or api.url) and
// the build mode.
func GetAPIBaseURL() string {
	initConfig()
	override := os.Getenv(APIURLEnv)
	if override == "" {
		override = viper.GetString("api.url")
	}
	return ResolveBaseURL(override, IsProduction())
}

// IsProduction reports whether app.env (APP_ENV) selects a production build.
func IsProduction() bool {
	initConfig()
	return strings.EqualFold(strings.TrimSpace(viper.GetString("app.env")), "production")
}

// GetAPITimeout returns the outbound client timeout. Zero means no timeout.
func GetAPITimeout() time.Duration {
	initConfig()
	return durationOr("api.timeout", 0)
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetServerPort() string {
	initConfig()
	serverPort := viper.GetString("server.port")
	if serverPort == "" {
		return "8080"
	}
	return serverPort
}

func GetServerTimeout(key string) string {
	initConfig()
	return viper.GetString("server." + key)
}

// GetServerTimeoutDuration parses server.<key>, falling back to def.
func GetServerTimeoutDuration(key string, def time.Duration) time.Duration {
	initConfig()
	return durationOr("server."+key, def)
}

func SnapshotsEnabled() bool {
	initConfig()
	if !viper.IsSet("snapshot.enabled") {
		return true
	}
	return viper.GetBool("snapshot.enabled")
}

// GetSnapshotExpiration returns how long last-known-good content is kept.
// Defaults to 10m if not set or invalid.
func GetSnapshotExpiration() time.Duration {
	initConfig()
	return durationOr("snapshot.expiration", 10*time.Minute)
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// GetRateLimiterCleanupTimeout returns the rate limiter cleanup timeout as a time.Duration.
// Defaults to 3m if not set or invalid.
func GetRateLimiterCleanupTimeout() time.Duration {
	initConfig()
	return durationOr("rate_limiter.cleanup_timeout", 3*time.Minute)
}

// GetGlobalRateLimiterConfig returns requests per minute and burst for the per-IP limiter.
func GetGlobalRateLimiterConfig() (perMinute float64, burst int) {
	initConfig()
	return rateOr("rate_limiter.global", 60, 30)
}

// GetRouteRateLimiterConfig returns requests per minute and burst for the per-IP, per-route limiter.
func GetRouteRateLimiterConfig() (perMinute float64, burst int) {
	initConfig()
	return rateOr("rate_limiter.route", 20, 10)
}

// TrustProxyHeaders reports whether X-Forwarded-For / X-Real-IP identify the
// client. Only enable it behind a proxy that overwrites those headers.
func TrustProxyHeaders() bool {
	initConfig()
	return viper.GetBool("rate_limiter.trust_proxy_headers")
}

func rateOr(prefix string, defRate float64, defBurst int) (float64, int) {
	r := viper.GetFloat64(prefix + ".rate")
	if r == 0 {
		r = defRate
	}
	b := viper.GetInt(prefix + ".burst")
	if b == 0 {
		b = defBurst
	}
	return r, b
}

func durationOr(key string, def time.Duration) time.Duration {
	durStr := viper.GetString(key)
	if durStr == "" {
		return def
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return def
	}
	return dur
}
