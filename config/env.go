package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseDriver = "mongo"
	defaultDBHost         = "localhost:27017"
	defaultDBName         = "kids_island"
	defaultRedisAddr      = ""
	defaultAppPort        = "5000"
	defaultAppEnv         = "local"
	defaultRateLimit      = "200"
	defaultMaxBodyBytes   = "4194304"
)

// envKeys are read from the process environment last, so they win over
// app.json and .env.
var envKeys = []string{
	"APP_ENV", "PORT", "DB_DRIVER", "MONGO_URI", "DB_USER", "DB_PASS",
	"DB_HOST", "DB_SRV", "DB_NAME", "STRIPE_SECRET_KEY", "REDIS_ADDR",
	"REDIS_PASSWORD", "RATE_LIMIT", "GRPC_PORT", "LOG_MONGO_COLLECTION",
	"MAX_BODY_BYTES", "TRUST_PROXY",
}

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":        defaultAppEnv,
		"PORT":           defaultAppPort,
		"DB_DRIVER":      defaultDatabaseDriver,
		"DB_HOST":        defaultDBHost,
		"DB_NAME":        defaultDBName,
		"REDIS_ADDR":     defaultRedisAddr,
		"RATE_LIMIT":     defaultRateLimit,
		"MAX_BODY_BYTES": defaultMaxBodyBytes,
	}
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// AppPort is the HTTP listen port. The storefront has always defaulted to 5000.
func AppPort() string {
	_ = Load()
	return get("PORT", defaultAppPort)
}

// DatabaseDriver is DB_DRIVER lower-cased, "mongo" when unset. Unknown values
// are passed through for database.Open to reject.
func DatabaseDriver() string {
	_ = Load()
	return strings.ToLower(get("DB_DRIVER", defaultDatabaseDriver))
}

// MongoURI returns MONGO_URI verbatim when set; otherwise it is assembled
// from DB_USER, DB_PASS and DB_HOST. DB_SRV=true selects the mongodb+srv scheme
// used by Atlas clusters.
func MongoURI() string {
	_ = Load()

	if override := get("MONGO_URI", ""); override != "" {
		return override
	}

	u := url.URL{Scheme: "mongodb", Host: get("DB_HOST", defaultDBHost), Path: "/"}
	if b, _ := strconv.ParseBool(get("DB_SRV", "false")); b {
		u.Scheme = "mongodb+srv"
		u.RawQuery = "retryWrites=true&w=majority"
	}
	if user := get("DB_USER", ""); user != "" {
		u.User = url.UserPassword(user, get("DB_PASS", ""))
	}
	return u.String()
}

func DatabaseName() string {
	_ = Load()
	return get("DB_NAME", defaultDBName)
}

func StripeSecretKey() string {
	_ = Load()
	return get("STRIPE_SECRET_KEY", "")
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// RateLimit is the number of requests one client may make per minute.
// Zero disables limiting.
func RateLimit() int {
	_ = Load()
	n, err := strconv.Atoi(get("RATE_LIMIT", defaultRateLimit))
	if err != nil || n < 0 {
		n, _ = strconv.Atoi(defaultRateLimit)
	}
	return n
}

// TrustProxy reports whether the app sits behind a proxy that sets
// X-Forwarded-For. Off by default, so clients cannot pick their own
// rate-limit key.
func TrustProxy() bool {
	_ = Load()
	b, _ := strconv.ParseBool(get("TRUST_PROXY", "false"))
	return b
}

func GRPCPort() string {
	_ = Load()
	return get("GRPC_PORT", "")
}

func LogMongoCollection() string {
	_ = Load()
	return get("LOG_MONGO_COLLECTION", "")
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mergeProcessEnv(loaded)

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch v := val.(type) {
		case string:
			s = v
		case float64, bool:
			s = fmt.Sprint(v)
		default:
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}

	return nil
}

func mergeProcessEnv(out map[string]string) {
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			out[key] = strings.TrimSpace(v)
		}
	}
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a key at runtime. Intended for tests and CLI flags.
func Set(key, value string) {
	_ = Load()

	mu.Lock()
	defer mu.Unlock()
	values[strings.ToUpper(key)] = value
}
