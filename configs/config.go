package configs

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort         int
	DBHost          string
	DBPort          int
	DBUser          string
	DBPassword      string
	DBName          string
	DBNameTest      string
	RedisHost       string
	RedisPort       int
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	TokenTTL        time.Duration
	EncryptionKey   string
	UploadDir       string
	LogDir          string
	ProfileCacheTTL time.Duration
	RateLimitMax    int
	Timezone        string
}

func defaults(v *viper.Viper) {
	v.SetDefault("app_port", 3004)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 10501)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "wtms")
	v.SetDefault("db_name_test", "wtms_test")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_db", 0)
	v.SetDefault("jwt_secret", "secret")
	v.SetDefault("token_ttl", time.Hour)
	v.SetDefault("encryption_key", "MySecretEncryptionKey!")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("profile_cache_ttl", time.Hour)
	v.SetDefault("rate_limit_max", 100)
	v.SetDefault("timezone", "Local")
}

// LoadConfig membaca .env (jika ada) lalu environment variable, contoh:
// DB_HOST, DB_PORT, REDIS_HOST, JWT_SECRET, TOKEN_TTL=2h.
func LoadConfig(envFiles ...string) Config {
	// Muat file .env
	if err := godotenv.Load(envFiles...); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaults(v)

	return Config{
		AppPort:         v.GetInt("app_port"),
		DBHost:          v.GetString("db_host"),
		DBPort:          v.GetInt("db_port"),
		DBUser:          v.GetString("db_user"),
		DBPassword:      v.GetString("db_password"),
		DBName:          v.GetString("db_name"),
		DBNameTest:      v.GetString("db_name_test"),
		RedisHost:       v.GetString("redis_host"),
		RedisPort:       v.GetInt("redis_port"),
		RedisPassword:   v.GetString("redis_password"),
		RedisDB:         v.GetInt("redis_db"),
		JWTSecret:       v.GetString("jwt_secret"),
		TokenTTL:        v.GetDuration("token_ttl"),
		EncryptionKey:   v.GetString("encryption_key"),
		UploadDir:       v.GetString("upload_dir"),
		LogDir:          v.GetString("log_dir"),
		ProfileCacheTTL: v.GetDuration("profile_cache_ttl"),
		RateLimitMax:    v.GetInt("rate_limit_max"),
		Timezone:        v.GetString("timezone"),
	}
}

// Location returns the timezone used to decide which calendar day "today" is.
func (c Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to local time", c.Timezone)
		return time.Local
	}
	return loc
}
