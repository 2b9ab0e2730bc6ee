package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host        string
	Port        string
	CORSOrigins []string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

// Enabled is false when no redis host is configured; sessions then live in
// process memory.
func (r RedisCache) Enabled() bool {
	return r.Host != ""
}

type Access struct {
	GuestPasswordHash  string
	PublicPasswordHash string
	SessionTTL         time.Duration
}

type TMDB struct {
	BaseURL   string
	ReadToken string
	RPS       float64
	CacheTTL  time.Duration
	Timeout   time.Duration
}

type Web3Forms struct {
	Endpoint  string
	AccessKey string
	Timeout   time.Duration
}

type Telemetry struct {
	ServiceName string
	LogLevel    string
}

type Config struct {
	HTTP      HTTPServer
	Redis     RedisCache
	Access    Access
	TMDB      TMDB
	Web3Forms Web3Forms
	Telemetry Telemetry
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	return FromEnv()
}

// FromEnv builds the config from the current process environment.
func FromEnv() *Config {
	upstreamTimeout := getduration("UPSTREAM_TIMEOUT", 0)

	cfg := &Config{
		HTTP:   *newHTTP(),
		Redis:  *newRedis(),
		Access: *newAccess(),
		TMDB: TMDB{
			BaseURL:   getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			ReadToken: getsecret("TMDB_API_READ_TOKEN"),
			RPS:       getfloat("TMDB_RPS", 20),
			CacheTTL:  getduration("IMAGE_CACHE_TTL", time.Hour),
			Timeout:   upstreamTimeout,
		},
		Web3Forms: Web3Forms{
			Endpoint:  getenv("WEB3FORMS_ENDPOINT", "https://api.web3forms.com/submit"),
			AccessKey: getsecret("WEB3FORMS_ACCESS_KEY"),
			Timeout:   upstreamTimeout,
		},
		Telemetry: Telemetry{
			ServiceName: getenv("SERVICE_NAME", "oscarparty"),
			LogLevel:    getenv("LOG_LEVEL", "info"),
		},
	}

	log.Printf("%s backend config : %s\n", logtag, cfg)
	return cfg
}

// String masks secrets so the config can be logged.
func (c *Config) String() string {
	return fmt.Sprintf(
		"{HTTP:%+v Redis:{Host:%s Port:%s} SessionTTL:%s TMDB:{BaseURL:%s RPS:%g CacheTTL:%s Timeout:%s Token:%s} Web3Forms:{Endpoint:%s Key:%s} GuestHash:%s PublicHash:%s}",
		c.HTTP, c.Redis.Host, c.Redis.Port, c.Access.SessionTTL,
		c.TMDB.BaseURL, c.TMDB.RPS, c.TMDB.CacheTTL, c.TMDB.Timeout, mask(c.TMDB.ReadToken),
		c.Web3Forms.Endpoint, mask(c.Web3Forms.AccessKey),
		mask(c.Access.GuestPasswordHash), mask(c.Access.PublicPasswordHash),
	)
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port:        getenv("HTTP_PORT", "8080"),
		Host:        getenv("HTTP_HOST", "localhost"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:4321")),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", ""),
		Password: getsecret("REDIS_PASSWORD"),
	}
}

func newAccess() *Access {
	return &Access{
		GuestPasswordHash:  strings.ToLower(getsecret("GUEST_PASSWORD_HASH")),
		PublicPasswordHash: strings.ToLower(getsecret("PUBLIC_PASSWORD_HASH")),
		SessionTTL:         getduration("SESSION_TTL", 12*time.Hour),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getsecret(key string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined\n", logtag, key)
		return ""
	}
	fmt.Printf("%s %s is set\n", logtag, key)
	return val
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("%s %s: bad duration %q, using %s", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getfloat(key string, defaultValue float64) float64 {
	raw := getenv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		log.Printf("%s %s: bad number %q, using %g", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return f
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mask(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	return "<set>"
}
