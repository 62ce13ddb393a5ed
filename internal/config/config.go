package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every setting the server reads at startup. It is built once in
// main and treated as read-only afterwards.
type Config struct {
	Port          string
	DatabaseURL   string
	ReplicaURLs   []string
	SessionSecret string
	CSRFKey       string
	CSRFDisabled  bool
	CookieSecure  bool
	Debug         bool

	LogLevel  string
	LogPretty bool

	PostsPerPage int

	MediaBackend string // "local" or "s3"
	MediaRoot    string
	MediaURL     string
	S3Bucket     string
	S3PublicURL  string
	MaxUploadMB  int
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=blogicum port=5432 sslmode=disable TimeZone=UTC"

// Load reads the process environment.
func Load() Config {
	return FromMap(Environ())
}

// FromMap resolves a Config from an environment map, applying defaults for
// anything missing.
func FromMap(env map[string]string) Config {
	cfg := Config{
		Port:          GetString(env, "PORT", "8080"),
		DatabaseURL:   GetString(env, "DATABASE_URL", defaultDSN),
		ReplicaURLs:   GetList(env, "DATABASE_REPLICA_URLS"),
		SessionSecret: GetString(env, "SESSION_SECRET", "secret_key_change_me"),
		CSRFKey:       GetString(env, "CSRF_KEY", ""),
		CSRFDisabled:  GetBool(env, "CSRF_DISABLED", false),
		CookieSecure:  GetBool(env, "COOKIE_SECURE", false),
		Debug:         GetBool(env, "DEBUG", false),
		LogLevel:      GetString(env, "LOG_LEVEL", "info"),
		LogPretty:     GetBool(env, "LOG_PRETTY", false),
		PostsPerPage:  GetInt(env, "POSTS_PER_PAGE", 10),
		MediaBackend:  GetString(env, "MEDIA_BACKEND", "local"),
		MediaRoot:     GetString(env, "MEDIA_ROOT", "./media"),
		MediaURL:      GetString(env, "MEDIA_URL", "/media/"),
		S3Bucket:      GetString(env, "S3_BUCKET", ""),
		S3PublicURL:   GetString(env, "S3_PUBLIC_URL", ""),
		MaxUploadMB:   GetInt(env, "MAX_UPLOAD_MB", 5),
	}
	if cfg.PostsPerPage < 1 {
		cfg.PostsPerPage = 10
	}
	if !strings.HasSuffix(cfg.MediaURL, "/") {
		cfg.MediaURL += "/"
	}
	return cfg
}

// Environ snapshots the process environment. Variables without a value map
// to the empty string.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		if key != "" {
			env[key] = value
		}
	}
	return env
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}
	return b
}

// GetList splits a comma separated value, dropping blanks.
func GetList(config map[string]string, key string) []string {
	var out []string
	for _, part := range strings.Split(config[key], ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
