package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies BETTRACK_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known BETTRACK_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Supabase ──
	setStr(&cfg.Supabase.DSN, "BETTRACK_SUPABASE_DSN")
	setStr(&cfg.Supabase.DSN, "BETTRACK_SUPABASE_URL") // compatibility alias
	setStr(&cfg.Supabase.Host, "BETTRACK_SUPABASE_HOST")
	setInt(&cfg.Supabase.Port, "BETTRACK_SUPABASE_PORT")
	setStr(&cfg.Supabase.Database, "BETTRACK_SUPABASE_DATABASE")
	setStr(&cfg.Supabase.User, "BETTRACK_SUPABASE_USER")
	setStr(&cfg.Supabase.Password, "BETTRACK_SUPABASE_PASSWORD")
	setStr(&cfg.Supabase.SSLMode, "BETTRACK_SUPABASE_SSLMODE")
	setInt(&cfg.Supabase.PoolMaxConns, "BETTRACK_SUPABASE_POOL_MAX_CONNS")
	setInt(&cfg.Supabase.PoolMinConns, "BETTRACK_SUPABASE_POOL_MIN_CONNS")
	setBool(&cfg.Supabase.RunMigrations, "BETTRACK_SUPABASE_RUN_MIGRATIONS")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "BETTRACK_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "BETTRACK_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "BETTRACK_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "BETTRACK_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "BETTRACK_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "BETTRACK_REDIS_TLS_ENABLED")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "BETTRACK_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "BETTRACK_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "BETTRACK_S3_REGION")
	setStr(&cfg.S3.Bucket, "BETTRACK_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "BETTRACK_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "BETTRACK_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "BETTRACK_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "BETTRACK_S3_FORCE_PATH_STYLE")

	// ── Auth ──
	setStr(&cfg.Auth.GoogleClientID, "BETTRACK_AUTH_GOOGLE_CLIENT_ID")
	setStr(&cfg.Auth.SessionSecret, "BETTRACK_AUTH_SESSION_SECRET")
	setDuration(&cfg.Auth.SessionTTL, "BETTRACK_AUTH_SESSION_TTL")

	// ── Export ──
	setStr(&cfg.Export.KeyPrefix, "BETTRACK_EXPORT_KEY_PREFIX")

	// ── Server ──
	setInt(&cfg.Server.Port, "BETTRACK_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "BETTRACK_SERVER_CORS_ORIGINS")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "BETTRACK_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "BETTRACK_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "BETTRACK_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "BETTRACK_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.Mode, "BETTRACK_MODE")
	setStr(&cfg.LogLevel, "BETTRACK_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
