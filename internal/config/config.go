package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Load reads a .env file when one exists, decodes the TOML file at path,
// applies SELLFAST_* overrides and fills defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log       LogConfig       `toml:"log"`
	Web       WebConfig       `toml:"web"`
	DB        DBConfig        `toml:"db"`
	Spaces    SpacesConfig    `toml:"spaces"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Market    MarketConfig    `toml:"market"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
	// NoColor disables ANSI colors, useful when logs go to a file.
	NoColor bool `toml:"no_color"`
}

type WebConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	SessionKey     string   `toml:"session_key"`
	AllowedOrigins []string `toml:"allowed_origins"`
	Debug          bool     `toml:"debug"`
}

func (w WebConfig) Address() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
	SSLMode      string `toml:"ssl_mode"`
}

type SpacesConfig struct {
	Key         string `toml:"key"`
	Secret      string `toml:"secret"`
	Region      string `toml:"region"`
	Bucket      string `toml:"bucket"`
	Endpoint    string `toml:"endpoint"`
	ListingRoot string `toml:"listing_root"`
}

// Enabled reports whether listing images can be stored.
func (s SpacesConfig) Enabled() bool {
	return s.Bucket != "" && s.Key != ""
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RateLimitConfig struct {
	Requests int      `toml:"requests"`
	Window   Duration `toml:"window"`
}

type MarketConfig struct {
	BidTTL   Duration `toml:"bid_ttl"`
	TokenTTL Duration `toml:"token_ttl"`
	// TxTimeout bounds every database transaction.
	TxTimeout Duration `toml:"tx_timeout"`
}

// Duration is a time.Duration written in TOML as a string such as "48h" or "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"SELLFAST_DB_PASSWORD":    &c.DB.Password,
		"SELLFAST_SESSION_KEY":    &c.Web.SessionKey,
		"SELLFAST_SPACES_SECRET":  &c.Spaces.Secret,
		"SELLFAST_REDIS_PASSWORD": &c.Redis.Password,
	}
	for key, target := range overrides {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
	if v := os.Getenv("SELLFAST_KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
}

func (c *Config) applyDefaults() {
	if c.Web.Host == "" {
		c.Web.Host = "0.0.0.0"
	}
	if c.Web.Port == 0 {
		c.Web.Port = 8080
	}
	if len(c.Web.AllowedOrigins) == 0 {
		c.Web.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.DB.PoolSize == 0 {
		c.DB.PoolSize = 10
	}
	if c.DB.SSLMode == "" {
		c.DB.SSLMode = "disable"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "sellfast.events"
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 100
	}
	if c.RateLimit.Window.Duration == 0 {
		c.RateLimit.Window.Duration = time.Minute
	}
	if c.Market.BidTTL.Duration == 0 {
		c.Market.BidTTL.Duration = 48 * time.Hour
	}
	if c.Market.TokenTTL.Duration == 0 {
		c.Market.TokenTTL.Duration = 24 * time.Hour
	}
	if c.Market.TxTimeout.Duration == 0 {
		c.Market.TxTimeout.Duration = 30 * time.Second
	}
	if c.Spaces.ListingRoot == "" {
		c.Spaces.ListingRoot = "listings"
	}
	c.Spaces.ListingRoot = strings.Trim(c.Spaces.ListingRoot, "/")
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Web.SessionKey == "" {
		errs = append(errs, errors.New("web.session_key is required"))
	} else if len(c.Web.SessionKey) < 32 {
		errs = append(errs, errors.New("web.session_key must be at least 32 bytes"))
	}
	if c.DB.Host == "" || c.DB.Database == "" {
		errs = append(errs, errors.New("db.host and db.database are required"))
	}
	return errors.Join(errs...)
}
