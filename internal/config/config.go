package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	StoreDriver       string `validate:"oneof=firestore postgres memory"`
	ProjectID         string
	CredentialsFile   string
	DatabaseURL       string `validate:"required_if=StoreDriver postgres"`
	CommutersPerRoute int    `validate:"gte=0,lte=1000"`
	DriversPerRoute   int    `validate:"gte=0,lte=1000"`
	// RandomSeed is nil when runs should not be reproducible.
	RandomSeed      *uint64
	NATSURL         string `validate:"omitempty,url"`
	NATSSubject     string `validate:"required"`
	LogNATSSubjects bool
	PushgatewayURL  string `validate:"omitempty,url"`
	RoutesGeoJSON   string
}

func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.StoreDriver = strings.ToLower(getenvDefault("STORE_DRIVER", "firestore"))
	cfg.ProjectID = firstNonEmpty(os.Getenv("FIRESTORE_PROJECT_ID"), os.Getenv("GOOGLE_CLOUD_PROJECT"))
	cfg.CredentialsFile = firstNonEmpty(
		os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		"serviceAccountKey.json",
	)

	cfg.DatabaseURL = firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("PG_DSN"), pgDSNFromEnv())

	var err error
	if cfg.CommutersPerRoute, err = getenvInt("COMMUTERS_PER_ROUTE", 5); err != nil {
		return nil, err
	}
	if cfg.DriversPerRoute, err = getenvInt("DRIVERS_PER_ROUTE", 5); err != nil {
		return nil, err
	}

	if v := os.Getenv("RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RANDOM_SEED: %q", v)
		}
		cfg.RandomSeed = &seed
	}

	// Empty NATS_URL disables document announcements.
	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.NATSSubject = getenvDefault("NATS_SUBJECT_PREFIX", "ipara.seed")
	cfg.LogNATSSubjects = parseBool(os.Getenv("LOG_NATS_SUBJECTS"))

	// Pushgateway base URL (e.g., "http://pushgateway:9091"). Empty disables pushing.
	cfg.PushgatewayURL = os.Getenv("METRICS_PUSHGATEWAY_URL")

	cfg.RoutesGeoJSON = os.Getenv("ROUTES_GEOJSON_PATH")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("config validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", k, v)
	}
	return n, nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// pgDSNFromEnv builds a URL from the libpq PG* variables, or "" when
// PGDATABASE is unset.
func pgDSNFromEnv() string {
	name := os.Getenv("PGDATABASE")
	if name == "" {
		return ""
	}
	user := url.User(getenvDefault("PGUSER", "postgres"))
	if pass := os.Getenv("PGPASSWORD"); pass != "" {
		user = url.UserPassword(user.Username(), pass)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     user,
		Host:     net.JoinHostPort(getenvDefault("PGHOST", "127.0.0.1"), getenvDefault("PGPORT", "5432")),
		Path:     "/" + name,
		RawQuery: "sslmode=" + url.QueryEscape(getenvDefault("PGSSLMODE", "disable")),
	}
	return u.String()
}
