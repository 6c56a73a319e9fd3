package database

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/nhl-fa-projections/internal/platform/resilience"
)

const (
	DefaultPort         = 5432
	DefaultSSLMode      = "require"
	DefaultMaxOpenConns = 10
	DefaultProbeTimeout = 5 * time.Second
)

// Config describes how to reach the projections store. URL wins over the
// discrete host/user/password/name/port fields when both are present.
type Config struct {
	URL      string
	Host     string
	User     string
	Password string
	Name     string
	Port     int

	// SSLMode defaults to "require": traffic is encrypted but the server
	// certificate is not verified, so self-signed certificates are accepted.
	SSLMode string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ProbeTimeout    time.Duration

	CircuitBreaker resilience.CircuitBreakerConfig
}

// Configured reports whether enough settings exist to attempt a connection.
func (c Config) Configured() bool {
	if strings.TrimSpace(c.URL) != "" {
		return true
	}
	return strings.TrimSpace(c.Host) != "" && strings.TrimSpace(c.User) != "" && strings.TrimSpace(c.Name) != ""
}

func (c Config) withDefaults() Config {
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if strings.TrimSpace(c.SSLMode) == "" {
		c.SSLMode = DefaultSSLMode
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.MaxIdleConns <= 0 || c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = DefaultProbeTimeout
	}
	return c
}

// DSN renders a lib/pq connection URL. An sslmode already present in URL is kept.
func (c Config) DSN() (string, error) {
	if !c.Configured() {
		return "", errors.New("database is not configured")
	}
	c = c.withDefaults()

	if raw := strings.TrimSpace(c.URL); raw != "" {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme == "" {
			return "", errors.Newf("parse DATABASE_URL: invalid connection url")
		}
		query := parsed.Query()
		if query.Get("sslmode") == "" {
			query.Set("sslmode", c.SSLMode)
			parsed.RawQuery = query.Encode()
		}
		return parsed.String(), nil
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(strings.TrimSpace(c.Host), strconv.Itoa(c.Port)),
		Path:     "/" + strings.TrimSpace(c.Name),
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	if c.Password != "" {
		u.User = url.UserPassword(strings.TrimSpace(c.User), c.Password)
	} else {
		u.User = url.User(strings.TrimSpace(c.User))
	}
	return u.String(), nil
}

var passwordInDSN = regexp.MustCompile(`://([^:/@]*):([^@]*)@`)

// RedactDSN masks the password of a connection url so it can be logged.
func RedactDSN(dsn string) string {
	return passwordInDSN.ReplaceAllString(dsn, "://$1:****@")
}

// RedactedDSN is the loggable form of DSN, or "" when unconfigured.
func (c Config) RedactedDSN() string {
	dsn, err := c.DSN()
	if err != nil {
		return ""
	}
	return RedactDSN(dsn)
}

// DBName extracts the database name for span attributes.
func (c Config) DBName() string {
	if name := strings.TrimSpace(c.Name); name != "" && strings.TrimSpace(c.URL) == "" {
		return name
	}
	return dbNameFromURL(c.URL)
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}

	return ""
}
