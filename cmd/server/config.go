package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/homefindhq/homefind/internal/krypto"
)

// httpConfig is the configuration for the HTTP server.
type httpConfig struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	secureCookie    bool
}

// dbConfig is the configuration for the database.
type dbConfig struct {
	file    string
	migrate bool
}

// tokenConfig is the configuration for session tokens.
type tokenConfig struct {
	secret krypto.Secret
	expiry time.Duration
}

// config is the configuration for the server command.
type config struct {
	http     httpConfig
	db       dbConfig
	token    tokenConfig
	hashCost int
}

// defaultConfig returns a config with sane default values.
func defaultConfig() config {
	return config{
		http: httpConfig{
			addr:            ":8888",
			readTimeout:     time.Second * 5,
			writeTimeout:    time.Second * 10,
			idleTimeout:     time.Second * 120,
			shutdownTimeout: time.Second * 15,
			secureCookie:    true,
		},
		db: dbConfig{
			file:    "homefind.db",
			migrate: true,
		},
		token: tokenConfig{
			expiry: time.Hour,
		},
		hashCost: krypto.DefaultHashCost,
	}
}

// envMap maps environment variable names to fields in the config struct.
var envMap = map[string]func(v string, c *config) error{
	"HTTP_ADDR": func(v string, c *config) error {
		c.http.addr = v
		return nil
	},
	"HTTP_READ_TIMEOUT": func(v string, c *config) error {
		return confDuration(v, &c.http.readTimeout, 0, math.MaxInt64)
	},
	"HTTP_WRITE_TIMEOUT": func(v string, c *config) error {
		return confDuration(v, &c.http.writeTimeout, 0, math.MaxInt64)
	},
	"HTTP_IDLE_TIMEOUT": func(v string, c *config) error {
		return confDuration(v, &c.http.idleTimeout, 0, math.MaxInt64)
	},
	"HTTP_SHUTDOWN_TIMEOUT": func(v string, c *config) error {
		return confDuration(v, &c.http.shutdownTimeout, 0, math.MaxInt64)
	},
	"HTTP_SECURE_COOKIE": func(v string, c *config) error {
		return confBool(v, &c.http.secureCookie)
	},
	"DB_FILENAME": func(v string, c *config) error {
		if v == "" {
			return fmt.Errorf("empty database filename")
		}
		c.db.file = v
		return nil
	},
	"DB_MIGRATE": func(v string, c *config) error {
		return confBool(v, &c.db.migrate)
	},
	"TOKEN_SECRET": func(v string, c *config) error {
		if v == "" {
			return fmt.Errorf("empty token secret")
		}
		c.token.secret = krypto.NewSecret(v)
		return nil
	},
	"TOKEN_EXPIRY": func(v string, c *config) error {
		return confDuration(v, &c.token.expiry, time.Second, math.MaxInt64)
	},
	"PASSWORD_HASH_COST": func(v string, c *config) error {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return err
		}

		if cost < krypto.MinHashCost || cost > krypto.MaxHashCost {
			return fmt.Errorf("hash cost %d not in range [%d, %d] (inclusive)", cost, krypto.MinHashCost, krypto.MaxHashCost)
		}

		c.hashCost = cost
		return nil
	},
}

// requiredVars have no safe default, the server refuses to start without
// them.
var requiredVars = []string{
	"TOKEN_SECRET",
}

// configFromEnv returns a config with values from the environment. It falls
// back to default values for any missing environment variables.
//
// It does a best effort to validate provided values, so that mistakes are
// caught ASAP. However, there is no guarantee that the returned config
// is valid and will work.
func configFromEnv() (config, error) {
	c := defaultConfig()

	for _, key := range requiredVars {
		if _, ok := os.LookupEnv(key); !ok {
			return c, fmt.Errorf("missing required env variable %s", key)
		}
	}

	for key, mf := range envMap {
		if val, ok := os.LookupEnv(key); ok {
			if err := mf(val, &c); err != nil {
				return c, fmt.Errorf("invalid env variable %s: %w", key, err)
			}
		}
	}

	return c, nil
}

// confDuration attempts to parse v into tgt and checks if the result is in
// the provided range (inclusive).
func confDuration(v string, tgt *time.Duration, min, max time.Duration) error {
	dur, err := time.ParseDuration(v)
	if err != nil {
		return err
	}

	if dur < min || dur > max {
		return fmt.Errorf("duration %s not in range [%s, %s] (inclusive)", dur, min, max)
	}

	*tgt = dur

	return nil
}

// confBool attempts to parse v into tgt.
func confBool(v string, tgt *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}

	*tgt = b

	return nil
}
