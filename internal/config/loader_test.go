package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"yield-analytics-service/internal/config"
)

var configEnvVars = []string{
	"YIELD_CONFIG",
	"YIELD_ADDR",
	"YIELD_POSTGRES_DSN",
	"YIELD_DB_MAX_OPEN_CONNS",
	"YIELD_QUERY_TIMEOUT_SECONDS",
	"YIELD_ALLOWED_ORIGINS",
	"YIELD_METRICS_ENABLED",
}

func clearConfigEnvVars(t *testing.T) {
	for _, v := range configEnvVars {
		t.Setenv(v, "")
		_ = os.Unsetenv(v)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "yield.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
		convey.So(cfg.DBMaxOpenConns, convey.ShouldEqual, 20)
		convey.So(cfg.QueryTimeout(), convey.ShouldEqual, 15*time.Second)
		convey.So(cfg.ConnMaxLifetime(), convey.ShouldEqual, 30*time.Minute)
		convey.So(cfg.AllowedOrigins, convey.ShouldEqual, "*")
		convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)

		convey.Convey("Then it is invalid without a DSN", func() {
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	ctx := context.Background()

	convey.Convey("When loading config with environment variables", t, func() {
		clearConfigEnvVars(t)
		t.Setenv("YIELD_POSTGRES_DSN", "postgres://localhost/ats?sslmode=disable")
		t.Setenv("YIELD_ADDR", ":9000")
		t.Setenv("YIELD_QUERY_TIMEOUT_SECONDS", "3")
		t.Setenv("YIELD_ALLOWED_ORIGINS", "https://a.example,https://b.example")
		t.Setenv("YIELD_METRICS_ENABLED", "false")

		cfg, err := config.Load(ctx)

		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.Addr, convey.ShouldEqual, ":9000")
		convey.So(cfg.PostgresDSN, convey.ShouldEqual, "postgres://localhost/ats?sslmode=disable")
		convey.So(cfg.QueryTimeout(), convey.ShouldEqual, 3*time.Second)
		convey.So(cfg.AllowedOrigins, convey.ShouldEqual, "https://a.example,https://b.example")
		convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
		convey.So(cfg.DBMaxIdleConns, convey.ShouldEqual, 10)
	})

	convey.Convey("When loading config with a YAML file and env overrides", t, func() {
		clearConfigEnvVars(t)
		path := writeConfigFile(t, `
addr: ":7070"
postgres_dsn: "postgres://file/ats"
db_max_open_conns: 40
query_timeout_seconds: 20
`)
		t.Setenv("YIELD_CONFIG", path)
		t.Setenv("YIELD_DB_MAX_OPEN_CONNS", "50")

		cfg, err := config.Load(ctx)

		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
		convey.So(cfg.PostgresDSN, convey.ShouldEqual, "postgres://file/ats")
		convey.So(cfg.DBMaxOpenConns, convey.ShouldEqual, 50)
		convey.So(cfg.QueryTimeoutSeconds, convey.ShouldEqual, 20)
	})

	convey.Convey("When the config file does not exist", t, func() {
		clearConfigEnvVars(t)
		t.Setenv("YIELD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := config.Load(ctx)

		convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
	})

	convey.Convey("When validation fails", t, func() {
		clearConfigEnvVars(t)
		t.Setenv("YIELD_POSTGRES_DSN", "postgres://localhost/ats")
		t.Setenv("YIELD_DB_MAX_OPEN_CONNS", "0")

		_, err := config.Load(ctx)

		convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
	})
}
