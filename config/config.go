package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is read once at startup and passed down explicitly.
type Config struct {
	AppPort    string `mapstructure:"APP_PORT"`
	MainRoutes string `mapstructure:"MAIN_ROUTES"`

	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTExpiration is the token lifetime in seconds.
	JWTExpiration int `mapstructure:"JWT_EXPIRATION"`

	// StoreDriver selects where collections live: "memory" or "database".
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	DBDriver    string `mapstructure:"DB_DRIVER"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`

	SessionPath     string `mapstructure:"SESSION_PATH"`
	SessionInMemory bool   `mapstructure:"SESSION_IN_MEMORY"`

	SimulatedLatency time.Duration `mapstructure:"SIMULATED_LATENCY"`
	SnowflakeNode    int64         `mapstructure:"SNOWFLAKE_NODE"`

	CookieSecure   bool   `mapstructure:"COOKIE_SECURE"`
	CookieHTTPOnly bool   `mapstructure:"COOKIE_HTTPONLY"`
	CookieSameSite string `mapstructure:"COOKIE_SAMESITE"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`

	EnforceBillTotal bool   `mapstructure:"ENFORCE_BILL_TOTAL"`
	DisplayLocale    string `mapstructure:"DISPLAY_LOCALE"`

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool `mapstructure:"-"`
}

var defaults = map[string]any{
	"APP_PORT":           "9000",
	"MAIN_ROUTES":        "/api/v1",
	"JWT_SECRET":         "wms_finance_secret",
	"JWT_EXPIRATION":     86400,
	"STORE_DRIVER":       "memory",
	"DB_DRIVER":          "sqlite",
	"DB_HOST":            "localhost",
	"DB_PORT":            "",
	"DB_USER":            "",
	"DB_PASSWORD":        "",
	"DB_NAME":            "wms_finance.db",
	"SESSION_PATH":       "./data/sessions",
	"SESSION_IN_MEMORY":  false,
	"SIMULATED_LATENCY":  "500ms",
	"SNOWFLAKE_NODE":     1,
	"COOKIE_SECURE":      true,
	"COOKIE_HTTPONLY":    false,
	"COOKIE_SAMESITE":    "None",
	"ALLOWED_ORIGINS":    "http://127.0.0.1:3000",
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "json",
	"SMTP_HOST":          "",
	"SMTP_PORT":          587,
	"SMTP_USER":          "",
	"SMTP_PASSWORD":      "",
	"MAIL_FROM":          "billing@example.com",
	"ENFORCE_BILL_TOTAL": false,
	"DISPLAY_LOCALE":     "en",
}

// Load reads .env files (the working directory's .env when none are
// given) into the environment, then resolves every key through viper.
// Values already in the environment win over .env.
func Load(envFiles ...string) (*Config, error) {
	loaded := godotenv.Load(envFiles...) == nil

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.EnvFileLoaded = loaded

	if cfg.StoreDriver != "memory" && cfg.StoreDriver != "database" {
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.JWTExpiration <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION must be positive, got %d", cfg.JWTExpiration)
	}
	return &cfg, nil
}

func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.JWTExpiration) * time.Second
}

func (c *Config) Origins() map[string]bool {
	origins := make(map[string]bool)
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins[origin] = true
		}
	}
	return origins
}

func (c *Config) SetupCORS(app *fiber.App) {
	allowed := c.Origins()
	app.Use(func(ctx *fiber.Ctx) error {
		origin := ctx.Get("Origin")
		if allowed[origin] {
			ctx.Set("Access-Control-Allow-Origin", origin)
			ctx.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			ctx.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			ctx.Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if ctx.Method() == fiber.MethodOptions {
			return ctx.SendStatus(fiber.StatusNoContent)
		}
		return ctx.Next()
	})
}

// TokenCookieName carries the session token for browser clients.
const TokenCookieName = "refresh_token"

func (c *Config) TokenCookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(c.TokenLifetime()),
		HTTPOnly: c.CookieHTTPOnly,
		SameSite: c.CookieSameSite,
		Path:     "/",
		Secure:   c.CookieSecure,
	}
}

// ExpiredTokenCookie clears the token cookie on logout.
func (c *Config) ExpiredTokenCookie() *fiber.Cookie {
	cookie := c.TokenCookie("")
	cookie.Expires = time.Unix(0, 0)
	return cookie
}
