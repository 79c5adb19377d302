package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/zurichjs/rewards/internal/types"
)

type Configuration struct {
	Deployment   DeploymentConfig   `validate:"required"`
	Server       ServerConfig       `validate:"required"`
	Logging      LoggingConfig      `validate:"required"`
	Auth         AuthConfig         `validate:"required"`
	Clerk        ClerkConfig        `validate:"required"`
	Stripe       StripeConfig       `validate:"required"`
	Referral     ReferralConfig     `validate:"required"`
	Pricing      PricingConfig      `validate:"required"`
	Cache        CacheConfig
	Notification NotificationConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// AuthConfig holds the settings for validating the upstream auth
// provider's session JWTs. AdminUserIDs is a fallback allowlist for
// tokens that carry no roles claim.
type AuthConfig struct {
	Secret       string `validate:"required"`
	AdminUserIDs []string
}

// ClerkConfig holds the user-metadata store connection settings
type ClerkConfig struct {
	APIKey  string `validate:"required"`
	BaseURL string `validate:"required"`
}

type StripeConfig struct {
	SecretKey string `validate:"required"`
}

type ReferralConfig struct {
	// TokenSecret signs referral tokens. Rotating it invalidates all
	// outstanding referral links.
	TokenSecret string `validate:"required"`
	LinkBaseURL string `validate:"required"`
	SignupBonus int64
}

// PricingPeriodConfig is one time-boxed pricing tier. Periods must be
// listed in ascending expiration order.
type PricingPeriodConfig struct {
	Title           string  `validate:"required"`
	DiscountPercent float64 `validate:"gte=0,lte=100"`
	ExpiresAt       string  `validate:"required"`
}

type PricingConfig struct {
	Periods []PricingPeriodConfig `validate:"required,min=1,dive"`
	// ValidateRPS limits the public coupon-validation endpoint per client
	ValidateRPS   float64
	ValidateBurst int
}

type CacheConfig struct {
	Enabled bool
}

type NotificationConfig struct {
	WebhookURL string
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/zurichjs-rewards")

	v.SetEnvPrefix("ZURICHJS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	for i, p := range c.Pricing.Periods {
		if _, err := time.Parse(time.RFC3339, p.ExpiresAt); err != nil {
			return fmt.Errorf("pricing.periods[%d].expiresat: invalid RFC3339 timestamp %q", i, p.ExpiresAt)
		}
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// and for non-web entrypoints like scripts and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Referral:   ReferralConfig{SignupBonus: 5, LinkBaseURL: "http://localhost:3000"},
		Cache:      CacheConfig{Enabled: true},
	}
}
