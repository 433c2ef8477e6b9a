package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/cashbill/renderer"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the application configuration.
//
// It is read from cashbill.yaml in the current folder, or from the -config
// file, and every key can be overridden by a BILL_ environment variable, e.g.
// BILL_SHOP_NAME.
type Config struct {
	Shop  renderer.Shop
	Store string `validate:"required"`
}

// LoadConfig reads the configuration. A missing default file is not an error,
// a missing explicit file is.
func LoadConfig(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("shop.name", renderer.DefaultShop.Name)
	v.SetDefault("shop.address", renderer.DefaultShop.Address)
	v.SetDefault("shop.phone", renderer.DefaultShop.Phone)
	v.SetDefault("store", ".cashbill")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("cashbill")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("cannot read configuration: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is complete.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
