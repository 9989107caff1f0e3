package productform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CLIConfig drives one run of the productform command.
type CLIConfig struct {
	BaseURL     string        `mapstructure:"BASE_URL"`
	Token       string        `mapstructure:"TOKEN"`
	Timeout     time.Duration `mapstructure:"TIMEOUT"`
	Category    string        `mapstructure:"CATEGORY"`
	Name        string        `mapstructure:"NAME"`
	Description string        `mapstructure:"DESCRIPTION"`
	Price       string        `mapstructure:"PRICE"`
	Quantity    string        `mapstructure:"QUANTITY"`
	Shipping    string        `mapstructure:"SHIPPING"`
	PhotoPath   string        `mapstructure:"PHOTO"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
}

const envPrefix = "PRODUCTFORM"

var flagKeys = map[string]string{
	"base-url":    "BASE_URL",
	"token":       "TOKEN",
	"timeout":     "TIMEOUT",
	"category":    "CATEGORY",
	"name":        "NAME",
	"description": "DESCRIPTION",
	"price":       "PRICE",
	"quantity":    "QUANTITY",
	"shipping":    "SHIPPING",
	"photo":       "PHOTO",
	"log-level":   "LOG_LEVEL",
}

// NewFlagSet declares the command-line flags understood by LoadCLIConfig.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "optional config file (yaml, json, toml or .env)")
	fs.String("base-url", "http://localhost:8080", "shop API base URL")
	fs.String("token", "", "admin token sent in the Authorization header")
	fs.Duration("timeout", 30*time.Second, "HTTP timeout")
	fs.String("category", "", "category name or id")
	fs.String("name", "", "product name")
	fs.String("description", "", "product description")
	fs.String("price", "", "product price")
	fs.String("quantity", "", "product quantity")
	fs.String("shipping", "", "shipping flag (1/0)")
	fs.String("photo", "", "path to the product photo")
	fs.String("log-level", "info", "log level")
	return fs
}

// LoadCLIConfig resolves settings with precedence flags > env (PRODUCTFORM_*) > config file > defaults.
func LoadCLIConfig(fs *pflag.FlagSet, args []string) (*CLIConfig, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for flagName, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flagName, err)
		}
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base url is required")
	}
	return &cfg, nil
}
