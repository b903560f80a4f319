package product

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported product config format")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the product configuration from filePath on top of Default().
// A missing file is not an error, the defaults are returned as is.
func Load(filePath string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("error reading product config file %s: %w", filePath, err)
	}

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("error unmarshalling product config from %s: %w", filePath, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(raw), &cfg); err != nil {
			return Config{}, fmt.Errorf("error unmarshalling product config from %s: %w", filePath, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid product config %s: %w", filePath, err)
	}

	return cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg Config) error {
	return validate.Struct(cfg)
}
