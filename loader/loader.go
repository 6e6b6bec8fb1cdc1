package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/faber/container"
	"github.com/kbukum/faber/errors"
	"github.com/kbukum/faber/logger"
)

var formats = map[string]string{
	".yml":  "yaml",
	".yaml": "yaml",
	".json": "json",
	".toml": "toml",
}

// Load registers every entry of things in c, as container.Load does.
func Load(c *container.Container, things map[string]any) error {
	return c.Load(things)
}

// LoadFile reads the definitions in path and registers them in c. It
// fails with FILE_NOT_FOUND when path does not exist and INVALID_FORMAT
// when it cannot be parsed.
func LoadFile(c *container.Container, path string) error {
	things, err := ReadFile(path)
	if err != nil {
		return err
	}
	if err := c.Load(things); err != nil {
		return err
	}
	logger.Get("loader").Debug("definitions loaded", logger.Fields(
		logger.FieldContainerID, c.ID(),
		"file", path,
		"entries", len(things),
	))
	return nil
}

// LoadEnvFile registers the KEY=value pairs of a dotenv file in c, whatever
// the file is named.
func LoadEnvFile(c *container.Container, path string) error {
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return errors.FileNotFound(path)
	}
	things, err := readEnvFile(path)
	if err != nil {
		return err
	}
	return c.Load(things)
}

// LoadFiles loads each file in order and stops at the first failure.
// Earlier files win on duplicate names.
func LoadFiles(c *container.Container, paths ...string) error {
	for _, path := range paths {
		if err := LoadFile(c, path); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile parses the definitions in path without registering them.
func ReadFile(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, errors.FileNotFound(path)
	}
	if isEnvFile(path) {
		return readEnvFile(path)
	}

	format, ok := formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, errors.InvalidFormat(path, nil).
			WithDetail("reason", "unsupported file extension")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(format)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.InvalidFormat(path, err)
	}
	return v.AllSettings(), nil
}

func readEnvFile(path string) (map[string]any, error) {
	pairs, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.InvalidFormat(path, err)
	}
	things := make(map[string]any, len(pairs))
	for k, v := range pairs {
		things[k] = v
	}
	return things, nil
}

func isEnvFile(path string) bool {
	base := filepath.Base(path)
	return base == ".env" || strings.HasPrefix(base, ".env.") || strings.EqualFold(filepath.Ext(base), ".env")
}
