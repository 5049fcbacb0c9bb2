// Package config loads typed settings from the environment, after exporting
// an optional dotenv credential file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvFileVar names the variable holding an alternate dotenv file path.
const EnvFileVar = "POSTCREW_ENV_FILE"

// DefaultEnvFile is read when present and no alternate path is set.
const DefaultEnvFile = ".env"

// New exports the dotenv file into the environment and processes T with
// envconfig. Variables already set in the environment win over the file.
func New[T any](prefix string) (*T, error) {
	if filepath := strings.TrimSpace(os.Getenv(EnvFileVar)); filepath != "" {
		if err := exportEnvironment(filepath); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else if err := exportEnvironmentIfExists(DefaultEnvFile); err != nil {
		return nil, fmt.Errorf("failed to load default env file: %w", err)
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func exportEnvironmentIfExists(filepath string) error {
	info, err := os.Stat(filepath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportEnvironment(filepath)
}

func exportEnvironment(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	for k, value := range v.AllSettings() {
		key := strings.ToUpper(k)
		if current, ok := os.LookupEnv(key); ok && current != "" {
			continue
		}
		if err := os.Setenv(key, fmt.Sprint(value)); err != nil {
			return err
		}
	}
	return nil
}
