package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v2"
)

var AppConfig *Config

const (
	// ProtocolHTTP is plain WS-Management on port 16992.
	ProtocolHTTP = "http"
	// ProtocolHTTPS is WS-Management over TLS on port 16993.
	ProtocolHTTPS = "https"

	// ManagementPath is the fixed WS-Management path on AMT firmware.
	ManagementPath = "/wsman"
)

// ProtocolPorts maps the management protocol to its AMT port.
var ProtocolPorts = map[string]int{
	ProtocolHTTP:  16992,
	ProtocolHTTPS: 16993,
}

type (
	// Config -.
	Config struct {
		App `yaml:"app"`
		Log `yaml:"logger"`
		AMT `yaml:"amt"`
	}

	// App -.
	App struct {
		Name    string `env-required:"true" yaml:"name" env:"APP_NAME" validate:"required"`
		Version string `yaml:"version" env:"APP_VERSION"`
	}

	// Log -.
	Log struct {
		Level string `env-required:"true" yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	}

	// AMT -.
	AMT struct {
		Host              string `yaml:"host" env:"AMT_HOST" validate:"required"`
		Protocol          string `yaml:"protocol" env:"AMT_PROTOCOL" validate:"oneof=http https"`
		Username          string `yaml:"username" env:"AMT_USERNAME" validate:"required"`
		Password          string `yaml:"password" env:"AMT_PASSWORD"`
		UseDigest         bool   `yaml:"use_digest" env:"AMT_USE_DIGEST"`
		SelfSignedAllowed bool   `yaml:"self_signed_allowed" env:"AMT_SELF_SIGNED_ALLOWED"`
		PinnedCert        string `yaml:"pinned_cert" env:"AMT_PINNED_CERT"`
		LogAMTMessages    bool   `yaml:"log_amt_messages" env:"AMT_LOG_MESSAGES"`
		DumpRequests      bool   `yaml:"dump_requests" env:"AMT_DUMP_REQUESTS"`
	}
)

// Port returns the AMT port for the configured protocol.
func (a AMT) Port() int {
	return ProtocolPorts[a.Protocol]
}

// UseTLS reports whether the configured protocol is https.
func (a AMT) UseTLS() bool {
	return a.Protocol == ProtocolHTTPS
}

// Endpoint returns the WS-Management endpoint URL addressed in requests.
func (a AMT) Endpoint() string {
	return fmt.Sprintf("%s://%s:%d%s", a.Protocol, a.Host, a.Port(), ManagementPath)
}

// defaultConfig constructs the in-memory default configuration.
func defaultConfig() *Config {
	return &Config{
		App: App{
			Name:    "amtctl",
			Version: "DEVELOPMENT",
		},
		Log: Log{
			Level: "info",
		},
		AMT: AMT{
			Host:              "localhost",
			Protocol:          ProtocolHTTP,
			Username:          "admin",
			Password:          "",
			UseDigest:         true,
			SelfSignedAllowed: false,
			LogAMTMessages:    false,
			DumpRequests:      false,
		},
	}
}

// resolveConfigPath determines the effective config file path based on a flag value or default location.
func resolveConfigPath(configPathFlag string) (string, error) {
	if configPathFlag != "" {
		return configPathFlag, nil
	}

	ex, err := os.Executable()
	if err != nil {
		return "", err
	}

	exPath := filepath.Dir(ex)

	return filepath.Join(exPath, "config", "config.yml"), nil
}

// readOrInitConfig attempts to read the config file; if it doesn't exist, writes the provided cfg to disk.
func readOrInitConfig(configPath string, cfg *Config) error {
	err := cleanenv.ReadConfig(configPath, cfg)
	if err == nil {
		return nil
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		configDir := filepath.Dir(configPath)
		if mkErr := os.MkdirAll(configDir, os.ModePerm); mkErr != nil {
			return mkErr
		}

		file, cErr := os.Create(configPath)
		if cErr != nil {
			return cErr
		}
		defer file.Close()

		encoder := yaml.NewEncoder(file)
		defer encoder.Close()

		if encErr := encoder.Encode(cfg); encErr != nil {
			return encErr
		}

		return nil
	}

	return err
}

// NewConfig returns app config read from configPath (or the default location
// next to the executable when empty), overridden by environment variables.
func NewConfig(configPath string) (*Config, error) {
	AppConfig = defaultConfig()

	path, err := resolveConfigPath(configPath)
	if err != nil {
		return nil, err
	}

	if err := readOrInitConfig(path, AppConfig); err != nil {
		return nil, err
	}

	if err := cleanenv.ReadEnv(AppConfig); err != nil {
		return nil, err
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(AppConfig); err != nil {
		return nil, fmt.Errorf("config - NewConfig - validate: %w", err)
	}

	return AppConfig, nil
}
