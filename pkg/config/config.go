package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is where the configuration is read from and created when missing
	DefaultConfigPath = "config.yaml"

	defaultLowRemainingRatio = 0.2
	defaultReminderWindow    = 5
)

// BudgetSettings holds the user's monthly figures
type BudgetSettings struct {
	Income        decimal.Decimal `yaml:"income"`
	FixedCosts    decimal.Decimal `yaml:"fixedCosts"`
	SavingsTarget decimal.Decimal `yaml:"savingsTarget"`
	// LowRemainingRatio flags the month once liquidity drops below this share
	// of income minus fixed costs and savings
	LowRemainingRatio float64 `yaml:"lowRemainingRatio"`
}

// Disposable is the money left to spend in a month before any personal spending
func (b BudgetSettings) Disposable() decimal.Decimal {
	return b.Income.Sub(b.FixedCosts).Sub(b.SavingsTarget)
}

type StorageSettings struct {
	// Driver is either sqlite or yaml
	Driver string `yaml:"driver"`
	Path   string `yaml:"path,omitempty"`
}

type ReminderSettings struct {
	WindowDays int `yaml:"windowDays"`
}

// Config holds the application configuration
type Config struct {
	Currency  string           `yaml:"currency"`
	Budget    BudgetSettings   `yaml:"budget"`
	Storage   StorageSettings  `yaml:"storage"`
	Reminders ReminderSettings `yaml:"reminders"`
}

// ErrIncomeNotSet is returned by GetBudgetSettings when no monthly income is configured
var ErrIncomeNotSet = errors.New("budget income not set in configuration")

var (
	// Global configuration instance
	globalConfig *Config
	// Path the global configuration was loaded from
	globalConfigPath = DefaultConfigPath
	// Mutex to ensure thread-safe access to the global configuration
	configMutex sync.RWMutex
	// Flag to track if the configuration has been loaded
	configLoaded bool
)

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() Config {
	return Config{
		Currency: "TWD",
		Budget: BudgetSettings{
			LowRemainingRatio: defaultLowRemainingRatio,
		},
		Storage: StorageSettings{
			Driver: "sqlite",
		},
		Reminders: ReminderSettings{
			WindowDays: defaultReminderWindow,
		},
	}
}

// LoadConfig loads the configuration from the specified YAML file.
// Settings missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse the YAML data
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.Budget.LowRemainingRatio < 0 || config.Budget.LowRemainingRatio > 1 {
		return nil, fmt.Errorf("error: budget.lowRemainingRatio must be between 0 and 1, got %v", config.Budget.LowRemainingRatio)
	}

	return &config, nil
}

// InitGlobalConfig initializes the global configuration from the specified file
func InitGlobalConfig(configPath string) error {
	config, err := LoadConfig(configPath)

	configMutex.Lock()
	defer configMutex.Unlock()

	globalConfigPath = configPath
	if err != nil {
		// A failed load must not leave an older configuration in place
		globalConfig = nil
		configLoaded = false
		return err
	}

	globalConfig = config
	configLoaded = true
	return nil
}

// GetConfig returns the global configuration instance
// If the configuration hasn't been loaded yet, it attempts to load it from
// the last requested path, creating a default file when there is none
func GetConfig() (*Config, error) {
	configMutex.RLock()
	if configLoaded {
		defer configMutex.RUnlock()
		return globalConfig, nil
	}
	configPath := globalConfigPath
	configMutex.RUnlock()

	if err := InitGlobalConfig(configPath); err != nil {
		// If the config file doesn't exist, create it
		if errors.Is(err, fs.ErrNotExist) {
			defaultConfig := DefaultConfig()
			if err := writeConfig(configPath, &defaultConfig); err != nil {
				return nil, err
			}

			// Set the global configuration to the default
			configMutex.Lock()
			globalConfig = &defaultConfig
			configLoaded = true
			configMutex.Unlock()

			return &defaultConfig, nil
		}
		return nil, err
	}

	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig, nil
}

// GetBudgetSettings returns the budget settings from the configuration
func GetBudgetSettings() (BudgetSettings, error) {
	config, err := GetConfig()
	if err != nil {
		return BudgetSettings{}, err
	}

	if config.Budget.Income.IsZero() {
		return config.Budget, ErrIncomeNotSet
	}

	return config.Budget, nil
}

// GetStorageSettings returns the storage settings, falling back to defaultPath
func GetStorageSettings(defaultPath string) (StorageSettings, error) {
	config, err := GetConfig()
	if err != nil {
		return StorageSettings{}, err
	}

	storage := config.Storage
	if storage.Path == "" {
		storage.Path = defaultPath
	}
	return storage, nil
}

// GetCurrency returns the display currency code
func GetCurrency() string {
	config, err := GetConfig()
	if err != nil || config.Currency == "" {
		return DefaultConfig().Currency
	}
	return config.Currency
}

// SetBudgetSettings updates the budget section and writes the configuration back to disk
func SetBudgetSettings(budget BudgetSettings) error {
	config, err := GetConfig()
	if err != nil {
		return err
	}

	configMutex.Lock()
	defer configMutex.Unlock()

	config.Budget = budget
	return writeConfig(globalConfigPath, config)
}

func writeConfig(configPath string, config *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(configPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshalling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
