package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default long method thresholds
const (
	// DefaultMaxMethodLines is the maximum acceptable function length.
	// Length is the span between the def line and the last body line.
	DefaultMaxMethodLines = 30

	// DefaultMaxMethodComplexity is the maximum acceptable McCabe
	// cyclomatic complexity for one function.
	DefaultMaxMethodComplexity = 10
)

// Default god class thresholds
const (
	DefaultMaxClassFields  = 15
	DefaultMaxClassMethods = 20
	DefaultMaxClassLines   = 200
)

// Default parameter list threshold, excluding the implicit receiver
const DefaultMaxParameters = 5

// Default magic number settings
const (
	// DefaultMinOccurrences is how many times a value must repeat in one
	// unit before it is reported.
	DefaultMinOccurrences = 3

	// DefaultMinMagicValue and DefaultMaxMagicValue bound the absolute
	// magnitude of values considered magic.
	DefaultMinMagicValue = 2
	DefaultMaxMagicValue = 1000
)

// Default duplicated code settings
const (
	// DefaultMinSimilarity is the similarity score at or above which a
	// function pair is reported.
	DefaultMinSimilarity = 0.8

	// DefaultMinChunkSize is the minimum statement count for a function
	// to enter pairwise comparison, and the minimum line count of the
	// shorter side of a reported pair.
	DefaultMinChunkSize = 3
)

// Default feature envy settings
const (
	DefaultMinForeignAccesses = 2
	DefaultForeignAccessRatio = 0.5
)

// Config represents the main configuration structure
type Config struct {
	// Smells holds the per-detector thresholds
	Smells SmellsConfig `mapstructure:"smells" yaml:"smells"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Analysis holds file selection configuration
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
}

// SmellsConfig groups the configuration of every detector
type SmellsConfig struct {
	LongMethod         LongMethodConfig         `mapstructure:"long_method" yaml:"long_method"`
	GodClass           GodClassConfig           `mapstructure:"god_class" yaml:"god_class"`
	DuplicatedCode     DuplicatedCodeConfig     `mapstructure:"duplicated_code" yaml:"duplicated_code"`
	LargeParameterList LargeParameterListConfig `mapstructure:"large_parameter_list" yaml:"large_parameter_list"`
	MagicNumbers       MagicNumbersConfig       `mapstructure:"magic_numbers" yaml:"magic_numbers"`
	FeatureEnvy        FeatureEnvyConfig        `mapstructure:"feature_envy" yaml:"feature_envy"`
}

// LongMethodConfig holds thresholds for the long method detector
type LongMethodConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// MaxLines is the maximum acceptable function length in lines
	MaxLines int `mapstructure:"max_lines" yaml:"max_lines"`

	// MaxComplexity is the maximum acceptable cyclomatic complexity
	MaxComplexity int `mapstructure:"max_complexity" yaml:"max_complexity"`
}

// Validate checks the long method thresholds
func (c *LongMethodConfig) Validate() error {
	if c.MaxLines < 1 {
		return fmt.Errorf("smells.long_method.max_lines must be >= 1, got %d", c.MaxLines)
	}
	if c.MaxComplexity < 1 {
		return fmt.Errorf("smells.long_method.max_complexity must be >= 1, got %d", c.MaxComplexity)
	}
	return nil
}

// GodClassConfig holds thresholds for the god class detector
type GodClassConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	MaxFields  int `mapstructure:"max_fields" yaml:"max_fields"`
	MaxMethods int `mapstructure:"max_methods" yaml:"max_methods"`
	MaxLines   int `mapstructure:"max_lines" yaml:"max_lines"`
}

// Validate checks the god class thresholds
func (c *GodClassConfig) Validate() error {
	if c.MaxFields < 1 {
		return fmt.Errorf("smells.god_class.max_fields must be >= 1, got %d", c.MaxFields)
	}
	if c.MaxMethods < 1 {
		return fmt.Errorf("smells.god_class.max_methods must be >= 1, got %d", c.MaxMethods)
	}
	if c.MaxLines < 1 {
		return fmt.Errorf("smells.god_class.max_lines must be >= 1, got %d", c.MaxLines)
	}
	return nil
}

// DuplicatedCodeConfig holds thresholds for the duplicated code detector
type DuplicatedCodeConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// MinSimilarity is the reporting threshold in [0, 1]
	MinSimilarity float64 `mapstructure:"min_similarity" yaml:"min_similarity"`

	// MinChunkSize is the minimum statement count for comparison
	// eligibility and the minimum line count of a reported pair's
	// shorter side.
	MinChunkSize int `mapstructure:"min_chunk_size" yaml:"min_chunk_size"`
}

// Validate checks the duplicated code thresholds
func (c *DuplicatedCodeConfig) Validate() error {
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("smells.duplicated_code.min_similarity must be in [0, 1], got %g", c.MinSimilarity)
	}
	if c.MinChunkSize < 1 {
		return fmt.Errorf("smells.duplicated_code.min_chunk_size must be >= 1, got %d", c.MinChunkSize)
	}
	return nil
}

// LargeParameterListConfig holds the parameter count threshold
type LargeParameterListConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// MaxParameters excludes the implicit receiver of methods
	MaxParameters int `mapstructure:"max_parameters" yaml:"max_parameters"`
}

// Validate checks the parameter list threshold
func (c *LargeParameterListConfig) Validate() error {
	if c.MaxParameters < 1 {
		return fmt.Errorf("smells.large_parameter_list.max_parameters must be >= 1, got %d", c.MaxParameters)
	}
	return nil
}

// MagicNumbersConfig holds settings for the magic number detector
type MagicNumbersConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// MinOccurrences is how many times a value must repeat before it
	// is reported.
	MinOccurrences int `mapstructure:"min_occurrences" yaml:"min_occurrences"`

	// Whitelist lists values that are never reported
	Whitelist []float64 `mapstructure:"whitelist" yaml:"whitelist"`

	// MinValue and MaxValue bound the absolute magnitude of values
	// considered magic.
	MinValue float64 `mapstructure:"min_value" yaml:"min_value"`
	MaxValue float64 `mapstructure:"max_value" yaml:"max_value"`
}

// Validate checks the magic number settings
func (c *MagicNumbersConfig) Validate() error {
	if c.MinOccurrences < 1 {
		return fmt.Errorf("smells.magic_numbers.min_occurrences must be >= 1, got %d", c.MinOccurrences)
	}
	if c.MinValue > c.MaxValue {
		return fmt.Errorf("smells.magic_numbers.min_value (%g) must be <= max_value (%g)", c.MinValue, c.MaxValue)
	}
	return nil
}

// IsWhitelisted reports whether the value is excluded from detection
func (c *MagicNumbersConfig) IsWhitelisted(value float64) bool {
	for _, allowed := range c.Whitelist {
		if value == allowed {
			return true
		}
	}
	return false
}

// FeatureEnvyConfig holds thresholds for the feature envy detector
type FeatureEnvyConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// MinForeignAccesses is the minimum access count of a foreign group
	// before it is reported.
	MinForeignAccesses int `mapstructure:"min_foreign_accesses" yaml:"min_foreign_accesses"`

	// ForeignAccessRatio is the minimum foreign-to-self access ratio
	ForeignAccessRatio float64 `mapstructure:"foreign_access_ratio" yaml:"foreign_access_ratio"`
}

// Validate checks the feature envy thresholds
func (c *FeatureEnvyConfig) Validate() error {
	if c.MinForeignAccesses < 0 {
		return fmt.Errorf("smells.feature_envy.min_foreign_accesses must be >= 0, got %d", c.MinForeignAccesses)
	}
	if c.ForeignAccessRatio < 0 {
		return fmt.Errorf("smells.feature_envy.foreign_access_ratio must be >= 0, got %g", c.ForeignAccessRatio)
	}
	return nil
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `mapstructure:"format" yaml:"format"`
}

// AnalysisConfig holds configuration for file selection
type AnalysisConfig struct {
	// IncludePatterns specifies glob patterns for files to analyze
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies glob patterns for files to skip
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether directories are walked recursively
	Recursive bool `mapstructure:"recursive" yaml:"recursive"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Smells: SmellsConfig{
			LongMethod: LongMethodConfig{
				Enabled:       true,
				MaxLines:      DefaultMaxMethodLines,
				MaxComplexity: DefaultMaxMethodComplexity,
			},
			GodClass: GodClassConfig{
				Enabled:    true,
				MaxFields:  DefaultMaxClassFields,
				MaxMethods: DefaultMaxClassMethods,
				MaxLines:   DefaultMaxClassLines,
			},
			DuplicatedCode: DuplicatedCodeConfig{
				Enabled:       true,
				MinSimilarity: DefaultMinSimilarity,
				MinChunkSize:  DefaultMinChunkSize,
			},
			LargeParameterList: LargeParameterListConfig{
				Enabled:       true,
				MaxParameters: DefaultMaxParameters,
			},
			MagicNumbers: MagicNumbersConfig{
				Enabled:        true,
				MinOccurrences: DefaultMinOccurrences,
				Whitelist:      []float64{0, 1, -1},
				MinValue:       DefaultMinMagicValue,
				MaxValue:       DefaultMaxMagicValue,
			},
			FeatureEnvy: FeatureEnvyConfig{
				Enabled:            true,
				MinForeignAccesses: DefaultMinForeignAccesses,
				ForeignAccessRatio: DefaultForeignAccessRatio,
			},
		},
		Output: OutputConfig{
			Format: "text",
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"*.py"},
			ExcludePatterns: []string{},
			Recursive:       true,
		},
	}
}

// LoadConfig loads configuration from file or returns default config.
// TOML files, including pyproject.toml with a [tool.pysmell] table, are
// handled by the pyproject loader; everything else goes through viper.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = findDefaultConfig()
	}
	if configPath == "" {
		return config, nil
	}

	if strings.HasSuffix(configPath, ".toml") {
		return loadTomlConfig(configPath)
	}

	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// findDefaultConfig looks for configuration files in common locations
func findDefaultConfig() string {
	candidates := []string{
		".pysmell.yaml",
		".pysmell.yml",
		"pysmell.yaml",
		"pysmell.yml",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if _, err := os.Stat("pyproject.toml"); err == nil {
		return "pyproject.toml"
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if err := c.Smells.LongMethod.Validate(); err != nil {
		return err
	}
	if err := c.Smells.GodClass.Validate(); err != nil {
		return err
	}
	if err := c.Smells.DuplicatedCode.Validate(); err != nil {
		return err
	}
	if err := c.Smells.LargeParameterList.Validate(); err != nil {
		return err
	}
	if err := c.Smells.MagicNumbers.Validate(); err != nil {
		return err
	}
	if err := c.Smells.FeatureEnvy.Validate(); err != nil {
		return err
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml", c.Output.Format)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	return nil
}
