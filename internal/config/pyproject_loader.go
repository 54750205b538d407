package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// pyprojectToml mirrors the pyproject.toml layout down to [tool.pysmell]
type pyprojectToml struct {
	Tool toolTable `toml:"tool"`
}

type toolTable struct {
	Pysmell tomlConfig `toml:"pysmell"`
}

// tomlConfig shadows Config with pointer fields so that options absent
// from the file are distinguishable from explicit zero values.
type tomlConfig struct {
	Smells   tomlSmells   `toml:"smells"`
	Output   tomlOutput   `toml:"output"`
	Analysis tomlAnalysis `toml:"analysis"`
}

type tomlSmells struct {
	LongMethod         tomlLongMethod         `toml:"long_method"`
	GodClass           tomlGodClass           `toml:"god_class"`
	DuplicatedCode     tomlDuplicatedCode     `toml:"duplicated_code"`
	LargeParameterList tomlLargeParameterList `toml:"large_parameter_list"`
	MagicNumbers       tomlMagicNumbers       `toml:"magic_numbers"`
	FeatureEnvy        tomlFeatureEnvy        `toml:"feature_envy"`
}

type tomlLongMethod struct {
	Enabled       *bool `toml:"enabled"`
	MaxLines      *int  `toml:"max_lines"`
	MaxComplexity *int  `toml:"max_complexity"`
}

type tomlGodClass struct {
	Enabled    *bool `toml:"enabled"`
	MaxFields  *int  `toml:"max_fields"`
	MaxMethods *int  `toml:"max_methods"`
	MaxLines   *int  `toml:"max_lines"`
}

type tomlDuplicatedCode struct {
	Enabled       *bool    `toml:"enabled"`
	MinSimilarity *float64 `toml:"min_similarity"`
	MinChunkSize  *int     `toml:"min_chunk_size"`
}

type tomlLargeParameterList struct {
	Enabled       *bool `toml:"enabled"`
	MaxParameters *int  `toml:"max_parameters"`
}

type tomlMagicNumbers struct {
	Enabled        *bool     `toml:"enabled"`
	MinOccurrences *int      `toml:"min_occurrences"`
	Whitelist      []float64 `toml:"whitelist"`
	MinValue       *float64  `toml:"min_value"`
	MaxValue       *float64  `toml:"max_value"`
}

type tomlFeatureEnvy struct {
	Enabled            *bool    `toml:"enabled"`
	MinForeignAccesses *int     `toml:"min_foreign_accesses"`
	ForeignAccessRatio *float64 `toml:"foreign_access_ratio"`
}

type tomlOutput struct {
	Format *string `toml:"format"`
}

type tomlAnalysis struct {
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	Recursive       *bool    `toml:"recursive"`
}

// loadTomlConfig loads configuration from a TOML file, merging the set
// values over the defaults.
func loadTomlConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var pyproject pyprojectToml
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	config := DefaultConfig()
	mergeTomlConfig(config, &pyproject.Tool.Pysmell)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// FindPyprojectToml walks up the directory tree looking for pyproject.toml
func FindPyprojectToml(startDir string) (string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, "pyproject.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func mergeTomlConfig(config *Config, t *tomlConfig) {
	lm := &config.Smells.LongMethod
	setBool(&lm.Enabled, t.Smells.LongMethod.Enabled)
	setInt(&lm.MaxLines, t.Smells.LongMethod.MaxLines)
	setInt(&lm.MaxComplexity, t.Smells.LongMethod.MaxComplexity)

	gc := &config.Smells.GodClass
	setBool(&gc.Enabled, t.Smells.GodClass.Enabled)
	setInt(&gc.MaxFields, t.Smells.GodClass.MaxFields)
	setInt(&gc.MaxMethods, t.Smells.GodClass.MaxMethods)
	setInt(&gc.MaxLines, t.Smells.GodClass.MaxLines)

	dc := &config.Smells.DuplicatedCode
	setBool(&dc.Enabled, t.Smells.DuplicatedCode.Enabled)
	setFloat(&dc.MinSimilarity, t.Smells.DuplicatedCode.MinSimilarity)
	setInt(&dc.MinChunkSize, t.Smells.DuplicatedCode.MinChunkSize)

	lp := &config.Smells.LargeParameterList
	setBool(&lp.Enabled, t.Smells.LargeParameterList.Enabled)
	setInt(&lp.MaxParameters, t.Smells.LargeParameterList.MaxParameters)

	mn := &config.Smells.MagicNumbers
	setBool(&mn.Enabled, t.Smells.MagicNumbers.Enabled)
	setInt(&mn.MinOccurrences, t.Smells.MagicNumbers.MinOccurrences)
	setFloat(&mn.MinValue, t.Smells.MagicNumbers.MinValue)
	setFloat(&mn.MaxValue, t.Smells.MagicNumbers.MaxValue)
	if t.Smells.MagicNumbers.Whitelist != nil {
		mn.Whitelist = t.Smells.MagicNumbers.Whitelist
	}

	fe := &config.Smells.FeatureEnvy
	setBool(&fe.Enabled, t.Smells.FeatureEnvy.Enabled)
	setInt(&fe.MinForeignAccesses, t.Smells.FeatureEnvy.MinForeignAccesses)
	setFloat(&fe.ForeignAccessRatio, t.Smells.FeatureEnvy.ForeignAccessRatio)

	if t.Output.Format != nil {
		config.Output.Format = *t.Output.Format
	}

	if t.Analysis.IncludePatterns != nil {
		config.Analysis.IncludePatterns = t.Analysis.IncludePatterns
	}
	if t.Analysis.ExcludePatterns != nil {
		config.Analysis.ExcludePatterns = t.Analysis.ExcludePatterns
	}
	setBool(&config.Analysis.Recursive, t.Analysis.Recursive)
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
