package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pysmell/domain"
)

func TestResolveDetectors(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		kinds, err := resolveDetectors(nil, nil)
		require.NoError(t, err)
		assert.Nil(t, kinds)
	})

	t.Run("only", func(t *testing.T) {
		kinds, err := resolveDetectors([]string{"LongMethod", "GodClass"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []domain.SmellKind{domain.SmellLongMethod, domain.SmellGodClass}, kinds)
	})

	t.Run("exclude", func(t *testing.T) {
		kinds, err := resolveDetectors(nil, []string{"MagicNumbers"})
		require.NoError(t, err)
		assert.Equal(t, []domain.SmellKind{
			domain.SmellLongMethod,
			domain.SmellGodClass,
			domain.SmellDuplicatedCode,
			domain.SmellLargeParameterList,
			domain.SmellFeatureEnvy,
		}, kinds)
	})

	t.Run("only and exclude are mutually exclusive", func(t *testing.T) {
		_, err := resolveDetectors([]string{"LongMethod"}, []string{"GodClass"})
		require.Error(t, err)
	})

	t.Run("unknown detector", func(t *testing.T) {
		_, err := resolveDetectors([]string{"NotADetector"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NotADetector")
	})

	t.Run("excluding everything fails", func(t *testing.T) {
		names := make([]string, 0)
		for _, kind := range domain.AllSmellKinds() {
			names = append(names, string(kind))
		}
		_, err := resolveDetectors(nil, names)
		require.Error(t, err)
	})
}

func TestInitCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := NewInitCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(".pysmell.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(content), "long_method:")
	assert.Contains(t, string(content), "max_lines: 30")
	assert.Contains(t, out.String(), "Configuration file created")

	// Running again without --force refuses to overwrite.
	cmd = NewInitCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommandForce(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".pysmell.yaml", []byte("old"), 0o644))

	cmd := NewInitCmd()
	cmd.SetArgs([]string{"--force"})
	cmd.SetOut(new(bytes.Buffer))

	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(".pysmell.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(content), "smells:")
}

func TestInitCommandCustomPath(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := NewInitCmd()
	cmd.SetArgs([]string{"--config", filepath.Join("conf", "custom.yaml")})
	cmd.SetOut(new(bytes.Buffer))

	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join("conf", "custom.yaml"))
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "pysmell")

	out.Reset()
	cmd = NewVersionCmd()
	cmd.SetArgs([]string{"--short"})
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.NotEmpty(t, strings.TrimSpace(out.String()))
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["analyze"])
	assert.True(t, names["init"])
	assert.True(t, names["version"])
}
