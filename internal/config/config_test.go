package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
user_profile:
  name: Jane Smith
  education: BSc Computer Science
  experience_summary: Five years of backend work on data infrastructure.
  skills:
    - Go
    - Python
search_filters:
  role_categories:
    - engineering
  allowed_locations:
    - Remote
    - San Francisco
settings:
  max_applications_per_session: 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", cfg.Profile.Name)
	assert.Equal(t, []string{"Go", "Python"}, cfg.Profile.Skills)
	assert.Equal(t, []string{"Remote", "San Francisco"}, cfg.Filters.AllowedLocations)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 10, cfg.Settings.MaxApplications)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, DefaultDataDir, cfg.Settings.DataDir)
	assert.Equal(t, DefaultUserDataDir, cfg.Settings.UserDataDir)
	assert.Equal(t, DefaultDelayMin, cfg.Settings.DelayMinSeconds)
	assert.Equal(t, DefaultDelayMax, cfg.Settings.DelayMaxSeconds)
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load(writeConfig(t, validYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadMissingProfileFields(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	_, err := Load(writeConfig(t, "user_profile:\n  name: Jane Smith\n"))
	assert.Error(t, err)
}

func TestLoadInvalidDelayRange(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	yaml := validYAML + `  delay_min_seconds: 20
  delay_max_seconds: 5
`
	_, err := Load(writeConfig(t, yaml))
	assert.Error(t, err, "delay max below min must fail validation")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
