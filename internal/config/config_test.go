package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := FromEnv(lookupFrom(map[string]string{"DB_NAME": "league.db"}))
		require.NoError(t, err)
		assert.Equal(t, "league.db", cfg.DBName)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, log.InfoLevel, cfg.LogLevel)
		assert.True(t, cfg.Import.AutoRegister)
		assert.GreaterOrEqual(t, cfg.Import.Workers, 1)
		assert.Empty(t, cfg.ProjectID)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := FromEnv(lookupFrom(map[string]string{
			"DB_NAME":               "league.db",
			"PORT":                  "9000",
			"TURSO_PRIMARY_URL":     "libsql://league.turso.io",
			"TURSO_AUTH_TOKEN":      "secret",
			"GCP_PROJECT":           "darts",
			"ROSTER_FILE":           "roster.yaml",
			"AUTO_REGISTER_PLAYERS": "false",
			"IMPORT_WORKERS":        "2",
			"LOG_LEVEL":             "debug",
		}))
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, "libsql://league.turso.io", cfg.Turso.PrimaryURL)
		assert.Equal(t, "darts", cfg.ProjectID)
		assert.Equal(t, "roster.yaml", cfg.Import.RosterFile)
		assert.False(t, cfg.Import.AutoRegister)
		assert.Equal(t, 2, cfg.Import.Workers)
		assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	})

	t.Run("errors", func(t *testing.T) {
		for name, env := range map[string]map[string]string{
			"missing db":     {},
			"bad bool":       {"DB_NAME": "x", "AUTO_REGISTER_PLAYERS": "maybe"},
			"bad level":      {"DB_NAME": "x", "LOG_LEVEL": "loud"},
			"zero workers":   {"DB_NAME": "x", "IMPORT_WORKERS": "0"},
			"non-numeric wk": {"DB_NAME": "x", "IMPORT_WORKERS": "many"},
		} {
			_, err := FromEnv(lookupFrom(env))
			assert.Error(t, err, name)
		}
	})
}

const rosterYAML = `
teams:
  - name: Bullseyes
    players:
      - name: Tony M
        aliases: [Tony, T. M]
      - name: Derek Fess
  - name: Arrows
    players:
      - id: p-jenn
        name: Jenn Malek
        team: Guest
        aliases: [Jenn M]
`

func TestParseRoster(t *testing.T) {
	r, err := ParseRoster([]byte(rosterYAML))
	require.NoError(t, err)

	players := r.Players()
	require.Len(t, players, 3)
	assert.Equal(t, "Bullseyes", players[0].Team)
	assert.Equal(t, []string{"Tony", "T. M"}, players[0].Aliases)
	assert.Equal(t, "p-jenn", players[2].ID)
	assert.Equal(t, "Guest", players[2].Team, "an explicit team wins over the group")

	assert.ElementsMatch(t, []string{"Tony M", "Tony", "T. M", "Derek Fess", "Jenn Malek", "Jenn M"}, r.Names())
}

func TestParseRoster_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":        "teams: [",
		"empty name":      "teams:\n  - name: A\n    players:\n      - aliases: [x]\n",
		"shared alias":    "teams:\n  - name: A\n    players:\n      - name: Tony M\n        aliases: [Tony]\n      - name: Tony B\n        aliases: [tony]\n",
		"alias is a name": "teams:\n  - name: A\n    players:\n      - name: Tony M\n      - name: Tony B\n        aliases: [Tony M]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRoster([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rosterYAML), 0o600))

	r, err := LoadRoster(path)
	require.NoError(t, err)
	assert.Len(t, r.Teams, 2)

	_, err = LoadRoster(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
