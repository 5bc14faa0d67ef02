package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfIsValid(t *testing.T) {
	c := DefaultConf
	require.NoError(t, c.Validate())
	assert.Equal(t, 40, c.SwarmSize)
	assert.Equal(t, 50.0, c.MaxDist)
	assert.Equal(t, 10.0, c.MaxVelocity)
}

func TestParseConfigTOML(t *testing.T) {
	path := writeFile(t, "flock.toml", `
output = "out/flock.h5"
swarm_size = 120
max_velocity = 4.5
log_level = "debug"
`)
	c, err := ParseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "out/flock.h5", c.Output)
	assert.Equal(t, 120, c.SwarmSize)
	assert.Equal(t, 4.5, c.MaxVelocity)
	assert.Equal(t, "debug", c.LogLevel)

	// untouched keys keep their defaults
	assert.Equal(t, DefaultConf.MaxDist, c.MaxDist)
	assert.Equal(t, DefaultConf.Steps, c.Steps)

	// parsing does not alter the defaults
	assert.Equal(t, 40, DefaultConf.SwarmSize)
}

func TestParseConfigYAML(t *testing.T) {
	for _, name := range []string{"flock.yaml", "flock.yml"} {
		path := writeFile(t, name, `
swarm_size: 7
width: 300
height: 200
workers: 4
`)
		c, err := ParseConfig(path)
		require.NoError(t, err, name)
		assert.Equal(t, 7, c.SwarmSize)
		assert.Equal(t, 300.0, c.Width)
		assert.Equal(t, 200.0, c.Height)
		assert.Equal(t, 4, c.Workers)
		assert.Equal(t, DefaultConf.BoidSize, c.BoidSize)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown key", "a.toml", "swarm_sise = 3\n"},
		{"bad toml", "b.toml", "swarm_size = \n"},
		{"bad yaml", "c.yaml", "swarm_size: [\n"},
		{"empty swarm", "d.toml", "swarm_size = 0\n"},
		{"zero width", "e.yaml", "width: 0\n"},
		{"negative velocity", "f.toml", "max_velocity = -1.0\n"},
		{"zero radius", "g.toml", "max_dist = 0.0\n"},
		{"no steps", "h.toml", "output = \"x.h5\"\nsteps = 0\n"},
		{"bad level", "i.toml", "log_level = \"chatty\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := ParseConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	c := DefaultConf
	c.Seed = 3
	c.SwarmSize = 25
	a := setup(&c, nil)
	b := setup(&c, nil)
	require.Len(t, a.Swarm, 25)
	assert.Equal(t, a.Swarm, b.Swarm, "same seed gives same swarm")
	assert.Equal(t, 10.0, a.Swarm[0].Size.X)
	assert.Equal(t, c.MaxDist, a.Params.MaxDist)

	require.NoError(t, stepper(a, 1)())
	require.NoError(t, stepper(b, 3)())
	assert.Equal(t, a.Swarm, b.Swarm)
}
