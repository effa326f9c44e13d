package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/beka-birhanu/mazechase/game/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRunText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, "medium", 0, 0, 42, "text", true))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "medium 15x11 (seed: 42)", lines[0])
	assert.Equal(t, byte('S'), lines[2][1])
	assert.Equal(t, byte('E'), lines[11][13])
	assert.Contains(t, buf.String(), string(routeRune))
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, "hard", 0, 0, 7, "json", true))

	var out layout
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "hard", out.Difficulty)
	assert.Equal(t, 19, out.Width)
	assert.Equal(t, 13, out.Height)
	require.NotEmpty(t, out.Route)
	assert.Equal(t, out.Exit, out.Route[len(out.Route)-1])

	grid, err := maze.Parse(out.Rows)
	require.NoError(t, err)
	for _, c := range out.Route {
		assert.True(t, grid.IsOpen(c.X, c.Z))
	}
}

func TestRunYAMLCustomSize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, "easy", 24, 9, 3, "yaml", false))

	var out layout
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 23, out.Width)
	assert.Equal(t, 9, out.Height)
	assert.Len(t, out.Rows, 9)
	assert.Empty(t, out.Route)
}

func TestRunErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, run(&buf, "insane", 0, 0, 1, "text", false), maze.ErrUnknownDifficulty)
	assert.Error(t, run(&buf, "easy", 0, 0, 1, "xml", false))
}
