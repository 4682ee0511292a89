package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/internal/domain"
)

func TestSimulator_RunDefaultDataset(t *testing.T) {
	var out bytes.Buffer
	sim, err := NewSimulator(&SimulatorConfig{}, &out, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sim.Run())

	var res domain.SimulationResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.InDelta(t, res.OriginalProfit, res.NewProfit, 1e-6)
	assert.InDelta(t, 0, res.ProfitChange, 1e-9)
}

func TestSimulator_Sweep(t *testing.T) {
	var out bytes.Buffer
	sim, err := NewSimulator(&SimulatorConfig{Generate: 20, Seed: 7, Sweep: "duty", Steps: 5}, &out, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sim.Run())

	var points []domain.SweepPoint
	require.NoError(t, json.Unmarshal(out.Bytes(), &points))
	require.Len(t, points, 5)
	assert.Equal(t, -20.0, points[0].Value)
	assert.Equal(t, 20.0, points[4].Value)
	// Higher duty never raises profit.
	assert.GreaterOrEqual(t, points[0].NewProfit, points[4].NewProfit)
}

func TestSimulator_UnknownLever(t *testing.T) {
	sim, err := NewSimulator(&SimulatorConfig{Sweep: "weather"}, &bytes.Buffer{}, zap.NewNop())
	require.NoError(t, err)

	assert.Error(t, sim.Run())
}

func TestSimulator_LoadsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipments.csv")
	csv := "Date,Product,Quantity,Price_Per_Unit,Total_Value\n2024-01-01,Tea,10,5,50\n2024-02-01,Rice,4,10,40\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	sim, err := NewSimulator(&SimulatorConfig{File: path}, &bytes.Buffer{}, zap.NewNop())

	require.NoError(t, err)
	assert.Len(t, sim.records, 2)
}

func TestSimulator_Interactive(t *testing.T) {
	var out bytes.Buffer
	sim, err := NewSimulator(&SimulatorConfig{Generate: 10, Seed: 1}, &out, zap.NewNop())
	require.NoError(t, err)

	sim.RunInteractive(strings.NewReader("set shipping 25\nset nope 1\nrun\nreset\nquit\n"))

	text := out.String()
	assert.Contains(t, text, "shipping set to 25.0%")
	assert.Contains(t, text, `unknown lever "nope"`)
	assert.Contains(t, text, "original_profit")
	assert.Contains(t, text, "Levers reset")
	assert.Contains(t, text, "Goodbye!")
	assert.Equal(t, domain.SimulationParams{}, sim.params)
}
