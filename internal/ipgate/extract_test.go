package ipgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_FullBlock(t *testing.T) {
	raw := []byte("1 2 3 4 0.5 IP: 2.5 0.1 10.2 8.7 6.1 IPSUM=25.0 Vab=400\n")
	res := Extract(raw)
	require.NotNil(t, res)

	assert.Equal(t, "TD", res.Mode)
	assert.Equal(t, 1, res.NReadings)
	assert.Equal(t, 3, res.NGatesMax)
	assert.Equal(t, []float64{10.2, 8.7, 6.1}, res.Gates[0])
	require.NotNil(t, res.GateMS)
	assert.Equal(t, 2.5, *res.GateMS)
	require.NotNil(t, res.Tau)
	assert.Equal(t, 0.1, *res.Tau)
	require.NotNil(t, res.Totals[0])
	assert.Equal(t, 25.0, *res.Totals[0])
}

func TestExtract_IPSUMTotalFromFollowingToken(t *testing.T) {
	raw := []byte("IP: 2.0 0.1 5.5 4.4 IPSUM 9.9\n")
	res := Extract(raw)
	require.NotNil(t, res)
	require.NotNil(t, res.Totals[0])
	assert.Equal(t, 9.9, *res.Totals[0])
}

func TestExtract_NoIPSUM(t *testing.T) {
	raw := []byte("IP: 2.0 0.1 5.5 4.4 3.3\n")
	res := Extract(raw)
	require.NotNil(t, res)
	assert.Equal(t, []float64{5.5, 4.4, 3.3}, res.Gates[0])
	assert.Nil(t, res.Totals[0])
}

func TestExtract_GateRunStopsAtTelemetry(t *testing.T) {
	raw := []byte("IP: 2.0 0.1 5.5 4.4 Bat=12.4 3.3\n")
	res := Extract(raw)
	require.NotNil(t, res)
	assert.Equal(t, []float64{5.5, 4.4}, res.Gates[0], "telemetry marker ends the gate run")
}

func TestExtract_RaggedGateCounts(t *testing.T) {
	raw := []byte(
		"IP: 2.0 0.1 1 2 3\n" +
			"IP: 2.0 0.1 1 2 3 4 5\n" +
			"IP: 2.0 0.1 1 2\n")
	res := Extract(raw)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.NReadings)
	assert.Equal(t, 5, res.NGatesMax)
	assert.Len(t, res.Gates[2], 2)
}

func TestExtract_MarkerWithoutGatesDropped(t *testing.T) {
	raw := []byte(
		"IP: nothing numeric here\n" +
			"IP: 2.0 0.1 7.7 6.6\n")
	res := Extract(raw)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.NReadings, "readings with empty gate runs must be dropped")
}

func TestExtract_NoMarkerAtAll(t *testing.T) {
	raw := []byte("1 2 3 4 0.5 0.1\n2 3 4 5 0.6 0.2\n")
	assert.Nil(t, Extract(raw), "a file with no IP marker yields the distinct no-IP outcome")
}

func TestExtract_MarkerButNoValidGatesAnywhere(t *testing.T) {
	raw := []byte("IP: nothing here\n")
	assert.Nil(t, Extract(raw))
}

func TestExtract_ZeroGateWidthNormalizedToAbsent(t *testing.T) {
	raw := []byte("IP: 0 0 4.5 3.2\n")
	res := Extract(raw)
	require.NotNil(t, res)
	assert.Nil(t, res.GateMS)
	assert.Nil(t, res.Tau)
	assert.Equal(t, []float64{4.5, 3.2}, res.Gates[0])
}

func TestExtract_CommentLinesSkipped(t *testing.T) {
	raw := []byte("# IP: 2.0 0.1 9 9 9\nIP: 2.0 0.1 1.5 1.2\n")
	res := Extract(raw)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.NReadings)
}
