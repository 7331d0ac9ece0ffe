package main

import (
	"bytes"
	"testing"

	"cs2bedrock/internal/mathutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportQuarterTurn(t *testing.T) {
	var buf bytes.Buffer
	worst := report(&buf, mathutil.Vec3{90, 0, 0}, mathutil.Vec3{0, 1, 0},
		mathutil.OrderYXZ, []mathutil.Order{mathutil.OrderYXZ, mathutil.OrderLZYX}, 4)

	assert.LessOrEqual(t, worst, mathutil.Epsilon)
	out := buf.String()
	assert.Contains(t, out, "quat    [0.7071, 0, 0, 0.7071]")
	assert.Contains(t, out, "delta   [0, 0, 0]")
	assert.Contains(t, out, "point   [0, 0, 1]")
	assert.Contains(t, out, "LZYX  [90, 0, 0]")
	assert.NotContains(t, out, "zero rotation")
}

func TestReportZeroRotation(t *testing.T) {
	var buf bytes.Buffer
	worst := report(&buf, mathutil.Vec3{0, 360, -720}, mathutil.Vec3{1, 2, 3},
		mathutil.OrderXYZ, mathutil.Orders(), 3)

	assert.LessOrEqual(t, worst, mathutil.Epsilon)
	assert.Contains(t, buf.String(), "(zero rotation, omitted in Bedrock output)")
	// Whole turns collapse to zero, so the same-order delta is zero too.
	assert.Contains(t, buf.String(), "delta   [0, 0, 0]")
}

func TestParseVec(t *testing.T) {
	v, err := parseVec(" 35, 15 ,75")
	require.NoError(t, err)
	assert.Equal(t, mathutil.Vec3{35, 15, 75}, v)

	_, err = parseVec("1,2")
	require.Error(t, err)
	_, err = parseVec("1,x,3")
	require.Error(t, err)
}
