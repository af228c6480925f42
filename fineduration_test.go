package fineclock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFineDurationString(t *testing.T) {
	require.Equal(t, "0ns", FineDuration{}.String())
	require.Equal(t, "1ps", FromPicoseconds(1).String())
	require.Equal(t, "1ns", FromPicoseconds(1_000).String())
	require.Equal(t, "1.5µs", FromPicoseconds(1_500_000).String())
	require.Equal(t, "2ms", FromPicoseconds(2_000_000_000).String())
	require.Equal(t, "1s", FromPicoseconds(1_000_000_000_000).String())
}

func TestFineDurationAdd(t *testing.T) {
	a := FromPicoseconds(500)
	b := FromPicoseconds(750)
	require.Equal(t, uint64(1250), a.Add(b).Picoseconds())
}

func TestFineDurationSaturatingSub(t *testing.T) {
	a := FromPicoseconds(100)
	b := FromPicoseconds(150)
	require.True(t, a.SaturatingSub(b).IsZero())

	c := FromPicoseconds(200)
	require.Equal(t, uint64(100), c.SaturatingSub(a).Picoseconds())
}

func TestFineDurationDivBySize(t *testing.T) {
	d := FromPicoseconds(1_000)
	require.Equal(t, uint64(100), d.DivBySize(10).Picoseconds())
	require.True(t, d.DivBySize(0).IsZero())
}

func TestFineDurationCompare(t *testing.T) {
	a := FromPicoseconds(1)
	b := FromPicoseconds(2)
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(a))
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
}

func TestFineDurationIsZero(t *testing.T) {
	require.True(t, FineDuration{}.IsZero())
	require.False(t, FromPicoseconds(1).IsZero())
}
