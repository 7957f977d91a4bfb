package property

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCentsFromDollarsRounding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		dollars float64
		want    Cents
	}{
		{0, 0},
		{0.01, 1},
		{123.456, 12346},
		{88235.294117, 8823529},
		{-20.506, -2051},
		{912500, 91250000},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CentsFromDollars(tc.dollars), "dollars=%v", tc.dollars)
	}
}

func TestCentsString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "$0.00", Cents(0).String())
	require.Equal(t, "$912,500.00", Cents(91250000).String())
	require.Equal(t, "-$1,234.56", Cents(-123456).String())
	require.Equal(t, "$999.99", Cents(99999).String())
}

func TestCentsFormat(t *testing.T) {
	t.Parallel()

	require.Equal(t, "C$912,500.00", Cents(91250000).Format("C$"))
	require.Equal(t, "-€20.50", Cents(-2050).Format("€"))
}

func TestCentsJSONRoundTrip(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(Cents(8823529))
	require.NoError(t, err)
	require.Equal(t, "88235.29", string(out))

	out, err = json.Marshal(Cents(-2050))
	require.NoError(t, err)
	require.Equal(t, "-20.50", string(out))

	var c Cents
	require.NoError(t, json.Unmarshal([]byte("912500"), &c))
	require.Equal(t, Cents(91250000), c)
	require.NoError(t, json.Unmarshal([]byte("88235.29"), &c))
	require.Equal(t, Cents(8823529), c)
	require.Error(t, json.Unmarshal([]byte(`"abc"`), &c))
}
