package valuation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	t.Parallel()

	// CN Tower to Parliament Hill, Ottawa: roughly 352 km.
	d := haversineKm(43.6426, -79.3871, 45.4236, -75.7009)
	require.InDelta(t, 352, d, 5)

	// identical coordinates
	require.InDelta(t, 0, haversineKm(43.7, -79.4, 43.7, -79.4), 1e-9)

	// short hop: one degree of latitude is ~111 km
	require.InDelta(t, 111, haversineKm(43.0, -79.0, 44.0, -79.0), 1)
}
