package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "asuncion", Normalize("Asunción"))
	assert.Equal(t, "ciudad del este", Normalize("  Ciudad  Del  Este "))
	assert.Equal(t, "itapua", Normalize("ITAPÚA"))
	assert.Equal(t, "", Normalize("   "))
}

func TestResolveZone(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, "asuncion", r.ResolveZone("Asunción", ""))
	assert.Equal(t, "alto-parana", r.ResolveZone("Ciudad del Este", "Alto Paraná"))
	// department fallback when the city is not in the table
	assert.Equal(t, "alto-parana", r.ResolveZone("Hernandarias_typo", "Alto Paraná"))
	assert.Equal(t, "central", r.ResolveZone("", "Central"))
	assert.Equal(t, DefaultZoneID, r.ResolveZone("Nowhere", "Unknown"))
}

func TestQuoteFirstKilogramIncluded(t *testing.T) {
	r := NewResolver()

	// a 1 kg parcel costs the zone base for every service in every zone
	for _, zone := range zones {
		for _, svc := range r.Services() {
			q, err := r.Quote(svc.ID, zone.ID, 1)
			require.NoError(t, err)
			require.NotNil(t, q)
			assert.Equal(t, zone.BaseCost, q.Cost, "service %s zone %s", svc.ID, zone.ID)
		}
	}

	// fractional weight under a kilo still pays only the base
	q, err := r.Quote("standard", "asuncion", 0.4)
	require.NoError(t, err)
	require.NotNil(t, q)
	zone, _ := r.Zone("asuncion")
	assert.Equal(t, zone.BaseCost, q.Cost)
}

func TestQuoteExtraWeightProRata(t *testing.T) {
	r := NewResolver()
	zone, _ := r.Zone("asuncion")

	// fractional kilograms beyond the first are charged pro rata
	q, err := r.Quote("standard", "asuncion", 1.5)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, int64(27500), q.Cost)

	q, err = r.Quote("standard", "asuncion", 3)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, zone.BaseCost+2*zone.CostPerKg, q.Cost)
}

func TestQuoteMonotonicInWeight(t *testing.T) {
	r := NewResolver()

	var prev int64
	for _, w := range []float64{0.5, 1, 2, 3.5, 7, 10} {
		q, err := r.Quote("standard", "interior", w)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.GreaterOrEqual(t, q.Cost, prev, "weight %v", w)
		prev = q.Cost
	}
}

func TestQuoteNoOffer(t *testing.T) {
	r := NewResolver()

	q, err := r.Quote("drone", "asuncion", 1)
	require.NoError(t, err)
	assert.Nil(t, q)

	q, err = r.Quote("standard", "no-such-zone", 1)
	require.NoError(t, err)
	assert.Nil(t, q)

	// express tops out at 10 kg
	q, err = r.Quote("express", "asuncion", 10.5)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestQuoteInvalidWeight(t *testing.T) {
	r := NewResolver()

	_, err := r.Quote("standard", "asuncion", 0)
	assert.ErrorIs(t, err, ErrInvalidWeight)
	_, err = r.Quote("standard", "asuncion", -2)
	assert.ErrorIs(t, err, ErrInvalidWeight)
	_, _, err = r.QuoteAll("Asunción", "", 0)
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestQuoteAllCiudadDelEste(t *testing.T) {
	r := NewResolver()

	zoneID, quotes, err := r.QuoteAll("Ciudad del Este", "Alto Paraná", 3)
	require.NoError(t, err)
	assert.Equal(t, "alto-parana", zoneID)
	require.NotEmpty(t, quotes)

	zone, _ := r.Zone("alto-parana")
	cheapest := quotes[0]
	assert.Equal(t, zone.BaseCost+2*zone.CostPerKg, cheapest.Cost)
	assert.Equal(t, int64(49000), cheapest.Cost)

	for i := 1; i < len(quotes); i++ {
		assert.LessOrEqual(t, quotes[i-1].Cost, quotes[i].Cost)
	}
}

func TestQuoteAllDropsOverweightServices(t *testing.T) {
	r := NewResolver()

	_, quotes, err := r.QuoteAll("Asunción", "", 15)
	require.NoError(t, err)
	for _, q := range quotes {
		assert.NotEqual(t, "express", q.ServiceID)
	}
}

func TestServicesShareZoneTariff(t *testing.T) {
	r := NewResolver()

	std, err := r.Quote("standard", "interior", 2)
	require.NoError(t, err)
	require.NotNil(t, std)
	exp, err := r.Quote("express", "interior", 2)
	require.NoError(t, err)
	require.NotNil(t, exp)

	// services differ in perks, not price: same zone and weight, same cost
	assert.Equal(t, std.Cost, exp.Cost)
	assert.Equal(t, std.DeliveryDaysMax, exp.DeliveryDaysMax)
	assert.True(t, exp.Insurance)
	assert.False(t, std.Insurance)
}
