package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/ticket-engine/pricing"
	"github.com/warp/ticket-engine/reward"
)

func evenTraffic(level int) map[pricing.ConcertName]int {
	return map[pricing.ConcertName]int{
		"Coldplay": level, "Arijit Singh": level, "Taylor Swift": level,
	}
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewEngine_Validation(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		_, err := pricing.NewEngine(pricing.Catalog{})
		assert.ErrorIs(t, err, pricing.ErrEmptyCatalog)
	})

	t.Run("non-positive price", func(t *testing.T) {
		catalog := pricing.Catalog{
			{Name: "Free Show", BasePrice: decimal.Zero, TotalTickets: 10, EventDate: date(2025, time.October, 1)},
		}
		_, err := pricing.NewEngine(catalog)

		var invalid *pricing.InvalidConcertError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, pricing.ConcertName("Free Show"), invalid.Name)
	})

	t.Run("zero tickets", func(t *testing.T) {
		catalog := pricing.Catalog{
			{Name: "Sold Out", BasePrice: decimal.NewFromInt(100), TotalTickets: 0, EventDate: date(2025, time.October, 1)},
		}
		_, err := pricing.NewEngine(catalog)

		var invalid *pricing.InvalidConcertError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("invalid reward policy", func(t *testing.T) {
		_, err := pricing.NewEngine(demoCatalog(), pricing.WithRewardPolicy(reward.Policy{Bins: 0}))

		var invalid *reward.InvalidPolicyError
		assert.ErrorAs(t, err, &invalid)
	})
}

// =============================================================================
// DAY ADVANCE
// =============================================================================

func TestAdvanceDay_SingleDayOutcome(t *testing.T) {
	// GIVEN: 2025-09-01, even traffic 50, a prompt naming Coldplay, and a
	//        random source that always draws 3
	// THEN: every field of the snapshot is exactly predictable

	engine := newTestEngine(t)

	snapshot, err := engine.AdvanceDay("I want Coldplay please", evenTraffic(50))
	require.NoError(t, err)

	assert.Equal(t, "2025-09-01", snapshot.Date.String())
	require.Len(t, snapshot.Concerts, 3)

	// Preferred concert: 7000 x 1.15 = 8050. Demand draw is Intn(6) = 3.
	coldplay := snapshot.Concerts["Coldplay"]
	assert.True(t, coldplay.Price.Equal(price(8050)), "got %s", coldplay.Price)
	assert.Equal(t, 50, coldplay.Traffic)
	assert.Equal(t, pricing.PreferenceSelected, coldplay.Preference)
	assert.Equal(t, 3, coldplay.SoldToday)
	assert.Equal(t, 3, coldplay.TotalSold)
	assert.Equal(t, 997, coldplay.Remaining)
	assert.True(t, coldplay.FloorPrice.Equal(price(8050)))
	// Single-entry history scores at the degenerate maximum.
	assert.Equal(t, 4.0, coldplay.Reward)

	// Unselected concerts drop to the not-interested band: 5000 x 0.9 = 4500.
	arijit := snapshot.Concerts["Arijit Singh"]
	assert.True(t, arijit.Price.Equal(price(4500)), "got %s", arijit.Price)
	assert.Equal(t, pricing.PreferenceNotInterested, arijit.Preference)

	assert.Equal(t, "2025-09-02", engine.CurrentDate().String())
}

func TestAdvanceDay_MissingTrafficTouchesNothing(t *testing.T) {
	engine := newTestEngine(t)

	traffic := map[pricing.ConcertName]int{"Coldplay": 50, "Arijit Singh": 50}
	_, err := engine.AdvanceDay("I want Coldplay", traffic)

	require.ErrorIs(t, err, pricing.ErrMissingTraffic)
	var concertErr *pricing.ConcertError
	require.ErrorAs(t, err, &concertErr)
	assert.Equal(t, pricing.ConcertName("Taylor Swift"), concertErr.Name)

	// All-or-nothing: the failed day left no trace.
	assert.Equal(t, "2025-09-01", engine.CurrentDate().String())
	assert.Empty(t, engine.PriceHistory("Coldplay"))
	assert.Equal(t, 0, engine.Sold("Coldplay"))
	assert.Equal(t, pricing.PreferenceNeutral, engine.Preference("Coldplay"))
}

func TestAdvanceDay_HistoryGrowsOncePerDay(t *testing.T) {
	engine := newTestEngine(t)

	const days = 5
	for i := 0; i < days; i++ {
		_, err := engine.AdvanceDay("", evenTraffic(60))
		require.NoError(t, err)
	}

	for _, name := range engine.Catalog().Names() {
		assert.Len(t, engine.PriceHistory(name), days, "%s", name)
	}
	assert.Equal(t, "2025-09-06", engine.CurrentDate().String())
}

func TestAdvanceDay_LowTrafficSellsAtMostOne(t *testing.T) {
	// Traffic below 10 still allows a single sale: the demand ceiling
	// is max(1, traffic/10).

	engine := newTestEngine(t) // draw of 3 clamps to Intn(2) - 1 = 1

	snapshot, err := engine.AdvanceDay("", evenTraffic(5))
	require.NoError(t, err)

	for name, day := range snapshot.Concerts {
		assert.LessOrEqual(t, day.SoldToday, 1, "%s", name)
	}
}

func TestAdvanceDay_TicketConservation(t *testing.T) {
	engine := newTestEngine(t)

	soldByDay := make(map[pricing.ConcertName]int)
	for i := 0; i < 10; i++ {
		snapshot, err := engine.AdvanceDay("", evenTraffic(100))
		require.NoError(t, err)

		for name, day := range snapshot.Concerts {
			soldByDay[name] += day.SoldToday
			assert.Equal(t, soldByDay[name], day.TotalSold, "%s", name)
			assert.GreaterOrEqual(t, day.Remaining, 0, "%s", name)
		}
	}

	for _, c := range engine.Catalog() {
		assert.Equal(t, soldByDay[c.Name], engine.Sold(c.Name))
		assert.LessOrEqual(t, engine.Sold(c.Name), c.TotalTickets)
	}
}

// =============================================================================
// SELLING
// =============================================================================

func TestSell_ClampsToRemaining(t *testing.T) {
	engine := newTestEngine(t)

	sold, err := engine.Sell("Coldplay", 400)
	require.NoError(t, err)
	assert.Equal(t, 400, sold)

	// Only 600 remain; a larger ask clamps.
	sold, err = engine.Sell("Coldplay", 10_000)
	require.NoError(t, err)
	assert.Equal(t, 600, sold)
	assert.Equal(t, 1000, engine.Sold("Coldplay"))

	// Sold out: further sales are zero, never negative.
	sold, err = engine.Sell("Coldplay", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, sold)
}

func TestSell_NegativeCountSellsNothing(t *testing.T) {
	engine := newTestEngine(t)

	sold, err := engine.Sell("Coldplay", -3)
	require.NoError(t, err)
	assert.Equal(t, 0, sold)
	assert.Equal(t, 0, engine.Sold("Coldplay"))
}

func TestSell_UnknownConcert(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Sell("Nobody", 1)
	assert.ErrorIs(t, err, pricing.ErrUnknownConcert)
}

// =============================================================================
// QUERY SURFACE
// =============================================================================

func TestState_BeforeFirstDayShowsBasePrices(t *testing.T) {
	engine := newTestEngine(t)

	view := engine.State()
	assert.Equal(t, "2025-09-01", view.Date.String())

	coldplay := view.Concerts["Coldplay"]
	assert.True(t, coldplay.LatestPrice.Equal(price(7000)))
	assert.Equal(t, 1000, coldplay.Remaining)
	assert.Equal(t, pricing.PreferenceNeutral, coldplay.Preference)
}

func TestState_TracksLatestSimulatedDay(t *testing.T) {
	engine := newTestEngine(t)

	snapshot, err := engine.AdvanceDay("I want Coldplay", evenTraffic(50))
	require.NoError(t, err)

	view := engine.State()
	coldplay := view.Concerts["Coldplay"]
	assert.True(t, coldplay.LatestPrice.Equal(snapshot.Concerts["Coldplay"].Price))
	assert.Equal(t, snapshot.Concerts["Coldplay"].Remaining, coldplay.Remaining)
	assert.Equal(t, pricing.PreferenceSelected, coldplay.Preference)
}

func TestRandomTraffic_StaysInRange(t *testing.T) {
	engine := newTestEngine(t)

	traffic := engine.RandomTraffic(20, 100)
	require.Len(t, traffic, 3)
	for name, level := range traffic {
		assert.GreaterOrEqual(t, level, 20, "%s", name)
		assert.LessOrEqual(t, level, 100, "%s", name)
	}
}

func TestPriceHistory_ReturnsACopy(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.AdvanceDay("", evenTraffic(50))
	require.NoError(t, err)

	history := engine.PriceHistory("Coldplay")
	require.Len(t, history, 1)
	history[0] = decimal.NewFromInt(1)

	fresh := engine.PriceHistory("Coldplay")
	assert.False(t, fresh[0].Equal(decimal.NewFromInt(1)), "mutating the copy must not touch engine state")
}
