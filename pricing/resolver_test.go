package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/ticket-engine/pricing"
)

// stubDecider returns a canned answer (or error) and records the call.
type stubDecider struct {
	answer string
	err    error
	called bool
	prompt string
}

func (d *stubDecider) Decide(_ context.Context, prompt string, _ pricing.StateView, _ []pricing.ConcertName) (string, error) {
	d.called = true
	d.prompt = prompt
	return d.answer, d.err
}

// =============================================================================
// PREFERENCE RESOLUTION
// =============================================================================

func TestResolvePreferences(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   map[pricing.ConcertName]int
	}{
		{
			name:   "exact name",
			prompt: "Book me Coldplay",
			want: map[pricing.ConcertName]int{
				"Coldplay":     pricing.PreferenceSelected,
				"Arijit Singh": pricing.PreferenceNotInterested,
				"Taylor Swift": pricing.PreferenceNotInterested,
			},
		},
		{
			name:   "case insensitive",
			prompt: "i really want TAYLOR SWIFT tickets",
			want: map[pricing.ConcertName]int{
				"Coldplay":     pricing.PreferenceNotInterested,
				"Arijit Singh": pricing.PreferenceNotInterested,
				"Taylor Swift": pricing.PreferenceSelected,
			},
		},
		{
			name:   "no match drops everyone",
			prompt: "surprise me",
			want: map[pricing.ConcertName]int{
				"Coldplay":     pricing.PreferenceNotInterested,
				"Arijit Singh": pricing.PreferenceNotInterested,
				"Taylor Swift": pricing.PreferenceNotInterested,
			},
		},
		{
			name:   "empty prompt",
			prompt: "",
			want: map[pricing.ConcertName]int{
				"Coldplay":     pricing.PreferenceNotInterested,
				"Arijit Singh": pricing.PreferenceNotInterested,
				"Taylor Swift": pricing.PreferenceNotInterested,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t)
			engine.ResolvePreferences(tt.prompt)

			for name, want := range tt.want {
				assert.Equal(t, want, engine.Preference(name), "%s", name)
			}
		})
	}
}

func TestResolvePreferences_Deterministic(t *testing.T) {
	// Same prompt, same outcome, regardless of how often it runs.
	engine := newTestEngine(t)

	for i := 0; i < 3; i++ {
		engine.ResolvePreferences("Arijit Singh tonight")
		assert.Equal(t, pricing.PreferenceSelected, engine.Preference("Arijit Singh"))
		assert.Equal(t, pricing.PreferenceNotInterested, engine.Preference("Coldplay"))
	}
}

func TestResolvePreferences_FirstCatalogMatchWins(t *testing.T) {
	// A prompt naming two concerts selects the first one in catalog order.
	engine := newTestEngine(t)

	engine.ResolvePreferences("Taylor Swift or Coldplay, whichever")
	assert.Equal(t, pricing.PreferenceSelected, engine.Preference("Coldplay"))
	assert.Equal(t, pricing.PreferenceNotInterested, engine.Preference("Taylor Swift"))
}

// =============================================================================
// DECISION RESOLUTION
// =============================================================================

func TestDecide_MapsDeciderAnswer(t *testing.T) {
	engine := newTestEngine(t)
	decider := &stubDecider{answer: "Arijit Singh"}

	decision := engine.Decide(context.Background(), "pick something nice", decider)

	assert.True(t, decider.called)
	assert.Equal(t, "pick something nice", decider.prompt)
	assert.False(t, decision.Wait)
	assert.Equal(t, pricing.ConcertName("Arijit Singh"), decision.Concert)
}

func TestDecide_MapsVerboseAnswerByContainment(t *testing.T) {
	engine := newTestEngine(t)
	decider := &stubDecider{answer: "I would go with Coldplay here."}

	decision := engine.Decide(context.Background(), "anything", decider)
	assert.Equal(t, pricing.ConcertName("Coldplay"), decision.Concert)
}

func TestDecide_Wait(t *testing.T) {
	engine := newTestEngine(t)

	for _, answer := range []string{"Wait", "wait", "  WAIT  "} {
		decider := &stubDecider{answer: answer}
		decision := engine.Decide(context.Background(), "should I?", decider)
		assert.True(t, decision.Wait, "answer %q", answer)
		assert.Empty(t, decision.Concert)
	}
}

func TestDecide_NilDeciderFallsBack(t *testing.T) {
	engine := newTestEngine(t)

	decision := engine.Decide(context.Background(), "I want Taylor Swift", nil)
	assert.Equal(t, pricing.ConcertName("Taylor Swift"), decision.Concert)
}

func TestDecide_DeciderErrorFallsBack(t *testing.T) {
	engine := newTestEngine(t)
	decider := &stubDecider{err: errors.New("upstream timeout")}

	decision := engine.Decide(context.Background(), "Coldplay for me", decider)
	assert.Equal(t, pricing.ConcertName("Coldplay"), decision.Concert)
}

func TestDecide_GarbageAnswerFallsBack(t *testing.T) {
	engine := newTestEngine(t)
	decider := &stubDecider{answer: "42"}

	decision := engine.Decide(context.Background(), "give me the cheapest one", decider)
	assert.Equal(t, pricing.ConcertName("Arijit Singh"), decision.Concert)
}

func TestDecide_FallbackCheapestAndCostliest(t *testing.T) {
	engine := newTestEngine(t)

	// Base prices: Arijit 5000 < Coldplay 7000 < Taylor 9000.
	cheapest := engine.Decide(context.Background(), "whatever is cheapest", nil)
	assert.Equal(t, pricing.ConcertName("Arijit Singh"), cheapest.Concert)

	costliest := engine.Decide(context.Background(), "the costliest show", nil)
	assert.Equal(t, pricing.ConcertName("Taylor Swift"), costliest.Concert)

	expensive := engine.Decide(context.Background(), "the most expensive one", nil)
	assert.Equal(t, pricing.ConcertName("Taylor Swift"), expensive.Concert)
}

func TestDecide_FallbackUsesLatestPriceNotBase(t *testing.T) {
	// After a simulated day the cheapest/costliest ranking follows the
	// current prices, which can reorder relative to base prices.

	engine := newTestEngine(t)
	_, err := engine.AdvanceDay("I want Arijit Singh", evenTraffic(50))
	require.NoError(t, err)

	// Latest prices: Arijit 5000 x 1.15 = 5750, Coldplay 7000 x 0.9 = 6300,
	// Taylor 9000 x 0.9 = 8100. Arijit is still cheapest.
	cheapest := engine.Decide(context.Background(), "cheapest please", nil)
	assert.Equal(t, pricing.ConcertName("Arijit Singh"), cheapest.Concert)
}

func TestDecide_FallbackRandomPick(t *testing.T) {
	// No keyword, no name: the pick comes from the injected random source.
	engine := newTestEngine(t) // always draws 3, clamped to len(catalog)-1 = 2

	decision := engine.Decide(context.Background(), "dealer's choice", nil)
	assert.Equal(t, pricing.ConcertName("Taylor Swift"), decision.Concert)
	assert.False(t, decision.Wait)
}
