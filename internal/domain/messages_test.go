package domain

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// seqSource replays fixed draws in order, wrapping at the end.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func newSeqGenerator(vals ...float64) *MessageGenerator {
	return NewMessageGenerator(&seqSource{vals: vals})
}

func TestGenerate_HomeBaseUsesStandbyOnly(t *testing.T) {
	for _, r := range []float64{0, 0.39, 0.5, 0.75, 0.99} {
		g := newSeqGenerator(r)
		msg := g.Generate(HomeBase.Name, "EUROPE", 1234.5, 5_000_000_000)
		assert.Contains(t, standbyMessages, msg)
	}
}

func TestGenerate_Bands(t *testing.T) {
	tests := []struct {
		name   string
		draws  []float64
		region string
		want   string
	}{
		{"action band", []float64{0.0, 0.0}, "EUROPE", "DELIVERING PRESENTS IN LONDON"},
		{"action band upper edge", []float64{0.3999, 0.99}, "EUROPE", "SLEIGH HOVERING ABOVE LONDON"},
		{"region band starts at 0.40", []float64{0.40, 0.0}, "EUROPE", regionMessages["EUROPE"][0]},
		{"unknown region falls back to generic", []float64{0.5, 0.0}, "ATLANTIS", genericMessages[0]},
		{"telemetry band starts at 0.70, speed", []float64{0.70, 0.1}, "EUROPE", "VELOCITY: 1234.57 KM/S"},
		{"telemetry band, delivered", []float64{0.84, 0.5}, "EUROPE", "GIFTS DELIVERED: 1.235B"},
		{"generic band starts at 0.85", []float64{0.85, 0.99}, "EUROPE", genericMessages[len(genericMessages)-1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newSeqGenerator(tt.draws...)
			assert.Equal(t, tt.want, g.Generate("LONDON", tt.region, 1234.567, 1_234_567_890))
		})
	}
}

func TestGenerate_SeededSourceNeverEmpty(t *testing.T) {
	g := NewMessageGenerator(rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 500; i++ {
		msg := g.Generate("TOKYO", "ASIA", 1.5, 2_000_000_000)
		assert.NotEmpty(t, msg)
		assert.NotContains(t, msg, locationPlaceholder)
	}
}

func TestTemplatesCarryPlaceholder(t *testing.T) {
	for _, tmpl := range actionTemplates {
		assert.True(t, strings.Contains(tmpl, locationPlaceholder), tmpl)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "VELOCITY: 0.00 KM/S", FormatSpeed(0))
	assert.Equal(t, "VELOCITY: 1.19 KM/S", FormatSpeed(1.186))
	assert.Equal(t, "GIFTS DELIVERED: 1.000B", FormatDelivered(1_000_000_000))
	assert.Equal(t, "GIFTS DELIVERED: 150.999B", FormatDelivered(150_999_000_000))
}

func TestArrivalMessage(t *testing.T) {
	assert.Equal(t, "ARRIVED: LONDON", ArrivalMessage(ResolvedState{Phase: PhaseActive, Current: testLondon}))
	assert.Equal(t, "DEPARTED: LONDON", ArrivalMessage(ResolvedState{Phase: PhaseInTransit, Current: testLondon}))
	assert.Equal(t, "RUN COMPLETE: RETURNING TO NORTH POLE", ArrivalMessage(ResolvedState{Phase: PhaseComplete, Current: HomeBase}))
	assert.Empty(t, ArrivalMessage(ResolvedState{Phase: PhasePreMission, Current: HomeBase}))
}
