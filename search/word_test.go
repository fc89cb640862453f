package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata/ata"
)

func plantConfig(location string, clocks map[string]automata.Time) automata.Configuration {
	valuations := automata.ClockSetValuation{}
	for name, v := range clocks {
		valuations[name] = automata.NewClock(v)
	}
	return automata.Configuration{Location: location, ClockValuations: valuations}
}

func TestNewCanonicalWord_GroupsByFractionalPart(t *testing.T) {
	plant := plantConfig("l", map[string]automata.Time{"x": 0, "y": 0.5, "z": 0.5})
	spec := ata.NewConfiguration(ata.State{Location: "u", ClockValuation: 1.2})

	word, err := NewCanonicalWord(plant, spec, 2)

	require.NoError(t, err)
	assert.Equal(t, "[{(l, x, 0)}, {(u, 3)}, {(l, y, 1), (l, z, 1)}]", word.String())
	assert.True(t, word.IsValid())
}

func TestNewCanonicalWord_MergesMaximalRegions(t *testing.T) {
	plant := plantConfig("l", map[string]automata.Time{"x": 0.5, "y": 1.7})
	spec := ata.NewConfiguration(ata.State{Location: "u", ClockValuation: 5})

	word, err := NewCanonicalWord(plant, spec, 1)

	require.NoError(t, err)
	assert.Equal(t, "[{(l, x, 1)}, {(l, y, 3), (u, 3)}]", word.String())
	assert.True(t, word.IsValid())
}

func TestNewCanonicalWord_ClocklessPlant(t *testing.T) {
	plant := automata.Configuration{Location: "l", ClockValuations: automata.ClockSetValuation{}}

	_, err := NewCanonicalWord(plant, nil, 1)

	require.ErrorIs(t, err, ErrClocklessPlant)
}

func TestWordIsValid(t *testing.T) {
	for _, tc := range []struct {
		name string
		word Word
		want bool
	}{
		{
			name: "single even partition",
			word: Word{{PlantRegionSymbol("l", "x", 0)}},
			want: true,
		},
		{
			name: "fractional partitions",
			word: Word{{PlantRegionSymbol("l", "x", 0)}, {ATARegionSymbol("u", 1)}, {PlantRegionSymbol("l", "y", 3)}},
			want: true,
		},
		{
			name: "empty word",
			word: Word{},
			want: false,
		},
		{
			name: "empty partition",
			word: Word{{}},
			want: false,
		},
		{
			name: "even region beyond the first partition",
			word: Word{{PlantRegionSymbol("l", "x", 1)}, {PlantRegionSymbol("l", "y", 2)}},
			want: false,
		},
		{
			name: "mixed parity within a partition",
			word: Word{{PlantRegionSymbol("l", "x", 0), PlantRegionSymbol("l", "y", 1)}},
			want: false,
		},
		{
			name: "clock appearing twice",
			word: Word{{PlantRegionSymbol("l", "x", 1)}, {PlantRegionSymbol("l", "x", 3)}},
			want: false,
		},
		{
			name: "unsorted partition",
			word: Word{{PlantRegionSymbol("l", "y", 1), PlantRegionSymbol("l", "x", 1)}},
			want: false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.word.IsValid())
		})
	}
}

func TestCandidate(t *testing.T) {
	word := Word{
		{PlantRegionSymbol("l", "x", 0), ATARegionSymbol("u", 0)},
		{PlantRegionSymbol("l", "y", 1)},
	}

	plant, spec := Candidate(word)

	assert.Equal(t, "l", plant.Location)
	assert.InDelta(t, 0.0, plant.ClockValuations["x"].Valuation(), 1e-9)
	assert.InDelta(t, 2.0/3.0, plant.ClockValuations["y"].Valuation(), 1e-9)
	require.Len(t, spec, 1)
	assert.Equal(t, "u", spec[0].Location)
	assert.InDelta(t, 0.0, spec[0].ClockValuation, 1e-9)
}

func TestCandidate_RegionalizingRoundTrips(t *testing.T) {
	for _, word := range []Word{
		{{PlantRegionSymbol("l", "x", 0)}},
		{{PlantRegionSymbol("l", "x", 0), ATARegionSymbol("u", 0)}, {PlantRegionSymbol("l", "y", 1)}},
		{{PlantRegionSymbol("l", "x", 1)}, {ATARegionSymbol("u", 3)}},
	} {
		t.Run(word.String(), func(t *testing.T) {
			plant, spec := Candidate(word)
			regionalized, err := NewCanonicalWord(plant, spec, 1)
			require.NoError(t, err)
			assert.True(t, regionalized.Equal(word), "got %s", regionalized)
		})
	}
}

func TestRegionalProjection(t *testing.T) {
	word := Word{
		{PlantRegionSymbol("l", "x", 0), ATARegionSymbol("u", 0)},
		{ATARegionSymbol("v", 1)},
		{PlantRegionSymbol("l", "y", 1)},
	}

	projected := RegionalProjection(word)

	assert.Equal(t, "[{(l, x, 0)}, {(l, y, 1)}]", projected.String())
}
