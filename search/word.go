package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata/ata"
)

// ErrClocklessPlant is returned when a plant configuration carries no clocks.
// The region abstraction needs at least one clock to track the passage of
// time.
var ErrClocklessPlant = errors.New("plant configuration has no clocks")

// SymbolKind distinguishes plant clocks from specification automaton states
// inside a canonical word.
type SymbolKind int

const (
	PlantSymbol SymbolKind = iota
	ATASymbol
)

// RegionSymbol is one symbol of a canonical word: a plant clock in its
// location, or a state of the specification automaton, abstracted to its
// clock region.
type RegionSymbol struct {
	Kind     SymbolKind
	Location string
	Clock    string
	Region   automata.RegionIndex
}

// PlantRegionSymbol abstracts one plant clock in the given location.
func PlantRegionSymbol(location, clock string, region automata.RegionIndex) RegionSymbol {
	return RegionSymbol{Kind: PlantSymbol, Location: location, Clock: clock, Region: region}
}

// ATARegionSymbol abstracts one state of the specification automaton.
func ATARegionSymbol(location string, region automata.RegionIndex) RegionSymbol {
	return RegionSymbol{Kind: ATASymbol, Location: location, Region: region}
}

func (s RegionSymbol) String() string {
	if s.Kind == PlantSymbol {
		return fmt.Sprintf("(%s, %s, %d)", s.Location, s.Clock, s.Region)
	}
	return fmt.Sprintf("(%s, %d)", s.Location, s.Region)
}

func symbolLess(a, b RegionSymbol) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Location != b.Location {
		return a.Location < b.Location
	}
	if a.Clock != b.Clock {
		return a.Clock < b.Clock
	}
	return a.Region < b.Region
}

// Partition is a set of region symbols whose underlying valuations share one
// fractional part. Partitions are kept sorted and free of duplicates.
type Partition []RegionSymbol

func (p Partition) String() string {
	parts := make([]string, 0, len(p))
	for _, s := range p {
		parts = append(parts, s.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func newPartition(symbols []RegionSymbol) Partition {
	p := make(Partition, len(symbols))
	copy(p, symbols)
	sort.Slice(p, func(i, j int) bool { return symbolLess(p[i], p[j]) })
	deduped := p[:0]
	for i, s := range p {
		if i == 0 || s != p[i-1] {
			deduped = append(deduped, s)
		}
	}
	return deduped
}

// Word is a canonical word: the joint region abstraction of a plant
// configuration and a specification automaton configuration. Its partitions
// are ordered by increasing fractional part of the underlying valuations,
// with all maximal-region symbols grouped in a trailing partition.
type Word []Partition

func (w Word) String() string {
	parts := make([]string, 0, len(w))
	for _, p := range w {
		parts = append(parts, p.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal reports whether the two words have the same partitions.
func (w Word) Equal(other Word) bool {
	if len(w) != len(other) {
		return false
	}
	for i, p := range w {
		if len(p) != len(other[i]) {
			return false
		}
		for j, s := range p {
			if s != other[i][j] {
				return false
			}
		}
	}
	return true
}

// NewCanonicalWord abstracts the joint configuration of a plant and the
// specification automaton into a canonical word with respect to the largest
// constant k. Symbols whose valuations share a fractional part land in the
// same partition; symbols past the largest constant are indistinguishable
// and share the trailing partition.
func NewCanonicalWord(plant automata.Configuration, spec ata.Configuration, k automata.Endpoint) (Word, error) {
	if len(plant.ClockValuations) == 0 {
		return nil, ErrClocklessPlant
	}
	max := automata.GetMaxRegionIndex(k)
	type fractionalSymbol struct {
		fraction automata.Time
		symbol   RegionSymbol
	}
	var symbols []fractionalSymbol
	var maxed []RegionSymbol
	add := func(v automata.ClockValuation, symbol RegionSymbol) {
		if symbol.Region == max {
			maxed = append(maxed, symbol)
			return
		}
		symbols = append(symbols, fractionalSymbol{fraction: automata.GetFractionalPart(v), symbol: symbol})
	}
	for name, clock := range plant.ClockValuations {
		v := clock.Valuation()
		add(v, PlantRegionSymbol(plant.Location, name, automata.GetRegionIndex(v, k)))
	}
	for _, state := range spec {
		add(state.ClockValuation, ATARegionSymbol(state.Location, automata.GetRegionIndex(state.ClockValuation, k)))
	}
	sort.SliceStable(symbols, func(i, j int) bool { return symbols[i].fraction < symbols[j].fraction })

	var word Word
	var current []RegionSymbol
	previous := automata.Time(-1)
	for _, fs := range symbols {
		if len(current) > 0 && !automata.IsNearZero(fs.fraction-previous) {
			word = append(word, newPartition(current))
			current = current[:0:0]
		}
		current = append(current, fs.symbol)
		previous = fs.fraction
	}
	if len(current) > 0 {
		word = append(word, newPartition(current))
	}
	if len(maxed) > 0 {
		word = append(word, newPartition(maxed))
	}
	return word, nil
}

// IsValid reports whether the word obeys the canonical form: it is
// non-empty, has no empty partitions, symbols within a partition are
// strictly ordered, regions within a partition share parity, only the first
// partition may hold even regions, and no plant clock occurs twice.
func (w Word) IsValid() bool {
	if len(w) == 0 {
		return false
	}
	clocks := make(map[string]bool)
	for i, p := range w {
		if len(p) == 0 {
			return false
		}
		parity := p[0].Region % 2
		for j, s := range p {
			if j > 0 && !symbolLess(p[j-1], s) {
				return false
			}
			if s.Region%2 != parity {
				return false
			}
			if i > 0 && s.Region%2 == 0 {
				return false
			}
			if s.Kind == PlantSymbol {
				if clocks[s.Clock] {
					return false
				}
				clocks[s.Clock] = true
			}
		}
	}
	return true
}

// Candidate returns a concrete joint configuration whose region abstraction
// is the word: integer parts come from the regions, and the i-th partition
// receives the fractional part (i+1)/(n+1). Regionalizing the candidate
// with the same largest constant reproduces the word.
func Candidate(w Word) (automata.Configuration, ata.Configuration) {
	delta := 1.0 / automata.Time(len(w)+1)
	plant := automata.Configuration{ClockValuations: automata.ClockSetValuation{}}
	var states []ata.State
	for i, p := range w {
		for _, s := range p {
			v := automata.Time(s.Region / 2)
			if s.Region%2 != 0 {
				v += delta * automata.Time(i+1)
			}
			switch s.Kind {
			case PlantSymbol:
				plant.Location = s.Location
				plant.ClockValuations[s.Clock] = automata.NewClock(v)
			case ATASymbol:
				states = append(states, ata.State{Location: s.Location, ClockValuation: v})
			}
		}
	}
	return plant, ata.NewConfiguration(states...)
}

// RegionalProjection restricts the word to its plant symbols, dropping
// partitions that become empty.
func RegionalProjection(w Word) Word {
	var projected Word
	for _, p := range w {
		var kept Partition
		for _, s := range p {
			if s.Kind == PlantSymbol {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			projected = append(projected, kept)
		}
	}
	return projected
}

// renderWords gives a set of words a stable rendering for dedup keys and
// controller location names.
func renderWords(words []Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// sortWords orders words by rendering and drops duplicates.
func sortWords(words []Word) []Word {
	byKey := make(map[string]Word, len(words))
	keys := make([]string, 0, len(words))
	for _, w := range words {
		key := w.String()
		if _, ok := byKey[key]; !ok {
			byKey[key] = w
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	sorted := make([]Word, len(keys))
	for i, key := range keys {
		sorted[i] = byKey[key]
	}
	return sorted
}
