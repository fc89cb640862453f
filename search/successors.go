package search

import (
	"sort"
	"sync"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata/ata"
)

// SuccessorKey identifies one joint move in the game: the action taken
// after advancing time by the given number of region increments.
type SuccessorKey struct {
	Increment automata.RegionIndex
	Action    string
}

func keyLess(a, b SuccessorKey) bool {
	if a.Increment != b.Increment {
		return a.Increment < b.Increment
	}
	return a.Action < b.Action
}

// successorClass collects the canonical words reached under one key. A
// class can be marked dead when the plant can move but the specification
// automaton has no run continuing the move.
type successorClass struct {
	words []Word
	index map[string]bool
	dead  bool
}

func (c *successorClass) add(w Word) {
	key := w.String()
	if c.index[key] {
		return
	}
	c.index[key] = true
	c.words = append(c.words, w)
}

// expander computes the joint successors of a node's canonical words.
type expander struct {
	plant Plant
	spec  *ata.AlternatingTimedAutomaton
	k     automata.Endpoint
	cache *wordCache
}

// nextClasses enumerates the successors of the given words: for every time
// successor of every word, the candidate configuration is stepped with
// every action, and the resulting joint configurations are regionalized and
// grouped by (increment, action). Keys whose every plant move left the
// specification automaton without a run only carry the dead mark.
func (e expander) nextClasses(words []Word) (map[SuccessorKey]*successorClass, error) {
	classes := make(map[SuccessorKey]*successorClass)
	ensure := func(key SuccessorKey) *successorClass {
		class, ok := classes[key]
		if !ok {
			class = &successorClass{index: make(map[string]bool)}
			classes[key] = class
		}
		return class
	}
	for _, w := range words {
		for _, step := range TimeSuccessors(w, e.k) {
			plantCfg, specCfg := Candidate(step.Word)
			for _, action := range e.plant.Actions() {
				plantSuccessors, err := e.plant.Step(plantCfg, action, 0)
				if err != nil {
					return nil, err
				}
				if len(plantSuccessors) == 0 {
					continue
				}
				key := SuccessorKey{Increment: step.Increment, Action: action}
				specSuccessors := e.spec.MakeSymbolStep(specCfg, action)
				if len(specSuccessors) == 0 {
					ensure(key).dead = true
					continue
				}
				class := ensure(key)
				for _, plantSuccessor := range plantSuccessors {
					for _, specSuccessor := range specSuccessors {
						next, err := NewCanonicalWord(plantSuccessor, specSuccessor, e.k)
						if err != nil {
							return nil, err
						}
						class.add(e.cache.intern(next))
					}
				}
			}
		}
	}
	return classes, nil
}

func sortedKeys(classes map[SuccessorKey]*successorClass) []SuccessorKey {
	keys := make([]SuccessorKey, 0, len(classes))
	for key := range classes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })
	return keys
}

// wordCache interns canonical words by rendering so that equal words share
// one value across the whole tree. Lookups vastly outnumber insertions
// once the region space saturates.
type wordCache struct {
	mu    sync.RWMutex
	words map[string]Word
}

func newWordCache() *wordCache {
	return &wordCache{words: make(map[string]Word)}
}

func (c *wordCache) intern(w Word) Word {
	key := w.String()
	c.mu.RLock()
	cached, ok := c.words[key]
	c.mu.RUnlock()
	if ok {
		return cached
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.words[key]; ok {
		return cached
	}
	c.words[key] = w
	return w
}

func (c *wordCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.words)
}
