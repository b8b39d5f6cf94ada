package generator

import (
	"sort"
	"strings"
	"sync"
)

// Generator registry, keyed by lowercased name and alias.
var (
	registryMu sync.RWMutex
	registry   = make(map[string][]*Generator)
)

// Register adds a generator under its name and every alias.
// Called by dialect implementations in their init() functions.
func Register(g *Generator) {
	registryMu.Lock()
	defer registryMu.Unlock()

	keys := append([]string{g.Name()}, g.cfg.Aliases...)
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || contains(registry[k], g) {
			continue
		}
		registry[k] = append(registry[k], g)
	}
}

func contains(gs []*Generator, g *Generator) bool {
	for _, x := range gs {
		if x == g {
			return true
		}
	}
	return false
}

// Get returns the generator registered under name when exactly one matches.
func Get(name string) (*Generator, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	gs := registry[strings.ToLower(strings.TrimSpace(name))]
	if len(gs) != 1 {
		return nil, false
	}
	return gs[0], true
}

// Resolve returns the generator for a dialect name or alias (case-insensitive).
// No match yields *UnknownDialectError; several matches yield *AmbiguousDialectError.
func Resolve(name string) (*Generator, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrDialectRequired
	}

	registryMu.RLock()
	gs := append([]*Generator(nil), registry[strings.ToLower(strings.TrimSpace(name))]...)
	registryMu.RUnlock()

	switch len(gs) {
	case 0:
		return nil, &UnknownDialectError{Name: name, Available: List()}
	case 1:
		return gs[0], nil
	default:
		matches := make([]string, len(gs))
		for i, g := range gs {
			matches[i] = g.Name()
		}
		sort.Strings(matches)
		return nil, &AmbiguousDialectError{Name: name, Matches: matches}
	}
}

// List returns all registered dialect names, without aliases (sorted).
func List() []string {
	all := All()
	names := make([]string, 0, len(all))
	seen := make(map[string]bool, len(all))
	for _, g := range all {
		if !seen[g.Name()] {
			seen[g.Name()] = true
			names = append(names, g.Name())
		}
	}
	return names
}

// All returns every registered generator once, sorted by name.
func All() []*Generator {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var out []*Generator
	for _, gs := range registry {
		for _, g := range gs {
			if !contains(out, g) {
				out = append(out, g)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
