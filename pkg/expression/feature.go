package expression

import (
	"sort"
	"sync"
)

// Feature is the key of an additional, dialect-specific extension value.
//
// The generic engine never interprets features; it only checks whether the
// active dialect recognizes them and threads them through to dialect handlers.
type Feature string

// Scope is the kind of object a feature attaches to.
type Scope int

const (
	// ScopeColumn features attach to column definitions.
	ScopeColumn Scope = iota
	// ScopeIndex features attach to index definitions.
	ScopeIndex
	// ScopeInsert features attach to InsertData expressions.
	ScopeInsert
	// ScopeTable features attach to CreateTable expressions.
	ScopeTable
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeColumn:
		return "column"
	case ScopeIndex:
		return "index"
	case ScopeInsert:
		return "insert"
	case ScopeTable:
		return "table"
	default:
		return "unknown"
	}
}

// Known features.
const (
	// FeatureIdentitySeed is the IDENTITY seed value (int).
	FeatureIdentitySeed Feature = "identity_seed"
	// FeatureIdentityIncrement is the IDENTITY increment value (int).
	FeatureIdentityIncrement Feature = "identity_increment"
	// FeatureIdentityGeneration selects ALWAYS or BY DEFAULT for identity columns.
	FeatureIdentityGeneration Feature = "identity_generation"
	// FeatureColumnCollation is a collation name appended to the column type.
	FeatureColumnCollation Feature = "column_collation"
	// FeatureIncludeColumns lists non-key columns carried by an index ([]string).
	FeatureIncludeColumns Feature = "include_columns"
	// FeatureIndexFilter is a raw predicate for filtered / partial indexes.
	FeatureIndexFilter Feature = "index_filter"
	// FeatureIndexMethod is the index access method (btree, gin, ...).
	FeatureIndexMethod Feature = "index_method"
	// FeatureIdentityInsert toggles explicit identity values during an insert (bool).
	FeatureIdentityInsert Feature = "identity_insert"
	// FeatureTableEngine is the storage engine of a table (InnoDB, MyISAM).
	FeatureTableEngine Feature = "table_engine"
)

// Feature registry
var (
	featuresMu sync.RWMutex
	features   = map[Feature]Scope{
		FeatureIdentitySeed:       ScopeColumn,
		FeatureIdentityIncrement:  ScopeColumn,
		FeatureIdentityGeneration: ScopeColumn,
		FeatureColumnCollation:    ScopeColumn,
		FeatureIncludeColumns:     ScopeIndex,
		FeatureIndexFilter:        ScopeIndex,
		FeatureIndexMethod:        ScopeIndex,
		FeatureIdentityInsert:     ScopeInsert,
		FeatureTableEngine:        ScopeTable,
	}
)

// RegisterFeature adds a feature key to the registry.
// Dialects living outside this module use it to declare their own extensions.
func RegisterFeature(f Feature, scope Scope) {
	featuresMu.Lock()
	defer featuresMu.Unlock()
	features[f] = scope
}

// Known returns true if the feature key is registered.
func Known(f Feature) bool {
	featuresMu.RLock()
	defer featuresMu.RUnlock()
	_, ok := features[f]
	return ok
}

// ScopeOf returns the scope a registered feature attaches to.
func ScopeOf(f Feature) (Scope, bool) {
	featuresMu.RLock()
	defer featuresMu.RUnlock()
	s, ok := features[f]
	return s, ok
}

// AllFeatures returns all registered feature keys (sorted).
func AllFeatures() []Feature {
	featuresMu.RLock()
	defer featuresMu.RUnlock()
	keys := make([]Feature, 0, len(features))
	for f := range features {
		keys = append(keys, f)
	}
	sortFeatures(keys)
	return keys
}

// Features is the additional-features bag carried by columns, indexes and some expressions.
type Features map[Feature]any

// Set stores a feature value, allocating the bag if needed.
func (fs *Features) Set(f Feature, v any) {
	if *fs == nil {
		*fs = make(Features)
	}
	(*fs)[f] = v
}

// Get returns the value stored for a feature.
func (fs Features) Get(f Feature) (any, bool) {
	v, ok := fs[f]
	return v, ok
}

// Has returns true if the feature is present.
func (fs Features) Has(f Feature) bool {
	_, ok := fs[f]
	return ok
}

// Bool returns the feature value as a bool. Missing or non-bool values are false.
func (fs Features) Bool(f Feature) bool {
	b, _ := fs[f].(bool)
	return b
}

// String returns the feature value as a string. Missing or non-string values are "".
func (fs Features) String(f Feature) string {
	s, _ := fs[f].(string)
	return s
}

// Strings returns the feature value as a string slice.
// A single string is returned as a one-element slice.
func (fs Features) Strings(f Feature) []string {
	switch v := fs[f].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Int returns the feature value as an int.
func (fs Features) Int(f Feature) (int, bool) {
	switch v := fs[f].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	default:
		return 0, false
	}
}

// Keys returns the feature keys present in the bag (sorted).
func (fs Features) Keys() []Feature {
	keys := make([]Feature, 0, len(fs))
	for f := range fs {
		keys = append(keys, f)
	}
	sortFeatures(keys)
	return keys
}

func sortFeatures(keys []Feature) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}
