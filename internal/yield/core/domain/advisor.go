package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// UnassignedName is the display name of the Unassigned advisor key.
const UnassignedName = "unassigned"

// AdvisorKey identifies an advisor grouping. The zero value is the
// Unassigned key; every other key carries a positive advisor id.
type AdvisorKey struct {
	id int64
}

// Unassigned groups candidates without an owning advisor.
var Unassigned = AdvisorKey{}

// AdvisorKeyFromID maps id <= 0 to Unassigned.
func AdvisorKeyFromID(id int64) AdvisorKey {
	if id <= 0 {
		return Unassigned
	}
	return AdvisorKey{id: id}
}

// NormalizeAdvisorKey maps a raw advisor identifier to an AdvisorKey.
// nil, "", 0, "0" and anything that is not a positive integer become
// Unassigned.
func NormalizeAdvisorKey(raw any) AdvisorKey {
	switch v := raw.(type) {
	case nil:
		return Unassigned
	case AdvisorKey:
		return v
	case int:
		return AdvisorKeyFromID(int64(v))
	case int32:
		return AdvisorKeyFromID(int64(v))
	case int64:
		return AdvisorKeyFromID(v)
	case *int64:
		if v == nil {
			return Unassigned
		}
		return AdvisorKeyFromID(*v)
	case float64:
		if v != float64(int64(v)) {
			return Unassigned
		}
		return AdvisorKeyFromID(int64(v))
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return Unassigned
		}
		return AdvisorKeyFromID(id)
	case []byte:
		return NormalizeAdvisorKey(string(v))
	default:
		return Unassigned
	}
}

// IsUnassigned reports whether k is the Unassigned key.
func (k AdvisorKey) IsUnassigned() bool { return k.id <= 0 }

// ID returns the advisor id, 0 for Unassigned.
func (k AdvisorKey) ID() int64 { return k.id }

func (k AdvisorKey) String() string {
	if k.IsUnassigned() {
		return UnassignedName
	}
	return strconv.FormatInt(k.id, 10)
}

// AdvisorDisplay is the caller-facing identity of an advisor key.
type AdvisorDisplay struct {
	AdvisorUserID *int64
	Name          string
}

// ResolveDisplay turns k into a display identity using names, falling back
// to "ID:<n>" for unknown advisors.
func ResolveDisplay(k AdvisorKey, names map[int64]string) AdvisorDisplay {
	if k.IsUnassigned() {
		return AdvisorDisplay{Name: UnassignedName}
	}
	id := k.id
	name := names[id]
	if name == "" {
		name = fmt.Sprintf("ID:%d", id)
	}
	return AdvisorDisplay{AdvisorUserID: &id, Name: name}
}

// AdvisorIDs returns the positive ids among keys, ascending, without duplicates.
func AdvisorIDs(keys []AdvisorKey) []int64 {
	seen := make(map[int64]struct{}, len(keys))
	ids := make([]int64, 0, len(keys))
	for _, k := range keys {
		if k.IsUnassigned() {
			continue
		}
		if _, ok := seen[k.id]; ok {
			continue
		}
		seen[k.id] = struct{}{}
		ids = append(ids, k.id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SortAdvisorKeys orders keys by id with Unassigned last.
func SortAdvisorKeys(keys []AdvisorKey) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.IsUnassigned() != b.IsUnassigned() {
			return b.IsUnassigned()
		}
		return a.id < b.id
	})
}

// UnionKeys returns every key present in any of the maps, sorted with
// SortAdvisorKeys.
func UnionKeys[V any](maps ...map[AdvisorKey]V) []AdvisorKey {
	set := make(map[AdvisorKey]struct{})
	for _, m := range maps {
		for k := range m {
			set[k] = struct{}{}
		}
	}
	keys := make([]AdvisorKey, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	SortAdvisorKeys(keys)
	return keys
}

// AdvisorPair is the current and previous aggregate for one advisor key.
type AdvisorPair[V any] struct {
	Key      AdvisorKey
	Current  V
	Previous V
}

// MergeAdvisorMaps pairs current and previous by key. Keys present on only
// one side get zero() on the other; extra keys are always emitted.
func MergeAdvisorMaps[V any](current, previous map[AdvisorKey]V, zero func() V, extra ...AdvisorKey) []AdvisorPair[V] {
	union := map[AdvisorKey]V{}
	for _, k := range extra {
		union[k] = zero()
	}
	keys := UnionKeys(current, previous, union)
	out := make([]AdvisorPair[V], 0, len(keys))
	for _, k := range keys {
		cur, ok := current[k]
		if !ok {
			cur = zero()
		}
		prev, ok := previous[k]
		if !ok {
			prev = zero()
		}
		out = append(out, AdvisorPair[V]{Key: k, Current: cur, Previous: prev})
	}
	return out
}
