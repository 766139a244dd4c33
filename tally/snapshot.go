// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

// Entry is one candidate's count within a Snapshot.
type Entry struct {
	Candidate string
	Votes     uint64
}

// Snapshot is an immutable, ordered view of every candidate's count.
// A new Snapshot is built for every change; existing ones are never
// written to.
type Snapshot struct {
	entries []Entry
}

// NewSnapshot returns a snapshot with every name at zero, in order.
func NewSnapshot(names []string) Snapshot {
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = Entry{Candidate: name}
	}
	return Snapshot{entries: entries}
}

// Len returns the number of candidates.
func (s Snapshot) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in catalog order.
func (s Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Votes returns candidate's count and whether the candidate is present.
func (s Snapshot) Votes(candidate string) (uint64, bool) {
	for _, e := range s.entries {
		if e.Candidate == candidate {
			return e.Votes, true
		}
	}
	return 0, false
}

// Map returns the counts keyed by candidate.
func (s Snapshot) Map() map[string]uint64 {
	m := make(map[string]uint64, len(s.entries))
	for _, e := range s.entries {
		m[e.Candidate] = e.Votes
	}
	return m
}

// Equal reports whether both snapshots hold the same candidates with the
// same counts. Order is part of the comparison since both sides come from
// the same catalog.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}
	for i := range s.entries {
		if s.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}

// Diff returns the candidates whose counts differ between s and other.
func (s Snapshot) Diff(other Snapshot) []string {
	var changed []string
	for i, e := range s.entries {
		if i >= len(other.entries) || other.entries[i] != e {
			changed = append(changed, e.Candidate)
		}
	}
	return changed
}

// with returns a copy of s with the given counts applied. Names missing
// from s are ignored.
func (s Snapshot) with(updates map[string]uint64) Snapshot {
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	for i := range entries {
		if v, ok := updates[entries[i].Candidate]; ok {
			entries[i].Votes = v
		}
	}
	return Snapshot{entries: entries}
}
