package headlessterm

import "sync"

// Unistr is an opaque identifier for a grapheme cluster: a base scalar value
// plus zero or more combining accents. Values below unistrInternBase are the
// Unicode scalar value directly; larger values index the process-global
// intern table below. Identity is stable for the lifetime of the process,
// independent of any one Terminal or Ring.
type Unistr uint32

const unistrInternBase Unistr = 0x80000000

type unistrKey struct {
	base    rune
	accents string // accent runes joined, used as a comparable map key
}

// unistrTable interns (base, accents) tuples into monotonically increasing
// ids. Reads dominate (every Cell.Unistr() call on a combined cell looks the
// table up); writes are rare and append-only, so a single RWMutex shards
// cleanly without needing per-bucket locks for this workload.
type unistrTable struct {
	mu      sync.RWMutex
	byKey   map[unistrKey]Unistr
	entries []unistrEntry // indexed by (id - unistrInternBase)
}

type unistrEntry struct {
	base    rune
	accents []rune
}

var globalUnistrTable = &unistrTable{
	byKey: make(map[unistrKey]Unistr),
}

func accentKey(accents []rune) string {
	return string(accents)
}

// intern returns the id for (base, accents), creating a new entry if this
// exact combination has not been seen before.
func (t *unistrTable) intern(base rune, accents []rune) Unistr {
	key := unistrKey{base: base, accents: accentKey(accents)}

	t.mu.RLock()
	if id, ok := t.byKey[key]; ok {
		t.mu.RUnlock()
		return id
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byKey[key]; ok {
		return id
	}
	id := unistrInternBase + Unistr(len(t.entries))
	cp := make([]rune, len(accents))
	copy(cp, accents)
	t.entries = append(t.entries, unistrEntry{base: base, accents: cp})
	t.byKey[key] = id
	return id
}

func (t *unistrTable) lookup(id Unistr) (rune, []rune) {
	if id < unistrInternBase {
		return rune(id), nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx := int(id - unistrInternBase)
	if idx < 0 || idx >= len(t.entries) {
		return 0xFFFD, nil
	}
	e := t.entries[idx]
	return e.base, e.accents
}

// NewUnistr returns the Unistr for a bare base scalar with no accents.
func NewUnistr(base rune) Unistr {
	return Unistr(base)
}

// UnistrAppendAccent returns the Unistr for u with c appended as a further
// combining accent.
func UnistrAppendAccent(u Unistr, c rune) Unistr {
	base, accents := globalUnistrTable.lookup(u)
	next := make([]rune, len(accents)+1)
	copy(next, accents)
	next[len(accents)] = c
	return globalUnistrTable.intern(base, next)
}

// UnistrBase returns the base scalar value of u, discarding any accents.
func UnistrBase(u Unistr) rune {
	base, _ := globalUnistrTable.lookup(u)
	return base
}

// UnistrAccents returns the combining accents carried by u, if any.
func UnistrAccents(u Unistr) []rune {
	_, accents := globalUnistrTable.lookup(u)
	return accents
}

// UnistrReplaceBase returns a Unistr with the same accents as u but a new
// base scalar.
func UnistrReplaceBase(u Unistr, newBase rune) Unistr {
	_, accents := globalUnistrTable.lookup(u)
	if len(accents) == 0 {
		return Unistr(newBase)
	}
	return globalUnistrTable.intern(newBase, accents)
}

// UnistrAppendUTF8 appends the UTF-8 expansion of u (base followed by
// accents, in logical order) to out.
func UnistrAppendUTF8(u Unistr, out []byte) []byte {
	base, accents := globalUnistrTable.lookup(u)
	out = append(out, []byte(string(base))...)
	for _, a := range accents {
		out = append(out, []byte(string(a))...)
	}
	return out
}

// UnistrLen returns the number of scalar values u expands to (1 + len(accents)).
func UnistrLen(u Unistr) int {
	_, accents := globalUnistrTable.lookup(u)
	return 1 + len(accents)
}

// UnistrString renders u as a Go string (base rune plus any combining accents).
func UnistrString(u Unistr) string {
	base, accents := globalUnistrTable.lookup(u)
	if len(accents) == 0 {
		return string(base)
	}
	runes := make([]rune, 0, len(accents)+1)
	runes = append(runes, base)
	runes = append(runes, accents...)
	return string(runes)
}
