// SPDX-License-Identifier: Unlicense OR MIT

package key

import (
	"testing"
)

func TestModifiersString(t *testing.T) {
	tests := []struct {
		Mods Modifiers
		Want string
	}{
		{0, ""},
		{ModShift, "Shift"},
		{ModControl | ModAlt, "Ctrl-Alt"},
		{ModSuper | ModShift, "Shift-Super"},
		{ModShift | ModControl | ModAlt | ModSuper, "Shift-Ctrl-Alt-Super"},
	}
	for _, tst := range tests {
		if got := tst.Mods.String(); got != tst.Want {
			t.Errorf("%08b: got %q, want %q", uint8(tst.Mods), got, tst.Want)
		}
	}
}

func TestModifiersContain(t *testing.T) {
	m := ModShift | ModAlt
	if !m.Contain(ModShift) || !m.Contain(ModAlt) || !m.Contain(ModShift|ModAlt) {
		t.Errorf("%v should contain shift and alt", m)
	}
	if m.Contain(ModControl) || m.Contain(ModShift|ModSuper) {
		t.Errorf("%v should not contain ctrl or super", m)
	}
}

func TestKeyNames(t *testing.T) {
	if Count != int(Unknown)+1 {
		t.Fatalf("Count = %d, want %d", Count, int(Unknown)+1)
	}
	seen := make(map[string]Key)
	for k := Key(0); int(k) < Count; k++ {
		n := k.String()
		if n == "" {
			t.Errorf("key %d has no name", k)
			continue
		}
		if prev, dup := seen[n]; dup {
			t.Errorf("keys %d and %d share the name %q", prev, k, n)
		}
		seen[n] = k
	}
}

func TestKeyValid(t *testing.T) {
	if !Unknown.Valid() {
		t.Error("Unknown must be a valid key")
	}
	if Key(Count).Valid() {
		t.Errorf("key %d past the sentinel reported valid", Count)
	}
}
