package sides

import "testing"

func TestOnlyNothingSpecialAllowsMultiples(t *testing.T) {
	for _, st := range All() {
		want := st == NothingSpecial
		if st.MultipleAllowed() != want {
			t.Errorf("%s.MultipleAllowed() = %v, expected %v", st, st.MultipleAllowed(), want)
		}
	}
}

func TestOpposite(t *testing.T) {
	tests := []struct {
		id, expected ID
	}{
		{0, 2},
		{1, 3},
		{2, 0},
		{3, 1},
	}
	for _, tc := range tests {
		if got := tc.id.Opposite(); got != tc.expected {
			t.Errorf("ID(%d).Opposite() = %d, expected %d", tc.id, got, tc.expected)
		}
	}
}

func TestIsSelectable(t *testing.T) {
	cfg := NewConfig([Count]Type{FreezeOthers, NothingSpecial, NothingSpecial, SpeedUp})

	tests := []struct {
		name     string
		st       Type
		id       ID
		expected bool
	}{
		{"nothing special on any side", NothingSpecial, 0, true},
		{"nothing special already on other sides", NothingSpecial, 3, true},
		{"exclusive held by the queried side", FreezeOthers, 0, true},
		{"exclusive held by another side", FreezeOthers, 1, false},
		{"exclusive held nowhere", Duplicate, 2, true},
		{"speed up held by side 3", SpeedUp, 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSelectable(tc.st, tc.id, cfg); got != tc.expected {
				t.Errorf("IsSelectable(%s, %d) = %v, expected %v", tc.st, tc.id, got, tc.expected)
			}
		})
	}
}

func TestConfigureRejectsDuplicateExclusive(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Configure(2, SpeedUp) {
		t.Fatal("Configure should reject SpeedUp on side 2 while side 0 holds it")
	}
	if cfg.Get(2) != NothingSpecial {
		t.Errorf("rejected Configure must not change side 2, got %s", cfg.Get(2))
	}

	if !cfg.Configure(0, Destroy) {
		t.Fatal("Configure should allow overwriting side 0")
	}
	if !cfg.Configure(2, SpeedUp) {
		t.Fatal("SpeedUp is free again after side 0 changed")
	}
	if got := cfg.Types(); got != [Count]Type{Destroy, NothingSpecial, SpeedUp, NothingSpecial} {
		t.Errorf("Types() = %v", got)
	}
}

func TestConfigAlwaysTotal(t *testing.T) {
	cfg := DefaultConfig()
	for id := ID(0); id < Count; id++ {
		_ = cfg.Get(id)
	}

	defer func() {
		if recover() == nil {
			t.Error("Get on an unknown side should panic")
		}
	}()
	cfg.Get(Count)
}

func TestNewConfigPanicsOnDuplicateExclusive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewConfig should panic when an exclusive type is used twice")
		}
	}()
	NewConfig([Count]Type{Destroy, Destroy, NothingSpecial, NothingSpecial})
}

func TestUnlockIsIdempotent(t *testing.T) {
	u := DefaultUnlocked()

	added := u.Unlock(FreezeOthers, SpeedUp)
	if len(added) != 1 || added[0] != FreezeOthers {
		t.Errorf("Unlock added %v, expected [FreezeOthers]", added)
	}
	if added := u.Unlock(FreezeOthers); len(added) != 0 {
		t.Errorf("second Unlock should add nothing, added %v", added)
	}
	if u.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", u.Len())
	}
	if !u.Contains(FreezeOthers) {
		t.Error("FreezeOthers should be unlocked")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in       string
		expected Type
	}{
		{"freeze-others", FreezeOthers},
		{"Resize Score Areas", ResizeScoreAreas},
		{"extra_points", ExtraPoints},
		{"NothingSpecial", NothingSpecial},
	}
	for _, tc := range tests {
		got, err := ParseType(tc.in)
		if err != nil {
			t.Errorf("ParseType(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseType(%q) = %s, expected %s", tc.in, got, tc.expected)
		}
	}

	if _, err := ParseType("teleport"); err == nil {
		t.Error("ParseType should reject unknown names")
	}
}
