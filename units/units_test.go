package units

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"g", "g"},
		{"grs", "g"},
		{"Gr", "g"},
		{"KG", "kg"},
		{"lt", "l"},
		{"lts", "l"},
		{"u", "unidad"},
		{"un", "unidad"},
		{"unid", "unidad"},
		{" kg ", "kg"},
		{"cajón", "cajón"}, // unknown units pass through untouched
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, unit := range All {
		if !IsValid(unit) {
			t.Errorf("IsValid(%q) = false for a listed unit", unit)
		}
	}
	if IsValid("cajón") {
		t.Errorf("IsValid accepted an unlisted unit")
	}
}
