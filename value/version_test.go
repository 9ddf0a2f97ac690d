package value

import "testing"

func TestParseVersion_DefaultsMissingTail(t *testing.T) {
	v, err := ParseVersion("2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Version{Major: 2}
	if v != want {
		t.Errorf("got %+v, want %+v", v, want)
	}

	v2, err := ParseVersion("2.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2 != (Version{Major: 2, Minor: 5}) {
		t.Errorf("got %+v", v2)
	}
}

func TestParseVersion_Invalid(t *testing.T) {
	cases := []string{"", "1.2.3.4", "1..2", "a.b.c", "-1.0.0"}
	for _, c := range cases {
		if _, err := ParseVersion(c); err == nil {
			t.Errorf("ParseVersion(%q): expected error", c)
		}
	}
}

func TestVersion_CompareDelegatesToSemver(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3}
	sv, err := v.Semver()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sv.String() != "1.2.3" {
		t.Errorf("Semver() = %s, want 1.2.3", sv.String())
	}

	other := Version{Major: 1, Minor: 2, Patch: 4}
	osv, err := other.Semver()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := v.Compare(other), sv.Compare(osv); got != want {
		t.Errorf("Version.Compare = %d, want semver.Version.Compare result %d", got, want)
	}
}

func TestVersion_Compare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.1.0", "1.0.9", 1},
		{"2.0.0", "1.9.9", 1},
	}
	for _, c := range cases {
		va, _ := ParseVersion(c.a)
		vb, _ := ParseVersion(c.b)
		if got := va.Compare(vb); got != c.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
