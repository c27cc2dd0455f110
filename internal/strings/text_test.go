package strings

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"corto", 10, "corto"},
		{"Investigación Cuantitativa", 16, "Investigación..."},
		{"abcdef", 4, "a..."},
		{"ab", 1, "ab"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.n); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	// 10 runes, more than 10 bytes
	in := "áéíóúáéíóú"
	if got := Truncate(in, 10); got != in {
		t.Errorf("Truncate(%q, 10) = %q, want unchanged", in, got)
	}
}

func TestWordWrap(t *testing.T) {
	in := "envía tu documento para revisión profesional"
	want := "envía tu\ndocumento\npara\nrevisión\nprofesional"
	if got := WordWrap(in, 11); got != want {
		t.Errorf("WordWrap = %q, want %q", got, want)
	}
}

func TestWordWrapPreservesNewlines(t *testing.T) {
	in := "uno\n\ndos tres"
	if got := WordWrap(in, 20); got != in {
		t.Errorf("WordWrap = %q, want unchanged", got)
	}
}

func TestWordWrapZeroWidth(t *testing.T) {
	if got := WordWrap("hola", 0); got != "hola" {
		t.Errorf("WordWrap = %q", got)
	}
}
