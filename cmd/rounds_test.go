package cmd

import "testing"

func TestClip(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten chars!", 10, "exactly te"},
		{"日本の首都はどこですか", 5, "日本の首都"},
		{"héllo wörld", 7, "héllo w"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := clip(tt.in, tt.n); got != tt.want {
			t.Errorf("clip(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
