package database

import "testing"

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "Lee", want: "%Lee%"},
		{in: "50%", want: "%50!%%"},
		{in: "a_b", want: "%a!_b%"},
		{in: "hey!", want: "%hey!!%"},
		{in: `c:\x`, want: `%c:\x%`},
		{in: "", want: "%%"},
	}
	for _, tt := range tests {
		if got := ContainsPattern(tt.in); got != tt.want {
			t.Errorf("ContainsPattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
