package core

import "testing"

func TestTitleCaseWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Lower-cased words", in: "ahmad bin ali", want: "Ahmad Bin Ali"},
		{name: "Shouty input lowered first", in: "SITI AMINAH", want: "Siti Aminah"},
		{name: "Whitespace runs collapsed", in: "  ahmad \t bin  ali ", want: "Ahmad Bin Ali"},
		{name: "Multi-byte first rune", in: "émile dupont", want: "Émile Dupont"},
		{name: "Empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleCaseWords(tt.in); got != tt.want {
				t.Errorf("TitleCaseWords(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}
