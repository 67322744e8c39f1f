package parser

import "testing"

func TestTitleDirective(t *testing.T) {
	tests := []struct {
		input string
		title string
		ok    bool
	}{
		{"#title=Spanish verbs\na,b\n", "Spanish verbs", true},
		{"#title=  Padded  \r\na,b", "Padded", true},
		{"\ufeff#title=BOM\n", "BOM", true},
		{"#title=\na,b\n", "", false},
		{"a,b\n#title=Late\n", "", false},
		{"# title=Spaced\n", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		title, ok := TitleDirective(tt.input)
		if title != tt.title || ok != tt.ok {
			t.Errorf("TitleDirective(%q) = (%q, %v), expected (%q, %v)", tt.input, title, ok, tt.title, tt.ok)
		}
	}
}
