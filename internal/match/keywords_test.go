package match

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "mixed case and punctuation",
			input:    "Black Leather Wallet, slightly worn!",
			expected: []string{"black", "leather", "wallet", "slightly", "worn"},
		},
		{
			name:     "stop words removed",
			input:    "the keys were found at the library",
			expected: []string{"keys", "found", "library"},
		},
		{
			name:     "short tokens dropped",
			input:    "id 13 ok pro max",
			expected: []string{"pro", "max"},
		},
		{
			name:     "only stop words and short tokens",
			input:    "it is at an un",
			expected: nil,
		},
		{
			name:     "digits kept",
			input:    "iPhone 13 Pro 256gb",
			expected: []string{"iphone", "pro", "256gb"},
		},
		{
			name:     "punctuation becomes separator",
			input:    "blue/green-striped scarf",
			expected: []string{"blue", "green", "striped", "scarf"},
		},
		{
			name:     "duplicates preserved in sequence",
			input:    "case case phone",
			expected: []string{"case", "case", "phone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractKeywords(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKeywordText(t *testing.T) {
	if got := KeywordText("Blue Backpack", "left on bus"); got != "Blue Backpack left on bus" {
		t.Errorf("KeywordText = %q", got)
	}
	// Empty description still separates cleanly.
	if got := ExtractKeywords(KeywordText("Blue Backpack", "")); !reflect.DeepEqual(got, []string{"blue", "backpack"}) {
		t.Errorf("keywords from title only = %v", got)
	}
}
