package match

import (
	"math"
	"testing"
)

func TestStringSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 0.0,
		},
		{
			name:     "one empty",
			a:        "wallet",
			b:        "",
			expected: 0.0,
		},
		{
			name:     "identical",
			a:        "black wallet",
			b:        "black wallet",
			expected: 1.0,
		},
		{
			name:     "identical ignoring case",
			a:        "Black Wallet",
			b:        "black wallet",
			expected: 1.0,
		},
		{
			name:     "no common characters",
			a:        "abc",
			b:        "xyz",
			expected: 0.0,
		},
		{
			name: "partial overlap",
			// Matching blocks cover "bcd": 2*3/(4+4).
			a:        "abcd",
			b:        "bcde",
			expected: 0.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("StringSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestStringSimilaritySymmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"iPhone 13 lost", "iPhone 13 Pro found"},
		{"Library entrance", "Library"},
		{"blue case", "blue phone case"},
		{"", "anything"},
		{"same", "same"},
	}
	for _, p := range pairs {
		ab := StringSimilarity(p[0], p[1])
		ba := StringSimilarity(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("asymmetric: sim(%q,%q)=%v but sim(%q,%q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
		if ab < 0.0 || ab > 1.0 {
			t.Errorf("out of bounds: sim(%q,%q)=%v", p[0], p[1], ab)
		}
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected float64
	}{
		{
			name:     "both empty",
			a:        nil,
			b:        nil,
			expected: 0.0,
		},
		{
			name:     "one empty",
			a:        []string{"wallet"},
			b:        nil,
			expected: 0.0,
		},
		{
			name:     "identical sets",
			a:        []string{"black", "wallet"},
			b:        []string{"wallet", "black"},
			expected: 1.0,
		},
		{
			name:     "disjoint sets",
			a:        []string{"umbrella"},
			b:        []string{"textbook"},
			expected: 0.0,
		},
		{
			name: "partial overlap",
			// intersection {iphone, case} = 2, union = 4.
			a:        []string{"iphone", "case"},
			b:        []string{"iphone", "case", "blue", "phone"},
			expected: 0.5,
		},
		{
			name:     "duplicates collapse into set",
			a:        []string{"case", "case"},
			b:        []string{"case"},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}
