package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"lowercases and splits on whitespace", "Jill Diane  Harmon", []string{"jill", "diane", "harmon"}},
		{"drops generational suffixes", "Robert Smith Jr.", []string{"robert", "smith"}},
		{"drops roman numeral suffixes", "John Doe III", []string{"john", "doe"}},
		{"strips punctuation and digits", "O'Brien, Mary-Kate 2", []string{"obrien", "marykate"}},
		{"folds accents to base letters", "José Núñez", []string{"jose", "nunez"}},
		{"treats newlines as separators", "Jill\nHarmon", []string{"jill", "harmon"}},
		{"empty input yields no tokens", "  ", nil},
		{"only suffixes yields no tokens", "Jr. II", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.raw))
		})
	}
}

func TestNormalizeSSN(t *testing.T) {
	t.Run("takes trailing four digits of a full number", func(t *testing.T) {
		assert.Equal(t, "7034", NormalizeSSN("1234567034"))
	})
	t.Run("ignores masking characters", func(t *testing.T) {
		assert.Equal(t, "7034", NormalizeSSN("xxx-xx-7034"))
	})
	t.Run("malformed input yields empty string", func(t *testing.T) {
		assert.Equal(t, "", NormalizeSSN("abc"))
	})
	t.Run("short input stays short", func(t *testing.T) {
		assert.Equal(t, "12", NormalizeSSN("1-2"))
	})
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"parses long month form", "November 11, 1962", "11/11/1962"},
		{"keeps canonical form", "11/11/1962", "11/11/1962"},
		{"parses ISO dates", "1999-03-04", "03/04/1999"},
		{"parses ordinal days", "November 11th, 1962", "11/11/1962"},
		{"parses abbreviated months", "NOV. 11, 1962", "11/11/1962"},
		{"reads hyphenated dates month first", "11-11-1962", "11/11/1962"},
		{"reads two-digit years in the past", "11/11/62", "11/11/1962"},
		{"reads hyphenated two-digit years in the past", "11-11-62", "11/11/1962"},
		{"keeps explicit four-digit future years", "12/31/2030", "12/31/2030"},
		{"finds an ISO date inside a sentence", "Date: 1962-11-11 at noon", "11/11/1962"},
		{"ignores a leading weekday", "Monday, November 11, 1962", "11/11/1962"},
		{"finds a date after other words", "on November 11, 1962", "11/11/1962"},
		{"finds a date after a label", "DOB 11/11/1962", "11/11/1962"},
		{"unparseable text yields empty string", "unknown", ""},
		{"empty text yields empty string", " ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "Date of Birth", CollapseWhitespace(" Date of\nBirth \n"))
}
