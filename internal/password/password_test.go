package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	for _, length := range []int{MinLength, DefaultLength, MaxLength} {
		pw, err := Generate(length)
		require.NoError(t, err)
		assert.Len(t, pw, length)
		for _, r := range pw {
			assert.True(t, strings.ContainsRune(Charset, r), "unexpected character %q", r)
		}
	}
}

func TestGenerateRejectsNonPositive(t *testing.T) {
	_, err := Generate(0)
	require.ErrorIs(t, err, ErrInvalidLength)
	_, err = Generate(-1)
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestGenerateCoversCharset(t *testing.T) {
	seen := make(map[rune]bool)
	for i := 0; i < 200; i++ {
		pw, err := Generate(MaxLength)
		require.NoError(t, err)
		for _, r := range pw {
			seen[r] = true
		}
	}
	// 6400 draws over 94 symbols: every symbol appears with overwhelming probability
	assert.Len(t, seen, len(Charset))
}

func TestGenerateIsNotRepeated(t *testing.T) {
	a, err := Generate(MaxLength)
	require.NoError(t, err)
	b, err := Generate(MaxLength)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestScoreTiers(t *testing.T) {
	cases := []struct {
		password string
		score    int
		tier     Tier
	}{
		{"", 0, Weak},
		{"abc", 1, Weak},
		{"abcdefgh", 2, Weak},
		{"Abcdefgh1", 4, Moderate},
		{"Abcdefgh1!", 5, Strong},
		{"Abcdefghij1!", 6, VeryStrong},
		{"Password123!", 4, Moderate},
		{"password", 0, Weak},
	}
	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			s := Score(tc.password)
			assert.Equal(t, tc.score, s.Score)
			assert.Equal(t, tc.tier, s.Tier)
		})
	}
}

func TestScoreFeedback(t *testing.T) {
	s := Score("abcdefgh")
	assert.Contains(t, s.Feedback, "Add uppercase letters")
	assert.Contains(t, s.Feedback, "Add numbers")
	assert.Contains(t, s.Feedback, "Add special characters")
	assert.NotContains(t, s.Feedback, "Add lowercase letters")

	s = Score("MyQwertyKeyboard1!")
	assert.Contains(t, s.Feedback, "Avoid common words and sequences")

	s = Score("Abcdefghij1!")
	assert.Empty(t, s.Feedback)
}

func TestScoreMonotonic(t *testing.T) {
	base := "abcdefgh"
	assert.GreaterOrEqual(t, Score(base+"abcd").Score, Score(base).Score)
	assert.GreaterOrEqual(t, Score(base+"A").Score, Score(base).Score)
	assert.GreaterOrEqual(t, Score(base+"1").Score, Score(base).Score)
	assert.GreaterOrEqual(t, Score(base+"!").Score, Score(base).Score)
	assert.GreaterOrEqual(t, Score("A1!"+base+"xyzw").Score, Score("A1!"+base).Score)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "weak", Weak.String())
	assert.Equal(t, "moderate", Moderate.String())
	assert.Equal(t, "strong", Strong.String())
	assert.Equal(t, "very strong", VeryStrong.String())
}
