// Package password generates random passwords and estimates password strength.
//
// Score is a heuristic for user feedback, not an entropy measure.
package password

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"unicode"
)

const (
	Lowercase   = "abcdefghijklmnopqrstuvwxyz"
	Uppercase   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits      = "0123456789"
	Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	// Charset is the alphabet Generate draws from
	Charset = Lowercase + Uppercase + Digits + Punctuation
)

// Length bounds enforced by callers; Generate itself accepts any positive length
const (
	MinLength     = 8
	MaxLength     = 32
	DefaultLength = 16
)

var ErrInvalidLength = errors.New("password length must be positive")

// Generate returns a password of length characters, each drawn
// independently and uniformly from Charset using crypto/rand.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	max := big.NewInt(int64(len(Charset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = Charset[n.Int64()]
	}
	return string(out), nil
}

// Tier is a coarse strength bucket
type Tier int

const (
	Weak Tier = iota
	Moderate
	Strong
	VeryStrong
)

func (t Tier) String() string {
	switch t {
	case Weak:
		return "weak"
	case Moderate:
		return "moderate"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very strong"
	default:
		return "unknown"
	}
}

// Scoring weights
const (
	longLength       = 12
	longBonus        = 2
	minLengthBonus   = 1
	classBonus       = 1
	commonPenalty    = 2
	moderateMinScore = 3
	strongMinScore   = 5
	veryStrongScore  = 6
)

// commonSubstrings are matched case-insensitively
var commonSubstrings = []string{
	"password",
	"123456",
	"qwerty",
	"letmein",
	"admin",
	"welcome",
	"abc123",
	"iloveyou",
	"111111",
	"monkey",
}

// Strength is the result of Score
type Strength struct {
	Score    int
	Feedback []string
	Tier     Tier
}

// Score rates a password. Longer passwords and passwords using more
// character classes never score lower, all else being equal.
func Score(password string) Strength {
	var s Strength

	length := len([]rune(password))
	switch {
	case length >= longLength:
		s.Score += longBonus
	case length >= MinLength:
		s.Score += minLengthBonus
		s.Feedback = append(s.Feedback, "Use at least 12 characters")
	default:
		s.Feedback = append(s.Feedback, "Password is too short (minimum 8 characters)")
	}

	classes := []struct {
		present  func(rune) bool
		feedback string
	}{
		{unicode.IsUpper, "Add uppercase letters"},
		{unicode.IsLower, "Add lowercase letters"},
		{unicode.IsDigit, "Add numbers"},
		{isSymbol, "Add special characters"},
	}
	for _, class := range classes {
		if strings.IndexFunc(password, class.present) >= 0 {
			s.Score += classBonus
		} else {
			s.Feedback = append(s.Feedback, class.feedback)
		}
	}

	lower := strings.ToLower(password)
	for _, common := range commonSubstrings {
		if strings.Contains(lower, common) {
			s.Score -= commonPenalty
			s.Feedback = append(s.Feedback, "Avoid common words and sequences")
			break
		}
	}

	if s.Score < 0 {
		s.Score = 0
	}
	s.Tier = tierFor(s.Score)
	return s
}

func isSymbol(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}

func tierFor(score int) Tier {
	switch {
	case score >= veryStrongScore:
		return VeryStrong
	case score >= strongMinScore:
		return Strong
	case score >= moderateMinScore:
		return Moderate
	default:
		return Weak
	}
}
