package scorer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLengthCheck_TooShort(t *testing.T) {
	s := New()
	for _, pw := range []string{"", "a", "Ab1!xyz"} {
		r := s.Evaluate(pw)
		assert.False(t, r.Length.Passed, "password %q", pw)
		assert.Equal(t, 0, r.Length.Score, "password %q", pw)
		assert.Contains(t, r.Length.Message, "too short")
	}
}

func TestLengthCheck_MaxLengthScoresFull(t *testing.T) {
	s := New()
	r := s.Evaluate(strings.Repeat("a", DefaultMaxLength))
	assert.True(t, r.Length.Passed)
	assert.Equal(t, 25, r.Length.Score)

	r = s.Evaluate(strings.Repeat("a", DefaultMaxLength+1))
	assert.False(t, r.Length.Passed)
	assert.Contains(t, r.Length.Message, "too long")
}

func TestLengthCheck_CountsRunes(t *testing.T) {
	s := New()
	r := s.Evaluate("ééééééé") // 7 runes, 14 bytes
	assert.False(t, r.Length.Passed)
	assert.Equal(t, 7, r.PasswordLength)
}

func TestEvaluate_CommonPassword(t *testing.T) {
	r := New().Evaluate("password")

	assert.False(t, r.CommonPassword.Passed)
	assert.Equal(t, 0, r.CommonPassword.Score)
	assert.False(t, r.Dictionary.Passed)
	assert.Equal(t, 0, r.Dictionary.Score)
	assert.Contains(t, r.Dictionary.Message, "'password'")
	assert.False(t, r.Sequences.Passed)
	assert.Equal(t, 0, r.Sequences.Score)
	assert.Equal(t, Weak, r.Strength)
}

func TestEvaluate_CommonPasswordIgnoresCase(t *testing.T) {
	s := New()
	for _, pw := range []string{"PASSWORD1", "LetMeIn", "Admin"} {
		assert.False(t, s.Evaluate(pw).CommonPassword.Passed, pw)
	}
}

func TestEvaluate_StrongPassword(t *testing.T) {
	r := New().Evaluate("Tr0ub4dor&3xyz")

	assert.True(t, r.Categories.Passed)
	assert.Equal(t, 4, r.Classes.Count())
	assert.Equal(t, 25, r.Categories.Score)
	assert.Equal(t, "Password uses 4 categories: lowercase letters, uppercase letters, numbers, special characters", r.Categories.Message)
	assert.True(t, r.Sequences.Passed)
	assert.Equal(t, 15, r.Sequences.Score)

	// 2 + 25 + 15 + 15 + 10 + 10 + 22
	assert.Equal(t, 2, r.Length.Score)
	assert.Equal(t, 22, r.Entropy.Score)
	assert.Equal(t, 99, r.TotalScore)
	assert.Equal(t, VeryStrong, r.Strength)
}

func TestCategories_ThreeClassesScore18(t *testing.T) {
	r := New().Evaluate("abcXYZ90")
	assert.True(t, r.Categories.Passed)
	assert.Equal(t, 18, r.Categories.Score)

	r = New().Evaluate("abcdXYZW")
	assert.False(t, r.Categories.Passed)
	assert.Equal(t, 0, r.Categories.Score)
	assert.Contains(t, r.Categories.Message, "only 2 character categories")
}

func TestSequences_RepeatedCharactersPartialCredit(t *testing.T) {
	r := New().Evaluate("aaa111")

	assert.False(t, r.Sequences.Passed)
	assert.Equal(t, 5, r.Sequences.Score)
	assert.Contains(t, r.Sequences.Message, "repeated characters")
}

func TestSequences_NewlineRunIgnored(t *testing.T) {
	r := New().Evaluate("Ab1!\n\n\nXy9")
	assert.True(t, r.Sequences.Passed)
}

func TestSequences_FirstListedSequenceWins(t *testing.T) {
	r := New().Evaluate("98765abcdef")
	assert.False(t, r.Sequences.Passed)
	assert.Equal(t, 0, r.Sequences.Score)
	assert.Equal(t, "Password contains a common sequence: 'abcdef'", r.Sequences.Message)
}

func TestSequences_ReportsConfiguredSpelling(t *testing.T) {
	s := New(WithCorpus(Corpus{Sequences: []string{"XyZzY"}}))

	r := s.Evaluate("Ab1!xyzzy")
	assert.False(t, r.Sequences.Passed)
	assert.Equal(t, "Password contains a common sequence: 'XyZzY'", r.Sequences.Message)
}

func TestSequences_KeyboardRowOrder(t *testing.T) {
	s := New()

	r := s.Evaluate("Xasd9!Lm")
	assert.Equal(t, "Password contains a keyboard sequence: 'asd'", r.Sequences.Message)
	assert.Equal(t, 0, r.Sequences.Score)

	// top row is scanned before the middle row
	r = s.Evaluate("asdIOP")
	assert.Equal(t, "Password contains a keyboard sequence: 'iop'", r.Sequences.Message)
}

func TestDictionary_ShortWordsIgnored(t *testing.T) {
	corpus := DefaultCorpus().Extend(Corpus{DictionaryWords: []string{"Dragon", "cat"}})
	s := New(WithCorpus(corpus))

	r := s.Evaluate("MyDragon#42x")
	assert.False(t, r.Dictionary.Passed)
	assert.Equal(t, "Password contains a common dictionary word: 'Dragon'", r.Dictionary.Message)

	r = s.Evaluate("Concat#42Xz")
	assert.True(t, r.Dictionary.Passed)
	assert.Equal(t, 10, r.Dictionary.Score)
}

func TestClassify_UnicodeDigits(t *testing.T) {
	// U+0661 and U+0967 are decimal digits outside ASCII
	c := classify("abc\u0661\u0967")
	assert.Equal(t, Classes{Lower: true, Digit: true}, c)

	c = classify("Ab\u0661!")
	assert.Equal(t, Classes{Lower: true, Upper: true, Digit: true, Special: true}, c)

	// other non-ASCII letters still count as special
	assert.Equal(t, Classes{Special: true}, classify("é"))
}

func TestBlacklist_CaseSensitive(t *testing.T) {
	s := New(WithBlacklist(map[string]struct{}{"Secret123!": {}}))

	r := s.Evaluate("Secret123!")
	assert.False(t, r.Blacklist.Passed)
	assert.Equal(t, 0, r.Blacklist.Score)

	r = s.Evaluate("secret123!")
	assert.True(t, r.Blacklist.Passed)
	assert.Equal(t, 10, r.Blacklist.Score)
}

func TestWithBlacklist_CopiesSet(t *testing.T) {
	set := map[string]struct{}{"hunter2!": {}}
	s := New(WithBlacklist(set))
	delete(set, "hunter2!")
	assert.False(t, s.Evaluate("hunter2!").Blacklist.Passed)
}

func TestEntropy_EmptyPassword(t *testing.T) {
	r := New().Evaluate("")
	assert.Equal(t, 0.0, r.Entropy.Bits)
	assert.Equal(t, 0, r.Entropy.Score)
	assert.False(t, r.Entropy.Passed())
	assert.False(t, r.Length.Passed)
}

func TestEntropy_LargerPoolMeansMoreBits(t *testing.T) {
	pairs := [][2]string{
		{"abcdefgh", "abcdEFGH"},
		{"abcdEFGH", "abcdEF12"},
		{"abcdEF12", "abcdE!12"},
		{"12345678", "1234567a"},
	}
	for _, p := range pairs {
		assert.Greater(t, Entropy(p[1]), Entropy(p[0]), "%q vs %q", p[1], p[0])
	}
}

func TestEntropy_Value(t *testing.T) {
	// 8 * log2(26)
	assert.InDelta(t, 37.603, Entropy("abcdefgh"), 0.001)
	assert.Equal(t, 95, classify("aA1!").PoolSize())
}

func TestEvaluate_Idempotent(t *testing.T) {
	s := New(WithBlacklist(map[string]struct{}{"x": {}}))
	for _, pw := range []string{"", "password", "Tr0ub4dor&3xyz", "aaa111"} {
		assert.Equal(t, s.Evaluate(pw), s.Evaluate(pw))
	}
}

// The check maxima add up to 125; the raw total is kept and only the
// display score is clamped.
func TestEvaluate_TotalScoreCanExceed100(t *testing.T) {
	pw := strings.Repeat("Tr0ub4dor&3xyz", 9) + "Tr"
	require.Len(t, pw, DefaultMaxLength)

	r := New().Evaluate(pw)
	for _, c := range r.Checks() {
		assert.True(t, c.Result.Passed, c.Name)
	}
	assert.Equal(t, 125, r.TotalScore)
	assert.Equal(t, 100, r.ClampedScore())
	assert.Equal(t, VeryStrong, r.Strength)
}

func TestClassify_Boundaries(t *testing.T) {
	cases := map[int]Strength{
		0: Weak, 29: Weak,
		30: Moderate, 59: Moderate,
		60: Strong, 79: Strong,
		80: VeryStrong, 125: VeryStrong,
	}
	for total, want := range cases {
		assert.Equal(t, want, Classify(total), "total %d", total)
	}
}

func TestReport_ChecksOrder(t *testing.T) {
	var names []string
	for _, c := range New().Evaluate("x").Checks() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"length", "categories", "common_password", "sequences", "dictionary", "blacklist", "entropy"}, names)
}

func TestReport_JSON(t *testing.T) {
	raw, err := json.Marshal(New().Evaluate("Tr0ub4dor&3xyz"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Very Strong", decoded["strength"])
	assert.EqualValues(t, 99, decoded["total_score"])

	ent, ok := decoded["entropy"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, ent["pass"])
	assert.Contains(t, ent["message"], "bits")
}

func TestParseStrength(t *testing.T) {
	for _, label := range []string{"Very Strong", "verystrong", "VERY_STRONG"} {
		got, err := ParseStrength(label)
		require.NoError(t, err)
		assert.Equal(t, VeryStrong, got)
	}
	_, err := ParseStrength("meh")
	assert.Error(t, err)
}

func TestWithLengthBounds_IgnoresInvalidRange(t *testing.T) {
	cfg := New(WithLengthBounds(20, 10)).Config()
	assert.Equal(t, DefaultMinLength, cfg.MinLength)
	assert.Equal(t, DefaultMaxLength, cfg.MaxLength)
}
