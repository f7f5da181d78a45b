package history

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw33tLie/pwcheck/pkg/scorer"
)

func TestMask(t *testing.T) {
	cases := map[string]string{
		"":                      "**",
		"ab":                    "**",
		"abc":                   "a*c",
		"password":              "p******d",
		"0123456789abcdef":      "0**************f",
		"0123456789abcdefXYZ12": "0*******************2",
		"пароль":                "п****ь",
	}
	for in, want := range cases {
		assert.Equal(t, want, Mask(in), in)
	}
}

func TestPreview(t *testing.T) {
	cases := map[string]string{
		"ab":                    "**",
		"password":              "p******d",
		"0123456789abcdef":      "0**************f",
		"0123456789abcdefXYZ12": "01234567...XYZ12",
	}
	for in, want := range cases {
		assert.Equal(t, want, Preview(in), in)
	}
}

func TestNewEntry_LongPasswordRevealsOnlyEdges(t *testing.T) {
	pw := "q8#Vz!2mL@9rT$4wK"
	e := NewEntry(pw, scorer.New().Evaluate(pw))

	assert.Equal(t, "q***************K", e.Masked)
	revealed := 0
	for _, r := range e.Masked {
		if r != '*' {
			revealed++
		}
	}
	assert.LessOrEqual(t, revealed, 2)
	assert.NotContains(t, e.Masked, "...")
}

func TestNewEntry(t *testing.T) {
	r := scorer.New().Evaluate("password")
	e := NewEntry("password", r)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "p******d", e.Masked)
	assert.Equal(t, r.TotalScore, e.Score)
	assert.Equal(t, scorer.Weak, e.Strength)
	assert.False(t, e.CheckedAt.IsZero())
}

func entry(score int) Entry {
	return Entry{ID: strconv.Itoa(score), Score: score, Strength: scorer.Classify(score)}
}

func TestRing_OverwritesOldest(t *testing.T) {
	ctx := context.Background()
	r := NewRing(3)
	for _, s := range []int{10, 40, 70, 90} {
		require.NoError(t, r.Record(ctx, entry(s)))
	}

	assert.Equal(t, 3, r.Len())
	got, err := r.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{90, 70, 40}, []int{got[0].Score, got[1].Score, got[2].Score})

	got, err = r.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 90, got[0].Score)
}

func TestRing_CapacityDuringClear(t *testing.T) {
	ctx := context.Background()
	r := NewRing(5)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, 5, r.Capacity())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.Record(ctx, entry(j))
				_ = r.Clear(ctx)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, r.Len())
}

func TestRing_StatsAndClear(t *testing.T) {
	ctx := context.Background()
	r := NewRing(0)
	assert.Equal(t, DefaultCapacity, r.Capacity())

	for _, s := range []int{10, 20, 50, 99} {
		require.NoError(t, r.Record(ctx, entry(s)))
	}

	st, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.Total)
	assert.InDelta(t, 44.75, st.Average, 0.001)
	assert.Equal(t, 2, st.Counts[scorer.Weak])
	assert.Equal(t, 1, st.Counts[scorer.Moderate])
	assert.Equal(t, 0, st.Counts[scorer.Strong])
	assert.InDelta(t, 50.0, st.Percent(scorer.Weak), 0.001)

	require.NoError(t, r.Clear(ctx))
	st, err = r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Total)
	assert.Equal(t, 0.0, st.Percent(scorer.Weak))
}
