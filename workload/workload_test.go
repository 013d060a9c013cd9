package workload

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrain(t *testing.T) {
	t.Run("unbounded keys", func(t *testing.T) {
		report, err := Drain(Args{Count: 10000, Seed: 42})
		require.NoError(t, err)

		assert.True(t, report.Ok())
		assert.Equal(t, 10000, report.Extracted)
		assert.Zero(t, report.Inversions)
		assert.Equal(t, report.ExpectedMin, report.First)
		assert.LessOrEqual(t, report.First, report.Last)
	})

	t.Run("narrow key range", func(t *testing.T) {
		report, err := Drain(Args{Count: 500, Seed: 1, KeyRange: 3})
		require.NoError(t, err)

		assert.True(t, report.Ok())
		assert.Equal(t, 500, report.Extracted)
		assert.Equal(t, 0, report.First)
		assert.Equal(t, 2, report.Last)
	})

	t.Run("deterministic for a seed", func(t *testing.T) {
		a, err := Drain(Args{Count: 100, Seed: 7})
		require.NoError(t, err)
		b, err := Drain(Args{Count: 100, Seed: 7})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestTopK(t *testing.T) {
	t.Run("keeps largest keys", func(t *testing.T) {
		args := Args{Count: 1000, Seed: 42, KeyRange: 1000}
		report, err := TopK(args)
		require.NoError(t, err)

		assert.True(t, report.Ok())
		assert.Equal(t, 1000, report.Extracted)

		// replay the generator to find what the survivors should be
		keys, err := newKeyGenerator(args)
		require.NoError(t, err)
		all := make([]int, 2*args.Count)
		for i := range all {
			all[i] = keys.next()
		}
		slices.Sort(all)
		largest := all[args.Count:]

		assert.Equal(t, largest[0], report.First)
		assert.Equal(t, largest[len(largest)-1], report.Last)
	})

	t.Run("single key", func(t *testing.T) {
		report, err := TopK(Args{Count: 1, Seed: 3, KeyRange: 10})
		require.NoError(t, err)
		assert.True(t, report.Ok())
		assert.Equal(t, 1, report.Extracted)
	})
}

func TestInvalidArgs(t *testing.T) {
	_, err := Drain(Args{Count: 0})
	assert.ErrorIs(t, err, ErrInvalidArgs)

	_, err = TopK(Args{Count: -1})
	assert.ErrorIs(t, err, ErrInvalidArgs)

	_, err = Drain(Args{Count: 3, KeyRange: -5})
	assert.ErrorIs(t, err, ErrInvalidArgs)
}

func TestReport_Ok(t *testing.T) {
	assert.True(t, Report{}.Ok())
	assert.False(t, Report{Extracted: 2, Inversions: 1}.Ok())
	assert.False(t, Report{Extracted: 2, ExpectedMin: 1, First: 2, Last: 3}.Ok())
}
