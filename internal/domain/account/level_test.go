package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLevelForSpend(t *testing.T) {
	cases := []struct {
		spend float64
		want  AccountLevel
	}{
		{0, AccountLevelBronze},
		{249.99, AccountLevelBronze},
		{250, AccountLevelSilver},
		{999.99, AccountLevelSilver},
		{1000, AccountLevelGold},
		{4999.99, AccountLevelGold},
		{5000, AccountLevelPlatinum},
		{100000, AccountLevelPlatinum},
		{-10, AccountLevelBronze},
	}

	for _, tc := range cases {
		got := LevelForSpend(decimal.NewFromFloat(tc.spend))
		assert.Equal(t, tc.want, got, "spend=%v", tc.spend)
	}
}

func TestNextThreshold(t *testing.T) {
	next, min, ok := NextThreshold(AccountLevelBronze)
	assert.True(t, ok)
	assert.Equal(t, AccountLevelSilver, next)
	assert.True(t, min.Equal(decimal.NewFromInt(250)))

	_, _, ok = NextThreshold(AccountLevelPlatinum)
	assert.False(t, ok)
}

func TestProgressToNext(t *testing.T) {
	t.Run("halfway through bronze", func(t *testing.T) {
		progress := ProgressToNext(decimal.NewFromInt(125))
		assert.True(t, progress.Equal(decimal.NewFromFloat(0.5)))
	})

	t.Run("top level reports full progress", func(t *testing.T) {
		progress := ProgressToNext(decimal.NewFromInt(9000))
		assert.True(t, progress.Equal(decimal.NewFromInt(1)))
	})

	t.Run("negative spend clamps to zero", func(t *testing.T) {
		progress := ProgressToNext(decimal.NewFromInt(-50))
		assert.True(t, progress.IsZero())
	})

	t.Run("monotonic in spend", func(t *testing.T) {
		// Level+progress pairs must never decrease as spend grows.
		prevLevel := 0
		prevProgress := decimal.Zero
		levelRank := map[AccountLevel]int{
			AccountLevelBronze:   0,
			AccountLevelSilver:   1,
			AccountLevelGold:     2,
			AccountLevelPlatinum: 3,
		}

		for spend := 0; spend <= 6000; spend += 50 {
			d := decimal.NewFromInt(int64(spend))
			rank := levelRank[LevelForSpend(d)]
			progress := ProgressToNext(d)

			if rank == prevLevel {
				assert.True(t, progress.GreaterThanOrEqual(prevProgress),
					"progress regressed at spend=%d", spend)
			} else {
				assert.Greater(t, rank, prevLevel, "level regressed at spend=%d", spend)
			}
			prevLevel = rank
			prevProgress = progress
		}
	})
}

func TestPointsForOrder(t *testing.T) {
	assert.Equal(t, 0, PointsForOrder(decimal.Zero))
	assert.Equal(t, 0, PointsForOrder(decimal.NewFromFloat(0.99)))
	assert.Equal(t, 42, PointsForOrder(decimal.NewFromFloat(42.75)))
	assert.Equal(t, 0, PointsForOrder(decimal.NewFromInt(-5)))
}
