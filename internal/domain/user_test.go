package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddXPRollsOverSingleLevel(t *testing.T) {
	u := User{Level: 1, XP: 80}
	u.AddXP(50)

	assert.Equal(t, 2, u.Level)
	assert.Equal(t, 30, u.XP)
}

func TestAddXPMultiLevelJump(t *testing.T) {
	// 1 уровень вмещает 100, второй 200: награда 350 с нуля даёт
	// уровень 3 и остаток 50
	u := User{Level: 1, XP: 0}
	u.AddXP(350)

	assert.Equal(t, 3, u.Level)
	assert.Equal(t, 50, u.XP)
}

func TestAddXPExactCapacity(t *testing.T) {
	u := User{Level: 1, XP: 0}
	u.AddXP(100)

	assert.Equal(t, 2, u.Level)
	assert.Equal(t, 0, u.XP)
}

func TestAddXPIgnoresNonPositive(t *testing.T) {
	u := User{Level: 3, XP: 40}
	u.AddXP(0)
	u.AddXP(-10)

	assert.Equal(t, 3, u.Level)
	assert.Equal(t, 40, u.XP)
}

func TestXPAwardScalesByScoreAndTier(t *testing.T) {
	assert.Equal(t, 50, XPAward(50, VipTierNone, 100))
	assert.Equal(t, 25, XPAward(50, VipTierNone, 50))
	assert.Equal(t, 100, XPAward(50, VipTierSilver, 100))
	assert.Equal(t, 150, XPAward(50, VipTierGold, 100))
	assert.Equal(t, 250, XPAward(50, VipTierDiamond, 100))
	// округление до ближайшего целого
	assert.Equal(t, 17, XPAward(50, VipTierNone, 33))
}

func TestParseVipTier(t *testing.T) {
	for _, valid := range []string{"silver", "gold", "diamond"} {
		tier, ok := ParseVipTier(valid)
		assert.True(t, ok)
		assert.Equal(t, VipTier(valid), tier)
	}

	_, ok := ParseVipTier("platinum")
	assert.False(t, ok)
	_, ok = ParseVipTier("")
	assert.False(t, ok)
}

func TestNormalizePair(t *testing.T) {
	lo, hi := NormalizePair(7, 3)
	assert.Equal(t, uint(3), lo)
	assert.Equal(t, uint(7), hi)

	lo, hi = NormalizePair(3, 7)
	assert.Equal(t, uint(3), lo)
	assert.Equal(t, uint(7), hi)
}

func TestProgressPercentClamps(t *testing.T) {
	a := Achievement{Target: 50}
	assert.Equal(t, 0, a.ProgressPercent(0))
	assert.Equal(t, 50, a.ProgressPercent(25))
	assert.Equal(t, 100, a.ProgressPercent(50))
	assert.Equal(t, 100, a.ProgressPercent(500))

	zero := Achievement{Target: 0}
	assert.Equal(t, 0, zero.ProgressPercent(10))
}
