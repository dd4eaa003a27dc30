package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeXP(t *testing.T) {
	// 12次训练×10 + 5000训练量/100 + 4个PR×5 = 120 + 50 + 20
	assert.InDelta(t, 190.0, ComputeXP(12, 5000, 4), 1e-9)
	assert.InDelta(t, 0.0, ComputeXP(0, 0, 0), 1e-9)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 0, LevelFor(0))
	assert.Equal(t, 0, LevelFor(49.9))
	assert.Equal(t, 1, LevelFor(50))
	assert.Equal(t, 3, LevelFor(190))
}

func TestLeagueThresholds(t *testing.T) {
	assert.Equal(t, LeagueBronze, LeagueFor(0))
	assert.Equal(t, LeagueBronze, LeagueFor(1))
	assert.Equal(t, LeagueSilver, LeagueFor(2))
	assert.Equal(t, LeagueSilver, LeagueFor(4))
	assert.Equal(t, LeagueGold, LeagueFor(5))
	assert.Equal(t, LeaguePlatinum, LeagueFor(10))
	assert.Equal(t, LeagueDiamond, LeagueFor(15))
	assert.Equal(t, LeagueMaster, LeagueFor(20))
	assert.Equal(t, LeagueMaster, LeagueFor(42))
}
