package running

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCalories(t *testing.T) {
	run := Run{DistanceM: 10000}
	// 75kg × 10km × 1.036
	assert.InDelta(t, 777.0, run.EstimateCalories(75), 1e-9)

	// 体重未知时按70kg估算：70 × 5 × 1.036
	short := Run{DistanceM: 5000}
	assert.InDelta(t, 362.6, short.EstimateCalories(0), 1e-9)
}

func TestMovingTimeHMS(t *testing.T) {
	assert.Equal(t, "42m13s", (&Run{MovingTimeS: 2533}).MovingTimeHMS())
	assert.Equal(t, "1h03m20s", (&Run{MovingTimeS: 3800}).MovingTimeHMS())
	assert.Equal(t, "0m00s", (&Run{MovingTimeS: 0}).MovingTimeHMS())
}

func TestPaceMinPerKm(t *testing.T) {
	pace := 275.0
	run := Run{AveragePaceSPerKm: &pace}
	assert.Equal(t, "4:35 /km", run.PaceMinPerKm())

	assert.Equal(t, "", (&Run{}).PaceMinPerKm())
}
