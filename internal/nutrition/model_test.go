package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoodLogDerivedMacros(t *testing.T) {
	log := FoodLog{
		Food: Food{
			KcalPer100g:    165,
			ProteinPer100g: 31,
			CarbsPer100g:   0,
			FatPer100g:     3.6,
		},
		Grams: 150,
	}

	assert.InDelta(t, 247.5, log.Kcal(), 1e-9)
	assert.InDelta(t, 46.5, log.Protein(), 1e-9)
	assert.InDelta(t, 0.0, log.Carbs(), 1e-9)
	assert.InDelta(t, 5.4, log.Fat(), 1e-9)
}

func TestFoodLogZeroGrams(t *testing.T) {
	log := FoodLog{
		Food:  Food{KcalPer100g: 389, ProteinPer100g: 16.9},
		Grams: 0,
	}
	assert.InDelta(t, 0.0, log.Kcal(), 1e-9)
	assert.InDelta(t, 0.0, log.Protein(), 1e-9)
}
