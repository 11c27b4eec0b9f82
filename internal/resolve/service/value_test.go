package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueScore_Deterministic(t *testing.T) {
	a := ValueScore(18, 650, "large bowl", 18)
	b := ValueScore(18, 650, "large bowl", 18)
	assert.Equal(t, a, b)
}

func TestValueScore_AtBudget(t *testing.T) {
	// cost==budget: 0 cost points, 30 calorie points (capped), 30 quantity
	// points ("large" scales 2.5, capped)
	assert.Equal(t, 60, ValueScore(18, 650, "large bowl", 18))
}

func TestValueScore_AlwaysInRange(t *testing.T) {
	cases := []struct {
		cost, calories float64
		quantity       string
		budget         float64
	}{
		{100, 100, "", 10},    // far over budget
		{1, 2000, "3 pieces", 100},
		{0, 0, "", 0},
		{50, 0, "small", 20},
		{5, 900, "2 slices", 25},
	}
	for _, c := range cases {
		s := ValueScore(c.cost, c.calories, c.quantity, c.budget)
		assert.GreaterOrEqual(t, s, 0, "%+v", c)
		assert.LessOrEqual(t, s, 100, "%+v", c)
	}
}

func TestValueScore_PerOptionNotRelative(t *testing.T) {
	// scoring is a function of the option alone; evaluation order is irrelevant
	s1 := ValueScore(12, 900, "large", 20)
	s2 := ValueScore(18, 500, "1 serving", 20)
	assert.Equal(t, s1, ValueScore(12, 900, "large", 20))
	assert.Equal(t, s2, ValueScore(18, 500, "1 serving", 20))
}

func TestValueScore_CheaperScoresBetter(t *testing.T) {
	cheap := ValueScore(10, 600, "1 serving", 20)
	pricey := ValueScore(19, 600, "1 serving", 20)
	assert.Greater(t, cheap, pricey)
}

func TestParseQuantityScale(t *testing.T) {
	assert.Equal(t, 3.0, parseQuantityScale("3 tacos"))
	assert.Equal(t, 2.0, parseQuantityScale("2 slices"))
	assert.Equal(t, 2.5, parseQuantityScale("large bowl"))
	assert.Equal(t, 2.5, parseQuantityScale("Big portion"))
	assert.Equal(t, 1.0, parseQuantityScale("1 serving"))
	assert.Equal(t, 1.0, parseQuantityScale(""))
}

func TestScoreOption_FillsEstimates(t *testing.T) {
	opt := ScoreOption("Karma Kafe", "biryani", 0, 0, "", 20)

	assert.Equal(t, "Karma Kafe", opt.RestaurantName)
	assert.Equal(t, 14.0, opt.EstimatedCost)
	assert.Equal(t, 650.0, opt.EstimatedCalories)
	assert.Equal(t, "large bowl", opt.EstimatedQuantity)
	assert.Equal(t, ValueScore(14, 650, "large bowl", 20), opt.ValueScore)
}

func TestScoreOption_KeepsProvidedFigures(t *testing.T) {
	opt := ScoreOption("Chipotle", "", 9.5, 800, "2 tacos", 20)
	assert.Equal(t, 9.5, opt.EstimatedCost)
	assert.Equal(t, 800.0, opt.EstimatedCalories)
	assert.Equal(t, "2 tacos", opt.EstimatedQuantity)
}
