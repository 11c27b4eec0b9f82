package service

import (
	"math"
	"strings"

	"dinescan-service/internal/resolve/model"
)

// ValueScore rates a cost/calorie/quantity triple against a budget on a 0–100
// scale. Up to 40 points for staying under budget, 30 for calories per dollar,
// 30 for portion size. Deterministic: identical inputs, identical score.
func ValueScore(cost, calories float64, quantity string, budget float64) int {
	if budget <= 0 {
		budget = 1
	}
	effCost := cost
	if effCost < 1 {
		effCost = 1
	}

	costEfficiency := (budget - cost) / budget * 40
	calorieValue := math.Min(30, calories/effCost*30)
	quantityValue := math.Min(30, parseQuantityScale(quantity)*30)

	score := costEfficiency + calorieValue + quantityValue
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}

// ScoreOption fills missing cost/calorie/quantity figures from the dish table
// and scores the option. Used by the batch path, where no business record is
// resolved.
func ScoreOption(restaurant, dish string, cost, calories float64, quantity string, budget float64) model.ComparisonOption {
	if cost <= 0 {
		cost = estimateCost(0, dish)
	}
	if calories <= 0 {
		calories = estimateCalories(dish)
	}
	if quantity == "" {
		quantity = estimateQuantity(dish)
	}
	return model.ComparisonOption{
		RestaurantName:    restaurant,
		DishName:          dish,
		EstimatedCost:     cost,
		EstimatedCalories: calories,
		EstimatedQuantity: quantity,
		ValueScore:        ValueScore(cost, calories, quantity, budget),
	}
}

// parseQuantityScale maps textual portion hints onto a numeric scale.
func parseQuantityScale(q string) float64 {
	lq := strings.ToLower(q)
	switch {
	case strings.Contains(lq, "3"):
		return 3
	case strings.Contains(lq, "2"):
		return 2
	case strings.Contains(lq, "large"), strings.Contains(lq, "big"):
		return 2.5
	default:
		return 1
	}
}
