package service

import "strings"

// dishStat is the deterministic fallback when neither the user nor the
// provider supplied a figure. Hand-tuned, not learned.
type dishStat struct {
	cost     float64
	calories float64
	quantity string
}

var dishStats = map[string]dishStat{
	"biryani":  {14, 650, "large bowl"},
	"burrito":  {12, 900, "large"},
	"pizza":    {16, 850, "2 slices"},
	"burger":   {13, 750, "1 with fries"},
	"taco":     {11, 550, "3 tacos"},
	"tacos":    {11, 550, "3 tacos"},
	"sushi":    {18, 500, "8 pieces"},
	"ramen":    {15, 700, "large bowl"},
	"pasta":    {15, 800, "1 plate"},
	"salad":    {12, 400, "large"},
	"sandwich": {10, 600, "1 sandwich"},
	"curry":    {14, 700, "1 serving"},
	"noodles":  {13, 750, "large bowl"},
	"pho":      {14, 600, "large bowl"},
	"shawarma": {11, 650, "1 wrap"},
	"falafel":  {10, 550, "1 wrap"},
}

// priceLevelCost maps provider price tiers ($..$$$$) to a typical per-meal cost.
var priceLevelCost = map[int]float64{1: 12, 2: 20, 3: 35, 4: 60}

const (
	defaultMealCost     = 15.0
	defaultMealCalories = 600.0
	defaultQuantity     = "1 serving"
)

func estimateCost(priceLevel int, dish string) float64 {
	if st, ok := dishStats[strings.ToLower(strings.TrimSpace(dish))]; ok {
		return st.cost
	}
	if c, ok := priceLevelCost[priceLevel]; ok {
		return c
	}
	return defaultMealCost
}

func estimateCalories(dish string) float64 {
	if st, ok := dishStats[strings.ToLower(strings.TrimSpace(dish))]; ok {
		return st.calories
	}
	return defaultMealCalories
}

func estimateQuantity(dish string) string {
	if st, ok := dishStats[strings.ToLower(strings.TrimSpace(dish))]; ok {
		return st.quantity
	}
	return defaultQuantity
}
