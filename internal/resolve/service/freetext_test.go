package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinescan-service/internal/resolve/model"
)

func TestParseFreeText_DishSuffixAndCost(t *testing.T) {
	opt := parseFreeText("Karma Kafe biryani $18")

	assert.Equal(t, "Karma Kafe", opt.Restaurant)
	assert.Equal(t, "biryani", opt.Dish)
	assert.True(t, opt.HasCost)
	assert.Equal(t, 18.0, opt.Cost)
	assert.Equal(t, "Karma Kafe biryani $18", opt.Original)
}

func TestParseFreeText_BareRestaurant(t *testing.T) {
	opt := parseFreeText("Chipotle $18")

	assert.Equal(t, "Chipotle", opt.Restaurant)
	assert.Empty(t, opt.Dish)
	assert.Equal(t, 18.0, opt.Cost)
}

func TestParseFreeText_AtPattern(t *testing.T) {
	opt := parseFreeText("biryani at Karma Kafe")
	assert.Equal(t, "Karma Kafe", opt.Restaurant)
	assert.Equal(t, "biryani", opt.Dish)
}

func TestParseFreeText_CommaPattern(t *testing.T) {
	opt := parseFreeText("Karma Kafe, chicken biryani")
	assert.Equal(t, "Karma Kafe", opt.Restaurant)
	assert.Equal(t, "chicken biryani", opt.Dish)
}

func TestParseFreeText_DashPattern(t *testing.T) {
	opt := parseFreeText("Shake Shack - double cheeseburger")
	assert.Equal(t, "Shake Shack", opt.Restaurant)
	assert.Equal(t, "double cheeseburger", opt.Dish)
}

func TestParseFreeText_DishPrefix(t *testing.T) {
	opt := parseFreeText("burrito Chipotle")
	assert.Equal(t, "Chipotle", opt.Restaurant)
	assert.Equal(t, "burrito", opt.Dish)
}

func TestCleanRestaurantName(t *testing.T) {
	assert.Equal(t, "Karma Kafe", cleanRestaurantName("Brooklyn Karma Kafe biryani $15"))
	assert.Equal(t, "Karma Kafe", cleanRestaurantName("Karma Kafe"))
	assert.Equal(t, "Chipotle", cleanRestaurantName("Chipotle burrito 12 dollars"))
}

func TestSplitComparisonQuery(t *testing.T) {
	a, b, ok := SplitComparisonQuery("Compare Karma Kafe biryani $18 vs Chipotle $18")
	require.True(t, ok)
	assert.Equal(t, "Karma Kafe biryani $18", a)
	assert.Equal(t, "Chipotle $18", b)

	_, _, ok = SplitComparisonQuery("just one restaurant")
	assert.False(t, ok)
}

func TestSplitComparisonQuery_Versus(t *testing.T) {
	a, b, ok := SplitComparisonQuery("Shake Shack versus Five Guys")
	require.True(t, ok)
	assert.Equal(t, "Shake Shack", a)
	assert.Equal(t, "Five Guys", b)
}

func TestFindBestMatch_ExactNameWins(t *testing.T) {
	list := []model.GeoBusiness{
		{ID: "1", Name: "Karma Kafe Express"},
		{ID: "2", Name: "Karma Kafe"},
	}
	m := findBestMatch("karma kafe", list)
	require.NotNil(t, m)
	assert.Equal(t, "2", m.ID)
}

func TestFindBestMatch_MostTokensWins(t *testing.T) {
	list := []model.GeoBusiness{
		{ID: "1", Name: "Kafe Central"},
		{ID: "2", Name: "Karma Kafe House"},
	}
	m := findBestMatch("karma kafe", list)
	require.NotNil(t, m)
	assert.Equal(t, "2", m.ID)
}

func TestFindBestMatch_SingleOverlapWins(t *testing.T) {
	list := []model.GeoBusiness{
		{ID: "1", Name: "Totally Unrelated"},
		{ID: "2", Name: "Karma House"},
	}
	m := findBestMatch("karma kafe", list)
	require.NotNil(t, m)
	assert.Equal(t, "2", m.ID)
}

func TestFindBestMatch_NoOverlap(t *testing.T) {
	list := []model.GeoBusiness{{ID: "1", Name: "Totally Unrelated"}}
	assert.Nil(t, findBestMatch("karma kafe", list))
}

func TestResolveFreeText_CleanedNarrowFirst(t *testing.T) {
	dir := &fakeDirectory{searches: map[string][]model.GeoBusiness{
		"karma kafe": {{ID: "kk", Name: "Karma Kafe"}},
	}}
	p := newTestPipeline(dir, nil)

	biz, strategy, degraded := p.resolveFreeText(context.Background(), parseFreeText("Karma Kafe biryani $18"), signCoords)

	require.NotNil(t, biz)
	assert.Equal(t, "kk", biz.ID)
	assert.Equal(t, model.StrategyCleanedNarrow, strategy)
	assert.False(t, degraded)
}

func TestResolveFreeText_FallsBackToWordSearch(t *testing.T) {
	dir := &fakeDirectory{searches: map[string][]model.GeoBusiness{
		"karma": {{ID: "kk", Name: "Karma Kafe"}},
	}}
	p := newTestPipeline(dir, nil)

	opt := parsedOption{Restaurant: "Brooklyn Karma Kafe", Original: "Brooklyn Karma Kafe"}
	biz, strategy, _ := p.resolveFreeText(context.Background(), opt, signCoords)

	require.NotNil(t, biz)
	assert.Equal(t, "kk", biz.ID)
	assert.Equal(t, model.StrategyWordBroad, strategy)
}

func TestResolveFreeText_LastResortTakesFirstRawHit(t *testing.T) {
	dir := &fakeDirectory{searches: map[string][]model.GeoBusiness{
		"karma kafe": {{ID: "x", Name: "Totally Unrelated"}},
	}}
	p := newTestPipeline(dir, nil)

	opt := parsedOption{Restaurant: "Karma Kafe", Original: "Karma Kafe"}
	biz, strategy, _ := p.resolveFreeText(context.Background(), opt, signCoords)

	require.NotNil(t, biz)
	assert.Equal(t, "x", biz.ID)
	assert.Equal(t, model.StrategyLastResort, strategy)
}

func TestResolveFreeText_NothingFound(t *testing.T) {
	p := newTestPipeline(&fakeDirectory{searches: map[string][]model.GeoBusiness{}}, nil)

	opt := parsedOption{Restaurant: "Karma Kafe", Original: "Karma Kafe"}
	biz, strategy, _ := p.resolveFreeText(context.Background(), opt, signCoords)

	assert.Nil(t, biz)
	assert.Equal(t, model.StrategyNoMatch, strategy)
}
