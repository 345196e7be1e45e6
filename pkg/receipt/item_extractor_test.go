package receipt

import (
	"context"
	"testing"
	"time"

	"Expiry-Reminder/domain"
	"Expiry-Reminder/pkg/shelflife"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableShelfLife struct {
	calls []string
}

func (f *tableShelfLife) Resolve(_ context.Context, name string) shelflife.Result {
	f.calls = append(f.calls, name)
	if days, ok := shelflife.MatchCategory(domain.ShelfLifeCategories, name); ok {
		return shelflife.Result{Days: days, Outcome: shelflife.OutcomeMatched}
	}
	return shelflife.Result{Days: domain.FallbackShelfLifeDays, Degraded: true, Outcome: shelflife.OutcomeNoCategory}
}

var fixedNow = time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestExtractReceiptScenario(t *testing.T) {
	resolver := &tableShelfLife{}
	items := NewItemExtractor(resolver, fixedClock).Extract(context.Background(), "Milk\n\nBread\nmilk\nCHICKEN BREAST")

	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	require.Len(t, items, 3)
	assert.Equal(t, domain.ExtractedItem{Name: "milk", ExpiryDate: today.AddDate(0, 0, 7)}, items[0])
	assert.Equal(t, domain.ExtractedItem{Name: "bread", ExpiryDate: today.AddDate(0, 0, 4)}, items[1])
	assert.Equal(t, domain.ExtractedItem{Name: "chicken breast", ExpiryDate: today.AddDate(0, 0, 2)}, items[2])

	assert.Equal(t, []string{"milk", "bread", "chicken breast"}, resolver.calls)
}

func TestExtractBlankInput(t *testing.T) {
	for _, raw := range []string{"", "\n", "   \n\t\n\r\n  ", "\r\r\n"} {
		items := NewItemExtractor(&tableShelfLife{}, fixedClock).Extract(context.Background(), raw)
		assert.NotNil(t, items)
		assert.Empty(t, items, "input %q", raw)
	}
}

func TestExtractNamesArePairwiseDistinct(t *testing.T) {
	raw := "  Eggs \r\nEGGS\neggs\t\nLettuce\n lettuce\nTomato 2x 1.99\ntomato 2x 1.99"
	items := NewItemExtractor(&tableShelfLife{}, fixedClock).Extract(context.Background(), raw)

	seen := map[string]bool{}
	for _, item := range items {
		assert.False(t, seen[item.Name], "duplicate %q", item.Name)
		seen[item.Name] = true
	}
	assert.Equal(t, []string{"eggs", "lettuce", "tomato 2x 1.99"}, names(items))
}

func TestExtractFixesTodayOnce(t *testing.T) {
	calls := 0
	clock := func() time.Time {
		calls++
		return fixedNow.Add(time.Duration(calls) * time.Hour)
	}
	items := NewItemExtractor(&tableShelfLife{}, clock).Extract(context.Background(), "soap\nsponge\nfoil")

	require.Len(t, items, 3)
	assert.Equal(t, 1, calls)
	for _, item := range items {
		assert.Equal(t, items[0].ExpiryDate, item.ExpiryDate)
	}
}

func names(items []domain.ExtractedItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}
