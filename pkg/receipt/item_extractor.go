package receipt

import (
	"context"
	"strings"
	"time"

	"Expiry-Reminder/domain"
	"Expiry-Reminder/pkg/shelflife"
)

type (
	ItemExtractor interface {
		Extract(ctx context.Context, rawText string) []domain.ExtractedItem
	}

	itemExtractor struct {
		shelfLife shelflife.ShelfLifeService
		now       func() time.Time
	}
)

func NewItemExtractor(shelfLife shelflife.ShelfLifeService, now func() time.Time) ItemExtractor {
	if now == nil {
		now = time.Now
	}
	return &itemExtractor{shelfLife: shelfLife, now: now}
}

// Extract treats every non-blank line as an item name. Repeated names keep
// the first occurrence; the shelf-life lookup runs once per distinct name.
func (e *itemExtractor) Extract(ctx context.Context, rawText string) []domain.ExtractedItem {
	today := domain.DateOf(e.now())
	seen := make(map[string]struct{})
	items := make([]domain.ExtractedItem, 0)

	for _, line := range splitLines(strings.ToLower(rawText)) {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		res := e.shelfLife.Resolve(ctx, name)
		items = append(items, domain.ExtractedItem{
			Name:       name,
			ExpiryDate: today.AddDate(0, 0, res.Days),
		})
	}
	return items
}

func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			return true
		}
		return false
	})
}
