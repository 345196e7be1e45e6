package domain

// FallbackShelfLifeDays is used whenever the lookup cannot classify an item.
const FallbackShelfLifeDays = 5

// ShelfLifeCategory maps a keyword found in a product name to its shelf life.
type ShelfLifeCategory struct {
	Keyword string
	Days    int
}

// ShelfLifeCategories is evaluated top to bottom; the first keyword contained
// in the product name wins.
var ShelfLifeCategories = []ShelfLifeCategory{
	{Keyword: "milk", Days: 7},
	{Keyword: "egg", Days: 21},
	{Keyword: "bread", Days: 4},
	{Keyword: "chicken", Days: 2},
	{Keyword: "lettuce", Days: 5},
}
