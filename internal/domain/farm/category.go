package farm

import "fmt"

// Category classifies livestock into the fixed head-count buckets kept per field.
type Category string

const (
	CategoryCows         Category = "COWS"
	CategoryBulls        Category = "BULLS"
	CategorySteers       Category = "STEERS"
	CategoryYoungSteers  Category = "YOUNG_STEERS"
	CategoryHeifers      Category = "HEIFERS"
	CategoryMaleCalves   Category = "MALE_CALVES"
	CategoryFemaleCalves Category = "FEMALE_CALVES"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryCows,
	CategoryBulls,
	CategorySteers,
	CategoryYoungSteers,
	CategoryHeifers,
	CategoryMaleCalves,
	CategoryFemaleCalves,
}

// categoryNames is the fixed Spanish display table used for calendar titles.
var categoryNames = map[Category]string{
	CategoryCows:         "Vacas",
	CategoryBulls:        "Toros",
	CategorySteers:       "Novillos",
	CategoryYoungSteers:  "Novillitos",
	CategoryHeifers:      "Vaquillonas",
	CategoryMaleCalves:   "Terneros",
	CategoryFemaleCalves: "Terneras",
}

// ParseCategory validates a category string
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryNames[c]; !ok {
		return "", fmt.Errorf("unknown livestock category: %q", s)
	}
	return c, nil
}

// DisplayName returns the Spanish display name for the category
func (c Category) DisplayName() string {
	return categoryNames[c]
}

// IsValid reports whether the category is one of the seven known buckets
func (c Category) IsValid() bool {
	_, ok := categoryNames[c]
	return ok
}
