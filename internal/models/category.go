package models

import "fmt"

// Category identifies one of the seven session categories a student can be
// scheduled for. The string values double as JSON keys in plans, reports and
// timetable assignments, so they must never drift.
type Category string

const (
	CategoryEnglish    Category = "english"
	CategoryMath       Category = "math"
	CategoryScience    Category = "science"
	CategoryBody       Category = "body"
	CategoryMind       Category = "mind"
	CategoryCBCS       Category = "cbcs"
	CategoryLifeSkills Category = "lifeSkills"
)

// AllCategories lists every category in canonical order: academic subjects
// first, then the non-academic tracks.
var AllCategories = []Category{
	CategoryEnglish,
	CategoryMath,
	CategoryScience,
	CategoryBody,
	CategoryMind,
	CategoryCBCS,
	CategoryLifeSkills,
}

// ParseCategory validates a raw string against the canonical set.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	for _, known := range AllCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// IsAcademic reports whether the category is a graded school subject.
func (c Category) IsAcademic() bool {
	switch c {
	case CategoryEnglish, CategoryMath, CategoryScience:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
