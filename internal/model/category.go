package model

// Category is the closed enumeration of calculator domains.
type Category string

const (
	CategoryMath       Category = "math"
	CategoryGeometry   Category = "geometry"
	CategoryFinance    Category = "finance"
	CategoryHealth     Category = "health"
	CategoryPhysics    Category = "physics"
	CategoryConversion Category = "conversion"
	CategoryStatistics Category = "statistics"
	CategoryDateTime   Category = "datetime"
	CategoryEveryday   Category = "everyday"
)

// Categories returns the enumeration in display order.
func Categories() []Category {
	return []Category{
		CategoryMath,
		CategoryGeometry,
		CategoryFinance,
		CategoryHealth,
		CategoryPhysics,
		CategoryConversion,
		CategoryStatistics,
		CategoryDateTime,
		CategoryEveryday,
	}
}

// Valid reports whether c is a member of the enumeration. Unknown values are
// never accepted silently.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the default English display name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryDateTime:
		return "Date & Time"
	default:
		return DefaultLabeler(string(c))
	}
}
