package sqlite

import "github.com/aanand-mishra/course-registration/internal/types"

// CatalogEntry is a course offering together with its seat count.
type CatalogEntry struct {
	types.Course
	Capacity int
}

// DefaultCapacity is the seat count used by DefaultCatalog.
const DefaultCapacity = 30

func entry(code, name string, session types.Session) CatalogEntry {
	return CatalogEntry{
		Course:   types.Course{Code: code, Name: name, Session: session},
		Capacity: DefaultCapacity,
	}
}

// DefaultCatalog is what a fresh database is seeded with.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		entry("IFT1015", "Programming 1", types.Autumn),
		entry("IFT1025", "Programming 2", types.Autumn),
		entry("IFT2255", "Software Engineering", types.Autumn),
		entry("MAT1000", "Calculus", types.Autumn),
		entry("IFT1025", "Programming 2", types.Winter),
		entry("IFT1065", "Discrete Structures", types.Winter),
		entry("IFT2015", "Data Structures", types.Winter),
		entry("MAT1400", "Linear Algebra", types.Winter),
		entry("IFT1015", "Programming 1", types.Summer),
		entry("IFT2035", "Programming Languages", types.Summer),
	}
}
