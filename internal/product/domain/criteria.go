package domain

import "strings"

// Clause is one optional predicate of a listing filter. Clauses are
// AND-reduced by the repository.
type Clause interface{ isClause() }

// TextSearch matches the query as a case-insensitive substring of name,
// description, or category.
type TextSearch struct {
	Query string
}

// CategoryEquals matches the category label exactly (case-sensitive).
type CategoryEquals struct {
	Category string
}

// StatusEquals matches the active flag.
type StatusEquals struct {
	Active bool
}

func (TextSearch) isClause()     {}
func (CategoryEquals) isClause() {}
func (StatusEquals) isClause()   {}

// Sort is a resolved sort order over a whitelisted column.
type Sort struct {
	Column string
	Desc   bool
}

// DefaultSort is name ascending, the fallback for any unrecognized sort key.
var DefaultSort = Sort{Column: "name"}

// Criteria is the normalized filter/sort specification for one listing
// request. Built fresh per request; value semantics, never mutated.
type Criteria struct {
	Clauses []Clause
	Sort    Sort
	Page    int
}

var sortColumns = map[string]string{
	"name":      "name",
	"price":     "price_cents",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// BuildCriteria normalizes raw, possibly-absent query parameters into a
// Criteria. Malformed input degrades to safe defaults; this never fails.
func BuildCriteria(query, category, status, sortBy string, page int) Criteria {
	c := Criteria{Sort: DefaultSort, Page: page}
	if c.Page < 1 {
		c.Page = 1
	}

	if q := strings.TrimSpace(query); q != "" {
		c.Clauses = append(c.Clauses, TextSearch{Query: q})
	}

	if category != "" && category != "all" {
		c.Clauses = append(c.Clauses, CategoryEquals{Category: category})
	}

	switch status {
	case "active":
		c.Clauses = append(c.Clauses, StatusEquals{Active: true})
	case "inactive":
		c.Clauses = append(c.Clauses, StatusEquals{Active: false})
	}

	if field, direction, ok := strings.Cut(strings.TrimSpace(sortBy), "-"); ok {
		column, known := sortColumns[field]
		if known && (direction == "asc" || direction == "desc") {
			c.Sort = Sort{Column: column, Desc: direction == "desc"}
		}
	}

	return c
}
