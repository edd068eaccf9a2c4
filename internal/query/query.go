// Package query turns raw list parameters into a store query plus
// pagination metadata. Inputs are coerced into valid ranges, never
// rejected.
package query

import (
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Sortable list fields mapped to store columns. Unknown fields fall
// back to created_at.
var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"age":       "age",
	"isActive":  "is_active",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type Params struct {
	Page   int
	Limit  int
	Offset int

	// Search is the trimmed substring to match against name or email,
	// case-insensitively. Empty means match all.
	Search string

	SortColumn string
	SortDesc   bool
}

func Build(page, limit, search, sortBy, sortOrder string) Params {
	pageNum := atoiOr(page, 1)
	if pageNum < 1 {
		pageNum = 1
	}

	limitNum := atoiOr(limit, DefaultLimit)
	if limitNum < 1 {
		limitNum = 1
	}
	if limitNum > MaxLimit {
		limitNum = MaxLimit
	}

	column, ok := sortColumns[strings.TrimSpace(sortBy)]
	if !ok {
		column = "created_at"
	}

	return Params{
		Page:       pageNum,
		Limit:      limitNum,
		Offset:     (pageNum - 1) * limitNum,
		Search:     strings.TrimSpace(search),
		SortColumn: column,
		SortDesc:   strings.TrimSpace(sortOrder) != "asc",
	}
}

func atoiOr(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
