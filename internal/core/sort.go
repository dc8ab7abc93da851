package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/traypos/internal/geometry"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByID       SortField = "id"
	SortByName     SortField = "name"
	SortByPosition SortField = "position" // left to right, then top to bottom
	SortByArea     SortField = "area"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField // Field to sort by
	Order SortOrder // Sort order (asc/desc)
}

// DefaultSortOptions returns default sort options (provider order by ID).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByID,
		Order: SortAsc,
	}
}

// ParseSortField validates a sort field name.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(s)); f {
	case SortByID, SortByName, SortByPosition, SortByArea:
		return f, nil
	default:
		return "", fmt.Errorf("invalid sort field %q: must be id, name, position or area", s)
	}
}

// ParseSortOrder validates a sort order.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(s)); o {
	case SortAsc, SortDesc:
		return o, nil
	default:
		return "", fmt.Errorf("invalid sort order %q: must be asc or desc", s)
	}
}

// Sort sorts displays in place based on the provided options.
func Sort(displays []geometry.Display, opts SortOptions) {
	if len(displays) == 0 {
		return
	}

	sort.SliceStable(displays, func(i, j int) bool {
		a, b := displays[i], displays[j]
		if opts.Order == SortDesc {
			a, b = b, a
		}

		switch opts.Field {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByPosition:
			if a.Bounds.X != b.Bounds.X {
				return a.Bounds.X < b.Bounds.X
			}
			return a.Bounds.Y < b.Bounds.Y
		case SortByArea:
			return a.Bounds.Width*a.Bounds.Height < b.Bounds.Width*b.Bounds.Height
		default:
			return a.ID < b.ID
		}
	})
}
