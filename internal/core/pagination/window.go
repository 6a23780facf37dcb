// Package pagination computes the bounded-width page-number window the
// presentation layer renders under document and step lists.
package pagination

// Entry is one rendered pagination slot: either a concrete page number or
// an ellipsis marker.
type Entry struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func page(n int) Entry { return Entry{Page: n} }
func ellipsis() Entry  { return Entry{Ellipsis: true} }

// TotalPages returns ceil(totalItems/itemsPerPage). itemsPerPage below 1 is
// treated as 1.
func TotalPages(totalItems, itemsPerPage int) int {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	if totalItems <= 0 {
		return 0
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// Window returns the page entries to display. With five or fewer pages the
// full run is returned verbatim; beyond that the window keeps the first and
// last page visible and collapses the gap next to the current position.
// Callers suppress pagination entirely when the result has at most one
// entry.
func Window(currentPage, totalItems, itemsPerPage int) []Entry {
	totalPages := TotalPages(totalItems, itemsPerPage)
	if totalPages <= 1 {
		if totalPages == 1 {
			return []Entry{page(1)}
		}
		return nil
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	if totalPages <= 5 {
		out := make([]Entry, 0, totalPages)
		for n := 1; n <= totalPages; n++ {
			out = append(out, page(n))
		}
		return out
	}

	switch {
	case currentPage <= 3:
		return []Entry{page(1), page(2), page(3), page(4), ellipsis(), page(totalPages)}
	case currentPage >= totalPages-2:
		return []Entry{
			page(1), ellipsis(),
			page(totalPages - 3), page(totalPages - 2), page(totalPages - 1), page(totalPages),
		}
	default:
		return []Entry{
			page(1), ellipsis(),
			page(currentPage - 1), page(currentPage), page(currentPage + 1),
			ellipsis(), page(totalPages),
		}
	}
}

// ItemRange returns the 1-based inclusive item range shown on the given
// page, for the "showing X-Y of Z" caption. The last page clamps to
// totalItems. A zero-item list yields (0, 0).
func ItemRange(currentPage, totalItems, itemsPerPage int) (first, last int) {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	totalPages := TotalPages(totalItems, itemsPerPage)
	if totalPages == 0 {
		return 0, 0
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}
	first = (currentPage-1)*itemsPerPage + 1
	last = currentPage * itemsPerPage
	if last > totalItems {
		last = totalItems
	}
	return first, last
}
