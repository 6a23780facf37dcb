package pagination

import "testing"

func pages(entries []Entry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.Ellipsis {
			out = append(out, e.Page)
		}
	}
	return out
}

func render(entries []Entry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.Ellipsis {
			out = append(out, -1)
		} else {
			out = append(out, e.Page)
		}
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWindowShapes(t *testing.T) {
	// 10 pages of 10 items each; -1 marks an ellipsis.
	tests := []struct {
		name        string
		currentPage int
		totalItems  int
		perPage     int
		want        []int
	}{
		{"near start first page", 1, 100, 10, []int{1, 2, 3, 4, -1, 10}},
		{"near start third page", 3, 100, 10, []int{1, 2, 3, 4, -1, 10}},
		{"middle", 5, 100, 10, []int{1, -1, 4, 5, 6, -1, 10}},
		{"near end", 9, 100, 10, []int{1, -1, 7, 8, 9, 10}},
		{"last page", 10, 100, 10, []int{1, -1, 7, 8, 9, 10}},
		{"four pages verbatim", 2, 40, 10, []int{1, 2, 3, 4}},
		{"five pages verbatim", 5, 50, 10, []int{1, 2, 3, 4, 5}},
		// currentPage 4 of 6 already falls under the near-end rule
		// (4 >= 6-2), so the trailing run stays contiguous.
		{"six pages near end", 4, 60, 10, []int{1, -1, 3, 4, 5, 6}},
		{"single page", 1, 7, 10, []int{1}},
		{"uneven last page", 10, 95, 10, []int{1, -1, 7, 8, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(Window(tt.currentPage, tt.totalItems, tt.perPage))
			if !equalInts(got, tt.want) {
				t.Fatalf("Window(%d, %d, %d) = %v, want %v", tt.currentPage, tt.totalItems, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestWindowEmptyList(t *testing.T) {
	if got := Window(1, 0, 10); got != nil {
		t.Fatalf("expected no entries for zero items, got %v", got)
	}
}

func TestWindowTotality(t *testing.T) {
	// Non-ellipsis entries must be strictly increasing within bounds, and
	// 1 and totalPages must both show up whenever the window collapses.
	for totalItems := 0; totalItems <= 300; totalItems += 7 {
		for _, perPage := range []int{1, 3, 10} {
			totalPages := TotalPages(totalItems, perPage)
			for current := 1; current <= totalPages; current++ {
				got := pages(Window(current, totalItems, perPage))
				for i, p := range got {
					if p < 1 || p > totalPages {
						t.Fatalf("page %d out of [1,%d] for current=%d items=%d per=%d", p, totalPages, current, totalItems, perPage)
					}
					if i > 0 && got[i-1] >= p {
						t.Fatalf("non-increasing pages %v for current=%d items=%d per=%d", got, current, totalItems, perPage)
					}
				}
				if totalPages > 5 {
					if got[0] != 1 || got[len(got)-1] != totalPages {
						t.Fatalf("missing endpoints in %v for current=%d totalPages=%d", got, current, totalPages)
					}
				}
			}
		}
	}
}

func TestItemRangeClampsLastPage(t *testing.T) {
	first, last := ItemRange(10, 95, 10)
	if first != 91 || last != 95 {
		t.Fatalf("expected 91-95, got %d-%d", first, last)
	}

	first, last = ItemRange(1, 0, 10)
	if first != 0 || last != 0 {
		t.Fatalf("expected 0-0 for empty list, got %d-%d", first, last)
	}
}
