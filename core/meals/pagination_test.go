package meals

import (
	"fmt"
	"testing"

	"recipe-finder-api/core/domain"
)

func makeItems(n int) []domain.MealSummary {
	items := make([]domain.MealSummary, n)
	for i := 0; i < n; i++ {
		items[i] = domain.MealSummary{ID: fmt.Sprintf("%d", i+1)}
	}
	return items
}

func TestPaginate_AllItemsWhenPageSizeLarge(t *testing.T) {
	view := Paginate(makeItems(3), 1, 12)

	if len(view.Items) != 3 {
		t.Errorf("Paginate returned %d items, want 3", len(view.Items))
	}
	if view.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", view.TotalPages)
	}
}

func TestPaginate_SecondPage(t *testing.T) {
	view := Paginate(makeItems(30), 2, 12)

	if len(view.Items) != 12 {
		t.Fatalf("Paginate returned %d items, want 12", len(view.Items))
	}
	if view.Items[0].ID != "13" || view.Items[11].ID != "24" {
		t.Errorf("page 2 = %s..%s, want 13..24", view.Items[0].ID, view.Items[11].ID)
	}
	if view.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", view.TotalPages)
	}
}

func TestPaginate_LastPartialPage(t *testing.T) {
	view := Paginate(makeItems(30), 3, 12)

	if len(view.Items) != 6 {
		t.Errorf("Paginate returned %d items, want 6", len(view.Items))
	}
}

func TestPaginate_Empty(t *testing.T) {
	for _, page := range []int{-1, 0, 1, 5} {
		view := Paginate(nil, page, 12)

		if view.TotalPages != 1 {
			t.Errorf("page %d: TotalPages = %d, want 1", page, view.TotalPages)
		}
		if view.Items == nil || len(view.Items) != 0 {
			t.Errorf("page %d: Items = %v, want empty slice", page, view.Items)
		}
		if view.Page != 1 {
			t.Errorf("page %d: Page = %d, want 1", page, view.Page)
		}
	}
}

func TestPaginate_Clamps(t *testing.T) {
	items := makeItems(25)

	low := Paginate(items, 0, 12)
	if low.Page != 1 || low.Items[0].ID != "1" {
		t.Errorf("page 0 should behave as page 1, got page %d", low.Page)
	}

	high := Paginate(items, 1000, 12)
	if high.Page != 3 || len(high.Items) != 1 || high.Items[0].ID != "25" {
		t.Errorf("huge page should behave as the last page, got page %d with %d items", high.Page, len(high.Items))
	}
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	view := Paginate(makeItems(20), 1, 0)

	if len(view.Items) != DefaultPageSize {
		t.Errorf("Paginate returned %d items, want %d", len(view.Items), DefaultPageSize)
	}
}

func TestPaginate_Properties(t *testing.T) {
	for n := 0; n <= 40; n++ {
		items := makeItems(n)
		for size := 1; size <= 13; size++ {
			wantPages := (n + size - 1) / size
			if wantPages < 1 {
				wantPages = 1
			}
			for page := -1; page <= wantPages+2; page++ {
				view := Paginate(items, page, size)

				if view.TotalPages != wantPages {
					t.Fatalf("n=%d size=%d: TotalPages = %d, want %d", n, size, view.TotalPages, wantPages)
				}
				clamped := page
				if clamped < 1 {
					clamped = 1
				}
				if clamped > wantPages {
					clamped = wantPages
				}
				wantLen := n - (clamped-1)*size
				if wantLen > size {
					wantLen = size
				}
				if wantLen < 0 {
					wantLen = 0
				}
				if len(view.Items) != wantLen {
					t.Fatalf("n=%d size=%d page=%d: len = %d, want %d", n, size, page, len(view.Items), wantLen)
				}
			}
		}
	}
}
