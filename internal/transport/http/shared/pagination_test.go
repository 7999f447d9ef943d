package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name       string
		url        string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/items", 100, 0},
		{"explicit", "/items?limit=25&offset=50", 25, 50},
		{"clamped", "/items?limit=9999", 500, 0},
		{"garbage ignored", "/items?limit=abc&offset=-3", 100, 0},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", tc.url, nil)
		got := ParsePagination(r, DefaultPageSize, MaxPageSize)
		if got.Limit != tc.wantLimit || got.Offset != tc.wantOffset {
			t.Fatalf("%s: got %+v, want %d/%d", tc.name, got, tc.wantLimit, tc.wantOffset)
		}
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	if got := Page(items, Pagination{Limit: 2, Offset: 1}); len(got) != 2 || got[0] != 2 {
		t.Fatalf("middle page: %v", got)
	}
	if got := Page(items, Pagination{Limit: 10, Offset: 3}); len(got) != 2 || got[1] != 5 {
		t.Fatalf("tail page: %v", got)
	}
	got := Page(items, Pagination{Limit: 10, Offset: 99})
	if got == nil || len(got) != 0 {
		t.Fatalf("past-the-end offset must yield an empty slice, got %v", got)
	}
}
