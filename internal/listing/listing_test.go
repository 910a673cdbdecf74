package listing

import (
	"reflect"
	"strings"
	"testing"
)

func TestFilterDoesNotMutateSource(t *testing.T) {
	src := []string{"Shirt", "Pant", "Jacket", "Sportswear"}
	snapshot := make([]string, len(src))
	copy(snapshot, src)

	got := Filter(src, func(s string) bool { return strings.Contains(strings.ToLower(s), "s") })
	if !reflect.DeepEqual(src, snapshot) {
		t.Fatalf("source list changed: %v", src)
	}
	if !reflect.DeepEqual(got, []string{"Shirt", "Sportswear"}) {
		t.Fatalf("unexpected filter result: %v", got)
	}
}

func TestFilterNoMatch(t *testing.T) {
	got := Filter([]int{1, 2, 3}, func(int) bool { return false })
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct{ n, size, want int }{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := PageCount(tc.n, tc.size); got != tc.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tc.n, tc.size, got, tc.want)
		}
	}
}

func TestPage(t *testing.T) {
	src := []int{1, 2, 3, 4, 5, 6, 7}

	if got := Page(src, 1, 5); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("first page wrong: %v", got)
	}
	if got := Page(src, 2, 5); !reflect.DeepEqual(got, []int{6, 7}) {
		t.Fatalf("last partial page wrong: %v", got)
	}
	if got := Page(src, 3, 5); len(got) != 0 {
		t.Fatalf("page past the end should be empty: %v", got)
	}
	if got := Page(src, 0, 5); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("page below 1 should clamp to first page: %v", got)
	}
	if got := Page(src, 1, 0); !reflect.DeepEqual(got, src) {
		t.Fatalf("size 0 should return everything: %v", got)
	}
}
