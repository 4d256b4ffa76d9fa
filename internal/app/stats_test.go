package app

import (
	"reflect"
	"testing"

	"goodfood/internal/domain"
)

func visitedPlace(id int64, cuisine, price string, rating int) domain.Place {
	p := seedPlace(id, "P", cuisine)
	p.Visited = true
	p.UserPrice = price
	p.UserRating = rating
	return p
}

func TestComputeStats(t *testing.T) {
	ps := []domain.Place{
		visitedPlace(1, "Italian", "80", 4),
		visitedPlace(2, "Italian", "45.50", 5),
		visitedPlace(3, "Thai", "not-a-number", 3),
		visitedPlace(4, "French", "", 0), // visited, unrated, no spend
		seedPlace(5, "Quay", "Modern Australian"),
		seedPlace(6, "Mamak", "Malaysian"),
	}
	st := ComputeStats(ps)

	if st.Total != 6 || st.Visited != 4 {
		t.Fatalf("counts: %+v", st)
	}
	if st.Percentage != 67 {
		t.Fatalf("percentage = %d, want 67", st.Percentage)
	}
	if st.TotalSpent != 125.5 {
		t.Fatalf("totalSpent = %v, want 125.5", st.TotalSpent)
	}
	if st.AvgRating != 4.0 {
		t.Fatalf("avgRating = %v, want 4.0", st.AvgRating)
	}
	want := []domain.CuisineCount{
		{Cuisine: "Italian", Count: 2},
		{Cuisine: "French", Count: 1},
		{Cuisine: "Thai", Count: 1},
	}
	if !reflect.DeepEqual(st.TopCuisines, want) {
		t.Fatalf("topCuisines = %+v, want %+v", st.TopCuisines, want)
	}
}

func TestComputeStats_Pure(t *testing.T) {
	ps := []domain.Place{
		visitedPlace(1, "Italian", "80", 4),
		seedPlace(2, "Quay", "Modern Australian"),
	}
	first := ComputeStats(ps)
	for i := 0; i < 10; i++ {
		if got := ComputeStats(ps); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestComputeStats_Empty(t *testing.T) {
	st := ComputeStats(nil)
	if st.Total != 0 || st.Visited != 0 || st.Percentage != 0 || len(st.TopCuisines) != 0 {
		t.Fatalf("unexpected stats for empty collection: %+v", st)
	}
}
