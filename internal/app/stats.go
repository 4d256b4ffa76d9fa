package app

import (
	"math"
	"sort"
	"strconv"

	"goodfood/internal/domain"
)

const topCuisines = 3

// ComputeStats derives the aggregate view from a Place collection. Pure
// function of its input: same collection in, same Stats out, no hidden state.
func ComputeStats(ps []domain.Place) domain.Stats {
	st := domain.Stats{Total: len(ps), TopCuisines: []domain.CuisineCount{}}

	counts := map[string]int{}
	rated := 0
	ratingSum := 0
	for _, p := range ps {
		if !p.Visited {
			continue
		}
		st.Visited++
		if v, err := strconv.ParseFloat(p.UserPrice, 64); err == nil {
			st.TotalSpent += v
		}
		if p.UserRating > 0 {
			rated++
			ratingSum += p.UserRating
		}
		if p.Cuisine != "" {
			counts[p.Cuisine]++
		}
	}

	if st.Total > 0 {
		st.Percentage = int(math.Round(float64(st.Visited) / float64(st.Total) * 100))
	}
	if rated > 0 {
		st.AvgRating = math.Round(float64(ratingSum)/float64(rated)*10) / 10
	}

	for c, n := range counts {
		st.TopCuisines = append(st.TopCuisines, domain.CuisineCount{Cuisine: c, Count: n})
	}
	// count desc, then name asc so equal counts order deterministically
	sort.Slice(st.TopCuisines, func(i, j int) bool {
		if st.TopCuisines[i].Count != st.TopCuisines[j].Count {
			return st.TopCuisines[i].Count > st.TopCuisines[j].Count
		}
		return st.TopCuisines[i].Cuisine < st.TopCuisines[j].Cuisine
	})
	if len(st.TopCuisines) > topCuisines {
		st.TopCuisines = st.TopCuisines[:topCuisines]
	}
	return st
}
