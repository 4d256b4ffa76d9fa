// Package catalog holds the baseline list of seed places shipped with each
// release. New entries may be appended over time; reconciliation makes them
// appear for existing installations without disturbing accumulated state.
package catalog

import "goodfood/internal/domain"

// Places returns a fresh, default-initialized copy of the baseline catalog.
// Callers own the returned slice; nothing is shared between calls.
func Places() []domain.Place {
	out := make([]domain.Place, len(baseline))
	for i, b := range baseline {
		p := b
		p.UserPhotos = []string{}
		out[i] = p
	}
	return out
}

func seed(id int64, name, location, cuisine, tier string) domain.Place {
	return domain.Place{
		ID:        id,
		Name:      name,
		Location:  location,
		Region:    "NSW",
		Cuisine:   cuisine,
		PriceTier: tier,
	}
}

// Baseline ids are small fixed integers; user-added places use UnixNano ids,
// so the two ranges can never collide.
var baseline = []domain.Place{
	seed(1, "Bennelong", "Sydney Opera House", "Modern Australian", "$$$$"),
	seed(2, "Quay", "The Rocks", "Modern Australian", "$$$$"),
	seed(3, "Firedoor", "Surry Hills", "Steak/Grill", "$$$$"),
	seed(4, "Aria", "Circular Quay", "Fine Dining", "$$$$"),
	seed(5, "Mr. Wong", "Sydney CBD", "Cantonese", "$$$"),
	seed(6, "Totti's", "Bondi", "Italian", "$$$"),
	seed(7, "10 William St", "Paddington", "Italian/Wine Bar", "$$"),
	seed(8, "6 Head", "The Rocks", "Steakhouse", "$$$$"),
	seed(9, "AALIA", "Sydney CBD", "Middle Eastern", "$$$"),
	seed(10, "Abhi's", "North Strathfield", "Indian", "$$"),
	seed(11, "Alfie's", "Sydney CBD", "Steak", "$$$"),
	seed(12, "Alpha", "Sydney CBD", "Greek", "$$$"),
	seed(13, "Alphabet Street", "Cronulla", "Thai", "$$"),
	seed(14, "Ho Jiak", "Haymarket", "Malaysian", "$$"),
	seed(15, "Annata", "Crows Nest", "Contemporary", "$$$"),
	seed(16, "Bistro Moncur", "Woollahra", "French", "$$$"),
	seed(17, "Bopp and Tone", "Sydney CBD", "Australian", "$$$"),
	seed(18, "Cho Cho San", "Potts Point", "Japanese", "$$$"),
	seed(19, "Mamak", "Haymarket", "Malaysian", "$"),
	seed(20, "Ormeggio at The Spit", "Mosman", "Italian/Seafood", "$$$$"),
	seed(21, "Rockpool Bar & Grill", "Sydney CBD", "Steakhouse", "$$$$"),
	seed(22, "Spice Temple", "Sydney CBD", "Chinese", "$$$"),
	seed(23, "The Meat & Wine Co", "Barangaroo", "Steakhouse", "$$$"),
	seed(24, "Chin Chin", "Surry Hills", "South East Asian", "$$$"),
	seed(25, "Hubert", "Sydney CBD", "French", "$$$"),
	seed(26, "Ester", "Chippendale", "Contemporary", "$$$"),
	seed(27, "Poly", "Surry Hills", "Wine Bar", "$$"),
	seed(28, "Lankan Filling Station", "Darlinghurst", "Sri Lankan", "$$"),
	seed(29, "Saint Peter", "Paddington", "Seafood", "$$$$"),
	seed(30, "Cafe Paci", "Newtown", "European", "$$$"),
	seed(31, "Icebergs Dining Room", "Bondi Beach", "Italian", "$$$$"),
	seed(32, "Pilu at Freshwater", "Freshwater", "Italian", "$$$$"),
	seed(33, "Catalina", "Rose Bay", "Seafood", "$$$$"),
	seed(34, "Margaret", "Double Bay", "Modern Australian", "$$$$"),
	seed(35, "Mimi's", "Coogee", "Mediterranean", "$$$$"),
	seed(36, "Nomad", "Surry Hills", "Middle Eastern", "$$$"),
	seed(37, "Ragazzi", "Sydney CBD", "Italian", "$$"),
	seed(38, "Alberto's Lounge", "Sydney CBD", "Italian", "$$$"),
	seed(39, "Porkfat", "Haymarket", "Thai", "$$"),
	seed(40, "Kiln", "Sydney CBD", "Contemporary", "$$$"),
}
