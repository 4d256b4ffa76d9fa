package domain

// MaxPhotos bounds the per-place photo list; extra entries are dropped oldest-last.
const MaxPhotos = 6

// MaxRating is the top of the star scale; 0 means unrated.
const MaxRating = 5

// DateLayout is the wire format for VisitedDate.
const DateLayout = "2006-01-02"

type Place struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Region        string   `json:"region,omitempty"`
	Cuisine       string   `json:"cuisine"`
	PriceTier     string   `json:"priceTier"`
	ImageCategory string   `json:"imageCategory,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	SourceURL     string   `json:"sourceUrl,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`

	// User-contributed state, mutable only through a check-in patch.
	Visited     bool     `json:"visited"`
	UserRating  int      `json:"userRating"`
	UserPrice   string   `json:"userPrice"`
	UserNotes   string   `json:"userNotes"`
	UserDishes  string   `json:"userDishes"`
	UserPhotos  []string `json:"userPhotos"`
	VisitedDate *string  `json:"visitedDate"`

	IsCustom bool `json:"isCustom"`
}

// CheckIn carries the user fields of a check-in or a later edit.
type CheckIn struct {
	Rating int      `json:"rating"`
	Price  string   `json:"price"`
	Notes  string   `json:"notes"`
	Dishes string   `json:"dishes"`
	Photos []string `json:"photos"`
}

// DetailsEdit patches the descriptive fields of a place. Nil means unchanged.
// Only the administrative edit path may issue one.
type DetailsEdit struct {
	Name          *string  `json:"name,omitempty"`
	Location      *string  `json:"location,omitempty"`
	Region        *string  `json:"region,omitempty"`
	Cuisine       *string  `json:"cuisine,omitempty"`
	PriceTier     *string  `json:"priceTier,omitempty"`
	ImageCategory *string  `json:"imageCategory,omitempty"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
	SourceURL     *string  `json:"sourceUrl,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
}

// PlacePatch is the single update shape both storage backends apply to an
// existing record. Exactly one of CheckIn or Details is normally set.
type PlacePatch struct {
	CheckIn *CheckIn
	Details *DetailsEdit

	// Date is the check-in date. It only lands in VisitedDate when the
	// record has never been visited; a later edit never moves the date.
	Date string
}

// Apply mutates p in place. The VisitedDate-set-once rule lives here so that
// every backend enforces it identically, no matter how stale the caller's
// view of the record is.
func (pp PlacePatch) Apply(p *Place) {
	if c := pp.CheckIn; c != nil {
		p.Visited = true
		p.UserRating = c.Rating
		p.UserPrice = c.Price
		p.UserNotes = c.Notes
		p.UserDishes = c.Dishes
		p.UserPhotos = boundPhotos(c.Photos)
		if p.VisitedDate == nil && pp.Date != "" {
			d := pp.Date
			p.VisitedDate = &d
		}
	}
	if e := pp.Details; e != nil {
		setStr(&p.Name, e.Name)
		setStr(&p.Location, e.Location)
		setStr(&p.Region, e.Region)
		setStr(&p.Cuisine, e.Cuisine)
		setStr(&p.PriceTier, e.PriceTier)
		setStr(&p.ImageCategory, e.ImageCategory)
		setStr(&p.ImageURL, e.ImageURL)
		setStr(&p.SourceURL, e.SourceURL)
		if e.Lat != nil {
			v := *e.Lat
			p.Lat = &v
		}
		if e.Lng != nil {
			v := *e.Lng
			p.Lng = &v
		}
	}
}

func setStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func boundPhotos(in []string) []string {
	out := make([]string, 0, MaxPhotos)
	for _, ph := range in {
		if len(out) == MaxPhotos {
			break
		}
		out = append(out, ph)
	}
	return out
}

// Session is the explicit session-state structure; admin privilege is a value
// here, never a free-floating flag.
type Session struct {
	Admin bool
}
