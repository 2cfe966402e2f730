package entity

// ListingSpecs holds the physical dimensions of a unit.
type ListingSpecs struct {
	Beds  int `json:"beds"`
	Baths int `json:"baths"`
	Area  int `json:"area"`
}

// Listing is an immutable snapshot of a rentable property. The catalog owns
// these records; the assistant core only reads them.
type Listing struct {
	Id          string       `json:"id"`
	City        string       `json:"city"`
	Title       string       `json:"title"`
	Location    string       `json:"location"`
	Subway      string       `json:"subway"`
	Price       int          `json:"price"`
	PaymentType string       `json:"payment_type"`
	MatchScore  int          `json:"match_score"`
	Tags        []string     `json:"tags"`
	Facilities  []string     `json:"facilities"`
	Specs       ListingSpecs `json:"specs"`
}

// HasTag reports whether the listing carries the given tag.
func (l *Listing) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasFacility reports whether the listing carries the given facility.
func (l *Listing) HasFacility(facility string) bool {
	for _, f := range l.Facilities {
		if f == facility {
			return true
		}
	}
	return false
}
