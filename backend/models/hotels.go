// ABOUTME: Data models for the hotel search proxy
// ABOUTME: Upstream search payloads and the trimmed shapes returned to the UI

package models

// RatePerNight carries the lowest nightly rate reported by a source
type RatePerNight struct {
	ExtractedLowest *float64 `json:"extracted_lowest"`
}

// UpstreamImage is an image entry from the search API
type UpstreamImage struct {
	Thumbnail     string `json:"thumbnail"`
	OriginalImage string `json:"original_image"`
}

// UpstreamRoom is a room-level price from a booking source
type UpstreamRoom struct {
	Name         string        `json:"name"`
	RatePerNight *RatePerNight `json:"rate_per_night"`
}

// UpstreamPrice is a price quote from one booking source
type UpstreamPrice struct {
	Source       string         `json:"source"`
	Logo         string         `json:"logo"`
	Official     bool           `json:"official"`
	RatePerNight *RatePerNight  `json:"rate_per_night"`
	Rooms        []UpstreamRoom `json:"rooms"`
}

// UpstreamProperty is one property in a search listing
type UpstreamProperty struct {
	Type                string          `json:"type"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	OverallRating       *float64        `json:"overall_rating"`
	Reviews             int             `json:"reviews"`
	HotelClass          *string         `json:"hotel_class"`
	ExtractedHotelClass *float64        `json:"extracted_hotel_class"`
	FreeCancellation    bool            `json:"free_cancellation"`
	Amenities           []string        `json:"amenities"`
	RatePerNight        *RatePerNight   `json:"rate_per_night"`
	Prices              []UpstreamPrice `json:"prices"`
	Images              []UpstreamImage `json:"images"`
}

// UpstreamSearchResponse is the raw search API payload. A payload without a
// properties array but with prices describes a single property.
type UpstreamSearchResponse struct {
	UpstreamProperty
	Address        string             `json:"address"`
	Phone          string             `json:"phone"`
	CheckInTime    *string            `json:"check_in_time"`
	CheckOutTime   *string            `json:"check_out_time"`
	FeaturedPrices []UpstreamPrice    `json:"featured_prices"`
	Properties     []UpstreamProperty `json:"properties"`
}

// Image is a trimmed image reference
type Image struct {
	Thumbnail string `json:"thumbnail"`
}

// RoomPrice is a trimmed room-level price
type RoomPrice struct {
	Name         string        `json:"name"`
	RatePerNight *RatePerNight `json:"rate_per_night"`
}

// SourcePrice is a trimmed booking-source price with room breakdown
type SourcePrice struct {
	Source       string        `json:"source"`
	Logo         string        `json:"logo"`
	Official     bool          `json:"official"`
	RatePerNight *RatePerNight `json:"rate_per_night"`
	Rooms        []RoomPrice   `json:"rooms"`
}

// ListingPrice is a trimmed booking-source price in a listing
type ListingPrice struct {
	Source       string        `json:"source"`
	Logo         string        `json:"logo"`
	RatePerNight *RatePerNight `json:"rate_per_night"`
}

// PropertyDetail is the normalized single-property payload
type PropertyDetail struct {
	Type                string        `json:"type"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	OverallRating       *float64      `json:"overall_rating"`
	Reviews             int           `json:"reviews"`
	HotelClass          *string       `json:"hotel_class"`
	ExtractedHotelClass *float64      `json:"extracted_hotel_class"`
	Address             string        `json:"address"`
	Phone               string        `json:"phone"`
	CheckInTime         *string       `json:"check_in_time"`
	CheckOutTime        *string       `json:"check_out_time"`
	RatePerNight        *RatePerNight `json:"rate_per_night"`
	Amenities           []string      `json:"amenities"`
	Images              []Image       `json:"images"`
	AllPrices           []SourcePrice `json:"allPrices"`
}

// PropertySummary is the normalized listing entry
type PropertySummary struct {
	Type                string         `json:"type"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	OverallRating       *float64       `json:"overall_rating"`
	Reviews             int            `json:"reviews"`
	HotelClass          *string        `json:"hotel_class"`
	ExtractedHotelClass *float64       `json:"extracted_hotel_class"`
	FreeCancellation    bool           `json:"free_cancellation"`
	Amenities           []string       `json:"amenities"`
	RatePerNight        *RatePerNight  `json:"rate_per_night"`
	Prices              []ListingPrice `json:"prices"`
	Images              []Image        `json:"images"`
}

// HotelSearchResult holds exactly one of Detail or Properties
type HotelSearchResult struct {
	Detail     *PropertyDetail
	Properties []PropertySummary
	// Cached is set when the result was served without an upstream call
	Cached bool
}

// PropertyDetailResponse is returned when the query matched one property
type PropertyDetailResponse struct {
	PropertyDetail *PropertyDetail `json:"propertyDetail"`
	Remaining      int             `json:"remaining"`
}

// PropertyListResponse is returned for a multi-property listing
type PropertyListResponse struct {
	Properties []PropertySummary `json:"properties"`
	Remaining  int               `json:"remaining"`
}
