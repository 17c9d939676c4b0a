package pagination

// Metadata contains pagination metadata included in API responses.
type Metadata struct {
	Total     int  `json:"total"`      // Total number of items in the filtered set
	Shown     int  `json:"shown"`      // Number of items returned in this response
	HasMore   bool `json:"has_more"`   // Whether more items remain beyond the prefix
	NextShown int  `json:"next_shown"` // Shown value to request for the next "load more"
}
