package models

// Parish represents a parish/congregation with its location and services.
// The ID is the canonical entity key everywhere inside the core; upstream
// numeric ids are converted to strings at the data-source edge. A parish is
// immutable from the core's perspective: refreshes replace the whole record.
type Parish struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Pastor    string          `json:"pastor,omitempty"`
	Address   string          `json:"address,omitempty"`
	Country   string          `json:"country"`
	Province  string          `json:"province"`
	City      string          `json:"city"`
	Location  Coordinate      `json:"location"`
	Contact   Contact         `json:"contact"`
	Services  []ParishService `json:"services"`
	Links     *Links          `json:"links,omitempty"`
	Languages []string        `json:"languages,omitempty"`
}

// Contact holds the reachable contact fields of a parish.
type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Links holds optional web presence links.
type Links struct {
	Website   string `json:"website,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// ParishService is one service offered by a parish (mass, baptism, ...).
// An empty Schedule is valid and means "no schedule published".
type ParishService struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// ScheduleEntry is the published times of a service on one day.
type ScheduleEntry struct {
	Day   string      `json:"day"`
	Times []TimeRange `json:"times,omitempty"`
}

// TimeRange is a start/end interval in "HH:MM" form. End is empty for
// point-in-time entries such as a single mass.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// LocationLabel renders the administrative location of the parish the way
// the search endpoint labels results ("City, Province, Country").
func (p Parish) LocationLabel() string {
	label := ""
	for _, part := range []string{p.City, p.Province, p.Country} {
		if part == "" {
			continue
		}
		if label != "" {
			label += ", "
		}
		label += part
	}
	return label
}

// ToMarker projects the parish down to its map representation.
func (p Parish) ToMarker(origin MarkerOrigin) Marker {
	return Marker{
		ID:       p.ID,
		Position: p.Location,
		Title:    p.Name,
		Location: p.LocationLabel(),
		Origin:   origin,
	}
}

// SearchResult is the summary row returned by a free-text parish search.
type SearchResult struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Location string     `json:"location"`
	Position Coordinate `json:"coordinates"`
}
