package models

// FilterAll is the sentinel meaning "no restriction" for select-style
// filter fields.
const FilterAll = "all"

// FilterState is the complete filter selection of one interactive session.
type FilterState struct {
	Search      string   `json:"search"`
	SelectedIDs []string `json:"selectedIds"`
	Services    []string `json:"services"`
	Country     string   `json:"country"`
	Province    string   `json:"province"`
	City        string   `json:"city"`
	DayTime     string   `json:"dayTime"`
	NearMe      bool     `json:"nearMe"`
}

// DefaultFilterState returns the filter selection every session starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		Country:  FilterAll,
		Province: FilterAll,
		DayTime:  FilterAll,
	}
}

// HasCountry reports whether a specific country is selected.
func (f FilterState) HasCountry() bool {
	return f.Country != "" && f.Country != FilterAll
}

// HasProvince reports whether a specific province is selected.
func (f FilterState) HasProvince() bool {
	return f.Province != "" && f.Province != FilterAll
}

// Normalize repairs inconsistent selections. A province is only meaningful
// together with its country, so clearing the country clears the province.
func (f FilterState) Normalize() FilterState {
	if f.Country == "" {
		f.Country = FilterAll
	}
	if f.Province == "" {
		f.Province = FilterAll
	}
	if f.DayTime == "" {
		f.DayTime = FilterAll
	}
	if !f.HasCountry() {
		f.Province = FilterAll
	}
	return f
}
