package services

import (
	"sort"

	"pastoral-bknd/internal/geoindex"
	"pastoral-bknd/internal/models"
)

// countryRef / provinceRef are the fixed reference points used to aim the
// viewport at an administrative region. The set covers the primary
// operating region (Río de la Plata basin plus neighbors).
var countryRefs = map[string]models.Target{
	"Argentina": {Center: models.Coordinate{Lat: -38.4161, Lon: -63.6167}, Zoom: 5},
	"Chile":     {Center: models.Coordinate{Lat: -35.6751, Lon: -71.5430}, Zoom: 5},
	"Uruguay":   {Center: models.Coordinate{Lat: -32.5228, Lon: -55.7658}, Zoom: 7},
	"Paraguay":  {Center: models.Coordinate{Lat: -23.4425, Lon: -58.4438}, Zoom: 6},
	"Brasil":    {Center: models.Coordinate{Lat: -14.2350, Lon: -51.9253}, Zoom: 4},
}

var provinceRefs = map[string]map[string]models.Target{
	"Argentina": {
		"Buenos Aires": {Center: models.Coordinate{Lat: -36.6769, Lon: -60.5588}, Zoom: 7},
		"Córdoba":      {Center: models.Coordinate{Lat: -31.4201, Lon: -64.1888}, Zoom: 7},
		"Santa Fe":     {Center: models.Coordinate{Lat: -31.6107, Lon: -60.6973}, Zoom: 7},
		"Mendoza":      {Center: models.Coordinate{Lat: -34.6298, Lon: -68.5831}, Zoom: 7},
	},
	"Chile": {
		"Región Metropolitana": {Center: models.Coordinate{Lat: -33.4378, Lon: -70.6505}, Zoom: 9},
		"Valparaíso":           {Center: models.Coordinate{Lat: -33.0472, Lon: -71.6127}, Zoom: 9},
	},
	"Uruguay": {
		"Montevideo": {Center: models.Coordinate{Lat: -34.9011, Lon: -56.1645}, Zoom: 10},
		"Canelones":  {Center: models.Coordinate{Lat: -34.5228, Lon: -56.2778}, Zoom: 9},
	},
	"Paraguay": {
		"Asunción": {Center: models.Coordinate{Lat: -25.2637, Lon: -57.5759}, Zoom: 10},
		"Central":  {Center: models.Coordinate{Lat: -25.4417, Lon: -57.4447}, Zoom: 9},
	},
}

// CountryRef returns the reference target for a country. The second return
// is false for unknown countries so the viewport chain can fall through.
func CountryRef(country string) (models.Target, bool) {
	t, ok := countryRefs[country]
	return t, ok
}

// ProvinceRef returns the reference target for a province of a country.
func ProvinceRef(country, province string) (models.Target, bool) {
	provinces, ok := provinceRefs[country]
	if !ok {
		return models.Target{}, false
	}
	t, ok := provinces[province]
	return t, ok
}

// Countries lists the countries with reference data, for filter options.
func Countries() []string {
	return []string{"Argentina", "Brasil", "Chile", "Paraguay", "Uruguay"}
}

// Provinces lists the provinces known for a country, for filter options.
func Provinces(country string) []string {
	provinces, ok := provinceRefs[country]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(provinces))
	for name := range provinces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReverseGeocode maps a coordinate to the closest known province reference
// point. It is an approximation: good enough to preselect filters from a
// device location, not a real geocoder.
func ReverseGeocode(c models.Coordinate) (country, province string, ok bool) {
	if !c.Valid() {
		return "", "", false
	}

	best := -1.0
	for countryName, provinces := range provinceRefs {
		for provinceName, ref := range provinces {
			d := geoindex.HaversineKm(c, ref.Center)
			if best < 0 || d < best {
				best = d
				country = countryName
				province = provinceName
			}
		}
	}
	return country, province, best >= 0
}
