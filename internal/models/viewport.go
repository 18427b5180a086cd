package models

// Target is a desired map position: where the render surface should center
// and how far in it should zoom.
type Target struct {
	Center Coordinate `json:"center"`
	Zoom   int        `json:"zoom"`
}

// ViewportState is the session-owned state of the map viewport. The
// bounding box is only set after the render surface has reported real
// bounds back; the controller never derives one on its own.
type ViewportState struct {
	Center            Coordinate   `json:"center"`
	Zoom              int          `json:"zoom"`
	LastFetchedBounds *BoundingBox `json:"lastFetchedBounds,omitempty"`
}
