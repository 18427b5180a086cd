package services

import (
	"context"

	"go.uber.org/zap"

	"pastoral-bknd/internal/models"
)

// Fixed zoom levels of the targeting chain.
const (
	zoomDetail  = 14 // a selected parish
	zoomLocal   = 12 // the area around the device location
	zoomDefault = 6
)

// defaultCenter covers the primary operating region when no better signal
// exists (Buenos Aires).
var defaultCenter = models.Coordinate{Lat: -34.6037, Lon: -58.3816}

// RenderSurface is the minimal command/event surface of the map widget the
// core depends on. The HTTP layer implements it as a mirror of the client's
// map; tests implement it directly.
type RenderSurface interface {
	// SetView re-centers the map. Called at most once per selector change.
	SetView(models.Target)
	// PanTo moves the center without changing zoom.
	PanTo(models.Coordinate)
	// Bounds returns the current bounding box once the surface has
	// reported one; ok is false before that.
	Bounds() (box models.BoundingBox, ok bool)
}

// DeviceLocator performs the one-shot best-effort device location read.
type DeviceLocator interface {
	Locate(ctx context.Context) (models.Coordinate, error)
}

// ViewportController derives the map target from the priority chain of
// location signals and decides when the render surface actually needs to be
// re-centered.
type ViewportController struct {
	surface RenderSurface
	log     *zap.Logger

	applied bool
	last    selectorTuple
}

// selectorTuple is the re-center suppression state: a new SetView is issued
// only when at least one of these changed since the last application.
type selectorTuple struct {
	selectionID string
	country     string
	province    string
}

func NewViewportController(surface RenderSurface, log *zap.Logger) *ViewportController {
	return &ViewportController{surface: surface, log: log}
}

// ComputeTarget resolves the target center/zoom, first matching signal wins:
// selection, country+province reference, country reference, device
// location, static default. Reference lookups that miss and invalid
// coordinates fall through as non-matches.
func (v *ViewportController) ComputeTarget(selection *models.Parish, f models.FilterState, device *models.Coordinate) models.Target {
	if selection != nil && selection.Location.Valid() {
		return models.Target{Center: selection.Location, Zoom: zoomDetail}
	}

	if f.HasCountry() && f.HasProvince() {
		if t, ok := ProvinceRef(f.Country, f.Province); ok && t.Center.Valid() {
			return t
		}
	}

	if f.HasCountry() {
		if t, ok := CountryRef(f.Country); ok && t.Center.Valid() {
			return t
		}
	}

	if device != nil && device.Valid() {
		return models.Target{Center: *device, Zoom: zoomLocal}
	}

	return models.Target{Center: defaultCenter, Zoom: zoomDefault}
}

// Apply computes the target and pushes it to the render surface, but only
// when the (selection, country, province) tuple changed since the last
// application. Re-renders with an unchanged tuple must not fight the user's
// manual pan/zoom.
func (v *ViewportController) Apply(selection *models.Parish, f models.FilterState, device *models.Coordinate) models.Target {
	target := v.ComputeTarget(selection, f, device)

	tuple := selectorTuple{country: f.Country, province: f.Province}
	if selection != nil {
		tuple.selectionID = selection.ID
	}

	if v.applied && tuple == v.last {
		return target
	}
	v.applied = true
	v.last = tuple

	v.surface.SetView(target)
	v.log.Debug("viewport re-centered",
		zap.Float64("lat", target.Center.Lat),
		zap.Float64("lon", target.Center.Lon),
		zap.Int("zoom", target.Zoom),
		zap.String("selection", tuple.selectionID),
		zap.String("country", tuple.country),
		zap.String("province", tuple.province))
	return target
}

// ReadDeviceLocation performs the single best-effort location read of a
// session. Denial or failure is logged and reported as absence; the
// targeting chain simply falls through.
func (v *ViewportController) ReadDeviceLocation(ctx context.Context, locator DeviceLocator) *models.Coordinate {
	if locator == nil {
		return nil
	}
	c, err := locator.Locate(ctx)
	if err != nil {
		v.log.Debug("device location unavailable", zap.Error(err))
		return nil
	}
	if !c.Valid() {
		v.log.Warn("device location out of range",
			zap.Float64("lat", c.Lat), zap.Float64("lon", c.Lon))
		return nil
	}
	return &c
}
