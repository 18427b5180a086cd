package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"pastoral-bknd/internal/models"
)

// MarkerSource answers bounded marker queries. Implemented by the in-memory
// geo index and by the remote parish API client.
type MarkerSource interface {
	MarkersInBounds(ctx context.Context, box models.BoundingBox, filters models.MarkerFilters) ([]models.Marker, error)
}

// BoundsCoordinator turns the stream of bounds-change notifications coming
// from the render surface into a deduplicated, debounced stream of marker
// fetches.
//
// Dedup works on a quantized key: the box rounded to a fixed precision plus
// the active attribute filters. Debounce resets a timer on every event so a
// continuous drag produces a single fetch once motion stops. Each dispatch
// carries a monotonically increasing sequence number; a completion whose
// number is no longer the latest is discarded, so results always apply in
// dispatch order (last dispatch wins).
type BoundsCoordinator struct {
	source    MarkerSource
	surface   RenderSurface
	log       *zap.Logger
	precision int
	window    time.Duration
	timeout   time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	lastKey string // key of the last dispatched fetch; "" forces a fetch
	seq     uint64
	filters models.MarkerFilters
	markers []models.Marker
	fetched *models.BoundingBox
}

func NewBoundsCoordinator(source MarkerSource, surface RenderSurface, precision int, window, timeout time.Duration, log *zap.Logger) *BoundsCoordinator {
	if precision <= 0 {
		precision = 4
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BoundsCoordinator{
		source:    source,
		surface:   surface,
		log:       log,
		precision: precision,
		window:    window,
		timeout:   timeout,
	}
}

// BoundsChanged handles one bounds-change notification from the render
// surface. Events whose quantized key equals the last dispatched key are
// dropped outright; anything else (re)arms the debounce timer.
func (c *BoundsCoordinator) BoundsChanged() {
	box, ok := c.surface.Bounds()
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.keyLocked(box) == c.lastKey {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, c.fetchCurrent)
}

// Ready performs the initial fetch once the render surface reports real
// bounds, independent of any user interaction.
func (c *BoundsCoordinator) Ready() {
	c.fetchCurrent()
}

// SetFilters swaps the attribute filters sent with bounds queries. Changed
// filters invalidate the last dispatched key, so the next event (or an
// immediate Ready/Flush) re-fetches even for unchanged bounds.
func (c *BoundsCoordinator) SetFilters(filters models.MarkerFilters) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if filters.Key() == c.filters.Key() {
		return
	}
	c.filters = filters
	c.lastKey = ""
}

// Markers returns the current marker snapshot.
func (c *BoundsCoordinator) Markers() []models.Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Marker, len(c.markers))
	copy(out, c.markers)
	return out
}

// LastFetchedBounds returns the box of the last applied fetch, if any.
func (c *BoundsCoordinator) LastFetchedBounds() *models.BoundingBox {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetched == nil {
		return nil
	}
	box := *c.fetched
	return &box
}

// Flush runs a pending debounce immediately instead of waiting for the
// window to elapse.
func (c *BoundsCoordinator) Flush() {
	c.mu.Lock()
	pending := c.timer != nil && c.timer.Stop()
	c.timer = nil
	c.mu.Unlock()

	if pending {
		c.fetchCurrent()
	}
}

// Stop cancels any pending debounce.
func (c *BoundsCoordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// fetchCurrent re-reads the bounds at fetch time (they may have moved again
// during the debounce wait), re-quantizes, and dispatches only if the key
// differs from the last dispatched one.
func (c *BoundsCoordinator) fetchCurrent() {
	box, ok := c.surface.Bounds()
	if !ok {
		return
	}

	c.mu.Lock()
	key := c.keyLocked(box)
	if key == c.lastKey {
		c.mu.Unlock()
		return
	}
	c.lastKey = key
	c.seq++
	seq := c.seq
	filters := c.filters
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	markers, err := c.source.MarkersInBounds(ctx, box, filters)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		// A later dispatch superseded this one while it was in flight.
		c.log.Debug("discarding stale marker response",
			zap.Uint64("seq", seq), zap.Uint64("latest", c.seq))
		return
	}
	if err != nil {
		// Keep the previous marker set; no partial clear, no auto retry.
		c.log.Warn("marker fetch failed", zap.String("bounds", key), zap.Error(err))
		return
	}

	c.markers = markers
	c.fetched = &box
	c.log.Debug("markers updated",
		zap.String("bounds", key), zap.Int("count", len(markers)))
}

func (c *BoundsCoordinator) keyLocked(box models.BoundingBox) string {
	return box.QuantizedKey(c.precision) + "|" + c.filters.Key()
}
