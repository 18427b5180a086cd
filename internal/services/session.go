package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pastoral-bknd/internal/geoindex"
	"pastoral-bknd/internal/models"
)

// renderMirror is the server-side stand-in for the client's map widget. The
// client reports its real bounds here and polls for pending re-center
// commands; the core only ever talks to the RenderSurface interface.
type renderMirror struct {
	mu      sync.Mutex
	box     *models.BoundingBox
	target  *models.Target
	version uint64
}

// ReportBounds records the bounding box the client's map actually shows.
// Until the first report, Bounds answers false: the core never assumes a
// box the surface has not confirmed.
func (m *renderMirror) ReportBounds(box models.BoundingBox) {
	if !box.Valid() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b := box
	m.box = &b
}

func (m *renderMirror) Bounds() (models.BoundingBox, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.box == nil {
		return models.BoundingBox{}, false
	}
	return *m.box, true
}

func (m *renderMirror) SetView(t models.Target) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tt := t
	m.target = &tt
	m.version++
}

func (m *renderMirror) PanTo(c models.Coordinate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.target == nil {
		m.target = &models.Target{Center: c, Zoom: zoomDefault}
	} else {
		m.target.Center = c
	}
	m.version++
}

// PendingTarget returns the latest re-center command and its version. A
// client that has already applied the returned version does nothing.
func (m *renderMirror) PendingTarget() (models.Target, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.target == nil {
		return models.Target{}, 0, false
	}
	return *m.target, m.version, true
}

// Session owns the interactive state of one map client: filter state,
// viewport state, selection, the fetched marker set and the chat
// transcript. All of it is single-writer, serialized by the session mutex.
type Session struct {
	ID string

	mu          sync.Mutex
	log         *zap.Logger
	index       *geoindex.Index
	mirror      *renderMirror
	viewport    *ViewportController
	coordinator *BoundsCoordinator
	resolver    *DetailResolver

	filters   models.FilterState
	selection *models.Parish
	device    *models.Coordinate
	lastSeen  time.Time

	conversationID string
	transcript     []models.ChatMessage
}

// SessionManager creates and tracks sessions.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	index     *geoindex.Index
	source    MarkerSource
	remote    DetailSource
	locator   DeviceLocator
	precision int
	window    time.Duration
	timeout   time.Duration
	log       *zap.Logger
}

func NewSessionManager(index *geoindex.Index, source MarkerSource, remote DetailSource, locator DeviceLocator, precision int, window, timeout time.Duration, log *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions:  map[string]*Session{},
		index:     index,
		source:    source,
		remote:    remote,
		locator:   locator,
		precision: precision,
		window:    window,
		timeout:   timeout,
		log:       log,
	}
}

// Create starts a session with default filters. The device location is a
// single best-effort read: an explicitly reported coordinate wins,
// otherwise the configured locator is asked once, and failure just leaves
// the viewport chain to fall through.
func (sm *SessionManager) Create(ctx context.Context, device *models.Coordinate) *Session {
	id := uuid.NewString()
	log := sm.log.With(zap.String("session", id))

	mirror := &renderMirror{}
	viewport := NewViewportController(mirror, log)
	s := &Session{
		ID:          id,
		log:         log,
		index:       sm.index,
		mirror:      mirror,
		viewport:    viewport,
		coordinator: NewBoundsCoordinator(sm.source, mirror, sm.precision, sm.window, sm.timeout, log),
		resolver:    NewDetailResolver(sm.index, sm.remote, log),
		filters:     models.DefaultFilterState(),
		lastSeen:    time.Now(),
	}

	if device != nil && device.Valid() {
		d := *device
		s.device = &d
	} else {
		s.device = viewport.ReadDeviceLocation(ctx, sm.locator)
	}

	viewport.Apply(nil, s.filters, s.device)

	sm.mu.Lock()
	sm.sessions[id] = s
	sm.mu.Unlock()

	return s
}

// Get returns a live session and refreshes its idle clock.
func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mu.RLock()
	s, ok := sm.sessions[id]
	sm.mu.RUnlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}

	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
	return s, nil
}

// Remove drops a session and stops its coordinator.
func (sm *SessionManager) Remove(id string) {
	sm.mu.Lock()
	s, ok := sm.sessions[id]
	delete(sm.sessions, id)
	sm.mu.Unlock()

	if ok {
		s.coordinator.Stop()
	}
}

// StartSweeper evicts idle sessions in the background for the lifetime of
// the process.
func (sm *SessionManager) StartSweeper(interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if n := sm.Sweep(maxIdle); n > 0 {
				sm.log.Info("swept idle sessions", zap.Int("count", n))
			}
		}
	}()
}

// Sweep drops sessions idle for longer than maxIdle.
func (sm *SessionManager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	sm.mu.Lock()
	var stale []*Session
	for id, s := range sm.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			stale = append(stale, s)
			delete(sm.sessions, id)
		}
	}
	sm.mu.Unlock()

	for _, s := range stale {
		s.coordinator.Stop()
	}
	return len(stale)
}

// SetFilters replaces the session's filter state, invalidating the bounds
// key when the query-relevant filters changed and re-aiming the viewport.
func (s *Session) SetFilters(f models.FilterState) models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = f.Normalize()
	s.coordinator.SetFilters(models.MarkerFilters{
		Country:  s.filters.Country,
		Services: s.filters.Services,
	})
	s.viewport.Apply(s.selection, s.filters, s.device)
	return s.filters
}

// Filters returns the current filter state.
func (s *Session) Filters() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Select resolves a marker selection to a full detail record and re-aims
// the viewport at it.
func (s *Session) Select(ctx context.Context, m models.Marker) models.Parish {
	detail := s.resolver.Resolve(ctx, m)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = &detail
	s.viewport.Apply(s.selection, s.filters, s.device)
	return detail
}

// ClearSelection drops the selection; the viewport falls back down the
// signal chain (region filter, device location, default).
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection = nil
	s.viewport.Apply(nil, s.filters, s.device)
}

// Selection returns the current selection, if any.
func (s *Session) Selection() *models.Parish {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection == nil {
		return nil
	}
	sel := *s.selection
	return &sel
}

// BoundsChanged records the client's reported box and lets the coordinator
// debounce the resulting fetch.
func (s *Session) BoundsChanged(box models.BoundingBox) {
	s.mirror.ReportBounds(box)
	s.coordinator.BoundsChanged()
}

// Ready marks the render surface ready and triggers the initial fetch.
func (s *Session) Ready(box *models.BoundingBox) {
	if box != nil {
		s.mirror.ReportBounds(*box)
	}
	s.coordinator.Ready()
}

// Markers returns the reconciled render list: the filtered local collection
// side by side with the markers fetched for the current bounds.
func (s *Session) Markers() []models.Marker {
	s.mu.Lock()
	filters := s.filters
	s.mu.Unlock()

	static := FilterParishes(s.index.All(), filters)
	return MergeMarkers(static, s.coordinator.Markers())
}

// Parishes returns the filtered list view. With the near-me flag set and a
// known device location, the list is ordered by distance; the flag never
// triggers a second location read.
func (s *Session) Parishes() []models.Parish {
	s.mu.Lock()
	filters := s.filters
	device := s.device
	s.mu.Unlock()

	parishes := FilterParishes(s.index.All(), filters)
	if filters.NearMe && device != nil {
		sort.SliceStable(parishes, func(i, j int) bool {
			return geoindex.HaversineKm(*device, parishes[i].Location) <
				geoindex.HaversineKm(*device, parishes[j].Location)
		})
	}
	return parishes
}

// Viewport reports the current viewport state for the client: the pending
// re-center command (with its version, so an already-applied command is a
// no-op) and the bounds of the last applied fetch.
func (s *Session) Viewport() (models.Target, uint64, bool) {
	target, version, ok := s.mirror.PendingTarget()
	return target, version, ok
}

// ViewportState assembles the session's view of the viewport.
func (s *Session) ViewportState() models.ViewportState {
	state := models.ViewportState{}
	if target, _, ok := s.mirror.PendingTarget(); ok {
		state.Center = target.Center
		state.Zoom = target.Zoom
	}
	state.LastFetchedBounds = s.coordinator.LastFetchedBounds()
	return state
}

// Flush runs a pending bounds debounce immediately. Test hook.
func (s *Session) Flush() { s.coordinator.Flush() }

// --- chat transcript ---

// ConversationID returns the chat conversation id captured so far.
func (s *Session) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

// SetConversationID persists the id returned by the relay for next turn.
func (s *Session) SetConversationID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		s.conversationID = id
	}
}

// AppendUserMessage adds the user's utterance as a new turn.
func (s *Session) AppendUserMessage(content string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := len(s.transcript)
	s.transcript = append(s.transcript, models.ChatMessage{
		Turn: turn, Role: models.RoleUser, Content: content,
	})
	return turn
}

// BeginAssistantTurn opens an empty assistant message and returns its turn
// index. Streamed fragments target the turn explicitly, so out-of-order UI
// updates can never append to the wrong message.
func (s *Session) BeginAssistantTurn() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := len(s.transcript)
	s.transcript = append(s.transcript, models.ChatMessage{
		Turn: turn, Role: models.RoleAssistant,
	})
	return turn
}

// AppendFragment appends a streamed delta to the given assistant turn.
func (s *Session) AppendFragment(turn int, delta string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if turn < 0 || turn >= len(s.transcript) {
		return
	}
	s.transcript[turn].Content += delta
}

// Transcript returns a copy of the chat transcript.
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}
