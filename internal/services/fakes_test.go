package services_test

import (
	"context"
	"sync"

	"pastoral-bknd/internal/models"
)

// fakeSurface is a controllable render surface: tests set the bounds it
// reports and count the re-center commands it receives.
type fakeSurface struct {
	mu       sync.Mutex
	box      *models.BoundingBox
	setViews []models.Target
	pans     []models.Coordinate
}

func (s *fakeSurface) SetBounds(box models.BoundingBox) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := box
	s.box = &b
}

func (s *fakeSurface) Bounds() (models.BoundingBox, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.box == nil {
		return models.BoundingBox{}, false
	}
	return *s.box, true
}

func (s *fakeSurface) SetView(t models.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setViews = append(s.setViews, t)
}

func (s *fakeSurface) PanTo(c models.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pans = append(s.pans, c)
}

func (s *fakeSurface) SetViewCalls() []models.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Target, len(s.setViews))
	copy(out, s.setViews)
	return out
}

// fakeMarkerSource counts calls and delegates to a per-test function.
type fakeMarkerSource struct {
	mu    sync.Mutex
	calls int
	fn    func(call int, box models.BoundingBox, f models.MarkerFilters) ([]models.Marker, error)
}

func (s *fakeMarkerSource) MarkersInBounds(ctx context.Context, box models.BoundingBox, f models.MarkerFilters) ([]models.Marker, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	fn := s.fn
	s.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(call, box, f)
}

func (s *fakeMarkerSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// fakeDetailSource answers detail fetches from a map, or with err when set.
type fakeDetailSource struct {
	mu      sync.Mutex
	records map[string]models.Parish
	err     error
	calls   int
}

func (s *fakeDetailSource) Detail(ctx context.Context, id string) (models.Parish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return models.Parish{}, s.err
	}
	p, ok := s.records[id]
	if !ok {
		return models.Parish{}, models.ErrNotFound
	}
	return p, nil
}

// fakeLocator is a one-shot device locator.
type fakeLocator struct {
	c   models.Coordinate
	err error
}

func (l *fakeLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	return l.c, l.err
}
