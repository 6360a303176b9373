package service

import (
	"context"
	"sync"
	"time"
)

// BackendStatus is the result of the latest reachability check.
type BackendStatus struct {
	BaseURL   string     `json:"baseUrl"`
	Reachable bool       `json:"reachable"`
	CheckedAt *time.Time `json:"checkedAt,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// BackendService tracks whether the catalog backend answers requests.
type BackendService struct {
	catalog Catalog
	baseURL string

	mu     sync.RWMutex
	status BackendStatus
}

// NewBackendService constructs a BackendService. Until the first check the
// backend is reported as unreachable with no check time.
func NewBackendService(c Catalog, baseURL string) *BackendService {
	return &BackendService{
		catalog: c,
		baseURL: baseURL,
		status:  BackendStatus{BaseURL: baseURL},
	}
}

// Check lists categories once and records the outcome.
func (s *BackendService) Check(ctx context.Context) error {
	_, err := s.catalog.ListCategories(ctx)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = BackendStatus{
		BaseURL:   s.baseURL,
		Reachable: err == nil,
		CheckedAt: &now,
	}
	if err != nil {
		s.status.Error = err.Error()
	}
	return err
}

// Status returns the latest recorded status.
func (s *BackendService) Status() BackendStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
