// package testcaserepository (memory) keeps the test case catalog in process
// memory. It backs tests and the dev mode where no database is configured.
package testcaserepository

import (
	"context"
	"sync"

	"gitlab.com/codearena-2025.net/internal/core/ports/secondary"
	"gitlab.com/codearena-2025.net/internal/domain"
)

var _ secondary.TestCaseRepository = (*Store)(nil)

// Store is an in-memory TestCaseRepository. Mutations replace a challenge's
// slice wholesale under the write lock, so a reader holding a previously
// returned list keeps iterating a consistent snapshot while writers proceed.
type Store struct {
	mu     sync.RWMutex
	byChal map[int64][]*domain.TestCase
	byID   map[int64]*domain.TestCase
	nextID int64
}

// NewStore creates an empty in-memory catalog.
func NewStore() *Store {
	return &Store{
		byChal: make(map[int64][]*domain.TestCase),
		byID:   make(map[int64]*domain.TestCase),
		nextID: 1,
	}
}

// AllTestCases returns every test case for a challenge in id order.
func (s *Store) AllTestCases(_ context.Context, challengeID int64) ([]*domain.TestCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cases := s.byChal[challengeID]
	out := make([]*domain.TestCase, 0, len(cases))
	for _, tc := range cases {
		copied := *tc
		out = append(out, &copied)
	}
	return out, nil
}

// VisibleTestCases returns the sample, non-hidden subset in id order.
func (s *Store) VisibleTestCases(_ context.Context, challengeID int64) ([]*domain.TestCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.TestCase
	for _, tc := range s.byChal[challengeID] {
		if tc.Visible() {
			copied := *tc
			out = append(out, &copied)
		}
	}
	if out == nil {
		out = []*domain.TestCase{}
	}
	return out, nil
}

// GetTestCase returns a test case by id, nil when not found.
func (s *Store) GetTestCase(_ context.Context, testCaseID int64) (*domain.TestCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tc, ok := s.byID[testCaseID]
	if !ok {
		return nil, nil
	}
	copied := *tc
	return &copied, nil
}

// CreateTestCase registers a new test case and assigns its id.
func (s *Store) CreateTestCase(_ context.Context, tc *domain.TestCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *tc
	stored.ID = s.nextID
	s.nextID++

	s.byID[stored.ID] = &stored
	s.replaceChallengeList(stored.ChallengeID, append(s.byChal[stored.ChallengeID], &stored))

	tc.ID = stored.ID
	return nil
}

// UpdateTestCase applies a partial update, returning the updated case or nil
// when the id is unknown.
func (s *Store) UpdateTestCase(_ context.Context, testCaseID int64, upd *domain.TestCaseUpdate) (*domain.TestCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[testCaseID]
	if !ok {
		return nil, nil
	}

	updated := *current
	upd.Apply(&updated)
	s.byID[testCaseID] = &updated

	list := s.byChal[updated.ChallengeID]
	replacement := make([]*domain.TestCase, len(list))
	for i, tc := range list {
		if tc.ID == testCaseID {
			replacement[i] = &updated
		} else {
			replacement[i] = tc
		}
	}
	s.replaceChallengeList(updated.ChallengeID, replacement)

	copied := updated
	return &copied, nil
}

// RemoveTestCase deletes a test case, reporting whether it existed.
func (s *Store) RemoveTestCase(_ context.Context, testCaseID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[testCaseID]
	if !ok {
		return false, nil
	}
	delete(s.byID, testCaseID)

	var replacement []*domain.TestCase
	for _, tc := range s.byChal[current.ChallengeID] {
		if tc.ID != testCaseID {
			replacement = append(replacement, tc)
		}
	}
	s.replaceChallengeList(current.ChallengeID, replacement)
	return true, nil
}

// RemoveAllForChallenge deletes every test case of a challenge.
func (s *Store) RemoveAllForChallenge(_ context.Context, challengeID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := int64(len(s.byChal[challengeID]))
	for _, tc := range s.byChal[challengeID] {
		delete(s.byID, tc.ID)
	}
	delete(s.byChal, challengeID)
	return removed, nil
}

// Seed loads a batch of test cases, assigning ids in order. Intended for dev
// mode and tests.
func (s *Store) Seed(cases ...domain.TestCase) {
	for i := range cases {
		// Error is impossible for the in-memory store.
		_ = s.CreateTestCase(context.Background(), &cases[i])
	}
}

// replaceChallengeList swaps in a fresh slice; never mutates the old one.
func (s *Store) replaceChallengeList(challengeID int64, list []*domain.TestCase) {
	if len(list) == 0 {
		delete(s.byChal, challengeID)
		return
	}
	s.byChal[challengeID] = list
}
