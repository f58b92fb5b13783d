package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/abhisek/skilleval/internal/assess"
	"github.com/abhisek/skilleval/internal/blueprint"
)

// MemStore is an in-memory implementation of ProfileRepo, TestRepo and
// AttemptRepo. Stored values are deep-copied on the way in and out so
// callers never share state with the store.
type MemStore struct {
	mu       sync.RWMutex
	profiles map[string]blueprint.Profile
	tests    map[string]assess.Test
	attempts map[string]assess.Attempt
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		profiles: make(map[string]blueprint.Profile),
		tests:    make(map[string]assess.Test),
		attempts: make(map[string]assess.Attempt),
	}
}

// Profiles returns the store as a ProfileRepo.
func (m *MemStore) Profiles() ProfileRepo { return memProfiles{m} }

// Tests returns the store as a TestRepo.
func (m *MemStore) Tests() TestRepo { return memTests{m} }

// Attempts returns the store as an AttemptRepo.
func (m *MemStore) Attempts() AttemptRepo { return memAttempts{m} }

func clone[T any](v T) T {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("memstore: clone: %v", err))
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("memstore: clone: %v", err))
	}
	return out
}

type memProfiles struct{ m *MemStore }

func (r memProfiles) Create(_ context.Context, p *blueprint.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.profiles[p.ID]; ok {
		return fmt.Errorf("insert profile: duplicate id %q", p.ID)
	}
	r.m.profiles[p.ID] = clone(*p)
	return nil
}

func (r memProfiles) Get(_ context.Context, id string) (*blueprint.Profile, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	p, ok := r.m.profiles[id]
	if !ok {
		return nil, &NotFoundError{Kind: "profile", ID: id}
	}
	out := clone(p)
	return &out, nil
}

func (r memProfiles) ListByUser(ctx context.Context, userID string) ([]blueprint.Profile, error) {
	all, _ := r.List(ctx)
	var out []blueprint.Profile
	for _, p := range all {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProfiles) List(_ context.Context) ([]blueprint.Profile, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]blueprint.Profile, 0, len(r.m.profiles))
	for _, p := range r.m.profiles {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type memTests struct{ m *MemStore }

func (r memTests) Create(_ context.Context, t *assess.Test) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.profiles[t.ProfileID]; !ok {
		return fmt.Errorf("insert test: unknown profile %q", t.ProfileID)
	}
	if _, ok := r.m.tests[t.ID]; ok {
		return fmt.Errorf("insert test: duplicate id %q", t.ID)
	}
	r.m.tests[t.ID] = clone(*t)
	return nil
}

func (r memTests) Get(_ context.Context, id string) (*assess.Test, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	t, ok := r.m.tests[id]
	if !ok {
		return nil, &NotFoundError{Kind: "test", ID: id}
	}
	out := clone(t)
	return &out, nil
}

func (r memTests) GetByProfile(_ context.Context, profileID string) (*assess.Test, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var found *assess.Test
	for _, t := range r.m.tests {
		if t.ProfileID != profileID {
			continue
		}
		if found == nil || t.CreatedAt.After(found.CreatedAt) {
			c := clone(t)
			found = &c
		}
	}
	if found == nil {
		return nil, &NotFoundError{Kind: "test", ID: profileID}
	}
	return found, nil
}

type memAttempts struct{ m *MemStore }

func (r memAttempts) Create(_ context.Context, a *assess.Attempt) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.tests[a.TestID]; !ok {
		return fmt.Errorf("insert attempt: unknown test %q", a.TestID)
	}
	if _, ok := r.m.attempts[a.ID]; ok {
		return fmt.Errorf("insert attempt: duplicate id %q", a.ID)
	}
	r.m.attempts[a.ID] = clone(*a)
	return nil
}

func (r memAttempts) Get(_ context.Context, id string) (*assess.Attempt, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	a, ok := r.m.attempts[id]
	if !ok {
		return nil, &NotFoundError{Kind: "attempt", ID: id}
	}
	out := clone(a)
	return &out, nil
}

func (r memAttempts) Update(_ context.Context, a *assess.Attempt) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cur, ok := r.m.attempts[a.ID]
	if !ok {
		return &NotFoundError{Kind: "attempt", ID: a.ID}
	}
	if cur.Completed {
		return fmt.Errorf("%w: %s", ErrAttemptCompleted, a.ID)
	}
	next := clone(*a)
	cur.Answers = next.Answers
	cur.EndTime = next.EndTime
	cur.Score = next.Score
	cur.Evaluation = next.Evaluation
	cur.Completed = next.Completed
	r.m.attempts[a.ID] = cur
	return nil
}

func (r memAttempts) ListByUser(ctx context.Context, userID string) ([]assess.Attempt, error) {
	all, _ := r.List(ctx)
	var out []assess.Attempt
	for _, a := range all {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAttempts) List(_ context.Context) ([]assess.Attempt, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]assess.Attempt, 0, len(r.m.attempts))
	for _, a := range r.m.attempts {
		out = append(out, clone(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
