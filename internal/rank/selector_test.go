package rank

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobrank/internal/domain/job"
)

type stubJobStore struct {
	records []job.Record
	err     error
	gotPred *Predicate
}

func (s *stubJobStore) Select(_ context.Context, p Predicate) ([]job.Record, error) {
	s.gotPred = &p
	return s.records, s.err
}

func TestSelector_EmptyQueryShortCircuits(t *testing.T) {
	store := &stubJobStore{}
	sel := NewSelector(store, DefaultRules(), nil)

	got, err := sel.Select(context.Background(), Intent{PrimaryCategory: CategoryOther}, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil candidates, got %v", got)
	}
	if store.gotPred != nil {
		t.Fatalf("store must not be queried for an empty predicate")
	}
}

func TestSelector_StoreErrorPropagates(t *testing.T) {
	store := &stubJobStore{err: errors.New("connection refused")}
	sel := NewSelector(store, DefaultRules(), nil)

	_, err := sel.Select(context.Background(), Intent{
		PrimaryCategory: CategorySoftwareEngineer,
		JobRoles:        []string{"software developer"},
	}, "software developer")
	if err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

func TestSelector_CapsCandidates(t *testing.T) {
	records := make([]job.Record, 40)
	for i := range records {
		records[i] = testJob("Software Engineer", "Co", time.Now().UTC())
	}
	store := &stubJobStore{records: records}
	sel := NewSelector(store, DefaultRules(), nil)

	got, err := sel.Select(context.Background(), Intent{
		PrimaryCategory: CategorySoftwareEngineer,
		JobRoles:        []string{"software engineer"},
	}, "software engineer")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 30 {
		t.Fatalf("expected cap at 30, got %d", len(got))
	}
	if store.gotPred == nil || store.gotPred.Limit != 30 {
		t.Fatalf("expected limit pushed to store, got %+v", store.gotPred)
	}
}
