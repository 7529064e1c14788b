package usecase

import (
	"context"
	"errors"
	"testing"

	"jobrank/internal/domain/job"
	"jobrank/internal/rank"
)

type mockRecommender struct {
	out   RecommendationOutput
	err   error
	calls int
	got   string
}

func (m *mockRecommender) Recommend(_ context.Context, query string) (RecommendationOutput, error) {
	m.calls++
	m.got = query
	return m.out, m.err
}

func TestAssistant_EmptyText(t *testing.T) {
	uc := NewAssistantUsecase(&mockRecommender{}, nil)
	if _, err := uc.Query(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAssistant_RoutesJobQueriesThroughPipeline(t *testing.T) {
	best := rank.ScoredJob{Job: job.Record{Title: "Software Engineer", Company: "TechCo"}, Score: 80}
	rec := &mockRecommender{out: RecommendationOutput{Result: rank.Result{Best: &best}}}
	uc := NewAssistantUsecase(rec, nil)

	out, err := uc.Query(context.Background(), "find me a software job in pune")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.FeatureType != FeatureJobSearch {
		t.Fatalf("expected job routing, got %s", out.FeatureType)
	}
	if rec.calls != 1 || rec.got != "find me a software job in pune" {
		t.Fatalf("pipeline not invoked with raw text: calls=%d got=%q", rec.calls, rec.got)
	}
	if out.Jobs == nil || out.Jobs.Result.Best == nil {
		t.Fatalf("expected structured job data")
	}
}

func TestAssistant_JobQueryNoResults(t *testing.T) {
	rec := &mockRecommender{out: RecommendationOutput{Result: rank.Result{Message: rank.NoJobsMessage}}}
	uc := NewAssistantUsecase(rec, nil)

	out, err := uc.Query(context.Background(), "any vacancy near me")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Output != rank.NoJobsMessage {
		t.Fatalf("expected the no-jobs message, got %q", out.Output)
	}
}

func TestAssistant_NonJobBuckets(t *testing.T) {
	rec := &mockRecommender{}
	uc := NewAssistantUsecase(rec, nil)

	cases := []struct {
		text string
		want string
	}{
		{"I want to learn a new skill", FeatureCourse},
		{"any government scheme for farmers", FeatureScheme},
		{"hello there", FeatureGreeting},
		{"what is the weather", FeatureUnknown},
	}
	for _, tc := range cases {
		out, err := uc.Query(context.Background(), tc.text)
		if err != nil {
			t.Fatalf("text %q: unexpected err: %v", tc.text, err)
		}
		if out.FeatureType != tc.want {
			t.Fatalf("text %q: expected %s, got %s", tc.text, tc.want, out.FeatureType)
		}
		if out.Output == "" {
			t.Fatalf("text %q: expected a reply", tc.text)
		}
	}
	if rec.calls != 0 {
		t.Fatalf("non-job buckets must not hit the pipeline")
	}
}

func TestAssistant_PipelineErrorPropagates(t *testing.T) {
	rec := &mockRecommender{err: ErrCorpusUnavailable}
	uc := NewAssistantUsecase(rec, nil)

	if _, err := uc.Query(context.Background(), "software job"); !errors.Is(err, ErrCorpusUnavailable) {
		t.Fatalf("expected ErrCorpusUnavailable, got %v", err)
	}
}
