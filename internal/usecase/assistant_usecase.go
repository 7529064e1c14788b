package usecase

import (
	"context"
	"log"
	"strings"
)

// Assistant feature buckets. Job queries are the only bucket with a real
// pipeline behind it; the rest answer with canned guidance so the endpoint
// stays useful without the unported features.
const (
	FeatureJobSearch = "recommend_job"
	FeatureCourse    = "suggest_course"
	FeatureScheme    = "scheme_info"
	FeatureGreeting  = "greeting"
	FeatureUnknown   = "unknown"
)

// AssistantOutput mirrors the assistant response shape: a human-readable
// output line, the routed feature, and optional structured data.
type AssistantOutput struct {
	Output      string
	FeatureType string
	Jobs        *RecommendationOutput
}

type AssistantUsecase interface {
	Query(ctx context.Context, text string) (AssistantOutput, error)
}

// Assistant routes free-form queries to a feature bucket by keyword. Job
// queries run the same recommendation pipeline as the direct endpoint; there
// is exactly one ranking path.
type Assistant struct {
	recommender RecommendationUsecase
	logger      *log.Logger
}

func NewAssistantUsecase(recommender RecommendationUsecase, logger *log.Logger) *Assistant {
	return &Assistant{recommender: recommender, logger: logger}
}

var featureTriggers = []struct {
	feature  string
	triggers []string
}{
	{FeatureJobSearch, []string{"job", "work", "vacancy", "hiring", "opening", "career", "employment", "naukri"}},
	{FeatureCourse, []string{"course", "learn", "training", "skill", "certificate", "study"}},
	{FeatureScheme, []string{"scheme", "yojana", "subsidy", "loan", "government"}},
	{FeatureGreeting, []string{"hello", "hi ", "namaste", "hey", "good morning", "good evening"}},
}

func classifyFeature(text string) string {
	t := " " + strings.ToLower(strings.TrimSpace(text)) + " "
	for _, ft := range featureTriggers {
		for _, trigger := range ft.triggers {
			if strings.Contains(t, trigger) {
				return ft.feature
			}
		}
	}
	return FeatureUnknown
}

func (a *Assistant) Query(ctx context.Context, text string) (AssistantOutput, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return AssistantOutput{}, ErrInvalidInput
	}

	feature := classifyFeature(text)
	if a.logger != nil {
		a.logger.Printf("[Assistant] routed query to %s", feature)
	}

	switch feature {
	case FeatureJobSearch:
		out, err := a.recommender.Recommend(ctx, text)
		if err != nil {
			return AssistantOutput{}, err
		}
		reply := AssistantOutput{FeatureType: feature, Jobs: &out}
		if out.Result.Best != nil {
			reply.Output = "Here is the most relevant job I found, with a few alternatives."
		} else {
			reply.Output = out.Result.Message
		}
		return reply, nil
	case FeatureCourse:
		return AssistantOutput{
			FeatureType: feature,
			Output:      "I can help you find courses. Tell me which skill you want to learn.",
		}, nil
	case FeatureScheme:
		return AssistantOutput{
			FeatureType: feature,
			Output:      "I can look up government schemes. Tell me what kind of support you need.",
		}, nil
	case FeatureGreeting:
		return AssistantOutput{
			FeatureType: feature,
			Output:      "Hello! Ask me about jobs, courses, or schemes.",
		}, nil
	default:
		return AssistantOutput{
			FeatureType: feature,
			Output:      "I didn't catch that. Try asking about jobs, for example \"find me a software job\".",
		}, nil
	}
}
