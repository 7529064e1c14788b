package dto

import (
	"jobrank/internal/rank"
	"jobrank/internal/usecase"

	"github.com/google/uuid"
)

const descriptionPreviewLimit = 250

type RecommendationResponse struct {
	BestJob         *JobItem     `json:"best_job"`
	AlternativeJobs []JobItem    `json:"alternative_jobs"`
	Message         string       `json:"message,omitempty"`
	AIAnalysis      *rank.Intent `json:"ai_analysis,omitempty"`
}

type JobItem struct {
	ID                 uuid.UUID `json:"id"`
	JobTitle           string    `json:"job_title"`
	CompanyName        string    `json:"company_name"`
	Location           string    `json:"location"`
	SalaryRange        string    `json:"salary_range"`
	Description        string    `json:"description"`
	Industry           string    `json:"industry"`
	Sector             string    `json:"sector"`
	JobType            string    `json:"job_type"`
	EmploymentType     string    `json:"employment_type"`
	ExperienceRequired string    `json:"experience_required"`
	SkillsRequired     []string  `json:"skills_required"`
	Source             string    `json:"source"`
	CompanyContact     string    `json:"company_contact"`
	ApplyURL           string    `json:"apply_url"`
	RelevanceScore     int       `json:"relevance_score"`
	Reason             string    `json:"reason,omitempty"`
}

type AssistantResponse struct {
	Output         string                  `json:"output"`
	FeatureType    string                  `json:"feature_type"`
	StructuredData *RecommendationResponse `json:"structured_data,omitempty"`
}

func NewRecommendationResponse(out usecase.RecommendationOutput) RecommendationResponse {
	resp := RecommendationResponse{
		AlternativeJobs: make([]JobItem, 0, len(out.Result.Alternates)),
		Message:         out.Result.Message,
	}
	if out.Result.Best != nil {
		best := NewJobItem(*out.Result.Best)
		resp.BestJob = &best
		intent := out.Intent
		resp.AIAnalysis = &intent
	}
	for _, alt := range out.Result.Alternates {
		resp.AlternativeJobs = append(resp.AlternativeJobs, NewJobItem(alt))
	}
	return resp
}

func NewJobItem(sj rank.ScoredJob) JobItem {
	skills := sj.Job.SkillsRequired
	if skills == nil {
		skills = []string{}
	}
	return JobItem{
		ID:                 sj.Job.ID,
		JobTitle:           sj.Job.Title,
		CompanyName:        sj.Job.Company,
		Location:           sj.Job.Location,
		SalaryRange:        sj.Job.SalaryRange,
		Description:        previewDescription(sj.Job.Description),
		Industry:           sj.Job.Industry,
		Sector:             sj.Job.Sector,
		JobType:            sj.Job.JobType,
		EmploymentType:     sj.Job.EmploymentType,
		ExperienceRequired: sj.Job.ExperienceRequired,
		SkillsRequired:     skills,
		Source:             sj.Job.Source,
		CompanyContact:     sj.Job.CompanyContact,
		ApplyURL:           sj.Job.ApplyURL,
		RelevanceScore:     sj.Score,
		Reason:             sj.Reason,
	}
}

func previewDescription(desc string) string {
	if len(desc) > descriptionPreviewLimit {
		return desc[:descriptionPreviewLimit] + "..."
	}
	return desc
}
