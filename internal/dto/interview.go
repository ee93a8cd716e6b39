package dto

import (
	"time"

	"interview-agent/internal/domain"
)

// AgentRequest is the body of POST /api/agent
// @Description Role to generate interview questions for
type AgentRequest struct {
	JobTitle       string `json:"job_title" example:"Backend Engineer"`
	JobDescription string `json:"job_description" example:"Builds Go microservices on Kubernetes"`
}

// QAPair is a single generated question with its answer
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QASet groups generated pairs by difficulty. All three keys are always present.
type QASet struct {
	Basic        []QAPair `json:"basic"`
	Intermediate []QAPair `json:"intermediate"`
	Expert       []QAPair `json:"expert"`
}

// InterviewRecordResponse is a stored generation result
// @Description Interview record
type InterviewRecordResponse struct {
	ID             int64     `json:"id" example:"1"`
	JobTitle       string    `json:"job_title" example:"Backend Engineer"`
	JobDescription string    `json:"job_description"`
	QA             QASet     `json:"qa"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryResponse is the body of GET /api/history
type HistoryResponse struct {
	Items []InterviewRecordResponse `json:"items"`
	Count int                       `json:"count"`
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status              string `json:"status" example:"ok"`
	Database            string `json:"database" example:"up"`
	Cache               string `json:"cache" example:"disabled"`
	GenerationAvailable bool   `json:"generation_available"`
}

// ToInterviewRecordResponse converts a domain record for the API.
func ToInterviewRecordResponse(r *domain.InterviewRecord) InterviewRecordResponse {
	return InterviewRecordResponse{
		ID:             r.ID,
		JobTitle:       r.JobTitle,
		JobDescription: r.JobDescription,
		QA:             toQASet(r.QA),
		CreatedAt:      r.CreatedAt,
	}
}

// ToHistoryResponse converts a listing. Items is never null.
func ToHistoryResponse(records []*domain.InterviewRecord) HistoryResponse {
	items := make([]InterviewRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, ToInterviewRecordResponse(r))
	}
	return HistoryResponse{Items: items, Count: len(items)}
}

func toQASet(s domain.QASet) QASet {
	return QASet{
		Basic:        toPairs(s.Basic),
		Intermediate: toPairs(s.Intermediate),
		Expert:       toPairs(s.Expert),
	}
}

func toPairs(pairs []domain.QAPair) []QAPair {
	out := make([]QAPair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, QAPair{Question: p.Question, Answer: p.Answer})
	}
	return out
}
