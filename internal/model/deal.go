package model

import "time"

type DealStage string

const (
	DealStageLead        DealStage = "lead"
	DealStageQualified   DealStage = "qualified"
	DealStageProposal    DealStage = "proposal"
	DealStageNegotiation DealStage = "negotiation"
	DealStageWon         DealStage = "won"
	DealStageLost        DealStage = "lost"
)

// DealStages lists stages in pipeline order.
var DealStages = []DealStage{
	DealStageLead, DealStageQualified, DealStageProposal, DealStageNegotiation, DealStageWon, DealStageLost,
}

// Win probabilities used for the weighted forecast.
var dealStageProbability = map[DealStage]int64{
	DealStageLead:        10,
	DealStageQualified:   25,
	DealStageProposal:    50,
	DealStageNegotiation: 75,
	DealStageWon:         100,
	DealStageLost:        0,
}

func (s DealStage) Valid() bool {
	_, ok := dealStageProbability[s]
	return ok
}

func (s DealStage) IsClosed() bool {
	return s == DealStageWon || s == DealStageLost
}

func (s DealStage) Probability() int64 {
	return dealStageProbability[s]
}

// CanTransitionTo allows any move between open stages, closing from any open
// stage, and reopening a closed deal only back to qualified.
func (s DealStage) CanTransitionTo(next DealStage) bool {
	if !s.Valid() || !next.Valid() || s == next {
		return false
	}
	if s.IsClosed() {
		return next == DealStageQualified
	}
	return true
}

type Deal struct {
	ID              int64      `json:"id,string"`
	OrganizationID  int64      `json:"organization_id,string"`
	ContactID       *int64     `json:"contact_id,string,omitempty"`
	OwnerUserID     *int64     `json:"owner_user_id,string,omitempty"`
	Title           string     `json:"title"`
	Stage           DealStage  `json:"stage"`
	AmountCents     int64      `json:"amount_cents"`
	Currency        string     `json:"currency"`
	ExpectedCloseAt *time.Time `json:"expected_close_at,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type PipelineStageSummary struct {
	Stage         DealStage `json:"stage"`
	Count         int64     `json:"count"`
	AmountCents   int64     `json:"amount_cents"`
	WeightedCents int64     `json:"weighted_cents"`
}

type PipelineSummary struct {
	Stages        []PipelineStageSummary `json:"stages"`
	OpenCents     int64                  `json:"open_cents"`
	WonCents      int64                  `json:"won_cents"`
	ForecastCents int64                  `json:"forecast_cents"`
}
