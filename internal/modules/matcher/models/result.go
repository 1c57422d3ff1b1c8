package models

import "time"

// Per-match recommended actions, keyed off the combined score.
type MatchAction string

const (
	ActionImmediateContact MatchAction = "IMMEDIATE_CONTACT"
	ActionScheduleViewing  MatchAction = "SCHEDULE_VIEWING"
	ActionPresentOption    MatchAction = "PRESENT_OPTION"
	ActionCollectMoreInfo  MatchAction = "COLLECT_MORE_INFO"
)

// MatchResult pairs one requirement with one property. Always derivable from
// (requirement, property, weights); never persisted on its own.
type MatchResult struct {
	PropertyID        string      `json:"propertyId"`
	Property          Property    `json:"property"`
	Score             float64     `json:"score"`
	Reasons           []string    `json:"matchReasons"`
	RecommendedAction MatchAction `json:"recommendedAction"`
}

// Recommendation actions for the human agent, derived from the best match.
type RecommendationAction string

const (
	RecommendNoMatches      RecommendationAction = "NO_MATCHES"
	RecommendExcellentMatch RecommendationAction = "EXCELLENT_MATCH"
	RecommendGoodMatch      RecommendationAction = "GOOD_MATCH"
	RecommendPartialMatch   RecommendationAction = "PARTIAL_MATCH"
)

// Recommendation is a human-actionable next step. No message is ever sent
// automatically; this is advisory output for agent tooling.
type Recommendation struct {
	Action     RecommendationAction `json:"action"`
	Priority   string               `json:"priority"`
	Suggestion string               `json:"suggestion"`
	FollowUp   string               `json:"followUp"`
}

// Lead quality bands
const (
	BandHigh   = "HIGH"
	BandMedium = "MEDIUM"
	BandLow    = "LOW"
)

// LeadQuality scores requirement completeness and engagement on a 0-100 scale.
type LeadQuality struct {
	Score   int      `json:"score"`
	Band    string   `json:"quality"`
	Factors []string `json:"factors"`
}

// ContactDecision says whether a human agent should reach out now.
type ContactDecision struct {
	ShouldContact bool   `json:"shouldContact"`
	Priority      string `json:"priority"`
	Reason        string `json:"reason"`
	Timeframe     string `json:"timeframe"`
}

// ProcessResult is the full analysis returned for one inbound message.
type ProcessResult struct {
	Requirement    Requirement     `json:"demandAnalysis"`
	Matches        []MatchResult   `json:"matchingProperties"`
	Recommendation Recommendation  `json:"recommendedAction"`
	LeadQuality    LeadQuality     `json:"leadQuality"`
	ShouldContact  ContactDecision `json:"shouldHumanContact"`
}

// DemandSummary is the dashboard projection of one customer's requirement.
type DemandSummary struct {
	CustomerID         string      `json:"customerId"`
	Requirement        Requirement `json:"requirements"`
	MatchingProperties int         `json:"matchingProperties"`
	BestMatchScore     float64     `json:"bestMatchScore"`
	LeadQuality        LeadQuality `json:"leadQuality"`
	LastUpdated        time.Time   `json:"lastUpdated"`
}

// Statistics aggregates supply, demand and matching health.
type Statistics struct {
	Supply struct {
		TotalProperties     int `json:"totalProperties"`
		AvailableProperties int `json:"availableProperties"`
	} `json:"supply"`
	Demand struct {
		TotalCustomers     int `json:"totalCustomers"`
		ActiveRequirements int `json:"activeRequirements"`
	} `json:"demand"`
	Matching struct {
		TotalMatches       int     `json:"totalMatches"`
		ExcellentMatches   int     `json:"excellentMatches"`
		MatchingEfficiency float64 `json:"matchingEfficiency"`
	} `json:"matching"`
}
