// Package lead derives lead quality and agent-facing recommendations from a
// requirement and its best matches. Everything here is a pure function; the
// rules run in a fixed priority order and the first matching rule wins.
package lead

import (
	"fmt"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

// Lead quality point values, summed and capped at 100.
const (
	pointsBudget        = 25
	pointsLocation      = 20
	pointsPropertyType  = 15
	pointsIntent        = 20
	pointsUrgencyHigh   = 15
	pointsUrgencyMedium = 10
	pointsPositive      = 5
)

// AssessQuality scores requirement completeness and engagement.
// Band thresholds: 80 for HIGH, 60 for MEDIUM.
func AssessQuality(req *models.Requirement) models.LeadQuality {
	score := 0
	factors := []string{}

	if req.Budget != nil {
		score += pointsBudget
		factors = append(factors, "Clear budget specified")
	}
	if req.Location != nil {
		score += pointsLocation
		factors = append(factors, "Specific location preference")
	}
	if req.PropertyType != nil {
		score += pointsPropertyType
		factors = append(factors, "Property type specified")
	}
	if req.Intent != nil {
		score += pointsIntent
		factors = append(factors, "Clear purchase/rental intent")
	}
	switch req.Urgency {
	case models.UrgencyHigh:
		score += pointsUrgencyHigh
		factors = append(factors, "High urgency indicated")
	case models.UrgencyMedium:
		score += pointsUrgencyMedium
		factors = append(factors, "Medium urgency indicated")
	}
	if req.Sentiment == models.SentimentPositive {
		score += pointsPositive
		factors = append(factors, "Positive sentiment")
	}

	if score > 100 {
		score = 100
	}

	band := models.BandLow
	switch {
	case score >= 80:
		band = models.BandHigh
	case score >= 60:
		band = models.BandMedium
	}

	return models.LeadQuality{Score: score, Band: band, Factors: factors}
}

// RecommendAction derives the next step for the human agent from the best
// match score.
func RecommendAction(matches []models.MatchResult) models.Recommendation {
	if len(matches) == 0 {
		return models.Recommendation{
			Action:     models.RecommendNoMatches,
			Priority:   models.UrgencyMedium,
			Suggestion: "No properties match current requirements. Consider expanding search criteria or adding new properties to inventory.",
			FollowUp:   "Contact customer to discuss alternative options or adjust requirements.",
		}
	}

	best := matches[0]
	switch {
	case best.Score >= 0.9:
		return models.Recommendation{
			Action:     models.RecommendExcellentMatch,
			Priority:   models.UrgencyHigh,
			Suggestion: fmt.Sprintf("Excellent match found (%d%% compatibility). Recommend immediate contact.", int(best.Score*100+0.5)),
			FollowUp:   "Schedule property viewing or send detailed property information.",
		}
	case best.Score >= 0.8:
		return models.Recommendation{
			Action:     models.RecommendGoodMatch,
			Priority:   models.UrgencyMedium,
			Suggestion: fmt.Sprintf("Good match found (%d%% compatibility). Worth presenting to customer.", int(best.Score*100+0.5)),
			FollowUp:   "Present top matches and gauge customer interest.",
		}
	default:
		return models.Recommendation{
			Action:     models.RecommendPartialMatch,
			Priority:   models.UrgencyLow,
			Suggestion: "Partial matches found. May need to adjust requirements or search criteria.",
			FollowUp:   "Clarify customer requirements and preferences.",
		}
	}
}

// ShouldContact decides whether the agent should reach out now. Rules are
// checked in priority order.
func ShouldContact(req *models.Requirement, matches []models.MatchResult, quality models.LeadQuality) models.ContactDecision {
	if quality.Band == models.BandHigh && len(matches) > 0 && matches[0].Score >= 0.8 {
		return models.ContactDecision{
			ShouldContact: true,
			Priority:      models.BandHigh,
			Reason:        "High-quality lead with excellent property matches",
			Timeframe:     "within 1 hour",
		}
	}

	if req.Urgency == models.UrgencyHigh {
		return models.ContactDecision{
			ShouldContact: true,
			Priority:      models.BandHigh,
			Reason:        "Customer indicated urgent requirements",
			Timeframe:     "within 2 hours",
		}
	}

	if quality.Band == models.BandMedium && len(matches) > 0 {
		return models.ContactDecision{
			ShouldContact: true,
			Priority:      models.BandMedium,
			Reason:        "Good lead with available property matches",
			Timeframe:     "within 24 hours",
		}
	}

	return models.ContactDecision{
		ShouldContact: false,
		Priority:      models.BandLow,
		Reason:        "Lead needs more information or no suitable matches available",
		Timeframe:     "follow up when more properties available",
	}
}
