// Package extract turns free-text chat messages into structured demand
// records. Extraction is a pure function over the message and the static
// pattern library: malformed fragments are skipped, never surfaced as errors.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/crystalpower/wa-property-matcher/internal/core/patterns"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

// Confidence weight added per successfully extracted field. The sum is
// clamped at 1.0.
const (
	weightBudget   = 0.20
	weightLocation = 0.25
	weightType     = 0.20
	weightSize     = 0.15
	weightIntent   = 0.20
)

// Fixed confidences recorded on individual field hits.
const (
	locationConfidence = 0.8
	typeConfidence     = 0.9
	intentConfidence   = 0.8
)

// Extractor applies the locale packs in sequence, first match wins per field.
type Extractor struct {
	packs []patterns.Pack
}

func NewExtractor(packs []patterns.Pack) *Extractor {
	if len(packs) == 0 {
		packs = patterns.Default()
	}
	return &Extractor{packs: packs}
}

// Extract analyzes one message. It never fails; a message that parses poorly
// simply yields fewer fields and a lower confidence.
func (e *Extractor) Extract(message string) models.PartialRequirement {
	req := models.PartialRequirement{
		Sentiment: models.SentimentNeutral,
		Urgency:   models.UrgencyLow,
	}
	if message == "" {
		return req
	}

	if budget := e.extractBudget(message); budget != nil {
		req.Budget = budget
		req.Confidence += weightBudget
	}
	if location := e.extractLocation(message); location != nil {
		req.Location = location
		req.Confidence += weightLocation
	}
	if propType := e.extractPropertyType(message); propType != nil {
		req.PropertyType = propType
		req.Confidence += weightType
	}
	if size := e.extractSize(message); size != nil {
		req.Size = size
		req.Confidence += weightSize
	}
	if intent := e.classifyIntent(message); intent != nil {
		req.Intent = intent
		req.Confidence += weightIntent
	}

	req.Bedrooms = e.extractCount(message, func(p patterns.Pack) []*regexp.Regexp { return p.Bedrooms })
	req.Bathrooms = e.extractCount(message, func(p patterns.Pack) []*regexp.Regexp { return p.Bathrooms })
	req.Contact = e.extractContact(message)

	req.Sentiment = analyzeSentiment(message)
	req.Urgency = assessUrgency(message)

	if req.Confidence > 1.0 {
		req.Confidence = 1.0
	}
	return req
}

func (e *Extractor) extractBudget(message string) *models.Budget {
	for _, pack := range e.packs {
		for _, pattern := range pack.Budget {
			m := pattern.FindStringSubmatch(message)
			if m == nil {
				continue
			}
			amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil {
				continue
			}
			unit := strings.ToLower(m[2])
			switch {
			case strings.Contains(unit, "million"), strings.Contains(unit, "مليون"):
				amount *= 1_000_000
			case strings.Contains(unit, "k"), strings.Contains(unit, "thousand"),
				strings.Contains(unit, "ألف"), strings.Contains(unit, "الف"):
				amount *= 1_000
			}
			if amount <= 0 {
				continue
			}
			return &models.Budget{Amount: amount, Currency: "EGP", Raw: m[0]}
		}
	}
	return nil
}

func (e *Extractor) extractLocation(message string) *models.Location {
	for _, pack := range e.packs {
		for _, pattern := range pack.Location {
			m := pattern.FindStringSubmatch(message)
			if m == nil {
				continue
			}
			area := strings.TrimSpace(m[1])
			if area == "" {
				continue
			}
			return &models.Location{Area: area, Raw: m[0], Confidence: locationConfidence}
		}
	}
	return nil
}

func (e *Extractor) extractPropertyType(message string) *models.PropertyTypePref {
	for _, pack := range e.packs {
		for _, pattern := range pack.PropertyType {
			m := pattern.FindStringSubmatch(message)
			if m == nil {
				continue
			}
			raw := strings.TrimSpace(m[1])
			return &models.PropertyTypePref{
				Type:       strings.ToLower(patterns.CanonicalType(raw)),
				Raw:        m[0],
				Confidence: typeConfidence,
			}
		}
	}
	return nil
}

func (e *Extractor) extractSize(message string) *models.SizePref {
	for _, pack := range e.packs {
		for _, pattern := range pack.Size {
			m := pattern.FindStringSubmatch(message)
			if m == nil {
				continue
			}
			area, err := strconv.ParseFloat(m[1], 64)
			if err != nil || area <= 0 {
				continue
			}
			return &models.SizePref{AreaSqm: area, Raw: m[0]}
		}
	}
	return nil
}

// extractCount pulls a small non-negative integer (room counts) out of the
// message using the selected pattern list.
func (e *Extractor) extractCount(message string, pick func(patterns.Pack) []*regexp.Regexp) *int {
	for _, pack := range e.packs {
		for _, pattern := range pick(pack) {
			m := pattern.FindStringSubmatch(message)
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 0 {
				continue
			}
			return &n
		}
	}
	return nil
}

func (e *Extractor) extractContact(message string) *models.Contact {
	contact := &models.Contact{}
	for _, pack := range e.packs {
		if contact.Phone == "" {
			for _, pattern := range pack.Phone {
				if m := pattern.FindStringSubmatch(message); m != nil {
					contact.Phone = m[1]
					break
				}
			}
		}
		if contact.Email == "" {
			for _, pattern := range pack.Email {
				if m := pattern.FindStringSubmatch(message); m != nil {
					contact.Email = m[1]
					break
				}
			}
		}
	}
	if contact.Phone == "" && contact.Email == "" {
		return nil
	}
	return contact
}

func (e *Extractor) classifyIntent(message string) *models.IntentDetection {
	text := strings.ToLower(message)
	for _, class := range patterns.IntentClasses {
		for _, keyword := range class.Keywords {
			if strings.Contains(text, keyword) {
				return &models.IntentDetection{
					Intent:     models.Intent(class.Intent),
					Confidence: intentConfidence,
					Keyword:    keyword,
				}
			}
		}
	}
	return nil
}

func analyzeSentiment(message string) string {
	text := strings.ToLower(message)

	positive, negative := 0, 0
	for _, word := range patterns.PositiveWords {
		if strings.Contains(text, word) {
			positive++
		}
	}
	for _, word := range patterns.NegativeWords {
		if strings.Contains(text, word) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func assessUrgency(message string) string {
	text := strings.ToLower(message)
	for _, keyword := range patterns.UrgentWords {
		if strings.Contains(text, keyword) {
			return models.UrgencyHigh
		}
	}
	for _, keyword := range patterns.SoonWords {
		if strings.Contains(text, keyword) {
			return models.UrgencyMedium
		}
	}
	return models.UrgencyLow
}
