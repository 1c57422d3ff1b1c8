package models

import "time"

// Intent categories for demand classification
type Intent string

const (
	IntentBuy    Intent = "BUY"
	IntentRent   Intent = "RENT"
	IntentSell   Intent = "SELL"
	IntentInvest Intent = "INVEST"
	IntentNone   Intent = ""
)

// Sentiment / urgency labels
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"

	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// IntentDetection is an intent label with the keyword that triggered it.
type IntentDetection struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Keyword    string  `json:"keyword,omitempty"`
}

// Budget is a normalized absolute amount in EGP.
type Budget struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Raw      string  `json:"raw,omitempty"`
}

// Location keeps the raw matched span; no geocoding happens here.
type Location struct {
	Area       string  `json:"area"`
	Raw        string  `json:"raw,omitempty"`
	Confidence float64 `json:"confidence"`
}

// PropertyTypePref is a demand-side property type preference.
type PropertyTypePref struct {
	Type       string  `json:"type"`
	Raw        string  `json:"raw,omitempty"`
	Confidence float64 `json:"confidence"`
}

// SizePref is a demand-side size preference in square meters.
type SizePref struct {
	AreaSqm float64 `json:"areaSqm"`
	Raw     string  `json:"raw,omitempty"`
}

// Contact holds opportunistically extracted contact details.
type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// PartialRequirement is what a single message yields. Nil fields were not
// extracted; sentiment/urgency/confidence are always computed.
type PartialRequirement struct {
	Intent       *IntentDetection  `json:"intent,omitempty"`
	Budget       *Budget           `json:"budget,omitempty"`
	Location     *Location         `json:"location,omitempty"`
	PropertyType *PropertyTypePref `json:"propertyType,omitempty"`
	Size         *SizePref         `json:"size,omitempty"`
	Bedrooms     *int              `json:"bedrooms,omitempty"`
	Bathrooms    *int              `json:"bathrooms,omitempty"`
	Contact      *Contact          `json:"contact,omitempty"`

	Sentiment  string  `json:"sentiment"`
	Urgency    string  `json:"urgency"`
	Confidence float64 `json:"confidence"`
}

// Requirement is the accumulated demand record for one customer.
type Requirement struct {
	CustomerID   string            `json:"customerId"`
	Intent       *IntentDetection  `json:"intent,omitempty"`
	Budget       *Budget           `json:"budget,omitempty"`
	Location     *Location         `json:"location,omitempty"`
	PropertyType *PropertyTypePref `json:"propertyType,omitempty"`
	Size         *SizePref         `json:"size,omitempty"`
	Bedrooms     *int              `json:"bedrooms,omitempty"`
	Bathrooms    *int              `json:"bathrooms,omitempty"`
	Contact      *Contact          `json:"contact,omitempty"`

	Sentiment   string    `json:"sentiment"`
	Urgency     string    `json:"urgency"`
	Confidence  float64   `json:"confidence"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Merge folds a partial extraction into the requirement. Only fields the
// partial actually extracted overwrite prior state; everything else persists.
// Sentiment, urgency and confidence are recomputed on every message, so they
// always carry the latest values.
func (r *Requirement) Merge(p PartialRequirement, at time.Time) {
	if p.Intent != nil {
		r.Intent = p.Intent
	}
	if p.Budget != nil {
		r.Budget = p.Budget
	}
	if p.Location != nil {
		r.Location = p.Location
	}
	if p.PropertyType != nil {
		r.PropertyType = p.PropertyType
	}
	if p.Size != nil {
		r.Size = p.Size
	}
	if p.Bedrooms != nil {
		r.Bedrooms = p.Bedrooms
	}
	if p.Bathrooms != nil {
		r.Bathrooms = p.Bathrooms
	}
	if p.Contact != nil {
		if r.Contact == nil {
			r.Contact = &Contact{}
		}
		if p.Contact.Phone != "" {
			r.Contact.Phone = p.Contact.Phone
		}
		if p.Contact.Email != "" {
			r.Contact.Email = p.Contact.Email
		}
	}

	r.Sentiment = p.Sentiment
	r.Urgency = p.Urgency
	r.Confidence = p.Confidence
	r.LastUpdated = at
}
