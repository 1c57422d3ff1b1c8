package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

func TestExtractBudgetNormalization(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		name    string
		message string
		want    float64
	}{
		{"million with decimal", "My budget is 3.5 million EGP", 3_500_000},
		{"million whole", "budget 2 million EGP", 2_000_000},
		{"k suffix", "Looking for something around 850k", 850_000},
		{"thousand word", "up to 900 thousand", 900_000},
		{"comma separated", "I can pay 1,250,000 EGP", 1_250_000},
		{"arabic million", "ميزانية 2 مليون جنيه", 2_000_000},
		{"arabic thousand", "500 ألف جنيه", 500_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.message)
			require.NotNil(t, got.Budget, "expected a budget in %q", tt.message)
			assert.Equal(t, tt.want, got.Budget.Amount)
			assert.Equal(t, "EGP", got.Budget.Currency)
		})
	}
}

func TestExtractNoBudget(t *testing.T) {
	e := NewExtractor(nil)
	got := e.Extract("looking for a nice apartment")
	assert.Nil(t, got.Budget)
}

func TestExtractLocation(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		message string
		want    string
	}{
		{"apartment in Maadi", "Maadi"},
		{"something near nasr city please", "nasr city"},
		{"I live in Sheikh Zayed", "Sheikh Zayed"},
		{"شقة في المعادي", "المعادي"},
	}

	for _, tt := range tests {
		got := e.Extract(tt.message)
		require.NotNil(t, got.Location, "expected a location in %q", tt.message)
		assert.Equal(t, tt.want, got.Location.Area)
	}
}

func TestExtractPropertyType(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		message string
		want    string
	}{
		{"looking for an apartment", "apartment"},
		{"a nice Villa with garden", "villa"},
		{"شقة في القاهرة", "apartment"},
		{"فيلا كبيرة", "villa"},
	}

	for _, tt := range tests {
		got := e.Extract(tt.message)
		require.NotNil(t, got.PropertyType, "expected a type in %q", tt.message)
		assert.Equal(t, tt.want, got.PropertyType.Type)
	}
}

func TestExtractRoomCounts(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Extract("3 bedroom apartment with 2 bathrooms")
	require.NotNil(t, got.Bedrooms)
	require.NotNil(t, got.Bathrooms)
	assert.Equal(t, 3, *got.Bedrooms)
	assert.Equal(t, 2, *got.Bathrooms)

	got = e.Extract("شقة 3 غرف")
	require.NotNil(t, got.Bedrooms)
	assert.Equal(t, 3, *got.Bedrooms)
}

func TestExtractSize(t *testing.T) {
	e := NewExtractor(nil)
	got := e.Extract("around 150 sqm")
	require.NotNil(t, got.Size)
	assert.Equal(t, 150.0, got.Size.AreaSqm)
}

func TestClassifyIntent(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		message string
		want    models.Intent
	}{
		{"I want to buy an apartment", models.IntentBuy},
		{"looking to rent a flat monthly", models.IntentRent},
		{"I am selling my villa", models.IntentSell},
		{"what is the roi on this", models.IntentInvest},
		// "invest" belongs to the buy class and wins over the
		// investment class because classes run in priority order.
		{"I want to invest in property", models.IntentBuy},
	}

	for _, tt := range tests {
		got := e.Extract(tt.message)
		require.NotNil(t, got.Intent, "expected intent in %q", tt.message)
		assert.Equal(t, tt.want, got.Intent.Intent, "message %q", tt.message)
	}
}

func TestSentimentAndUrgency(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Extract("I am very interested, please call me asap")
	assert.Equal(t, models.SentimentPositive, got.Sentiment)
	assert.Equal(t, models.UrgencyHigh, got.Urgency)

	got = e.Extract("this is too expensive and too far")
	assert.Equal(t, models.SentimentNegative, got.Sentiment)
	assert.Equal(t, models.UrgencyLow, got.Urgency)

	got = e.Extract("I will decide soon")
	assert.Equal(t, models.UrgencyMedium, got.Urgency)
}

func TestExtractContact(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Extract("call me at +201012345678 or ahmed@example.com")
	require.NotNil(t, got.Contact)
	assert.Equal(t, "+201012345678", got.Contact.Phone)
	assert.Equal(t, "ahmed@example.com", got.Contact.Email)

	got = e.Extract("no contact details here")
	assert.Nil(t, got.Contact)
}

func TestExtractConfidence(t *testing.T) {
	e := NewExtractor(nil)

	// budget + location + type + intent = 0.20 + 0.25 + 0.20 + 0.20
	got := e.Extract("I want to buy an apartment in Maadi, budget 2 million EGP")
	assert.InDelta(t, 0.85, got.Confidence, 1e-9)

	// adding size pushes the raw sum to 1.0
	got = e.Extract("I want to buy a 150 sqm apartment in Maadi, budget 2 million EGP")
	assert.InDelta(t, 1.0, got.Confidence, 1e-9)
}

func TestExtractEmptyMessage(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Extract("")
	assert.Nil(t, got.Budget)
	assert.Nil(t, got.Location)
	assert.Nil(t, got.PropertyType)
	assert.Nil(t, got.Intent)
	assert.Equal(t, models.SentimentNeutral, got.Sentiment)
	assert.Equal(t, models.UrgencyLow, got.Urgency)
	assert.Zero(t, got.Confidence)
}

func TestExtractIsDeterministic(t *testing.T) {
	e := NewExtractor(nil)
	msg := "I want to buy a 3 bedroom apartment in Maadi, budget 3.5 million EGP"

	first := e.Extract(msg)
	second := e.Extract(msg)
	assert.Equal(t, first, second)
}
