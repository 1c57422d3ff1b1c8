package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystalpower/wa-property-matcher/internal/core/events"
	"github.com/crystalpower/wa-property-matcher/internal/core/extract"
	"github.com/crystalpower/wa-property-matcher/internal/core/match"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/services"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/stores"
)

func newWebhookApp(t *testing.T) *fiber.App {
	t.Helper()
	processor := services.NewProcessorService(
		extract.NewExtractor(nil),
		match.NewEngine(match.DefaultWeights(), 0.75, 10),
		stores.NewInventoryStore(),
		stores.NewRequirementStore(),
		events.NewBus(),
		nil, nil,
		time.Hour,
	)
	t.Cleanup(processor.Close)

	handler := NewWebhookHandler(processor, "secret-token")
	app := fiber.New()
	app.Get("/webhook", handler.Verify)
	app.Post("/webhook", handler.Receive)
	return app
}

func TestWebhookVerify(t *testing.T) {
	app := newWebhookApp(t)

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "12345", string(body))
}

func TestWebhookVerifyRejectsBadToken(t *testing.T) {
	app := newWebhookApp(t)

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestWebhookReceiveFlatShape(t *testing.T) {
	app := newWebhookApp(t)

	payload := `{"sender_id": "201012345678", "content": "I want to buy an apartment in Maadi, budget 2 million EGP"}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status  string `json:"status"`
		Results []struct {
			DemandAnalysis struct {
				Budget *struct {
					Amount float64 `json:"amount"`
				} `json:"budget"`
			} `json:"demandAnalysis"`
		} `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "processed", body.Status)
	require.Len(t, body.Results, 1)
	require.NotNil(t, body.Results[0].DemandAnalysis.Budget)
	assert.Equal(t, 2_000_000.0, body.Results[0].DemandAnalysis.Budget.Amount)
}

func TestWebhookReceiveBusinessEnvelope(t *testing.T) {
	app := newWebhookApp(t)

	payload := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [
						{"from": "201012345678", "type": "text", "text": {"body": "villa in Zamalek"}},
						{"from": "201012345678", "type": "image", "text": {"body": ""}}
					]
				}
			}]
		}]
	}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status  string            `json:"status"`
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "processed", body.Status)
	// The image message is skipped; only the text one produces a result.
	assert.Len(t, body.Results, 1)
}

func TestWebhookReceiveEmptyPayload(t *testing.T) {
	app := newWebhookApp(t)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ignored", body.Status)
}
