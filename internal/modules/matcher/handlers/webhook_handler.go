package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/services"
)

// WebhookHandler receives inbound messages from the WhatsApp Business webhook
// (or any transport that posts the same shapes) and returns the analysis.
type WebhookHandler struct {
	processor   *services.ProcessorService
	verifyToken string
}

func NewWebhookHandler(processor *services.ProcessorService, verifyToken string) *WebhookHandler {
	return &WebhookHandler{processor: processor, verifyToken: verifyToken}
}

// webhookPayload accepts both the WhatsApp Business API envelope and a flat
// test shape {sender_id, content}.
type webhookPayload struct {
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`

	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// Verify answers the webhook subscription handshake.
// @Summary Webhook verification
// @Tags Webhook
// @Produce plain
// @Router /webhook [get]
func (h *WebhookHandler) Verify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		log.Println("✅ Webhook verified")
		return c.SendString(challenge)
	}
	return c.SendStatus(fiber.StatusForbidden)
}

// Receive analyzes every text message in the payload.
// @Summary Receive inbound messages
// @Tags Webhook
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /webhook [post]
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var payload webhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	type inbound struct {
		sender  string
		content string
	}
	var messages []inbound

	if payload.SenderID != "" {
		messages = append(messages, inbound{payload.SenderID, payload.Content})
	}
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "" && msg.Type != "text" {
					continue
				}
				if msg.From == "" || msg.Text.Body == "" {
					continue
				}
				messages = append(messages, inbound{msg.From, msg.Text.Body})
			}
		}
	}

	if len(messages) == 0 {
		return c.JSON(fiber.Map{"status": "ignored", "results": []interface{}{}})
	}

	results := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		result, err := h.processor.ProcessMessage(c.Context(), msg.content, msg.sender)
		if err != nil {
			log.Printf("⚠️ Failed to process message from %s: %v", msg.sender, err)
			continue
		}
		results = append(results, result)
	}

	return c.JSON(fiber.Map{"status": "processed", "results": results})
}
