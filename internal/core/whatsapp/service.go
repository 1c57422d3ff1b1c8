// Package whatsapp is the inbound message adapter. It maintains one
// whatsmeow session and hands inbound text to a handler; it deliberately has
// no send path, because this system never auto-answers customers.
package whatsapp

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	qrcode "github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// InboundMessage is the normalized ingestion payload.
type InboundMessage struct {
	SenderID string
	Content  string
}

type Service struct {
	client *whatsmeow.Client
}

// initStore opens the session store: PostgreSQL when a store URL is given,
// a local SQLite file otherwise.
func initStore(storeURL string) (*sqlstore.Container, error) {
	ctx := context.Background()
	dbLog := waLog.Stdout("Database", "ERROR", true)

	if storeURL != "" {
		log.Println("🌐 Using PostgreSQL WhatsApp session store")
		container, err := sqlstore.New(ctx, "postgres", storeURL, dbLog)
		if err != nil {
			return nil, fmt.Errorf("failed to init postgres store: %w", err)
		}
		if err := container.Upgrade(ctx); err != nil {
			return nil, fmt.Errorf("failed to upgrade postgres schema: %w", err)
		}
		return container, nil
	}

	log.Println("💾 Using local SQLite session store (store.db)")
	rawDB, err := sql.Open("sqlite", "file:store.db?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if _, err := rawDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Printf("⚠️ failed to enable foreign_keys pragma: %v", err)
	}

	container := sqlstore.NewWithDB(rawDB, "sqlite", dbLog)
	if err := container.Upgrade(ctx); err != nil {
		return nil, fmt.Errorf("failed to upgrade sqlite schema: %w", err)
	}
	return container, nil
}

func NewService(storeURL string) (*Service, error) {
	container, err := initStore(storeURL)
	if err != nil {
		return nil, err
	}

	deviceStore, err := container.GetFirstDevice(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, waLog.Stdout("Client", "INFO", true))
	return &Service{client: client}, nil
}

// Connect establishes the session. First-time pairing prints the QR code and
// writes pairing.png next to the binary for scanning.
func (s *Service) Connect() error {
	if s.client.Store.ID == nil {
		qrChan, _ := s.client.GetQRChannel(context.Background())
		if err := s.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}

		for evt := range qrChan {
			switch evt.Event {
			case "code":
				fmt.Println("🔗 Scan this QR code in WhatsApp:", evt.Code)
				if err := qrcode.WriteFile(evt.Code, qrcode.Medium, 256, "pairing.png"); err != nil {
					log.Printf("⚠️ failed to write pairing.png: %v", err)
				} else {
					log.Printf("🖼️ QR code written to %s/pairing.png", mustWd())
				}
			case "success":
				fmt.Println("✅ Paired successfully!")
				return nil
			}
		}
		return nil
	}

	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("failed to reconnect: %w", err)
	}
	fmt.Println("✅ Reconnected to WhatsApp.")
	return nil
}

// Listen registers the inbound handler. Only plain text messages not sent by
// the session owner are forwarded.
func (s *Service) Listen(handler func(InboundMessage)) error {
	if s.client == nil {
		return fmt.Errorf("client not initialized")
	}
	s.client.AddEventHandler(func(evt interface{}) {
		msg, ok := evt.(*events.Message)
		if !ok || msg.Info.IsFromMe {
			return
		}
		content := msg.Message.GetConversation()
		if content == "" && msg.Message.GetExtendedTextMessage() != nil {
			content = msg.Message.GetExtendedTextMessage().GetText()
		}
		if content == "" {
			return
		}
		handler(InboundMessage{
			SenderID: msg.Info.Sender.User,
			Content:  content,
		})
	})
	return nil
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
	fmt.Println("🔌 Disconnected WhatsApp client.")
}

func mustWd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
