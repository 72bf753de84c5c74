package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"mediasend/internal/config"
	"mediasend/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher is a struct to interact with nats. It carries two concerns: room
// messages go through JetStream so they survive the broker, upload lifecycle
// events are fire-and-forget on core NATS.
type Publisher struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
}

// NewPublisher creates a new publisher and ensures the message stream exists
func NewPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {

	opts := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{cfg.MessageSubject + ".>"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	return &Publisher{
		conn:   conn,
		js:     js,
		config: cfg,
		logger: logger,
	}, nil
}

type roomMessage struct {
	RoomID   string                 `json:"room_id"`
	ThreadID string                 `json:"thread_id,omitempty"`
	Content  *domain.MessageContent `json:"content"`
}

// SendMessage publishes the message to the room's subject and returns the
// stream sequence as the event ID.
func (p *Publisher) SendMessage(ctx context.Context, roomID, threadID string, content *domain.MessageContent) (string, error) {
	data, err := json.Marshal(roomMessage{RoomID: roomID, ThreadID: threadID, Content: content})
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", p.config.MessageSubject, roomID)
	ack, err := p.js.Publish(ctx, subject, data)
	if err != nil {
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	return fmt.Sprintf("%s/%d", ack.Stream, ack.Sequence), nil
}

func (p *Publisher) publishEvent(eventType domain.UploadEventType, u *domain.Upload, failure error) {
	event := domain.NewUploadEvent(eventType, u)
	if failure != nil {
		event.Error = domain.FailureMessage(u.FileName, failure)
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal upload event", "error", err)
		return
	}

	subject := fmt.Sprintf("%s.%s", p.config.EventSubject, u.RoomID)
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("failed to publish upload event", "type", eventType, "error", err)
	}
}

func (p *Publisher) UploadStarted(u *domain.Upload)  { p.publishEvent(domain.UploadEventStarted, u, nil) }
func (p *Publisher) UploadProgress(u *domain.Upload) { p.publishEvent(domain.UploadEventProgress, u, nil) }
func (p *Publisher) UploadFinished(u *domain.Upload) { p.publishEvent(domain.UploadEventFinished, u, nil) }
func (p *Publisher) UploadCanceled(u *domain.Upload) { p.publishEvent(domain.UploadEventCanceled, u, nil) }

func (p *Publisher) UploadFailed(u *domain.Upload, err error) {
	p.publishEvent(domain.UploadEventFailed, u, err)
}

// Close graceful shutdown
func (p *Publisher) Close() error {
	if p.conn != nil {
		if err := p.conn.Drain(); err != nil {
			return err
		}
	}
	return nil
}
