// Package events publishes status-change notifications so downstream
// consumers (housekeeping boards, notification workers) see booking and
// payment transitions without polling.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"lalazar/config"
	"lalazar/infras/kafka"
	"lalazar/infras/otel"
	"lalazar/shared/constant"
	"lalazar/shared/timezone"
)

type StatusChange struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type Publisher interface {
	PublishStatusChange(ctx context.Context, change StatusChange) error
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) PublishStatusChange(ctx context.Context, change StatusChange) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishStatusChange")
	defer scope.End()
	defer scope.TraceIfError(err)

	if change.ChangedAt.IsZero() {
		change.ChangedAt = timezone.Now()
	}

	message := kafka.Message{
		Key:   change.Entity + ":" + change.ID,
		Value: change,
	}

	err = p.client.SendMessages(ctx, p.cfg.Kafka.StatusTopic, message)
	if err != nil {
		log.Error().Err(err).Str("entity", change.Entity).Str("id", change.ID).Msg("failed to publish status change")

		return fmt.Errorf("failed to publish status change: %w", err)
	}

	return nil
}
