package main

import (
	"context"

	"go.uber.org/zap"
)

type Consumer interface {
	Consume(ctx context.Context, qids ...string) error
}

type auditConsumer struct {
	logger *zap.Logger
	queue  Queuer
	store  AuditStorage
}

// NewAuditConsumer drains audit events from the queue into the trail store.
func NewAuditConsumer(logger *zap.Logger, q Queuer, store AuditStorage) Consumer {
	return &auditConsumer{logger, q, store}
}

func (ac *auditConsumer) Consume(ctx context.Context, qids ...string) error {
	var event AuditEvent
	var err error
	var qid string
	for {
		qid, event, err = ac.queue.Pop(ctx, qids...)
		if err != nil && ctx.Err() != nil {
			ac.logger.Info("consumer: queue pop call: context is done: exit", zap.String("reason", ctx.Err().Error()))
			return nil
		}

		if err != nil {
			ac.logger.Error("consumer: error on queue pop call", zap.Error(err))
			continue
		}

		if qid != AuditQueue {
			ac.logger.Warn("consumer: received event on unknown queue id", zap.String("qid", qid), zap.Any("event", event))
			continue
		}

		if err = ac.store.Record(ctx, event); err != nil {
			ac.logger.Error("consumer: failed to record audit event", zap.Any("event", event), zap.Error(err))
		}
	}
}
