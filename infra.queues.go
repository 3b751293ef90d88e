package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
)

// AuditQueue is the queue id carrying mutation audit events.
const AuditQueue = "audit.events"

// Audited operations and entities.
const (
	CreateOp = "create"
	UpdateOp = "update"
	DeleteOp = "delete"

	BookEntity   = "book"
	ReviewEntity = "review"
)

// AuditEvent records one successful mutation of the book/review graph.
type AuditEvent struct {
	ID       string    `json:"id"`
	Op       string    `json:"op"`
	Entity   string    `json:"entity"`
	EntityID int64     `json:"entityId"`
	At       time.Time `json:"at"`
}

// NewAuditEvent builds a uniquely identified audit event.
func NewAuditEvent(op, entity string, entityID int64, at time.Time) AuditEvent {
	id, _ := uuid.NewV4()
	return AuditEvent{
		ID:       id.String(),
		Op:       op,
		Entity:   entity,
		EntityID: entityID,
		At:       at,
	}
}

// Ensure *redisQueue implements Queuer.
var _ Queuer = (*redisQueue)(nil)

// Queuer describes the audit events queue.
type Queuer interface {
	Push(ctx context.Context, qid string, event AuditEvent) error
	Pop(ctx context.Context, qids ...string) (string, AuditEvent, error)
}

// redisQueue represents a queue which implements the Queuer interface.
type redisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) Queuer {
	return &redisQueue{client: client}
}

// Push enqueues an audit event onto the queue identified by qid.
func (q *redisQueue) Push(ctx context.Context, qid string, event AuditEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, qid, eventBytes).Err()
}

// Pop returns the first dequeued audit event from the list of queue ids.
func (q *redisQueue) Pop(ctx context.Context, qids ...string) (string, AuditEvent, error) {
	var event AuditEvent
	var qid string
	infos, err := q.client.BLPop(ctx, 0*time.Second, qids...).Result()
	if err != nil {
		return qid, event, err
	}

	if err = json.Unmarshal([]byte(infos[1]), &event); err != nil {
		return qid, event, err
	}
	qid = infos[0]
	return qid, event, nil
}
