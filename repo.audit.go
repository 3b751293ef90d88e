package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// AuditStorage persists the mutation audit trail.
type AuditStorage interface {
	Record(ctx context.Context, event AuditEvent) error
	List(ctx context.Context) ([]AuditEvent, error)
}

type boltAuditStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *AuditConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.Audit.FilePath, 0o600, &bolt.Options{Timeout: config.Audit.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the audit database: %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.Audit.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.Audit.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltAuditStorage provides an instance of bolt-based audit trail storage.
func NewBoltAuditStorage(logger *zap.Logger, auditConfig *AuditConfig, client *bolt.DB) AuditStorage {
	return &boltAuditStorage{
		logger: logger,
		client: client,
		config: auditConfig,
	}
}

// Close shuts down the bolt-based audit storage.
func (as *boltAuditStorage) Close() error {
	return as.client.Close()
}

// Record appends an audit event. Keys are time-prefixed so a bucket
// scan walks the trail in chronological order.
func (as *boltAuditStorage) Record(_ context.Context, event AuditEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	key := event.At.UTC().Format("2006-01-02T15:04:05.000000000") + ":" + event.ID
	return as.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(as.config.BucketName)).Put([]byte(key), eventBytes)
	})
}

// List retrieves the full audit trail in chronological order.
func (as *boltAuditStorage) List(_ context.Context) ([]AuditEvent, error) {
	tx, err := as.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := tx.Bucket([]byte(as.config.BucketName)).Cursor()

	events := []AuditEvent{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var event AuditEvent
		if err = json.Unmarshal(v, &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
