package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestAuditStore returns an audit trail store backed by a temporary file.
func newTestAuditStore() (*boltAuditStorage, error) {
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	if err != nil {
		return nil, err
	}
	f.Close()
	testConfig := &Config{
		Audit: AuditConfig{
			FilePath:   f.Name(),
			Timeout:    5 * time.Second,
			BucketName: "test.audit.events",
		},
	}

	client, err := GetBoltDBClient(testConfig)

	return &boltAuditStorage{
		logger: zap.NewNop(),
		client: client,
		config: &testConfig.Audit,
	}, err
}

// closeTestAuditStore closes the temporary store and removes the underlying data file.
func (as *boltAuditStorage) closeTestAuditStore() error {
	defer os.Remove(as.config.FilePath)
	return as.Close()
}

// TestBoltAuditStorage ensures events are recorded and listed back in
// chronological order whatever the recording order was.
func TestBoltAuditStorage(t *testing.T) {
	as, err := newTestAuditStore()
	require.NoError(t, err, "failed in creating a test audit store")
	defer as.closeTestAuditStore()

	base := NewMockClocker().Now()
	later := NewAuditEvent(DeleteOp, BookEntity, 2, base.Add(time.Minute))
	earlier := NewAuditEvent(CreateOp, BookEntity, 1, base)

	// record out of order on purpose.
	require.NoError(t, as.Record(context.TODO(), later))
	require.NoError(t, as.Record(context.TODO(), earlier))

	events, err := as.List(context.TODO())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, earlier.ID, events[0].ID)
	assert.Equal(t, later.ID, events[1].ID)
	assert.Equal(t, CreateOp, events[0].Op)
	assert.Equal(t, DeleteOp, events[1].Op)
}

// TestBoltAuditStorage_EmptyTrail ensures a fresh store lists an empty trail.
func TestBoltAuditStorage_EmptyTrail(t *testing.T) {
	as, err := newTestAuditStore()
	require.NoError(t, err, "failed in creating a test audit store")
	defer as.closeTestAuditStore()

	events, err := as.List(context.TODO())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
