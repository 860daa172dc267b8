package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionOpen(t *testing.T) {
	txn := &Transaction{}
	assert.True(t, txn.Open())

	now := time.Now()
	txn.ReturnedAt = &now
	assert.False(t, txn.Open())
}

func TestTransactionOverdueAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	open := func(due time.Time) *Transaction { return &Transaction{DueAt: due} }

	assert.True(t, open(now.Add(-24*time.Hour)).OverdueAt(now))
	assert.False(t, open(now.Add(24*time.Hour)).OverdueAt(now))
	assert.False(t, open(now).OverdueAt(now), "due exactly now is not overdue")

	closed := open(now.Add(-24 * time.Hour))
	returned := now.Add(-time.Hour)
	closed.ReturnedAt = &returned
	assert.False(t, closed.OverdueAt(now))
}
