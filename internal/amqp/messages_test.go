package amqp

import (
	"testing"
	"time"
)

func TestNewUpsertMessage(t *testing.T) {
	msg := NewUpsertMessage("tx-123")

	if msg.Op != OpUpsert {
		t.Errorf("Op = %v, want %v", msg.Op, OpUpsert)
	}
	if msg.ID != "tx-123" {
		t.Errorf("ID = %v, want tx-123", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestDeleteMessageCarriesIdentifyingFields(t *testing.T) {
	msg := NewDeleteMessage("tx-123", "2024-12-03", "Groceries", "250.50")

	if msg.Op != OpDelete {
		t.Errorf("Op = %v, want %v", msg.Op, OpDelete)
	}
	if msg.Date != "2024-12-03" || msg.Description != "Groceries" || msg.Amount != "250.50" {
		t.Errorf("delete message missing fields: %+v", msg)
	}
}

func TestTransactionSyncMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &TransactionSyncMessage{
		Op:        OpUpsert,
		ID:        "tx-123",
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := TransactionSyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("TransactionSyncMessageFromJSON() error = %v", err)
	}

	if parsed.Op != msg.Op || parsed.ID != msg.ID {
		t.Errorf("parsed message = %+v, want %+v", parsed, msg)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestTransactionSyncMessage_UnknownOp(t *testing.T) {
	if _, err := TransactionSyncMessageFromJSON([]byte(`{"op": "compact", "id": "tx-1"}`)); err == nil {
		t.Error("unknown op should be rejected")
	}
}

func TestTransactionSyncMessage_InvalidJSON(t *testing.T) {
	if _, err := TransactionSyncMessageFromJSON([]byte(`{"op": 42}`)); err == nil {
		t.Error("invalid JSON should be rejected")
	}
}
