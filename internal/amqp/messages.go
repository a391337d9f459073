package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// TransactionSyncMessage tells the mirror worker to reconcile one ledger row.
// Upserts carry only the ID; the worker fetches the full transaction from the
// database. Deletes embed the identifying fields because by the time the
// worker runs, the local row is already gone.
type TransactionSyncMessage struct {
	Op          string    `json:"op"`
	ID          string    `json:"id"`
	Date        string    `json:"date,omitempty"`
	Description string    `json:"description,omitempty"`
	Amount      string    `json:"amount,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewUpsertMessage(id string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		Op:        OpUpsert,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func NewDeleteMessage(id, date, description, amount string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		Op:          OpDelete,
		ID:          id,
		Date:        date,
		Description: description,
		Amount:      amount,
		Timestamp:   time.Now(),
	}
}

func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Op != OpUpsert && msg.Op != OpDelete {
		return nil, fmt.Errorf("unknown op %q", msg.Op)
	}
	return &msg, nil
}
