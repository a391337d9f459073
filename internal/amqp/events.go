package amqp

import (
	"context"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/core"
)

// Events adapts the client to the engine's event publisher port.
type Events struct {
	client *Client
}

func NewEvents(client *Client) *Events {
	return &Events{client: client}
}

func (e *Events) PublishTransactionSync(ctx context.Context, id string) error {
	return e.client.PublishUpsert(ctx, id)
}

func (e *Events) PublishTransactionDelete(ctx context.Context, t core.Transaction) error {
	return e.client.PublishDelete(ctx, t.ID, t.Date, t.Description, t.Amount.String())
}
