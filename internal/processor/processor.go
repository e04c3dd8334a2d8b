// Package processor abstracts the external payment processor so the
// reconciler can be exercised without the network.
package processor

import "context"

type IntentStatus string

const (
	IntentPending   IntentStatus = "pending"
	IntentSucceeded IntentStatus = "succeeded"
	IntentFailed    IntentStatus = "failed"
)

// Intent is the processor-side handle for one charge attempt. ClientSecret
// is whatever the client needs to finish the flow (an authorize URI for
// redirect rails, an opaque secret for card rails).
type Intent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	Amount       int64 // minor units
	Currency     string
}

// Event is a processor webhook notification resolved back to its intent.
type Event struct {
	ID       string
	IntentID string
	Paid     bool
}

type Processor interface {
	// CreateIntent asks for a charge of amount minor units. Metadata rides
	// along for reconciliation on the processor side.
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]interface{}) (*Intent, error)
	// RetrieveIntent re-reads processor state; callers must treat errors as
	// "unknown outcome", never as success.
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
	// RetrieveEvent re-fetches a webhook event from the processor so a forged
	// request body is never trusted.
	RetrieveEvent(ctx context.Context, id string) (*Event, error)
}
