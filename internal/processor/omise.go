package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// Omise drives charges through the Omise API. A promptpay source backs each
// intent; the charge's authorize URI doubles as the client secret for the
// redirect flow.
type Omise struct {
	client *omise.Client
}

func NewOmise(publicKey, secretKey string) (*Omise, error) {
	if publicKey == "" || secretKey == "" {
		return nil, fmt.Errorf("omise keys are not configured (OMISE_PUBLIC_KEY / OMISE_SECRET_KEY)")
	}
	c, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, err
	}
	return &Omise{client: c}, nil
}

func mapStatus(s string) IntentStatus {
	switch s {
	case "successful":
		return IntentSucceeded
	case "failed", "expired", "reversed":
		return IntentFailed
	default:
		// pending / awaiting_authorize: the webhook settles it
		return IntentPending
	}
}

func (o *Omise) intentFromCharge(ch *omise.Charge) *Intent {
	secret := ch.AuthorizeURI
	if secret == "" {
		secret = ch.ID
	}
	return &Intent{
		ID:           ch.ID,
		ClientSecret: secret,
		Status:       mapStatus(string(ch.Status)),
		Amount:       ch.Amount,
		Currency:     ch.Currency,
	}
}

func (o *Omise) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]interface{}) (*Intent, error) {
	if amount <= 0 || currency == "" {
		return nil, fmt.Errorf("invalid charge params")
	}
	src := &omise.Source{}
	if err := o.client.Do(src, &operations.CreateSource{
		Type:     "promptpay",
		Amount:   amount,
		Currency: currency,
	}); err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}
	ch := &omise.Charge{}
	if err := o.client.Do(ch, &operations.CreateCharge{
		Amount:   amount,
		Currency: currency,
		Source:   src.ID,
		Metadata: metadata,
	}); err != nil {
		return nil, fmt.Errorf("create charge: %w", err)
	}
	return o.intentFromCharge(ch), nil
}

func (o *Omise) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	ch := &omise.Charge{}
	if err := o.client.Do(ch, &operations.RetrieveCharge{ChargeID: id}); err != nil {
		return nil, fmt.Errorf("retrieve charge: %w", err)
	}
	return o.intentFromCharge(ch), nil
}

func (o *Omise) RetrieveEvent(ctx context.Context, id string) (*Event, error) {
	ev := &omise.Event{}
	if err := o.client.Do(ev, &operations.RetrieveEvent{EventID: id}); err != nil {
		return nil, fmt.Errorf("retrieve event: %w", err)
	}
	if ev.Key != "charge.complete" {
		return &Event{ID: id}, nil
	}
	// ev.Data is untyped; round-trip through JSON to read it as a charge
	raw, err := json.Marshal(ev.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal event data: %w", err)
	}
	var ch omise.Charge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return nil, fmt.Errorf("unmarshal charge: %w", err)
	}
	return &Event{
		ID:       id,
		IntentID: ch.ID,
		Paid:     string(ch.Status) == "successful",
	}, nil
}
