package payments

import "encoding/json"

// Customer is a processor-side customer record
type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// CreateCustomerRequest creates a customer against the processor
type CreateCustomerRequest struct {
	Email    string            `json:"email"`
	Name     string            `json:"name,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// LineItem is one priced component of a subscription. Recurring vs
// one-time is determined by the price object on the processor side.
type LineItem struct {
	PriceID  string `json:"price"`
	Quantity int    `json:"quantity"`
}

// CreateSubscriptionRequest creates a subscription with line items
type CreateSubscriptionRequest struct {
	CustomerID string            `json:"customer"`
	Items      []LineItem        `json:"items"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// PaymentIntent carries the client-side confirmation token
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// Invoice is a processor invoice, possibly carrying a payment intent
type Invoice struct {
	ID             string         `json:"id"`
	SubscriptionID string         `json:"subscription"`
	PaymentIntent  *PaymentIntent `json:"payment_intent,omitempty"`
}

// Subscription is a processor-side subscription record
type Subscription struct {
	ID            string   `json:"id"`
	CustomerID    string   `json:"customer"`
	Status        string   `json:"status"`
	LatestInvoice *Invoice `json:"latest_invoice,omitempty"`
}

// Webhook event types handled by the reconciliation path
const (
	EventInvoicePaymentSucceeded = "invoice.payment_succeeded"
	EventSubscriptionDeleted     = "customer.subscription.deleted"
)

// Event is a webhook delivery from the processor. Data.Object is kept
// raw; handlers re-fetch authoritative state from the API instead of
// trusting the payload.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// EventInvoice extracts the invoice reference carried by an invoice event
func (e *Event) EventInvoice() (*Invoice, error) {
	var inv Invoice
	if err := json.Unmarshal(e.Data.Object, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// EventSubscription extracts the subscription reference carried by a
// subscription event
func (e *Event) EventSubscription() (*Subscription, error) {
	var sub Subscription
	if err := json.Unmarshal(e.Data.Object, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
