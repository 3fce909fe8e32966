package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientCreateCustomer(t *testing.T) {
	var gotAuth string
	var gotReq CreateCustomerRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/customers" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(Customer{ID: "cus_123", Email: gotReq.Email})
	}))
	defer server.Close()

	c := NewClient("sk_test", server.URL)
	cust, err := c.CreateCustomer(context.Background(), CreateCustomerRequest{
		Email: "dan@example.com",
		Name:  "Fletcher Construction",
	})
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	if gotAuth != "Bearer sk_test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Email != "dan@example.com" {
		t.Errorf("request email = %q", gotReq.Email)
	}
	if cust.ID != "cus_123" {
		t.Errorf("customer ID = %q, want cus_123", cust.ID)
	}
}

func TestClientCreateSubscription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreateSubscriptionRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Items) != 2 {
			t.Errorf("items = %d, want 2", len(req.Items))
		}
		json.NewEncoder(w).Encode(Subscription{
			ID:         "sub_123",
			CustomerID: req.CustomerID,
			Status:     "incomplete",
			LatestInvoice: &Invoice{
				ID:            "in_123",
				PaymentIntent: &PaymentIntent{ClientSecret: "secret_123"},
			},
		})
	}))
	defer server.Close()

	c := NewClient("sk_test", server.URL)
	sub, err := c.CreateSubscription(context.Background(), CreateSubscriptionRequest{
		CustomerID: "cus_123",
		Items: []LineItem{
			{PriceID: "price_core", Quantity: 1},
			{PriceID: "price_setup", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateSubscription() error = %v", err)
	}
	if sub.ID != "sub_123" || sub.LatestInvoice.PaymentIntent.ClientSecret != "secret_123" {
		t.Errorf("subscription = %+v", sub)
	}
}

func TestClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such customer"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient("sk_test", server.URL)
	if _, err := c.GetCustomer(context.Background(), "cus_missing"); err == nil {
		t.Error("GetCustomer() expected error on 404")
	}
}

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"id":"evt_1","type":"invoice.payment_succeeded"}`)

	sig := Sign(secret, body)

	tests := []struct {
		name      string
		secret    string
		body      []byte
		signature string
		want      bool
	}{
		{name: "valid", secret: secret, body: body, signature: sig, want: true},
		{name: "wrong secret", secret: "whsec_other", body: body, signature: sig, want: false},
		{name: "tampered body", secret: secret, body: []byte(`{"id":"evt_2"}`), signature: sig, want: false},
		{name: "empty signature", secret: secret, body: body, signature: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifySignature(tt.secret, tt.body, tt.signature); got != tt.want {
				t.Errorf("VerifySignature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseEvent(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"id":"evt_1","type":"invoice.payment_succeeded","data":{"object":{"id":"in_1","subscription":"sub_1"}}}`)

	ev, err := ParseEvent(secret, body, Sign(secret, body))
	if err != nil {
		t.Fatalf("ParseEvent() error = %v", err)
	}
	if ev.ID != "evt_1" || ev.Type != EventInvoicePaymentSucceeded {
		t.Errorf("event = %+v", ev)
	}

	inv, err := ev.EventInvoice()
	if err != nil {
		t.Fatalf("EventInvoice() error = %v", err)
	}
	if inv.SubscriptionID != "sub_1" {
		t.Errorf("SubscriptionID = %q, want sub_1", inv.SubscriptionID)
	}

	if _, err := ParseEvent(secret, body, "bad-signature"); err == nil {
		t.Error("ParseEvent() accepted invalid signature")
	}
	if _, err := ParseEvent(secret, []byte("not json"), Sign(secret, []byte("not json"))); err == nil {
		t.Error("ParseEvent() accepted malformed payload")
	}
}
