package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gemorahq/gemora/internal/config"
	"github.com/gemorahq/gemora/internal/gateway/domain"
	orderdomain "github.com/gemorahq/gemora/internal/order/domain"
	"gorm.io/datatypes"
)

func newTestDriver(t *testing.T, baseURL string) *Driver {
	t.Helper()

	holder, err := config.NewCheckoutConfigHolder()
	if err != nil {
		t.Fatalf("checkout config: %v", err)
	}

	gateway := &domain.PaymentGateway{
		Slug:   "stripe",
		Driver: "stripe",
		Config: datatypes.JSON(`{"secret_key":"sk_test_123","publishable_key":"pk_test_123"}`),
	}

	driver, err := NewFactory(holder, time.Second).New(gateway)
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}

	d := driver.(*Driver)
	d.client.baseURL = baseURL
	return d
}

func testOrder() *orderdomain.Order {
	return &orderdomain.Order{
		ID:          snowflake.ID(900001),
		Reference:   "ORD-1001",
		TotalAmount: 1234.50,
		Currency:    "INR",
	}
}

func TestEnsurePaymentIntentCreates(t *testing.T) {
	order := testOrder()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/payment_intents" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "order:"+order.ID.String() {
			t.Errorf("unexpected idempotency key %q", got)
		}

		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("amount"); got != "123450" {
			t.Errorf("expected amount in minor units 123450, got %q", got)
		}
		if got := r.PostForm.Get("currency"); got != "inr" {
			t.Errorf("expected lowercase currency inr, got %q", got)
		}
		if got := r.PostForm.Get("description"); got != "Gemora order ORD-1001" {
			t.Errorf("unexpected description %q", got)
		}
		if got := r.PostForm.Get("statement_descriptor"); got != "GEMORA JEWELLERY" {
			t.Errorf("unexpected statement descriptor %q", got)
		}
		if got := r.PostForm.Get("metadata[order_id]"); got != order.ID.String() {
			t.Errorf("unexpected order id metadata %q", got)
		}
		if got := r.PostForm.Get("metadata[order_reference]"); got != "ORD-1001" {
			t.Errorf("unexpected order reference metadata %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"pi_123","client_secret":"pi_123_secret_abc","status":"requires_payment_method","amount":123450,"currency":"inr"}`)
	}))
	defer server.Close()

	driver := newTestDriver(t, server.URL)

	intent, err := driver.EnsurePaymentIntent(context.Background(), order, nil)
	if err != nil {
		t.Fatalf("ensure intent: %v", err)
	}
	if intent.ProviderReference != "pi_123" {
		t.Fatalf("expected pi_123, got %q", intent.ProviderReference)
	}
	if intent.ClientSecret != "pi_123_secret_abc" {
		t.Fatalf("unexpected client secret %q", intent.ClientSecret)
	}
	if intent.Amount != 123450 {
		t.Fatalf("expected provider minor units 123450, got %v", intent.Amount)
	}
	if intent.Currency != "INR" {
		t.Fatalf("expected INR, got %q", intent.Currency)
	}
}

func TestEnsurePaymentIntentUpdatesExisting(t *testing.T) {
	order := testOrder()
	payment := &orderdomain.Payment{
		OrderID:           order.ID,
		ProviderReference: "pi_123",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/payment_intents/pi_123" {
			t.Errorf("expected update on the stored intent, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "" {
			t.Errorf("update must not carry an idempotency key, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"pi_123","client_secret":"pi_123_secret_abc","status":"requires_payment_method","amount":123450,"currency":"inr"}`)
	}))
	defer server.Close()

	driver := newTestDriver(t, server.URL)

	intent, err := driver.EnsurePaymentIntent(context.Background(), order, payment)
	if err != nil {
		t.Fatalf("ensure intent: %v", err)
	}
	if intent.ProviderReference != "pi_123" {
		t.Fatalf("expected the same intent back, got %q", intent.ProviderReference)
	}
}

func TestEnsurePaymentIntentWrapsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		fmt.Fprint(w, `{"error":{"message":"Your card was declined."}}`)
	}))
	defer server.Close()

	driver := newTestDriver(t, server.URL)

	_, err := driver.EnsurePaymentIntent(context.Background(), testOrder(), nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	var providerErr *domain.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if providerErr.Gateway != "stripe" {
		t.Fatalf("unexpected gateway %q", providerErr.Gateway)
	}
	if providerErr.Message != "Your card was declined." {
		t.Fatalf("unexpected message %q", providerErr.Message)
	}
}

func TestRetrieveIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/v1/payment_intents/pi_123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"pi_123","status":"succeeded","amount":123450,"currency":"inr"}`)
	}))
	defer server.Close()

	driver := newTestDriver(t, server.URL)

	status, err := driver.RetrieveIntent(context.Background(), "pi_123")
	if err != nil {
		t.Fatalf("retrieve intent: %v", err)
	}
	if status.Status != "succeeded" {
		t.Fatalf("unexpected status %q", status.Status)
	}
	if status.Currency != "INR" {
		t.Fatalf("expected INR, got %q", status.Currency)
	}
}

func TestFactoryRejectsMissingSecretKey(t *testing.T) {
	holder, err := config.NewCheckoutConfigHolder()
	if err != nil {
		t.Fatalf("checkout config: %v", err)
	}

	_, err = NewFactory(holder, time.Second).New(&domain.PaymentGateway{
		Slug:   "stripe",
		Driver: "stripe",
		Config: datatypes.JSON(`{"publishable_key":"pk_test_123"}`),
	})
	if !errors.Is(err, domain.ErrMissingSecretKey) {
		t.Fatalf("expected ErrMissingSecretKey, got %v", err)
	}
}

func TestPublishableKeyMissing(t *testing.T) {
	holder, err := config.NewCheckoutConfigHolder()
	if err != nil {
		t.Fatalf("checkout config: %v", err)
	}

	driver, err := NewFactory(holder, time.Second).New(&domain.PaymentGateway{
		Slug:   "stripe",
		Driver: "stripe",
		Config: datatypes.JSON(`{"secret_key":"sk_test_123"}`),
	})
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}

	if _, err := driver.PublishableKey(); !errors.Is(err, domain.ErrMissingPublishableKey) {
		t.Fatalf("expected ErrMissingPublishableKey, got %v", err)
	}
}
