package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	checkoutdomain "github.com/gemorahq/gemora/internal/checkout/domain"
	checkoutservice "github.com/gemorahq/gemora/internal/checkout/service"
	"github.com/gemorahq/gemora/internal/config"
	gatewaydomain "github.com/gemorahq/gemora/internal/gateway/domain"
	"github.com/gemorahq/gemora/internal/gateway/drivers"
	"github.com/gemorahq/gemora/internal/gateway/drivers/fake"
	gatewayrepo "github.com/gemorahq/gemora/internal/gateway/repository"
	gatewayservice "github.com/gemorahq/gemora/internal/gateway/service"
	orderdomain "github.com/gemorahq/gemora/internal/order/domain"
	orderrepo "github.com/gemorahq/gemora/internal/order/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	schema := []string{
		`CREATE TABLE orders (
			id BIGINT PRIMARY KEY,
			reference TEXT NOT NULL,
			total_amount NUMERIC(14,2) NOT NULL,
			currency TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE payments (
			id BIGINT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			gateway_id BIGINT NOT NULL,
			provider_reference TEXT,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX ix_payments_order_id ON payments(order_id)`,
		`CREATE TABLE payment_gateways (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			driver TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			config TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX ux_payment_gateways_slug ON payment_gateways(slug)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("schema exec failed: %v", err)
		}
	}

	return db
}

func newCheckoutService(t *testing.T, db *gorm.DB, node *snowflake.Node) checkoutdomain.Service {
	t.Helper()

	gateways := gatewayservice.New(gatewayservice.Params{
		DB:       db,
		Log:      zap.NewNop(),
		Repo:     gatewayrepo.Provide(),
		Registry: drivers.NewRegistry(fake.NewFactory()),
		Cfg:      config.Config{DefaultGatewaySlug: "fake"},
	})
	return checkoutservice.New(checkoutservice.Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		OrderRepo: orderrepo.Provide(),
		Gateways:  gateways,
	})
}

func seedFakeGateway(t *testing.T, db *gorm.DB) snowflake.ID {
	t.Helper()

	now := time.Now().UTC()
	id := snowflake.ID(1)
	err := db.Create(&gatewaydomain.PaymentGateway{
		ID:        id,
		Name:      "Fake",
		Slug:      "fake",
		Driver:    "fake",
		IsActive:  true,
		IsDefault: true,
		Config:    datatypes.JSON(`{}`),
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
	if err != nil {
		t.Fatalf("seed gateway: %v", err)
	}
	return id
}

func seedOrder(t *testing.T, db *gorm.DB, node *snowflake.Node) *orderdomain.Order {
	t.Helper()

	order := &orderdomain.Order{
		ID:          node.Generate(),
		Reference:   "ORD-7001",
		TotalAmount: 2500,
		Currency:    "inr",
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestEnsurePaymentIntentPersistsReference(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	gatewayID := seedFakeGateway(t, db)

	node, err := snowflake.NewNode(5)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	order := seedOrder(t, db, node)
	svc := newCheckoutService(t, db, node)

	resp, err := svc.EnsurePaymentIntent(ctx, order.ID)
	if err != nil {
		t.Fatalf("ensure intent: %v", err)
	}

	wantReference := fmt.Sprintf("pi_fake_%d", order.ID.Int64())
	if resp.ProviderReference != wantReference {
		t.Fatalf("expected %q, got %q", wantReference, resp.ProviderReference)
	}
	if resp.Gateway != "fake" {
		t.Fatalf("expected gateway fake, got %q", resp.Gateway)
	}
	if resp.Currency != "INR" {
		t.Fatalf("expected INR, got %q", resp.Currency)
	}

	var payments []orderdomain.Payment
	if err := db.Find(&payments, "order_id = ?", order.ID).Error; err != nil {
		t.Fatalf("load payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected one payment row, got %d", len(payments))
	}
	if payments[0].ProviderReference != wantReference {
		t.Fatalf("expected stored reference %q, got %q", wantReference, payments[0].ProviderReference)
	}
	if payments[0].GatewayID != gatewayID {
		t.Fatalf("expected gateway id %d, got %d", gatewayID, payments[0].GatewayID)
	}
	if payments[0].Status != orderdomain.PaymentStatusPending {
		t.Fatalf("expected pending status, got %q", payments[0].Status)
	}

	// A second call reuses the stored reference instead of minting a new one.
	again, err := svc.EnsurePaymentIntent(ctx, order.ID)
	if err != nil {
		t.Fatalf("ensure intent again: %v", err)
	}
	if again.ProviderReference != wantReference {
		t.Fatalf("expected stable reference %q, got %q", wantReference, again.ProviderReference)
	}

	var total int64
	if err := db.Model(&orderdomain.Payment{}).Where("order_id = ?", order.ID).Count(&total).Error; err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected one payment row after repeat call, got %d", total)
	}
}

func TestEnsurePaymentIntentUnknownOrder(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedFakeGateway(t, db)

	node, err := snowflake.NewNode(6)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	svc := newCheckoutService(t, db, node)

	if _, err := svc.EnsurePaymentIntent(ctx, snowflake.ID(424242)); !errors.Is(err, orderdomain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestConfigReturnsPublishableKey(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedFakeGateway(t, db)

	node, err := snowflake.NewNode(7)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	svc := newCheckoutService(t, db, node)

	resp, err := svc.Config(ctx)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if resp.Gateway != "fake" {
		t.Fatalf("expected gateway fake, got %q", resp.Gateway)
	}
	if resp.PublishableKey != "pk_fake_gemora" {
		t.Fatalf("unexpected publishable key %q", resp.PublishableKey)
	}
}
