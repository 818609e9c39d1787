// internal/service/payment/service_test.go
package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lingvo-service/internal/domain/payment"
	domain "lingvo-service/internal/domain/pricing"
	"lingvo-service/internal/service/pricing"
	"lingvo-service/internal/service/promo"

	"go.uber.org/zap"
)

type memStore struct {
	payments map[string]*payment.Payment
}

func newMemStore() *memStore {
	return &memStore{payments: make(map[string]*payment.Payment)}
}

func (m *memStore) Create(_ context.Context, p *payment.Payment) error {
	cp := *p
	m.payments[p.ID] = &cp
	return nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*payment.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) MarkPaid(_ context.Context, id string, paidAt time.Time) (*payment.Payment, error) {
	p, ok := m.payments[id]
	if !ok || p.Status != payment.StatusPending {
		return nil, errors.New("not found")
	}
	p.Status = payment.StatusPaid
	p.PaidAt = &paidAt
	cp := *p
	return &cp, nil
}

type captureNotifier struct {
	events []payment.StatusEvent
}

func (n *captureNotifier) NotifyPayment(_ int64, event payment.StatusEvent) {
	n.events = append(n.events, event)
}

type stubInvoices struct {
	link string
	err  error
}

func (s *stubInvoices) CreateInvoiceLink(context.Context, string, string, string, int64) (string, error) {
	return s.link, s.err
}

func newTestService(t *testing.T, store *memStore, notifier *captureNotifier, invoices InvoiceCreator) *Service {
	t.Helper()
	logger := zap.NewNop()

	promos, err := promo.NewService(context.Background(), nil, logger)
	if err != nil {
		t.Fatalf("promo.NewService: %v", err)
	}
	pricingSvc := pricing.NewService(pricing.NewProjector(0), logger)

	return NewService(
		store, pricingSvc, promos, notifier, nil, invoices,
		"https://pay.test/{payment_id}?return={return_url}", logger,
	)
}

func TestCreatePaymentAppliesPromo(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &captureNotifier{}, &stubInvoices{})

	resp, err := svc.CreatePayment(context.Background(), 42, domain.CreatePaymentRequest{
		Product:   domain.DurationMonth,
		ReturnURL: "https://t.me/app",
		Cohort:    domain.CohortNewUser,
		PromoCode: "welcome25",
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	p := store.payments[resp.PaymentID]
	if p == nil {
		t.Fatalf("payment %s not persisted", resp.PaymentID)
	}
	// new_user month price 20930, WELCOME25 takes another 25%.
	if p.AmountKopecks != 15698 {
		t.Errorf("amount = %d, want 15698", p.AmountKopecks)
	}
	if p.PromoCode == nil || *p.PromoCode != "WELCOME25" {
		t.Errorf("promo code not recorded: %v", p.PromoCode)
	}
	if !strings.Contains(resp.PaymentURL, resp.PaymentID) {
		t.Errorf("payment URL %q does not embed payment id", resp.PaymentURL)
	}
	if !strings.Contains(resp.PaymentURL, "https://t.me/app") {
		t.Errorf("payment URL %q does not embed return url", resp.PaymentURL)
	}
}

func TestCreatePaymentIgnoresInvalidPromo(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &captureNotifier{}, &stubInvoices{})

	// WELCOME25 is new_user only; a churned caller keeps the plain price.
	resp, err := svc.CreatePayment(context.Background(), 42, domain.CreatePaymentRequest{
		Product:   domain.DurationMonth,
		ReturnURL: "https://t.me/app",
		Cohort:    domain.CohortChurned,
		PromoCode: "WELCOME25",
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	p := store.payments[resp.PaymentID]
	if p.AmountKopecks != 14950 {
		t.Errorf("amount = %d, want churned month price 14950", p.AmountKopecks)
	}
	if p.PromoCode != nil {
		t.Errorf("invalid promo code should not be recorded, got %q", *p.PromoCode)
	}
}

func TestHandleWebhookSettlesAndNotifies(t *testing.T) {
	store := newMemStore()
	notifier := &captureNotifier{}
	svc := newTestService(t, store, notifier, &stubInvoices{})

	resp, err := svc.CreatePayment(context.Background(), 7, domain.CreatePaymentRequest{
		Product:   domain.DurationYear,
		ReturnURL: "https://t.me/app",
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	err = svc.HandleWebhook(context.Background(), payment.WebhookRequest{
		PaymentID: resp.PaymentID,
		EventID:   "evt-1",
		Status:    "succeeded",
	})
	if err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	p := store.payments[resp.PaymentID]
	if p.Status != payment.StatusPaid {
		t.Errorf("status = %s, want paid", p.Status)
	}
	if p.PaidAt == nil {
		t.Error("paid_at not set")
	}
	if len(notifier.events) != 1 {
		t.Fatalf("got %d events, want 1", len(notifier.events))
	}
	if notifier.events[0].Status != payment.StatusPaid || notifier.events[0].PaymentID != resp.PaymentID {
		t.Errorf("unexpected event: %+v", notifier.events[0])
	}
}

func TestHandleWebhookFailureNotifiesWithoutSettling(t *testing.T) {
	store := newMemStore()
	notifier := &captureNotifier{}
	svc := newTestService(t, store, notifier, &stubInvoices{})

	resp, err := svc.CreatePayment(context.Background(), 7, domain.CreatePaymentRequest{
		Product:   domain.DurationQuarter,
		ReturnURL: "https://t.me/app",
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	err = svc.HandleWebhook(context.Background(), payment.WebhookRequest{
		PaymentID: resp.PaymentID,
		EventID:   "evt-2",
		Status:    "failed",
	})
	if err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if got := store.payments[resp.PaymentID].Status; got != payment.StatusPending {
		t.Errorf("status = %s, want pending", got)
	}
	if len(notifier.events) != 1 || notifier.events[0].Status != payment.StatusFailed {
		t.Fatalf("expected one failed event, got %+v", notifier.events)
	}
}

func TestCreateStarsPayment(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &captureNotifier{}, &stubInvoices{link: "https://t.me/invoice/abc"})

	resp := svc.CreateStarsPayment(context.Background(), 9, domain.CreateStarsPaymentRequest{
		Product:      domain.DurationMonth,
		PriceInStars: 166,
		Description:  "Подписка на месяц",
	})
	if !resp.Success {
		t.Fatalf("stars payment failed: %s", resp.Error)
	}
	if resp.InvoiceURL != "https://t.me/invoice/abc" {
		t.Errorf("invoice url = %q", resp.InvoiceURL)
	}

	var stored *payment.Payment
	for _, p := range store.payments {
		stored = p
	}
	if stored == nil {
		t.Fatal("stars payment not persisted")
	}
	if stored.Currency != string(domain.CurrencyStars) || stored.AmountKopecks != 166 {
		t.Errorf("stored %s %d, want XTR 166", stored.Currency, stored.AmountKopecks)
	}
}

func TestCreateStarsPaymentInvoiceError(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, &captureNotifier{}, &stubInvoices{err: errors.New("bot api down")})

	resp := svc.CreateStarsPayment(context.Background(), 9, domain.CreateStarsPaymentRequest{
		Product:      domain.DurationMonth,
		PriceInStars: 166,
		Description:  "Подписка на месяц",
	})
	if resp.Success {
		t.Fatal("expected failure when invoice creation errors")
	}
	if resp.Error == "" {
		t.Error("expected error message")
	}
}
