package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/tebexd/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

// mockPendingService implements primary.PendingService for testing
type mockPendingService struct {
	listPendingFn  func(ctx context.Context) ([]*primary.PendingEntry, error)
	showPendingFn  func(ctx context.Context, accountID, channel string) (*primary.PendingEntry, error)
	clearPendingFn func(ctx context.Context, accountID, channel string) error

	lastClearAccount string
	lastClearChannel string
}

func (m *mockPendingService) ListPending(ctx context.Context) ([]*primary.PendingEntry, error) {
	if m.listPendingFn != nil {
		return m.listPendingFn(ctx)
	}
	return []*primary.PendingEntry{}, nil
}

func (m *mockPendingService) ShowPending(ctx context.Context, accountID, channel string) (*primary.PendingEntry, error) {
	if m.showPendingFn != nil {
		return m.showPendingFn(ctx, accountID, channel)
	}
	return &primary.PendingEntry{AccountID: accountID, Channel: channel}, nil
}

func (m *mockPendingService) ClearPending(ctx context.Context, accountID, channel string) error {
	m.lastClearAccount = accountID
	m.lastClearChannel = channel
	if m.clearPendingFn != nil {
		return m.clearPendingFn(ctx, accountID, channel)
	}
	return nil
}

// mockReconcileService implements primary.ReconcileService for testing
type mockReconcileService struct {
	report  *primary.PassReport
	entries []*primary.QueueEntry
	err     error
}

func (m *mockReconcileService) RunPass(ctx context.Context) *primary.PassReport {
	return m.report
}

func (m *mockReconcileService) PreviewQueue(ctx context.Context) ([]*primary.QueueEntry, error) {
	return m.entries, m.err
}

// mockHistoryService implements primary.HistoryService for testing
type mockHistoryService struct {
	entries     []*primary.DeliveryEntry
	err         error
	lastFilters primary.HistoryFilters
}

func (m *mockHistoryService) ListDeliveries(ctx context.Context, filters primary.HistoryFilters) ([]*primary.DeliveryEntry, error) {
	m.lastFilters = filters
	return m.entries, m.err
}

func TestPendingAdapter_List(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		adapter := NewPendingAdapter(&mockPendingService{}, &out)

		if _, err := adapter.List(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out.String(), "No pending commands") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("entries", func(t *testing.T) {
		var out bytes.Buffer
		service := &mockPendingService{
			listPendingFn: func(ctx context.Context) ([]*primary.PendingEntry, error) {
				return []*primary.PendingEntry{{
					Key:       "42_tebex_commands_offline",
					AccountID: "42",
					Channel:   "offline",
					Commands:  []primary.CommandView{{ID: 1, Command: "give {username} diamond"}},
				}}, nil
			},
		}
		adapter := NewPendingAdapter(service, &out)

		entries, err := adapter.List(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry, got %d", len(entries))
		}
		for _, want := range []string{"ACCOUNT", "42", "offline", "42_tebex_commands_offline"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("output missing %q:\n%s", want, out.String())
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		service := &mockPendingService{
			listPendingFn: func(ctx context.Context) ([]*primary.PendingEntry, error) {
				return nil, errors.New("store offline")
			},
		}
		if _, err := NewPendingAdapter(service, &bytes.Buffer{}).List(context.Background()); err == nil {
			t.Error("expected error")
		}
	})
}

func TestPendingAdapter_Show(t *testing.T) {
	var out bytes.Buffer
	service := &mockPendingService{
		showPendingFn: func(ctx context.Context, accountID, channel string) (*primary.PendingEntry, error) {
			return &primary.PendingEntry{
				Key:       "42_tebex_commands_online",
				AccountID: accountID,
				Channel:   channel,
				Commands:  []primary.CommandView{{ID: 7, Command: "lp user {username} parent add vip"}},
			}, nil
		},
	}

	if _, err := NewPendingAdapter(service, &out).Show(context.Background(), "42", "online"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "lp user {username} parent add vip") || !strings.Contains(out.String(), "Account: 42") {
		t.Errorf("output = %q", out.String())
	}
}

func TestPendingAdapter_Clear(t *testing.T) {
	var out bytes.Buffer
	service := &mockPendingService{}

	if err := NewPendingAdapter(service, &out).Clear(context.Background(), "42", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if service.lastClearAccount != "42" || service.lastClearChannel != "" {
		t.Errorf("ClearPending called with %q, %q", service.lastClearAccount, service.lastClearChannel)
	}
	if !strings.Contains(out.String(), "all channels") {
		t.Errorf("output = %q", out.String())
	}

	service.clearPendingFn = func(ctx context.Context, accountID, channel string) error {
		return errors.New("boom")
	}
	if err := NewPendingAdapter(service, &out).Clear(context.Background(), "42", "online"); err == nil {
		t.Error("expected error")
	}
}

func TestQueueAdapter_Preview(t *testing.T) {
	var out bytes.Buffer
	service := &mockReconcileService{entries: []*primary.QueueEntry{{
		AccountID: "42",
		Principal: "Alice",
		Channel:   "offline",
		Commands:  []primary.CommandView{{ID: 1, Command: "give {username} diamond"}},
	}}}

	if _, err := NewQueueAdapter(service, &out).Preview(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "Alice") || !strings.Contains(out.String(), "give {username} diamond") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	service.entries = nil
	_, _ = NewQueueAdapter(service, &out).Preview(context.Background())
	if !strings.Contains(out.String(), "Remote queue is empty") {
		t.Errorf("output = %q", out.String())
	}
}

func TestQueueAdapter_Pass(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var out bytes.Buffer
		service := &mockReconcileService{report: &primary.PassReport{
			PassID:   "p-1",
			Accounts: 2,
			Executed: 3,
			Failed:   1,
			Buffered: 1,
		}}

		if _, err := NewQueueAdapter(service, &out).Pass(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, want := range []string{"Pass p-1 complete", "Executed: 3", "Failed:   1", "Buffered: 1"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("output missing %q:\n%s", want, out.String())
			}
		}
		if strings.Contains(out.String(), "Unrouted") {
			t.Errorf("unexpected Unrouted line:\n%s", out.String())
		}
	})

	t.Run("queue unreachable", func(t *testing.T) {
		service := &mockReconcileService{report: &primary.PassReport{PassID: "p-2", Err: errors.New("503")}}
		if _, err := NewQueueAdapter(service, &bytes.Buffer{}).Pass(context.Background()); err == nil {
			t.Error("expected error")
		}
	})
}

func TestHistoryAdapter_List(t *testing.T) {
	var out bytes.Buffer
	service := &mockHistoryService{entries: []*primary.DeliveryEntry{{
		ID:        1,
		AccountID: "42",
		Principal: "Alice",
		Channel:   "offline",
		CommandID: 1,
		Action:    "flushed",
		Detail:    "give Alice diamond",
		CreatedAt: "2026-01-01 12:00:00",
	}}}

	if _, err := NewHistoryAdapter(service, &out).List(context.Background(), "42", 10); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if service.lastFilters.AccountID != "42" || service.lastFilters.Limit != 10 {
		t.Errorf("filters = %+v", service.lastFilters)
	}
	if !strings.Contains(out.String(), "flushed") || !strings.Contains(out.String(), "give Alice diamond") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	service.entries = nil
	_, _ = NewHistoryAdapter(service, &out).List(context.Background(), "", 0)
	if !strings.Contains(out.String(), "No deliveries recorded") {
		t.Errorf("output = %q", out.String())
	}
}
