package app

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/example/tebexd/internal/core/delivery"
)

func TestCommandBuffer_RoundTrip(t *testing.T) {
	store := newMemoryStore()
	buffer := NewCommandBuffer(store)
	ctx := context.Background()

	cmds := []delivery.Command{
		cmd(1, "give {username} diamond"),
		{ID: 2, Template: "say hi", Conditions: []byte(`{"delay":5}`)},
	}
	if err := buffer.Save(ctx, "42", delivery.ChannelOffline, cmds); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, ok := store.data["42_tebex_commands_offline"]; !ok {
		t.Fatalf("expected key 42_tebex_commands_offline, have %v", store.snapshot())
	}

	got, err := buffer.Load(ctx, "42", delivery.ChannelOffline)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, cmds) {
		t.Errorf("Load = %+v, want %+v", got, cmds)
	}

	other, err := buffer.Load(ctx, "42", delivery.ChannelOnline)
	if err != nil || other != nil {
		t.Errorf("online channel = %v, %v, want empty", other, err)
	}
}

func TestCommandBuffer_SaveOverwrites(t *testing.T) {
	buffer := NewCommandBuffer(newMemoryStore())
	ctx := context.Background()

	_ = buffer.Save(ctx, "42", delivery.ChannelOnline, []delivery.Command{cmd(1, "a")})
	_ = buffer.Save(ctx, "42", delivery.ChannelOnline, []delivery.Command{cmd(2, "b")})

	got, _ := buffer.Load(ctx, "42", delivery.ChannelOnline)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Load = %+v, want only command 2", got)
	}
}

func TestCommandBuffer_ClearIsIdempotent(t *testing.T) {
	store := newMemoryStore()
	buffer := NewCommandBuffer(store)
	ctx := context.Background()

	_ = buffer.Save(ctx, "42", delivery.ChannelOffline, []delivery.Command{cmd(1, "a")})

	for i := 0; i < 2; i++ {
		if err := buffer.Clear(ctx, "42", delivery.ChannelOffline); err != nil {
			t.Fatalf("Clear #%d failed: %v", i+1, err)
		}
	}

	got, err := buffer.Load(ctx, "42", delivery.ChannelOffline)
	if err != nil || len(got) != 0 {
		t.Errorf("Load after Clear = %v, %v, want empty", got, err)
	}
	if len(store.data) != 0 {
		t.Errorf("store not empty: %v", store.snapshot())
	}
}

func TestCommandBuffer_SaveEmptyClears(t *testing.T) {
	store := newMemoryStore()
	buffer := NewCommandBuffer(store)
	ctx := context.Background()

	_ = buffer.Save(ctx, "42", delivery.ChannelOffline, []delivery.Command{cmd(1, "a")})
	if err := buffer.Save(ctx, "42", delivery.ChannelOffline, nil); err != nil {
		t.Fatalf("Save(nil) failed: %v", err)
	}
	if len(store.data) != 0 {
		t.Errorf("expected empty buffer to be removed, have %v", store.snapshot())
	}
}

func TestCommandBuffer_CorruptPayloadIsDataLoss(t *testing.T) {
	store := newMemoryStore()
	store.data["42_tebex_commands_offline"] = []byte("{not json")
	buffer := NewCommandBuffer(store)

	got, err := buffer.Load(context.Background(), "42", delivery.ChannelOffline)
	if err != nil {
		t.Fatalf("expected corrupt payload to load as empty, got error %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load = %v, want empty", got)
	}
}

func TestCommandBuffer_StoreErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("get", func(t *testing.T) {
		store := newMemoryStore()
		store.getErr = errBoom
		_, err := NewCommandBuffer(store).Load(ctx, "42", delivery.ChannelOffline)
		if !errors.Is(err, errBoom) {
			t.Errorf("Load error = %v, want wrapped boom", err)
		}
	})

	t.Run("set", func(t *testing.T) {
		store := newMemoryStore()
		store.setErr = errBoom
		err := NewCommandBuffer(store).Save(ctx, "42", delivery.ChannelOffline, []delivery.Command{cmd(1, "a")})
		if !errors.Is(err, errBoom) {
			t.Errorf("Save error = %v, want wrapped boom", err)
		}
	})
}

func TestCommandBuffer_Pending(t *testing.T) {
	store := newMemoryStore()
	buffer := NewCommandBuffer(store)
	ctx := context.Background()

	_ = buffer.Save(ctx, "42", delivery.ChannelOffline, []delivery.Command{cmd(1, "a")})
	_ = buffer.Save(ctx, "7", delivery.ChannelOnline, []delivery.Command{cmd(2, "b"), cmd(3, "c")})
	store.data["unrelated"] = []byte("x")

	batches, err := buffer.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("Pending = %d batches, want 2", len(batches))
	}
	if batches[0].Account != "42" || batches[0].Channel != delivery.ChannelOffline {
		t.Errorf("first batch = %+v", batches[0])
	}
	if batches[1].Account != "7" || len(batches[1].Commands) != 2 {
		t.Errorf("second batch = %+v", batches[1])
	}
}
