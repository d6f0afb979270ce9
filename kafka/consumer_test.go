package kafka

import (
	"context"
	"errors"
	"testing"

	"trendpulse/types"
)

func TestTypedMessageHandler(t *testing.T) {
	var processed []types.Row
	h := &TypedMessageHandler[types.Row]{
		Validate: func(r *types.Row) bool { return r.PostID != "" },
		Process: func(_ context.Context, r *types.Row) error {
			processed = append(processed, *r)
			return nil
		},
	}

	mark, err := h.HandleMessage(context.Background(), []byte(`{"platform":"twitter","post_id":"1"}`))
	if err != nil || !mark {
		t.Fatalf("valid message: mark=%v err=%v", mark, err)
	}
	if len(processed) != 1 || processed[0].PostID != "1" {
		t.Fatalf("processed = %+v", processed)
	}
}

func TestTypedMessageHandlerInvalidJSON(t *testing.T) {
	h := &TypedMessageHandler[types.Row]{AlwaysMark: true}
	mark, err := h.HandleMessage(context.Background(), []byte(`{broken`))
	if err != nil {
		t.Fatalf("decode failure should not error: %v", err)
	}
	if !mark {
		t.Fatal("AlwaysMark should mark undecodable messages")
	}
}

func TestTypedMessageHandlerValidationFailure(t *testing.T) {
	h := &TypedMessageHandler[types.Row]{
		Validate: func(r *types.Row) bool { return false },
	}
	if mark, _ := h.HandleMessage(context.Background(), []byte(`{}`)); mark {
		t.Fatal("failed validation should not mark without AlwaysMark")
	}
}

func TestTypedMessageHandlerProcessError(t *testing.T) {
	h := &TypedMessageHandler[types.Row]{
		Process: func(context.Context, *types.Row) error { return errors.New("boom") },
	}
	mark, err := h.HandleMessage(context.Background(), []byte(`{"post_id":"1"}`))
	if err == nil || mark {
		t.Fatalf("process error should propagate unmarked: mark=%v err=%v", mark, err)
	}
}
