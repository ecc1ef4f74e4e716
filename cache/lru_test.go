package cache

import (
	"context"
	"reflect"
	"testing"

	"github.com/jbeshir/expertise-predictor/data"
)

func TestLRU_SetGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, err := NewLRU(2)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	want := []data.Expertise{data.Novice, data.Unknown, data.Expert}
	if err := c.Set(ctx, "m1", want); err != nil {
		t.Fatalf("Unexpected error from Set: %s", err)
	}

	var got []data.Expertise
	if err := c.Get(ctx, "m1", &got); err != nil {
		t.Fatalf("Unexpected error from Get: %s", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, was %v", want, got)
	}
}

func TestLRU_Miss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := NewLRU(1)

	var v float64
	if err := c.Get(ctx, "bluh", &v); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss, was %v", err)
	}

	_ = c.Set(ctx, "a", 0.1)
	_ = c.Set(ctx, "b", 0.2)
	if err := c.Get(ctx, "a", &v); err != ErrCacheMiss {
		t.Errorf("Expected oldest entry to be evicted, got %v", err)
	}
	if err := c.Get(ctx, "b", &v); err != nil || v != 0.2 {
		t.Errorf("Expected 0.2, got %g (%v)", v, err)
	}

	if c.Len() != 1 {
		t.Errorf("Expected 1 entry after eviction, had %d entries", c.Len())
	}
}

func TestNewLRU_InvalidSize(t *testing.T) {
	t.Parallel()

	if _, err := NewLRU(0); err == nil {
		t.Error("Expected error, got nil error")
	}
}

func TestLRU_Purge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := NewLRU(4)
	_ = c.Set(ctx, "a", 1)
	_ = c.Set(ctx, "b", 2)

	if err := c.Purge(ctx); err != nil {
		t.Fatalf("Unexpected error from Purge: %s", err)
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty cache after purge, had %d entries", c.Len())
	}
}
