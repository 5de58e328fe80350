package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestBoltCacheStoresAndExpiresEntries(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		EntryTTL:        1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	cacheRaw, err := openBolt(dir+"/responses.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	c := cacheRaw.(*boltCache)
	defer c.Close()

	body, found, err := c.Get("http://cp/v2.0/networks")
	if err != nil || found {
		t.Fatalf("expected miss, found=%v body=%q err=%v", found, body, err)
	}

	payload := []byte(`{"networks": []}`)
	if err := c.Put("http://cp/v2.0/networks", payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	body, found, err = c.Get("http://cp/v2.0/networks")
	if err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if !bytes.Equal(body, payload) {
		t.Fatalf("body = %q", body)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	c.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	_, found, err = c.Get("http://cp/v2.0/networks")
	if err != nil {
		t.Fatalf("Get after expiry: %v", err)
	}
	if found {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func TestNewCacheSupportsNoop(t *testing.T) {
	c, err := NewCache("none", "", Options{})
	if err != nil {
		t.Fatalf("NewCache none: %v", err)
	}
	if err := c.Put("k", []byte("v")); err != nil {
		t.Fatalf("noop cache Put: %v", err)
	}
	if _, found, _ := c.Get("k"); found {
		t.Fatalf("noop cache must never hit")
	}
}

func TestNewCacheRejectsUnknownType(t *testing.T) {
	if _, err := NewCache("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unknown cache type")
	}
}
