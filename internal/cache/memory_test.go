// internal/cache/memory_test.go
package cache

import (
	"testing"
	"time"
)

func TestMemory_PutGetForget(t *testing.T) {
	m := NewMemory()

	if err := m.Put("k", "v", 0); err != nil {
		t.Fatalf("Put() error = %v, want nil", err)
	}
	v, ok, err := m.Get("k")
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}
	if !ok || v != "v" {
		t.Errorf("Get() = %v, %v, want v, true", v, ok)
	}

	if err := m.Forget("k"); err != nil {
		t.Fatalf("Forget() error = %v, want nil", err)
	}
	if _, ok, _ := m.Get("k"); ok {
		t.Error("Get() ok = true after Forget, want false")
	}
}

func TestMemory_MissingKey(t *testing.T) {
	m := NewMemory()
	v, ok, err := m.Get("absent")
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}
	if ok || v != nil {
		t.Errorf("Get(absent) = %v, %v, want nil, false", v, ok)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	m := NewMemory()
	now := time.Now()
	m.SetNow(func() time.Time { return now })

	if err := m.Put("k", 1, 10*time.Second); err != nil {
		t.Fatalf("Put() error = %v, want nil", err)
	}
	if _, ok, _ := m.Get("k"); !ok {
		t.Fatal("Get() ok = false before expiry, want true")
	}

	now = now.Add(11 * time.Second)
	if _, ok, _ := m.Get("k"); ok {
		t.Error("Get() ok = true after expiry, want false")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after lazy sweep, want 0", m.Len())
	}
}

func TestMemory_ZeroTTLNeverExpires(t *testing.T) {
	m := NewMemory()
	now := time.Now()
	m.SetNow(func() time.Time { return now })

	if err := m.Put("k", 1, 0); err != nil {
		t.Fatalf("Put() error = %v, want nil", err)
	}
	now = now.Add(24 * time.Hour)
	if _, ok, _ := m.Get("k"); !ok {
		t.Error("Get() ok = false for no-expiry entry, want true")
	}
}

func TestMemory_LastWriterWins(t *testing.T) {
	m := NewMemory()
	_ = m.Put("k", 1, time.Minute)
	_ = m.Put("k", 2, time.Minute)

	v, ok, _ := m.Get("k")
	if !ok || v != 2 {
		t.Errorf("Get() = %v, %v, want 2, true", v, ok)
	}
}

func TestMemory_ForgetPrefix(t *testing.T) {
	m := NewMemory()
	_ = m.Put("ns:badge:a", 1, 0)
	_ = m.Put("ns:badge:b", 2, 0)
	_ = m.Put("ns:auth:a:u1", true, 0)

	if err := m.ForgetPrefix("ns:badge:"); err != nil {
		t.Fatalf("ForgetPrefix() error = %v, want nil", err)
	}
	if _, ok, _ := m.Get("ns:badge:a"); ok {
		t.Error("badge entry survived prefix clear")
	}
	if _, ok, _ := m.Get("ns:auth:a:u1"); !ok {
		t.Error("auth entry removed by badge prefix clear")
	}
}
