package cron

import (
	"context"
	"testing"
	"time"

	pkgredis "github.com/harrowdigital/printdesk-backend/pkg/redis"
)

type fakeLockStore struct {
	values map[string]string
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{values: map[string]string{}}
}

func (f *fakeLockStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, exists := f.values[key]; exists {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeLockStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return value, nil
}

func (f *fakeLockStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func TestRedisLockAcquireRelease(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisLock(store, "pd:test:lock", time.Minute)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}

	ok, err := lock.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected first acquire to succeed, ok=%v err=%v", ok, err)
	}

	second, err := NewRedisLock(store, "pd:test:lock", time.Minute)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	ok, err = second.Acquire(context.Background())
	if err != nil || ok {
		t.Fatalf("expected second acquire to fail, ok=%v err=%v", ok, err)
	}

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}

	ok, err = second.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected acquire after release to succeed, ok=%v err=%v", ok, err)
	}
}

func TestRedisLockReleaseIgnoresForeignOwner(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisLock(store, "pd:test:lock", time.Minute)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	if _, err := lock.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	// Simulate the TTL expiring and another worker grabbing the lock.
	store.values["pd:test:lock"] = "someone-else"

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if store.values["pd:test:lock"] != "someone-else" {
		t.Fatal("release must not delete a lock it no longer owns")
	}
}

func TestNewRedisLockValidation(t *testing.T) {
	if _, err := NewRedisLock(nil, "key", 0); err == nil {
		t.Fatal("expected error without store")
	}
	if _, err := NewRedisLock(newFakeLockStore(), "", 0); err == nil {
		t.Fatal("expected error without key")
	}
}
