package lock

import (
	"context"
	"testing"
	"time"
)

func TestNoopAlwaysGrants(t *testing.T) {
	var l Locker = Noop{}
	for i := 0; i < 3; i++ {
		release, err := l.Acquire(context.Background(), "call:1")
		if err != nil {
			t.Fatalf("acquire: %v", err)
		}
		if err := release(context.Background()); err != nil {
			t.Fatalf("release: %v", err)
		}
	}
}

func TestRedisLockerWithoutClientFallsBack(t *testing.T) {
	var l *RedisLocker
	release, err := l.Acquire(context.Background(), "call:1")
	if err != nil || release == nil {
		t.Fatalf("nil locker should grant: err=%v", err)
	}
}

func TestRedisLockerKey(t *testing.T) {
	l := &RedisLocker{Prefix: "calldesk:lock:", TTL: time.Second}
	if got := l.Key("call:42"); got != "calldesk:lock:call:42" {
		t.Fatalf("key=%s", got)
	}
}
