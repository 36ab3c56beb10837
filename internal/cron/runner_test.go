package cronrunner

import (
	"context"
	"errors"
	"testing"

	"calldesk/internal/tradingday"
)

func TestAddRejectsBadSpec(t *testing.T) {
	r := New(nil, context.Background(), tradingday.Location())
	if _, err := r.Add("bad", "not a spec", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestAddAcceptsSecondsSpec(t *testing.T) {
	r := New(nil, context.Background(), tradingday.Location())
	if _, err := r.Add("sweep", "0 5 0 * * *", func(context.Context) error { return errors.New("x") }); err != nil {
		t.Fatalf("err=%v", err)
	}
	if n := len(r.cron.Entries()); n != 1 {
		t.Fatalf("entries=%d", n)
	}
	if loc := r.cron.Location(); loc.String() != tradingday.Location().String() {
		t.Fatalf("location=%s", loc)
	}
}
