package tradingday

import (
	"encoding/json"
	"testing"
	"time"

	"calldesk/internal/apperr"
)

func TestParse_DateOnlyIsISTMidnight(t *testing.T) {
	d, err := Parse("2026-02-06")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	want := time.Date(2026, 2, 5, 18, 30, 0, 0, time.UTC)
	if !d.Time().Equal(want) {
		t.Fatalf("got=%s want=%s", d.Time().Format(time.RFC3339), want.Format(time.RFC3339))
	}
}

func TestParse_IgnoresTimeAndZone(t *testing.T) {
	want, _ := Parse("2026-02-06")
	inputs := []string{
		"2026-02-06T23:59:59Z",
		"2026-02-06T00:00:00-08:00",
		"2026-02-06T10:15:00.123+05:30",
		"2026-02-06 09:00:00",
		" 2026-02-06 ",
	}
	for _, in := range inputs {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) err=%v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Parse(%q)=%s want=%s", in, got.Time(), want.Time())
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{"", "yesterday", "2026-13-01", "2026-02-30", "06/02/2026", "2026-02-06Tgarbage"}
	for _, in := range inputs {
		_, err := Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q) expected error", in)
		}
		if !apperr.Is(err, apperr.KindInvalidDate) {
			t.Fatalf("Parse(%q) kind=%v want invalid_date", in, apperr.KindOf(err))
		}
	}
}

func TestFromTime_UsesISTCalendar(t *testing.T) {
	// 19:00 UTC on Feb 5 is already Feb 6 in India.
	got := FromTime(time.Date(2026, 2, 5, 19, 0, 0, 0, time.UTC))
	if got.String() != "2026-02-06" {
		t.Fatalf("got=%s want=2026-02-06", got)
	}
	got = FromTime(time.Date(2026, 2, 5, 18, 29, 59, 0, time.UTC))
	if got.String() != "2026-02-05" {
		t.Fatalf("got=%s want=2026-02-05", got)
	}
}

func TestNormalizationIsIdempotent(t *testing.T) {
	instants := []time.Time{
		time.Date(2026, 2, 5, 18, 30, 0, 0, time.UTC),
		time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 23, 59, 59, 0, time.FixedZone("PST", -8*3600)),
		time.Date(2024, 2, 29, 12, 0, 0, 0, Location()),
	}
	for _, in := range instants {
		once := FromTime(in)
		twice := FromTime(once.Time())
		if !once.Equal(twice) {
			t.Fatalf("FromTime not idempotent for %s: %s vs %s", in, once.Time(), twice.Time())
		}
		reparsed, err := Parse(once.String())
		if err != nil || !reparsed.Equal(once) {
			t.Fatalf("Parse(String()) mismatch for %s: %v %s", in, err, reparsed.Time())
		}
		local := once.Time().In(Location())
		if local.Hour() != 0 || local.Minute() != 0 || local.Second() != 0 || local.Nanosecond() != 0 {
			t.Fatalf("not IST midnight: %s", local)
		}
	}
}

func TestCalendar_TodayAndDaysAgo(t *testing.T) {
	// 2026-02-06 01:00 IST
	cal := &Calendar{Now: func() time.Time { return time.Date(2026, 2, 5, 19, 30, 0, 0, time.UTC) }}
	if got := cal.Today().String(); got != "2026-02-06" {
		t.Fatalf("today=%s want=2026-02-06", got)
	}
	if got := cal.DaysAgo(7).String(); got != "2026-01-30" {
		t.Fatalf("daysAgo(7)=%s want=2026-01-30", got)
	}
}

func TestDayRange(t *testing.T) {
	start, end, err := DayRange("2026-02-06")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("range=%s want 24h", end.Sub(start))
	}
	if !start.Equal(time.Date(2026, 2, 5, 18, 30, 0, 0, time.UTC)) {
		t.Fatalf("start=%s", start)
	}
}

func TestJSONRoundTripKeepsDay(t *testing.T) {
	d, _ := Parse("2026-02-06")
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if string(raw) != `"2026-02-06T00:00:00+05:30"` {
		t.Fatalf("raw=%s", raw)
	}
	var back Day
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("err=%v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("back=%s want=%s", back, d)
	}
}

func TestScanRenormalizes(t *testing.T) {
	var d Day
	if err := d.Scan(time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("err=%v", err)
	}
	if d.String() != "2026-02-06" {
		t.Fatalf("got=%s want=2026-02-06", d)
	}
	v, err := d.Value()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !v.(time.Time).Equal(time.Date(2026, 2, 5, 18, 30, 0, 0, time.UTC)) {
		t.Fatalf("value=%v", v)
	}
}

func TestParse_OffsetInstantKeepsWrittenDate(t *testing.T) {
	// The written calendar date wins even when the instant falls on another
	// IST day; callers send dates, not instants.
	got, err := Parse("2026-02-05T18:30:00Z")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if got.String() != "2026-02-05" {
		t.Fatalf("day=%s want 2026-02-05", got)
	}
	d, _ := Parse("2026-02-06")
	raw, _ := d.MarshalJSON()
	var back Day
	if err := back.UnmarshalJSON(raw); err != nil || !back.Equal(d) {
		t.Fatalf("wire form %s parsed to %s err=%v", raw, back, err)
	}
}
