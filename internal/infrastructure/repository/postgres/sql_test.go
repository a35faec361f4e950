package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get league: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation leagues does not exist")) {
		t.Fatalf("expected unrelated error to be reported")
	}
}

func TestBatches(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	got := batches(items, 2)
	if len(got) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(got))
	}
	if len(got[2]) != 1 || got[2][0] != 5 {
		t.Fatalf("unexpected last batch: %v", got[2])
	}
	if len(batches([]int(nil), 2)) != 0 {
		t.Fatalf("expected no batches for empty input")
	}
}

func TestDecodeLine(t *testing.T) {
	line, err := decodeLine([]byte(`{"hits":2,"innings_pitched":6.667}`))
	if err != nil {
		t.Fatalf("decode line: %v", err)
	}
	if line[statline.Hits] != 2 || line[statline.InningsPitched] != 6.667 {
		t.Fatalf("unexpected line: %v", line)
	}

	empty, err := decodeLine(nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil line, got %v err=%v", empty, err)
	}

	if _, err := decodeLine([]byte(`{"hits":`)); err == nil {
		t.Fatalf("expected error for truncated json")
	}
}

func TestDateParam(t *testing.T) {
	loc := time.FixedZone("EDT", -4*3600)
	got := dateParam(time.Date(2026, 10, 16, 23, 30, 0, 0, loc))
	if got != "2026-10-16" {
		t.Fatalf("expected calendar day to be preserved, got %s", got)
	}
}

func TestNullInt64ToPtr(t *testing.T) {
	if nullInt64ToPtr(sql.NullInt64{}) != nil {
		t.Fatalf("expected nil for null team")
	}
	got := nullInt64ToPtr(sql.NullInt64{Int64: 12, Valid: true})
	if got == nil || *got != 12 {
		t.Fatalf("expected 12, got %v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
