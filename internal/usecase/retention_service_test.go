package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	statlinemock "github.com/riskibarqy/fantasy-statline/internal/mocks/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
)

func TestRetentionService_SweepStaleDailyData_UsesCutoff(t *testing.T) {
	t.Parallel()

	repo := statlinemock.NewRepository(t)
	svc := NewRetentionService(repo, logging.NewNop(), nil)
	svc.now = func() time.Time { return time.Date(2026, 10, 17, 13, 45, 0, 0, time.UTC) }

	repo.
		On("DeleteDailyBefore", mock.Anything, time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)).
		Return(int64(42), nil).
		Once()

	deleted, err := svc.SweepStaleDailyData(context.Background(), DefaultRetentionDays)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if deleted != 42 {
		t.Fatalf("expected deleted=42, got=%d", deleted)
	}
}

func TestRetentionService_SweepStaleDailyData_RejectsNonPositiveDays(t *testing.T) {
	t.Parallel()

	repo := statlinemock.NewRepository(t)
	svc := NewRetentionService(repo, logging.NewNop(), nil)

	if _, err := svc.SweepStaleDailyData(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
