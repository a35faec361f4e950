package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
)

// upsertBatchSize keeps multi-row inserts well under the 65535 bind parameter limit.
const upsertBatchSize = 500

const dateLayout = "2006-01-02"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

func batches[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = upsertBatchSize
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

func encodeJSON(value any) (string, error) {
	raw, err := sonic.MarshalString(value)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return raw, nil
}

func decodeLine(raw []byte) (statline.Line, error) {
	line := make(statline.Line)
	if len(raw) == 0 {
		return line, nil
	}
	if err := sonic.Unmarshal(raw, &line); err != nil {
		return nil, fmt.Errorf("decode stat line: %w", err)
	}
	return line, nil
}

func decodeWeights(raw []byte) (map[string]float64, error) {
	weights := make(map[string]float64)
	if len(raw) == 0 {
		return weights, nil
	}
	if err := sonic.Unmarshal(raw, &weights); err != nil {
		return nil, fmt.Errorf("decode ruleset weights: %w", err)
	}
	return weights, nil
}

// dateParam binds a calendar day as text so the DATE column never sees a zone shift.
func dateParam(t time.Time) string {
	return statline.TruncateDay(t).Format(dateLayout)
}

func nullInt64ToPtr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}

func nullTimeToTime(value sql.NullTime) time.Time {
	if !value.Valid {
		return time.Time{}
	}
	return value.Time
}
