package observability

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"
)

const logMirrorScope = "fantasy-statline/internal/platform/logging"

// noisyEvents are per-row debug messages that would flood the log backend.
var noisyEvents = map[string]struct{}{
	"skip invalid roster entry":       {},
	"joined in-flight roster refresh": {},
}

// newUptraceLogMirror forwards log calls to the global OTel logger provider.
// Records carry the span found in ctx.
func newUptraceLogMirror(serviceVersion string) logging.MirrorFunc {
	otelLogger := otelglobal.Logger(logMirrorScope, otellog.WithInstrumentationVersion(serviceVersion))

	return func(ctx context.Context, level logging.Level, msg string, args ...any) {
		if mutedEvent(level, msg) {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}
		severity := severityOf(level)
		if !otelLogger.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
			return
		}

		now := time.Now().UTC()
		var record otellog.Record
		record.SetTimestamp(now)
		record.SetObservedTimestamp(now)
		record.SetSeverity(severity)
		record.SetSeverityText(strings.ToUpper(level.String()))
		record.SetEventName(msg)
		record.SetBody(otellog.StringValue(msg))
		if attrs := logAttributes(args); len(attrs) > 0 {
			record.AddAttributes(attrs...)
		}
		otelLogger.Emit(ctx, record)
	}
}

func mutedEvent(level logging.Level, msg string) bool {
	if level > logging.LevelDebug {
		return false
	}
	_, noisy := noisyEvents[msg]
	return noisy
}

// logAttributes pairs up key/value args the same way the zap sugar does:
// a non-string key becomes arg_N and a dangling key gets an empty value.
func logAttributes(args []any) []otellog.KeyValue {
	if len(args) == 0 {
		return nil
	}
	attrs := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || strings.TrimSpace(key) == "" {
			key = fmt.Sprintf("arg_%d", i/2)
		}
		if i+1 >= len(args) {
			attrs = append(attrs, otellog.Empty(key))
			continue
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: logValue(args[i+1])})
	}
	return attrs
}

func severityOf(level zapcore.Level) otellog.Severity {
	switch {
	case level <= zapcore.DebugLevel:
		return otellog.SeverityDebug
	case level == zapcore.InfoLevel:
		return otellog.SeverityInfo
	case level == zapcore.WarnLevel:
		return otellog.SeverityWarn
	case level >= zapcore.DPanicLevel:
		return otellog.SeverityFatal
	default:
		return otellog.SeverityError
	}
}

// logValue covers what the pipeline actually logs: ids, counts, points,
// durations, dates, errors and sport codes. Anything else is printed.
func logValue(value any) otellog.Value {
	switch v := value.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case int:
		return otellog.IntValue(v)
	case int32:
		return otellog.Int64Value(int64(v))
	case int64:
		return otellog.Int64Value(v)
	case float64:
		return otellog.Float64Value(v)
	case time.Duration:
		return otellog.StringValue(v.String())
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339))
	case error:
		return otellog.StringValue(v.Error())
	case []string:
		items := make([]otellog.Value, len(v))
		for i, s := range v {
			items[i] = otellog.StringValue(s)
		}
		return otellog.SliceValue(items...)
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return otellog.StringValue(rv.String())
	case reflect.Pointer:
		if rv.IsNil() {
			return otellog.Value{}
		}
		return logValue(rv.Elem().Interface())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.String {
			items := make([]otellog.Value, rv.Len())
			for i := range items {
				items[i] = otellog.StringValue(rv.Index(i).String())
			}
			return otellog.SliceValue(items...)
		}
	}
	return otellog.StringValue(fmt.Sprint(value))
}
