package observability

import (
	"context"
	"errors"
	"strings"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/fantasy-statline/internal/config"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Telemetry owns the process-wide trace exporter and the continuous
// profiler. Both are optional; a zero Telemetry shuts down cleanly.
type Telemetry struct {
	tracing  bool
	profiler *pyroscope.Profiler
}

// StartTelemetry configures Uptrace and Pyroscope from cfg. On error every
// exporter started so far is stopped before returning.
func StartTelemetry(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{}

	t.startTracing(cfg, logger)
	if err := t.startProfiling(cfg, logger); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	return t, nil
}

// TracingEnabled reports whether spans leave the process.
func (t *Telemetry) TracingEnabled() bool { return t != nil && t.tracing }

// ProfilingEnabled reports whether the profiler is running.
func (t *Telemetry) ProfilingEnabled() bool { return t != nil && t.profiler != nil }

// Shutdown flushes and stops both exporters.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.profiler != nil {
		errs = append(errs, t.profiler.Stop())
		t.profiler = nil
	}
	if t.tracing {
		logging.SetMirror(nil)
		errs = append(errs, uptrace.Shutdown(ctx))
		t.tracing = false
	}
	return errors.Join(errs...)
}

func (t *Telemetry) startTracing(cfg config.Config, logger *logging.Logger) {
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logging.SetMirror(nil)
		logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled)
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	if cfg.UptraceLogsEnabled {
		logging.SetMirror(newUptraceLogMirror(cfg.ServiceVersion))
	} else {
		logging.SetMirror(nil)
	}
	t.tracing = true

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)
}

func (t *Telemetry) startProfiling(cfg config.Config, logger *logging.Logger) error {
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled")
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              profileTags(cfg),
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return err
	}
	t.profiler = profiler

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
	)
	return nil
}

// profileTags labels profiles with the environment and the ingested sports.
func profileTags(cfg config.Config) map[string]string {
	tags := map[string]string{
		"env":     cfg.AppEnv,
		"service": cfg.ServiceName,
	}
	if len(cfg.IngestSports) > 0 {
		names := make([]string, 0, len(cfg.IngestSports))
		for _, s := range cfg.IngestSports {
			names = append(names, string(s))
		}
		tags["sports"] = strings.Join(names, ",")
	}
	return tags
}
