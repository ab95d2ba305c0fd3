package utils

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var serviceName = "contacts-api"

// ConfigureLogging sets up the global logrus logger. It is called once during startup.
func ConfigureLogging(level, service string) {
	log.SetOutput(os.Stdout)
	log.SetReportCaller(true)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	parsed, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Warnf("Unknown log level %q, falling back to info", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)

	if service != "" {
		serviceName = service
	}
}

// ExtractServiceName returns the service name attached to every log entry.
func ExtractServiceName() string {
	return serviceName
}

func GenerateTraceId() string {
	return uuid.New().String()
}

// TraceIdFromContext returns the trace id stored by the trace middleware, or an empty string.
func TraceIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceId, ok := ctx.Value(TraceIdKey.String()).(string); ok {
		return traceId
	}
	if traceId, ok := ctx.Value(TraceIdKey).(string); ok {
		return traceId
	}
	return ""
}

// Logger returns an entry carrying the trace id and service name of ctx.
// The entry can be handed to goroutines that outlive the request.
func Logger(ctx context.Context) *log.Entry {
	fields := log.Fields{"service": serviceName}
	if traceId := TraceIdFromContext(ctx); traceId != "" {
		fields["traceId"] = traceId
	}
	return log.WithFields(fields)
}

func LogEntry(entry *log.Entry, level, message string) {
	switch level {
	case "debug":
		entry.Debug(message)
	case "info":
		entry.Info(message)
	case "warn":
		entry.Warn(message)
	case "error":
		entry.Error(message)
	case "fatal":
		entry.Fatal(message)
	case "panic":
		entry.Panic(message)
	default:
		entry.Info(message)
	}
}

func LogMessage(level, message string) {
	LogEntry(log.WithField("service", serviceName), level, message)
}

func LogMessageWithFields(ctx context.Context, level, message string) {
	LogEntry(Logger(ctx), level, message)
}

func LogMessageWithFieldsAndError(ctx context.Context, level, message string, err error) {
	LogEntry(Logger(ctx).WithError(err), level, message)
}
