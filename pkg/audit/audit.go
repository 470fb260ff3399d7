// Package audit writes account security events (logins, registrations,
// deletions, rejected credentials) as a separate zap stream so they can be
// shipped and retained apart from request logs.
package audit

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type EventType string

const (
	EventLoginSuccess       EventType = "login_success"
	EventLoginFailed        EventType = "login_failed"
	EventUserRegistered     EventType = "user_registered"
	EventAccountDeleted     EventType = "account_deleted"
	EventUnauthorizedAccess EventType = "unauthorized_access"
)

// Event is one audit record. SubjectValue must already be masked.
type Event struct {
	Type         EventType
	SubjectType  string // "email", "user_id"
	SubjectValue string
	IP           string
	RequestID    string
	Reason       string
}

type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var defaultLogger atomic.Pointer[Logger]

// Init builds the production audit logger and makes it the default.
func Init(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	z, err := config.Build(zap.AddCaller())
	if err != nil {
		z, _ = zap.NewProduction()
	}

	l := New(z, serviceName, environment)
	defaultLogger.Store(l)
	return l
}

func New(z *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: z, serviceName: serviceName, environment: environment}
}

// SetDefault replaces the default logger.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// Default returns the logger set by Init; events are discarded before that.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return New(zap.NewNop(), "", "")
}

func (l *Logger) Log(e Event) {
	level := zapcore.InfoLevel
	switch e.Type {
	case EventLoginFailed, EventUnauthorizedAccess:
		level = zapcore.WarnLevel
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(e.Type)),
		zap.Time("occurred_at", time.Now().UTC()),
	}
	if e.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", e.SubjectType))
	}
	if e.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", e.SubjectValue))
	}
	if e.IP != "" {
		fields = append(fields, zap.String("ip", e.IP))
	}
	if e.RequestID != "" {
		fields = append(fields, zap.String("request_id", e.RequestID))
	}
	if e.Reason != "" {
		fields = append(fields, zap.String("reason", e.Reason))
	}

	l.zapLogger.Log(level, string(e.Type), fields...)
}

func (l *Logger) LoginFailed(email, reason string) {
	l.Log(Event{Type: EventLoginFailed, SubjectType: "email", SubjectValue: MaskEmail(email), Reason: reason})
}

func (l *Logger) LoginSucceeded(userID string) {
	l.Log(Event{Type: EventLoginSuccess, SubjectType: "user_id", SubjectValue: userID})
}

func (l *Logger) UserRegistered(userID string) {
	l.Log(Event{Type: EventUserRegistered, SubjectType: "user_id", SubjectValue: userID})
}

func (l *Logger) AccountDeleted(userID string) {
	l.Log(Event{Type: EventAccountDeleted, SubjectType: "user_id", SubjectValue: userID})
}

func (l *Logger) UnauthorizedAccess(ip, requestID, reason string) {
	l.Log(Event{Type: EventUnauthorizedAccess, IP: ip, RequestID: requestID, Reason: reason})
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// MaskEmail keeps the first letter and the domain: "ann@x.com" -> "a***@x.com".
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	at := -1
	for i, c := range email {
		if c == '@' {
			at = i
			break
		}
	}
	if at <= 1 {
		return "***" + email[max(at, 1):]
	}
	return email[:1] + "***" + email[at:]
}
