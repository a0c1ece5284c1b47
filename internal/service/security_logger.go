// internal/service/security_logger.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gurkanbulca/choreboard/internal/logging"
	"github.com/gurkanbulca/choreboard/pkg/security"
)

// SecurityLogger provides convenience methods for logging account events.
// Passwords never reach it.
type SecurityLogger struct {
	logger *logging.Logger
}

// NewSecurityLogger creates a new security logger
func NewSecurityLogger(logger *logging.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.Named("security")}
}

// LogEvent logs an event with its default severity.
func (sl *SecurityLogger) LogEvent(ctx context.Context, eventType security.EventType, email, description string) {
	fields := []zap.Field{
		zap.String("event_type", string(eventType)),
		zap.String("severity", string(eventType.DefaultSeverity())),
	}
	if email != "" {
		fields = append(fields, zap.String("email", email))
	}

	if eventType.DefaultSeverity() == security.SeverityLow {
		sl.logger.Info(ctx, description, fields...)
		return
	}
	sl.logger.Warn(ctx, description, fields...)
}

// Convenience methods for common security events

func (sl *SecurityLogger) LogRegistered(ctx context.Context, email string) {
	sl.LogEvent(ctx, security.EventTypeAccountRegistered, email, "Account registered")
}

func (sl *SecurityLogger) LogRegisterRejected(ctx context.Context, email, reason string) {
	sl.LogEvent(ctx, security.EventTypeRegisterRejected, email, "Registration rejected: "+reason)
}

func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, email string) {
	sl.LogEvent(ctx, security.EventTypeLoginSuccess, email, "User successfully signed in")
}

func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, email, reason string) {
	sl.LogEvent(ctx, security.EventTypeLoginFailed, email, "Sign-in failed: "+reason)
}

func (sl *SecurityLogger) LogLogout(ctx context.Context, email string) {
	sl.LogEvent(ctx, security.EventTypeLogout, email, "User signed out")
}

func (sl *SecurityLogger) LogBoardReset(ctx context.Context, email string) {
	sl.LogEvent(ctx, security.EventTypeBoardReset, email, "Board reset")
}

func (sl *SecurityLogger) LogUnauthenticatedUse(ctx context.Context, operation string) {
	sl.LogEvent(ctx, security.EventTypeUnauthenticatedUse, "", "Rejected "+operation+" without a session")
}
