package logging

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// Setup configures the standard logrus logger for the service.
func Setup(level string) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// WithLogger stores a request-scoped entry on ctx.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// FromContext returns the request-scoped entry, or one on the standard
// logger when none was attached.
func FromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// Lifecycle events for owned rows.

func LogCreated(ctx context.Context, resourceType, resourceID, accountID string) {
	FromContext(ctx).WithField(resourceType+"_id", resourceID).
		WithField("account_id", accountID).
		Info(resourceType + " created")
}

func LogUpdated(ctx context.Context, resourceType, resourceID, accountID string) {
	FromContext(ctx).WithField(resourceType+"_id", resourceID).
		WithField("account_id", accountID).
		Info(resourceType + " updated")
}

func LogDeleted(ctx context.Context, resourceType, resourceID, accountID string) {
	FromContext(ctx).WithField(resourceType+"_id", resourceID).
		WithField("account_id", accountID).
		Info(resourceType + " deleted")
}
