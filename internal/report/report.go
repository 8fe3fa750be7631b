// Package report forwards programmer errors to an external error tracker.
package report

import (
	"os"

	honeybadger "github.com/honeybadger-io/honeybadger-go"
	"github.com/sirupsen/logrus"
)

// Reporter receives errors that callers are not expected to recover from,
// such as an out-of-range index on a configuration accessor.
type Reporter interface {
	Report(err error, tags ...string)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(err error, tags ...string)

func (f ReporterFunc) Report(err error, tags ...string) {
	f(err, tags...)
}

// Nop discards every report.
var Nop Reporter = ReporterFunc(func(error, ...string) {})

// notifier is the subset of the honeybadger client used here.
type notifier interface {
	Notify(err interface{}, extra ...interface{}) (string, error)
}

// Honeybadger sends reports to Honeybadger.
type Honeybadger struct {
	client notifier
	logger logrus.FieldLogger
}

// NewHoneybadger builds a Reporter from HONEYBADGER_API_KEY and GO_ENV.
// Without an API key it returns Nop.
func NewHoneybadger(logger logrus.FieldLogger) Reporter {
	apiKey := os.Getenv("HONEYBADGER_API_KEY")
	if apiKey == "" {
		logger.Info("Honeybadger is not active. To enable error reporting, set the HONEYBADGER_API_KEY environment variable.")
		return Nop
	}

	client := honeybadger.New(honeybadger.Configuration{
		APIKey: apiKey,
		Env:    os.Getenv("GO_ENV"),
	})
	logger.Info("Honeybadger error reporting is enabled.")

	return &Honeybadger{client: client, logger: logger}
}

// Report notifies Honeybadger; delivery failures are only logged.
func (h *Honeybadger) Report(err error, tags ...string) {
	if err == nil {
		return
	}
	if _, notifyErr := h.client.Notify(err, honeybadger.Tags(tags)); notifyErr != nil {
		h.logger.Warnf("honeybadger notify failed: %v", notifyErr)
	}
}
