package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/bassista/rpi_configurator/internal/report"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorReporting forwards panics and 5xx responses to reporter.
// On panic it reports and re-panics so gin.Recovery writes the response.
func ErrorReporting(reporter report.Reporter, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				reporter.Report(fmt.Errorf("panic: %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, rec, debug.Stack()), "panic", "http")
				logger.Error("recovered from panic, reported: ", rec)
				panic(rec)
			}
		}()

		c.Next()

		status := c.Writer.Status()
		if status < 500 {
			return
		}
		err := fmt.Errorf("HTTP %d: %s %s", status, c.Request.Method, c.Request.URL.Path)
		if last := c.Errors.Last(); last != nil {
			err = fmt.Errorf("%w: %v", err, last.Err)
		}
		reporter.Report(err, "5XX", "http")
		logger.Warnf("reported HTTP %d for %s %s", status, c.Request.Method, c.Request.URL.Path)
	}
}
