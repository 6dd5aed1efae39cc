// Package rest builds the resty clients shared by the upstream API packages.
package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"

	"dailytemp/manager"
)

func New(userAgent string, logger *slog.Logger) *resty.Client {
	return resty.New().
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetLogger(logAdapter{log: logger})
}

// CheckStatus turns a non-200 response into a *manager.APIError, pretty
// printing JSON bodies the way they were received.
func CheckStatus(provider string, response *resty.Response) error {
	if response.StatusCode() == http.StatusOK {
		return nil
	}

	message := string(response.Body())

	buf := &bytes.Buffer{}
	if err := json.Indent(buf, response.Body(), "", "  "); err == nil {
		message = buf.String()
	}

	return &manager.APIError{
		Provider:   provider,
		StatusCode: response.StatusCode(),
		Message:    message,
	}
}

// logAdapter routes resty's own diagnostics into slog.
type logAdapter struct {
	log *slog.Logger
}

func (l logAdapter) Errorf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (l logAdapter) Warnf(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (l logAdapter) Debugf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
