// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AppName is the name every log line is tagged with
const AppName = "goes-glm"

// LogContext provides the identifying information attached to log lines
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a LogContext for a single CLI invocation
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return AppName
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

// Severity is the severity of an audit log entry
type Severity string

// Severities understood by LogAudit
const (
	DEBUG   Severity = "DEBUG"
	INFO    Severity = "INFO"
	WARNING Severity = "WARNING"
	ERROR   Severity = "ERROR"
)

// LogAuditInput describes who did what to whom
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

var logger = newLogger(os.Stderr, "json", zerolog.InfoLevel)

func newLogger(w io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ConfigureLogging applies the log level and format from the environment
func ConfigureLogging() {
	logger = newLogger(os.Stderr, GetLogFormat(), GetLogLevel())
}

// SetLogOutput redirects log output, keeping the configured format and level
func SetLogOutput(w io.Writer) {
	logger = newLogger(w, GetLogFormat(), GetLogLevel())
}

func withContext(event *zerolog.Event, ctx LogContext) *zerolog.Event {
	if ctx == nil {
		return event
	}
	return event.Str("app", ctx.AppName()).Str("session", ctx.SessionID())
}

// LogDebug logs a debug message
func LogDebug(ctx LogContext, msg string) {
	withContext(logger.Debug(), ctx).Msg(msg)
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, msg string) {
	withContext(logger.Info(), ctx).Msg(msg)
}

// LogAlert logs a message that needs attention but does not stop processing
func LogAlert(ctx LogContext, msg string) {
	withContext(logger.Warn(), ctx).Msg(msg)
}

// LogAudit logs an actor/action/actee triple
func LogAudit(ctx LogContext, input LogAuditInput) {
	var event *zerolog.Event
	switch input.Severity {
	case DEBUG:
		event = logger.Debug()
	case WARNING:
		event = logger.Warn()
	case ERROR:
		event = logger.Error()
	default:
		event = logger.Info()
	}
	withContext(event, ctx).
		Str("actor", input.Actor).
		Str("action", input.Action).
		Str("actee", input.Actee).
		Msg(input.Message)
}

// LogSimpleErr logs an error along with a message and returns an error
// carrying both
func LogSimpleErr(ctx LogContext, msg string, err error) error {
	withContext(logger.Error(), ctx).Err(err).Msg(msg)
	if err == nil {
		return Error{SimpleMsg: msg}
	}
	return Error{SimpleMsg: msg, cause: err}
}

// Error is a user-facing error that knows how to log itself
type Error struct {
	SimpleMsg string
	Detail    string
	cause     error
}

func (e Error) Error() string {
	switch {
	case e.cause != nil && e.SimpleMsg != "":
		return fmt.Sprintf("%s: %v", e.SimpleMsg, e.cause)
	case e.cause != nil:
		return e.cause.Error()
	}
	return e.SimpleMsg
}

// Unwrap returns the underlying cause, if any
func (e Error) Unwrap() error {
	return e.cause
}

// Log logs the error, prefixed by msg when it is not empty, and returns it
func (e Error) Log(ctx LogContext, msg string) error {
	event := withContext(logger.Error(), ctx)
	if e.Detail != "" {
		event = event.Str("detail", e.Detail)
	}
	if msg != "" {
		event.Msg(msg + ": " + e.Error())
	} else {
		event.Msg(e.Error())
	}
	return e
}

// PsuUUID returns a random UUID string
func PsuUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
