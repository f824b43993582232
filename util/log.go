// Copyright 2019, RadiantBlue Technologies, Inc.
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
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

// Severity is a syslog-style message severity
type Severity int

// Severities used by the audit log
const (
	ERROR   Severity = 3
	WARNING Severity = 4
	NOTICE  Severity = 5
	INFO    Severity = 6
)

var logger = log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

// LogContext is the logging context for an operation, supplying the
// application name and a session ID that ties related messages together
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for operations that have no session
// context of their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return "sidd-go"
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

func logMessage(context LogContext, severity Severity, message string) {
	logger.Printf("[%s] %s {%s} %s", severityLabel(severity), context.AppName(), context.SessionID(), message)
}

func severityLabel(severity Severity) string {
	switch severity {
	case ERROR:
		return "ERROR"
	case WARNING:
		return "WARNING"
	case NOTICE:
		return "NOTICE"
	}
	return "INFO"
}

// LogInfo logs an informational message
func LogInfo(context LogContext, message string) {
	logMessage(context, INFO, message)
}

// LogAlert logs a message that needs attention but is not tied to a failing
// operation
func LogAlert(context LogContext, message string) {
	logMessage(context, NOTICE, message)
}

// LogSimpleErr logs an error with its underlying cause and returns an error
// suitable for surfacing to the caller
func LogSimpleErr(context LogContext, message string, err error) error {
	result := Error{SimpleMsg: message, LogMsg: fmt.Sprintf("%v :: %v", message, err)}
	return result.Log(context, "")
}

// LogAuditInput is the input to LogAudit
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit writes an audit-style message recording who did what to whom
func LogAudit(context LogContext, input LogAuditInput) {
	logMessage(context, input.Severity, fmt.Sprintf("[audit] actor:%v action:%v actee:%v :: %v", input.Actor, input.Action, input.Actee, input.Message))
}

// Error is a structured error with a detailed message for the log and a
// simple one for the caller
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
}

// Error implements the error interface, preferring the simple message
func (err Error) Error() string {
	if err.SimpleMsg != "" {
		return err.SimpleMsg
	}
	return err.LogMsg
}

// Log writes the detailed form of the error to the log, with an optional
// message prefix, and returns the error for the caller
func (err Error) Log(context LogContext, prefix string) error {
	message := err.LogMsg
	if prefix != "" {
		message = prefix + ": " + message
	}
	if err.URL != "" {
		message += fmt.Sprintf("\nURL: %v", err.URL)
	}
	if err.HTTPStatus != 0 {
		message += fmt.Sprintf("\nHTTP Status: %v", err.HTTPStatus)
	}
	if err.Response != "" {
		message += fmt.Sprintf("\nResponse: %v", err.Response)
	}
	logMessage(context, ERROR, message)
	return err
}

// HTTPErr is an error carrying an HTTP status code
type HTTPErr struct {
	Status  int
	Message string
}

// Error implements the error interface
func (err HTTPErr) Error() string {
	return err.Message
}

type httpErrorBody struct {
	Error string `json:"error"`
}

// HTTPError logs a failed request and writes a JSON error body with the given
// status to the response
func HTTPError(r *http.Request, w http.ResponseWriter, context LogContext, message string, status int) {
	LogAudit(context, LogAuditInput{Actor: "sidd-go", Action: fmt.Sprintf("%v response", status), Actee: r.URL.String(), Message: message, Severity: WARNING})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, _ := json.Marshal(httpErrorBody{Error: message})
	w.Write(body)
}
