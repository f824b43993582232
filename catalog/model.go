package catalog

import (
	"database/sql"

	"github.com/venicegeo/sidd-go/record"
	"github.com/venicegeo/sidd-go/util"
)

// Context is the context for a catalog operation
type Context struct {
	DB           *sql.DB
	NamespaceURI string
	sessionID    string
}

// AppName returns the name of the application
func (c *Context) AppName() string {
	return "sidd-go"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// ValidationReport is the response body of a validation request
type ValidationReport struct {
	Valid      bool     `json:"valid"`
	RecordType string   `json:"recordType"`
	Missing    []string `json:"missing,omitempty"`
}

// BuildValidationReport validates a parsed record and reports which required
// fields are missing, if any
func BuildValidationReport(rec record.Record) ValidationReport {
	report := ValidationReport{Valid: true, RecordType: rec.Schema().Tag}
	if err := record.Validate(rec); err != nil {
		report.Valid = false
		if validationErr, ok := err.(*record.ValidationError); ok {
			report.Missing = validationErr.Missing
		}
	}
	return report
}
