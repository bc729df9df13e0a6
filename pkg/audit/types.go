package audit

import (
	"fmt"
	"time"

	"github.com/dsggregory/otpctl/pkg/device"
)

// Outcome of an audited invocation
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Entry one audited invocation. OTP and password values are never recorded.
type Entry struct {
	ID        uint      `json:"-" gorm:"primary_key"`
	CreatedAt time.Time `json:"created_at"`
	// Invocation the id shared with the invocation's log lines
	Invocation string `json:"invocation" gorm:"index;not null"`
	// Command name, e.g. set-mode
	Command string `json:"command"`
	// Target the device or parameter path the command touched
	Target string `json:"target"`
	// Outcome OutcomeOK or OutcomeFailed
	Outcome string `json:"outcome"`
	// ErrorKind the device.Kind of a failure
	ErrorKind string `json:"error_kind,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (Entry) TableName() string {
	return "audit_entries"
}

// Journal records invocations
type Journal interface {
	Record(e Entry) error
	Close() error
}

// Error a journal could not be opened or written
type Error struct {
	msg string
	err error
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() device.Kind { return device.KindAudit }

// NopJournal discards entries. Used when no journal is configured.
type NopJournal struct{}

func (NopJournal) Record(Entry) error { return nil }
func (NopJournal) Close() error       { return nil }
