package audit

import (
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dsggregory/otpctl/pkg/device"
	. "gopkg.in/check.v1"
)

func Test(t *testing.T) {
	TestingT(t)
}

var _ = Suite(&auditSuite{})

type auditSuite struct {
}

func (s *auditSuite) TestMapJournal(c *C) {
	j := NewMapJournal()
	c.Assert(j.Record(Entry{Invocation: "a", Command: "status", Outcome: OutcomeOK}), IsNil)
	c.Assert(j.Record(Entry{Invocation: "b", Command: "request", Outcome: OutcomeFailed, ErrorKind: "open"}), IsNil)

	recs := j.Entries()
	c.Assert(recs, HasLen, 2)
	c.Assert(recs[0].ID, Equals, uint(1))
	c.Assert(recs[1].ID, Equals, uint(2))
	c.Assert(recs[1].ErrorKind, Equals, "open")
	c.Assert(recs[0].CreatedAt.IsZero(), Equals, false)

	c.Assert(j.Close(), IsNil)
	err := j.Record(Entry{})
	c.Assert(err, NotNil)
	c.Assert(device.KindOf(err), Equals, device.KindAudit)
}

func (s *auditSuite) TestOpenEmptyIsNop(c *C) {
	j, err := Open("")
	c.Assert(err, IsNil)
	c.Assert(j, Equals, NopJournal{})
	c.Assert(j.Record(Entry{}), IsNil)
	c.Assert(j.Close(), IsNil)
}

func (s *auditSuite) TestDbRecord(c *C) {
	conn, mock, err := sqlmock.New()
	c.Assert(err, IsNil)
	defer func() { _ = conn.Close() }()

	db, err := NewDbFromConn("mysql", conn)
	c.Assert(err, IsNil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `audit_entries`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = db.Record(Entry{
		Invocation: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		Command:    "set-mode",
		Target:     "/dev/otp0",
		Outcome:    OutcomeOK,
	})
	c.Assert(err, IsNil)
	c.Assert(mock.ExpectationsWereMet(), IsNil)
}

func (s *auditSuite) TestDbRecordFails(c *C) {
	conn, mock, err := sqlmock.New()
	c.Assert(err, IsNil)
	defer func() { _ = conn.Close() }()

	db, err := NewDbFromConn("mysql", conn)
	c.Assert(err, IsNil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `audit_entries`")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = db.Record(Entry{Invocation: "x", Command: "status", Outcome: OutcomeOK})
	c.Assert(err, ErrorMatches, "unable to record audit entry: .*disk full.*")
	c.Assert(device.KindOf(err), Equals, device.KindAudit)
}

func (s *auditSuite) TestSqliteJournal(c *C) {
	p := filepath.Join(c.MkDir(), "audit.db")
	db, err := NewDb("file:" + p)
	c.Assert(err, IsNil)
	defer func() { _ = db.Close() }()

	c.Assert(db.Record(Entry{Invocation: "a", Command: "validate", Target: "/dev/otp0", Outcome: OutcomeFailed, ErrorKind: "validation"}), IsNil)
	c.Assert(db.Record(Entry{Invocation: "b", Command: "status", Outcome: OutcomeOK}), IsNil)

	var recs []Entry
	c.Assert(db.db.Order("id").Find(&recs).Error, IsNil)
	c.Assert(recs, HasLen, 2)
	c.Assert(recs[0].ErrorKind, Equals, "validation")
	c.Assert(recs[1].Command, Equals, "status")
}

func (s *auditSuite) TestRedact(c *C) {
	c.Assert(redact("mysql://otp:s3cret@/audit"), Equals, "mysql://otp:xxx@/audit")
	c.Assert(redact("otp:s3cret@tcp(db:3306)/audit"), Equals, "otp:xxx@tcp(db:3306)/audit")
	c.Assert(redact("file:/var/lib/otpctl/audit.db"), Equals, "file:/var/lib/otpctl/audit.db")
}
