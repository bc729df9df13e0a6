package audit

import (
	"database/sql"
	"strings"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Db implements Journal on top of gorm
type Db struct {
	db *gorm.DB
}

func (db *Db) Record(e Entry) error {
	e.ID = 0
	if err := db.db.Create(&e).Error; err != nil {
		return &Error{msg: "unable to record audit entry", err: err}
	}
	return nil
}

func (db *Db) Close() error {
	return db.db.Close()
}

// NewDb opens the journal identified by `dsn` and migrates its table. Supports the following
// forms to select the proper dialect:
//
//   - sqlite -> "file:/var/lib/otpctl/audit.db"
//   - mysql -> "mysql://user:pass@/dbname?charset=utf8&parseTime=True&loc=Local"
//   - mysql -> "user:pass@/dbname?charset=utf8&parseTime=True&loc=Local"
func NewDb(dsn string) (*Db, error) {
	var err error
	var db *gorm.DB
	switch {
	case strings.HasPrefix(dsn, "file:"): // sqlite -> file:/var/lib/otpctl/audit.db
		db, err = gorm.Open("sqlite3", strings.TrimPrefix(strings.TrimPrefix(dsn, "file://"), "file:"))
	case strings.HasPrefix(dsn, "mysql://"): // mysql://user:pass@/dbname?charset=utf8&parseTime=True&loc=Local
		db, err = gorm.Open("mysql", strings.TrimPrefix(dsn, "mysql://"))
	default: // user:pass@/dbname?charset=utf8&parseTime=True&loc=Local
		db, err = gorm.Open("mysql", dsn)
	}
	if err != nil {
		return nil, &Error{msg: "unable to open audit journal " + redact(dsn), err: err}
	}

	if err = db.AutoMigrate(&Entry{}).Error; err != nil {
		_ = db.Close()
		return nil, &Error{msg: "unable to migrate audit journal", err: err}
	}
	log.WithField("dsn", redact(dsn)).Debug("opened audit journal")

	return &Db{db: db}, nil
}

// NewDbFromConn uses an already open connection of the given gorm dialect. The table is
// expected to exist.
func NewDbFromConn(dialect string, conn *sql.DB) (*Db, error) {
	db, err := gorm.Open(dialect, conn)
	if err != nil {
		return nil, &Error{msg: "unable to open audit journal", err: err}
	}
	return &Db{db: db}, nil
}

// Open returns the journal for dsn, or a NopJournal when dsn is empty
func Open(dsn string) (Journal, error) {
	if dsn == "" {
		return NopJournal{}, nil
	}
	db, err := NewDb(dsn)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// redact drops a password from a dsn before it is logged
func redact(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	start := strings.Index(dsn, "://") + 3
	if start < 3 {
		start = 0
	}
	creds := dsn[start:at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		return dsn[:start+colon] + ":xxx" + dsn[at:]
	}
	return dsn
}
