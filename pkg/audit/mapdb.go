/*** An implementation of the Journal interface as an in-memory slice for testing
 */
package audit

import (
	"time"
)

// MapJournal implements Journal in memory
type MapJournal struct {
	recs   []Entry
	nextID uint
	closed bool
}

func NewMapJournal() *MapJournal {
	return &MapJournal{nextID: 1}
}

func (j *MapJournal) Record(e Entry) error {
	if j.closed {
		return &Error{msg: "journal is closed"}
	}
	e.ID = j.nextID
	j.nextID++
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	j.recs = append(j.recs, e)
	return nil
}

func (j *MapJournal) Close() error {
	j.closed = true
	return nil
}

// Entries returns everything recorded so far in order
func (j *MapJournal) Entries() []Entry {
	return append([]Entry(nil), j.recs...)
}
