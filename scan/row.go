package scan

import "github.com/arloliu/mdkey/rowkey"

// Row is one scanned row: its compact key plus the measure values the scan
// already extracted. Measures are opaque to this package and pass through
// reconciliation untouched.
//
// A row handed to a collector is owned by that collector's task; nothing else
// accesses it concurrently.
type Row struct {
	Key      rowkey.Key
	Measures []any
}

// Source is an upstream stream of scanned rows, already decoded from one
// block and carrying keys encoded per that block's schema.
type Source interface {
	// Next returns the next scanned row. It returns ok=false when the source
	// is exhausted.
	Next() (row Row, ok bool)
}

// SliceSource adapts an in-memory row slice to the Source interface. It is
// primarily useful in tests and for replaying buffered results.
type SliceSource struct {
	rows []Row
	pos  int
}

// NewSliceSource creates a source yielding rows in order. The slice is not
// copied; rows are handed out by value but share key backing arrays with the
// slice.
func NewSliceSource(rows []Row) *SliceSource {
	return &SliceSource{rows: rows}
}

// Next implements Source.
func (s *SliceSource) Next() (Row, bool) {
	if s.pos >= len(s.rows) {
		return Row{}, false
	}
	row := s.rows[s.pos]
	s.pos++

	return row, true
}

// Remaining returns the number of rows not yet yielded.
func (s *SliceSource) Remaining() int {
	return len(s.rows) - s.pos
}
