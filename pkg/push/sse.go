package push

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// MaxLineSize limits a single line of the event stream, longer lines fail the stream with ErrLineTooLong
const MaxLineSize = 1024 * 1024

// ErrLineTooLong is returned by Scanner.Err when a line exceeds the limit
var ErrLineTooLong = errors.New("event stream line too long")

// ServerEvent is a named message received from the push channel
type ServerEvent struct {
	ID   string // event id, empty if the server didn't set one
	Kind string // event name, "message" if the server didn't set one
	Data string // payload, multiple data lines joined with "\n"
}

// Scanner reads server-sent events from a text/event-stream body.
// Events are separated by blank lines; comment lines (":") and unknown fields are skipped.
// The last event id persists across events and is committed at the end of every block,
// including blocks without data.
type Scanner struct {
	reader  *bufio.Reader
	maxLine int
	current ServerEvent
	lastID  string
	err     error
}

// NewScanner makes a Scanner reading from r
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReaderSize(r, 64*1024), maxLine: MaxLineSize}
}

// Next advances to the next event, returns false on end of stream or error
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}

	var dataLines []string
	var kind, id string
	hasData, hasID := false, false

	emit := func() {
		if kind == "" {
			kind = "message"
		}
		s.current = ServerEvent{ID: id, Kind: kind, Data: strings.Join(dataLines, "\n")}
	}

	for {
		line, err := s.readLine()
		if err != nil && line == "" {
			s.err = err
			if err == io.EOF && hasData {
				if hasID {
					s.lastID = id
				}
				emit()
				return true
			}
			return false
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if hasID {
				s.lastID = id
			}
			if hasData {
				emit()
				return true
			}
			// block without data, e.g. a lone "event:" or "id:" line
			kind, id, hasID = "", "", false
			continue
		}

		if strings.HasPrefix(line, ":") {
			continue // comment, servers use it as heartbeat
		}

		field, value, found := strings.Cut(line, ":")
		if found {
			value = strings.TrimPrefix(value, " ")
		}

		switch field {
		case "data":
			dataLines = append(dataLines, value)
			hasData = true
		case "event":
			kind = value
		case "id":
			if !strings.ContainsRune(value, 0) {
				id, hasID = value, true
			}
		}
	}
}

// readLine reads up to and including '\n', same contract as bufio.Reader.ReadString
// but fails with ErrLineTooLong instead of growing past maxLine
func (s *Scanner) readLine() (string, error) {
	var buf []byte
	for {
		chunk, err := s.reader.ReadSlice('\n')
		if len(buf)+len(chunk) > s.maxLine {
			return "", ErrLineTooLong
		}
		buf = append(buf, chunk...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return string(buf), err
	}
}

// LastEventID returns the last event id seen on the stream, it survives events without an id
// and is updated by id-only blocks. Empty if the server never set one or reset it.
func (s *Scanner) LastEventID() string {
	return s.lastID
}

// Event returns the event parsed by the last successful Next call
func (s *Scanner) Event() ServerEvent {
	return s.current
}

// Err returns the error stopped the scanner, nil on clean end of stream
func (s *Scanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}
