package events

import (
	"fmt"
	"io"
)

// WriterSink writes one JSON event per line. It backs the UART link to an
// access-control panel.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Publish(ev Event) error {
	payload, err := Marshal(ev)
	if err != nil {
		return fmt.Errorf("serial event marshal: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := s.w.Write(payload); err != nil {
		return fmt.Errorf("serial event write: %w", err)
	}
	return nil
}
