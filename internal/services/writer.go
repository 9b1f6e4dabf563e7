package services

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Writer receives the table produced by a batch run.
type Writer interface {
	Header(names []string) error
	Row(values []float64) error
}

// Recorder is a Writer that keeps everything in memory.
type Recorder struct {
	Names []string
	Rows  [][]float64
}

var _ Writer = (*Recorder)(nil)

// Header stores a copy of names.
func (r *Recorder) Header(names []string) error {
	r.Names = append([]string(nil), names...)
	return nil
}

// Row stores a copy of values.
func (r *Recorder) Row(values []float64) error {
	r.Rows = append(r.Rows, append([]float64(nil), values...))
	return nil
}

// Column returns column j of the recorded rows.
func (r *Recorder) Column(j int) []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row[j]
	}
	return out
}

// CSVWriter writes comma-separated lines. Values use the shortest
// representation that round-trips.
type CSVWriter struct {
	w   *csv.Writer
	buf []string
}

var _ Writer = (*CSVWriter)(nil)

// NewCSVWriter returns a CSVWriter on w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Header writes names as the first line.
func (c *CSVWriter) Header(names []string) error {
	return errors.Wrap(c.w.Write(names), "csv header")
}

// Row writes one line of values.
func (c *CSVWriter) Row(values []float64) error {
	c.buf = c.buf[:0]
	for _, v := range values {
		c.buf = append(c.buf, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return errors.Wrap(c.w.Write(c.buf), "csv row")
}

// Flush writes any buffered data to the underlying writer.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return errors.Wrap(c.w.Error(), "csv flush")
}
