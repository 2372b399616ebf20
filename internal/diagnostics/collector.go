package diagnostics

import (
	"errors"
	"fmt"
	"io"
)

var (
	COMPILER_ERROR_FOUND = errors.New("compiler error found")
)

type Collector struct {
	Diags []Diag

	out io.Writer
}

// NewWithWriter returns a collector that prints reported diagnostics to w.
// A nil writer keeps them silent.
func NewWithWriter(w io.Writer) *Collector {
	return &Collector{
		Diags: nil,
		out:   w,
	}
}

func (collector *Collector) ReportAndSave(diag Diag) {
	if collector.out != nil {
		fmt.Fprintln(collector.out, diag.Message)
	}
	collector.Diags = append(collector.Diags, diag)
}

// Report turns err into a diagnostic, saves it and returns
// COMPILER_ERROR_FOUND so callers can bail out.
func (collector *Collector) Report(err error) error {
	collector.ReportAndSave(FromError(err))
	return COMPILER_ERROR_FOUND
}

func (collector *Collector) HasErrors() bool {
	return len(collector.Diags) > 0
}

func (collector *Collector) Reset() {
	collector.Diags = nil
}
