package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/annuity-planner/internal/domain"
)

// lookup resolves a format name or returns ErrUnsupportedFormat with suggestions.
func lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// GenerateReport writes the report in the given format to a timestamped file
// in dir and returns its path.
func GenerateReport(report *domain.Report, format, dir string) (string, error) {
	f, err := lookup(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, report, dir)
}

// WriteTo streams the formatted report to w.
func WriteTo(w io.Writer, report *domain.Report, format string) error {
	f, err := lookup(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
