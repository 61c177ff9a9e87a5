package cfdi

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/rezonia/payroll-tracker/internal/model"
)

// File is one named document source handed to the batch loader.
type File struct {
	Name    string
	Content []byte
}

// FileError reports a single document that failed extraction.
type FileError struct {
	Name string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("error processing file %s: %v", e.Name, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// Loader runs batch extraction over uploaded CFDI documents.
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a batch loader. A nil logger disables logging.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Load sorts the files by name, extracts each one independently and returns
// the parsed records in filename-ascending order. A failed document is
// logged, reported in the returned FileError slice and skipped; it never
// aborts the batch or affects any other document. An empty input yields an
// empty output.
func (l *Loader) Load(files []File) ([]*model.PayrollRecord, []FileError) {
	if len(files) == 0 {
		return nil, nil
	}

	sorted := make([]File, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	records := make([]*model.PayrollRecord, 0, len(sorted))
	var failures []FileError

	for _, f := range sorted {
		record, err := Extract(f.Content)
		if err != nil {
			l.log.Warn("failed to process payroll document",
				zap.String("file", f.Name),
				zap.Error(err))
			failures = append(failures, FileError{Name: f.Name, Err: err})
			continue
		}
		records = append(records, record)
	}

	return records, failures
}
