package common

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/yejune/thai-i18n/internal/logger"
)

// ErrFileProcessing marks a failure confined to one file
var ErrFileProcessing = errors.New("file processing failed")

// ErrStopped is returned by a handler to end a run early
var ErrStopped = errors.New("stopped")

// Outcome is what happened to one file
type Outcome int

const (
	// Unchanged means the rewrite produced identical content
	Unchanged Outcome = iota
	// Written means the file was overwritten
	Written
	// WouldWrite means the file would have been overwritten (dry run)
	WouldWrite
	// Skipped means the user declined the change
	Skipped
	// Failed means the handler returned an error
	Failed
)

// FileHandler processes one project-relative file; full is its absolute path
type FileHandler func(rel, full string) (Outcome, error)

// Summary aggregates the outcomes of a run
type Summary struct {
	Total     int
	Updated   int
	Unchanged int
	Skipped   int
	Failed    int
	Stopped   bool
	errs      *multierror.Error
}

// Err returns every per-file failure, or nil
func (s *Summary) Err() error {
	return s.errs.ErrorOrNil()
}

// Add merges other into s
func (s *Summary) Add(other *Summary) {
	s.Total += other.Total
	s.Updated += other.Updated
	s.Unchanged += other.Unchanged
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	s.Stopped = s.Stopped || other.Stopped
	if other.errs != nil {
		s.errs = multierror.Append(s.errs, other.errs.Errors...)
	}
}

func (s *Summary) record(o Outcome) {
	switch o {
	case Written, WouldWrite:
		s.Updated++
	case Skipped:
		s.Skipped++
	case Failed:
		s.Failed++
	default:
		s.Unchanged++
	}
}

// ForEachFile applies the handler to every file
// Returns error immediately if handler returns error
func (ctx *ProjectContext) ForEachFile(files []string, handler FileHandler) error {
	for _, rel := range files {
		if _, err := handler(rel, ctx.Abs(rel)); err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
	}
	return nil
}

// ForEachFileWithContinue applies the handler to every file
// A failing file is logged and skipped; the run continues with the next file.
// A handler returning ErrStopped ends the run.
func (ctx *ProjectContext) ForEachFileWithContinue(files []string, handler FileHandler) *Summary {
	summary := &Summary{}

	for _, rel := range files {
		outcome, err := handler(rel, ctx.Abs(rel))
		if errors.Is(err, ErrStopped) {
			summary.Stopped = true
			break
		}

		summary.Total++
		if err != nil {
			wrapped := fmt.Errorf("%w: %s: %w", ErrFileProcessing, rel, err)
			summary.errs = multierror.Append(summary.errs, wrapped)
			logger.Warn("file processing failed", zap.String("path", rel), zap.Error(err))
			outcome = Failed
		}
		summary.record(outcome)
	}

	return summary
}
