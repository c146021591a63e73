package common

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yejune/thai-i18n/internal/backup"
	"github.com/yejune/thai-i18n/internal/interactive"
	"github.com/yejune/thai-i18n/internal/logger"
	"github.com/yejune/thai-i18n/internal/patch"
	"github.com/yejune/thai-i18n/internal/source"
)

// confirmFile is replaced in tests
var confirmFile = interactive.ConfirmFile

// ApplyOptions controls how rewritten content reaches the disk
type ApplyOptions struct {
	// DryRun records the diff without writing
	DryRun bool
	// Interactive asks before each write
	Interactive bool
	// Backup copies the file before it is overwritten
	Backup bool
}

// Applier writes rewritten files for one command run
type Applier struct {
	ctx      *ProjectContext
	opts     ApplyOptions
	all      bool
	diffs    []string
	backedUp int
}

// NewApplier returns an Applier bound to the project
func (ctx *ProjectContext) NewApplier(opts ApplyOptions) *Applier {
	return &Applier{ctx: ctx, opts: opts}
}

// ApplyChange writes after over the file at rel when it differs from before.
// Returns ErrStopped when the user quits an interactive run.
func (a *Applier) ApplyChange(rel, before, after string) (Outcome, error) {
	if before == after {
		return Unchanged, nil
	}

	diff, err := patch.Unified(rel, before, after)
	if err != nil {
		return Failed, err
	}
	a.diffs = append(a.diffs, diff)

	if a.opts.DryRun {
		return WouldWrite, nil
	}

	if a.opts.Interactive && !a.all {
		choice, err := confirmFile(rel, diff)
		if err != nil {
			return Failed, err
		}
		switch choice {
		case interactive.No:
			return Skipped, nil
		case interactive.Quit:
			return Skipped, ErrStopped
		case interactive.All:
			a.all = true
		}
	}

	full := a.ctx.Abs(rel)
	if a.opts.Backup {
		path, err := backup.CreateFileBackup(full, a.ctx.BackupDir(), a.ctx.Root)
		if err != nil {
			return Failed, fmt.Errorf("backup: %w", err)
		}
		if path != "" {
			a.backedUp++
			logger.Debug("backup created", zap.String("path", rel), zap.String("backup", path))
		}
	}

	if err := source.Write(full, after, a.ctx.Config.Encoding); err != nil {
		return Failed, err
	}
	return Written, nil
}

// Diffs returns every diff produced so far
func (a *Applier) Diffs() []string {
	return a.diffs
}

// LastDiff returns the diff of the most recent change, or ""
func (a *Applier) LastDiff() string {
	if len(a.diffs) == 0 {
		return ""
	}
	return a.diffs[len(a.diffs)-1]
}

// Finish archives last month's backups once a day after a run that created backups
func (a *Applier) Finish() {
	if a.backedUp == 0 {
		return
	}

	dir := a.ctx.BackupDir()
	if !backup.ShouldRunArchive(dir) {
		return
	}

	if _, err := backup.ArchiveOldBackups(dir); err != nil {
		logger.Warn("failed to archive old backups", zap.Error(err))
		return
	}
	if err := backup.UpdateArchiveCheck(dir); err != nil {
		logger.Warn("failed to update archive check", zap.Error(err))
	}
}
