package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yejune/thai-i18n/internal/backup"
	"github.com/yejune/thai-i18n/internal/common"
	"github.com/yejune/thai-i18n/internal/i18n"
	"github.com/yejune/thai-i18n/internal/interactive"
)

var (
	backupDays int
	backupYes  bool
)

// confirmYN is replaced in tests
var confirmYN = interactive.ConfirmYN

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Clean, archive or restore file backups",
	Long: `Every file is copied to <backup.dir>/modified/yyyy/mm/dd/ before it is
overwritten. Backups from past months are packed into archived/*.tar.gz.

Examples:
  thai-i18n backup clean               # Remove backups older than backup.retention_days
  thai-i18n backup clean --days 7
  thai-i18n backup archive             # Pack past months now
  thai-i18n backup restore src/pages/member/Deposit.tsx`,
}

var backupCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old backups",
	Args:  cobra.NoArgs,
	RunE:  runBackupClean,
}

var backupArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Pack backups from past months into tar.gz archives",
	Args:  cobra.NoArgs,
	RunE:  runBackupArchive,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file...>",
	Short: "Restore files from their newest backup",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBackupRestore,
}

func init() {
	backupCleanCmd.Flags().IntVar(&backupDays, "days", 0, "Age in days (default: backup.retention_days)")
	backupRestoreCmd.Flags().BoolVarP(&backupYes, "yes", "y", false, "Restore without asking")
	backupCmd.AddCommand(backupCleanCmd)
	backupCmd.AddCommand(backupArchiveCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupClean(cmd *cobra.Command, args []string) error {
	ctx, err := loadProject()
	if err != nil {
		return err
	}

	days := backupDays
	if days == 0 {
		days = ctx.Config.Backup.RetentionDays
	}

	if err := backup.Cleanup(ctx.BackupDir(), days); err != nil {
		return err
	}
	fmt.Println(i18n.T("backup_cleaned", days))
	return nil
}

func runBackupArchive(cmd *cobra.Command, args []string) error {
	ctx, err := loadProject()
	if err != nil {
		return err
	}

	n, err := backup.ArchiveOldBackups(ctx.BackupDir())
	if err != nil {
		return err
	}
	if err := backup.UpdateArchiveCheck(ctx.BackupDir()); err != nil {
		return err
	}
	fmt.Println(i18n.T("backup_archived", n))
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	ctx, err := loadProject()
	if err != nil {
		return err
	}

	files := make([]string, 0, len(args))
	for _, arg := range args {
		files = append(files, filepath.Clean(ctx.Rel(arg)))
	}

	// Stops at the first file without a backup
	return ctx.ForEachFile(files, func(rel, full string) (common.Outcome, error) {
		latest, err := backup.Latest(ctx.BackupDir(), rel)
		if err != nil {
			return common.Failed, fmt.Errorf("%s: %w", i18n.T("backup_not_found", rel), err)
		}

		if !backupYes {
			ok, err := confirmYN(i18n.T("confirm_restore", rel, ctx.Rel(latest)))
			if err != nil {
				return common.Failed, err
			}
			if !ok {
				fmt.Println(i18n.T("file_skipped"))
				return common.Skipped, nil
			}
		}

		from, err := backup.Restore(ctx.BackupDir(), ctx.Root, rel)
		if err != nil {
			return common.Failed, err
		}
		fmt.Println(i18n.T("backup_restored", rel, ctx.Rel(from)))
		return common.Written, nil
	})
}
