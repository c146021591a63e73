// Package i18n provides internationalization support for thai-i18n's own output
package i18n

import "fmt"

var currentLang = "en"

var messages = map[string]map[string]string{
	"en": {
		// Translate / fix runs
		"found_files":       "Found %d files",
		"profile_header":    "[%s] %s",
		"processing_files":  "Processing files...",
		"processing_file":   "Processing %s...",
		"file_updated":      "✓ Updated",
		"file_fixed":        "✓ Fixed",
		"file_no_changes":   "- No changes",
		"file_would_update": "~ Would update (+%d -%d)",
		"file_skipped":      "→ Skipped",
		"file_failed":       "✗ Failed: %v",
		"completed":         "Completed! %d/%d files updated",
		"completed_fixed":   "Completed! %d/%d files fixed",
		"total_summary":     "Total: %d/%d files updated across %d profiles",
		"files_failed":      "%d file(s) failed",
		"no_files_matched":  "No files matched",
		"dry_run_notice":    "Dry run: no files will be written",
		"uncommitted_warn":  "⚠ Uncommitted changes in %s",
		"stopped_by_user":   "Stopped by user",
		"unknown_profile":   "unknown profile: %s",
		"unknown_rule_set":  "unknown rule set: %s (syntax, braces, all)",
		"rule_hits":         "  %s ×%d",

		// Interactive
		"confirm_apply":   "Apply changes to %s?",
		"choice_yes":      "yes",
		"choice_no":       "no",
		"choice_diff":     "show diff",
		"choice_all":      "all remaining files",
		"choice_quit":     "quit",
		"select_profiles": "Select profiles to run:",

		// Scan
		"scan_clean":   "✓ No hard-coded Thai text found",
		"scan_summary": "%d Thai string(s) found, %d with a known key",
		"scan_failed":  "%d untranslated string(s) remain",

		// Dictionaries
		"dict_row":           "%-12s %6d  %s",
		"dict_builtin":       "builtin",
		"dict_valid":         "✓ %s: %d entries, all keys valid",
		"dict_invalid":       "✗ %s: %d invalid key(s)",
		"dict_invalid_entry": "    %s → %q",
		"dict_has_invalid":   "%d dictionary(ies) have invalid keys",

		// Profiles
		"profile_row": "%-12s table=%s wrap=%s import=%s hooks=%s",

		// Init
		"config_exists":           "%s already exists",
		"config_written":          "✓ Wrote %s",
		"hooks_installed":         "✓ Git hooks installed",
		"hooks_scan_note":         "  Commits will be checked with 'thai-i18n scan --fail'.",
		"hooks_uninstalled":       "✓ Git hooks uninstalled",
		"hooks_already_installed": "Git hooks already installed.",

		// Backup
		"backup_cleaned":   "✓ Removed backups older than %d day(s)",
		"backup_archived":  "✓ Archived %d month(s) of backups",
		"backup_restored":  "✓ Restored %s from %s",
		"backup_not_found": "no backup found for %s",
		"confirm_restore":  "Restore %s from %s?",
	},
	"th": {
		// Translate / fix runs
		"found_files":       "พบ %d ไฟล์",
		"profile_header":    "[%s] %s",
		"processing_files":  "กำลังประมวลผลไฟล์...",
		"processing_file":   "กำลังประมวลผล %s...",
		"file_updated":      "✓ อัปเดตแล้ว",
		"file_fixed":        "✓ แก้ไขแล้ว",
		"file_no_changes":   "- ไม่มีการเปลี่ยนแปลง",
		"file_would_update": "~ จะถูกอัปเดต (+%d -%d)",
		"file_skipped":      "→ ข้าม",
		"file_failed":       "✗ ล้มเหลว: %v",
		"completed":         "เสร็จสิ้น! อัปเดต %d/%d ไฟล์",
		"completed_fixed":   "เสร็จสิ้น! แก้ไข %d/%d ไฟล์",
		"total_summary":     "รวม: อัปเดต %d/%d ไฟล์ จาก %d โปรไฟล์",
		"files_failed":      "ล้มเหลว %d ไฟล์",
		"no_files_matched":  "ไม่พบไฟล์ที่ตรงกัน",
		"dry_run_notice":    "ทดลองรัน: จะไม่มีการเขียนไฟล์",
		"uncommitted_warn":  "⚠ มีการเปลี่ยนแปลงที่ยังไม่ได้ commit ใน %s",
		"stopped_by_user":   "หยุดโดยผู้ใช้",
		"unknown_profile":   "ไม่รู้จักโปรไฟล์: %s",
		"unknown_rule_set":  "ไม่รู้จักชุดกฎ: %s (syntax, braces, all)",
		"rule_hits":         "  %s ×%d",

		// Interactive
		"confirm_apply":   "บันทึกการเปลี่ยนแปลงใน %s?",
		"choice_yes":      "ใช่",
		"choice_no":       "ไม่",
		"choice_diff":     "แสดง diff",
		"choice_all":      "ทุกไฟล์ที่เหลือ",
		"choice_quit":     "ออก",
		"select_profiles": "เลือกโปรไฟล์ที่จะรัน:",

		// Scan
		"scan_clean":   "✓ ไม่พบข้อความภาษาไทยที่ฝังในโค้ด",
		"scan_summary": "พบข้อความภาษาไทย %d รายการ มีคีย์ที่รู้จัก %d รายการ",
		"scan_failed":  "ยังมีข้อความที่ไม่ได้แปล %d รายการ",

		// Dictionaries
		"dict_row":           "%-12s %6d  %s",
		"dict_builtin":       "ในตัว",
		"dict_valid":         "✓ %s: %d รายการ คีย์ถูกต้องทั้งหมด",
		"dict_invalid":       "✗ %s: คีย์ไม่ถูกต้อง %d รายการ",
		"dict_invalid_entry": "    %s → %q",
		"dict_has_invalid":   "พจนานุกรม %d ชุดมีคีย์ไม่ถูกต้อง",

		// Profiles
		"profile_row": "%-12s table=%s wrap=%s import=%s hooks=%s",

		// Init
		"config_exists":           "มี %s อยู่แล้ว",
		"config_written":          "✓ เขียน %s แล้ว",
		"hooks_installed":         "✓ ติดตั้ง git hooks แล้ว",
		"hooks_scan_note":         "  ทุก commit จะถูกตรวจด้วย 'thai-i18n scan --fail'",
		"hooks_uninstalled":       "✓ ถอนการติดตั้ง git hooks แล้ว",
		"hooks_already_installed": "ติดตั้ง git hooks ไว้แล้ว",

		// Backup
		"backup_cleaned":   "✓ ลบสำรองที่เก่ากว่า %d วันแล้ว",
		"backup_archived":  "✓ บีบอัดไฟล์สำรอง %d เดือนแล้ว",
		"backup_restored":  "✓ กู้คืน %s จาก %s แล้ว",
		"backup_not_found": "ไม่พบไฟล์สำรองของ %s",
		"confirm_restore":  "กู้คืน %s จาก %s?",
	},
}

// SetLanguage sets the current language for messages
func SetLanguage(lang string) {
	if _, ok := messages[lang]; ok {
		currentLang = lang
	}
}

// Language returns the current language
func Language() string {
	return currentLang
}

// T translates a message key to the current language
func T(key string, args ...interface{}) string {
	msg, ok := messages[currentLang][key]
	if !ok {
		// Fallback to key if not found
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
