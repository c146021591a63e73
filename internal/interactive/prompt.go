package interactive

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/yejune/thai-i18n/internal/i18n"
	"github.com/yejune/thai-i18n/internal/patch"
)

// askOne is replaced in tests
var askOne = survey.AskOne

// showDiff is replaced in tests
var showDiff = ShowDiff

// Choice is the answer to a per-file confirmation
type Choice int

const (
	// Yes writes this file
	Yes Choice = iota
	// No skips this file
	No
	// All writes this file and every remaining one without asking
	All
	// Quit stops the run
	Quit
)

// ConfirmFile asks whether to write one rewritten file.
// "show diff" pages the diff and asks again.
func ConfirmFile(file, diff string) (Choice, error) {
	options := []string{
		i18n.T("choice_yes"),
		i18n.T("choice_no"),
		i18n.T("choice_diff"),
		i18n.T("choice_all"),
		i18n.T("choice_quit"),
	}

	for {
		var selected string
		prompt := &survey.Select{
			Message: i18n.T("confirm_apply", file),
			Options: options,
		}
		if err := askOne(prompt, &selected); err != nil {
			return Quit, err
		}

		switch selected {
		case options[0]:
			return Yes, nil
		case options[1]:
			return No, nil
		case options[2]:
			if err := showDiff(patch.Colorize(diff)); err != nil {
				return Quit, err
			}
		case options[3]:
			return All, nil
		case options[4]:
			return Quit, nil
		default:
			return Quit, fmt.Errorf("selected option not found")
		}
	}
}

// SelectProfiles allows multi-selection of profiles, with defaults pre-selected
func SelectProfiles(names, defaults []string) ([]string, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no profiles to select from")
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message:  i18n.T("select_profiles"),
		Options:  names,
		Default:  defaults,
		PageSize: 15,
	}

	if err := askOne(prompt, &selected); err != nil {
		return nil, err
	}

	return selected, nil
}

// ShowDiff displays a diff with pager
func ShowDiff(diff string) error {
	pager := os.Getenv("PAGER")
	if pager == "" {
		for _, p := range []string{"less", "more", "cat"} {
			if _, err := exec.LookPath(p); err == nil {
				pager = p
				break
			}
		}
	}

	if pager == "" {
		// Fallback: just print
		fmt.Println(diff)
		return nil
	}

	cmd := exec.Command(pager)
	if pager == "less" {
		cmd.Args = append(cmd.Args, "-R") // Enable color
	}
	cmd.Stdin = strings.NewReader(diff)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// ConfirmYN prompts user with y/N (default: no)
// Returns true only if user explicitly types y/yes
func ConfirmYN(message string) (bool, error) {
	result := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}

	err := askOne(prompt, &result)
	return result, err
}
