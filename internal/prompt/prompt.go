// Package prompt defines the decision-provider capability the transactions
// use for every interactive choice: proceed/cancel confirmations, per-file
// conflict resolution under the "ask" strategy, and the folder/prefix/number
// questions of interactive mode.
//
// The core never talks to a terminal directly; it calls a Decider. [Terminal]
// is the Bubble Tea implementation used by the CLI, [Script] is the test
// double, and [AutoYes] wraps another Decider for --yes runs.
package prompt

import "errors"

// ErrAborted is returned when the operator cancels a prompt (ctrl+c / esc).
var ErrAborted = errors.New("aborted by operator")

// ConflictChoice is the operator's answer to a destination-name conflict.
type ConflictChoice int

const (
	ChoiceSkip ConflictChoice = iota
	ChoiceSuffix
	ChoiceBackup
	ChoiceOverwrite
)

// String returns the strategy name of the choice.
func (c ConflictChoice) String() string {
	switch c {
	case ChoiceSkip:
		return "skip"
	case ChoiceSuffix:
		return "suffix"
	case ChoiceBackup:
		return "backup"
	case ChoiceOverwrite:
		return "overwrite"
	}
	return "unknown"
}

// Folder describes a subdirectory offered for interactive processing.
type Folder struct {
	Name      string // Directory basename.
	Path      string // Absolute path.
	FileCount int    // Regular files directly inside.
}

// Decider supplies operator decisions to the rename and rollback
// transactions.
type Decider interface {
	// Confirm asks a yes/no question.
	Confirm(question string) (bool, error)
	// ChooseConflict asks how to handle an occupied destination name.
	ChooseConflict(destName string) (ConflictChoice, error)
	// AskString asks for a free-form value; empty input yields fallback.
	AskString(question, fallback string) (string, error)
	// AskInt asks for an integer; empty input yields fallback.
	AskInt(question string, fallback int) (int, error)
	// SelectFolders asks which of the offered subfolders to process.
	SelectFolders(folders []Folder) ([]Folder, error)
}

// AutoYes wraps a Decider and answers yes to every confirmation, for --yes
// runs. All other decisions are delegated.
type AutoYes struct {
	Next Decider
}

func (a AutoYes) Confirm(string) (bool, error) { return true, nil }

func (a AutoYes) ChooseConflict(destName string) (ConflictChoice, error) {
	return a.Next.ChooseConflict(destName)
}

func (a AutoYes) AskString(question, fallback string) (string, error) {
	return a.Next.AskString(question, fallback)
}

func (a AutoYes) AskInt(question string, fallback int) (int, error) {
	return a.Next.AskInt(question, fallback)
}

func (a AutoYes) SelectFolders(folders []Folder) ([]Folder, error) {
	return a.Next.SelectFolders(folders)
}
