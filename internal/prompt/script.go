package prompt

import "fmt"

// Script is a Decider fed from pre-recorded answers, used in tests and
// anywhere terminal input is unavailable. Each answer queue is consumed in
// order; running past the end of the Confirms or Conflicts queue is an error
// so tests fail loudly on unexpected prompts. String and int questions fall
// back to the offered default when their queue is exhausted.
type Script struct {
	Confirms  []bool
	Conflicts []ConflictChoice
	Strings   []string
	Ints      []int
	// FolderNames limits SelectFolders to the named folders; nil selects all.
	FolderNames []string

	confirmIdx, conflictIdx, stringIdx, intIdx int
}

func (s *Script) Confirm(question string) (bool, error) {
	if s.confirmIdx >= len(s.Confirms) {
		return false, fmt.Errorf("script exhausted: unexpected confirmation %q", question)
	}
	v := s.Confirms[s.confirmIdx]
	s.confirmIdx++
	return v, nil
}

func (s *Script) ChooseConflict(destName string) (ConflictChoice, error) {
	if s.conflictIdx >= len(s.Conflicts) {
		return ChoiceSkip, fmt.Errorf("script exhausted: unexpected conflict on %q", destName)
	}
	v := s.Conflicts[s.conflictIdx]
	s.conflictIdx++
	return v, nil
}

func (s *Script) AskString(question, fallback string) (string, error) {
	if s.stringIdx >= len(s.Strings) {
		return fallback, nil
	}
	v := s.Strings[s.stringIdx]
	s.stringIdx++
	if v == "" {
		return fallback, nil
	}
	return v, nil
}

func (s *Script) AskInt(question string, fallback int) (int, error) {
	if s.intIdx >= len(s.Ints) {
		return fallback, nil
	}
	v := s.Ints[s.intIdx]
	s.intIdx++
	return v, nil
}

func (s *Script) SelectFolders(folders []Folder) ([]Folder, error) {
	if s.FolderNames == nil {
		return folders, nil
	}
	want := make(map[string]bool, len(s.FolderNames))
	for _, n := range s.FolderNames {
		want[n] = true
	}
	var picked []Folder
	for _, f := range folders {
		if want[f.Name] {
			picked = append(picked, f)
		}
	}
	return picked, nil
}
