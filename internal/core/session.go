// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// package core glues the parser, the file layer, and the revision store
// into one edit session. The UI layers (CLI and TUI) only ever talk to a
// Session; they never combine the lower packages themselves.
package core // import "github.com/toeirei/sentinel/internal/core"

import (
	"fmt"
	"strings"
	"time"

	"github.com/toeirei/sentinel/internal/configfile"
	"github.com/toeirei/sentinel/internal/db"
	"github.com/toeirei/sentinel/internal/logging"
	"github.com/toeirei/sentinel/internal/model"
	"github.com/toeirei/sentinel/internal/sshdconf"
)

// Session is one load-edit-save cycle over a single sshd_config file.
// It assumes exclusive access to the file for its lifetime; Sentinel is
// a single-user tool and takes no locks.
type Session struct {
	Path string
	Doc  *sshdconf.Document
}

// Open reads and parses the configuration file at path.
func Open(path string) (*Session, error) {
	data, err := configfile.Load(path)
	if err != nil {
		return nil, err
	}
	doc, err := sshdconf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return &Session{Path: path, Doc: doc}, nil
}

// Reload discards in-memory edits and re-reads the file from disk.
func (s *Session) Reload() error {
	fresh, err := Open(s.Path)
	if err != nil {
		return err
	}
	s.Doc = fresh.Doc
	return nil
}

// Save serializes the document back to disk. The first save of a file
// establishes a sibling .bak copy, the write itself is atomic, and a
// revision snapshot is recorded when the revision store is available.
func (s *Session) Save(note string) error {
	if _, err := configfile.EnsureBackup(s.Path); err != nil {
		return fmt.Errorf("could not create backup: %w", err)
	}

	data := s.Doc.Serialize()
	if err := configfile.SaveAtomic(s.Path, data); err != nil {
		return err
	}

	if db.IsInitialized() {
		_, err := db.SaveRevision(model.Revision{
			Path:    s.Path,
			TakenAt: time.Now().UTC(),
			Content: string(data),
			Note:    note,
		})
		if err != nil {
			// The file write already succeeded; a history failure is
			// worth a warning, not a failed save.
			logging.Warnf("could not record revision for %s: %v", s.Path, err)
		}
		s.audit("SAVE", s.Path)
	}
	return nil
}

// Set updates the first active directive matching key, or appends a new
// one when none is active. Values are replaced wholesale.
func (s *Session) Set(key string, values ...string) error {
	for _, e := range s.Doc.FindByKey(key) {
		if e.Kind() == sshdconf.KindDirective {
			if err := s.Doc.EditDirective(e.Ref(), key, values...); err != nil {
				return err
			}
			s.audit("SET_DIRECTIVE", key+" "+strings.Join(values, " "))
			return nil
		}
	}
	if _, err := s.Doc.AddDirective(key, values...); err != nil {
		return err
	}
	s.audit("ADD_DIRECTIVE", key+" "+strings.Join(values, " "))
	return nil
}

// Add always appends a new directive line, allowing deliberate
// duplicates (e.g. a second Port).
func (s *Session) Add(key string, values ...string) (sshdconf.Ref, error) {
	ref, err := s.Doc.AddDirective(key, values...)
	if err != nil {
		return 0, err
	}
	s.audit("ADD_DIRECTIVE", key+" "+strings.Join(values, " "))
	return ref, nil
}

// Unset removes the nth entry (1-based) matching key, counting both
// active and commented-out directives in file order.
func (s *Session) Unset(key string, n int) error {
	matches := s.Doc.FindByKey(key)
	if n < 1 || n > len(matches) {
		return fmt.Errorf("no match %d of %d for %q: %w", n, len(matches), key, sshdconf.ErrEntryNotFound)
	}
	target := matches[n-1]
	if err := s.Doc.RemoveEntry(target.Ref()); err != nil {
		return err
	}
	s.audit("REMOVE_DIRECTIVE", key)
	return nil
}

// Disable comments out the first active directive matching key.
func (s *Session) Disable(key string) error {
	return s.toggleKind(key, sshdconf.KindDirective, "DISABLE_DIRECTIVE")
}

// Enable re-activates the first commented-out directive matching key.
func (s *Session) Enable(key string) error {
	return s.toggleKind(key, sshdconf.KindCommentedDirective, "ENABLE_DIRECTIVE")
}

func (s *Session) toggleKind(key string, want sshdconf.LineKind, action string) error {
	for _, e := range s.Doc.FindByKey(key) {
		if e.Kind() == want {
			if err := s.Doc.ToggleComment(e.Ref()); err != nil {
				return err
			}
			s.audit(action, key)
			return nil
		}
	}
	return fmt.Errorf("no %s entry for %q: %w", want, key, sshdconf.ErrEntryNotFound)
}

// audit writes to the audit log when the revision store is available.
// Editing works fine without a database; history is an add-on.
func (s *Session) audit(action, details string) {
	if !db.IsInitialized() {
		return
	}
	if err := db.LogAction(action, details); err != nil {
		logging.Debugf("audit write failed: %v", err)
	}
}
