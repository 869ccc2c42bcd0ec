package team

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/runios/internal/log"
	"github.com/raphi011/runios/internal/profile"
)

// NoneOfThese is the extra option offered after a list of team IDs.
const NoneOfThese = "None of these"

const (
	msgWhichTeam  = "Which development team do you want to use?"
	msgSearch     = "Would you like me to search for a valid development team for you?"
	msgSearchDir  = "Where should I search for your existing Xcode projects?"
	msgTypeTeam   = "What 10-character development team ID do you want to use?"
	msgSaveChoice = "Would you like to save this choice so that I use it by default when passing --development-team without arguments next time?"
)

// Prompter asks the user questions. Every method blocks until answered.
// Any returned error ends the resolution with ErrAborted.
type Prompter interface {
	// Select returns one of options.
	Select(ctx context.Context, message string, options []string) (string, error)
	// Confirm returns the user's yes/no answer.
	Confirm(ctx context.Context, message string) (bool, error)
	// Input returns free text. validate errors are shown and the user is
	// asked again; they are never returned.
	Input(ctx context.Context, message, defaultValue string, validate func(string) error) (string, error)
}

// Searcher finds candidate team IDs in project files under baseDir.
type Searcher interface {
	Search(ctx context.Context, baseDir string) ([]string, error)
}

// Store persists the whole profile.
type Store interface {
	Save(p profile.Profile) error
}

// Resolver produces one validated team ID per run.
type Resolver struct {
	Prompter Prompter
	Searcher Searcher
	Store    Store
	// HomeDir is the suggested search root. Defaults to the user's home.
	HomeDir string
}

// Resolve returns the team to build with and the possibly updated profile.
// For NotRequested it returns an empty ID and p unchanged.
func (r *Resolver) Resolve(ctx context.Context, req Request, p profile.Profile) (string, profile.Profile, error) {
	l := log.FromContext(ctx)

	switch req.Kind {
	case NotRequested:
		return "", p, nil
	case UseDefault:
		if p.HasDefault() {
			l.Println("Using saved development team:", p.DevTeam)
			return p.DevTeam, p, nil
		}
		l.Debug("no saved development team")
	case Explicit:
		if Valid(req.Value) {
			return r.acceptExplicit(ctx, req.Value, p)
		}
		l.Debug("ignoring development team with wrong length", "value", req.Value, "length", len(req.Value))
	}

	return r.Choose(ctx, p)
}

// Choose runs the interactive resolution even when a default is saved.
func (r *Resolver) Choose(ctx context.Context, p profile.Profile) (string, profile.Profile, error) {
	s := &session{r: r, profile: p}
	id, err := s.run(ctx)
	return id, s.profile, err
}

// acceptExplicit uses a well-formed explicit value. When it differs from the
// saved default the user may save it; an unanswerable save prompt leaves the
// profile untouched but still returns the value.
func (r *Resolver) acceptExplicit(ctx context.Context, id string, p profile.Profile) (string, profile.Profile, error) {
	if id == p.DevTeam {
		return id, p, nil
	}

	save, err := r.Prompter.Confirm(ctx, msgSaveChoice)
	if err != nil {
		log.FromContext(ctx).Debug("save prompt unavailable, not saving team", "err", err)
		return id, p, nil
	}
	if save {
		p, _ = SaveDefault(ctx, r.Store, p, id)
	}
	return id, p, nil
}

// SaveDefault makes id the default team and persists the profile. It
// reports whether a write happened; an id equal to the current default is
// a no-op. Write errors are logged, not returned, since the team is usable
// either way.
func SaveDefault(ctx context.Context, store Store, p profile.Profile, id string) (profile.Profile, bool) {
	l := log.FromContext(ctx)

	if p.DevTeam == id {
		l.Println("This is already your default development team:", id)
		return p, false
	}

	p.DevTeam = id
	l.Println("Saving development team to cache for future use:", id)
	l.Println("Next time, running --development-team without argument will use this saved value.")
	if err := store.Save(p); err != nil {
		l.Printf("Warning: failed to save development team: %v\n", err)
	}
	return p, true
}

type state int

const (
	stateChooseSource state = iota
	stateSearch
	stateManual
	stateConfirmSave
	stateDone
)

func (s state) String() string {
	switch s {
	case stateChooseSource:
		return "choose-source"
	case stateSearch:
		return "search"
	case stateManual:
		return "manual"
	case stateConfirmSave:
		return "confirm-save"
	default:
		return "done"
	}
}

// session is one pass through the interactive resolution.
type session struct {
	r       *Resolver
	profile profile.Profile
	value   string
}

func (s *session) run(ctx context.Context) (string, error) {
	l := log.FromContext(ctx)
	st := stateChooseSource

	for st != stateDone {
		l.Debug("team resolution", "state", st)

		var err error
		switch st {
		case stateChooseSource:
			st, err = s.chooseSource(ctx)
		case stateSearch:
			st, err = s.search(ctx)
		case stateManual:
			st, err = s.manual(ctx)
		case stateConfirmSave:
			st, err = s.confirmSave(ctx)
		}
		if err != nil {
			l.Debug("team resolution aborted", "state", st, "err", err)
			return "", ErrAborted
		}
	}
	return s.value, nil
}

func (s *session) chooseSource(ctx context.Context) (state, error) {
	if len(s.profile.DevTeams) == 0 {
		return stateSearch, nil
	}
	return s.pick(ctx, stateChooseSource, s.profile.DevTeams, stateSearch)
}

// pick offers ids plus NoneOfThese. A pick moves to ConfirmSave,
// NoneOfThese moves to next. A failed prompt stays in cur.
func (s *session) pick(ctx context.Context, cur state, ids []string, next state) (state, error) {
	options := append(append([]string(nil), ids...), NoneOfThese)
	choice, err := s.r.Prompter.Select(ctx, msgWhichTeam, options)
	if err != nil {
		return cur, err
	}
	if choice == NoneOfThese {
		return next, nil
	}
	s.value = choice
	return stateConfirmSave, nil
}

func (s *session) search(ctx context.Context) (state, error) {
	l := log.FromContext(ctx)

	ok, err := s.r.Prompter.Confirm(ctx, msgSearch)
	if err != nil {
		return stateSearch, err
	}
	if !ok {
		return stateManual, nil
	}

	home := s.r.HomeDir
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	answer, err := s.r.Prompter.Input(ctx, msgSearchDir, home, validateDir)
	if err != nil {
		return stateSearch, err
	}
	dir := expandHome(strings.TrimSpace(answer), home)

	l.Println()
	l.Println("Looking for development teams...")
	found, err := s.r.Searcher.Search(ctx, dir)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return stateSearch, err
		}
		l.Printf("Warning: search failed: %v\n", err)
	}
	if len(found) == 0 {
		l.Println("I found no development teams, let's try typing.")
		return stateManual, nil
	}

	s.profile.DevTeams = found
	if err := s.r.Store.Save(s.profile); err != nil {
		l.Printf("Warning: failed to remember development teams: %v\n", err)
	}
	return s.pick(ctx, stateSearch, found, stateManual)
}

func (s *session) manual(ctx context.Context) (state, error) {
	id, err := s.r.Prompter.Input(ctx, msgTypeTeam, "", ValidateID)
	if err != nil {
		return stateManual, err
	}
	s.value = id
	return stateConfirmSave, nil
}

func (s *session) confirmSave(ctx context.Context) (state, error) {
	save, err := s.r.Prompter.Confirm(ctx, msgSaveChoice)
	if err != nil {
		return stateConfirmSave, err
	}
	if save {
		s.profile, _ = SaveDefault(ctx, s.r.Store, s.profile, s.value)
	}
	return stateDone, nil
}

// ValidateID explains why a typed team ID is not usable.
func ValidateID(answer string) error {
	if answer == "" {
		return fmt.Errorf("I need a development team ID to continue")
	}
	if !Valid(answer) {
		return fmt.Errorf("a valid development team ID is %d characters long, this was not. Try again?", IDLength)
	}
	return nil
}

func validateDir(answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fmt.Errorf("enter a directory to search")
	}
	info, err := os.Stat(expandHome(answer, ""))
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s does not exist", answer)
	}
	return nil
}

// expandHome expands a leading ~ to home (or the user's home if empty).
func expandHome(path, home string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		home = h
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
