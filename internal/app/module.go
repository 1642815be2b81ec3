package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/search"
	"github.com/chatter/rit/internal/view"
)

// InputOption is a bitmask of raw-event categories a Module declares it
// wants. The driver does not filter on it: Update passes every message to
// the active module's ReadEvent and dispatches whatever event that claims.
type InputOption int

const (
	InputResize InputOption = 1 << iota
	InputHelp
	InputUndoRedo
	InputSearchStart
	InputKeys
)

// Module is one screen/state of the driver: list, show-commit, a
// confirmation prompt, and so on.
type Module interface {
	// Activate is called when the driver switches to this module. prev is
	// the state being left.
	Activate(prev State) Results

	// InputOptions reports which event categories this module wants.
	InputOptions() InputOption

	// ReadEvent translates a raw terminal message into this module's
	// semantic event, or nil if the module does not claim it.
	ReadEvent(msg tea.Msg) Event

	// HandleEvent executes a semantic event and returns the resulting
	// artifacts.
	HandleEvent(ev Event) Results

	// BuildViewData produces the module's current display.
	BuildViewData(width, height int) view.Data
}

// Event is a semantic, module-specific command (not a raw key message).
// Modules define their own concrete event types; Event is their marker.
type Event interface{ isEvent() }

// baseEvent lets a module declare a concrete event type with one line.
type baseEvent struct{}

func (baseEvent) isEvent() {}

// Results is an ordered bundle of artifacts a module hook returns.
type Results struct {
	artifacts []artifact
}

func (r *Results) add(a artifact) *Results {
	r.artifacts = append(r.artifacts, a)
	return r
}

// ChangeState requests a transition to a new module state.
func (r *Results) ChangeState(s State) *Results { return r.add(changeStateArtifact{s}) }

// Exit requests the driver terminate with the given code.
func (r *Results) Exit(code ExitCode) *Results { return r.add(exitArtifact{code}) }

// Fail requests the Error module be entered with err, returning to
// returnState when dismissed.
func (r *Results) Fail(err error, returnState State) *Results {
	return r.add(errorArtifact{err: err, returnState: returnState})
}

// StartSearch requests the search worker begin matching term.
func (r *Results) StartSearch(term string) *Results { return r.add(searchTermArtifact{term}) }

// CancelSearch requests the active search be interrupted and cleared.
func (r *Results) CancelSearch() *Results { return r.add(searchCancelArtifact{}) }

// EnqueueResize asks the driver to recompute a tea.WindowSizeMsg once more
// (used after a module transition that changes chrome height).
func (r *Results) EnqueueResize() *Results { return r.add(resizeArtifact{}) }

// LoadDiff requests the diff worker load rev and deliver the result back
// to the active module as a diffResultMsg.
func (r *Results) LoadDiff(rev string) *Results { return r.add(diffLoadArtifact{rev}) }

type artifact interface{ isArtifact() }

type changeStateArtifact struct{ to State }
type exitArtifact struct{ code ExitCode }
type errorArtifact struct {
	err         error
	returnState State
}
type searchTermArtifact struct{ term string }
type searchCancelArtifact struct{}
type resizeArtifact struct{}
type diffLoadArtifact struct{ rev string }

func (changeStateArtifact) isArtifact()  {}
func (exitArtifact) isArtifact()         {}
func (errorArtifact) isArtifact()        {}
func (searchTermArtifact) isArtifact()   {}
func (searchCancelArtifact) isArtifact() {}
func (resizeArtifact) isArtifact()       {}
func (diffLoadArtifact) isArtifact()     {}

// searchableArtifact hands the driver the handle a module wants the search
// worker to operate against (only List currently publishes one).
type searchableArtifact struct{ handle *search.Search }

func (searchableArtifact) isArtifact() {}

// Searchable registers handle as the active search target.
func (r *Results) Searchable(handle *search.Search) *Results {
	return r.add(searchableArtifact{handle})
}
