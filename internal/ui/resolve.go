// Package ui is the interactive resolution screen. It drives a merge
// session hunk by hunk and records every change in the action history so
// resolutions can be undone and redone.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcucci/weavr/internal/ai"
	"github.com/jcucci/weavr/internal/logging"
	"github.com/jcucci/weavr/internal/merge"
)

// suggestionMsg delivers an async AI suggestion back to the model.
type suggestionMsg struct {
	hunk merge.HunkID
	res  merge.Resolution
	err  error
}

// explanationMsg delivers an async AI explanation back to the model.
type explanationMsg struct {
	text string
	err  error
}

// ResolveModel is the bubbletea model for the resolve screen.
type ResolveModel struct {
	session  *merge.MergeSession
	history  *merge.ActionHistory
	resolver *ai.Resolver
	logger   logging.Logger

	keys     keyMap
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	current    int // index into session.Hunks()
	status     string
	suggesting bool

	// Finished is true when the user applied and validated the session;
	// Aborted when they quit without finishing. On Finished the session
	// is left in the Validated state for the caller to complete.
	Finished bool
	Aborted  bool
}

// NewResolveModel builds the resolve screen for a session. The resolver
// may be nil, which disables the AI suggest binding.
func NewResolveModel(session *merge.MergeSession, resolver *ai.Resolver, logger logging.Logger) ResolveModel {
	if logger == nil {
		logger = logging.NewNil()
	}
	return ResolveModel{
		session:  session,
		history:  merge.NewActionHistory(),
		resolver: resolver,
		logger:   logger,
		keys:     defaultKeyMap(),
	}
}

// Init enters the alt screen.
func (m ResolveModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles key and window events.
func (m ResolveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.refreshViewport()
		return m, nil

	case suggestionMsg:
		m.suggesting = false
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("suggestion failed: %v", msg.err))
			return m, nil
		}
		m.setResolution(msg.hunk, msg.res)
		m.status = infoStyle.Render("applied AI suggestion")
		m.refreshViewport()
		return m, nil

	case explanationMsg:
		m.suggesting = false
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("explain failed: %v", msg.err))
			return m, nil
		}
		m.status = infoStyle.Render(strings.ReplaceAll(msg.text, "\n", " "))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ResolveModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	hunks := m.session.Hunks()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Aborted = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		if m.current < len(hunks)-1 {
			m.current++
			m.status = ""
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if m.current > 0 {
			m.current--
			m.status = ""
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextUnresolved):
		for offset := 1; offset <= len(hunks); offset++ {
			i := (m.current + offset) % len(hunks)
			if hunks[i].State.Status != merge.HunkResolved {
				m.current = i
				m.status = ""
				m.refreshViewport()
				break
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.AcceptLeft):
		if len(hunks) > 0 {
			h := hunks[m.current]
			m.setResolution(h.ID, merge.NewAcceptLeft(&h))
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.AcceptRight):
		if len(hunks) > 0 {
			h := hunks[m.current]
			m.setResolution(h.ID, merge.NewAcceptRight(&h))
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.AcceptBoth):
		if len(hunks) > 0 {
			h := hunks[m.current]
			m.setResolution(h.ID, merge.NewAcceptBoth(&h, merge.BothOptions{}))
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.AcceptBothDedup):
		if len(hunks) > 0 {
			h := hunks[m.current]
			m.setResolution(h.ID, merge.NewAcceptBoth(&h, merge.BothOptions{Deduplicate: true}))
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if len(hunks) > 0 {
			m.clearResolution(hunks[m.current].ID)
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Suggest):
		if m.resolver == nil {
			m.status = errorStyle.Render("AI suggestions are not configured")
			return m, nil
		}
		if m.suggesting || len(hunks) == 0 {
			return m, nil
		}
		m.suggesting = true
		m.status = infoStyle.Render("asking the model...")
		h := hunks[m.current]
		path := m.session.Path()
		resolver := m.resolver
		return m, func() tea.Msg {
			res, err := resolver.ResolveHunk(context.Background(), path, &h)
			return suggestionMsg{hunk: h.ID, res: res, err: err}
		}

	case key.Matches(msg, m.keys.Explain):
		if m.resolver == nil {
			m.status = errorStyle.Render("AI suggestions are not configured")
			return m, nil
		}
		if m.suggesting || len(hunks) == 0 {
			return m, nil
		}
		m.suggesting = true
		m.status = infoStyle.Render("asking the model...")
		h := hunks[m.current]
		path := m.session.Path()
		resolver := m.resolver
		return m, func() tea.Msg {
			text, err := resolver.ExplainHunk(context.Background(), path, &h)
			return explanationMsg{text: text, err: err}
		}

	case key.Matches(msg, m.keys.Undo):
		m.undo()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		m.redo()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		if _, err := m.session.Apply(); err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("cannot apply: %v", err))
			return m, nil
		}
		if err := m.session.Validate(); err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("validation failed: %v", err))
			return m, nil
		}
		m.Finished = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// setResolution applies a resolution and records it for undo.
func (m *ResolveModel) setResolution(id merge.HunkID, res merge.Resolution) {
	var old *merge.Resolution
	if prior, ok := m.session.Resolution(id); ok {
		p := prior
		old = &p
	}
	if err := m.session.SetResolution(id, res); err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	r := res
	action := merge.Action{Kind: merge.ActionSet, Hunk: id, Old: old, New: &r}
	m.history.Record(action)
	m.status = infoStyle.Render(action.Description())
	m.logger.Log("ui: %s on hunk %d", action.Description(), id)
}

// clearResolution removes a resolution and records it for undo.
func (m *ResolveModel) clearResolution(id merge.HunkID) {
	prior, ok := m.session.Resolution(id)
	if !ok {
		m.status = infoStyle.Render("nothing to clear")
		return
	}
	if err := m.session.ClearResolution(id); err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	p := prior
	m.history.Record(merge.Action{Kind: merge.ActionClear, Hunk: id, Old: &p})
	m.status = infoStyle.Render("Clear resolution")
	m.logger.Log("ui: cleared resolution on hunk %d", id)
}

// undo reverts the most recent action by restoring its prior state.
func (m *ResolveModel) undo() {
	action, ok := m.history.Undo()
	if !ok {
		m.status = infoStyle.Render("nothing to undo")
		return
	}
	var err error
	if action.Old != nil {
		err = m.session.SetResolution(action.Hunk, *action.Old)
	} else {
		err = m.session.ClearResolution(action.Hunk)
	}
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.status = infoStyle.Render("undid: " + action.Description())
}

// redo replays the most recently undone action.
func (m *ResolveModel) redo() {
	action, ok := m.history.Redo()
	if !ok {
		m.status = infoStyle.Render("nothing to redo")
		return
	}
	var err error
	if action.New != nil {
		err = m.session.SetResolution(action.Hunk, *action.New)
	} else {
		err = m.session.ClearResolution(action.Hunk)
	}
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.status = infoStyle.Render("redid: " + action.Description())
}

func (m *ResolveModel) refreshViewport() {
	if !m.ready {
		return
	}
	hunks := m.session.Hunks()
	if len(hunks) == 0 {
		m.viewport.SetContent(infoStyle.Render("no conflicts in this file"))
		return
	}
	hunk := hunks[m.current]
	m.viewport.SetContent(renderHunk(&hunk, hunk.State.Resolution))
}

// View renders header, hunk viewport, status line, and help line.
func (m ResolveModel) View() string {
	if !m.ready {
		return "loading..."
	}

	hunks := m.session.Hunks()
	resolved := len(hunks) - len(m.session.UnresolvedHunks())

	header := titleStyle.Render(fmt.Sprintf("weavr: %s", m.session.Path()))
	var position string
	if len(hunks) > 0 {
		position = fmt.Sprintf("hunk %d/%d", m.current+1, len(hunks))
	}
	progress := fmt.Sprintf("%d/%d resolved", resolved, len(hunks))
	var stateLabel string
	if m.session.State() == merge.FullyResolved {
		stateLabel = resolvedStyle.Render("ready to apply")
	} else {
		stateLabel = unresolvedStyle.Render(m.session.State().String())
	}
	bar := statusBarStyle.Render(strings.TrimSpace(position + "  " + progress + "  ")) + stateLabel

	help := helpStyle.Render(
		"l/r/b/d resolve · c clear · a/e ai · u undo · ctrl+r redo · n/p/space hunk · enter apply · q quit")

	return header + "\n" + bar + "\n" + m.viewport.View() + "\n" + m.status + "\n" + help
}

// Run drives the resolve screen to completion and returns the final
// model so the caller can read Output, Finished, and Aborted.
func Run(session *merge.MergeSession, resolver *ai.Resolver, logger logging.Logger) (*ResolveModel, error) {
	p := tea.NewProgram(NewResolveModel(session, resolver, logger))
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running resolve UI: %w", err)
	}
	final, ok := result.(ResolveModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type: %T", result)
	}
	return &final, nil
}
