package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/tracker"
	"github.com/theirongolddev/subtrack/internal/tui/forms"
	"github.com/theirongolddev/subtrack/internal/tui/theme"
)

type modalKind int

const (
	modalAdd modalKind = iota
	modalDelete
	modalSetup
)

const modalMaxWidth = 64

// modal is a huh form shown over the dashboard. The bound values live behind
// pointers so they survive App being copied on every Update.
type modal struct {
	kind   modalKind
	form   *huh.Form
	add    *tracker.Form
	setup  *forms.Setup
	target model.Subscription
	ok     *bool
}

func newAddModal(today int) *modal {
	m := &modal{kind: modalAdd, add: forms.NewAdd(today)}
	m.form = huh.NewForm(forms.AddGroup(m.add)).WithShowHelp(true)
	return m
}

func newDeleteModal(sub model.Subscription, amount string) *modal {
	ok := false
	m := &modal{kind: modalDelete, target: sub, ok: &ok}
	m.form = huh.NewForm(forms.DeleteGroup(sub, amount, m.ok))
	return m
}

func newSetupModal(cfg config.Config) *modal {
	m := &modal{kind: modalSetup, setup: forms.SetupFrom(cfg)}
	m.form = huh.NewForm(forms.SetupGroups(m.setup)...).WithShowHelp(true)
	return m
}

func (m *modal) resize(w, h int) {
	if w <= 0 {
		return
	}
	fw := w - 8
	if fw > modalMaxWidth {
		fw = modalMaxWidth
	}
	m.form = m.form.WithWidth(fw).WithHeight(h - 4)
}

func (a App) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" && a.modal.kind != modalSetup {
		a.modal = nil
		a.setFlash("Cancelled", false)
		return a, nil
	}

	form, cmd := a.modal.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.modal.form = f
	}

	switch a.modal.form.State {
	case huh.StateCompleted:
		m := a.modal
		a.modal = nil
		a.finishModal(m)
		return a, nil
	case huh.StateAborted:
		a.modal = nil
		return a, nil
	}
	return a, cmd
}

func (a *App) finishModal(m *modal) {
	switch m.kind {
	case modalAdd:
		in, err := m.add.Input()
		if err == nil {
			var sub model.Subscription
			sub, err = a.tracker.Add(in)
			if err == nil {
				a.subs.cursor = 0
				a.recompute()
				a.setFlash(fmt.Sprintf("Added %s, next billing %s", sub.Name, cli.FormatDisplayDate(sub.NextDate)), false)
				return
			}
		}
		a.setFlash(err.Error(), true)

	case modalDelete:
		approved := *m.ok
		removed, err := a.tracker.Remove(m.target.ID, func(model.Subscription) bool { return approved })
		switch {
		case err != nil:
			a.setFlash(err.Error(), true)
		case removed:
			a.recompute()
			a.setFlash("Removed "+m.target.Name, false)
		default:
			a.setFlash("Kept "+m.target.Name, false)
		}

	case modalSetup:
		m.setup.Apply(&a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.money = cli.NewFormatter(a.cfg.Currency)
		if err := config.Save(a.cfg); err != nil {
			a.log.Warn("saving config", zap.Error(err))
			a.setFlash("Settings apply to this session only: "+err.Error(), true)
			return
		}
		a.setFlash("Saved to "+config.ConfigPath(), false)
	}
}

func (a App) viewModal() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	body := a.modal.form.View()
	if a.modal.kind != modalSetup {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("esc to cancel")
		body += "\n" + hint
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}
