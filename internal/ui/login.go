package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ssegura/abasto/internal/api"
	"github.com/ssegura/abasto/internal/models"
)

// loginState holds the credential form.
type loginState struct {
	email    textinput.Model
	password textinput.Model
	focus    int // 0 email, 1 password
	busy     bool
	errMsg   string
}

func newLoginState() loginState {
	email := textinput.New()
	email.Placeholder = "correo@ejemplo.com"
	email.CharLimit = 120
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Placeholder = "contraseña"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120
	password.Width = 36

	return loginState{email: email, password: password}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab:
		m.login.focus = 1 - m.login.focus
		m.login = m.login.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.login.focus == 0 {
			m.login.focus = 1
			m.login = m.login.applyFocus()
			return m, nil
		}
		if m.login.busy {
			return m, nil
		}
		m.login.busy = true
		m.login.errMsg = ""
		return m, m.submitLoginCmd()
	}

	if m.login.busy {
		return m, nil
	}
	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (s loginState) applyFocus() loginState {
	if s.focus == 0 {
		s.email.Focus()
		s.password.Blur()
	} else {
		s.email.Blur()
		s.password.Focus()
	}
	return s
}

func (m Model) submitLoginCmd() tea.Cmd {
	ctx := m.ctx
	sess := m.opts.Session
	email := m.login.email.Value()
	password := m.login.password.Value()
	return func() tea.Msg {
		return loginResultMsg{err: sess.Login(ctx, email, password, true)}
	}
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.login.errMsg = loginErrorText(msg.err)
		return m, nil
	}
	m.view = ViewDashboard
	m.selectedRow = 0
	return m, m.fetchAllCmd()
}

// loginErrorText resolves a login failure to display text. The login form is
// a session operation, not a store one, so it owns its own presentation.
func loginErrorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Messages()[0]
	}
	var transportErr *api.TransportError
	if errors.As(err, &transportErr) {
		return "No se pudo conectar al servidor"
	}
	return api.Translate(api.CodeUnknown)
}

func (m Model) renderLogin() string {
	st := m.styles
	lines := []string{
		st.Title.Render("Abasto · acceso"),
		"",
		st.FormLabel.Render("Correo") + m.login.email.View(),
		st.FormLabel.Render("Contraseña") + m.login.password.View(),
	}
	if m.login.busy {
		lines = append(lines, "", m.spinner.View()+" ingresando...")
	}
	if m.login.errMsg != "" {
		lines = append(lines, "", st.Danger.Render(m.login.errMsg))
	}
	if teaser := m.renderTeaser(); teaser != "" {
		lines = append(lines, "", teaser)
	}
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// renderTeaser shows the public landing statistics fetched without a
// session.
func (m Model) renderTeaser() string {
	products := m.opts.Products.Snapshot().Items
	sales := m.opts.Sales.Snapshot().Items
	if len(products) == 0 && len(sales) == 0 {
		return ""
	}
	return m.styles.Muted.Render(fmt.Sprintf(
		"%d productos en catálogo · %d ventas registradas · ingresos $%.2f",
		len(products), len(sales), models.TotalRevenue(sales),
	))
}
