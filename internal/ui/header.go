package ui

import (
	"fmt"
	"strings"
)

// renderHeader draws the status bar: identity, session deadline and the
// global activity indicator.
func (m Model) renderHeader() string {
	st := m.styles
	parts := []string{st.Title.Render("abasto")}

	if user, ok := m.opts.Session.User(); ok {
		parts = append(parts, fmt.Sprintf("%s (%s)", user.Name, user.Role))
		parts = append(parts, "sesión hasta "+m.opts.Session.ExpiresAt().Format("15:04"))
	} else {
		parts = append(parts, "sin sesión")
	}

	if m.opts.Loading.Active() {
		parts = append(parts, m.spinner.View()+fmt.Sprintf(" %d operaciones", m.opts.Loading.Count()))
	}

	return st.Header.Render(strings.Join(parts, "  ·  "))
}

// renderToasts stacks the live alerts, oldest first.
func (m Model) renderToasts() string {
	list := m.opts.Alerts.List()
	if len(list) == 0 {
		return ""
	}
	lines := make([]string, 0, len(list))
	for _, a := range list {
		lines = append(lines, m.styles.Toast.Render(strings.Join(a.Messages, " · ")))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	help := "tab vistas · r actualizar · n nuevo · e editar · d eliminar · x descartar · L salir de sesión · q salir"
	if m.view == ViewLogin {
		help = "enter ingresar · tab cambiar campo · ctrl+c salir"
	}
	return m.styles.Muted.Render(help)
}
