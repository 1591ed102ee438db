package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes keyboard input for the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewProductForm:
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		m.view = cycleView(m.view, 1)
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.view = cycleView(m.view, -1)
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.view = ViewDashboard
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchAllCmd()

	case key.Matches(msg, m.keys.Logout):
		return m, m.logoutCmd()

	case key.Matches(msg, m.keys.Dismiss):
		if list := m.opts.Alerts.List(); len(list) > 0 {
			m.opts.Alerts.Remove(list[0].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.New) && m.view == ViewProducts:
		m.form = newProductForm(nil)
		m.view = ViewProductForm
		return m, nil

	case key.Matches(msg, m.keys.Edit) && m.view == ViewProducts:
		items := m.opts.Products.Snapshot().Items
		if m.selectedRow < len(items) {
			p := items[m.selectedRow]
			m.form = newProductForm(&p)
			m.view = ViewProductForm
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete) && m.view == ViewProducts:
		items := m.opts.Products.Snapshot().Items
		if m.selectedRow < len(items) {
			id := items[m.selectedRow].ID
			ctx := m.ctx
			products := m.opts.Products
			return m, opCmd(func() error { return products.Delete(ctx, id) })
		}
		return m, nil
	}

	return m, nil
}

func cycleView(v View, dir int) View {
	idx := 0
	for i, candidate := range cycleOrder {
		if candidate == v {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(cycleOrder)) % len(cycleOrder)
	return cycleOrder[idx]
}

// rowCount returns the table length of the active view, for selection
// clamping.
func (m Model) rowCount() int {
	switch m.view {
	case ViewProducts:
		return len(m.opts.Products.Snapshot().Items)
	case ViewSales:
		return len(m.opts.Sales.Snapshot().Items)
	case ViewDeliveries:
		return len(m.opts.Deliveries.Snapshot().Items)
	case ViewSuppliers:
		return len(m.opts.Suppliers.Snapshot().Items)
	case ViewCustomers:
		return len(m.opts.Customers.Snapshot().Items)
	case ViewEmployees:
		return len(m.opts.Employees.Snapshot().Items)
	default:
		return 0
	}
}
