package ui

import (
	"fmt"
	"strings"

	"github.com/ssegura/abasto/internal/store"
)

// renderTable draws a fixed-width table with one selected row.
func (m Model) renderTable(title string, headers []string, widths []int, rows [][]string, status store.Status) string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(st.Muted.Render(status.String()))
	b.WriteString("\n")

	head := make([]string, len(headers))
	for i, h := range headers {
		head[i] = pad(h, widths[i])
	}
	b.WriteString(st.TableHead.Render(strings.Join(head, " ")))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(st.Muted.Render("(sin registros)"))
		return b.String()
	}

	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = pad(cell, widths[j])
		}
		line := strings.Join(cells, " ")
		if i == m.selectedRow {
			line = st.Selected.Render(line)
		}
		b.WriteString(line)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func (m Model) renderProducts() string {
	snap := m.opts.Products.Snapshot()
	rows := make([][]string, 0, len(snap.Items))
	for _, p := range snap.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID), p.Name, p.Brand,
			fmt.Sprintf("$%.2f", p.Price),
			fmt.Sprintf("%.0f %s", p.Quantity, p.Measure),
		})
	}
	return m.renderTable("Productos",
		[]string{"ID", "Nombre", "Marca", "Precio", "Stock"},
		[]int{4, 24, 14, 12, 12}, rows, snap.Status)
}

func (m Model) renderSales() string {
	snap := m.opts.Sales.Snapshot()
	rows := make([][]string, 0, len(snap.Items))
	for _, s := range snap.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.ID),
			s.Date.Format("2006-01-02"),
			s.Customer.Name,
			s.Status,
			fmt.Sprintf("%d ítems", len(s.Items)),
			fmt.Sprintf("$%.2f", s.Total()),
		})
	}
	return m.renderTable("Ventas",
		[]string{"ID", "Fecha", "Cliente", "Estado", "Detalle", "Total"},
		[]int{4, 11, 22, 10, 10, 12}, rows, snap.Status)
}

func (m Model) renderDeliveries() string {
	snap := m.opts.Deliveries.Snapshot()
	rows := make([][]string, 0, len(snap.Items))
	for _, d := range snap.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.ID),
			fmt.Sprintf("venta %d", d.SaleID),
			d.Address,
			d.Status,
			d.Date.Format("2006-01-02"),
		})
	}
	return m.renderTable("Entregas",
		[]string{"ID", "Venta", "Dirección", "Estado", "Fecha"},
		[]int{4, 9, 28, 11, 11}, rows, snap.Status)
}

func (m Model) renderSuppliers() string {
	snap := m.opts.Suppliers.Snapshot()
	rows := make([][]string, 0, len(snap.Items))
	for _, s := range snap.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.ID), s.Name, s.Email, s.Phone, s.TaxID,
		})
	}
	return m.renderTable("Proveedores",
		[]string{"ID", "Nombre", "Correo", "Teléfono", "CUIT"},
		[]int{4, 24, 24, 14, 15}, rows, snap.Status)
}

func (m Model) renderCustomers() string {
	snap := m.opts.Customers.Snapshot()
	rows := make([][]string, 0, len(snap.Items))
	for _, c := range snap.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.ID), c.Name, c.Email, c.Phone, c.Address,
		})
	}
	return m.renderTable("Clientes",
		[]string{"ID", "Nombre", "Correo", "Teléfono", "Dirección"},
		[]int{4, 22, 24, 14, 24}, rows, snap.Status)
}

func (m Model) renderEmployees() string {
	snap := m.opts.Employees.Snapshot()
	rows := make([][]string, 0, len(snap.Items))
	for _, e := range snap.Items {
		active := "activo"
		if !e.Active {
			active = "inactivo"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.ID), e.Name, e.Email, e.Role, active,
		})
	}
	return m.renderTable("Empleados",
		[]string{"ID", "Nombre", "Correo", "Rol", "Estado"},
		[]int{4, 22, 26, 10, 9}, rows, snap.Status)
}
