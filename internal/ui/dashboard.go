package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ssegura/abasto/internal/models"
)

const lowStockThreshold = 10

// renderDashboard derives the headline statistics from the four populated
// lists.
func (m Model) renderDashboard() string {
	st := m.styles

	products := m.opts.Products.Snapshot().Items
	sales := m.opts.Sales.Snapshot().Items
	deliveries := m.opts.Deliveries.Snapshot().Items
	suppliers := m.opts.Suppliers.Snapshot().Items

	lowStock := 0
	for _, p := range products {
		if p.Quantity < lowStockThreshold {
			lowStock++
		}
	}
	pendingDeliveries := 0
	for _, d := range deliveries {
		if d.Status == models.DeliveryPending || d.Status == models.DeliveryShipped {
			pendingDeliveries++
		}
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		st.StatCard.Render(fmt.Sprintf("Ingresos\n$%.2f", models.TotalRevenue(sales))),
		st.StatCard.Render(fmt.Sprintf("Productos\n%d (%d bajos)", len(products), lowStock)),
		st.StatCard.Render(fmt.Sprintf("Ventas\n%d", len(sales))),
		st.StatCard.Render(fmt.Sprintf("Entregas\n%d pendientes", pendingDeliveries)),
		st.StatCard.Render(fmt.Sprintf("Proveedores\n%d", len(suppliers))),
	)

	return st.Title.Render("Panel general") + "\n" + cards
}
