package devserver

import (
	"time"

	"github.com/ssegura/abasto/internal/models"
)

func (s *Server) seed() {
	s.user = models.User{
		ID:       1,
		Name:     "Ana Suárez",
		Email:    FixtureEmail,
		Role:     "admin",
		Verified: true,
	}

	s.products = &collection[models.Product]{
		name:   "products",
		nextID: 4,
		withID: func(p models.Product, id int) models.Product { p.ID = id; return p },
		required: func(p models.Product) string {
			if p.Name == "" {
				return "name"
			}
			return ""
		},
		items: []models.Product{
			{ID: 1, Name: "Yerba mate", Price: 3200, Measure: "kg", Brand: "Playadito", Quantity: 48},
			{ID: 2, Name: "Harina 000", Price: 950, Measure: "kg", Brand: "Pureza", Quantity: 120},
			{ID: 3, Name: "Aceite de girasol", Price: 2100, Measure: "l", Brand: "Cocinero", Quantity: 36},
			{ID: 4, Name: "Azúcar", Price: 1100, Measure: "kg", Brand: "Ledesma", Quantity: 80},
		},
	}

	customers := []models.Customer{
		{ID: 1, Name: "Almacén El Trébol", Email: "eltrebol@correo.test", Phone: "11-5555-0101", Address: "Av. Rivadavia 1234"},
		{ID: 2, Name: "Despensa Norte", Email: "norte@correo.test", Phone: "11-5555-0202", Address: "Calle Belgrano 456"},
	}
	s.customers = &collection[models.Customer]{
		name:   "customers",
		nextID: 2,
		withID: func(c models.Customer, id int) models.Customer { c.ID = id; return c },
		required: func(c models.Customer) string {
			if c.Name == "" {
				return "name"
			}
			return ""
		},
		items: customers,
	}

	day := 24 * time.Hour
	now := time.Now().Truncate(time.Minute)

	deliveries := []models.Delivery{
		{ID: 1, SaleID: 1, Address: customers[0].Address, Status: models.DeliveryDelivered, Date: now.Add(-6 * day)},
		{ID: 2, SaleID: 2, Address: customers[1].Address, Status: models.DeliveryPending, Date: now.Add(-1 * day)},
	}
	s.deliveries = &collection[models.Delivery]{
		name:   "deliveries",
		nextID: 2,
		withID: func(d models.Delivery, id int) models.Delivery { d.ID = id; return d },
		items:  deliveries,
	}

	s.sales = &collection[models.Sale]{
		name:   "sales",
		nextID: 3,
		withID: func(v models.Sale, id int) models.Sale { v.ID = id; return v },
		items: []models.Sale{
			{
				ID: 1, Date: now.Add(-7 * day), Status: models.SaleCompleted, Customer: customers[0],
				Items: []models.SaleItem{
					{ID: 1, ProductID: 1, ProductName: "Yerba mate", Quantity: 10, UnitPrice: 3200},
					{ID: 2, ProductID: 4, ProductName: "Azúcar", Quantity: 5, UnitPrice: 1100},
				},
				Deliveries: deliveries[:1],
			},
			{
				ID: 2, Date: now.Add(-2 * day), Status: models.SalePending, Customer: customers[1],
				Items: []models.SaleItem{
					{ID: 3, ProductID: 3, ProductName: "Aceite de girasol", Quantity: 12, UnitPrice: 2100},
				},
				Deliveries: deliveries[1:],
			},
			{
				ID: 3, Date: now.Add(-1 * day), Status: models.SaleCancelled, Customer: customers[0],
				Items: []models.SaleItem{
					{ID: 4, ProductID: 2, ProductName: "Harina 000", Quantity: 50, UnitPrice: 950},
				},
			},
		},
	}

	s.suppliers = &collection[models.Supplier]{
		name:   "suppliers",
		nextID: 2,
		withID: func(v models.Supplier, id int) models.Supplier { v.ID = id; return v },
		required: func(v models.Supplier) string {
			if v.Name == "" {
				return "name"
			}
			return ""
		},
		items: []models.Supplier{
			{ID: 1, Name: "Distribuidora Litoral", Email: "ventas@litoral.test", Phone: "341-555-0303", TaxID: "30-11223344-5"},
			{ID: 2, Name: "Mayorista Cuyo", Email: "pedidos@cuyo.test", Phone: "261-555-0404", TaxID: "30-55667788-9"},
		},
	}

	s.employees = &collection[models.Employee]{
		name:   "employees",
		nextID: 2,
		withID: func(v models.Employee, id int) models.Employee { v.ID = id; return v },
		items: []models.Employee{
			{ID: 1, Name: "Ana Suárez", Email: FixtureEmail, Role: "admin", Active: true},
			{ID: 2, Name: "Marcos Peralta", Email: "marcos@abasto.test", Role: "ventas", Active: true},
		},
	}
}
