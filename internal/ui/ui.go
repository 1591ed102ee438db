// Package ui implements the Bubble Tea terminal interface: login, dashboard
// statistics, entity tables, the product form, the global activity spinner
// and the toast notifications fed by the alert center.
package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ssegura/abasto/internal/alerts"
	"github.com/ssegura/abasto/internal/loading"
	"github.com/ssegura/abasto/internal/models"
	"github.com/ssegura/abasto/internal/session"
	"github.com/ssegura/abasto/internal/store"
)

// View identifies the active screen.
type View int

const (
	ViewLogin View = iota
	ViewDashboard
	ViewProducts
	ViewSales
	ViewDeliveries
	ViewSuppliers
	ViewCustomers
	ViewEmployees
	ViewProductForm
)

// cycleOrder is the tab rotation through the protected views.
var cycleOrder = []View{
	ViewDashboard, ViewProducts, ViewSales, ViewDeliveries,
	ViewSuppliers, ViewCustomers, ViewEmployees,
}

const (
	uiTick   = 500 * time.Millisecond
	toastTTL = 5 * time.Second
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Log     *slog.Logger
	Session *session.Store
	Loading *loading.Tracker
	Alerts  *alerts.Center

	Products   *store.Store[models.Product]
	Sales      *store.Store[models.Sale]
	Deliveries *store.Store[models.Delivery]
	Suppliers  *store.Store[models.Supplier]
	Customers  *store.Store[models.Customer]
	Employees  *store.Store[models.Employee]
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx  context.Context
	log  *slog.Logger
	opts Options

	keys   keyMap
	styles Styles

	width  int
	height int
	ready  bool

	view        View
	selectedRow int

	spinner spinner.Model

	login loginState
	form  productFormState
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:     ctx,
		log:     log,
		opts:    opts,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		view:    ViewLogin,
		spinner: sp,
		login:   newLoginState(),
	}
	if opts.Session.Valid() {
		m.view = ViewDashboard
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(),
		m.spinner.Tick,
	}
	if m.view == ViewLogin {
		cmds = append(cmds, m.fetchSharedCmd())
	} else {
		cmds = append(cmds, m.fetchAllCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Auth guard: a pure function of session validity, evaluated before
	// anything renders. Protected views fall back to login; the login view
	// advances once a session exists.
	if !m.opts.Session.Valid() && m.view != ViewLogin {
		m.view = ViewLogin
		m.login = newLoginState()
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.expireToasts()
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		// Stores mutated themselves; a re-render picks up the snapshots.
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case logoutDoneMsg:
		m.view = ViewLogin
		m.login = newLoginState()
		return m, m.fetchSharedCmd()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}

	var body string
	switch m.view {
	case ViewLogin:
		body = m.renderLogin()
	case ViewDashboard:
		body = m.renderDashboard()
	case ViewProducts:
		body = m.renderProducts()
	case ViewSales:
		body = m.renderSales()
	case ViewDeliveries:
		body = m.renderDeliveries()
	case ViewSuppliers:
		body = m.renderSuppliers()
	case ViewCustomers:
		body = m.renderCustomers()
	case ViewEmployees:
		body = m.renderEmployees()
	case ViewProductForm:
		body = m.renderProductForm()
	}

	sections := []string{m.renderHeader(), body}
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.renderFooter())
	out := ""
	for i, s := range sections {
		if i > 0 {
			out += "\n"
		}
		out += s
	}
	return out
}

// messages

type tickMsg time.Time

type opDoneMsg struct{}

type loginResultMsg struct{ err error }

type logoutDoneMsg struct{}

// commands

func tickCmd() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// opCmd runs a store operation off the UI goroutine. Failures land in the
// store envelope and the alert center; the message only triggers a render.
func opCmd(run func() error) tea.Cmd {
	return func() tea.Msg {
		_ = run()
		return opDoneMsg{}
	}
}

// fetchAllCmd refreshes every entity store in parallel; each one settles
// independently.
func (m Model) fetchAllCmd() tea.Cmd {
	ctx := m.ctx
	return tea.Batch(
		opCmd(func() error { return m.opts.Products.FetchAll(ctx) }),
		opCmd(func() error { return m.opts.Sales.FetchAll(ctx) }),
		opCmd(func() error { return m.opts.Deliveries.FetchAll(ctx) }),
		opCmd(func() error { return m.opts.Suppliers.FetchAll(ctx) }),
		opCmd(func() error { return m.opts.Customers.FetchAll(ctx) }),
		opCmd(func() error { return m.opts.Employees.FetchAll(ctx) }),
	)
}

// fetchSharedCmd loads the public teaser shown on the login screen.
func (m Model) fetchSharedCmd() tea.Cmd {
	ctx := m.ctx
	return tea.Batch(
		opCmd(func() error { return m.opts.Products.FetchShared(ctx) }),
		opCmd(func() error { return m.opts.Sales.FetchShared(ctx) }),
	)
}

func (m Model) logoutCmd() tea.Cmd {
	ctx := m.ctx
	sess := m.opts.Session
	return func() tea.Msg {
		sess.Logout(ctx)
		return logoutDoneMsg{}
	}
}

// expireToasts dismisses alerts older than their display window. The view
// owns dismissal; the alert center itself never expires entries.
func (m Model) expireToasts() {
	now := time.Now()
	for _, a := range m.opts.Alerts.List() {
		if now.Sub(a.At) >= toastTTL {
			m.opts.Alerts.Remove(a.ID)
		}
	}
}

// Run blocks until the user quits or the context is cancelled.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	if opts.Context != nil {
		go func() {
			<-opts.Context.Done()
			p.Quit()
		}()
	}
	_, err := p.Run()
	return err
}
