package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ssegura/abasto/internal/models"
)

const (
	fieldName = iota
	fieldPrice
	fieldMeasure
	fieldBrand
	fieldQuantity
	fieldCount
)

// productFormState is the create/edit form for products. editID is zero when
// creating.
type productFormState struct {
	inputs [fieldCount]textinput.Model
	focus  int
	editID int
	errMsg string
}

func newProductForm(p *models.Product) productFormState {
	var f productFormState

	labels := [fieldCount]string{"nombre", "precio", "medida", "marca", "cantidad"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 80
		ti.Width = 28
		f.inputs[i] = ti
	}
	f.inputs[fieldMeasure].Placeholder = "medida (" + strings.Join(models.Measures, "/") + ")"

	if p != nil {
		f.editID = p.ID
		f.inputs[fieldName].SetValue(p.Name)
		f.inputs[fieldPrice].SetValue(strconv.FormatFloat(p.Price, 'f', -1, 64))
		f.inputs[fieldMeasure].SetValue(p.Measure)
		f.inputs[fieldBrand].SetValue(p.Brand)
		f.inputs[fieldQuantity].SetValue(strconv.FormatFloat(p.Quantity, 'f', -1, 64))
	}
	f.inputs[fieldName].Focus()
	return f
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		m.view = ViewProducts
		return m, nil

	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		m.form = m.form.moveFocus(1)
		return m, nil

	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		m.form = m.form.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.form.focus < fieldCount-1 {
			m.form = m.form.moveFocus(1)
			return m, nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (f productFormState) moveFocus(dir int) productFormState {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
	return f
}

// submitForm validates locally and dispatches the create or update. A
// constraint violation stays inline in the form and never reaches the
// network.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	price, err := strconv.ParseFloat(strings.TrimSpace(m.form.inputs[fieldPrice].Value()), 64)
	if err != nil {
		m.form.errMsg = "El precio debe ser un número"
		return m, nil
	}
	quantity := 0.0
	if raw := strings.TrimSpace(m.form.inputs[fieldQuantity].Value()); raw != "" {
		quantity, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			m.form.errMsg = "La cantidad debe ser un número"
			return m, nil
		}
	}

	name := strings.TrimSpace(m.form.inputs[fieldName].Value())
	measure := strings.TrimSpace(m.form.inputs[fieldMeasure].Value())
	brand := strings.TrimSpace(m.form.inputs[fieldBrand].Value())

	ctx := m.ctx
	products := m.opts.Products

	if m.form.editID == 0 {
		payload := models.CreateProduct{
			Name: name, Price: price, Measure: measure,
			Brand: brand, Quantity: quantity,
		}
		if err := payload.Validate(); err != nil {
			m.form.errMsg = "Revisá los campos: " + err.Error()
			return m, nil
		}
		m.view = ViewProducts
		return m, opCmd(func() error {
			_, err := products.Create(ctx, payload)
			return err
		})
	}

	patch := models.UpdateProduct{
		Name: &name, Price: &price, Measure: &measure,
		Brand: &brand, Quantity: &quantity,
	}
	if err := patch.Validate(); err != nil {
		m.form.errMsg = "Revisá los campos: " + err.Error()
		return m, nil
	}
	id := m.form.editID
	m.view = ViewProducts
	return m, opCmd(func() error {
		_, err := products.Update(ctx, id, patch)
		return err
	})
}

func (m Model) renderProductForm() string {
	st := m.styles
	title := "Nuevo producto"
	if m.form.editID != 0 {
		title = fmt.Sprintf("Editar producto %d", m.form.editID)
	}

	labels := [fieldCount]string{"Nombre", "Precio", "Medida", "Marca", "Cantidad"}
	lines := []string{st.Title.Render(title), ""}
	for i := range m.form.inputs {
		lines = append(lines, st.FormLabel.Render(labels[i])+m.form.inputs[i].View())
	}
	if m.form.errMsg != "" {
		lines = append(lines, "", st.FormError.Render(m.form.errMsg))
	}
	lines = append(lines, "", m.styles.Muted.Render("enter confirma · esc cancela"))
	return strings.Join(lines, "\n")
}
