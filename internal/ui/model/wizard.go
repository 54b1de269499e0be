package model

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/ledgerlens/ledgerlens/internal/bank"
	"github.com/ledgerlens/ledgerlens/internal/store"
	"github.com/ledgerlens/ledgerlens/internal/ui/common"
	"github.com/ledgerlens/ledgerlens/internal/ui/dialog"
	"github.com/ledgerlens/ledgerlens/internal/ui/form"
	"github.com/ledgerlens/ledgerlens/internal/ui/styles"
	"github.com/ledgerlens/ledgerlens/internal/uiutil"
)

// SubmitTransactionID identifies the confirmation dialog of the wizard.
const SubmitTransactionID = "submit-transaction"

type wizardStep uint8

// Possible wizardStep values, in order.
const (
	stepType wizardStep = iota
	stepDetails
	stepReview
)

var wizardSteps = []string{"Type", "Details", "Review"}

// wizard creates a transaction in three steps: choose the type, fill in
// the details, review and submit.
type wizard struct {
	com     *common.Common
	store   *store.Store
	keyMap  *KeyMap
	catalog bank.Catalog

	step wizardStep
	typ  *form.Select

	client              *form.Select
	amount              *form.Input
	currency, country   *form.Select
	source, destination *form.Input
	description         *form.Input
	details             *form.Group
	submit              *form.Button
	clientCount         int

	request    bank.CreateTransactionRequest
	submitting bool
	err        error
}

var _ page = (*wizard)(nil)

func newWizard(com *common.Common, st *store.Store, km *KeyMap, catalog bank.Catalog) *wizard {
	t := &com.Styles
	p := &wizard{
		com:     com,
		store:   st,
		keyMap:  km,
		catalog: catalog,
		typ:     form.NewSelect(t, "Type", filterOptions(bank.TransactionTypes...)[1:]...),
		submit:  form.NewButton(t, "Submit"),
	}
	p.typ.Focus()
	p.reset()
	return p
}

// reset clears every field and goes back to the first step.
func (p *wizard) reset() {
	t := &p.com.Styles
	p.step = stepType
	p.err = nil
	p.submitting = false
	p.request = bank.CreateTransactionRequest{}
	p.submit.Blur()

	p.client = p.clientSelect("")
	p.amount = form.NewInput(t, "wizard.amount", "Amount", validateAmount).
		WithPlaceholder("0.00").
		WithCharLimit(20)
	p.currency = form.NewSelect(t, "Currency", form.Options(p.catalog.Currencies...)...).Compact()
	p.country = form.NewSelect(t, "Country", form.Options(p.catalog.Countries...)...).Compact()
	p.source = form.NewInput(t, "wizard.source", "From account", required("source account")).
		WithPlaceholder("IBAN").
		WithCharLimit(34)
	p.destination = form.NewInput(t, "wizard.destination", "To account", required("destination account")).
		WithPlaceholder("IBAN").
		WithCharLimit(34)
	p.description = form.NewInput(t, "wizard.description", "Description", nil).
		WithPlaceholder("optional").
		WithCharLimit(140)
	p.details = nil
}

func validateAmount(v string) error {
	_, err := bank.ParseAmount(v)
	return err
}

func required(what string) form.Validator {
	return func(v string) error {
		if v == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

// clientSelect builds the client select from the loaded clients, keeping
// the selected value when possible.
func (p *wizard) clientSelect(selected string) *form.Select {
	clients := p.store.Clients.Items
	opts := make([]form.Option, len(clients))
	for i, c := range clients {
		opts[i] = form.Option{Value: c.ID, Label: c.Name}
	}
	s := form.NewSelect(&p.com.Styles, "Client", opts...).Compact()
	s.SetValue(selected)
	p.clientCount = len(clients)
	return s
}

func (p *wizard) ID() pageID {
	return wizardPage
}

func (p *wizard) Title() string {
	return "New transaction"
}

func (p *wizard) Editing() bool {
	return p.step == stepDetails
}

func (p *wizard) Activate() tea.Cmd {
	return p.store.FetchClients(false)
}

func (p *wizard) Refresh() tea.Cmd {
	return p.store.FetchClients(true)
}

func (p *wizard) Sync() {
	if len(p.store.Clients.Items) == p.clientCount {
		return
	}
	focused := p.client.Focused()
	p.client = p.clientSelect(p.client.Value())
	if focused {
		p.client.Focus()
	}
	if p.details != nil {
		p.buildDetails()
	}
}

// Type returns the chosen transaction type.
func (p *wizard) Type() bank.TransactionType {
	return bank.TransactionType(p.typ.Value())
}

// buildDetails lays out the fields of the chosen type.
func (p *wizard) buildDetails() {
	fields := []form.Field{p.client, p.amount, p.currency}
	switch p.Type() {
	case bank.Deposit:
		fields = append(fields, p.destination)
	case bank.Withdrawal:
		fields = append(fields, p.source)
	case bank.Transfer:
		fields = append(fields, p.source, p.destination)
	}
	fields = append(fields, p.country, p.description)

	focus := 0
	if p.details != nil {
		focus = max(0, p.details.Focused())
		p.details.Blur()
	}
	p.details = form.NewGroup(fields...)
	p.details.FocusIndex(min(focus, len(fields)-1))
}

// Request builds the request from the fields.
func (p *wizard) Request() (bank.CreateTransactionRequest, error) {
	amount, err := bank.ParseAmount(p.amount.Value())
	if err != nil {
		return bank.CreateTransactionRequest{}, err
	}
	req := bank.CreateTransactionRequest{
		Type:        p.Type(),
		Amount:      amount,
		Currency:    p.currency.Value(),
		ClientID:    p.client.Value(),
		Country:     p.country.Value(),
		Description: p.description.Value(),
	}
	switch req.Type {
	case bank.Deposit:
		req.DestinationAccount = p.destination.Value()
	case bank.Withdrawal:
		req.SourceAccount = p.source.Value()
	case bank.Transfer:
		req.SourceAccount = p.source.Value()
		req.DestinationAccount = p.destination.Value()
	}
	return req, req.Validate()
}

// validateDetails checks every visible field and the request as a whole.
func (p *wizard) validateDetails() bool {
	valid := true
	for _, f := range p.details.Fields() {
		if in, ok := f.(*form.Input); ok && !in.Valid() {
			valid = false
		}
	}
	if !valid {
		p.err = nil
		return false
	}
	req, err := p.Request()
	p.err = err
	if err != nil {
		return false
	}
	p.request = req
	return true
}

// Submit sends the reviewed request.
func (p *wizard) Submit() tea.Cmd {
	if p.step != stepReview || p.submitting {
		return nil
	}
	p.submitting = true
	p.err = nil
	return p.store.CreateTransaction(p.request)
}

func (p *wizard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case store.Result[bank.Transaction]:
		if msg.Op != store.OpCreate || !p.submitting {
			return nil
		}
		p.submitting = false
		if msg.Err != nil {
			p.err = msg.Err
			return nil
		}
		created := msg.Item
		p.reset()
		return tea.Batch(
			uiutil.ReportSuccess(fmt.Sprintf("Transaction %s created (%s)", created.ID, created.Status)),
			p.store.FetchTransactions(p.store.TransactionQuery(), true),
		)
	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}
	if p.details != nil {
		return p.details.Update(msg)
	}
	return nil
}

func (p *wizard) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if p.submitting {
		return nil
	}
	switch p.step {
	case stepType:
		if key.Matches(msg, p.keyMap.Wizard.Next) {
			p.step = stepDetails
			p.buildDetails()
			return nil
		}
		return p.typ.Update(msg)

	case stepDetails:
		switch {
		case key.Matches(msg, p.keyMap.Wizard.Back):
			p.details.Blur()
			p.details = nil
			p.err = nil
			p.step = stepType
			return nil
		case key.Matches(msg, p.keyMap.Wizard.Next):
			if p.validateDetails() {
				p.details.Blur()
				p.step = stepReview
				return p.submit.Focus()
			}
			return nil
		case key.Matches(msg, p.keyMap.Filters.Next):
			return p.details.Next()
		case key.Matches(msg, p.keyMap.Filters.Prev):
			return p.details.Prev()
		}
		return p.details.Update(msg)

	case stepReview:
		switch {
		case key.Matches(msg, p.keyMap.Wizard.Back):
			p.submit.Blur()
			p.err = nil
			p.step = stepDetails
			p.buildDetails()
			return nil
		case key.Matches(msg, p.keyMap.Wizard.Next):
			return openDialog(p.confirmDialog())
		}
	}
	return nil
}

func (p *wizard) confirmDialog() dialog.Dialog {
	r := p.request
	question := fmt.Sprintf("Submit %s of %s?", r.Type, common.Money(r.Amount, r.Currency))
	return dialog.NewConfirm(&p.com.Styles, SubmitTransactionID, question, "The transaction is screened once submitted and cannot be edited.").
		WithLabels("Submit", "Cancel")
}

func (p *wizard) HandleClick(int, int) tea.Cmd {
	return nil
}

func (p *wizard) View(width, height int) string {
	t := &p.com.Styles
	rows := []string{p.stepsView(), ""}

	switch p.step {
	case stepType:
		rows = append(rows,
			p.typ.View(),
			"",
			t.Subtle.Render(typeHint(p.Type())),
		)
	case stepDetails:
		for _, f := range p.details.Fields() {
			rows = append(rows, f.View())
		}
		if p.store.Clients.Err != "" {
			rows = append(rows, "", errorLine(t, p.store.Clients.Err, width))
		}
	case stepReview:
		rows = append(rows, p.reviewView()...)
		rows = append(rows, "", p.submit.View())
		if p.submitting {
			rows = append(rows, "", t.Muted.Render(styles.LoadingIcon+" Submitting…"))
		}
	}
	if p.err != nil {
		rows = append(rows, "", t.Form.Error.Render(styles.ErrorIcon+" "+uiutil.ErrorMessage(p.err)))
	}
	return lipgloss.NewStyle().
		Width(width).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (p *wizard) stepsView() string {
	t := &p.com.Styles
	parts := make([]string, len(wizardSteps))
	for i, name := range wizardSteps {
		label := fmt.Sprintf("%d %s", i+1, name)
		switch {
		case wizardStep(i) == p.step:
			parts[i] = t.Tabs.Active.Render(label)
		case wizardStep(i) < p.step:
			parts[i] = t.Form.Valid.Render(styles.CheckIcon + " " + name)
		default:
			parts[i] = t.Tabs.Inactive.Render(label)
		}
	}
	return strings.Join(parts, t.Subtle.Render(" › "))
}

func typeHint(typ bank.TransactionType) string {
	switch typ {
	case bank.Deposit:
		return "Money coming into a client account."
	case bank.Withdrawal:
		return "Money leaving a client account."
	case bank.Transfer:
		return "Money moving between two accounts."
	}
	return ""
}

func (p *wizard) reviewView() []string {
	t := &p.com.Styles
	r := p.request
	const keyWidth = 16
	clientName := r.ClientID
	for _, c := range p.store.Clients.Items {
		if c.ID == r.ClientID {
			clientName = c.Name + " (" + c.ID + ")"
			break
		}
	}
	rows := []string{
		common.KeyValue(t, "Type", common.Badge(t, r.Type), keyWidth),
		common.KeyValue(t, "Client", clientName, keyWidth),
		common.KeyValue(t, "Amount", t.Amount.Total.Render(common.Money(r.Amount, r.Currency)), keyWidth),
	}
	if r.SourceAccount != "" {
		rows = append(rows, common.KeyValue(t, "From account", r.SourceAccount, keyWidth))
	}
	if r.DestinationAccount != "" {
		rows = append(rows, common.KeyValue(t, "To account", r.DestinationAccount, keyWidth))
	}
	rows = append(rows, common.KeyValue(t, "Country", r.Country, keyWidth))
	if r.Description != "" {
		rows = append(rows, common.KeyValue(t, "Description", r.Description, keyWidth))
	}
	return rows
}

func (p *wizard) ShortHelp() []key.Binding {
	back, next := p.keyMap.Wizard.Back, p.keyMap.Wizard.Next
	switch p.step {
	case stepType:
		return []key.Binding{next}
	case stepDetails:
		return []key.Binding{p.keyMap.Filters.Next, p.keyMap.Filters.Prev, next, back}
	}
	next.SetHelp("enter", "submit")
	return []key.Binding{next, back}
}
