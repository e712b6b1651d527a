package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/nkhandelwal/hisab/internal/account"
	"github.com/nkhandelwal/hisab/internal/ledger"
)

// AddModel is the transaction entry form. The extra-account picker makes the
// second leg explicit: picking one applies the resolved counterpart effect.
type AddModel struct {
	CommonModel
	ledgerService  *ledger.Service
	accountService *account.Service
	userID         string

	form     *huh.Form
	accounts []*account.Account

	loading bool
	err     error
	status  string

	formAccount string
	formExtra   string
	formType    string
	formAmount  string
	formNote    string
}

func NewAddModel(ledgerSvc *ledger.Service, accountSvc *account.Service, userID string) AddModel {
	return AddModel{
		ledgerService:  ledgerSvc,
		accountService: accountSvc,
		userID:         userID,
		loading:        true,
	}
}

func (m AddModel) Title() string { return "Add Transaction" }

func (m AddModel) ShortHelp() string {
	return "Navigate form | Esc: back"
}

func (m AddModel) Init() tea.Cmd {
	return m.loadAccountsCmd()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addAccountsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.accounts = msg.accounts
		m.buildForm()

		return m, m.form.Init()

	case addDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Transaction recorded."
		}

		// Fresh form for the next entry, same account list.
		m.buildForm()

		return m, m.form.Init()
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.submitCmd()
}

func (m *AddModel) buildForm() {
	accountOptions := make([]huh.Option[string], 0, len(m.accounts))
	extraOptions := make([]huh.Option[string], 0, len(m.accounts)+1)
	extraOptions = append(extraOptions, huh.NewOption("None", ""))

	for _, a := range m.accounts {
		if a.Disabled {
			continue
		}

		opt := huh.NewOption(fmt.Sprintf("%s (%s)", a.Name, a.Type), a.ID.String())
		accountOptions = append(accountOptions, opt)
		extraOptions = append(extraOptions, opt)
	}

	m.formAccount = ""
	m.formExtra = ""
	m.formType = string(ledger.EntryCredit)
	m.formAmount = ""
	m.formNote = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("account").
				Title("Account").
				Options(accountOptions...).
				Value(&m.formAccount),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Credit", string(ledger.EntryCredit)),
					huh.NewOption("Debit", string(ledger.EntryDebit)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewInput().
				Key("note").
				Title("Note").
				Value(&m.formNote),

			huh.NewSelect[string]().
				Key("extra").
				Title("Counterpart Account").
				Options(extraOptions...).
				Value(&m.formExtra),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading accounts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.accounts) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No accounts yet. Seed defaults from the Accounts view first.")
	}

	content := m.form.View()
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type addAccountsMsg struct {
	accounts []*account.Account
	err      error
}

type addDoneMsg struct {
	err error
}

func (m AddModel) loadAccountsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accountService.List(ctx, m.userID)

		return addAccountsMsg{accounts: accounts, err: err}
	}
}

func (m AddModel) submitCmd() tea.Cmd {
	accountID, err := uuid.Parse(m.formAccount)
	if err != nil {
		return func() tea.Msg { return addDoneMsg{err: err} }
	}

	amount, err := strconv.ParseInt(strings.TrimSpace(m.formAmount), 10, 64)
	if err != nil {
		return func() tea.Msg { return addDoneMsg{err: err} }
	}

	params := ledger.CreateParams{
		AccountID: accountID,
		Type:      ledger.EntryType(m.formType),
		Amount:    amount,
		Note:      m.formNote,
	}

	if m.formExtra != "" {
		if extraID, err := uuid.Parse(m.formExtra); err == nil {
			params.ExtraAccountID = &extraID
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.ledgerService.Add(ctx, m.userID, params)

		return addDoneMsg{err: err}
	}
}
