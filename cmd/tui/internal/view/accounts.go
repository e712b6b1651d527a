package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nkhandelwal/hisab/internal/account"
)

type AccountsModel struct {
	CommonModel
	accountService *account.Service
	userID         string

	table    table.Model
	accounts []*account.Account
	summary  account.Summary

	loading bool
	err     error
	status  string
}

func NewAccountsModel(accountSvc *account.Service, userID string) AccountsModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Type", Width: 8},
		{Title: "Role", Width: 18},
		{Title: "Balance", Width: 12},
		{Title: "Disabled", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return AccountsModel{
		accountService: accountSvc,
		userID:         userID,
		table:          t,
		loading:        true,
	}
}

func (m AccountsModel) Title() string { return "Accounts" }

func (m AccountsModel) ShortHelp() string {
	return "Esc: back | d: toggle disabled | s: seed defaults | r: refresh"
}

func (m AccountsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.accounts = msg.accounts
		m.summary = account.Summarize(msg.accounts)
		m.refreshTable()

		return m, nil

	case accountsChangedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "d":
			return m, m.toggleDisabledCmd()
		case "s":
			return m, m.seedDefaultsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AccountsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading accounts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	summary := fmt.Sprintf(
		"Total: %s | Excl. Funds: %s | Cash: %s | Funds: %s | Receivable: %s | Payable: %s",
		FormatAmount(m.summary.TotalEverything),
		FormatAmount(m.summary.TotalExcludingFunds),
		FormatAmount(m.summary.CashBalance),
		FormatAmount(m.summary.TotalFunds),
		FormatAmount(m.summary.Receivable),
		FormatAmount(m.summary.Payable),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().PaddingTop(1).Faint(true).Render(summary),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *AccountsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.accounts))
	for _, a := range m.accounts {
		disabled := ""
		if a.Disabled {
			disabled = "yes"
		}

		rows = append(rows, table.Row{
			a.Name,
			string(a.Type),
			string(a.Role),
			FormatAmount(a.Balance),
			disabled,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type accountsLoadedMsg struct {
	accounts []*account.Account
	err      error
}

type accountsChangedMsg struct {
	err error
}

func (m AccountsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accountService.List(ctx, m.userID)

		return accountsLoadedMsg{accounts: accounts, err: err}
	}
}

func (m AccountsModel) toggleDisabledCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.accounts) {
		return nil
	}

	a := m.accounts[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.accountService.SetDisabled(ctx, m.userID, a.ID, !a.Disabled)

		return accountsChangedMsg{err: err}
	}
}

func (m AccountsModel) seedDefaultsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.accountService.CreateDefaults(ctx, m.userID)

		return accountsChangedMsg{err: err}
	}
}
