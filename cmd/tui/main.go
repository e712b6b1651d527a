package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/nkhandelwal/hisab/cmd/tui/internal/view"
	"github.com/nkhandelwal/hisab/internal/account"
	accountStore "github.com/nkhandelwal/hisab/internal/account/store"
	"github.com/nkhandelwal/hisab/internal/config"
	"github.com/nkhandelwal/hisab/internal/database"
	"github.com/nkhandelwal/hisab/internal/ledger"
	ledgerStore "github.com/nkhandelwal/hisab/internal/ledger/store"
	"github.com/nkhandelwal/hisab/internal/watch"
)

type model struct {
	accountService *account.Service
	ledgerService  *ledger.Service
	userID         string

	currentView View

	accountsView     view.AccountsModel
	transactionsView view.TransactionsModel
	addView          view.AddModel
}

type View int

const (
	ViewMenu         View = 0
	ViewAccounts     View = 1
	ViewTransactions View = 2
	ViewAdd          View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	accounts := accountStore.New(db)
	accountSvc := account.NewService(accounts)
	ledgerSvc := ledger.NewService(ledgerStore.New(db), accounts, watch.NewHub())

	userID := cfg.TUI.UserID

	return model{
		accountService:   accountSvc,
		ledgerService:    ledgerSvc,
		userID:           userID,
		currentView:      ViewMenu,
		accountsView:     view.NewAccountsModel(accountSvc, userID),
		transactionsView: view.NewTransactionsModel(ledgerSvc, userID),
		addView:          view.NewAddModel(ledgerSvc, accountSvc, userID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAccounts
				m.accountsView = view.NewAccountsModel(m.accountService, m.userID)

				return m, m.accountsView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.ledgerService, m.userID)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.ledgerService, m.accountService, m.userID)

				return m, m.addView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewAccounts:
		var newModel tea.Model
		newModel, cmd = m.accountsView.Update(msg)
		m.accountsView = newModel.(view.AccountsModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Hisab TUI\n\n" +
				"1. Accounts & Summary\n" +
				"2. Browse Transactions\n" +
				"3. Add Transaction\n\n" +
				"q. Quit",
		)
	case ViewAccounts:
		return m.accountsView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewAdd:
		return m.addView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
