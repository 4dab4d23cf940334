package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/assistd/internal/model"
)

func (m Model) handleBudgetKey(msg tea.KeyMsg) Model {
	ids := transactionIDs(m.App.Budget().Transactions)
	switch msg.String() {
	case "j", "down":
		m.SelectedTxID = moveSelection(ids, m.SelectedTxID, 1)
	case "k", "up":
		m.SelectedTxID = moveSelection(ids, m.SelectedTxID, -1)
	case "d":
		id := moveSelection(ids, m.SelectedTxID, 0)
		if id == "" {
			return m
		}
		if err := m.App.DeleteTransaction(id); err != nil {
			return m.fail(err)
		}
		m.SelectedTxID = ""
		m.Status = StatusBar{Text: "transaction deleted"}
	}
	return m
}

func transactionIDs(txs []model.Transaction) []string {
	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	return ids
}
