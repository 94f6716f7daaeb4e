package ui

import (
	"flatrec/flat/frecord"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

func Start(batch frecord.Batch, pageSize int) error {
	browser := CreateBrowser(batch, pageSize)
	if err := tea.NewProgram(browser).Start(); err != nil {
		return errors.Wrap(err, "Start error")
	}
	return nil
}
