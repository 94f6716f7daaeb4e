package ui

import (
	"fmt"
	"testing"

	"flatrec/flat/frecord"
	"flatrec/flat/fschema"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batch(t *testing.T, n int) frecord.Batch {
	schema := fschema.New("example", ",")
	require.NoError(t, schema.Declare("id", "name"))
	lines := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("%d,name-%d", i, i))
	}
	lines = append(lines, "1,2,3")
	return frecord.NewDecoder(schema).DecodeAll(lines)
}

func press(model tea.Model, key string) (tea.Model, tea.Cmd) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	switch key {
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	}
	return model.Update(msg)
}

func TestBrowser_Paging(t *testing.T) {
	var model tea.Model = CreateBrowser(batch(t, 5), 2)

	model, _ = press(model, "right")
	assert.Equal(t, 1, model.(Browser).Page())
	model, _ = press(model, "right")
	model, _ = press(model, "right")
	assert.Equal(t, 2, model.(Browser).Page())
	assert.Contains(t, model.View(), "name-4")
	assert.NotContains(t, model.View(), "name-0")
	assert.Contains(t, model.View(), "5 records, 1 failed, 1 diagnostics | page 3/3")

	model, _ = press(model, "left")
	assert.Equal(t, 1, model.(Browser).Page())
	model, _ = press(model, "g")
	assert.Equal(t, 0, model.(Browser).Page())
	model, _ = press(model, "G")
	assert.Equal(t, 2, model.(Browser).Page())
}

func TestBrowser_Diagnostics(t *testing.T) {
	var model tea.Model = CreateBrowser(batch(t, 1), 0)

	model, _ = press(model, "d")
	assert.Equal(t, ModeDiagnostics, model.(Browser).Mode())
	assert.Contains(t, model.View(), "ERR record 2")

	model, _ = press(model, "d")
	assert.Equal(t, ModeRecords, model.(Browser).Mode())
}

func TestBrowser_Quit(t *testing.T) {
	_, cmd := press(CreateBrowser(batch(t, 0), 5), "q")
	assert.NotNil(t, cmd)

	model := CreateBrowser(frecord.Batch{}, 5)
	assert.Contains(t, model.View(), "No records.")
	assert.Contains(t, model.View(), "page 1/1")
}
