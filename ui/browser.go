package ui

import (
	"fmt"
	"strings"

	"flatrec/ds"
	"flatrec/flat/fdiag"
	"flatrec/flat/frecord"
	"flatrec/flat/ftable"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

const (
	ModeRecords     = "records"
	ModeDiagnostics = "diagnostics"
)

const DefaultPageSize = 20

// Browser pages through a decoded batch.
type Browser struct {
	pages       [][]*frecord.Record
	page        int
	mode        string
	total       int
	failures    []frecord.DecodeError
	diagnostics []fdiag.Entry
}

func CreateBrowser(batch frecord.Batch, pageSize int) Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Browser{
		pages:       ds.MakeChunks(batch.Records, pageSize),
		mode:        ModeRecords,
		total:       len(batch.Records),
		failures:    batch.Failures,
		diagnostics: batch.Diagnostics,
	}
}

func (s Browser) Page() int {
	return s.page
}

func (s Browser) Mode() string {
	return s.mode
}

func (s Browser) Init() tea.Cmd {
	return nil
}

func (s Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		return s, tea.Quit
	case "right", "l", "n", "pgdown":
		if s.page < len(s.pages)-1 {
			s.page++
		}
	case "left", "h", "p", "pgup":
		if s.page > 0 {
			s.page--
		}
	case "home", "g":
		s.page = 0
	case "end", "G":
		s.page = ds.Max(0, len(s.pages)-1)
	case "d", "tab":
		if s.mode == ModeRecords {
			s.mode = ModeDiagnostics
		} else {
			s.mode = ModeRecords
		}
	}
	return s, nil
}

func (s Browser) View() string {
	output := "FLATREC\n\n"
	switch s.mode {
	case ModeDiagnostics:
		output += s.viewDiagnostics()
	default:
		output += s.viewRecords()
	}
	output += fmt.Sprintf(
		"\n%d records, %d failed, %d diagnostics | page %d/%d\n",
		s.total, len(s.failures), len(s.diagnostics), s.page+1, ds.Max(1, len(s.pages)),
	)
	output += "←/→ page  d diagnostics  q quit\n"
	return output
}

func (s Browser) viewRecords() string {
	if len(s.pages) == 0 {
		return "No records.\n"
	}
	var sb strings.Builder
	_ = ftable.Print(&sb, s.pages[s.page], ftable.DefaultOptions)
	return sb.String()
}

func (s Browser) viewDiagnostics() string {
	if len(s.diagnostics) == 0 {
		return "No diagnostics.\n"
	}
	lines := lo.Map(s.diagnostics, func(entry fdiag.Entry, _ int) string {
		return entry.String()
	})
	return strings.Join(lines, "\n") + "\n"
}
