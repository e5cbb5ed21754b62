package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/script"
)

// pickCommand creates the pick command: an interactive list of every
// document and variant under a directory. The chosen one is rendered.
func (c *CLI) pickCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "pick [dir]",
		Short: "Choose a document variant interactively and render it",
		Long: `List every circuit document under dir (default: current directory)
together with its parameter variants, then render the selected one.

Variants make it cheap to keep several layouts of the same circuit side by
side; pick is the quickest way to compare them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			entries, err := findEntries(dir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No documents found in %s", dir)
				return nil
			}

			final, err := tea.NewProgram(newPickModel(entries)).Run()
			if err != nil {
				return err
			}
			m := final.(pickModel)
			if m.selected == nil {
				return nil
			}
			flags.variant = m.selected.Variant
			if err := c.runRender(cmd.Context(), []string{m.selected.Path}, &flags); err != nil {
				return err
			}
			printNextStep("Render again without the picker", m.selected.command())
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// pickEntry is one selectable document variant. Documents that fail to
// load are listed with their error and cannot be selected.
type pickEntry struct {
	Path    string
	Title   string
	Variant string
	Err     string
}

func (e pickEntry) command() string {
	cmd := appName + " render " + e.Path
	if e.Variant != "" {
		cmd += " --variant " + e.Variant
	}
	return cmd
}

// findEntries lists documents below dir, skipping hidden and
// underscore-prefixed directories and the config file.
func findEntries(dir string) ([]pickEntry, error) {
	var entries []pickEntry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !script.IsDocument(path) || d.Name() == configFile {
			return nil
		}
		doc, err := script.Load(path)
		if err != nil {
			entries = append(entries, pickEntry{Path: path, Err: string(errors.GetCode(err))})
			return nil
		}
		entries = append(entries, pickEntry{Path: path, Title: doc.Title})
		for _, v := range doc.VariantNames() {
			entries = append(entries, pickEntry{Path: path, Title: doc.Title, Variant: v})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return entries, nil
}

// pickModel is the bubbletea model for the document picker.
type pickModel struct {
	entries  []pickEntry
	cursor   int
	offset   int
	height   int
	selected *pickEntry
}

func newPickModel(entries []pickEntry) pickModel {
	return pickModel{entries: entries, height: 15}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			e := m.entries[m.cursor]
			if e.Err != "" {
				return m, nil
			}
			m.selected = &e
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m pickModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Document"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.entries))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		variant := e.Variant
		if variant == "" {
			variant = "-"
		}
		title := e.Title
		if e.Err != "" {
			title = e.Err
		}
		rows = append(rows, []string{cursor, e.Path, variant, title})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("", "Document", "Variant", "Title").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.offset + row
			if idx >= len(m.entries) {
				return lipgloss.NewStyle()
			}
			e := m.entries[idx]
			base := lipgloss.NewStyle()
			switch {
			case e.Err != "":
				base = base.Foreground(colorFail)
			case idx == m.cursor:
				base = base.Foreground(colorOK)
			case e.Variant != "" && col == 2:
				base = base.Foreground(colorAccent)
			default:
				base = base.Foreground(colorText)
			}
			if idx == m.cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))

	return b.String()
}
