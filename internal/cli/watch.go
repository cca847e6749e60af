package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/burst/pkg/burst"
	burstio "github.com/matzehuels/burst/pkg/io"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Draw a live chart in the terminal",
		Long: `Draw a chart in the terminal and keep it current.

Saving the data file re-renders the chart. Resizing the terminal re-lays it out
once the resize has settled. Press q to quit.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDataFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], &flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input string, flags *chartFlags) error {
	logger := loggerFromContext(ctx)

	cfg, err := flags.resolve()
	if err != nil {
		return err
	}

	items, err := burstio.ImportData(input)
	if err != nil {
		return err
	}
	logger.Debugf("Watching %s (%d items)", input, len(items))

	th := newTeaHost(int(flags.width / unitsPerColumn))
	chart, err := mountChart(th.Body, cfg, th, discardLogger())
	if err != nil {
		return err
	}
	chart.Render(items)

	m := newWatchModel(th, chart, input)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	th.send = p.Send

	watcher, err := watchFile(ctx, input, p.Send)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		return err
	}
	printInfo("Stopped watching %s after %d reloads", input, m.reloads)
	return nil
}

// dataMsg carries a reloaded data file.
type dataMsg struct {
	items []any
	err   error
}

// watchFile reloads path whenever it changes and sends the result. The parent
// directory is watched so editors that replace files on save still trigger.
func watchFile(ctx context.Context, path string, send func(tea.Msg)) (*fsnotify.Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				items, err := burstio.ImportData(abs)
				send(dataMsg{items: items, err: err})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				send(dataMsg{err: err})
			}
		}
	}()
	return w, nil
}

// watchModel is the bubbletea model of the watch command. Its Update is the
// chart's event thread.
type watchModel struct {
	host    *teaHost
	chart   *burst.Chart
	path    string
	err     error
	reloads int
}

func newWatchModel(h *teaHost, c *burst.Chart, path string) *watchModel {
	return &watchModel{host: h, chart: c, path: path}
}

func (m *watchModel) Init() tea.Cmd { return nil }

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.chart.Destroy()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.host.resize(msg.Width)
	case timerMsg:
		m.host.fire(msg.id)
	case dataMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.reloads++
		m.chart.Render(msg.items)
	}
	return m, nil
}

func (m *watchModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("burst") + " " + StyleDim.Render(m.path))
	b.WriteString("\n\n")
	b.WriteString(drawChart(m.chart).String())
	b.WriteString("\n\n")

	l := m.chart.Layout()
	b.WriteString(statsLine(len(m.chart.Nodes()), l.Width, l.Radius))
	b.WriteString(StyleDim.Render(" · resize " + m.chart.ResizeState().String()))
	if m.err != nil {
		b.WriteString("\n" + statusError.line(StyleWarning.Render(m.err.Error())))
	}
	b.WriteString("\n" + StyleDim.Render("q quit"))
	return b.String()
}
