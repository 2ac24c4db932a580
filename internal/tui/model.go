// Package tui hosts the animation loop in the terminal.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/asciikey/internal/engine"
	"github.com/san-kum/asciikey/internal/export"
	"github.com/san-kum/asciikey/internal/render"
)

// gifDelay is the per-frame GIF delay in hundredths of a second.
const gifDelay = 2

type TickMsg time.Time

// exportedMsg reports the outcome of an export started from a key press.
type exportedMsg struct {
	path string
	err  error
}

// Model drives one Loop tick per refresh and draws the last presented frame.
type Model struct {
	loop       *engine.Loop
	interval   time.Duration
	theme      Theme
	exportDir  string
	log        *slog.Logger
	showStatus bool
	recording  *export.Recording
	message    string
	failures   int
	// last window size, zero until the first WindowSizeMsg
	width, height int
}

func NewModel(lp *engine.Loop, fps int, theme, exportDir string, log *slog.Logger) Model {
	if fps <= 0 {
		fps = 60
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return Model{
		loop:       lp,
		interval:   time.Second / time.Duration(fps),
		theme:      GetTheme(theme),
		exportDir:  exportDir,
		log:        log,
		showStatus: true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "e":
			return m, m.exportPNG()
		case "s":
			return m, m.exportSVG()
		case "g":
			return m, m.toggleRecording()
		case "t":
			m.theme = m.theme.next()
		case "h":
			m.showStatus = !m.showStatus
			m.fit()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.fit()
	case TickMsg:
		if err := m.loop.Tick(); err != nil {
			m.failures++
			m.log.Warn("render failed", "err", err)
		}
		if m.recording != nil {
			m.recording.Capture(m.loop.Frame())
		}
		return m, m.tick()
	case exportedMsg:
		if msg.err != nil {
			m.log.Error("export failed", "err", msg.err)
			m.message = "export failed: " + msg.err.Error()
		} else {
			m.log.Info("exported", "path", msg.path)
			m.message = "saved " + msg.path
		}
	}
	return m, nil
}

// fit sizes the surface to the window, leaving a line for the status bar.
func (m Model) fit() {
	if m.width == 0 && m.height == 0 {
		return
	}
	h := m.height
	if m.showStatus {
		h--
	}
	m.loop.Resize(m.width, h)
}

// exportPNG captures the presented frame now and encodes it off the loop.
func (m Model) exportPNG() tea.Cmd {
	frame, dir, pal := m.loop.Frame(), m.exportDir, m.theme.Palette()
	return func() tea.Msg {
		path, err := export.SavePNG(dir, export.DefaultName, frame, pal)
		return exportedMsg{path: path, err: err}
	}
}

func (m Model) exportSVG() tea.Cmd {
	frame, dir, pal := m.loop.Frame(), m.exportDir, m.theme.Palette()
	return func() tea.Msg {
		svg, err := export.FrameToSVG(frame, pal, 4)
		if err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(dir, "scene.svg")
		return exportedMsg{path: path, err: os.WriteFile(path, []byte(svg), 0644)}
	}
}

func (m *Model) toggleRecording() tea.Cmd {
	if m.recording == nil {
		m.recording = &export.Recording{}
		m.message = "recording"
		return nil
	}
	frames, dir, pal := m.recording.Frames(), m.exportDir, m.theme.Palette()
	m.recording = nil
	m.message = fmt.Sprintf("encoding %d frames", len(frames))
	return func() tea.Msg {
		path := filepath.Join(dir, "scene.gif")
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{err: err}
		}
		defer f.Close()
		if err := export.EncodeGIF(context.Background(), f, frames, pal, gifDelay); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path, err: f.Close()}
	}
}

func (m Model) View() string {
	frame := m.loop.Frame()
	body := ""
	if frame != nil {
		body = strings.Join(frame.Lines, "\n")
	}
	view := lipgloss.NewStyle().
		Foreground(m.theme.Foreground).
		Background(m.theme.Background).
		Render(body)
	if !m.showStatus {
		return view
	}
	return view + "\n" + m.status(frame)
}

func (m Model) status(frame *render.Frame) string {
	st := m.loop.State()
	label := lipgloss.NewStyle().Foreground(m.theme.Muted)
	value := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)

	var parts []string
	parts = append(parts,
		label.Render("phase ")+value.Render(st.Phase.String()),
		progressBar(st.Progress, 12),
		label.Render("camera ")+value.Render(st.Camera.String()),
		label.Render("cycle ")+value.Render(fmt.Sprint(st.Cycle)),
	)
	if m.recording != nil {
		rec := lipgloss.NewStyle().Foreground(m.theme.Error).Bold(true)
		parts = append(parts, rec.Render(fmt.Sprintf("REC %d", m.recording.Len())))
	}
	if m.failures > 0 {
		warn := lipgloss.NewStyle().Foreground(m.theme.Warning)
		parts = append(parts, warn.Render(fmt.Sprintf("%d failed", m.failures)))
	}
	if m.message != "" {
		parts = append(parts, label.Render(m.message))
	}
	line := strings.Join(parts, "  ")
	if frame != nil {
		line = lipgloss.NewStyle().MaxWidth(frame.Width).Render(line)
	}
	return line
}

func progressBar(p float64, width int) string {
	filled := int(p * float64(width))
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

// Run takes over the terminal until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
