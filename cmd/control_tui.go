// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Tidewater Robotics

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tidewater-robotics/bollard/pkg/stream"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

const maxControlLogEntries = 8

// frequencyPresets are the output rates reachable with +/-.
var frequencyPresets = []int{1, 5, 10, 20, 30, 50, 100}

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

type controlLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// controlModel is the Bubble Tea model for the control TUI
type controlModel struct {
	streamer *stream.Streamer
	sequence string
	connInfo string

	progress progress.Model

	// Snapshot of streamer state, refreshed each tick
	state     stream.State
	cursor    int
	stepCount int
	duration  float64
	stats     stream.Statistics

	log []controlLogEntry

	width    int
	height   int
	quitting bool
}

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type controlTickMsg time.Time

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialControlModel(s *stream.Streamer, sequence, connInfo string) controlModel {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return controlModel{
		streamer: s,
		sequence: sequence,
		connInfo: connInfo,
		progress: prog,
		state:    s.State(),
		log:      make([]controlLogEntry, 0),
		width:    80,
		height:   24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m controlModel) Init() tea.Cmd {
	return controlTickCmd()
}

func controlTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return controlTickMsg(t)
	})
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}

	case controlTickMsg:
		m.refreshFromStreamer()
		return m, controlTickCmd()
	}

	return m, nil
}

func (m controlModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		if m.state != stream.Closed {
			if err := m.streamer.Stop(); err != nil {
				m.addLogEntry(fmt.Sprintf("Stop failed: %v", err), true)
			}
		}
		return m, tea.Quit

	case "s":
		if m.state == stream.Streaming {
			if err := m.streamer.Stop(); err != nil {
				m.addLogEntry(fmt.Sprintf("Stop failed: %v", err), true)
			} else {
				m.addLogEntry("Sequence stopped, bench idled", false)
			}
		} else {
			if err := m.streamer.Start(); err != nil {
				if errors.Is(err, stream.ErrLinkOpenFailed) {
					m.addLogEntry(fmt.Sprintf("Link open failed: %v", err), true)
				} else {
					m.addLogEntry(fmt.Sprintf("Start failed: %v", err), true)
				}
			} else {
				m.addLogEntry(fmt.Sprintf("Sequence started at %d Hz", m.streamer.Frequency()), false)
			}
		}
		m.refreshFromStreamer()

	case "i":
		if err := m.streamer.Idle(); err != nil {
			m.addLogEntry(fmt.Sprintf("Idle failed: %v", err), true)
		} else {
			m.addLogEntry("Idle frame sent", false)
		}
		m.refreshFromStreamer()

	case "+", "=":
		m.stepFrequency(1)

	case "-", "_":
		m.stepFrequency(-1)
	}

	return m, nil
}

//////////////////////////////////////////////////////////////
// State Helpers
//////////////////////////////////////////////////////////////

func (m *controlModel) refreshFromStreamer() {
	m.state = m.streamer.State()
	m.cursor = m.streamer.Cursor()
	if cache := m.streamer.Cache(); cache != nil {
		m.stepCount = cache.StepCount()
		m.duration = cache.Duration()
	}
	m.stats = m.streamer.Stats()
	m.stats.CalculateRates()
}

func (m *controlModel) stepFrequency(direction int) {
	current := m.streamer.Frequency()

	// Index of the nearest preset at or above the current rate
	idx := 0
	for i, preset := range frequencyPresets {
		idx = i
		if preset >= current {
			break
		}
	}

	idx += direction
	if idx < 0 || idx >= len(frequencyPresets) {
		return
	}

	next := frequencyPresets[idx]
	if next == current {
		// Already sitting on a preset; move one more in the same direction
		idx += direction
		if idx < 0 || idx >= len(frequencyPresets) {
			return
		}
		next = frequencyPresets[idx]
	}

	if err := m.streamer.SetFrequency(next); err != nil {
		m.addLogEntry(fmt.Sprintf("Frequency change failed: %v", err), true)
		return
	}
	m.addLogEntry(fmt.Sprintf("Output frequency set to %d Hz", next), false)
}

func (m *controlModel) addLogEntry(message string, isError bool) {
	m.log = append(m.log, controlLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})
	if len(m.log) > maxControlLogEntries {
		m.log = m.log[len(m.log)-maxControlLogEntries:]
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m controlModel) View() string {
	if m.quitting {
		return "Idling bench and shutting down...\n"
	}

	var s strings.Builder

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	statsLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	statsValueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	s.WriteString(titleStyle.Render("BOLLARD CONTROL"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render(fmt.Sprintf("| %s | s=start/stop i=idle +/-=freq q=quit", m.connInfo)))
	s.WriteString("\n\n")

	// Sequence panel
	var seq strings.Builder
	seq.WriteString(fmt.Sprintf("%s %s\n",
		statsLabelStyle.Render("Sequence:"),
		statsValueStyle.Render(m.sequence)))
	seq.WriteString(fmt.Sprintf("%s %s at %s\n",
		statsLabelStyle.Render("Sampling:"),
		statsValueStyle.Render(m.streamer.Mode().String()),
		statsValueStyle.Render(fmt.Sprintf("%d Hz", m.streamer.Frequency()))))

	var stateText string
	switch m.state {
	case stream.Streaming:
		stateText = statsValueStyle.Render("STREAMING")
	case stream.Idle:
		stateText = warningStyle.Render("IDLE")
	default:
		stateText = errorStyle.Render("CLOSED")
	}
	seq.WriteString(fmt.Sprintf("%s %s\n\n", statsLabelStyle.Render("Link:"), stateText))

	// Progress through the sampled sequence
	fraction := 0.0
	if m.stepCount > 0 {
		fraction = float64(m.cursor) / float64(m.stepCount)
	}
	seq.WriteString(m.progress.ViewAs(fraction))
	seq.WriteString(fmt.Sprintf("\n%s step %d/%d of %.2fs",
		headerStyle.Render("Progress:"), m.cursor, m.stepCount, m.duration))

	s.WriteString(boxStyle.Render(seq.String()))
	s.WriteString("\n\n")

	// Statistics bar
	statsLine := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		statsLabelStyle.Render("Frames:"),
		statsValueStyle.Render(fmt.Sprintf("%d", m.stats.FramesSent)),
		statsLabelStyle.Render("Rate:"),
		statsValueStyle.Render(fmt.Sprintf("%.1f/s", m.stats.FrameRate)),
		statsLabelStyle.Render("Runs:"),
		statsValueStyle.Render(fmt.Sprintf("%d", m.stats.Runs)),
		statsLabelStyle.Render("Errors:"),
		errorStyle.Render(fmt.Sprintf("%d", m.stats.WriteErrors)))
	s.WriteString(boxStyle.Render(statsLine))
	s.WriteString("\n\n")

	// Event log
	var logContent strings.Builder
	logContent.WriteString(statsLabelStyle.Render("Events"))
	logContent.WriteString("\n")
	if len(m.log) == 0 {
		logContent.WriteString(headerStyle.Render("(none)"))
	}
	for _, entry := range m.log {
		line := fmt.Sprintf("%s %s", entry.timestamp.Format("15:04:05"), entry.message)
		if entry.isError {
			logContent.WriteString(errorStyle.Render(line))
		} else {
			logContent.WriteString(line)
		}
		logContent.WriteString("\n")
	}
	s.WriteString(boxStyle.Render(strings.TrimRight(logContent.String(), "\n")))
	s.WriteString("\n")

	return s.String()
}
