// Package monitor is an interactive machine monitor: single-step the
// CPU, watch registers and memory, and run to conditional
// breakpoints.
package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/bdwalton/famicore/console"
	"github.com/bdwalton/famicore/mos6502"
)

// How many instructions a "run" burst executes between breakpoint
// checks and repaints.
const runBurst = 500

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	hitStyle    = lipgloss.NewStyle().Bold(true).Reverse(true)
)

// brEnv is the expression environment a breakpoint condition sees.
// Example: "a == 0x44 && pc >= 0x8000".
type brEnv struct {
	A      int             `expr:"a"`
	X      int             `expr:"x"`
	Y      int             `expr:"y"`
	SP     int             `expr:"sp"`
	PC     int             `expr:"pc"`
	Status int             `expr:"status"`
	Read   func(int) int   `expr:"read"`
}

type breakpoint struct {
	src  string
	prog *vm.Program
}

// regs is the snapshot the register pane dumps.
type regs struct {
	A, X, Y, SP uint8
	PC          uint16
	Status      uint8
}

type stepMsg struct{}

type model struct {
	bus *console.Bus
	cpu *mos6502.CPU

	input       textinput.Model
	entering    bool
	breakpoints []breakpoint

	running bool
	prevPC  uint16
	status  string
}

// Run starts the monitor TUI around a console and blocks until the
// user quits.
func Run(bus *console.Bus) error {
	ti := textinput.New()
	ti.Placeholder = "pc == 0x8000 && a > 0x10"
	ti.Prompt = "break when: "

	m := &model{
		bus:   bus,
		cpu:   bus.CPU(),
		input: ti,
	}

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) env() brEnv {
	return brEnv{
		A:      int(m.cpu.A()),
		X:      int(m.cpu.X()),
		Y:      int(m.cpu.Y()),
		SP:     int(m.cpu.SP()),
		PC:     int(m.cpu.PC()),
		Status: int(m.cpu.Status()),
		Read: func(addr int) int {
			return int(m.cpu.ReadMemory(uint16(addr)))
		},
	}
}

// breakHit evaluates every breakpoint; the first true one wins.
func (m *model) breakHit() (string, bool) {
	env := m.env()
	for _, bp := range m.breakpoints {
		out, err := expr.Run(bp.prog, env)
		if err != nil {
			continue
		}
		if hit, ok := out.(bool); ok && hit {
			return bp.src, true
		}
	}
	return "", false
}

func (m *model) addBreakpoint(src string) {
	prog, err := expr.Compile(src, expr.Env(brEnv{}), expr.AsBool())
	if err != nil {
		m.status = fmt.Sprintf("bad condition: %v", err)
		return
	}
	m.breakpoints = append(m.breakpoints, breakpoint{src: src, prog: prog})
	m.status = fmt.Sprintf("breakpoint %d armed", len(m.breakpoints))
}

func (m *model) step() {
	m.prevPC = m.cpu.PC()
	m.bus.StepInstruction()
}

func (m *model) runBurstCmd() tea.Cmd {
	return func() tea.Msg { return stepMsg{} }
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		if !m.running {
			return m, nil
		}
		for i := 0; i < runBurst; i++ {
			m.step()
			if src, hit := m.breakHit(); hit {
				m.running = false
				m.status = hitStyle.Render("break: " + src)
				return m, nil
			}
			if m.cpu.Halted() {
				m.running = false
				m.status = hitStyle.Render("CPU halted (KIL)")
				return m, nil
			}
		}
		return m, m.runBurstCmd()

	case tea.KeyMsg:
		if m.entering {
			switch msg.String() {
			case "enter":
				if v := strings.TrimSpace(m.input.Value()); v != "" {
					m.addBreakpoint(v)
				}
				m.entering = false
				m.input.Blur()
				m.input.SetValue("")
				return m, nil
			case "esc":
				m.entering = false
				m.input.Blur()
				m.input.SetValue("")
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "s", "j":
			m.step()
			m.status = ""
		case "r":
			m.running = !m.running
			if m.running {
				m.status = "running..."
				return m, m.runBurstCmd()
			}
			m.status = "paused"
		case "b":
			m.entering = true
			m.input.Focus()
			return m, textinput.Blink
		case "c":
			m.breakpoints = nil
			m.status = "breakpoints cleared"
		case "e":
			m.cpu.Reset()
			m.status = "reset"
		}
	}

	return m, nil
}

// renderPage renders 16 bytes of memory as a line, highlighting the
// current PC.
func (m *model) renderPage(start uint16) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%04x | ", start))
	for i := uint16(0); i < 16; i++ {
		b := m.cpu.ReadMemory(start + i)
		if start+i == m.cpu.PC() {
			sb.WriteString(fmt.Sprintf("[%02x] ", b))
		} else {
			sb.WriteString(fmt.Sprintf(" %02x  ", b))
		}
	}
	return sb.String()
}

func (m *model) pageTable() string {
	header := "addr | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	rows := []string{headerStyle.Render(header)}

	// The zero page tells you most of what a 6502 program is up
	// to; then a window around the PC.
	for _, start := range []uint16{0x0000, 0x0010, 0x0020, 0x0030} {
		rows = append(rows, m.renderPage(start))
	}
	rows = append(rows, dimStyle.Render(strings.Repeat("-", 16*5+7)))

	base := m.cpu.PC() &^ 0x000F
	for i := 0; i < 5; i++ {
		rows = append(rows, m.renderPage(base+uint16(i*16)))
	}

	return strings.Join(rows, "\n")
}

func (m *model) registerPane() string {
	snapshot := regs{
		A:      m.cpu.A(),
		X:      m.cpu.X(),
		Y:      m.cpu.Y(),
		SP:     m.cpu.SP(),
		PC:     m.cpu.PC(),
		Status: m.cpu.Status(),
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("registers") + "\n")
	sb.WriteString(spew.Sdump(snapshot))
	sb.WriteString(fmt.Sprintf("prev PC: %04x\n", m.prevPC))
	sb.WriteString("next: " + m.cpu.Inst() + "\n")

	if len(m.breakpoints) > 0 {
		sb.WriteString(headerStyle.Render("breakpoints") + "\n")
		for i, bp := range m.breakpoints {
			sb.WriteString(fmt.Sprintf("%d: %s\n", i, bp.src))
		}
	}

	return sb.String()
}

func (m *model) View() string {
	help := dimStyle.Render("space/s: step  r: run/pause  b: breakpoint  c: clear  e: reset  q: quit")

	parts := []string{
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			"  ",
			m.registerPane(),
		),
		"",
		m.status,
		help,
	}

	if m.entering {
		parts = append(parts, m.input.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
