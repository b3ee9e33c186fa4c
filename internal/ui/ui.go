package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Dicklesworthstone/winstatz/internal/config"
	"github.com/Dicklesworthstone/winstatz/internal/inventory"
	"github.com/Dicklesworthstone/winstatz/internal/model"
	"github.com/Dicklesworthstone/winstatz/internal/sampler"
)

const coreBar = 10

// InventoryReader loads the hardware inventory shown in the specs overlay.
type InventoryReader interface {
	Read(ctx context.Context) model.InventorySnapshot
}

// Model renders snapshots from a sampler stream.
type Model struct {
	cfg     config.Config
	theme   theme
	logger  *zap.Logger
	latest  model.UsageSnapshot
	history *model.Histories
	stream  <-chan model.UsageSnapshot
	disk    Cursor
	specs   specsView
	reader  InventoryReader

	ctx       context.Context
	ctxCancel context.CancelFunc
	width     int
	height    int
}

// New builds a model fed by stream. Cancelling the model (on quit) also
// cancels ctx-bound work it started, such as the inventory load.
func New(cfg config.Config, stream <-chan model.UsageSnapshot, reader InventoryReader, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		cfg:       cfg,
		theme:     newTheme(cfg.Appearance, cfg.ColorTheme),
		logger:    logger,
		latest:    model.Zero(),
		history:   model.NewHistories(cfg.HistorySize),
		stream:    stream,
		reader:    reader,
		ctx:       ctx,
		ctxCancel: cancel,
		width:     120,
		height:    40,
	}
}

// Messages
type (
	tickMsg      struct{}
	configMsg    config.Config
	inventoryMsg model.InventorySnapshot
)

func tickCmd() tea.Cmd { return tea.Tick(time.Second/5, func(time.Time) tea.Msg { return tickMsg{} }) }

// loadInventory runs off the UI goroutine; the inventory call can take
// seconds.
func (m *Model) loadInventory() tea.Cmd {
	reader, ctx := m.reader, m.ctx
	return func() tea.Msg { return inventoryMsg(reader.Read(ctx)) }
}

func (m *Model) Init() tea.Cmd { return tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		select {
		case snap, ok := <-m.stream:
			if !ok {
				m.logger.Debug("Sample stream closed")
				return m, nil
			}
			m.apply(snap)
		default:
		}
		return m, tickCmd()
	case configMsg:
		// Only presentation settings are live; the sampler keeps its cadence.
		if msg.Appearance != m.theme.appearance || msg.ColorTheme != m.theme.color {
			m.logger.Info("Applying theme from config",
				zap.String("appearance", msg.Appearance),
				zap.String("color_theme", msg.ColorTheme))
			m.theme = newTheme(msg.Appearance, msg.ColorTheme)
		}
	case inventoryMsg:
		m.specs.load(model.InventorySnapshot(msg))
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.ctxCancel()
		return m, tea.Quit
	case "t":
		m.theme = m.theme.toggleAppearance()
		return m, nil
	case "c":
		m.theme = m.theme.toggleColor()
		return m, nil
	case "s":
		m.specs.open = !m.specs.open
		if m.specs.open && m.specs.state == specsIdle && m.reader != nil {
			m.specs.state = specsLoading
			return m, m.loadInventory()
		}
		return m, nil
	case "esc":
		m.specs.open = false
		return m, nil
	}

	if m.specs.open {
		m.specs.handleKey(msg.String())
		return m, nil
	}
	switch msg.String() {
	case "n", "right":
		m.focusDisk(m.disk.Next)
	case "p", "left":
		m.focusDisk(m.disk.Prev)
	}
	return m, nil
}

// focusDisk moves the disk cursor and restarts the disk charts, which only
// ever show one device.
func (m *Model) focusDisk(move func()) {
	before := m.disk.Index()
	move()
	if m.disk.Index() != before {
		m.history.DiskRead = model.NewHistory(m.history.DiskRead.Cap())
		m.history.DiskWrite = model.NewHistory(m.history.DiskWrite.Cap())
	}
}

func (m *Model) apply(snap model.UsageSnapshot) {
	if disks, ok := snap.Disks.Get(); ok {
		m.focusDisk(func() { m.disk.Resize(len(disks)) })
	}
	m.latest = snap
	m.history.Record(snap, m.disk.Index())
}

func (m *Model) View() string {
	t := m.theme
	s := m.latest
	header := t.title.Render("winstatz") + "  " +
		t.subtle.Render(s.Timestamp.Format("Mon Jan 2 15:04:05 MST 2006"))

	if m.specs.open {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.specs.view(t),
			t.subtle.Render("tab category · n/p page · s/esc close · q quit"))
	}

	line1 := lipgloss.JoinHorizontal(lipgloss.Top, m.cpuCard(), m.memoryCard())
	line2 := lipgloss.JoinHorizontal(lipgloss.Top, m.diskCard(), m.networkCard(), m.batteryCard())
	footer := t.subtle.Render("n/p disk · t appearance · c color · s specs · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, line1, line2, footer)
}

func (m *Model) cpuCard() string {
	t := m.theme
	c, ok := m.latest.CPU.Get()
	if !ok {
		return t.render("CPU", m.unavailable(m.latest.CPU.Reason()))
	}
	avg := model.AverageCPU(c.PerCore)
	lines := []string{
		t.gauge.Render(gaugeBar(avg, 28)),
		t.gauge.Render(chart(m.history.CPU, 100)),
	}
	for i, p := range c.PerCore {
		lines = append(lines, fmt.Sprintf("%-7s %s", fmt.Sprintf("core%d", i+1), gaugeBar(p, coreBar)))
	}
	return t.render("CPU", strings.Join(lines, "\n"))
}

func (m *Model) memoryCard() string {
	t := m.theme
	mem, ok := m.latest.Memory.Get()
	if !ok {
		return t.render("Memory", m.unavailable(m.latest.Memory.Reason()))
	}
	return t.render("Memory", strings.Join([]string{
		t.gauge.Render(gaugeBar(mem.Percent, 28)),
		fmt.Sprintf("used %.1f / %.1f MB", mem.UsedMB, mem.TotalMB),
		fmt.Sprintf("free %.1f MB", mem.FreeMB),
		t.gauge.Render(chart(m.history.Memory, 100)),
	}, "\n"))
}

func (m *Model) diskCard() string {
	t := m.theme
	disks, ok := m.latest.Disks.Get()
	if !ok {
		return t.render("Disk", m.unavailable(m.latest.Disks.Reason()))
	}
	d, ok := pick(disks, m.disk)
	if !ok {
		return t.render("Disk", t.subtle.Render("no disks"))
	}
	read, write := model.TotalDiskIO(disks)
	return t.render("Disk "+m.disk.Position(), strings.Join([]string{
		truncate(d.Device, 24),
		fmt.Sprintf("R %.2f MB/s", d.ReadMBps),
		t.gauge.Render(chart(m.history.DiskRead, 0)),
		fmt.Sprintf("W %.2f MB/s", d.WriteMBps),
		t.gauge.Render(chart(m.history.DiskWrite, 0)),
		t.subtle.Render(fmt.Sprintf("all R/W %.2f / %.2f MB/s", read, write)),
	}, "\n"))
}

func (m *Model) networkCard() string {
	t := m.theme
	n, ok := m.latest.Network.Get()
	if !ok {
		return t.render("Network", m.unavailable(m.latest.Network.Reason()))
	}
	return t.render("Network", strings.Join([]string{
		fmt.Sprintf("up   %.2f Mb/s", n.UpMbps),
		t.gauge.Render(chart(m.history.NetUp, 0)),
		fmt.Sprintf("down %.2f Mb/s", n.DownMbps),
		t.gauge.Render(chart(m.history.NetDown, 0)),
	}, "\n"))
}

func (m *Model) batteryCard() string {
	t := m.theme
	b, ok := m.latest.Battery.Get()
	if !ok {
		return t.render("Battery", m.unavailable(m.latest.Battery.Reason()))
	}
	power := "on battery"
	if b.PluggedIn {
		power = "plugged in"
	}
	return t.render("Battery", strings.Join([]string{
		t.gauge.Render(gaugeBar(b.Percent, 20)),
		power,
		"time left " + timeLeft(b.TimeLeftMinutes, b.Unlimited()),
	}, "\n"))
}

// chart draws every point the history can hold.
func chart(h *model.History, ceiling float64) string {
	return sparkline(h.Values(), h.Cap(), ceiling)
}

func (m *Model) unavailable(reason error) string {
	if reason == nil || errors.Is(reason, model.ErrNotSampled) {
		return m.theme.subtle.Render("waiting for first sample")
	}
	if errors.Is(reason, sampler.ErrBatteryDisabled) {
		return m.theme.subtle.Render("disabled")
	}
	return m.theme.warn.Render("unavailable")
}

// RunTUI starts the Bubble Tea program. When cfg.File is set the config file
// is watched and appearance changes are applied live.
func RunTUI(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := sampler.New(cfg, logger)
	m := New(cfg, s.Stream(ctx), inventory.New(logger), logger)
	defer m.ctxCancel()
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if cfg.File != "" {
		go func() {
			err := config.Watch(ctx, cfg.File, logger, func(c config.Config) { prog.Send(configMsg(c)) })
			if err != nil {
				logger.Warn("Config watch disabled", zap.Error(err))
			}
		}()
	}

	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
