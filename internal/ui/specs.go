package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/winstatz/internal/model"
)

type specsState int

const (
	specsIdle specsState = iota
	specsLoading
	specsLoaded
)

// Paged categories, in tab order.
const (
	pageGPU = iota
	pageMemory
	pageDisk
	pageCount
)

var pageNames = [pageCount]string{"GPU", "Memory", "Disk"}

// specsView is the advanced specs overlay. The inventory is read once, the
// first time the overlay opens.
type specsView struct {
	open  bool
	state specsState
	inv   model.InventorySnapshot
	focus int
	pages [pageCount]Cursor
}

func (v *specsView) load(inv model.InventorySnapshot) {
	v.inv = inv
	v.state = specsLoaded
	gpus, _ := inv.GPUs.Get()
	mods, _ := inv.MemoryModules.Get()
	disks, _ := inv.Disks.Get()
	v.pages[pageGPU] = NewCursor(len(gpus))
	v.pages[pageMemory] = NewCursor(len(mods))
	v.pages[pageDisk] = NewCursor(len(disks))
}

func (v *specsView) handleKey(key string) {
	switch key {
	case "tab":
		v.focus = (v.focus + 1) % pageCount
	case "shift+tab":
		v.focus = (v.focus + pageCount - 1) % pageCount
	case "n", "right":
		v.pages[v.focus].Next()
	case "p", "left":
		v.pages[v.focus].Prev()
	}
}

func (v *specsView) view(t theme) string {
	switch v.state {
	case specsIdle, specsLoading:
		return t.render("Specs", t.subtle.Render("reading hardware inventory…"))
	}

	inv := v.inv
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		t.render("CPU", groupBody(t, inv.CPU, func(c model.CPUInfo) []string {
			return []string{
				c.Name,
				c.Manufacturer,
				fmt.Sprintf("%d cores @ %d MHz", c.CoreCount, c.ClockSpeedMHz),
			}
		})),
		t.render("Network", groupBody(t, inv.Network, func(n model.NetworkAdapter) []string {
			return []string{
				truncate(n.Name, 32),
				"MAC " + n.MACAddress,
				fmt.Sprintf("%s, %.0f Mbps", n.AdapterType, n.SpeedMbps),
			}
		})),
		t.render("Battery", groupBody(t, inv.Battery, func(b model.BatteryInfo) []string {
			return []string{
				b.Name,
				fmt.Sprintf("%d%% %s", b.EstimatedChargeRemainingPercent, b.Status),
				fmt.Sprintf("design %d mWh, full %d mWh", b.DesignCapacityMWh, b.FullChargeCapacityMWh),
			}
		})),
	)

	paged := lipgloss.JoinHorizontal(lipgloss.Top,
		v.pageCard(t, pageGPU, pagedBody(t, inv.GPUs, v.pages[pageGPU], func(g model.GPUInfo) []string {
			return []string{
				truncate(g.Name, 32),
				"driver " + g.DriverVersion,
				truncate(g.VideoModeDescription, 32),
				fmt.Sprintf("VRAM %d MB", g.VRAMMB),
			}
		})),
		v.pageCard(t, pageMemory, pagedBody(t, inv.MemoryModules, v.pages[pageMemory], func(mm model.MemoryModule) []string {
			return []string{
				fmt.Sprintf("%d MB @ %d MHz", mm.CapacityMB, mm.SpeedMHz),
				mm.Manufacturer,
				mm.PartNumber,
			}
		})),
		v.pageCard(t, pageDisk, pagedBody(t, inv.Disks, v.pages[pageDisk], func(d model.DiskDrive) []string {
			return []string{
				truncate(d.Model, 32),
				fmt.Sprintf("%s, %s", d.InterfaceType, d.MediaType),
				fmt.Sprintf("%d GB", d.SizeGB),
				"S/N " + d.SerialNumber,
			}
		})),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, paged)
}

func (v *specsView) pageCard(t theme, page int, body string) string {
	title := pageNames[page] + " " + v.pages[page].Position()
	if page == v.focus {
		title = "› " + title
	}
	return t.render(title, body)
}

func groupBody[T any](t theme, g model.Group[T], lines func(T) []string) string {
	v, ok := g.Get()
	if !ok {
		return t.subtle.Render("not available")
	}
	return strings.Join(lines(v), "\n")
}

func pagedBody[T any](t theme, g model.Group[[]T], c Cursor, lines func(T) []string) string {
	items, ok := g.Get()
	if !ok {
		return t.subtle.Render("not available")
	}
	item, ok := pick(items, c)
	if !ok {
		return t.subtle.Render("none")
	}
	return strings.Join(lines(item), "\n")
}
