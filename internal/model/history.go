package model

// DefaultHistorySize is the number of points kept per chart.
const DefaultHistorySize = 50

// History is a fixed-capacity FIFO of scalar samples. It is not safe for
// concurrent writers; the owner serializes access.
type History struct {
	buf   []float64
	start int
	n     int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{buf: make([]float64, capacity)}
}

// Push appends v, evicting the oldest point once full.
func (h *History) Push(v float64) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = v
		h.n++
		return
	}
	h.buf[h.start] = v
	h.start = (h.start + 1) % len(h.buf)
}

// Values returns a copy ordered oldest to newest.
func (h *History) Values() []float64 {
	out := make([]float64, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Last returns the newest point.
func (h *History) Last() (float64, bool) {
	if h.n == 0 {
		return 0, false
	}
	return h.buf[(h.start+h.n-1)%len(h.buf)], true
}

func (h *History) Len() int { return h.n }
func (h *History) Cap() int { return len(h.buf) }

// Histories keeps one buffer per charted stream.
type Histories struct {
	CPU       *History
	Memory    *History
	DiskRead  *History
	DiskWrite *History
	NetUp     *History
	NetDown   *History
}

func NewHistories(capacity int) *Histories {
	return &Histories{
		CPU:       NewHistory(capacity),
		Memory:    NewHistory(capacity),
		DiskRead:  NewHistory(capacity),
		DiskWrite: NewHistory(capacity),
		NetUp:     NewHistory(capacity),
		NetDown:   NewHistory(capacity),
	}
}

// Record appends the scalars of s. Absent groups push nothing, so a gap in
// sampling shows as a shorter series rather than a false zero. diskIndex
// selects which device feeds the disk charts; out-of-range means none.
func (hs *Histories) Record(s UsageSnapshot, diskIndex int) {
	if c, ok := s.CPU.Get(); ok {
		hs.CPU.Push(AverageCPU(c.PerCore))
	}
	if m, ok := s.Memory.Get(); ok {
		hs.Memory.Push(m.Percent)
	}
	if disks, ok := s.Disks.Get(); ok && diskIndex >= 0 && diskIndex < len(disks) {
		hs.DiskRead.Push(disks[diskIndex].ReadMBps)
		hs.DiskWrite.Push(disks[diskIndex].WriteMBps)
	}
	if n, ok := s.Network.Get(); ok {
		hs.NetUp.Push(n.UpMbps)
		hs.NetDown.Push(n.DownMbps)
	}
}
