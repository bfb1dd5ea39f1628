// Package profile counts the instructions executed by a GameBoy and
// renders them as a bar chart.
package profile

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/thelolagemann/dmgcore/internal/cpu"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoSamples is returned by WritePNG before anything was traced.
var ErrNoSamples = errors.New("profile: no samples")

// Entry is the profile of a single opcode.
type Entry struct {
	Opcode uint8
	Name   string
	// Count is the number of times the opcode was executed.
	Count uint64
	// Cycles is the number of clock ticks spent executing it.
	Cycles uint64
}

// Profile is a Tracer that counts executions per opcode. It is safe
// for concurrent use.
type Profile struct {
	mu     sync.Mutex
	counts [256]uint64
	cycles [256]uint64
	names  [256]string
	total  uint64
}

// New returns an empty Profile.
func New() *Profile {
	return &Profile{}
}

// Trace records one executed instruction.
func (p *Profile) Trace(t cpu.Trace) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.counts[t.Opcode]++
	p.cycles[t.Opcode] += uint64(t.Cycles)
	p.names[t.Opcode] = t.Name
	p.total++
}

// Total returns the number of instructions recorded.
func (p *Profile) Total() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Top returns the n most executed opcodes, most executed first and
// ties broken by opcode. n <= 0 returns every executed opcode.
func (p *Profile) Top(n int) []Entry {
	p.mu.Lock()
	entries := make([]Entry, 0, 16)
	for op, count := range p.counts {
		if count == 0 {
			continue
		}
		entries = append(entries, Entry{
			Opcode: uint8(op),
			Name:   p.names[op],
			Count:  count,
			Cycles: p.cycles[op],
		})
	}
	p.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// WritePNG renders the n most executed opcodes as a bar chart and
// writes it to w as a PNG image.
func (p *Profile) WritePNG(w io.Writer, n int) error {
	entries := p.Top(n)
	if len(entries) == 0 {
		return ErrNoSamples
	}

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.Count)
		labels[i] = fmt.Sprintf("%02X", e.Opcode)
	}

	chart := plot.New()
	chart.Title.Text = fmt.Sprintf("Opcode profile (%d instructions)", p.Total())
	chart.X.Label.Text = "opcode"
	chart.Y.Label.Text = "executions"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	chart.Add(bars)
	chart.NominalX(labels...)

	c := vgimg.New(vg.Points(float64(160+16*len(entries))), vg.Points(320))
	chart.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	return nil
}
