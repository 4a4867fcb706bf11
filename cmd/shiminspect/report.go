package main

import (
	"fmt"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/config"
	"github.com/wippyai/dxshim/d3d8"
	"github.com/wippyai/dxshim/dsound"
	"github.com/wippyai/dxshim/vtable"
)

// section is one titled table of the report.
type section struct {
	title   string
	group   string
	headers []string
	rows    [][]string
}

func buildReport(cfg *config.Config, notes []string) ([]section, error) {
	var out []section
	for _, l := range vtable.Layouts() {
		out = append(out, layoutSection(l))
	}
	out = append(out,
		statusSection(),
		renderStateSection(),
		samplerSection(),
		bufferFlagSection(&cfg.DSound),
	)
	snap, err := configSection(cfg, notes)
	if err != nil {
		return nil, err
	}
	return append(out, snap), nil
}

func layoutSection(l *vtable.Layout) section {
	s := section{
		title:   l.Name,
		group:   "layout",
		headers: []string{"slot", "method", "args", "handled by"},
	}
	for i, slot := range l.Slots {
		s.rows = append(s.rows, []string{
			strconv.Itoa(i), slot.Name, strconv.Itoa(slot.Arity), handling(slot),
		})
	}
	return s
}

func handling(s vtable.Slot) string {
	switch {
	case !s.Forwarded():
		return "shim"
	case s.TranslatesStatus():
		return fmt.Sprintf("real #%d, status translated", s.Target())
	default:
		return fmt.Sprintf("real #%d", s.Target())
	}
}

func statusSection() section {
	s := section{
		title:   "Direct3D status",
		group:   "translation",
		headers: []string{"direct3d 9", "reported as"},
	}
	for _, r := range d3d8.StatusRemaps() {
		s.rows = append(s.rows, []string{r.From.String(), r.To.String()})
	}
	s.rows = append(s.rows, []string{"other D3D success", d3d8.D3DOK.String()})
	s.rows = append(s.rows, []string{"other D3D failure", d3d8.D3DErrInvalidCall.String()})
	return s
}

var renderStateKinds = map[d3d8.RenderStateKind]string{
	d3d8.RenderStateDepthBias:  "rewritten as DEPTHBIAS",
	d3d8.RenderStateSoftwareVP: "SetSoftwareVertexProcessing",
	d3d8.RenderStateIgnored:    "ignored, reads 0",
}

func renderStateSection() section {
	s := section{
		title:   "Render states",
		group:   "translation",
		headers: []string{"state", "handling"},
	}
	for rs := uint32(0); rs < 256; rs++ {
		if k := d3d8.ClassifyRenderState(rs); k != d3d8.RenderStatePass {
			s.rows = append(s.rows, []string{strconv.Itoa(int(rs)), renderStateKinds[k]})
		}
	}
	return s
}

func samplerSection() section {
	s := section{
		title:   "Texture stage states",
		group:   "translation",
		headers: []string{"stage state", "sampler state", "cubic filters"},
	}
	for tss := uint32(0); tss < 33; tss++ {
		samp, ok := d3d8.SamplerState(tss)
		if !ok {
			continue
		}
		filters := "-"
		if f := d3d8.FilterValue(tss, d3d8.TexFFlatCubic); f != d3d8.TexFFlatCubic {
			filters = fmt.Sprintf("%d->%d %d->%d",
				d3d8.TexFFlatCubic, f,
				d3d8.TexFGaussianCubic, d3d8.FilterValue(tss, d3d8.TexFGaussianCubic))
		}
		s.rows = append(s.rows, []string{strconv.Itoa(int(tss)), strconv.Itoa(int(samp)), filters})
	}
	return s
}

// bufferFlagSection shows what the configured options do to typical
// secondary buffer requests.
func bufferFlagSection(o *config.DSound) section {
	s := section{
		title:   "Buffer flags",
		group:   "translation",
		headers: []string{"requested", "created", "3d algorithm"},
	}
	requests := []uint32{
		0,
		dsound.DSBCapsStatic,
		dsound.DSBCapsLocHardware,
		dsound.DSBCapsLocSoftware | dsound.DSBCapsCtrl3D,
		dsound.DSBCapsCtrl3D,
	}
	for _, flags := range requests {
		d := &dsound.BufferDesc{Size: dsound.BufferDescSize, Flags: flags}
		dsound.ApplyBufferOptions(d, o)
		alg := "default"
		if com.IsEqual(&d.Algorithm3D, dsound.DS3DAlgHRTFFull) {
			alg = "hrtf full"
		}
		s.rows = append(s.rows, []string{
			fmt.Sprintf("0x%08X", flags), fmt.Sprintf("0x%08X", d.Flags), alg,
		})
	}
	return s
}

// configSection renders the effective options through the same INI
// mapping the shims read them with.
func configSection(cfg *config.Config, notes []string) (section, error) {
	s := section{
		title:   "Configuration",
		group:   "config",
		headers: []string{"section", "key", "value"},
	}
	f := ini.Empty()
	if err := f.ReflectFrom(cfg); err != nil {
		return s, err
	}
	for _, sec := range f.Sections() {
		for _, k := range sec.Keys() {
			s.rows = append(s.rows, []string{sec.Name(), k.Name(), k.String()})
		}
	}
	for _, n := range notes {
		s.rows = append(s.rows, []string{"normalize", "", n})
	}
	return s, nil
}
