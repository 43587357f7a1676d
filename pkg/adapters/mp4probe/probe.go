// Package mp4probe reads video track metadata from MP4 containers.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/pinframe/pkg/ports"
)

// Codec names reported in ports.VideoInfo.
const (
	CodecH264    = "h264"
	CodecHEVC    = "hevc"
	CodecAV1     = "av1"
	CodecVP9     = "vp9"
	CodecUnknown = "unknown"
)

// ErrNoVideoTrack is returned when the container has no usable video track.
var ErrNoVideoTrack = errors.New("no video track found")

// Prober implements ports.VideoProbe using mp4ff.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe reads the video track metadata of the MP4 file at path.
// Sample data is not loaded.
func (p *Prober) Probe(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return p.ProbeReader(f)
}

// ProbeReader reads video track metadata from an io.ReadSeeker.
func (p *Prober) ProbeReader(r io.ReadSeeker) (ports.VideoInfo, error) {
	file, err := mp4.DecodeFile(r, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	if file.IsFragmented() {
		return probeFragmented(file)
	}
	return probeProgressive(file)
}

func probeProgressive(file *mp4.File) (ports.VideoInfo, error) {
	if file.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := videoTrak(file.Moov.Traks)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	info := trackInfo(trak)
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz != nil {
		info.SampleCount = int(stbl.Stsz.SampleNumber)
	}
	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 {
		info.DurationMs = int(mdhd.Duration * 1000 / uint64(mdhd.Timescale))
	}
	return info, nil
}

func probeFragmented(file *mp4.File) (ports.VideoInfo, error) {
	if file.Init == nil || file.Init.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := videoTrak(file.Init.Moov.Traks)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	info := trackInfo(trak)
	info.Fragmented = true

	trackID := trak.Tkhd.TrackID
	for _, seg := range file.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					info.SampleCount += int(trun.SampleCount())
				}
			}
		}
	}
	return info, nil
}

func videoTrak(traks []*mp4.TrakBox) *mp4.TrakBox {
	for _, trak := range traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
			continue
		}
		return trak
	}
	return nil
}

func trackInfo(trak *mp4.TrakBox) ports.VideoInfo {
	info := ports.VideoInfo{Codec: CodecUnknown}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		entry, ok := child.(*mp4.VisualSampleEntryBox)
		if !ok {
			continue
		}
		info.Codec = codecName(entry.Type())
		info.Width = int(entry.Width)
		info.Height = int(entry.Height)
		break
	}

	// Fall back to the track header, which stores 16.16 fixed point.
	if (info.Width == 0 || info.Height == 0) && trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}
	return info
}

func codecName(sampleEntry string) string {
	switch sampleEntry {
	case "avc1", "avc3":
		return CodecH264
	case "hvc1", "hev1":
		return CodecHEVC
	case "av01":
		return CodecAV1
	case "vp09":
		return CodecVP9
	default:
		return CodecUnknown
	}
}

var _ ports.VideoProbe = (*Prober)(nil)
