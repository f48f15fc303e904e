package flac

import (
	"bytes"

	"github.com/icza/bitio"

	"github.com/tagscan-go/tagscan/internal/breader"
)

// streamInfo is the subset of STREAMINFO's 34 bytes this module cares
// about: the bit-packed 64-bit field at offset 10 carrying sample rate
// (20 bits), channel count (3 bits, stored as count-1), bits per sample
// (5 bits, stored as bits-1), and total sample count (36 bits).
type streamInfo struct {
	sampleRate    uint32
	channels      uint8
	bitsPerSample uint8
	sampleCount   uint64
}

func (si streamInfo) lengthSeconds() float64 {
	if si.sampleRate == 0 {
		return 0
	}
	return float64(si.sampleCount) / float64(si.sampleRate)
}

func readStreamInfo(r *breader.Reader) (streamInfo, error) {
	d, err := r.ReadExact(34)
	if err != nil {
		return streamInfo{}, err
	}

	br := bitio.NewReader(bytes.NewReader(d[10:18]))
	sampleRate, err := br.ReadBits(20)
	if err != nil {
		return streamInfo{}, err
	}
	channels, err := br.ReadBits(3)
	if err != nil {
		return streamInfo{}, err
	}
	bitsPerSample, err := br.ReadBits(5)
	if err != nil {
		return streamInfo{}, err
	}
	sampleCount, err := br.ReadBits(36)
	if err != nil {
		return streamInfo{}, err
	}

	return streamInfo{
		sampleRate:    uint32(sampleRate),
		channels:      uint8(channels) + 1,
		bitsPerSample: uint8(bitsPerSample) + 1,
		sampleCount:   sampleCount,
	}, nil
}
