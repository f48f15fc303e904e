package asf

import (
	"github.com/nu7hatch/gouuid"

	"github.com/tagscan-go/tagscan/internal/breader"
)

// objectHeaderSize is the 16-byte GUID plus the 8-byte little-endian
// size field every object begins with.
const objectHeaderSize = 24

// object is a decoded object header. payloadSize is the object's
// total declared size minus the 24-byte header, i.e. the number of
// bytes remaining to be consumed (or skipped) for this object.
type object struct {
	guid        gouuid.UUID
	payloadSize int64
}

func readObject(r *breader.Reader) (object, error) {
	guid, err := readGUID(r)
	if err != nil {
		return object{}, err
	}
	size, err := breader.LE[uint64](r)
	if err != nil {
		return object{}, err
	}
	payload := int64(size) - objectHeaderSize
	if payload < 0 {
		payload = 0
	}
	return object{guid: guid, payloadSize: payload}, nil
}
