// Package asf decodes the ASF/WMA GUID-delimited object tree: file
// properties (duration), content description, and extended content
// description (including WM/Picture artwork).
package asf

import (
	"github.com/nu7hatch/gouuid"

	"github.com/tagscan-go/tagscan/internal/breader"
)

// The well-known object GUIDs, stored in their on-disk byte order
// (mixed-endian per the ASF binary GUID convention) so a direct
// byte-for-byte read comparison is all that's needed.
var (
	guidFileHeader = gouuid.UUID{
		0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11,
		0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C,
	}
	guidFileProperties = gouuid.UUID{
		0xA1, 0xDC, 0xAB, 0x8C, 0x47, 0xA9, 0xCF, 0x11,
		0x8E, 0xE4, 0x00, 0xC0, 0x0C, 0x20, 0x53, 0x65,
	}
	guidContentDescription = gouuid.UUID{
		0x33, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11,
		0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C,
	}
	guidExtendedContentDescription = gouuid.UUID{
		0x40, 0xA4, 0xD0, 0xD2, 0x07, 0xE3, 0xD2, 0x11,
		0x97, 0xF0, 0x00, 0xA0, 0xC9, 0x5E, 0xA8, 0x50,
	}
)

// readGUID reads a raw 16-byte GUID in its on-disk byte order.
func readGUID(r *breader.Reader) (gouuid.UUID, error) {
	var u gouuid.UUID
	b, err := r.ReadExact(16)
	if err != nil {
		return u, err
	}
	copy(u[:], b)
	return u, nil
}
