package container

import (
	"encoding/binary"
)

const (
	HeaderSize  = 192
	MagicSize   = 4
	IVSize      = 16
	TrailerSize = 4

	// OffsetTotalLength holds svdb length + 20.
	OffsetTotalLength = 0xB0
	// OffsetSVDBLength holds 20 + len(ciphertext).
	OffsetSVDBLength = 0xBC

	// svdbOverhead is the magic plus IV that precede the ciphertext.
	svdbOverhead = MagicSize + IVSize
	// totalOverhead is added to the svdb length for the total length fields.
	totalOverhead = 20

	// MinSize is the smallest buffer Decrypt will look at.
	MinSize = HeaderSize + MagicSize + IVSize + TrailerSize
)

// Magic marks the start of the encrypted section.
var Magic = [MagicSize]byte{'S', 'V', 'D', 'B'}

// headerTemplate is the fixed container header. Only the two length fields
// at OffsetTotalLength and OffsetSVDBLength vary between containers.
var headerTemplate = [HeaderSize]byte{
	0x4E, 0x4F, 0x46, 0x53, 0x02, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, // NOFS v2, header size, 1 entry
	0x73, 0x76, 0x64, 0x62, 0x2F, 0x63, 0x6F, 0x6E, 0x66, 0x69, 0x67, 0x2E, 0x6A, 0x73, 0x6F, 0x6E, // svdb/config.json
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x20, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, // cipher id, iv size, key size, mode
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x46, 0x49, 0x4C, 0x45, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // FILE entry
	0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // total len, entry index, data offset, svdb len
}

// HeaderTemplate returns a copy of the fixed header with zeroed length fields.
func HeaderTemplate() [HeaderSize]byte {
	return headerTemplate
}

// buildHeader copies the template and patches both length fields.
func buildHeader(svdbLength uint32) []byte {
	header := make([]byte, HeaderSize)
	copy(header, headerTemplate[:])
	binary.LittleEndian.PutUint32(header[OffsetTotalLength:], svdbLength+totalOverhead)
	binary.LittleEndian.PutUint32(header[OffsetSVDBLength:], svdbLength)
	return header
}

func readUint32(buf []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(buf[offset : offset+4])
}
