package container

import (
	"encoding/hex"
	"strings"
)

// Check is one length cross-check performed on a container.
type Check struct {
	Name     string `json:"name"`
	Expected uint32 `json:"expected"`
	Actual   uint32 `json:"actual"`
}

// OK reports whether the check passed.
func (c Check) OK() bool { return c.Expected == c.Actual }

// Info describes a container's framing without decrypting it.
type Info struct {
	Size             int     `json:"size"`
	IV               string  `json:"iv"`
	CiphertextLength int     `json:"ciphertext_length"`
	SVDBLength       uint32  `json:"svdb_length"`
	HeaderSVDBLength uint32  `json:"header_svdb_length"`
	HeaderTotal      uint32  `json:"header_total_length"`
	Trailer          uint32  `json:"trailer"`
	TemplateMatches  bool    `json:"template_matches"`
	Checks           []Check `json:"checks"`
}

// Intact reports whether every length check passed.
func (i Info) Intact() bool {
	for _, c := range i.Checks {
		if !c.OK() {
			return false
		}
	}
	return true
}

// Inspect reports container framing. Buffers too short to frame or with a
// bad magic fail exactly as Decrypt does; length mismatches are reported in
// Checks rather than returned as errors.
func Inspect(data []byte) (Info, error) {
	s, err := split(data)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Size:             len(data),
		IV:               strings.ToUpper(hex.EncodeToString(s.iv)),
		CiphertextLength: len(s.ciphertext),
		SVDBLength:       s.svdbLength,
		HeaderSVDBLength: s.headerSVDB,
		HeaderTotal:      s.headerTotal,
		Trailer:          s.trailer,
		TemplateMatches:  templateMatches(s.header),
		Checks:           s.checks(),
	}, nil
}

// templateMatches compares the header against the template, ignoring the
// two patched length fields.
func templateMatches(header []byte) bool {
	for i := 0; i < HeaderSize; i++ {
		if inField(i, OffsetTotalLength) || inField(i, OffsetSVDBLength) {
			continue
		}
		if header[i] != headerTemplate[i] {
			return false
		}
	}
	return true
}

func inField(i, offset int) bool {
	return i >= offset && i < offset+4
}
