package container

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/migrate"
)

const component = "container"

// Encrypt wraps a modern-schema JSON document into a container. The document
// is migrated to the legacy schema and re-serialized compactly before
// encryption.
func Encrypt(jsonText []byte) ([]byte, error) {
	return EncryptWithRand(jsonText, rand.Reader)
}

// EncryptWithRand is Encrypt with an explicit IV source.
func EncryptWithRand(jsonText []byte, random io.Reader) ([]byte, error) {
	doc, err := jsondoc.Parse(jsonText)
	if err != nil {
		return nil, err
	}
	return EncryptDocument(doc, random)
}

// EncryptDocument wraps an already parsed document.
func EncryptDocument(doc *jsondoc.Value, random io.Reader) ([]byte, error) {
	plaintext := jsondoc.Marshal(migrate.ToLegacy(doc))

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(random, iv); err != nil {
		return nil, fmt.Errorf("%s: encrypt: generate iv: %w", component, err)
	}
	ciphertext, err := encryptCBC(plaintext, iv)
	if err != nil {
		return nil, fmt.Errorf("%s: encrypt: %w", component, err)
	}

	svdbLength := uint32(svdbOverhead + len(ciphertext))
	out := bytes.NewBuffer(make([]byte, 0, HeaderSize+int(svdbLength)+TrailerSize))
	out.Write(buildHeader(svdbLength))
	out.Write(Magic[:])
	out.Write(iv)
	out.Write(ciphertext)
	var trailer [TrailerSize]byte
	binary.LittleEndian.PutUint32(trailer[:], svdbLength+totalOverhead)
	out.Write(trailer[:])
	return out.Bytes(), nil
}

// Decrypt unwraps a container and returns the modern-schema document as
// compact JSON.
func Decrypt(data []byte) ([]byte, error) {
	doc, err := DecryptDocument(data)
	if err != nil {
		return nil, err
	}
	return jsondoc.Marshal(doc), nil
}

// DecryptDocument unwraps a container into a parsed modern-schema document.
func DecryptDocument(data []byte) (*jsondoc.Value, error) {
	sections, err := split(data)
	if err != nil {
		return nil, err
	}
	if failed := sections.failedCheck(); failed != "" {
		return nil, faults.Wrap(faults.ErrIntegrity, component, "decrypt", failed, nil)
	}

	plaintext, err := decryptCBC(sections.ciphertext, sections.iv)
	if err != nil {
		return nil, faults.Wrap(faults.ErrIntegrity, component, "decrypt", "ciphertext", err)
	}
	if !utf8.Valid(plaintext) {
		return nil, faults.Wrap(faults.ErrFormat, component, "decrypt", "payload is not valid UTF-8", nil)
	}
	doc, err := jsondoc.Parse(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%s: decrypt: %w", component, err)
	}
	return migrate.ToModern(doc), nil
}

type sections struct {
	header      []byte
	iv          []byte
	ciphertext  []byte
	trailer     uint32
	svdbLength  uint32
	headerSVDB  uint32
	headerTotal uint32
}

func split(data []byte) (sections, error) {
	if len(data) < MinSize {
		return sections{}, faults.Wrap(faults.ErrFormat, component, "decrypt",
			fmt.Sprintf("container is %d bytes, minimum is %d", len(data), MinSize), nil)
	}
	if !bytes.Equal(data[HeaderSize:HeaderSize+MagicSize], Magic[:]) {
		return sections{}, faults.Wrap(faults.ErrIntegrity, component, "decrypt",
			fmt.Sprintf("magic: expected %q, got %q", Magic[:], data[HeaderSize:HeaderSize+MagicSize]), nil)
	}
	ivStart := HeaderSize + MagicSize
	cipherStart := ivStart + IVSize
	cipherEnd := len(data) - TrailerSize
	s := sections{
		header:     data[:HeaderSize],
		iv:         data[ivStart:cipherStart],
		ciphertext: data[cipherStart:cipherEnd],
		trailer:    readUint32(data, cipherEnd),
	}
	s.svdbLength = uint32(svdbOverhead + len(s.ciphertext))
	s.headerSVDB = readUint32(s.header, OffsetSVDBLength)
	s.headerTotal = readUint32(s.header, OffsetTotalLength)
	return s, nil
}

func (s sections) checks() []Check {
	return []Check{
		{
			Name:     "header svdb length (0xBC)",
			Expected: s.svdbLength,
			Actual:   s.headerSVDB,
		},
		{
			Name:     "header total length (0xB0)",
			Expected: s.svdbLength + totalOverhead,
			Actual:   s.headerTotal,
		},
		{
			Name:     "trailer length",
			Expected: s.svdbLength + totalOverhead,
			Actual:   s.trailer,
		},
	}
}

func (s sections) failedCheck() string {
	for _, c := range s.checks() {
		if !c.OK() {
			return fmt.Sprintf("%s mismatch: expected %d, got %d", c.Name, c.Expected, c.Actual)
		}
	}
	return ""
}
