package container_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/Columbina-Dev/vector-calculator/internal/container"
	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
)

const sampleDoc = `{"name":"Aria","version":"2b1","sing_model":"0123456789ABCDEF0123456789ABCDEF","styles":[{"name":"soft","data":"00","extra":0.5}]}`

func fixedIV() *bytes.Reader {
	return bytes.NewReader(bytes.Repeat([]byte{0x11}, container.IVSize))
}

func encrypt(t *testing.T, text string) []byte {
	t.Helper()
	out, err := container.EncryptWithRand([]byte(text), fixedIV())
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	return out
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	data := encrypt(t, sampleDoc)
	plain, err := container.Decrypt(data)
	if err != nil {
		t.Fatalf("Decrypt returned error: %v", err)
	}
	if string(plain) != sampleDoc {
		t.Fatalf("round trip mismatch:\n got %s\nwant %s", plain, sampleDoc)
	}
}

func TestEncryptUsesRandomIV(t *testing.T) {
	a, err := container.Encrypt([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	b, err := container.Encrypt([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	ivA := a[container.HeaderSize+container.MagicSize : container.HeaderSize+container.MagicSize+container.IVSize]
	ivB := b[container.HeaderSize+container.MagicSize : container.HeaderSize+container.MagicSize+container.IVSize]
	if bytes.Equal(ivA, ivB) {
		t.Fatal("expected distinct IVs for separate encryptions")
	}
}

func TestEncryptLayout(t *testing.T) {
	data := encrypt(t, sampleDoc)
	ciphertextLen := len(data) - container.HeaderSize - container.MagicSize - container.IVSize - container.TrailerSize
	if ciphertextLen <= 0 || ciphertextLen%16 != 0 {
		t.Fatalf("unexpected ciphertext length %d", ciphertextLen)
	}
	svdb := binary.LittleEndian.Uint32(data[container.OffsetSVDBLength:])
	if int(svdb) != 20+ciphertextLen {
		t.Fatalf("header 0xBC = %d, want %d", svdb, 20+ciphertextLen)
	}
	total := binary.LittleEndian.Uint32(data[container.OffsetTotalLength:])
	if total != svdb+20 {
		t.Fatalf("header 0xB0 = %d, want %d", total, svdb+20)
	}
	trailer := binary.LittleEndian.Uint32(data[len(data)-4:])
	if trailer != svdb+20 {
		t.Fatalf("trailer = %d, want %d", trailer, svdb+20)
	}
	if string(data[container.HeaderSize:container.HeaderSize+4]) != "SVDB" {
		t.Fatalf("missing magic, got %q", data[container.HeaderSize:container.HeaderSize+4])
	}
	template := container.HeaderTemplate()
	if !bytes.Equal(data[:container.OffsetTotalLength], template[:container.OffsetTotalLength]) {
		t.Fatal("header prefix differs from template")
	}
}

func TestPlaintextIsLegacySchema(t *testing.T) {
	data := encrypt(t, sampleDoc)
	info, err := container.Inspect(data)
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if !info.Intact() || !info.TemplateMatches {
		t.Fatalf("expected intact container, got %+v", info)
	}

	// Decrypting yields the modern schema, so the legacy form only exists
	// inside the ciphertext; check it indirectly through the document.
	doc, err := container.DecryptDocument(data)
	if err != nil {
		t.Fatalf("DecryptDocument returned error: %v", err)
	}
	if doc.Has("pitch_model") || !doc.Has("sing_model") {
		t.Fatalf("expected modern schema after decrypt, got %s", doc)
	}
}

func TestDecryptRejectsShortBuffer(t *testing.T) {
	_, err := container.Decrypt(make([]byte, container.MinSize-1))
	if !errors.Is(err, faults.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestDecryptRejectsBadMagic(t *testing.T) {
	data := encrypt(t, sampleDoc)
	data[container.HeaderSize] = 'X'
	plain, err := container.Decrypt(data)
	if !errors.Is(err, faults.ErrIntegrity) {
		t.Fatalf("expected integrity error, got %v", err)
	}
	if plain != nil {
		t.Fatal("expected no partial output")
	}
	if !strings.Contains(err.Error(), "magic") {
		t.Fatalf("expected error to name the magic check, got %v", err)
	}
}

func TestDecryptNamesFailedLengthCheck(t *testing.T) {
	cases := []struct {
		name   string
		tamper func([]byte)
		want   string
	}{
		{"trailer", func(b []byte) { b[len(b)-4]++ }, "trailer"},
		{"svdb field", func(b []byte) { b[container.OffsetSVDBLength]++ }, "0xBC"},
		{"total field", func(b []byte) { b[container.OffsetTotalLength]++ }, "0xB0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := encrypt(t, sampleDoc)
			tc.tamper(data)
			plain, err := container.Decrypt(data)
			if !errors.Is(err, faults.ErrIntegrity) {
				t.Fatalf("expected integrity error, got %v", err)
			}
			if plain != nil {
				t.Fatal("expected no partial output")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %v", tc.want, err)
			}
			info, err := container.Inspect(data)
			if err != nil {
				t.Fatalf("Inspect returned error: %v", err)
			}
			if info.Intact() {
				t.Fatal("expected Inspect to report a failed check")
			}
		})
	}
}

func TestDecryptRejectsMisalignedCiphertext(t *testing.T) {
	data := encrypt(t, sampleDoc)
	// Drop one ciphertext byte and re-patch every length so framing passes.
	trimmed := append(append([]byte{}, data[:len(data)-5]...), data[len(data)-4:]...)
	svdb := binary.LittleEndian.Uint32(trimmed[container.OffsetSVDBLength:]) - 1
	binary.LittleEndian.PutUint32(trimmed[container.OffsetSVDBLength:], svdb)
	binary.LittleEndian.PutUint32(trimmed[container.OffsetTotalLength:], svdb+20)
	binary.LittleEndian.PutUint32(trimmed[len(trimmed)-4:], svdb+20)

	_, err := container.Decrypt(trimmed)
	if !errors.Is(err, faults.ErrIntegrity) {
		t.Fatalf("expected integrity error, got %v", err)
	}
}

func TestEncryptRejectsInvalidJSON(t *testing.T) {
	_, err := container.EncryptWithRand([]byte(`{"name":`), fixedIV())
	if !errors.Is(err, faults.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestEncryptFailsWithoutRandomness(t *testing.T) {
	_, err := container.EncryptWithRand([]byte(`{}`), bytes.NewReader(nil))
	if err == nil {
		t.Fatal("expected error when IV source is empty")
	}
}

func TestRoundTripPreservesUnknownFieldsAndOrder(t *testing.T) {
	input := `{"z":1,"custom":{"deep":[1,2,{"sing_model":"x"}]},"a":"é<>"}`
	data := encrypt(t, input)
	doc, err := container.DecryptDocument(data)
	if err != nil {
		t.Fatalf("DecryptDocument returned error: %v", err)
	}
	want, err := jsondoc.ParseString(input)
	if err != nil {
		t.Fatalf("parse input: %v", err)
	}
	if !jsondoc.Equal(doc, want) {
		t.Fatalf("round trip mismatch: %s", doc)
	}
}
