// Package container reads and writes the encrypted NOFS voice bank container.
//
// A container is a fixed 192-byte header template with two patched length
// fields, the ASCII magic "SVDB", a random 16-byte IV, AES-256-CBC ciphertext
// of the legacy-schema JSON, and a 4-byte trailer repeating the total length.
// All integers are little-endian. Decrypt cross-checks every length field
// before touching the ciphertext and never returns a partial document.
//
// The cipher key and header template are fixed properties of the format and
// are compiled in. They are not a security boundary; changing either breaks
// compatibility with existing containers.
//
//	[0..192)      header template
//	                0xB0: u32 total length = svdb length + 20
//	                0xBC: u32 svdb length  = 20 + len(ciphertext)
//	[192..196)    magic "SVDB"
//	[196..212)    IV
//	[212..212+N)  ciphertext
//	[212+N..+4)   u32 trailer = svdb length + 20
package container
