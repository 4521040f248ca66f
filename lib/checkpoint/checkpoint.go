/*package checkpoint reads and writes compressed dumps of a species' particle
arrays. Each field is compressed separately with zstd, so a checkpoint of a
cold plasma is much smaller than the raw arrays.*/
package checkpoint

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/DataDog/zstd"

	"github.com/phil-mansfield/pico/lib/particles"
)

const (
	// MagicNumber is an arbitrary number at the start of all pico checkpoint
	// files which should help identify when the code is run on something
	// else by accident.
	MagicNumber = 0xacc0fa57
	// ReverseMagicNumber is the magic number if read on a machine with
	// flipped endianness.
	ReverseMagicNumber = 0x57fac0ac
	Version = 1

	zstdLevel = 1
)

// Write writes a species to the checkpoint file with a given name, using a
// given byte ordering. Use SystemByteOrder() unless you have a reason not
// to. The full capacity of the arrays is stored, stale slots included, so a
// restored species is indistinguishable from the original.
func Write(fname string, s *particles.Species, order binary.ByteOrder) error {
	fp, err := os.Create(fname)
	if err != nil { return err }
	defer fp.Close()

	err = binary.Write(fp, order, uint32(MagicNumber))
	if err != nil { return err }
	err = binary.Write(fp, order, uint32(Version))
	if err != nil { return err }

	err = binary.Write(fp, order, uint32(len(s.Name)))
	if err != nil { return err }
	_, err = fp.Write([]byte(s.Name))
	if err != nil { return err }

	err = binary.Write(fp, order, int64(s.Np))
	if err != nil { return err }
	err = binary.Write(fp, order, int64(s.Cap()))
	if err != nil { return err }

	raw := &bytes.Buffer{}
	_, data := s.FloatFields()
	for _, x := range data {
		raw.Reset()
		err = binary.Write(raw, order, x)
		if err != nil { return err }
		err = writeBlock(fp, raw.Bytes(), order)
		if err != nil { return err }
	}

	raw.Reset()
	err = binary.Write(raw, order, s.Cell)
	if err != nil { return err }
	return writeBlock(fp, raw.Bytes(), order)
}

// writeBlock compresses one field's bytes and writes them as a
// length-prefixed block.
func writeBlock(fp *os.File, b []byte, order binary.ByteOrder) error {
	zb, err := zstd.CompressLevel(nil, b, zstdLevel)
	if err != nil { return err }

	err = binary.Write(fp, order, int64(len(zb)))
	if err != nil { return err }
	_, err = fp.Write(zb)
	return err
}

// Read reads the species stored in the checkpoint file with a given name.
// Files written on machines with flipped endianness are handled
// transparently.
func Read(fname string) (*particles.Species, error) {
	fp, err := os.Open(fname)
	if err != nil { return nil, err }
	defer fp.Close()

	var magic uint32
	order := SystemByteOrder()
	err = binary.Read(fp, order, &magic)
	if err != nil { return nil, err }

	switch magic {
	case MagicNumber:
	case ReverseMagicNumber:
		if order == binary.ByteOrder(binary.LittleEndian) {
			order = binary.BigEndian
		} else {
			order = binary.LittleEndian
		}
	default:
		return nil, fmt.Errorf("The file %s is not a pico checkpoint: it " +
			"starts with 0x%x instead of the expected magic number 0x%x.",
			fname, magic, uint32(MagicNumber))
	}

	var version uint32
	err = binary.Read(fp, order, &version)
	if err != nil { return nil, err }
	if version != Version {
		return nil, fmt.Errorf("The file %s was written by checkpoint " +
			"version %d, but this version of pico reads version %d.",
			fname, version, Version)
	}

	var nName uint32
	err = binary.Read(fp, order, &nName)
	if err != nil { return nil, err }
	bName := make([]byte, nName)
	_, err = io.ReadFull(fp, bName)
	if err != nil { return nil, err }

	var np, capacity int64
	err = binary.Read(fp, order, &np)
	if err != nil { return nil, err }
	err = binary.Read(fp, order, &capacity)
	if err != nil { return nil, err }
	if np < 0 || capacity < 0 || np > capacity {
		return nil, fmt.Errorf("The file %s claims %d active particles in " +
			"%d slots, which is corrupt.", fname, np, capacity)
	}

	s := particles.NewSpecies(string(bName), int(capacity))
	s.Np = int(np)

	_, data := s.FloatFields()
	for _, x := range data {
		err = readBlock(fp, x, order)
		if err != nil { return nil, err }
	}
	err = readBlock(fp, s.Cell, order)
	if err != nil { return nil, err }

	return s, nil
}

// readBlock reads one length-prefixed compressed block into the array x,
// which must be []float32 or []int32.
func readBlock(fp *os.File, x interface{}, order binary.ByteOrder) error {
	var nz int64
	err := binary.Read(fp, order, &nz)
	if err != nil { return err }

	zb := make([]byte, nz)
	_, err = io.ReadFull(fp, zb)
	if err != nil { return err }

	b, err := zstd.Decompress(nil, zb)
	if err != nil { return err }

	switch xx := x.(type) {
	case []float32:
		if len(b) != 4*len(xx) {
			return fmt.Errorf("A checkpoint field block decompressed to " +
				"%d bytes, but the species' arrays have %d slots.",
				len(b), len(xx))
		}
		return binary.Read(bytes.NewReader(b), order, xx)
	case []int32:
		if len(b) != 4*len(xx) {
			return fmt.Errorf("A checkpoint field block decompressed to " +
				"%d bytes, but the species' arrays have %d slots.",
				len(b), len(xx))
		}
		return binary.Read(bytes.NewReader(b), order, xx)
	default:
		panic("Internal error: unrecognized field type given to readBlock.")
	}
}

// SystemByteOrder returns the byte ordering of the host machine.
func SystemByteOrder() binary.ByteOrder {
	// See https://stackoverflow.com/questions/51332658/any-better-way-to-check-endianness-in-go/51332762
	b := [2]byte{ }
	*(*uint16)(unsafe.Pointer(&b[0])) = uint16(0x0001)
	if b[0] == 0 {
		return binary.BigEndian
	} else {
		return binary.LittleEndian
	}
}
