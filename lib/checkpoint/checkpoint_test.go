package checkpoint

import (
	"encoding/binary"
	"os"
	"path"
	"testing"

	"github.com/phil-mansfield/pico/lib/eq"
	"github.com/phil-mansfield/pico/lib/particles"
)

func TestWriteReadRoundTrip(t *testing.T) {
	s := particles.NewSpecies("electron", 100)
	s.Np = 90
	for i := 0; i < s.Cap(); i++ {
		s.X[i] = float32(i) / 100
		s.Y[i] = float32(i) / 50
		s.Z[i] = float32(i) / 25
		s.Ux[i] = -float32(i)
		s.Uy[i] = float32(i) * 2
		s.Uz[i] = -float32(i) * 3
		s.W[i] = 1
		s.Cell[i] = int32(i % 10)
	}

	fname := path.Join(t.TempDir(), "electron.pck")
	err := Write(fname, s, SystemByteOrder())
	if err != nil { t.Fatalf("Expected Write to succeed, got: %s", err.Error()) }

	out, err := Read(fname)
	if err != nil { t.Fatalf("Expected Read to succeed, got: %s", err.Error()) }

	if out.Name != "electron" || out.Np != 90 || out.Cap() != 100 {
		t.Errorf("Expected name = electron, np = 90, cap = 100, got " +
			"name = %s, np = %d, cap = %d.", out.Name, out.Np, out.Cap())
	}
	names, data := s.FloatFields()
	_, outData := out.FloatFields()
	for i := range names {
		if !eq.Generic(outData[i], data[i]) {
			t.Errorf("The restored '%s' array doesn't match the original.",
				names[i])
		}
	}
	if !eq.Int32s(out.Cell, s.Cell) {
		t.Errorf("The restored 'cell' array doesn't match the original.")
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	fname := path.Join(t.TempDir(), "garbage.pck")
	err := os.WriteFile(fname, []byte("this is not a checkpoint"), 0644)
	if err != nil { t.Fatalf(err.Error()) }

	_, err = Read(fname)
	if err == nil {
		t.Errorf("Expected Read to reject a file without the magic " +
			"number, but got no error.")
	}
}

func TestReadRejectsBadVersion(t *testing.T) {
	fname := path.Join(t.TempDir(), "version.pck")
	fp, err := os.Create(fname)
	if err != nil { t.Fatalf(err.Error()) }

	order := SystemByteOrder()
	binary.Write(fp, order, uint32(MagicNumber))
	binary.Write(fp, order, uint32(Version + 1))
	fp.Close()

	_, err = Read(fname)
	if err == nil {
		t.Errorf("Expected Read to reject an unknown checkpoint version, " +
			"but got no error.")
	}
}
