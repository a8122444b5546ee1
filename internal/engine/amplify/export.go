package amplify

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteOBJ writes the batches as a single Wavefront OBJ object with
// positions and normals. Indices are rebased into one shared vertex space.
func WriteOBJ(w io.Writer, batches []Batch) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# amplified surface export")
	base := 1 // OBJ indices are 1-based
	for i := range batches {
		b := &batches[i]
		fmt.Fprintf(bw, "o element_%d\n", b.Element)
		for _, p := range b.Positions {
			fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		for _, n := range b.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}
		for t := 0; t+2 < len(b.Indices); t += 3 {
			i0 := base + int(b.Indices[t])
			i1 := base + int(b.Indices[t+1])
			i2 := base + int(b.Indices[t+2])
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", i0, i0, i1, i1, i2, i2)
		}
		base += len(b.Positions)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush obj: %w", err)
	}
	return nil
}

// ExportOBJ writes the batches to a file at path.
func ExportOBJ(path string, batches []Batch) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteOBJ(f, batches); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
