package serialization

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"time"

	"github.com/born-ml/backprop/internal/nn"
	"gonum.org/v1/gonum/mat"
)

// StateDict returns the current values of named parameters.
//
// The matrices are the parameters' own storage, not copies.
func StateDict(params map[string]*nn.Param) map[string]*mat.Dense {
	state := make(map[string]*mat.Dense, len(params))
	for name, p := range params {
		state[name] = p.Value()
	}
	return state
}

// Save writes state to w with the given header.
//
// Tensors are stored in name order. header.Tensors, FormatVersion and, when
// zero, CreatedAt are filled in.
func Save(w io.Writer, state map[string]*mat.Dense, header Header) error {
	names := make([]string, 0, len(state))
	for name := range state {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	slices.Sort(names)

	header.FormatVersion = FormatVersion
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	header.Tensors = make([]TensorMeta, 0, len(names))

	var data []byte
	for _, name := range names {
		m := state[name]
		r, c := m.Dims()
		start := len(data)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				data = binary.LittleEndian.AppendUint64(data, math.Float64bits(m.At(i, j)))
			}
		}
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  DTypeFloat64,
			Shape:  []int{r, c},
			Offset: int64(start),
			Size:   int64(len(data) - start),
		})
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	var flags uint32
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if header.CheckpointMeta != nil {
		flags |= FlagIsCheckpoint
	}

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))
	checksum := sha256.Sum256(data)
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	end := int64(FixedHeaderSize + len(headerJSON))
	padding := make([]byte, alignedSize(end)-end)

	for _, chunk := range [][]byte{fixed, headerJSON, padding, data} {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("failed to write checkpoint: %w", err)
		}
	}
	return nil
}

// SaveFile writes state to path, replacing any existing file.
func SaveFile(path string, state map[string]*mat.Dense, header Header) (err error) {
	//nolint:gosec // G304: path is chosen by the user
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Save(bw, state, header); err != nil {
		return err
	}
	return bw.Flush()
}
