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

	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// Checkpoint is a loaded checkpoint file.
type Checkpoint struct {
	Header  Header
	Tensors map[string]*mat.Dense
}

// Load reads a checkpoint from r, verifying its checksum and header.
func Load(r io.Reader) (*Checkpoint, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixed[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if v := binary.LittleEndian.Uint32(fixed[4:8]); v != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, v, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}
	if dataSize > MaxDataSize {
		return nil, &ValidationError{
			Type:    "data_too_large",
			Details: fmt.Sprintf("data size %d > max %d", dataSize, uint64(MaxDataSize)),
		}
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	end := int64(FixedHeaderSize) + int64(headerSize)
	if _, err := io.CopyN(io.Discard, r, alignedSize(end)-end); err != nil {
		return nil, fmt.Errorf("failed to skip padding: %w", err)
	}

	if err := ValidateHeader(&header, int64(dataSize)); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if sha256.Sum256(data) != [ChecksumSize]byte(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize]) {
		return nil, ErrChecksumMismatch
	}

	ckpt := &Checkpoint{Header: header, Tensors: make(map[string]*mat.Dense, len(header.Tensors))}
	for _, t := range header.Tensors {
		raw := data[t.Offset : t.Offset+t.Size]
		values := make([]float64, len(raw)/bytesPerElement)
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*bytesPerElement:]))
		}
		ckpt.Tensors[t.Name] = mat.NewDense(t.Shape[0], t.Shape[1], values)
	}
	return ckpt, nil
}

// LoadFile reads a checkpoint from path.
func LoadFile(path string) (*Checkpoint, error) {
	//nolint:gosec // G304: path is chosen by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Load(bufio.NewReader(f))
}

// Restore copies stored values into params.
//
// Every parameter must be present with a matching shape. Gradients are left
// untouched. Nothing is copied when any check fails.
func (c *Checkpoint) Restore(params map[string]*nn.Param) error {
	for name, p := range params {
		stored, ok := c.Tensors[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrTensorNotFound, name)
		}
		if got, want := tensor.ShapeOf(stored), p.Shape(); !got.Equal(want) {
			return &ValidationError{
				Type:    "shape_mismatch",
				Tensor:  name,
				Details: fmt.Sprintf("stored %v, parameter %v", got, want),
			}
		}
	}
	for name, p := range params {
		p.Value().Copy(c.Tensors[name])
	}
	return nil
}
