package serialization

import "time"

// Format constants.
const (
	MagicBytes       = "BPRP"
	FormatVersion    = 1
	HeaderAlignment  = 64 // Tensor data starts on a 64-byte boundary
	FixedHeaderSize  = 64
	ChecksumSize     = 32 // SHA-256
	ChecksumOffset   = 0x20
	bytesPerElement  = 8 // float64
	DTypeFloat64     = "float64"
	FlagHasMetadata  = uint32(1 << 0)
	FlagIsCheckpoint = uint32(1 << 1)
)

// Header represents the JSON header of a checkpoint file.
type Header struct {
	FormatVersion  int               `json:"format_version"`
	ModelType      string            `json:"model_type"`
	CreatedAt      time.Time         `json:"created_at"`
	Tensors        []TensorMeta      `json:"tensors"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CheckpointMeta *CheckpointMeta   `json:"checkpoint,omitempty"`
}

// CheckpointMeta contains training state at the time of saving.
type CheckpointMeta struct {
	Epoch           int                `json:"epoch"`
	Loss            float64            `json:"loss"`
	OptimizerType   string             `json:"optimizer_type,omitempty"`
	OptimizerConfig map[string]float64 `json:"optimizer_config,omitempty"`
}

// TensorMeta describes one stored matrix.
type TensorMeta struct {
	Name   string `json:"name"`   // Parameter name (e.g., "fc1.W")
	DType  string `json:"dtype"`  // Always "float64"
	Shape  []int  `json:"shape"`  // [rows, cols]
	Offset int64  `json:"offset"` // Bytes from the start of the data section
	Size   int64  `json:"size"`   // Size in bytes
}

func alignedSize(n int64) int64 {
	return n + (HeaderAlignment-n%HeaderAlignment)%HeaderAlignment
}
