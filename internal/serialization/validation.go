package serialization

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Validation limits for untrusted files.
const (
	MaxHeaderSize    = 16 * 1024 * 1024
	MaxDataSize      = 1 << 36 // 64 GiB
	MaxTensorCount   = 10_000
	MaxTensorNameLen = 256
)

// ValidateTensorName rejects empty, oversized and path-like names.
func ValidateTensorName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Type: "invalid_name", Details: "empty tensor name"}
	case len(name) > MaxTensorNameLen:
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	case strings.Contains(name, ".."), strings.ContainsAny(name, "/\\\x00"):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains a path element or null byte"}
	}
	return nil
}

// ValidateHeader checks names, shapes and data offsets against the size of
// the data section.
func ValidateHeader(h *Header, dataSize int64) error {
	if len(h.Tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	for _, t := range h.Tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return err
		}
		if t.DType != DTypeFloat64 {
			return &ValidationError{Type: "unsupported_dtype", Tensor: t.Name, Details: t.DType}
		}
		if len(t.Shape) != 2 || t.Shape[0] <= 0 || t.Shape[1] <= 0 {
			return &ValidationError{Type: "invalid_shape", Tensor: t.Name, Details: fmt.Sprint(t.Shape)}
		}
		if int64(t.Shape[0]) > math.MaxInt64/bytesPerElement/int64(t.Shape[1]) {
			return &ValidationError{Type: "shape_overflow", Tensor: t.Name, Details: fmt.Sprint(t.Shape)}
		}
		if want := int64(t.Shape[0]) * int64(t.Shape[1]) * bytesPerElement; t.Size != want {
			return &ValidationError{
				Type:    "size_mismatch",
				Tensor:  t.Name,
				Details: fmt.Sprintf("size %d, shape %v needs %d", t.Size, t.Shape, want),
			}
		}
	}

	return validateOffsets(h.Tensors, dataSize)
}

// validateOffsets rejects negative, out-of-bounds and overlapping regions.
func validateOffsets(tensors []TensorMeta, dataSize int64) error {
	sorted := slices.Clone(tensors)
	slices.SortFunc(sorted, func(a, b TensorMeta) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", t.Offset, t.Size),
			}
		}
		if t.Size > dataSize || t.Offset > dataSize-t.Size {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}
		if i < len(sorted)-1 && t.Offset+t.Size > sorted[i+1].Offset {
			next := sorted[i+1]
			return &ValidationError{
				Type:    "offset_overlap",
				Tensor:  t.Name,
				Tensor2: next.Name,
				Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
					t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
			}
		}
	}
	return nil
}
