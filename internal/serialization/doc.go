// Package serialization saves and loads trained parameters in the .bprp
// checkpoint format.
//
//	Format Structure:
//	  [64 bytes: fixed header]
//	    0x00-0x03: Magic "BPRP"
//	    0x04-0x07: Version (uint32 LE)
//	    0x08-0x0B: Flags (uint32 LE)
//	    0x0C-0x0F: Reserved
//	    0x10-0x17: Header size (uint64 LE)
//	    0x18-0x1F: Data size (uint64 LE)
//	    0x20-0x3F: SHA-256 checksum of the data section
//	  [Header: JSON metadata]
//	  [Tensor data: float64 LE, 64-byte aligned]
//
// Example usage:
//
//	// Save
//	err := serialization.SaveFile("model.bprp", serialization.StateDict(params), serialization.Header{
//	    ModelType: "classifier",
//	})
//
//	// Load
//	ckpt, err := serialization.LoadFile("model.bprp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = ckpt.Restore(params)
package serialization
