// Package config defines the persistent boot record of the controller.
// All structs are designed for zero-allocation binary serialization.
package config

import (
	"encoding/binary"
	"errors"
	"io"
)

// CurrentVersion is the record format version.
// Bump this when making breaking changes to the record format.
// When firmware boots and finds a different version in flash, the record is wiped.
const CurrentVersion uint16 = 1

// RecordSize is the encoded size of a BootRecord.
const RecordSize = 12

// Fault identifies a fatal boot condition.
type Fault uint8

const (
	FaultNone Fault = iota
	FaultExpander       // expander did not accept its configuration
	FaultUnstableSwitch // configuration bit never settled
	FaultInvalidConfig  // configuration index out of range
	FaultInvalidTable   // compiled-in mapping table failed validation
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultExpander:
		return "expander"
	case FaultUnstableSwitch:
		return "unstable switch"
	case FaultInvalidConfig:
		return "invalid config"
	case FaultInvalidTable:
		return "invalid table"
	}
	return "unknown"
}

// BootRecord is what the firmware remembers across resets.
// Total size: 12 bytes
// Layout:
//
//	[0-1]:  Version (uint16)
//	[2-5]:  BootCount (uint32)
//	[6]:    ActiveConfig (uint8)
//	[7]:    SwitchBits (uint8, bit 3 = first switch)
//	[8]:    LastFault (uint8)
//	[9]:    FaultCount (uint8, saturates at 255)
//	[10-11]: Reserved for future use
type BootRecord struct {
	Version      uint16 // Record format version
	BootCount    uint32 // Number of boots since the last wipe
	ActiveConfig uint8  // Configuration selected on the last boot
	SwitchBits   uint8  // Raw switch positions read on the last boot
	LastFault    Fault  // Fault of the last failed boot, FaultNone if cleared
	FaultCount   uint8  // Failed boots since the last wipe
	Reserved     uint16 // Reserved for future use
}

// Errors
var (
	ErrInvalidSize = errors.New("invalid record size")
)

// MarshalBinary implements encoding.BinaryMarshaler for BootRecord.
func (r *BootRecord) MarshalBinary() ([]byte, error) {
	buf := make([]byte, RecordSize)
	r.put(buf)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for BootRecord.
func (r *BootRecord) UnmarshalBinary(data []byte) error {
	if len(data) < RecordSize {
		return ErrInvalidSize
	}

	r.Version = binary.LittleEndian.Uint16(data[0:])
	r.BootCount = binary.LittleEndian.Uint32(data[2:])
	r.ActiveConfig = data[6]
	r.SwitchBits = data[7]
	r.LastFault = Fault(data[8])
	r.FaultCount = data[9]
	r.Reserved = binary.LittleEndian.Uint16(data[10:])
	return nil
}

// Marshal writes the record to w in binary format.
// Returns the number of bytes written.
func (r *BootRecord) Marshal(w io.Writer) (int, error) {
	var buf [RecordSize]byte
	r.put(buf[:])
	return w.Write(buf[:])
}

// Unmarshal reads the record from r in binary format.
func (r *BootRecord) Unmarshal(rd io.Reader) error {
	var buf [RecordSize]byte
	if _, err := io.ReadFull(rd, buf[:]); err != nil {
		return err
	}
	return r.UnmarshalBinary(buf[:])
}

func (r *BootRecord) put(buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:], r.Version)
	binary.LittleEndian.PutUint32(buf[2:], r.BootCount)
	buf[6] = r.ActiveConfig
	buf[7] = r.SwitchBits
	buf[8] = uint8(r.LastFault)
	buf[9] = r.FaultCount
	binary.LittleEndian.PutUint16(buf[10:], r.Reserved)
}

// NoteBoot records a successful boot with the given configuration.
func (r *BootRecord) NoteBoot(index, switchBits uint8) {
	r.BootCount++
	r.ActiveConfig = index
	r.SwitchBits = switchBits
}

// NoteFault records a failed boot.
func (r *BootRecord) NoteFault(f Fault) {
	r.BootCount++
	r.LastFault = f
	if r.FaultCount < 255 {
		r.FaultCount++
	}
}
