// Package protocol implements the binary serial protocol used to inspect the
// controller from a PC. Commands only read state, apart from clearing the last
// fault and wiping the boot record.
//
// Frame format:
//
//	[SYNC:1][CMD:1][LEN:2][PAYLOAD:LEN][CRC:2]
//	- SYNC: 0xAA (frame start marker)
//	- CMD: Command byte
//	- LEN: Payload length (uint16, little-endian)
//	- PAYLOAD: Variable length data
//	- CRC: CRC16-CCITT of [CMD][LEN][PAYLOAD]
//
// Response format is identical.
package protocol

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/tuffrabit/tinygo-nezoba/pkg/config"
	"github.com/tuffrabit/tinygo-nezoba/pkg/mapping"
	"github.com/tuffrabit/tinygo-nezoba/pkg/storage"
)

const (
	SyncByte = 0xAA

	// Command codes (PC → Device)
	CmdGetBootRecord   = 0x01
	CmdClearFault      = 0x02
	CmdGetActive       = 0x03
	CmdGetMapping      = 0x04
	CmdGetStorageStats = 0x07
	CmdPing            = 0x08
	CmdFactoryReset    = 0x09
	CmdGetVersion      = 0x10

	// Response status codes (Device → PC)
	StatusOK          = 0x00
	StatusError       = 0x01
	StatusInvalidCmd  = 0x02
	StatusInvalidData = 0x03
	StatusNotFound    = 0x04
	StatusCRCError    = 0x07

	// Firmware version reported by CmdGetVersion
	FirmwareMajor = 1
	FirmwareMinor = 0
)

var (
	ErrInvalidFrame = errors.New("invalid frame")
	ErrCRCMismatch  = errors.New("CRC mismatch")
)

// Handler processes protocol commands.
type Handler struct {
	storage *storage.Manager
	table   *[mapping.NumConfigs]mapping.Config
	active  *mapping.Active
}

// NewHandler creates a new protocol handler. active may be nil when the
// controller halted during boot.
func NewHandler(sm *storage.Manager, active *mapping.Active) *Handler {
	return &Handler{
		storage: sm,
		table:   &mapping.Table,
		active:  active,
	}
}

// Frame represents a protocol frame.
type Frame struct {
	Cmd     uint8
	Payload []byte
}

// Response represents a protocol response.
type Response struct {
	Status  uint8
	Payload []byte
}

// ReadFrame reads and validates a frame from the reader.
func ReadFrame(r io.Reader) (*Frame, error) {
	// Read sync byte
	sync := make([]byte, 1)
	if _, err := io.ReadFull(r, sync); err != nil {
		return nil, err
	}
	if sync[0] != SyncByte {
		return nil, ErrInvalidFrame
	}

	// Read header (cmd + len)
	header := make([]byte, 3)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	cmd := header[0]
	length := binary.LittleEndian.Uint16(header[1:])

	// Sanity check on length
	if length > 4096 {
		return nil, ErrInvalidFrame
	}

	// Read payload
	var payload []byte
	if length > 0 {
		payload = make([]byte, length)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
	}

	// Read CRC
	crcBytes := make([]byte, 2)
	if _, err := io.ReadFull(r, crcBytes); err != nil {
		return nil, err
	}
	receivedCRC := binary.LittleEndian.Uint16(crcBytes)

	// Verify CRC
	calculatedCRC := calcCRC(append(header, payload...))
	if receivedCRC != calculatedCRC {
		return nil, ErrCRCMismatch
	}

	return &Frame{
		Cmd:     cmd,
		Payload: payload,
	}, nil
}

// WriteResponse writes a response frame to the writer.
func WriteResponse(w io.Writer, resp *Response) error {
	// Calculate total size
	payloadLen := uint16(len(resp.Payload))
	frameLen := 1 + 1 + 2 + int(payloadLen) + 2 // sync + status + len + payload + crc

	buf := make([]byte, 0, frameLen)

	// Sync byte
	buf = append(buf, SyncByte)

	// Status
	buf = append(buf, resp.Status)

	// Length
	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, payloadLen)
	buf = append(buf, lenBytes...)

	// Payload
	buf = append(buf, resp.Payload...)

	// CRC (of status + len + payload)
	crc := calcCRC(buf[1:]) // Skip sync byte
	crcBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(crcBytes, crc)
	buf = append(buf, crcBytes...)

	_, err := w.Write(buf)
	return err
}

// WriteFrame writes a request frame (for testing/PC side).
func WriteFrame(w io.Writer, frame *Frame) error {
	payloadLen := uint16(len(frame.Payload))
	frameLen := 1 + 1 + 2 + int(payloadLen) + 2

	buf := make([]byte, 0, frameLen)

	// Sync byte
	buf = append(buf, SyncByte)

	// Command
	buf = append(buf, frame.Cmd)

	// Length
	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, payloadLen)
	buf = append(buf, lenBytes...)

	// Payload
	buf = append(buf, frame.Payload...)

	// CRC
	crc := calcCRC(buf[1:])
	crcBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(crcBytes, crc)
	buf = append(buf, crcBytes...)

	_, err := w.Write(buf)
	return err
}

// Handle processes a command frame and returns a response.
func (h *Handler) Handle(frame *Frame) *Response {
	switch frame.Cmd {
	case CmdPing:
		return h.handlePing(frame.Payload)
	case CmdGetBootRecord:
		return h.handleGetBootRecord()
	case CmdClearFault:
		return h.handleClearFault()
	case CmdGetActive:
		return h.handleGetActive()
	case CmdGetMapping:
		return h.handleGetMapping(frame.Payload)
	case CmdGetStorageStats:
		return h.handleGetStorageStats()
	case CmdFactoryReset:
		return h.handleFactoryReset()
	case CmdGetVersion:
		return h.handleGetVersion()
	default:
		return &Response{Status: StatusInvalidCmd}
	}
}

// handlePing responds with the same payload (echo).
func (h *Handler) handlePing(payload []byte) *Response {
	return &Response{
		Status:  StatusOK,
		Payload: payload,
	}
}

// handleGetBootRecord returns the stored boot record.
// Response: [BootRecord:12 bytes]
func (h *Handler) handleGetBootRecord() *Response {
	var rec config.BootRecord
	if err := h.storage.LoadRecord(&rec); err != nil {
		if err == storage.ErrRecordNotFound {
			return &Response{Status: StatusNotFound}
		}
		return &Response{Status: StatusError}
	}

	data, err := rec.MarshalBinary()
	if err != nil {
		return &Response{Status: StatusError}
	}

	return &Response{
		Status:  StatusOK,
		Payload: data,
	}
}

// handleClearFault resets the last fault of the boot record.
func (h *Handler) handleClearFault() *Response {
	if !h.storage.HasRecord() {
		return &Response{Status: StatusNotFound}
	}
	if err := h.storage.ClearFault(); err != nil {
		return &Response{Status: StatusError}
	}
	return &Response{Status: StatusOK}
}

// handleGetActive returns the mapping in effect.
// Response: [Index:1][Slots:45]
func (h *Handler) handleGetActive() *Response {
	if h.active == nil {
		return &Response{Status: StatusNotFound}
	}

	data, err := h.active.MarshalBinary()
	if err != nil {
		return &Response{Status: StatusError}
	}

	return &Response{
		Status:  StatusOK,
		Payload: data,
	}
}

// handleGetMapping returns one configuration of the compiled-in table.
// Payload: [Index:1 byte]
// Response: [Slots:45][Name:N]
func (h *Handler) handleGetMapping(payload []byte) *Response {
	if len(payload) != 1 {
		return &Response{Status: StatusInvalidData}
	}

	index := payload[0]
	if int(index) >= mapping.NumConfigs {
		return &Response{Status: StatusNotFound}
	}

	cfg := &h.table[index]
	data, err := cfg.MarshalBinary()
	if err != nil {
		return &Response{Status: StatusError}
	}

	return &Response{
		Status:  StatusOK,
		Payload: append(data, cfg.Name...),
	}
}

// handleGetStorageStats returns storage statistics.
// Response: [Total:4][Used:4][Free:4][HasRecord:1]
func (h *Handler) handleGetStorageStats() *Response {
	stats, err := h.storage.GetStats()
	if err != nil {
		return &Response{Status: StatusError}
	}

	payload := make([]byte, 13)
	binary.LittleEndian.PutUint32(payload[0:], uint32(stats.TotalSpace))
	binary.LittleEndian.PutUint32(payload[4:], uint32(stats.UsedSpace))
	binary.LittleEndian.PutUint32(payload[8:], uint32(stats.FreeSpace))
	if stats.HasRecord {
		payload[12] = 1
	}

	return &Response{
		Status:  StatusOK,
		Payload: payload,
	}
}

// handleFactoryReset wipes the boot record.
func (h *Handler) handleFactoryReset() *Response {
	if err := h.storage.ForceWipe(); err != nil {
		return &Response{Status: StatusError}
	}
	return &Response{Status: StatusOK}
}

// handleGetVersion returns firmware and record version info.
// Response: [FirmwareVersionMajor:1][FirmwareVersionMinor:1][RecordVersion:2]
func (h *Handler) handleGetVersion() *Response {
	payload := make([]byte, 4)
	payload[0] = FirmwareMajor
	payload[1] = FirmwareMinor
	binary.LittleEndian.PutUint16(payload[2:], config.CurrentVersion)

	return &Response{
		Status:  StatusOK,
		Payload: payload,
	}
}

// calcCRC calculates CRC16-CCITT.
// Polynomial: 0x1021, Initial: 0xFFFF
func calcCRC(data []byte) uint16 {
	var crc uint16 = 0xFFFF

	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
