package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/tuffrabit/tinygo-nezoba/pkg/config"
	"github.com/tuffrabit/tinygo-nezoba/pkg/mapping"
	"github.com/tuffrabit/tinygo-nezoba/pkg/storage"

	"tinygo.org/x/tinyfs"
)

func newTestHandler(t *testing.T) (*Handler, *storage.Manager) {
	blockDev := tinyfs.NewMemoryDevice(256, 4096, 64)
	mgr, err := storage.New(blockDev, true)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	active, err := mapping.Load(2)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return NewHandler(mgr, &active), mgr
}

func TestFrameEncodingDecoding(t *testing.T) {
	// Create a frame
	original := &Frame{
		Cmd:     CmdGetMapping,
		Payload: []byte{1, 2, 3, 4},
	}

	// Write to buffer
	var buf bytes.Buffer
	if err := WriteFrame(&buf, original); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	// Read back
	decoded, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}

	// Verify
	if decoded.Cmd != original.Cmd {
		t.Errorf("Cmd: expected 0x%x, got 0x%x", original.Cmd, decoded.Cmd)
	}
	if !bytes.Equal(decoded.Payload, original.Payload) {
		t.Errorf("Payload: expected %v, got %v", original.Payload, decoded.Payload)
	}
}

func TestResponseEncoding(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResponse(&buf, &Response{Status: StatusNotFound, Payload: []byte{9}}); err != nil {
		t.Fatalf("WriteResponse failed: %v", err)
	}

	// A response has the same layout as a request, so ReadFrame can parse it
	decoded, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if decoded.Cmd != StatusNotFound {
		t.Errorf("Expected status 0x%x, got 0x%x", StatusNotFound, decoded.Cmd)
	}
	if !bytes.Equal(decoded.Payload, []byte{9}) {
		t.Errorf("Expected payload [9], got %v", decoded.Payload)
	}
}

func TestPingCommand(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	frame := &Frame{
		Cmd:     CmdPing,
		Payload: []byte{0xAA, 0xBB, 0xCC},
	}

	resp := handler.Handle(frame)

	if resp.Status != StatusOK {
		t.Errorf("Expected status OK, got 0x%x", resp.Status)
	}
	if !bytes.Equal(resp.Payload, frame.Payload) {
		t.Errorf("Expected echo payload, got %v", resp.Payload)
	}
}

func TestGetBootRecord(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	resp := handler.Handle(&Frame{Cmd: CmdGetBootRecord})
	if resp.Status != StatusNotFound {
		t.Errorf("Expected StatusNotFound before the first boot, got 0x%x", resp.Status)
	}

	if err := mgr.RecordBoot(2, 0x02); err != nil {
		t.Fatalf("RecordBoot failed: %v", err)
	}

	resp = handler.Handle(&Frame{Cmd: CmdGetBootRecord})
	if resp.Status != StatusOK {
		t.Fatalf("GetBootRecord failed: status 0x%x", resp.Status)
	}

	var rec config.BootRecord
	if err := rec.UnmarshalBinary(resp.Payload); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if rec.ActiveConfig != 2 {
		t.Errorf("ActiveConfig: expected 2, got %d", rec.ActiveConfig)
	}
	if rec.BootCount != 1 {
		t.Errorf("BootCount: expected 1, got %d", rec.BootCount)
	}
}

func TestClearFault(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	resp := handler.Handle(&Frame{Cmd: CmdClearFault})
	if resp.Status != StatusNotFound {
		t.Errorf("Expected StatusNotFound without a record, got 0x%x", resp.Status)
	}

	mgr.RecordFault(config.FaultExpander)

	resp = handler.Handle(&Frame{Cmd: CmdClearFault})
	if resp.Status != StatusOK {
		t.Fatalf("ClearFault failed: status 0x%x", resp.Status)
	}

	var rec config.BootRecord
	mgr.LoadRecord(&rec)
	if rec.LastFault != config.FaultNone {
		t.Errorf("Expected fault cleared, got %s", rec.LastFault)
	}
}

func TestGetActive(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	resp := handler.Handle(&Frame{Cmd: CmdGetActive})
	if resp.Status != StatusOK {
		t.Fatalf("GetActive failed: status 0x%x", resp.Status)
	}
	if len(resp.Payload) != 1+mapping.ConfigSize {
		t.Fatalf("Expected %d bytes, got %d", 1+mapping.ConfigSize, len(resp.Payload))
	}
	if resp.Payload[0] != 2 {
		t.Errorf("Expected index 2, got %d", resp.Payload[0])
	}

	// Button A of config 2 is a turbo X
	got := mapping.DecodeSlot(resp.Payload[1+int(mapping.ButtonA)*mapping.SlotsPerButton])
	if got != mapping.Table[2].Slots[mapping.ButtonA][0] {
		t.Errorf("Expected %+v, got %+v", mapping.Table[2].Slots[mapping.ButtonA][0], got)
	}
}

func TestGetActiveHalted(t *testing.T) {
	_, mgr := newTestHandler(t)
	defer mgr.Close()

	handler := NewHandler(mgr, nil)
	resp := handler.Handle(&Frame{Cmd: CmdGetActive})
	if resp.Status != StatusNotFound {
		t.Errorf("Expected StatusNotFound, got 0x%x", resp.Status)
	}
}

func TestGetMapping(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	for i := 0; i < mapping.NumConfigs; i++ {
		resp := handler.Handle(&Frame{Cmd: CmdGetMapping, Payload: []byte{uint8(i)}})
		if resp.Status != StatusOK {
			t.Fatalf("GetMapping(%d) failed: status 0x%x", i, resp.Status)
		}

		var cfg mapping.Config
		if err := cfg.UnmarshalBinary(resp.Payload[:mapping.ConfigSize]); err != nil {
			t.Fatalf("Failed to unmarshal mapping %d: %v", i, err)
		}
		if cfg.Slots != mapping.Table[i].Slots {
			t.Errorf("Mapping %d: slots differ from the table", i)
		}
		if name := string(resp.Payload[mapping.ConfigSize:]); name != mapping.Table[i].Name {
			t.Errorf("Mapping %d: expected name %q, got %q", i, mapping.Table[i].Name, name)
		}
	}
}

func TestGetMappingInvalid(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	resp := handler.Handle(&Frame{Cmd: CmdGetMapping, Payload: []byte{mapping.NumConfigs}})
	if resp.Status != StatusNotFound {
		t.Errorf("Expected StatusNotFound, got 0x%x", resp.Status)
	}

	resp = handler.Handle(&Frame{Cmd: CmdGetMapping, Payload: []byte{1, 2}})
	if resp.Status != StatusInvalidData {
		t.Errorf("Expected StatusInvalidData, got 0x%x", resp.Status)
	}
}

func TestStorageStats(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	resp := handler.Handle(&Frame{Cmd: CmdGetStorageStats})
	if resp.Status != StatusOK {
		t.Fatalf("GetStorageStats failed: status 0x%x", resp.Status)
	}
	if len(resp.Payload) != 13 {
		t.Fatalf("Expected 13 bytes, got %d", len(resp.Payload))
	}

	total := binary.LittleEndian.Uint32(resp.Payload[0:])
	if total == 0 {
		t.Errorf("Expected non-zero total, got %d", total)
	}
	if resp.Payload[12] != 0 {
		t.Errorf("Expected no record, got %d", resp.Payload[12])
	}

	mgr.RecordBoot(0, 0)
	resp = handler.Handle(&Frame{Cmd: CmdGetStorageStats})
	if resp.Payload[12] != 1 {
		t.Errorf("Expected a record, got %d", resp.Payload[12])
	}
}

func TestFactoryReset(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	mgr.RecordBoot(4, 0x04)

	resp := handler.Handle(&Frame{Cmd: CmdFactoryReset})
	if resp.Status != StatusOK {
		t.Fatalf("FactoryReset failed: status 0x%x", resp.Status)
	}
	if mgr.HasRecord() {
		t.Error("Expected boot record to be wiped")
	}

	// The active mapping is compiled in and survives a reset
	resp = handler.Handle(&Frame{Cmd: CmdGetActive})
	if resp.Status != StatusOK {
		t.Errorf("Expected active mapping after reset, got 0x%x", resp.Status)
	}
}

func TestGetVersion(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	resp := handler.Handle(&Frame{Cmd: CmdGetVersion})
	if resp.Status != StatusOK {
		t.Fatalf("GetVersion failed: status 0x%x", resp.Status)
	}
	if len(resp.Payload) != 4 {
		t.Fatalf("Expected 4 bytes, got %d", len(resp.Payload))
	}
	if resp.Payload[0] != FirmwareMajor || resp.Payload[1] != FirmwareMinor {
		t.Errorf("Expected firmware %d.%d, got %d.%d", FirmwareMajor, FirmwareMinor, resp.Payload[0], resp.Payload[1])
	}
	if v := binary.LittleEndian.Uint16(resp.Payload[2:]); v != config.CurrentVersion {
		t.Errorf("Expected record version %d, got %d", config.CurrentVersion, v)
	}
}

func TestInvalidCommand(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	frame := &Frame{
		Cmd:     0xFF, // Invalid command
		Payload: nil,
	}

	resp := handler.Handle(frame)
	if resp.Status != StatusInvalidCmd {
		t.Errorf("Expected StatusInvalidCmd, got 0x%x", resp.Status)
	}
}

func TestNoWriteCommands(t *testing.T) {
	handler, mgr := newTestHandler(t)
	defer mgr.Close()

	// Mapping edits are not part of the protocol
	for _, cmd := range []uint8{0x05, 0x06} {
		resp := handler.Handle(&Frame{Cmd: cmd, Payload: make([]byte, 46)})
		if resp.Status != StatusInvalidCmd {
			t.Errorf("Command 0x%x: expected StatusInvalidCmd, got 0x%x", cmd, resp.Status)
		}
	}
}

func TestCRCMismatch(t *testing.T) {
	// Create a frame with invalid CRC
	buf := &bytes.Buffer{}
	buf.WriteByte(SyncByte)
	buf.WriteByte(CmdPing)
	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, 0)
	buf.Write(lenBytes)

	good := calcCRC([]byte{CmdPing, 0, 0})
	crc := make([]byte, 2)
	binary.LittleEndian.PutUint16(crc, good^0xFFFF)
	buf.Write(crc)

	_, err := ReadFrame(buf)
	if err != ErrCRCMismatch {
		t.Errorf("Expected ErrCRCMismatch, got %v", err)
	}
}

func TestInvalidFrame(t *testing.T) {
	// Write wrong sync byte
	buf := &bytes.Buffer{}
	buf.WriteByte(0x55) // Wrong sync

	_, err := ReadFrame(buf)
	if err != ErrInvalidFrame {
		t.Errorf("Expected ErrInvalidFrame, got %v", err)
	}
}

func TestCRCKnownValue(t *testing.T) {
	// CRC16-CCITT (0xFFFF init) of "123456789"
	if crc := calcCRC([]byte("123456789")); crc != 0x29B1 {
		t.Errorf("Expected 0x29B1, got 0x%04X", crc)
	}
}
