// Package storage persists the boot record using LittleFS.
// It handles atomic writes, version checking, and cleanup of temporary files.
package storage

import (
	"errors"
	"os"
	"path"
	"strings"

	"github.com/tuffrabit/tinygo-nezoba/pkg/config"

	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"
)

const (
	recordDir  = "/nezoba"
	recordFile = "/nezoba/boot.bin"
	tempSuffix = ".tmp"

	// Estimated flash footprint of the record: data + LittleFS overhead
	recordFootprint = config.RecordSize + 32
)

var (
	ErrRecordNotFound = errors.New("boot record not found")
	ErrInvalidRecord  = errors.New("invalid boot record")
)

// Manager handles boot record persistence using LittleFS.
type Manager struct {
	fs       *littlefs.LFS
	blockDev tinyfs.BlockDevice
	mounted  bool
}

// Stats provides information about storage usage.
type Stats struct {
	TotalSpace int64
	UsedSpace  int64
	FreeSpace  int64
	HasRecord  bool
}

// New initializes the storage system with the given block device.
// It mounts the filesystem and performs boot-time cleanup.
// If format is true and mount fails, it will format the filesystem.
func New(blockDev tinyfs.BlockDevice, format bool) (*Manager, error) {
	lfs := littlefs.New(blockDev)

	// Configure LittleFS for RP2040 flash
	// These are conservative settings for reliability
	lfs.Configure(&littlefs.Config{
		CacheSize:     512,
		LookaheadSize: 128,
	})

	// Try to mount existing filesystem
	err := lfs.Mount()
	if err != nil {
		if !format {
			return nil, err
		}
		// Format and try again
		if err := lfs.Format(); err != nil {
			return nil, err
		}
		if err := lfs.Mount(); err != nil {
			return nil, err
		}
	}

	m := &Manager{
		fs:       lfs,
		blockDev: blockDev,
		mounted:  true,
	}

	// Leftover temp files are harmless; keep booting if cleanup fails
	_ = m.bootCleanup()

	// A record written by another format version is dropped
	if m.versionMismatch() {
		if err := m.wipeAll(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Close unmounts the filesystem.
func (m *Manager) Close() error {
	if m.mounted {
		m.mounted = false
		return m.fs.Unmount()
	}
	return nil
}

// bootCleanup removes temporary files left over from interrupted writes.
func (m *Manager) bootCleanup() error {
	entries, err := m.readDir(recordDir)
	if err != nil {
		// Record dir might not exist yet
		if os.IsNotExist(err) || isNoEntry(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, tempSuffix) {
			m.fs.Remove(path.Join(recordDir, name))
		}
	}

	return nil
}

// readDir reads the directory entries at the given path.
func (m *Manager) readDir(dirPath string) ([]os.FileInfo, error) {
	f, err := m.fs.Open(dirPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !f.IsDir() {
		return nil, errors.New("not a directory")
	}

	return f.Readdir(-1)
}

// versionMismatch reports whether a stored record has another format version.
// A missing or unreadable record is not a mismatch.
func (m *Manager) versionMismatch() bool {
	var rec config.BootRecord
	if err := m.LoadRecord(&rec); err != nil {
		return false
	}
	return rec.Version != config.CurrentVersion
}

// wipeAll removes the boot record.
func (m *Manager) wipeAll() error {
	err := m.fs.Remove(recordFile)
	if err != nil && !os.IsNotExist(err) && !isNoEntry(err) {
		return err
	}
	return nil
}

// ensureDirs creates the record directory if it doesn't exist.
func (m *Manager) ensureDirs() error {
	if err := m.fs.Mkdir(recordDir, 0755); err != nil && !isExist(err) {
		return err
	}
	return nil
}

// isExist checks if an error is "already exists".
// LittleFS errors don't always match os.IsExist, so we check the message too.
func isExist(err error) bool {
	if err == nil {
		return false
	}
	if os.IsExist(err) {
		return true
	}
	// Check for LittleFS specific error message
	return strings.Contains(err.Error(), "already exists")
}

// isNoEntry checks for the LittleFS "no directory entry" error.
func isNoEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "No directory entry")
}

// LoadRecord loads the boot record.
func (m *Manager) LoadRecord(rec *config.BootRecord) error {
	f, err := m.fs.Open(recordFile)
	if err != nil {
		if os.IsNotExist(err) || isNoEntry(err) {
			return ErrRecordNotFound
		}
		return err
	}
	defer f.Close()

	buf := make([]byte, config.RecordSize)
	n, err := f.Read(buf)
	if err != nil {
		return err
	}
	if n != config.RecordSize {
		return ErrInvalidRecord
	}

	return rec.UnmarshalBinary(buf)
}

// SaveRecord saves the boot record atomically.
func (m *Manager) SaveRecord(rec *config.BootRecord) error {
	if err := m.ensureDirs(); err != nil {
		return err
	}

	// Set version
	rec.Version = config.CurrentVersion

	data, err := rec.MarshalBinary()
	if err != nil {
		return err
	}

	return m.atomicWrite(recordFile, data)
}

// update loads the record (zero if missing), applies fn and saves it.
func (m *Manager) update(fn func(rec *config.BootRecord)) error {
	var rec config.BootRecord
	if err := m.LoadRecord(&rec); err != nil && err != ErrRecordNotFound {
		return err
	}
	fn(&rec)
	return m.SaveRecord(&rec)
}

// RecordBoot notes a successful boot with the selected configuration.
func (m *Manager) RecordBoot(index, switchBits uint8) error {
	return m.update(func(rec *config.BootRecord) {
		rec.NoteBoot(index, switchBits)
	})
}

// RecordFault notes a failed boot.
func (m *Manager) RecordFault(f config.Fault) error {
	return m.update(func(rec *config.BootRecord) {
		rec.NoteFault(f)
	})
}

// ClearFault resets the last fault, keeping counters.
func (m *Manager) ClearFault() error {
	return m.update(func(rec *config.BootRecord) {
		rec.LastFault = config.FaultNone
	})
}

// HasRecord checks if a boot record exists.
func (m *Manager) HasRecord() bool {
	f, err := m.fs.Open(recordFile)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// GetStats returns storage statistics.
func (m *Manager) GetStats() (*Stats, error) {
	// LittleFS doesn't have a direct "free space" call, so usage is estimated
	has := m.HasRecord()
	used := int64(100) // directory entries
	if has {
		used += recordFootprint
	}

	// Total space is from the block device
	total := m.blockDev.Size()

	return &Stats{
		TotalSpace: total,
		UsedSpace:  used,
		FreeSpace:  total - used,
		HasRecord:  has,
	}, nil
}

// atomicWrite writes data to a temporary file, syncs it, then renames.
// This ensures atomic updates - the original file is never in a partially written state.
func (m *Manager) atomicWrite(filepath string, data []byte) error {
	tempPath := filepath + tempSuffix

	// Remove temp file if it exists (from interrupted previous write)
	m.fs.Remove(tempPath)

	// Write to temp file
	f, err := m.fs.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		m.fs.Remove(tempPath)
		return err
	}

	// CRITICAL: Sync ensures data hits flash
	// Type assert to *littlefs.File to access Sync()
	if syncer, ok := f.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			f.Close()
			m.fs.Remove(tempPath)
			return err
		}
	}

	if err := f.Close(); err != nil {
		m.fs.Remove(tempPath)
		return err
	}

	// Remove existing file if present (LittleFS rename doesn't replace)
	m.fs.Remove(filepath)

	// Atomic rename
	if err := m.fs.Rename(tempPath, filepath); err != nil {
		m.fs.Remove(tempPath)
		return err
	}

	return nil
}

// ForceWipe erases the boot record (factory reset).
func (m *Manager) ForceWipe() error {
	return m.wipeAll()
}
