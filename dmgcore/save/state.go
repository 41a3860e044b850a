// Package save implements save-state snapshot and restore for a running
// emulation session: the CPU, PPU, APU and MMU states gathered into one
// gob-encoded Snapshot that can be written to and read back from disk.
package save

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"

	"github.com/embergb/dmgcore/dmgcore/audio"
	"github.com/embergb/dmgcore/dmgcore/cpu"
	"github.com/embergb/dmgcore/dmgcore/memory"
	"github.com/embergb/dmgcore/dmgcore/video"
)

// FormatVersion is bumped whenever a field is added to or removed from
// Snapshot or one of the component states it embeds, so LoadFile can
// refuse to load a file written by an incompatible build instead of
// silently corrupting state.
const FormatVersion = 1

// Snapshot is the full serializable state of one emulation session,
// excluding the cartridge ROM image itself (the caller must already have
// the matching ROM loaded before restoring).
type Snapshot struct {
	Version uint32
	CPU     cpu.State
	MMU     memory.State
	GPU     video.State
	APU     audio.State
}

// Source is implemented by the emulator aggregate (dmgcore.DMG) to expose
// the component states a Snapshot needs, without the save package
// importing the root dmgcore package (which would be a cyclic import).
type Source interface {
	CPUState() cpu.State
	MMUState() memory.State
	GPUState() video.State
	APUState() audio.State
}

// Target is implemented by the emulator aggregate to accept a restored
// Snapshot's component states.
type Target interface {
	RestoreCPU(cpu.State)
	RestoreMMU(memory.State)
	RestoreGPU(video.State)
	RestoreAPU(audio.State)
}

// Capture builds a Snapshot from a live emulation session.
func Capture(src Source) Snapshot {
	return Snapshot{
		Version: FormatVersion,
		CPU:     src.CPUState(),
		MMU:     src.MMUState(),
		GPU:     src.GPUState(),
		APU:     src.APUState(),
	}
}

// Apply restores a Snapshot's component states onto a live emulation
// session. The session's cartridge/MBC must already be loaded: Apply only
// overwrites runtime state, not the ROM image.
func Apply(dst Target, s Snapshot) error {
	if s.Version != FormatVersion {
		return fmt.Errorf("save: snapshot format version %d unsupported (expected %d)", s.Version, FormatVersion)
	}
	dst.RestoreCPU(s.CPU)
	dst.RestoreMMU(s.MMU)
	dst.RestoreGPU(s.GPU)
	dst.RestoreAPU(s.APU)
	return nil
}

// Encode gob-encodes a Snapshot to a byte slice.
func Encode(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("save: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode gob-decodes a Snapshot from a byte slice.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("save: decode snapshot: %w", err)
	}
	return s, nil
}

// WriteFile captures src's state and writes it to path as a gob-encoded
// snapshot file.
func WriteFile(path string, src Source) error {
	data, err := Encode(Capture(src))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save: write %s: %w", path, err)
	}
	slog.Info("Wrote save state", "path", path, "bytes", len(data))
	return nil
}

// ReadFile reads a gob-encoded snapshot from path and applies it to dst.
func ReadFile(path string, dst Target) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("save: read %s: %w", path, err)
	}
	s, err := Decode(data)
	if err != nil {
		return err
	}
	if err := Apply(dst, s); err != nil {
		return err
	}
	slog.Info("Loaded save state", "path", path, "bytes", len(data))
	return nil
}
