package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"babayaga/internal/domain"
	"babayaga/pkg/logger"
	"babayaga/pkg/utils"

	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `BYRP` // 4 bytes
	Version1    uint32 = 1
)

// ReplayFileHeader is the exact in-memory form of the file header.
// binary.Write can write it in one go: only arrays and fixed-size numbers.
type ReplayFileHeader struct {
	Magic       [4]byte // 4
	Version     uint32  // 4
	Seed        int64   // 8
	Timestamp   int64   // 8
	SnapshotLen uint32  // 4
	ActionCount uint32  // 4
}

// ActionHeader precedes every recorded command.
type ActionHeader struct {
	Tick       uint64 // 8
	ActionType uint8  // 1
	Token      uint64 // 8
	PayloadLen uint32 // 4
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) *ReplayService {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &ReplayService{SaveDir: dir}
}

// Save writes the session to SaveDir and returns the file path.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%d_%s.byrp", session.Seed, utils.NewID())
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteReplay(f, session); err != nil {
		return "", err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"path":      path,
		"actions":   len(session.Actions),
	}).Info("replay saved")
	return path, nil
}

// WriteReplay encodes a session, little endian.
func WriteReplay(w io.Writer, s *domain.ReplaySession) error {
	if uint64(len(s.Snapshot)) > math.MaxUint32 || uint64(len(s.Actions)) > math.MaxUint32 {
		return fmt.Errorf("replay too large")
	}

	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		SnapshotLen: uint32(len(s.Snapshot)),
		ActionCount: uint32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if len(s.Snapshot) > 0 {
		if _, err := w.Write(s.Snapshot); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}

	for _, act := range s.Actions {
		payloadLen := len(act.Payload)
		if uint64(payloadLen) > math.MaxUint32 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Tick:       act.Tick,
			ActionType: uint8(act.Action),
			Token:      uint64(act.Token),
			PayloadLen: uint32(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
