package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"babayaga/internal/core/types"
	"babayaga/internal/domain"
)

var ErrBadReplay = errors.New("malformed replay")

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadReplay(f)
}

// maxReplayChunk bounds a single allocation driven by a length field.
const maxReplayChunk = 64 << 20

func ReadReplay(r io.Reader) (*domain.ReplaySession, error) {
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic: %w", ErrBadReplay)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.SnapshotLen > maxReplayChunk {
		return nil, fmt.Errorf("snapshot length %d: %w", header.SnapshotLen, ErrBadReplay)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Actions:   make([]domain.ReplayAction, 0, min(header.ActionCount, 1<<16)),
	}

	if header.SnapshotLen > 0 {
		session.Snapshot = make([]byte, header.SnapshotLen)
		if _, err := io.ReadFull(r, session.Snapshot); err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
	}

	for i := uint32(0); i < header.ActionCount; i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		if ah.PayloadLen > maxReplayChunk {
			return nil, fmt.Errorf("action %d payload length %d: %w", i, ah.PayloadLen, ErrBadReplay)
		}

		act := domain.ReplayAction{
			Tick:    ah.Tick,
			Action:  domain.ActionType(ah.ActionType),
			Token:   types.EntityID(ah.Token),
			Payload: json.RawMessage{},
		}
		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d: %w", i, err)
			}
		}
		session.Actions = append(session.Actions, act)
	}

	return session, nil
}
