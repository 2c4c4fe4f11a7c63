package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"babayaga/pkg/catalog"
	"babayaga/pkg/logger"
	"babayaga/pkg/zone"

	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

// ZoneRef is enough to rebuild a zone: the generator is deterministic.
type ZoneRef struct {
	Descriptor zone.Descriptor `json:"descriptor" msgpack:"descriptor"`
	Seed       int64           `json:"seed" msgpack:"seed"`

	// Claimed lists chest ordinals (ChestSpawn marker order) already opened.
	Claimed []int `json:"claimed,omitempty" msgpack:"claimed"`
}

// Snapshot is the persisted state: actor attributes, inventories and the
// zone seed. Transient state (statuses, projectiles, cooldowns) is not kept.
type Snapshot struct {
	ID     string              `json:"id" msgpack:"id"`
	Tick   uint64              `json:"tick" msgpack:"tick"`
	Seed   int64               `json:"seed" msgpack:"seed"`
	Actors []catalog.ActorSpec `json:"actors" msgpack:"actors"`
	Zone   *ZoneRef            `json:"zone,omitempty" msgpack:"zone"`
}

func (s *Snapshot) Marshal() ([]byte, error) {
	return msgpack.Marshal(s)
}

func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// SnapshotStore keeps snapshots as <id>.msgpack files under Dir.
type SnapshotStore struct {
	Dir string
}

func NewSnapshotStore(dir string) *SnapshotStore {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &SnapshotStore{Dir: dir}
}

func (s *SnapshotStore) path(id string) string {
	return filepath.Join(s.Dir, id+".msgpack")
}

// Save writes through a temp file so a crash never leaves half a snapshot.
func (s *SnapshotStore) Save(snap *Snapshot) (string, error) {
	if snap.ID == "" {
		return "", fmt.Errorf("snapshot has no id")
	}
	data, err := snap.Marshal()
	if err != nil {
		return "", err
	}

	path := s.path(snap.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"snapshot":  snap.ID,
		"actors":    len(snap.Actors),
	}).Info("snapshot saved")
	return path, nil
}

func (s *SnapshotStore) Load(id string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, err
	}
	return UnmarshalSnapshot(data)
}
