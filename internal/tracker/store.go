package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// stateFileName is the fixed key the session blob lives under.
const stateFileName = "state.json"

// Store persists the session blob. Load reports found=false when no blob
// exists yet; Save overwrites the whole blob.
type Store interface {
	Load() (state *State, found bool, err error)
	Save(state *State) error
}

// FileStore keeps the blob as a single JSON file in a data directory. Saves
// go through a temp file and rename so readers never observe a partial write.
type FileStore struct {
	path string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dataDir, stateFileName)}, nil
}

func (fs *FileStore) Load() (*State, bool, error) {
	b, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read state: %w", err)
	}
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, false, fmt.Errorf("decode state: %w", err)
	}
	s.Normalize()
	return &s, true, nil
}

func (fs *FileStore) Save(state *State) error {
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := fs.path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
