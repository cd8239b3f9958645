package agenda

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/alarm-agenda/internal/config"
	domain "github.com/oshokin/alarm-agenda/internal/domain/alarm"
)

// Repository defines persistence operations for the alarm agenda.
type Repository interface {
	// Init prepares an empty store if none exists yet.
	Init(ctx context.Context) error
	Load(ctx context.Context) (domain.Agenda, error)
	Save(ctx context.Context, agenda domain.Agenda) error
	Close() error
}

// ErrNotFound is returned when the agenda store does not exist yet.
var ErrNotFound = errors.New("agenda not found")

// jsonIndent is the indentation of the written document.
const jsonIndent = "  "

// FileRepository persists the agenda to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON agenda file.
	path string
	// mu protects concurrent access to the agenda file.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Init writes an empty agenda when the file is absent and leaves an existing one untouched.
func (r *FileRepository) Init(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := os.Stat(r.path)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat agenda file: %w", err)
	}

	return r.write(domain.NewAgenda())
}

// Load reads the agenda from disk.
func (r *FileRepository) Load(_ context.Context) (domain.Agenda, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read agenda file: %w", err)
	}

	agenda := domain.NewAgenda()
	if len(bytes.TrimSpace(contents)) == 0 {
		return agenda, nil
	}

	if err = json.Unmarshal(contents, &agenda); err != nil {
		return nil, fmt.Errorf("decode agenda file: %w", err)
	}

	// A literal null decodes into a nil map.
	if agenda == nil {
		agenda = domain.NewAgenda()
	}

	agenda.Prune()

	return agenda, nil
}

// Save writes the whole agenda to disk.
func (r *FileRepository) Save(_ context.Context, agenda domain.Agenda) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if agenda == nil {
		agenda = domain.NewAgenda()
	}

	return r.write(agenda)
}

// Close is a no-op; the file is not held open between calls.
func (r *FileRepository) Close() error {
	return nil
}

// write encodes the agenda and replaces the file contents. Callers hold mu.
func (r *FileRepository) write(agenda domain.Agenda) error {
	data, err := domain.MarshalJSON(agenda, jsonIndent)
	if err != nil {
		return fmt.Errorf("encode agenda: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write agenda file: %w", err)
	}

	return nil
}
