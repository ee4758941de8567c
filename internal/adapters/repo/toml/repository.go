package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/deck/internal/ports"
)

const (
	configName       = "config"
	configType       = "toml"
	databasePathKey  = "database.path"
	databaseFileMode = 0o600
	databaseDirMode  = 0o700
	deckConfigDir    = ".deck"
	databaseFile     = "db.toml"
	tempFilePattern  = ".db-*.toml.tmp"

	// localOwner owns rows written without a session.
	localOwner = "local"
)

// Repository is a single-file local database with the same tables as the
// hosted one. Rows carry an owner and are filtered the way row level
// security filters them upstream.
type Repository struct {
	databasePath string
	sessions     ports.SessionProvider
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

// NewRepository resolves database.path from cfg. sessions may be nil, in
// which case every row belongs to the local user.
func NewRepository(cfg *viper.Viper, sessions ports.SessionProvider) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, deckConfigDir, databaseFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, deckConfigDir))
	cfg.SetDefault(databasePathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	databasePath := cfg.GetString(databasePathKey)
	if databasePath == "" {
		return nil, errors.New("database path is empty")
	}
	databasePath, err = normalizeDatabasePath(databasePath)
	if err != nil {
		return nil, err
	}

	return &Repository{databasePath: databasePath, sessions: sessions, mu: lockForPath(databasePath)}, nil
}

func (r *Repository) Path() string {
	return r.databasePath
}

func (r *Repository) Projects() *ProjectRepository {
	return &ProjectRepository{repo: r}
}

func (r *Repository) Threads() *ThreadRepository {
	return &ThreadRepository{repo: r}
}

func (r *Repository) Messages() *MessageRepository {
	return &MessageRepository{repo: r}
}

func (r *Repository) owner(ctx context.Context) (string, error) {
	if r.sessions == nil {
		return localOwner, nil
	}

	session, err := r.sessions.Session(ctx)
	if err != nil {
		return "", err
	}

	return session.UserID, nil
}

// read loads the file under the read lock and passes it to fn.
func (r *Repository) read(ctx context.Context, fn func(file *fileSchema, owner string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	owner, err := r.owner(ctx)
	if err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	return fn(&file, owner)
}

// update loads the file under the write lock, lets fn change it and writes
// it back when fn succeeds.
func (r *Repository) update(ctx context.Context, fn func(file *fileSchema, owner string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	owner, err := r.owner(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	if err := fn(&file, owner); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.databasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read database file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode database file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeDatabasePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve database path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.databasePath), databaseDirMode); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode database file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.databasePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp database file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp database file: %w", err)
	}

	if err := tempFile.Chmod(databaseFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp database file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp database file: %w", err)
	}

	if err := os.Rename(tempName, r.databasePath); err != nil {
		return fmt.Errorf("replace database file: %w", err)
	}

	cleanup = false

	return nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
