// Package trash moves files into a freedesktop.org style trash
// directory so disposals stay recoverable. Each trashed file gets a
// companion .trashinfo record with its original path and deletion time,
// which is what desktop trash tools use to restore it.
package trash

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dbsmedya/godedupe/internal/logger"
)

const (
	filesSubdir = "files"
	infoSubdir  = "info"

	trashInfoTemplate = "[Trash Info]\nPath=%s\nDeletionDate=%s\n"
	trashInfoTimeFmt  = "2006-01-02T15:04:05"
)

// Bin is a recoverable trash destination.
type Bin struct {
	dir    string
	logger *logger.Logger

	now func() time.Time
}

// NewBin creates a trash bin rooted at dir. Empty dir selects the user
// trash location per the XDG base directory rules. The files/ and info/
// subdirectories are created on first use.
func NewBin(dir string, log *logger.Logger) (*Bin, error) {
	if log == nil {
		log = logger.NewDefault()
	}
	if dir == "" {
		var err error
		dir, err = userTrashDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate user trash directory: %w", err)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid trash directory: %w", err)
	}
	return &Bin{dir: abs, logger: log, now: time.Now}, nil
}

// Dir returns the trash root.
func (b *Bin) Dir() string {
	return b.dir
}

// Trash moves path into the bin and writes its .trashinfo record. The
// original file is gone only after both steps succeed; a failed move
// leaves the source untouched.
func (b *Bin) Trash(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	if _, err := os.Lstat(abs); err != nil {
		return fmt.Errorf("cannot trash %s: %w", abs, err)
	}

	filesDir := filepath.Join(b.dir, filesSubdir)
	infoDir := filepath.Join(b.dir, infoSubdir)
	if err := os.MkdirAll(filesDir, 0700); err != nil {
		return fmt.Errorf("failed to create trash files directory: %w", err)
	}
	if err := os.MkdirAll(infoDir, 0700); err != nil {
		return fmt.Errorf("failed to create trash info directory: %w", err)
	}

	name, infoFile, err := b.claimName(infoDir, filepath.Base(abs))
	if err != nil {
		return err
	}

	info := fmt.Sprintf(trashInfoTemplate, escapePath(abs), b.now().Format(trashInfoTimeFmt))
	if _, err := infoFile.WriteString(info); err != nil {
		infoFile.Close()
		os.Remove(infoFile.Name())
		return fmt.Errorf("failed to write trash info: %w", err)
	}
	if err := infoFile.Close(); err != nil {
		os.Remove(infoFile.Name())
		return fmt.Errorf("failed to write trash info: %w", err)
	}

	dest := filepath.Join(filesDir, name)
	if err := movePath(abs, dest); err != nil {
		os.Remove(infoFile.Name())
		return fmt.Errorf("failed to move %s to trash: %w", abs, err)
	}

	b.logger.Debugw("Moved file to trash", "path", abs, "trash_name", name)
	return nil
}

// claimName reserves a unique name inside the bin by exclusively
// creating its .trashinfo file. Collisions get a numeric suffix before
// the extension, the way desktop trash implementations do.
func (b *Bin) claimName(infoDir, base string) (string, *os.File, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := base
	for i := 2; ; i++ {
		f, err := os.OpenFile(filepath.Join(infoDir, name+".trashinfo"), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			return name, f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", nil, fmt.Errorf("failed to reserve trash entry: %w", err)
		}
		name = fmt.Sprintf("%s.%d%s", stem, i, ext)
	}
}

// movePath renames src to dest, falling back to copy plus remove when
// the rename crosses a filesystem boundary.
func movePath(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return os.Remove(src)
}

// escapePath percent-encodes a path for a Path= line, keeping slashes
// readable the way desktop trash tools expect.
func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// userTrashDir resolves the per-user trash location, preferring
// XDG_DATA_HOME and falling back to ~/.local/share.
func userTrashDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}
