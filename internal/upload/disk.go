package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore writes uploads into Dir and hands out URLs under URLPrefix,
// which is where the static file server exposes Dir.
type DiskStore struct {
	Dir       string
	URLPrefix string

	now func() time.Time
}

// NewDiskStore creates dir when it does not exist.
func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{
		Dir:       dir,
		URLPrefix: strings.TrimRight(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

// Save stores r under a new name "resume-<unix ms>-<random><ext>" and
// returns its URL. A partial file is removed when the copy fails.
func (d *DiskStore) Save(ctx context.Context, r io.Reader, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(originalName))

	const attempts = 5
	for i := 0; i < attempts; i++ {
		name := fmt.Sprintf("resume-%d-%09d%s", d.now().UnixMilli(), rand.IntN(1e9), ext)
		full := filepath.Join(d.Dir, name)

		f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create upload file: %w", err)
		}

		_, err = io.Copy(f, r)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(full)
			return "", fmt.Errorf("write upload file: %w", err)
		}
		return d.URLPrefix + "/" + name, nil
	}
	return "", fmt.Errorf("no free upload name after %d attempts", attempts)
}

// Remove deletes the file behind a URL returned by Save.
func (d *DiskStore) Remove(url string) error {
	if !strings.HasPrefix(url, d.URLPrefix+"/") {
		return fmt.Errorf("upload url %q outside %q", url, d.URLPrefix)
	}
	name := path.Base(url)
	if err := os.Remove(filepath.Join(d.Dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
