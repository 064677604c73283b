package keys

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"ntruencrypt/ntru"
)

// FileStore keeps <name>.pub.json and <name>.key.json under Dir. Private
// keys are written with mode 0600.
type FileStore struct {
	Dir string
}

func (s *FileStore) path(name string, kind Kind) string {
	if kind == KindPublic {
		return filepath.Join(s.Dir, name+".pub.json")
	}
	return filepath.Join(s.Dir, name+".key.json")
}

func (s *FileStore) write(ctx context.Context, name string, kind Kind, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrap(err, "keys: create key directory")
	}
	// write then rename so readers never see a partial file
	dst := s.path(name, kind)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return errors.Wrapf(err, "keys: write %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, dst), "keys: install %s", dst)
}

func (s *FileStore) read(ctx context.Context, name string, kind Kind) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name, kind))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "%s key %q", kind, name)
	}
	return data, errors.Wrap(err, "keys: read key file")
}

func (s *FileStore) SavePublic(ctx context.Context, name string, k *ntru.PublicKey) error {
	data, err := sealPublic(k)
	if err != nil {
		return err
	}
	return s.write(ctx, name, KindPublic, data, 0o644)
}

func (s *FileStore) SavePrivate(ctx context.Context, name string, k *ntru.PrivateKey) error {
	data, err := sealPrivate(k)
	if err != nil {
		return err
	}
	return s.write(ctx, name, KindPrivate, data, 0o600)
}

func (s *FileStore) LoadPublic(ctx context.Context, name string) (*ntru.PublicKey, error) {
	data, err := s.read(ctx, name, KindPublic)
	if err != nil {
		return nil, err
	}
	return openPublic(data)
}

func (s *FileStore) LoadPrivate(ctx context.Context, name string) (*ntru.PrivateKey, error) {
	data, err := s.read(ctx, name, KindPrivate)
	if err != nil {
		return nil, err
	}
	return openPrivate(data)
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}
	removed := 0
	for _, kind := range []Kind{KindPublic, KindPrivate} {
		err := os.Remove(s.path(name, kind))
		switch {
		case err == nil:
			removed++
		case !os.IsNotExist(err):
			return errors.Wrap(err, "keys: remove key file")
		}
	}
	if removed == 0 {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}
	return nil
}
