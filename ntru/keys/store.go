// Package keys persists NTRU key blobs under a name, on disk or in Redis.
package keys

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"ntruencrypt/ntru"
)

var (
	ErrNotFound    = errors.New("keys: not found")
	ErrInvalidName = errors.New("keys: invalid key name")
)

// Kind says which half of a key pair an envelope holds.
type Kind string

const (
	KindPublic  Kind = "public"
	KindPrivate Kind = "private"
)

// Store saves and loads key pairs by name.
type Store interface {
	SavePublic(ctx context.Context, name string, k *ntru.PublicKey) error
	SavePrivate(ctx context.Context, name string, k *ntru.PrivateKey) error
	LoadPublic(ctx context.Context, name string) (*ntru.PublicKey, error)
	LoadPrivate(ctx context.Context, name string) (*ntru.PrivateKey, error)
	// Delete removes both halves; ErrNotFound if neither existed.
	Delete(ctx context.Context, name string) error
}

// envelope is the stored form of a key blob. Blob is base64 in JSON.
type envelope struct {
	Params string `json:"params"`
	Kind   Kind   `json:"kind"`
	Blob   []byte `json:"blob"`
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\:`) || strings.HasPrefix(name, ".") {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return nil
}

func sealPublic(k *ntru.PublicKey) ([]byte, error) {
	blob, err := k.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(envelope{Params: k.Params.Name, Kind: KindPublic, Blob: blob}, "", "  ")
}

func sealPrivate(k *ntru.PrivateKey) ([]byte, error) {
	blob, err := k.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(envelope{Params: k.Params.Name, Kind: KindPrivate, Blob: blob}, "", "  ")
}

func open(data []byte, kind Kind) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, errors.Wrap(err, "keys: decode envelope")
	}
	if env.Kind != kind {
		return env, errors.Wrapf(ntru.ErrInvalidKey, "envelope holds a %s key, want %s", env.Kind, kind)
	}
	return env, nil
}

func openPublic(data []byte) (*ntru.PublicKey, error) {
	env, err := open(data, KindPublic)
	if err != nil {
		return nil, err
	}
	k, err := ntru.ParsePublicKey(env.Blob)
	if err != nil {
		return nil, err
	}
	if k.Params.Name != env.Params {
		return nil, errors.Wrapf(ntru.ErrInvalidKey, "envelope says %s, blob says %s", env.Params, k.Params.Name)
	}
	return k, nil
}

func openPrivate(data []byte) (*ntru.PrivateKey, error) {
	env, err := open(data, KindPrivate)
	if err != nil {
		return nil, err
	}
	k, err := ntru.ParsePrivateKey(env.Blob)
	if err != nil {
		return nil, err
	}
	if k.Params.Name != env.Params {
		return nil, errors.Wrapf(ntru.ErrInvalidKey, "envelope says %s, blob says %s", env.Params, k.Params.Name)
	}
	return k, nil
}
