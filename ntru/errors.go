package ntru

import "github.com/pkg/errors"

var (
	// ErrMessageTooLong is returned when a plaintext exceeds MaxMsgLen.
	ErrMessageTooLong = errors.New("ntru: message too long for parameter set")
	// ErrDecryption is the single outcome of every failed decryption check.
	ErrDecryption = errors.New("ntru: decryption error")
	// ErrInvalidCiphertext is returned for ciphertexts of the wrong length.
	ErrInvalidCiphertext = errors.New("ntru: invalid ciphertext length")
	ErrInvalidKey        = errors.New("ntru: invalid key")
	ErrInvalidParams     = errors.New("ntru: invalid parameters")
	ErrUnknownParams     = errors.New("ntru: unknown parameter set")
	// ErrKeyGenExhausted means no invertible candidate was found within
	// MaxKeyGenAttempts draws, which points at a broken parameter set.
	ErrKeyGenExhausted = errors.New("ntru: key generation exhausted its attempts")
	// ErrEncryptExhausted means no message representative passed the dm0
	// check within MaxEncryptAttempts draws.
	ErrEncryptExhausted = errors.New("ntru: encryption exhausted its attempts")
)
