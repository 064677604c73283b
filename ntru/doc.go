// Package ntru implements NTRUEncrypt: key generation, encryption with
// SVES-style padding, decryption with re-encryption checking, and the byte
// encodings of keys and ciphertexts.
//
// Parameter sets come from a fixed catalog (see Lookup). All functions are
// safe for concurrent use as long as each call is given its own randomness
// source.
package ntru
