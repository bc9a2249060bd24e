// Package sitekey checks the shared key the public website sends with each request.
package sitekey

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("site key hashing failed")
	ErrInvalidKey    = errors.New("invalid site key")
	ErrKeyMismatch   = errors.New("site key mismatch")
)

const DefaultCost = bcrypt.DefaultCost

func Hash(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(key), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashed), nil
}

type Verifier struct {
	hash []byte
}

func NewVerifier(hash string) *Verifier {
	return &Verifier{hash: []byte(hash)}
}

func (v *Verifier) Verify(key string) error {
	if len(v.hash) == 0 || key == "" {
		return ErrInvalidKey
	}

	err := bcrypt.CompareHashAndPassword(v.hash, []byte(key))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrKeyMismatch
		}
		return err
	}
	return nil
}
