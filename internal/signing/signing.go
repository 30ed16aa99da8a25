// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package signing provides optional manifest integrity signing: a
passphrase-derived HMAC key signs a compact JWT naming the manifest's
digest, written alongside manifest.json as manifest.jwt. A CDN or
deploy pipeline can verify the JWT against the same passphrase before
trusting the manifest it just pulled. The build writes the JWT; this
package also provides Verify, which checks a token against a key and
returns its claims.

Signing is entirely optional: a build run with no passphrase configured
never touches this package.
*/
package signing

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLen       = 32
)

// DeriveKey derives a 32-byte HMAC key from passphrase. salt is fixed per
// output directory (not randomized and not stored) since this is a
// deployment-local integrity check, not a password store: the same
// passphrase and out-dir must always derive the same key so a later
// verification pass can reproduce it.
func DeriveKey(passphrase, salt string) []byte {
	return argon2.IDKey([]byte(passphrase), []byte(salt), argonTime, argonMemory, argonThreads, keyLen)
}

// Claims is the payload embedded in manifest.jwt.
type Claims struct {
	SHA256      string `json:"sha256"`
	GeneratedAt string `json:"generatedAt"`
	BuildID     string `json:"buildId"`
	jwt.RegisteredClaims
}

// Sign produces a compact HS256 JWT over sha256/generatedAt/buildID,
// signed with key (as returned by DeriveKey).
func Sign(key []byte, sha256Hex, generatedAt, buildID string) (string, error) {
	claims := Claims{
		SHA256:      sha256Hex,
		GeneratedAt: generatedAt,
		BuildID:     buildID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing: sign manifest jwt: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a manifest.jwt previously produced by
// Sign, returning its claims if the signature checks out against key.
func Verify(key []byte, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("signing: unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("signing: verify manifest jwt: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("signing: manifest jwt is invalid")
	}
	return claims, nil
}
