// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns account passwords into self-describing argon2id
// hashes and checks candidates against them. The server never stores or logs
// the plain password.
type PasswordHasher interface {
	// Hash derives a new random-salted hash of password in the PHC string
	// format: $argon2id$v=19$m=<KiB>,t=<iterations>,p=<threads>$<salt>$<key>.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. A malformed encoded
	// value is an error, a mismatch is not.
	Verify(password, encoded string) (bool, error)
}
