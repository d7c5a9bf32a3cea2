// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account that owns a record collection.
type User struct {
	// UserID is the server-assigned identifier. It becomes the subject of
	// every issued token and scopes the user's records.
	UserID string `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Password is the plaintext password as received from the client.
	// It only travels inbound and is never stored.
	Password string `json:"password,omitempty"`

	// PasswordHash is the encoded argon2id hash kept in storage.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity is the authenticated principal the client is signed in as.
// A zero Identity means "signed out".
type Identity struct {
	UserID string
	Login  string
	Token  string
}

// IsZero reports whether no one is signed in.
func (i Identity) IsZero() bool {
	return i.UserID == "" && i.Token == ""
}
