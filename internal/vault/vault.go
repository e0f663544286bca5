// Package vault gates the private note category behind a user-chosen
// password. The gate is an access convenience, not a security boundary:
// the password is stored in plain text and there is no recovery flow.
package vault

import (
	"errors"

	"github.com/marcus/inkwell/internal/note"
	"github.com/marcus/inkwell/internal/store"
)

// ErrWrongPassword is returned by Submit in verify mode on a mismatch.
// The caller leaves the active view unchanged.
var ErrWrongPassword = errors.New("wrong password")

// minPasswordLen is the minimum accepted password length, in runes.
const minPasswordLen = 4

// Mode is the prompt the vault expects next.
type Mode int

const (
	// ModeIdle means no access request is pending.
	ModeIdle Mode = iota
	// ModeSet means no password exists yet; the next Submit sets one.
	ModeSet
	// ModeVerify means a password exists; the next Submit must match it.
	ModeVerify
)

// Vault holds the private-area password and the session unlock flag.
// The flag always starts locked; unlock never survives a restart.
type Vault struct {
	port     store.Port
	password string
	unlocked bool
	mode     Mode
}

// Open loads any stored password from the port. The vault starts
// locked regardless.
func Open(port store.Port) (*Vault, error) {
	data, err := port.Load(store.KeyVault)
	if err != nil {
		return nil, err
	}
	return &Vault{port: port, password: string(data)}, nil
}

func (v *Vault) HasPassword() bool { return v.password != "" }
func (v *Vault) Unlocked() bool    { return v.unlocked }
func (v *Vault) Mode() Mode        { return v.mode }

// RequestAccess begins an unlock attempt and reports which prompt to
// show: set a new password, or verify the existing one.
func (v *Vault) RequestAccess() Mode {
	if v.password == "" {
		v.mode = ModeSet
	} else {
		v.mode = ModeVerify
	}
	return v.mode
}

// Submit resolves a pending access request. In set mode a password
// shorter than four characters is rejected before anything is stored.
// On success the vault is unlocked and the caller switches the active
// view to the private area.
func (v *Vault) Submit(input string) error {
	switch v.mode {
	case ModeSet:
		if len([]rune(input)) < minPasswordLen {
			return &note.ValidationError{Field: "password", Reason: "must be at least 4 characters"}
		}
		if err := v.port.Save(store.KeyVault, []byte(input)); err != nil {
			return err
		}
		v.password = input
		v.unlocked = true
		v.mode = ModeIdle
		return nil
	case ModeVerify:
		if input != v.password {
			return ErrWrongPassword
		}
		v.unlocked = true
		v.mode = ModeIdle
		return nil
	}
	return errors.New("no access request pending")
}

// Cancel abandons a pending access request without unlocking.
func (v *Vault) Cancel() {
	v.mode = ModeIdle
}

// Lock clears the unlock flag. The caller resets the active view to
// ALL.
func (v *Vault) Lock() {
	v.unlocked = false
	v.mode = ModeIdle
}
