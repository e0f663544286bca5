package vault

import (
	"errors"
	"testing"

	"github.com/marcus/inkwell/internal/note"
	"github.com/marcus/inkwell/internal/store"
)

type memPort struct {
	data map[string][]byte
}

func newMemPort() *memPort { return &memPort{data: make(map[string][]byte)} }

func (p *memPort) Load(key string) ([]byte, error) { return p.data[key], nil }
func (p *memPort) Save(key string, d []byte) error { p.data[key] = d; return nil }

func TestFirstTimeSetFlow(t *testing.T) {
	port := newMemPort()
	v, err := Open(port)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if v.HasPassword() || v.Unlocked() {
		t.Fatal("fresh vault should be empty and locked")
	}
	if mode := v.RequestAccess(); mode != ModeSet {
		t.Fatalf("mode = %v, want ModeSet", mode)
	}

	var verr *note.ValidationError
	if err := v.Submit("ab"); !errors.As(err, &verr) {
		t.Fatalf("short password: err = %v, want ValidationError", err)
	}
	if v.Unlocked() || v.HasPassword() {
		t.Fatal("rejected password must not change state")
	}

	if err := v.Submit("abcd"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !v.Unlocked() {
		t.Error("vault should be unlocked after setting password")
	}
	if string(port.data[store.KeyVault]) != "abcd" {
		t.Errorf("stored password = %q", port.data[store.KeyVault])
	}
}

func TestVerifyFlow(t *testing.T) {
	port := newMemPort()
	port.data[store.KeyVault] = []byte("hunter42")
	v, err := Open(port)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !v.HasPassword() {
		t.Fatal("password should be loaded from port")
	}
	if v.Unlocked() {
		t.Fatal("unlock must not survive restart")
	}
	if mode := v.RequestAccess(); mode != ModeVerify {
		t.Fatalf("mode = %v, want ModeVerify", mode)
	}
	if err := v.Submit("wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("err = %v, want ErrWrongPassword", err)
	}
	if v.Unlocked() {
		t.Fatal("mismatch must not unlock")
	}
	if err := v.Submit("hunter42"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !v.Unlocked() {
		t.Error("exact match should unlock")
	}
}

func TestLock(t *testing.T) {
	port := newMemPort()
	v, _ := Open(port)
	v.RequestAccess()
	if err := v.Submit("abcd"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	v.Lock()
	if v.Unlocked() {
		t.Error("Lock should clear the unlock flag")
	}
	// Password survives locking.
	if !v.HasPassword() {
		t.Error("Lock must not discard the password")
	}
}

func TestSubmitWithoutRequest(t *testing.T) {
	v, _ := Open(newMemPort())
	if err := v.Submit("abcd"); err == nil {
		t.Error("Submit without a pending request should fail")
	}
}
