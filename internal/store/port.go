// Package store owns the durable note and folder collections. All
// mutations go through Store methods; each one rewrites the full
// collection to the persistence port.
package store

// Well-known port keys. Notes and folders each hold a JSON array; the
// vault key holds the private-area password; the ui key holds view
// preferences.
const (
	KeyNotes   = "notes"
	KeyFolders = "folders"
	KeyVault   = "vault"
	KeyUI      = "ui"
)

// Port is the durable key-value store behind Store and the vault.
// Load returns (nil, nil) for a key that has never been saved.
type Port interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}
