// Package core provides the main passlock vault operations.
//
// Core operations include:
//   - Init: create a new vault with a fresh salt
//   - Open/Save/Update: unlock, mutate and re-seal the whole vault
//   - AddEntry/EditEntry/RemoveEntry/GetEntry/List: entry management
//   - Snapshots/Restore/Diff: previous containers kept in the side-store
//
// Every save re-seals the complete vault and replaces the file atomically,
// after the current file has been copied into the side-store.
package core
