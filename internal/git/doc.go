// Package git reports whether a vault and its side-store are exposed to a
// git repository.
//
// Checks performed:
//   - Whether the vault directory is inside a git work tree
//   - Whether the vault file or <vault>.db is tracked by git
//   - Whether they are covered by .gitignore
//
// The files are encrypted, but committing them publishes every snapshot
// to anyone who can clone the repository.
package git
