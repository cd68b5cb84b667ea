// Package git checks whether credvault files are exposed to a git repository.
//
// Checks performed for the key file and the blob:
//   - Whether the file lives inside a git work tree
//   - Whether the file is tracked by git (the key never should be)
//   - Whether the file is covered by .gitignore (it should be)
//
// A committed key lets anyone with repository access decrypt the blob.
package git
