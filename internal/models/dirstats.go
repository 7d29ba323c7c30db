package models

// DirectoryStats counts files under the project root.
type DirectoryStats struct {
	TotalFiles int
	CodeFiles  int
}
