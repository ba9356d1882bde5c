package models

// ConvertConfig holds runtime configuration for a conversion batch.
// All values come from CLI flags, not external config files.
type ConvertConfig struct {
	Files      []string
	ContentDir string
	DryRun     bool
}
