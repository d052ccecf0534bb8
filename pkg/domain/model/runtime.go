package model

// Runtime is the provisioned Python interpreter the tool steps run through.
// Any 3.x interpreter satisfies the version constraint.
type Runtime struct {
	Python  string // Resolved interpreter path
	Version string // Reported version (e.g. "3.12.4")
}
