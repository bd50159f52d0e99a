package model

// UploadState tracks the lifecycle of a prediction upload.
type UploadState int

// Upload state constants.
const (
	UploadIdle UploadState = iota
	UploadSelected
	UploadSubmitting
	UploadSucceeded
	UploadFailed
)

func (s UploadState) String() string {
	switch s {
	case UploadIdle:
		return "idle"
	case UploadSelected:
		return "selected"
	case UploadSubmitting:
		return "submitting"
	case UploadSucceeded:
		return "succeeded"
	case UploadFailed:
		return "failed"
	default:
		return "unknown"
	}
}
