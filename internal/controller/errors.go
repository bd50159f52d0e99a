package controller

import "errors"

// UploadPrompt is the message shown when the selected file cannot be submitted.
const UploadPrompt = "Please upload test.csv"

var (
	// ErrBusy indicates a submission is already in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrExportUnavailable indicates there are too few associations to export.
	ErrExportUnavailable = errors.New("export is only available for more than 10 associations")
	// ErrClosed indicates the controller has been torn down.
	ErrClosed = errors.New("controller closed")
)

// ValidationError is a local rejection of the selected file. It never
// reaches the network layer.
type ValidationError struct {
	FileName string
}

func (e *ValidationError) Error() string {
	return UploadPrompt
}

// IsValidationError reports whether err is a local file validation failure.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
