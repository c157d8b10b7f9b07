package export

import "errors"

var (
	ErrJobNotFound          = errors.New("export job not found")
	ErrExportAccessRequired = errors.New("not allowed to create exports")
	ErrSummaryAdminOnly     = errors.New("organization summary exports require a platform operator")
)
