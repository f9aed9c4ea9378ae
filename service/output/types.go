package output

import (
	"io"
	"time"

	"github.com/thirukguru/aws-inventory/model"
)

// Format represents the output format type
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatText  Format = "text"
)

type service struct {
	format Format
	out    io.Writer
	errOut io.Writer
}

// Service renders inventory results.
type Service interface {
	RenderVPCs(result *model.ScanResult, listResources bool) error
	RenderDBInstances(records []model.DBInstanceRecord) error
	RenderVersion(info model.VersionInfo)
	Finished(elapsed time.Duration, summary string)
	StopSpinner()
}
