package dataset

import (
	"fmt"
	"strings"
)

// DataFormatError reports a trending CSV that lacks required columns.
type DataFormatError struct {
	Missing []string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("dataset: missing required columns: %s", strings.Join(e.Missing, ", "))
}
