package ioimages

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a progress bar for portrait lookups. A quiet
// bar counts but prints nothing.
func newProgressBar(total int, quiet bool) *pb.ProgressBar {
	bar := pb.Full.New(total)
	bar.Set("prefix", "Portraits: ")
	bar.Set(pb.CleanOnFinish, true)
	if quiet {
		bar.SetWriter(io.Discard)
	}
	return bar.Start()
}
