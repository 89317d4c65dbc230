// Package statsview runs a local HTTP server with runtime statistics of the
// interpreter process. Underlying functionality is provided by
// "github.com/go-echarts/statsview".
//
// After launch, graphical statistics are viewable at:
//
//	localhost:12600/debug/statsview
//
// And standard Go pprof statistics at:
//
//	localhost:12600/debug/pprof/
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address the stats server listens on
const Address = "localhost:12600"

const url = "/debug/statsview"

// URL returns the address of the statistics page
func URL() string {
	return "http://" + Address + url
}

// Launch a new goroutine running the statsview
func Launch(logger *log.Logger) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	logger.Info("Stats server available", log.String("url", URL()))
}
