// Package web holds the page served by the monitoring server.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
)

// AssetDirEnv names a directory whose files replace the embedded page. It
// allows editing the page without rebuilding the simulator.
const AssetDirEnv = "TLBSIM_MONITOR_ASSETS"

//go:embed dist
var dist embed.FS

// GetAssets returns the files of the monitoring page.
func GetAssets() http.FileSystem {
	dir := os.Getenv(AssetDirEnv)
	if dir != "" {
		fmt.Fprintf(os.Stderr, "Serving the monitoring page from %s\n", dir)
		return http.Dir(dir)
	}

	page, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(err)
	}

	return http.FS(page)
}
