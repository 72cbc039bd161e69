package common

import (
	"github.com/ternarybob/banner"
)

// AppName is the display name of the dashboard.
const AppName = "Share Analytic Dashboard"

// PrintBanner displays the application banner
func PrintBanner(version string) {
	banner.PrintSimple(AppName, version)
}
