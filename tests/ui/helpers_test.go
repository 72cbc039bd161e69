package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bobmcallan/sharedash/tests/common"
)

func baseURL() string {
	return strings.TrimRight(common.GetTestURL(), "/")
}

// newBrowser opens a headless browser and a JS error collector for one test.
func newBrowser(t *testing.T) (context.Context, *common.JSErrorCollector) {
	t.Helper()
	ctx, cancel := common.NewBrowserContext(nil)
	t.Cleanup(cancel)
	return ctx, common.NewJSErrorCollector(ctx)
}

func open(t *testing.T, ctx context.Context, path string) {
	t.Helper()
	if err := common.NavigateAndWait(ctx, baseURL()+path, 0); err != nil {
		t.Fatalf("navigate %s: %v", path, err)
	}
}

func screenshot(t *testing.T, ctx context.Context, name string) {
	t.Helper()
	path := filepath.Join(common.GetScreenshotDir("ui"), name+".png")
	if err := common.Screenshot(ctx, path); err != nil {
		t.Logf("screenshot %s: %v", name, err)
	}
}

func assertNoJSErrors(t *testing.T, errs *common.JSErrorCollector) {
	t.Helper()
	if jsErrs := errs.Errors(); len(jsErrs) > 0 {
		t.Errorf("JS errors:\n  %s", strings.Join(jsErrs, "\n  "))
	}
}
