package commands

import (
	"context"
	"testing"
)

func TestExecuteReleasesContainerOnFailure(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")
	rootCmd.SetArgs([]string{"scrape", "senate"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := execute(context.Background()); err == nil {
		t.Fatalf("expected an unknown chamber error")
	}
	if container != nil || logger != nil {
		t.Fatalf("container and logger must be released after a failed command")
	}
}
