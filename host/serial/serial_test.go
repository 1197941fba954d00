package serial

import (
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDefaultConfig(t *testing.T) {
	c := qt.New(t)

	cfg := DefaultConfig("/dev/ttyACM0")
	c.Assert(*cfg, qt.Equals, Config{Device: "/dev/ttyACM0", Baud: 115200, ReadTimeout: 500})
}

func TestOpenErrors(t *testing.T) {
	c := qt.New(t)

	_, err := Open(nil)
	c.Assert(err, qt.ErrorMatches, "serial: nil config")

	missing := filepath.Join(t.TempDir(), "ttyNone")
	_, err = Open(DefaultConfig(missing))
	c.Assert(err, qt.ErrorMatches, "failed to open serial port .*ttyNone: .*")
}
