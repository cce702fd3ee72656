package cmd

import (
	"testing"

	"github.com/spf13/viper"
)

func TestInitConfig_EnvOverridesWithoutConfigFlag(t *testing.T) {
	t.Setenv("SHUTTERINSPECT_INSPECT_EXIFTOOL", "/opt/exiftool")

	cfgFile = ""
	initConfig()

	if got := viper.GetString("inspect.exiftool"); got != "/opt/exiftool" {
		t.Fatalf("inspect.exiftool = %q, want env override", got)
	}
}
