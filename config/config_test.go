package config

import (
	"testing"

	"github.com/episodic-ext/episodic/filesystem"
	"github.com/episodic-ext/episodic/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Similarity threshold defaults to 0.8", func() {
			_ = Setup()
			So(viper.GetFloat64(key.MatchSimilarityThreshold), ShouldEqual, 0.8)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("scan.injection_delay_ms")
			So(result, ShouldEqual, "scan_injection_delay_ms")
		})
	})
}
