package filesystem

import (
	"io"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackendSwitching(t *testing.T) {
	Convey("Switching the filesystem backend", t, func() {
		Convey("SetOsFs activates the operating system backend", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("SetMemMapFs activates the in-memory backend", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the gache adapter on an in-memory backend", t, func() {
		SetMemMapFs()
		fs := GacheFs{}

		Convey("MkdirAll creates nested directories", func() {
			So(fs.MkdirAll("cache/history", os.ModePerm), ShouldBeNil)

			exists, err := API().DirExists("cache/history")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("OpenFile writes and reads back through the active backend", func() {
			file, err := fs.OpenFile("cache/videos.json", os.O_CREATE|os.O_WRONLY, os.ModePerm)
			So(err, ShouldBeNil)

			_, err = file.Write([]byte(`{"saved":true}`))
			So(err, ShouldBeNil)
			So(file.Close(), ShouldBeNil)

			file, err = fs.OpenFile("cache/videos.json", os.O_RDONLY, os.ModePerm)
			So(err, ShouldBeNil)
			defer file.Close()

			contents, err := io.ReadAll(file)
			So(err, ShouldBeNil)
			So(string(contents), ShouldEqual, `{"saved":true}`)
		})
	})
}
