package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWriter(&buf, "json"), ShouldBeNil)
		So(SetLevelString("info"), ShouldBeNil)

		Convey("When logging with a request id and a component name", func() {
			ctx := WithRequestID(context.Background(), "req-1")
			Named("usecase").Info(ctx, "summary built", Int("items", 3), Error(errors.New("boom")))

			var line map[string]any
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)

			Convey("Then the line carries the fields", func() {
				So(line["msg"], ShouldEqual, "summary built")
				So(line["request_id"], ShouldEqual, "req-1")
				So(line["component"], ShouldEqual, "usecase")
				So(line["items"], ShouldEqual, float64(3))
				So(line["error"], ShouldEqual, "boom")
			})
		})

		Convey("When logging below the configured level", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(context.Background(), "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})

		Reset(func() { _ = SetLevelString("info") })
	})

	Convey("Given invalid settings", t, func() {
		So(InitWriter(&bytes.Buffer{}, "xml"), ShouldNotBeNil)
		So(SetLevelString("loud"), ShouldNotBeNil)
	})

	Convey("Nop discards every level", t, func() {
		l := Nop()
		So(func() { l.Error(context.Background(), "ignored") }, ShouldNotPanic)
	})
}
