package videos

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorMessage(t *testing.T) {
	Convey("ErrorMessage", t, func() {
		Convey("Should classify wrapped sentinels", func() {
			So(ErrorMessage("Pexels", fmt.Errorf("dial: %w", ErrConnection)), ShouldEqual, "Connection failed.")
			So(ErrorMessage("Pexels", &callError{op: "popular", err: ErrTimeout}), ShouldEqual, "Timeout.")
			So(ErrorMessage("Pexels", context.DeadlineExceeded), ShouldEqual, "Timeout.")
			So(ErrorMessage("Pexels", fmt.Errorf("%w: eof", ErrMalformedResponse)), ShouldEqual, "Invalid JSON response from Pexels.")
		})
		Convey("Should report anything else with its message", func() {
			So(ErrorMessage("Pexels", &callError{op: "search", err: errors.New("quota exceeded")}), ShouldEqual, "Unknown error: quota exceeded")
			So(ErrorMessage("Pexels", &panicError{value: "boom"}), ShouldEqual, "Unknown error: boom")
		})
		Convey("Should be empty for nil", func() {
			So(ErrorMessage("Pexels", nil), ShouldEqual, "")
		})
	})

	Convey("detailErrorMessage", t, func() {
		So(detailErrorMessage("Pexels", fmt.Errorf("find: %w", ErrNotFound)), ShouldEqual, "Video not found")
		So(detailErrorMessage("Pexels", ErrConnection), ShouldEqual, "Connection failed.")
	})
}
