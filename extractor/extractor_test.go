package extractor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/hazyhaar/tinge/imagetheme"
	"github.com/hazyhaar/tinge/urlguard"
)

func testService() *Service {
	return New(Config{})
}

func TestExtract_InvalidRequests(t *testing.T) {
	s := testService()

	if _, err := s.Extract(context.Background(), Request{Source: "website", Data: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty data: %v", err)
	}
	if _, err := s.Extract(context.Background(), Request{Source: "spreadsheet", Data: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown source: %v", err)
	}
}

func TestExtract_FileSource(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	s := testService()
	res, err := s.Extract(context.Background(), Request{Source: "file", Data: buf.String()})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Palette) != 1 || res.Palette[0] != "#3b82f6" {
		t.Errorf("palette = %v", res.Palette)
	}
	if res.ExtractionSource != "" {
		t.Errorf("image paths carry no extraction source, got %q", res.ExtractionSource)
	}
	if res.SuggestedTheme.Primary == "" {
		t.Error("theme must be populated")
	}
}

func TestExtract_WebsiteValidationPropagates(t *testing.T) {
	s := testService()
	_, err := s.Extract(context.Background(), Request{Source: "website", Data: "http://169.254.169.254/latest/meta-data/"})
	if !errors.Is(err, urlguard.ErrNotAllowed) {
		t.Fatalf("err = %v, want ErrNotAllowed", err)
	}
	if !IsUserError(err) {
		t.Error("SSRF policy violations are user errors")
	}
}

func TestIsUserError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{ErrInvalidInput, true},
		{imagetheme.ErrBadImage, true},
		{urlguard.ErrBlockedIP, true},
		{urlguard.ErrTooLong, true},
		{errors.New("browser: crashed"), false},
		{context.DeadlineExceeded, false},
	}
	for _, c := range cases {
		if got := IsUserError(c.err); got != c.want {
			t.Errorf("IsUserError(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
