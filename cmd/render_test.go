package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/go-restir/log"
	"github.com/urfave/cli"
)

func testApp() *cli.App {
	app := cli.NewApp()
	app.Name = "test"
	app.Flags = LoggingFlags()
	app.Commands = []cli.Command{
		{
			Name: "frame",
			Flags: append(RenderFlags(),
				cli.IntFlag{Name: "warmup"},
				cli.StringFlag{Name: "out"},
			),
			Action: RenderFrame,
		},
		{
			Name: "sequence",
			Flags: append(RenderFlags(),
				cli.IntFlag{Name: "frames", Value: 2},
				cli.Float64Flag{Name: "orbit", Value: 5},
				cli.StringFlag{Name: "out"},
			),
			Action: RenderSequence,
		},
	}
	return app
}

func TestRenderFrameCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	args := []string{"test", "frame", "--width", "16", "--height", "8", "--workers", "2", "--warmup", "1", "--out", out, "point-light"}
	if err := testApp().Run(args); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	im, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := im.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Fatalf("expected a 16x8 image; got %v", b)
	}
}

func TestRenderSequenceCommand(t *testing.T) {
	dir := t.TempDir()
	args := []string{"test", "sequence", "--width", "8", "--height", "8", "--workers", "1", "--out", filepath.Join(dir, "f-%d.png"), "sky"}
	if err := testApp().Run(args); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"f-0.png", "f-1.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to be written; got %v", name, err)
		}
	}
}

func TestRenderCommandErrors(t *testing.T) {
	type spec struct {
		args []string
	}
	specs := []spec{
		{[]string{"test", "frame", "--out", "unused.png"}},
		{[]string{"test", "frame", "--light-samples", "64", "point-light"}},
		{[]string{"test", "frame", "--tonemapper", "filmic", "point-light"}},
		{[]string{"test", "frame", "--scheduler", "random", "point-light"}},
		{[]string{"test", "frame", "--debug", "everything", "point-light"}},
		{[]string{"test", "frame", "no-such-scene"}},
		{[]string{"test", "--log-level", "loud", "frame", "point-light"}},
	}

	for index, s := range specs {
		if err := testApp().Run(s.args); err == nil {
			t.Fatalf("[spec %d] expected an error", index)
		}
	}
}

func TestLoggingFlags(t *testing.T) {
	type spec struct {
		args       []string
		expVisible bool
	}
	specs := []spec{
		{[]string{"test", "emit"}, true},
		{[]string{"test", "--log-level", "warning", "emit"}, false},
		{[]string{"test", "-vv", "--log-level", "error", "emit"}, false},
		{[]string{"test", "--log-level", "debug", "emit"}, true},
	}

	var buf bytes.Buffer
	log.SetSink(&buf)
	defer log.SetSink(os.Stdout)
	defer log.SetLevel(log.Notice)

	for index, s := range specs {
		buf.Reset()
		app := cli.NewApp()
		app.Flags = LoggingFlags()
		app.Commands = []cli.Command{
			{
				Name: "emit",
				Action: func(ctx *cli.Context) error {
					if err := setupLogging(ctx); err != nil {
						return err
					}
					logger.Notice("notice-message")
					return nil
				},
			},
		}
		if err := app.Run(s.args); err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}

		if visible := strings.Contains(buf.String(), "notice-message"); visible != s.expVisible {
			t.Fatalf("[spec %d] expected notice visibility %t; got %t", index, s.expVisible, visible)
		}
	}
}
