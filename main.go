package main

import (
	"os"

	"github.com/achilleasa/go-restir/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-restir"
	app.Usage = "render scenes with reservoir-based light resampling"
	app.Version = "0.0.1"
	app.Flags = cmd.LoggingFlags()
	app.Commands = []cli.Command{
		{
			Name:   "list-scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:      "scene",
			Usage:     "display scene information",
			ArgsUsage: "scene.json|built-in-name",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:   "render",
			Usage:  "render scene",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:  "frame",
					Usage: "render single frame",
					Description: `
Render a single frame. The scene argument is either a path or http(s) URL to a
JSON scene file or the name of a built-in scene. Since temporal reuse improves
with every frame, a number of warm-up frames can be rendered before the frame
is written out.`,
					ArgsUsage: "scene.json|built-in-name",
					Flags: append(cmd.RenderFlags(),
						cli.IntFlag{
							Name:  "warmup",
							Value: 0,
							Usage: "number of frames rendered before the output frame",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					),
					Action: cmd.RenderFrame,
				},
				{
					Name:  "sequence",
					Usage: "render a sequence of frames orbiting the camera",
					Description: `
Render a sequence of frames. Between frames the camera orbits around its
look-at point by the given angle, which resets the temporal history. Use an
orbit of 0 to render a static sequence.`,
					ArgsUsage: "scene.json|built-in-name",
					Flags: append(cmd.RenderFlags(),
						cli.IntFlag{
							Name:  "frames, n",
							Value: 30,
							Usage: "number of frames to render",
						},
						cli.Float64Flag{
							Name:  "orbit",
							Value: 2,
							Usage: "camera orbit angle in degrees between frames",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame-%03d.png",
							Usage: "filename pattern for the rendered frames",
						},
					),
					Action: cmd.RenderSequence,
				},
			},
		},
	}

	app.Run(os.Args)
}
