package cmd

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/achilleasa/go-restir/scene"
	"github.com/achilleasa/go-restir/scene/reader"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file or built-in scene name")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	sc.BuildBVH()
	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Primitives", "Lights", "Environment"})
	for _, name := range scene.Builtins() {
		sc, err := scene.Builtin(name)
		if err != nil {
			return err
		}
		env := "no"
		if sc.Environment != nil {
			env = "yes"
		}
		table.Append([]string{name, strconv.Itoa(len(sc.Primitives)), strconv.Itoa(len(sc.Lights)), env})
	}
	table.Render()

	logger.Noticef("built-in scenes:\n%s", buf.String())
	return nil
}
