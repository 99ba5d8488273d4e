package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/go-restir/renderer"
	"github.com/olekukonko/tablewriter"
)

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Primary", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%t", stat.IsPrimary),
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", stats.RenderTime.String()})
	table.Render()

	buf.WriteString("\n")
	stageTable := tablewriter.NewWriter(&buf)
	stageTable.SetAutoFormatHeaders(false)
	stageTable.SetAutoWrapText(false)
	stageTable.SetHeader([]string{"Stage", "Time", "% of frame"})
	for _, stat := range stats.Stages {
		var percent float64
		if stats.RenderTime > 0 {
			percent = 100 * float64(stat.RenderTime) / float64(stats.RenderTime)
		}
		stageTable.Append([]string{
			stat.Name,
			stat.RenderTime.String(),
			fmt.Sprintf("%02.1f %%", percent),
		})
	}
	stageTable.SetFooter([]string{"", "LUMINANCE", fmt.Sprintf("%.4f ± %.4f", stats.MeanLuminance, stats.LuminanceStdDev)})
	stageTable.Render()

	logger.Noticef("frame %d statistics\n%s", stats.Index, buf.String())
}
