package render

import (
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ethangriffith2004/midisync/constants"
	"github.com/ethangriffith2004/midisync/model"
)

type ffprobeOutput struct {
	Streams []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		Duration     string `json:"duration"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads the source clip's geometry, duration and frame rate with
// ffprobe. The returned ClipInfo keeps the path as the handle the renderer
// later pulls pixels from.
func Probe(path string) (model.ClipInfo, error) {
	var blank model.ClipInfo

	cmdArgs := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,duration,avg_frame_rate",
		"-show_entries", "format=duration",
		"-print_format", "json",
		path,
	}
	out, err := exec.Command(constants.GetFFprobePath(), cmdArgs...).Output()
	if err != nil {
		return blank, fmt.Errorf("error probing clip %s: %w", path, err)
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return blank, fmt.Errorf("error parsing ffprobe output for %s: %w", path, err)
	}
	if len(probed.Streams) == 0 {
		return blank, fmt.Errorf("clip %s has no video stream", path)
	}

	stream := probed.Streams[0]
	duration, _ := strconv.ParseFloat(stream.Duration, 64)
	if duration <= 0 {
		// some containers only carry duration at format level
		duration, _ = strconv.ParseFloat(probed.Format.Duration, 64)
	}

	info := model.ClipInfo{
		Path:      path,
		Duration:  duration,
		Width:     stream.Width,
		Height:    stream.Height,
		FrameRate: parseFrameRate(stream.AvgFrameRate),
	}
	if info.Duration <= 0 || info.Width <= 0 || info.Height <= 0 {
		return blank, fmt.Errorf("clip %s has unusable dimensions or duration", path)
	}
	return info, nil
}

// parseFrameRate turns ffprobe's rational frame rate ("30000/1001") into the
// nearest whole fps. Zero means the rate was missing or malformed.
func parseFrameRate(r string) int {
	num, den, found := strings.Cut(r, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return int(math.Round(n))
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return int(math.Round(n / d))
}
