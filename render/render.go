package render

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/google/uuid"

	"github.com/ethangriffith2004/midisync/constants"
	"github.com/ethangriffith2004/midisync/model"
	"github.com/ethangriffith2004/midisync/timeline"
)

// Renderer materializes a segment plan into a video file by shelling out to
// ffmpeg. Every segment becomes its own part file in a scratch dir; the
// parts are then concatenated in one final encode, so nothing lands at the
// output path unless the whole plan rendered.
type Renderer struct {
	FFmpeg string
}

func New() *Renderer {
	return &Renderer{FFmpeg: constants.GetFFmpegPath()}
}

func (r *Renderer) Render(plan *model.Plan, outputPath string) error {
	workDir, err := os.MkdirTemp("", "midisync")
	if err != nil {
		return fmt.Errorf("error creating scratch dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	fillerPNG, err := writeKeyFrame(workDir, plan)
	if err != nil {
		return err
	}

	var parts []string
	for _, seg := range plan.Segments {
		segParts, err := r.renderSegment(workDir, fillerPNG, plan, seg)
		if err != nil {
			return err
		}
		parts = append(parts, segParts...)
	}

	listPath := filepath.Join(workDir, "concat.txt")
	if err := writeConcatList(listPath, parts); err != nil {
		return err
	}
	return r.run(concatArgs(listPath, plan.FrameRate, outputPath))
}

func (r *Renderer) renderSegment(workDir, fillerPNG string, plan *model.Plan, seg model.TimelineSegment) ([]string, error) {
	if seg.Kind == model.SegmentFiller {
		part := partPath(workDir)
		if err := r.run(fillerArgs(fillerPNG, seg.Duration, plan.FrameRate, part)); err != nil {
			return nil, err
		}
		return []string{part}, nil
	}

	// one part per directed source chunk; they land in the final concat in
	// chunk order
	var parts []string
	for _, chunk := range timeline.SourceChunks(seg.Style, seg.Duration, plan.Clip.Duration) {
		part := partPath(workDir)
		if err := r.run(chunkArgs(plan.Clip.Path, chunk, seg.Flipped, plan.FrameRate, part)); err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func (r *Renderer) run(cmdArgs []string) error {
	cmd := exec.Command(r.FFmpeg, cmdArgs...)

	if err := cmd.Run(); err != nil {
		var fullCmd string
		fullCmd += r.FFmpeg + " "
		for _, v := range cmdArgs {
			fullCmd += fmt.Sprintf("%s ", v)
		}

		return fmt.Errorf("error executing FFmpeg command: %s; %v", fullCmd, err)
	}

	return nil
}

func partPath(workDir string) string {
	return filepath.Join(workDir, uuid.New().String()+".mp4")
}

// writeKeyFrame draws one solid key-color frame at clip size. The filler
// segments loop this single image.
func writeKeyFrame(workDir string, plan *model.Plan) (string, error) {
	dc := gg.NewContext(plan.Clip.Width, plan.Clip.Height)
	dc.SetRGB255(int(plan.KeyColor.R), int(plan.KeyColor.G), int(plan.KeyColor.B))
	dc.Clear()

	path := filepath.Join(workDir, "keycolor.png")
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("error writing key color frame: %w", err)
	}
	return path, nil
}

func fillerArgs(png string, duration float64, fps int, out string) []string {
	return []string{
		"-loop", "1",
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", png,
		"-t", fmt.Sprintf("%f", duration),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-y",
		out,
	}
}

func chunkArgs(clipPath string, chunk model.Chunk, flipped bool, fps int, out string) []string {
	var filters []string
	if chunk.Reversed {
		filters = append(filters, "reverse")
	}
	if flipped {
		filters = append(filters, "hflip")
	}
	filters = append(filters, fmt.Sprintf("fps=%d", fps))

	return []string{
		// input-level -t so reverse only buffers the chunk, not the clip
		"-t", fmt.Sprintf("%f", chunk.Duration),
		"-i", clipPath,
		"-vf", strings.Join(filters, ","),
		"-t", fmt.Sprintf("%f", chunk.Duration),
		"-an",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-y",
		out,
	}
}

func concatArgs(listPath string, fps int, out string) []string {
	return []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-r", fmt.Sprintf("%d", fps),
		"-an",
		"-preset", "veryfast",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-y",
		out,
	}
}

func writeConcatList(path string, parts []string) error {
	var b strings.Builder
	for _, p := range parts {
		fmt.Fprintf(&b, "file '%s'\n", p)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("error writing concat list: %w", err)
	}
	return nil
}
