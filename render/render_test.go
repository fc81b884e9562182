package render

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ethangriffith2004/midisync/constants"
	"github.com/ethangriffith2004/midisync/model"
)

func TestParseFrameRate(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(30, parseFrameRate("30/1"))
	assert.Equal(30, parseFrameRate("30000/1001"))
	assert.Equal(24, parseFrameRate("24"))
	assert.Equal(0, parseFrameRate("0/0"))
	assert.Equal(0, parseFrameRate("garbage"))
}

func TestChunkArgsFilters(t *testing.T) {
	assert := assert.New(t)

	args := strings.Join(chunkArgs("clip.mp4", model.Chunk{Duration: 2.0}, false, 30, "out.mp4"), " ")
	assert.Contains(args, "-vf fps=30")
	assert.NotContains(args, "reverse")
	assert.NotContains(args, "hflip")

	args = strings.Join(chunkArgs("clip.mp4", model.Chunk{Duration: 2.0, Reversed: true}, true, 30, "out.mp4"), " ")
	assert.Contains(args, "-vf reverse,hflip,fps=30")
	assert.Contains(args, "-t 2.000000")
	assert.Contains(args, "-an")
}

func TestFillerArgs(t *testing.T) {
	args := strings.Join(fillerArgs("key.png", 0.25, 30, "out.mp4"), " ")

	assert := assert.New(t)
	assert.Contains(args, "-loop 1")
	assert.Contains(args, "-i key.png")
	assert.Contains(args, "-t 0.250000")
	assert.Contains(args, "-pix_fmt yuv420p")
}

func TestWriteConcatList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concat.txt")
	err := writeConcatList(path, []string{"/tmp/a.mp4", "/tmp/b.mp4"})

	assert := assert.New(t)
	assert.NoError(err)

	dat, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Equal("file '/tmp/a.mp4'\nfile '/tmp/b.mp4'\n", string(dat))
}

func TestWriteKeyFrameDimensions(t *testing.T) {
	plan := &model.Plan{
		Clip:     model.ClipInfo{Width: 64, Height: 36},
		KeyColor: constants.KeyColor,
	}
	path, err := writeKeyFrame(t.TempDir(), plan)

	assert := assert.New(t)
	assert.NoError(err)

	f, err := os.Open(path)
	assert.NoError(err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	assert.NoError(err)
	assert.Equal(64, cfg.Width)
	assert.Equal(36, cfg.Height)
}
