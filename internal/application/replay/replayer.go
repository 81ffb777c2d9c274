package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/kinematic/internal/application/system"
)

// Replayer plays recorded frames back as an input source. Press and release
// edges are derived from consecutive frames exactly as they were live.
type Replayer struct {
	system.FrameInput
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.DT <= 0 {
		return nil, fmt.Errorf("failed to decode replay: invalid dt %v", data.DT)
	}

	return &data, nil
}

// Advance pushes the next recorded frame. Past the end it pushes an idle
// frame, so held buttons release, and returns false.
func (r *Replayer) Advance() bool {
	if r.frame >= len(r.data.Frames) {
		r.Push(system.InputFrame{})
		return false
	}

	r.Push(r.data.Frames[r.frame].Input())
	r.frame++
	return true
}

// Done reports whether every frame has been played.
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Data returns the replayed recording.
func (r *Replayer) Data() ReplayData {
	return r.data
}

// Reset rewinds to the first frame and clears the input state.
func (r *Replayer) Reset() {
	r.frame = 0
	r.FrameInput = system.FrameInput{}
}
