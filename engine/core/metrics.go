package core

const avgCount = 30

// Metrics keeps a rolling average of frame times and the resulting FPS.
type Metrics struct {
	frameAVGCounter    int
	msTimes            [avgCount]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Update records one frame of the given duration (in seconds).
func (m *Metrics) Update(frameElapsedTime float64) {
	frameMS := frameElapsedTime * 1000.0
	m.msTimes[m.frameAVGCounter] = frameMS
	if m.frameAVGCounter == avgCount-1 {
		m.msAvg = 0
		for i := 0; i < avgCount; i++ {
			m.msAvg += m.msTimes[i]
		}
		m.msAvg /= avgCount
	}
	m.frameAVGCounter++
	m.frameAVGCounter %= avgCount

	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames) * 1000.0 / m.accumulatedFrameMS
		m.accumulatedFrameMS = 0
		m.frames = 0
	}
	m.frames++
}

// FPS returns the frames per second over the last accumulation window.
func (m *Metrics) FPS() float64 {
	return m.fps
}

// FrameTimeAvg returns the average frame time in milliseconds.
func (m *Metrics) FrameTimeAvg() float64 {
	return m.msAvg
}
