package metadata

// FrameStats counts the work submitted between DrawBegin and DrawEnd.
type FrameStats struct {
	/** @brief Number of indexed draw calls issued. */
	DrawCalls uint32
	/** @brief Number of quads and circles appended. */
	QuadCount uint32
}

// Add returns the sum of both counters.
func (s FrameStats) Add(other FrameStats) FrameStats {
	return FrameStats{
		DrawCalls: s.DrawCalls + other.DrawCalls,
		QuadCount: s.QuadCount + other.QuadCount,
	}
}
