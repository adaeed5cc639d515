package ui

// ProgressMsg represents a progress update from the processor
type ProgressMsg struct {
	Pass     int     // processor.PassDecoding to processor.PassCutting
	PassName string  // "Decoding", "Smoothing", "Scanning" or "Cutting"
	Progress float64 // 0.0 to 1.0
	Level    float64 // Loudest energy seen so far, or the threshold while scanning
}

// FileStartMsg indicates a new file has started processing
type FileStartMsg struct {
	FileIndex int
	FileName  string
}

// FileCompleteMsg indicates a file has finished processing
type FileCompleteMsg struct {
	FileIndex        int
	Threshold        float64
	Silences         int
	OriginalDuration float64 // seconds
	EditedDuration   float64 // seconds
	NoSilence        bool
	OutputPath       string
	Error            error
}

// AllCompleteMsg indicates all files have been processed
type AllCompleteMsg struct{}
