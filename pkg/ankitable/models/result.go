package models

// FileResult reports the outcome of converting one input file.
type FileResult struct {
	// Input is the source file path.
	Input string `json:"input"`
	// Output is the HTML file path that was (or would have been) written.
	Output string `json:"output"`
	// Title is the title used in the document.
	Title string `json:"title,omitempty"`
	// Clozes is the number of cloze markers emitted.
	Clozes int `json:"clozes"`
	// Err is non-nil when the file failed. In a batch, other files are still attempted.
	Err error `json:"-"`
}

// OK reports whether the file converted successfully.
func (r FileResult) OK() bool {
	return r.Err == nil
}
