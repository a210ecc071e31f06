package workflows

type BatchAnswerInput struct {
	JobID        string   `json:"job_id"`
	DocumentPath string   `json:"document_path,omitempty"`
	Text         string   `json:"text,omitempty"`
	Queries      []string `json:"queries"`
	BatchSize    int      `json:"batch_size,omitempty"`
}

type BatchAnswerProgress struct {
	JobID      string `json:"job_id"`
	Status     string `json:"status"`
	Step       string `json:"step"`
	Total      int    `json:"total"`
	Answered   int    `json:"answered"`
	Found      int    `json:"found"`
	OutputPath string `json:"output_path,omitempty"`
	Error      string `json:"error,omitempty"`
}
