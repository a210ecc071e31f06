package activities

import "docquery/internal/answer"

type ExtractTextInput struct {
	DocumentPath string `json:"document_path"`
}

type ExtractTextOutput struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

type AnswerQueriesInput struct {
	JobID   string   `json:"job_id"`
	Text    string   `json:"text"`
	Queries []string `json:"queries"`
}

type AnswerQueriesOutput struct {
	Results []answer.Result `json:"results"`
}

type QueryAnswer struct {
	Query  string        `json:"query"`
	Result answer.Result `json:"result"`
}

type WriteAnswersInput struct {
	JobID        string        `json:"job_id"`
	DocumentPath string        `json:"document_path,omitempty"`
	Answers      []QueryAnswer `json:"answers"`
}

type WriteAnswersOutput struct {
	Path string `json:"path"`
}
