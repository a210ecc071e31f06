package activities

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"docquery/internal/answer"
	"docquery/internal/config"
	"docquery/internal/pdftext"
	"docquery/internal/util"
	"docquery/internal/validate"
)

type Activities struct {
	cfg    config.Config
	engine *answer.Engine
}

func New(cfg config.Config, engine *answer.Engine) *Activities {
	if engine == nil {
		engine = answer.New(answer.WithMatchLimit(cfg.MatchLimit))
	}
	return &Activities{cfg: cfg, engine: engine}
}

// AnswersPath is where a job's answers are written.
func AnswersPath(dataOutRoot, jobID string) string {
	return filepath.Join(dataOutRoot, "jobs", filepath.Base(jobID), "answers.json")
}

func (a *Activities) ExtractTextActivity(ctx context.Context, in ExtractTextInput) (ExtractTextOutput, error) {
	_ = ctx
	if err := validate.PDF(in.DocumentPath).Err(); err != nil {
		return ExtractTextOutput{}, err
	}
	doc, err := pdftext.ExtractFile(in.DocumentPath)
	if err != nil {
		return ExtractTextOutput{}, err
	}
	return ExtractTextOutput{Text: doc.Text, Pages: doc.Pages}, nil
}

func (a *Activities) AnswerQueriesActivity(ctx context.Context, in AnswerQueriesInput) (AnswerQueriesOutput, error) {
	results, err := a.engine.AnswerBatch(ctx, in.Text, in.Queries, a.cfg.BatchWorkers)
	if err != nil {
		return AnswerQueriesOutput{}, fmt.Errorf("answer job %s: %w", in.JobID, err)
	}
	return AnswerQueriesOutput{Results: results}, nil
}

func (a *Activities) WriteAnswersActivity(ctx context.Context, in WriteAnswersInput) (WriteAnswersOutput, error) {
	_ = ctx
	path := AnswersPath(a.cfg.DataOutRoot, in.JobID)
	payload := map[string]any{
		"job_id":       in.JobID,
		"answers":      in.Answers,
		"generated_at": time.Now().UTC(),
	}
	if in.DocumentPath != "" {
		payload["document"] = filepath.Base(in.DocumentPath)
	}
	if err := util.WriteJSONAtomic(path, payload); err != nil {
		return WriteAnswersOutput{}, err
	}
	return WriteAnswersOutput{Path: path}, nil
}
