package workflows

import (
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"docquery/internal/activities"
)

const QueryGetProgress = "GetProgress"

const defaultBatchSize = 25

// WorkflowID is the Temporal workflow id used for a batch job.
func WorkflowID(jobID string) string {
	return "batch-answer-" + sanitizeID(jobID)
}

// BatchAnswerWorkflow answers a list of queries against one text, extracting
// it from a stored PDF first when DocumentPath is set, and writes the answers
// to the data dir. A document without usable text ends the job as "failed"
// without a workflow error.
func BatchAnswerWorkflow(ctx workflow.Context, input BatchAnswerInput) (string, error) {
	progress := BatchAnswerProgress{
		JobID:  input.JobID,
		Status: "processing",
		Step:   "init",
		Total:  len(input.Queries),
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetProgress, func() (BatchAnswerProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	fail := func(step string, err error) (string, error) {
		progress.Status = "failed"
		progress.Step = step
		progress.Error = err.Error()
		workflow.GetLogger(ctx).Warn("batch answer job failed", "job_id", input.JobID, "step", step, "error", err)
		return "failed", nil
	}

	text := input.Text
	if input.DocumentPath != "" {
		progress.Step = "extract_text"
		extractCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
			StartToCloseTimeout: 2 * time.Minute,
			RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
		})
		var out activities.ExtractTextOutput
		if err := workflow.ExecuteActivity(extractCtx, "ExtractTextActivity", activities.ExtractTextInput{DocumentPath: input.DocumentPath}).Get(ctx, &out); err != nil {
			return fail("extract_text", err)
		}
		text = out.Text
	}
	if strings.TrimSpace(text) == "" {
		return fail("extract_text", temporal.NewNonRetryableApplicationError("job has no text to search", "EmptyText", nil))
	}

	progress.Step = "answer"
	batchSize := input.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	answers := make([]activities.QueryAnswer, 0, len(input.Queries))
	for i := 0; i < len(input.Queries); i += batchSize {
		end := i + batchSize
		if end > len(input.Queries) {
			end = len(input.Queries)
		}
		batch := input.Queries[i:end]
		var out activities.AnswerQueriesOutput
		if err := workflow.ExecuteActivity(ctx, "AnswerQueriesActivity", activities.AnswerQueriesInput{
			JobID:   input.JobID,
			Text:    text,
			Queries: batch,
		}).Get(ctx, &out); err != nil {
			return fail("answer", err)
		}
		for j, res := range out.Results {
			if res.Found() {
				progress.Found++
			}
			answers = append(answers, activities.QueryAnswer{Query: batch[j], Result: res})
		}
		progress.Answered += len(out.Results)
	}

	progress.Step = "write_answers"
	var written activities.WriteAnswersOutput
	if err := workflow.ExecuteActivity(ctx, "WriteAnswersActivity", activities.WriteAnswersInput{
		JobID:        input.JobID,
		DocumentPath: input.DocumentPath,
		Answers:      answers,
	}).Get(ctx, &written); err != nil {
		return fail("write_answers", err)
	}
	progress.OutputPath = written.Path
	progress.Step = "done"
	progress.Status = "completed"
	return written.Path, nil
}

func sanitizeID(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}
