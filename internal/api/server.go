package api

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"

	"docquery/internal/activities"
	"docquery/internal/answer"
	"docquery/internal/config"
	"docquery/internal/logger"
	"docquery/internal/metrics"
	"docquery/internal/pdftext"
	"docquery/internal/providers"
	"docquery/internal/rxsearch"
	"docquery/internal/util"
	"docquery/internal/validate"
	"docquery/internal/workflows"
)

//go:embed static/index.html
var indexHTML []byte

var (
	errInvalidJSON      = errors.New("invalid json")
	errNoFile           = errors.New("no file provided")
	errNotPDF           = errors.New("only pdf files are accepted")
	errJobsDisabled     = errors.New("job queue unavailable")
	errMethodNotAllowed = errors.New("method not allowed")
)

// Deps are the collaborators a Server needs. Nil fields get working defaults,
// except Temporal: without a client the /jobs routes answer 503.
type Deps struct {
	Logger    *logger.Logger
	Metrics   *metrics.Metrics
	Providers *providers.Manager
	Temporal  tclient.Client
}

type Server struct {
	cfg       config.Config
	log       *logger.Logger
	metrics   *metrics.Metrics
	monitor   answer.Monitor
	engine    *answer.Engine
	providers *providers.Manager
	temporal  tclient.Client
}

func NewServer(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Providers == nil {
		pm, err := providers.NewManager(cfg)
		if err != nil {
			return nil, err
		}
		deps.Providers = pm
	}
	mon := answer.Monitors{deps.Logger.AnswerMonitor(), deps.Metrics.AnswerMonitor()}
	llmLog := deps.Logger.Component("llm")
	deps.Providers.Observe(func(_ context.Context, c providers.Call) {
		llmLog.LogLLMCall(c.Provider.Name, c.Provider.Model, c.Operation, c.Duration, c.Err)
		deps.Metrics.RecordLLMCall(c.Provider.Name, c.Err)
	})
	return &Server{
		cfg:       cfg,
		log:       deps.Logger.Component("api"),
		metrics:   deps.Metrics,
		monitor:   mon,
		engine:    answer.New(answer.WithMonitor(mon), answer.WithMatchLimit(cfg.MatchLimit)),
		providers: deps.Providers,
		temporal:  deps.Temporal,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/say_hello", s.handleHello)
	mux.HandleFunc("/process_pdf", s.handleProcessPDF)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/answer", s.handleAnswer)
	mux.HandleFunc("/answer/batch", s.handleAnswerBatch)
	mux.HandleFunc("/ask", s.handleAsk)
	mux.HandleFunc("/ask_llm", s.handleAskLLM)
	mux.HandleFunc("/jobs", s.handleJobs)
	mux.HandleFunc("/jobs/", s.handleJobsScoped)
	mux.Handle("/metrics", s.metrics.Handler())
	return withCORS(s.withObservability(mux))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("no route for %s", r.URL.Path))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"text": "hello world"})
}

func (s *Server) handleProcessPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes()+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	fh, ok := uploadedFile(r.MultipartForm)
	if !ok || fh.Filename == "" {
		writeErr(w, http.StatusBadRequest, errNoFile)
		return
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		writeErr(w, http.StatusBadRequest, errNotPDF)
		return
	}
	if err := util.EnsureDir(s.cfg.UploadDir); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	docID, path, err := saveUploadedFile(s.cfg.UploadDir, fh)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if err := validate.PDF(path).Err(); err != nil {
		_ = os.Remove(path)
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	doc, err := pdftext.ExtractFile(path)
	if err != nil {
		if errors.Is(err, pdftext.ErrNoExtractableText) {
			writeErr(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.PDFPagesTotal.Add(float64(doc.Pages))
	s.log.Info().Str("document_id", docID).Int("pages", doc.Pages).Msg("pdf processed")
	writeJSON(w, http.StatusOK, map[string]any{
		"text":        doc.Text,
		"document_id": docID,
		"filename":    filepath.Base(fh.Filename),
		"pages":       doc.Pages,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	var req struct {
		Text    string `json:"text"`
		Pattern string `json:"pattern"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Text == "" || req.Pattern == "" {
		writeErr(w, http.StatusBadRequest, errors.New("text and pattern are required"))
		return
	}
	matches, err := rxsearch.FindAll(req.Text, req.Pattern)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	s.metrics.RegexSearchHits.Observe(float64(len(matches)))
	writeJSON(w, http.StatusOK, map[string]any{"results": matches})
}

type answerRequest struct {
	Query string `json:"query"`
	Text  string `json:"text"`
	TopK  int    `json:"top_k,omitempty"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	engine, ok := s.engineFor(w, req)
	if !ok {
		return
	}
	res := engine.Answer(req.Query, req.Text)
	if errors.Is(res.Err(), answer.ErrEmptyInput) {
		writeJSON(w, http.StatusBadRequest, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// engineFor validates the request and returns an engine honoring top_k.
// It writes the error response itself and returns false on invalid input.
func (s *Server) engineFor(w http.ResponseWriter, req answerRequest) (*answer.Engine, bool) {
	if strings.TrimSpace(req.Query) != "" {
		if err := validate.Query(req.Query).Err(); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return nil, false
		}
	}
	if req.TopK == 0 {
		return s.engine, true
	}
	if err := validate.TopK(req.TopK).Err(); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return nil, false
	}
	return answer.New(answer.WithMonitor(s.monitor), answer.WithMatchLimit(req.TopK)), true
}

func (s *Server) handleAnswerBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	var req struct {
		Text    string   `json:"text"`
		Queries []string `json:"queries"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" || len(req.Queries) == 0 {
		writeErr(w, http.StatusBadRequest, errors.New("text and queries are required"))
		return
	}
	results, err := s.engine.AnswerBatch(r.Context(), req.Text, req.Queries, s.cfg.BatchWorkers)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

type askResponse struct {
	answer.Result
	Answer       *string `json:"answer"`
	AnswerSource string  `json:"answer_source"`
	Provider     string  `json:"provider,omitempty"`
	Model        string  `json:"model,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	engine, ok := s.engineFor(w, req)
	if !ok {
		return
	}
	res := engine.Answer(req.Query, req.Text)
	out := askResponse{Result: res, AnswerSource: "none"}
	if errors.Is(res.Err(), answer.ErrEmptyInput) {
		writeJSON(w, http.StatusBadRequest, out)
		return
	}
	if !res.Found() {
		writeJSON(w, http.StatusOK, out)
		return
	}

	resp, info, err := s.providers.Generate(r.Context(), providers.GenerateRequest{
		Operation: "ask",
		Prompt:    "Answer the question using only the passages below.\n\nQuestion: " + req.Query,
		Context:   res.Matches,
	})
	text := strings.TrimSpace(resp.Text)
	if err != nil || text == "" {
		if err != nil {
			s.log.Warn().Err(err).Msg("llm unavailable, using extractive answer")
		}
		out.Answer = res.DirectAnswer
		out.AnswerSource = "extractive"
		writeJSON(w, http.StatusOK, out)
		return
	}
	out.Answer = &text
	out.AnswerSource = "llm"
	out.Provider = info.Name
	out.Model = info.Model
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAskLLM(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	var req struct {
		Prompt string `json:"prompt"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeErr(w, http.StatusBadRequest, errors.New("prompt is required"))
		return
	}
	resp, info, err := s.providers.Generate(r.Context(), providers.GenerateRequest{
		Operation: "ask_llm",
		Prompt:    req.Prompt,
		MaxTokens: s.cfg.LLMMaxTokens,
	})
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"response": resp.Text,
		"provider": info.Name,
		"model":    info.Model,
	})
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	if s.temporal == nil {
		writeErr(w, http.StatusServiceUnavailable, errJobsDisabled)
		return
	}
	var req struct {
		Document string   `json:"document"`
		Text     string   `json:"text"`
		Queries  []string `json:"queries"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Queries) == 0 || (strings.TrimSpace(req.Document) == "" && strings.TrimSpace(req.Text) == "") {
		writeErr(w, http.StatusBadRequest, errors.New("queries and a document or text are required"))
		return
	}
	input := workflows.BatchAnswerInput{JobID: uuid.NewString(), Text: req.Text, Queries: req.Queries}
	if req.Document != "" {
		path := documentPath(s.cfg.UploadDir, req.Document)
		if _, err := os.Stat(path); err != nil {
			writeErr(w, http.StatusNotFound, fmt.Errorf("document %s: %w", req.Document, err))
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		input.DocumentPath = abs
	}

	wfID := workflows.WorkflowID(input.JobID)
	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                    wfID,
		TaskQueue:             s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}, workflows.BatchAnswerWorkflow, input)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	s.log.Info().Str("job_id", input.JobID).Int("queries", len(input.Queries)).Msg("batch job started")
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":      input.JobID,
		"workflow_id": we.GetID(),
		"run_id":      we.GetRunID(),
	})
}

func (s *Server) handleJobsScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/jobs/"), "/"), "/")
	jobID := parts[0]
	if jobID == "" || len(parts) > 2 || (len(parts) == 2 && parts[1] != "result") {
		writeErr(w, http.StatusNotFound, fmt.Errorf("no route for %s", r.URL.Path))
		return
	}
	if len(parts) == 2 {
		var stored map[string]any
		if err := util.ReadJSON(activities.AnswersPath(s.cfg.DataOutRoot, jobID), &stored); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				writeErr(w, http.StatusNotFound, fmt.Errorf("job %s has no result yet", jobID))
				return
			}
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, stored)
		return
	}

	if s.temporal == nil {
		writeErr(w, http.StatusServiceUnavailable, errJobsDisabled)
		return
	}
	resp, err := s.temporal.QueryWorkflow(r.Context(), workflows.WorkflowID(jobID), "", workflows.QueryGetProgress)
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	var progress workflows.BatchAnswerProgress
	if err := resp.Get(&progress); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// documentPath maps a document id returned by /process_pdf to its stored file.
func documentPath(uploadDir, id string) string {
	id = strings.TrimSuffix(filepath.Base(id), ".pdf")
	return util.SafeJoin(uploadDir, id+".pdf")
}

func saveUploadedFile(dstDir string, fh *multipart.FileHeader) (docID, path string, err error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(dstDir, "upload-*.pdf")
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), src); err != nil {
		return "", "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", "", err
	}

	docID = fmt.Sprintf("%x", h.Sum(nil))
	finalPath := documentPath(dstDir, docID)
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return "", "", fmt.Errorf("atomic move upload: %w", err)
	}
	return docID, finalPath, nil
}

func uploadedFile(form *multipart.Form) (*multipart.FileHeader, bool) {
	if files := form.File["file"]; len(files) > 0 {
		return files[0], true
	}
	for _, v := range form.File {
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("%w: %v", errInvalidJSON, err))
		return false
	}
	return true
}

// Shutdown releases the Temporal client, if any.
func (s *Server) Shutdown(_ context.Context) {
	if s.temporal != nil {
		s.temporal.Close()
	}
}
