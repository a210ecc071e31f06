// Package mcpserver exposes the answer engine and regex search as MCP tools.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"docquery/internal/answer"
	"docquery/internal/rxsearch"
)

type AnswerArgs struct {
	Query string `json:"query" jsonschema:"natural-language question"`
	Text  string `json:"text" jsonschema:"document text to search"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"number of ranked matches to return"`
}

type AnswerOutput struct {
	Found        bool     `json:"found"`
	DirectAnswer string   `json:"direct_answer,omitempty"`
	Matches      []string `json:"matches"`
	PatternUsed  string   `json:"pattern_used"`
	Error        string   `json:"error,omitempty"`
}

type RegexArgs struct {
	Text    string `json:"text" jsonschema:"text to search"`
	Pattern string `json:"pattern" jsonschema:"RE2 regular expression; ^ and $ match at line boundaries"`
}

type RegexOutput struct {
	Matches []rxsearch.Match `json:"matches"`
}

// New builds an MCP server with the answer_query and regex_search tools.
func New(engine *answer.Engine, version string) *mcp.Server {
	if engine == nil {
		engine = answer.New()
	}
	server := mcp.NewServer(&mcp.Implementation{Name: "docquery", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "answer_query",
		Description: "Answer a question from a text by extracting the most relevant sentence or paragraph.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AnswerArgs) (*mcp.CallToolResult, AnswerOutput, error) {
		e := engine
		if args.TopK > 0 {
			e = answer.New(answer.WithMatchLimit(args.TopK))
		}
		return nil, toOutput(e.Answer(args.Query, args.Text)), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "regex_search",
		Description: "Find all matches of a regular expression in a text, with character offsets.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RegexArgs) (*mcp.CallToolResult, RegexOutput, error) {
		matches, err := rxsearch.FindAll(args.Text, args.Pattern)
		if err != nil {
			return nil, RegexOutput{}, err
		}
		return nil, RegexOutput{Matches: matches}, nil
	})

	return server
}

// Run serves over stdio until ctx is done or the client disconnects.
func Run(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func toOutput(res answer.Result) AnswerOutput {
	out := AnswerOutput{
		Found:       res.Found(),
		Matches:     res.Matches,
		PatternUsed: res.PatternUsed.String(),
	}
	if out.Matches == nil {
		out.Matches = []string{}
	}
	if res.DirectAnswer != nil {
		out.DirectAnswer = *res.DirectAnswer
	}
	if res.Error != nil {
		out.Error = *res.Error
	}
	return out
}
