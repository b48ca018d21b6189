package nlquery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"intellidash/domain"
	"intellidash/pkg/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/tools/sqldatabase"
)

var (
	ErrEmptySQL        = errors.New("model returned empty SQL")
	ErrEmptyCompletion = errors.New("model returned no choices")
	ErrNotReadOnly     = errors.New("only a single SELECT statement is allowed")
	ErrNoChatModel     = errors.New("chat model is required")
	ErrNoSQLDatabase   = errors.New("sql database is required")
)

// SQLDatabase is a langchaingo SQL engine that can also return rows keyed by
// column.
type SQLDatabase interface {
	sqldatabase.Engine
	Run(ctx context.Context, query string) ([]map[string]any, error)
}

type AgentConfig struct {
	MaxRows     int
	SampleRows  int
	Temperature float64
}

const systemTemplate = `You are an agent designed to interact with a SQL database.
Given an input question, create a syntactically correct {{.dialect}} query to run.
{{- if .top_k}}
Unless the user specifies a specific number of examples they wish to obtain, always limit your query to at most {{.top_k}} results.
{{- end}}
Never query for all the columns from a specific table, only ask for the relevant columns given the question.
DO NOT make any DML statements (INSERT, UPDATE, DELETE, DROP etc.) to the database.
Return ONLY SQL. No markdown, no explanation.`

const humanTemplate = `Only use the following tables:
{{.table_info}}
Question: {{.input}}`

// SQLAgent turns a question into one read-only query, runs it and returns
// the rows.
type SQLAgent struct {
	model  llms.Model
	db     SQLDatabase
	schema *sqldatabase.SQLDatabase
	system prompts.PromptTemplate
	human  prompts.PromptTemplate
	cfg    AgentConfig
}

func NewSQLAgent(model llms.Model, db SQLDatabase, cfg AgentConfig) (*SQLAgent, error) {
	if model == nil {
		return nil, ErrNoChatModel
	}
	if db == nil {
		return nil, ErrNoSQLDatabase
	}

	schema, err := sqldatabase.NewSQLDatabase(db, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap sql database: %w", err)
	}
	schema.SampleRowsNumber = max(cfg.SampleRows, 0)

	return &SQLAgent{
		model:  model,
		db:     db,
		schema: schema,
		system: prompts.NewPromptTemplate(systemTemplate, []string{"dialect", "top_k"}),
		human:  prompts.NewPromptTemplate(humanTemplate, []string{"table_info", "input"}),
		cfg:    cfg,
	}, nil
}

func (a *SQLAgent) Invoke(ctx context.Context, prompt string) (domain.AgentOutput, error) {
	messages, err := a.messages(ctx, prompt)
	if err != nil {
		return domain.AgentOutput{}, err
	}

	resp, err := a.model.GenerateContent(ctx, messages, llms.WithTemperature(a.cfg.Temperature))
	if err != nil {
		return domain.AgentOutput{}, err
	}
	if len(resp.Choices) == 0 {
		return domain.AgentOutput{}, ErrEmptyCompletion
	}

	query, err := readOnlyQuery(stripMarkdownSQL(resp.Choices[0].Content))
	if err != nil {
		return domain.AgentOutput{}, err
	}
	logger.Debug("sql agent generated query", "sql", query)

	rows, err := a.db.Run(ctx, query)
	if err != nil {
		return domain.AgentOutput{SQL: query}, err
	}
	if a.cfg.MaxRows > 0 && len(rows) > a.cfg.MaxRows {
		rows = rows[:a.cfg.MaxRows]
	}

	return domain.AgentOutput{SQL: query, Rows: rows}, nil
}

func (a *SQLAgent) messages(ctx context.Context, prompt string) ([]llms.MessageContent, error) {
	// Table names come from ctx so that every lookup stays on the request session.
	tables, err := a.db.TableNames(ctx)
	if err != nil {
		return nil, err
	}

	tableInfo, err := a.schema.TableInfo(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to describe tables: %w", err)
	}

	system, err := a.system.Format(map[string]any{
		"dialect": a.db.Dialect(),
		"top_k":   a.cfg.MaxRows,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format system prompt: %w", err)
	}

	human, err := a.human.Format(map[string]any{
		"table_info": tableInfo,
		"input":      prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format question prompt: %w", err)
	}

	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, human),
	}, nil
}

func stripMarkdownSQL(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```sql")
		trimmed = strings.TrimPrefix(trimmed, "```SQL")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		return strings.TrimSpace(trimmed)
	}
	return trimmed
}

var writeKeywords = map[string]struct{}{
	"INSERT": {}, "UPDATE": {}, "DELETE": {}, "MERGE": {}, "UPSERT": {},
	"DROP": {}, "ALTER": {}, "CREATE": {}, "TRUNCATE": {}, "RENAME": {},
	"GRANT": {}, "REVOKE": {}, "ATTACH": {}, "DETACH": {}, "PRAGMA": {},
	"VACUUM": {}, "REINDEX": {}, "COPY": {}, "CALL": {}, "EXEC": {},
}

// readOnlyQuery accepts one SELECT or WITH statement and drops a trailing
// semicolon. It only catches obvious mistakes. The data is protected by the
// read-only request transaction, which database.Release always rolls back;
// sqlite has no read-only transactions, so there the rollback is all there is.
func readOnlyQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	query = strings.TrimSpace(strings.TrimRight(query, "; \t\n"))
	if query == "" {
		return "", ErrEmptySQL
	}

	words, multiple := scanStatement(query)
	if multiple || len(words) == 0 {
		return "", ErrNotReadOnly
	}

	switch words[0] {
	case "SELECT", "WITH":
	default:
		return "", ErrNotReadOnly
	}

	for _, word := range words[1:] {
		if _, ok := writeKeywords[word]; ok {
			return "", ErrNotReadOnly
		}
	}

	return query, nil
}

// scanStatement returns the upper-cased bare words of query, skipping quoted
// literals, quoted identifiers and comments. multiple reports a semicolon
// followed by more SQL.
func scanStatement(query string) (words []string, multiple bool) {
	var (
		word      strings.Builder
		semicolon bool
	)
	flush := func() {
		if word.Len() == 0 {
			return
		}
		if semicolon {
			multiple = true
		}
		words = append(words, strings.ToUpper(word.String()))
		word.Reset()
	}

	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			flush()
			// a doubled quote closes and reopens, which skips the same span
			end := strings.IndexByte(query[i+1:], c)
			if end < 0 {
				return words, multiple
			}
			i += end + 1
		case c == '-' && strings.HasPrefix(query[i:], "--"):
			flush()
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				return words, multiple
			}
			i += end
		case c == '/' && strings.HasPrefix(query[i:], "/*"):
			flush()
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				return words, multiple
			}
			i += end + 3
		case c == ';':
			flush()
			semicolon = true
		case c == '_' || c >= 0x80 || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z'):
			word.WriteByte(c)
		default:
			flush()
		}
	}
	flush()

	return words, multiple
}
