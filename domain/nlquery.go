package domain

// NLQueryResult is the outcome of a natural-language query: either
// NLQuerySuccess or NLQueryFailure.
type NLQueryResult interface {
	isNLQueryResult()
}

type NLQuerySuccess struct {
	Data any
}

type NLQueryFailure struct {
	Message string
}

func (NLQuerySuccess) isNLQueryResult() {}
func (NLQueryFailure) isNLQueryResult() {}

// AgentOutput is what the SQL agent produced for one prompt.
type AgentOutput struct {
	SQL  string
	Rows []map[string]any
}
