package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableSessionEvents = "session_events"
	tableAnswerEvents  = "answer_events"
	tableResults       = "diagnosis_results"
	tableLLMRequests   = "llm_request_events"
)

// eventColumns are shared by every append-only event table.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

var (
	sessionEventsColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "user_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "bank_version", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "answered", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_ms", Type: field.TypeInt64, Default: 0},
	)
	sessionEventsTable = &schema.Table{
		Name:       tableSessionEvents,
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventsColumns[3]}},
		},
	}

	answerEventsColumns = append(eventColumns(),
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_id", Type: field.TypeString},
		&schema.Column{Name: "option_id", Type: field.TypeString},
		&schema.Column{Name: "answer_seq", Type: field.TypeInt},
		&schema.Column{Name: "contributions", Type: field.TypeJSON, Nullable: true},
		&schema.Column{Name: "response_ms", Type: field.TypeInt64, Default: 0},
	)
	answerEventsTable = &schema.Table{
		Name:       tableAnswerEvents,
		Columns:    answerEventsColumns,
		PrimaryKey: []*schema.Column{answerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id_answer_seq", Unique: true, Columns: []*schema.Column{answerEventsColumns[3], answerEventsColumns[6]}},
		},
	}

	resultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "session_id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString, Default: ""},
		{Name: "primary_type", Type: field.TypeString},
		{Name: "secondary_type", Type: field.TypeString, Default: ""},
		{Name: "confidence", Type: field.TypeInt},
		{Name: "answered_count", Type: field.TypeInt},
		{Name: "elapsed_ms", Type: field.TypeInt64},
		{Name: "completed_at", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	resultsTable = &schema.Table{
		Name:       tableResults,
		Columns:    resultsColumns,
		PrimaryKey: []*schema.Column{resultsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "diagnosisresult_user_id_completed_at", Columns: []*schema.Column{resultsColumns[2], resultsColumns[8]}},
		},
	}

	llmRequestsColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmRequestsTable = &schema.Table{
		Name:       tableLLMRequests,
		Columns:    llmRequestsColumns,
		PrimaryKey: []*schema.Column{llmRequestsColumns[0]},
	}
)

// Tables lists every table the store migrates.
var Tables = []*schema.Table{
	sessionEventsTable,
	answerEventsTable,
	resultsTable,
	llmRequestsTable,
}
