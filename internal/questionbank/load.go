package questionbank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed bank.schema.json
var bankSchemaJSON []byte

const bankSchemaURL = "schema://learntype/bank.schema.json"

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

// fileBank is the on-disk document shape. YAML is a superset of JSON, so
// one decoder handles both.
type fileBank struct {
	Version   string         `yaml:"version" json:"version"`
	Questions []fileQuestion `yaml:"questions" json:"questions"`
}

type fileQuestion struct {
	ID        string                    `yaml:"id" json:"id"`
	Text      string                    `yaml:"text" json:"text"`
	Kind      Kind                      `yaml:"kind" json:"kind"`
	Order     int                       `yaml:"order" json:"order"`
	Options   []fileOption              `yaml:"options" json:"options"`
	Condition map[string]fileConstraint `yaml:"condition,omitempty" json:"condition,omitempty"`
}

type fileOption struct {
	ID      string         `yaml:"id" json:"id"`
	Text    string         `yaml:"text" json:"text"`
	Weights map[string]int `yaml:"weights,omitempty" json:"weights,omitempty"`
}

type fileConstraint struct {
	Min *int `yaml:"min,omitempty" json:"min,omitempty"`
	Max *int `yaml:"max,omitempty" json:"max,omitempty"`
}

// LoadFile reads a bank document from path.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", path, err)
	}
	return b, nil
}

// Parse decodes a YAML or JSON bank document, checks it against the bank
// schema, checks its version is valid semver, and builds the Bank.
func Parse(data []byte) (*Bank, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc fileBank
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if !semver.IsValid(doc.Version) {
		return nil, &ConfigError{Problems: []string{
			fmt.Sprintf("version %q is not a valid semantic version (want e.g. v1.2.0)", doc.Version),
		}}
	}

	questions := make([]Question, len(doc.Questions))
	for i, fq := range doc.Questions {
		questions[i] = fq.toQuestion()
	}
	return New(semver.Canonical(doc.Version), questions)
}

// Marshal encodes b as a YAML bank document that Parse accepts.
func Marshal(b *Bank) ([]byte, error) {
	doc := fileBank{Version: b.Version()}
	for _, q := range append(b.CoreQuestions(), b.FollowupQuestions()...) {
		doc.Questions = append(doc.Questions, fromQuestion(q))
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	return buf.Bytes(), nil
}

// CompareVersions orders two bank versions by semver precedence.
func CompareVersions(a, b string) int {
	return semver.Compare(a, b)
}

func validateDocument(raw any) error {
	schema, err := compiledBankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON-native values.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("document is not JSON-compatible: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return fmt.Errorf("document is not JSON-compatible: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return &ConfigError{Problems: []string{fmt.Sprintf("schema: %v", err)}}
	}
	return nil
}

func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(bankSchemaJSON))
		if err != nil {
			bankSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			bankSchemaErr = err
			return
		}
		bankSchema, bankSchemaErr = c.Compile(bankSchemaURL)
	})
	return bankSchema, bankSchemaErr
}

func (fq fileQuestion) toQuestion() Question {
	q := Question{
		ID:    fq.ID,
		Text:  fq.Text,
		Kind:  fq.Kind,
		Order: fq.Order,
	}
	for _, fo := range fq.Options {
		q.Options = append(q.Options, Option{ID: fo.ID, Text: fo.Text, Weights: Weights(fo.Weights)})
	}
	if len(fq.Condition) > 0 {
		q.Condition = make(Condition, len(fq.Condition))
		for dim, fc := range fq.Condition {
			q.Condition[dim] = Constraint{Min: fc.Min, Max: fc.Max}
		}
	}
	return q
}

func fromQuestion(q Question) fileQuestion {
	fq := fileQuestion{
		ID:    q.ID,
		Text:  q.Text,
		Kind:  q.Kind,
		Order: q.Order,
	}
	for _, o := range q.Options {
		fq.Options = append(fq.Options, fileOption{ID: o.ID, Text: o.Text, Weights: o.Weights})
	}
	if len(q.Condition) > 0 {
		fq.Condition = make(map[string]fileConstraint, len(q.Condition))
		for dim, c := range q.Condition {
			fq.Condition[dim] = fileConstraint{Min: c.Min, Max: c.Max}
		}
	}
	return fq
}
