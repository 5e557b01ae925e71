package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rules"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument marks a rules document that failed schema or semantic validation
var ErrInvalidDocument = errors.New("invalid rules document")

//go:embed defaults/rules.yaml
var defaultRules []byte

// DefaultRulesYAML returns the embedded special-pay rules document
func DefaultRulesYAML() []byte {
	return append([]byte(nil), defaultRules...)
}

// RulesDocument is the on-disk form of a rules.yaml file
type RulesDocument struct {
	Version int                 `yaml:"version"`
	Wizards []wizardDoc         `yaml:"wizards"`
	Catalog []rules.PayTypeInfo `yaml:"catalog"`
	Rules   []ruleDoc           `yaml:"rules"`
}

type wizardDoc struct {
	ID          string           `yaml:"id"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	PayTypes    []domain.PayType `yaml:"pay_types"`
	Steps       []stepDoc        `yaml:"steps"`
}

type stepDoc struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Questions   []questionDoc `yaml:"questions"`
}

type questionDoc struct {
	domain.Question `yaml:",inline"`
	ShowIf          *conditionDoc `yaml:"show_if,omitempty"`
}

type ruleDoc struct {
	domain.Rule `yaml:",inline"`
	Conditions  conditionDoc `yaml:"conditions"`
}

// RuleBundle is a validated rules document converted into domain types
type RuleBundle struct {
	Wizards []domain.WizardConfig
	Rules   *rules.RuleSet
	Catalog *rules.Catalog
}

// Wizard returns the wizard with the given id
func (b *RuleBundle) Wizard(id string) (*domain.WizardConfig, bool) {
	for i := range b.Wizards {
		if b.Wizards[i].ID == id {
			return &b.Wizards[i], true
		}
	}
	return nil, false
}

// NewEngine builds a rule engine over the bundle's rules and catalog
func (b *RuleBundle) NewEngine() *rules.Engine {
	return rules.NewEngine(b.Rules, b.Catalog)
}

// RulesParser handles parsing of rules documents
type RulesParser struct {
	formulas *rules.FormulaRegistry
}

// NewRulesParser creates a parser that checks formula references against the built-in registry
func NewRulesParser() *RulesParser {
	return &RulesParser{formulas: rules.NewFormulaRegistry()}
}

// LoadDefault parses the embedded rules document
func (rp *RulesParser) LoadDefault() (*RuleBundle, error) {
	return rp.Parse(defaultRules)
}

// LoadFromFile loads a rules document from a YAML or JSON file
func (rp *RulesParser) LoadFromFile(filename string) (*RuleBundle, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	bundle, err := rp.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return bundle, nil
}

// Parse validates a document against the schema, decodes it and checks cross references
func (rp *RulesParser) Parse(data []byte) (*RuleBundle, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var doc RulesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	bundle, err := rp.convert(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := rp.ValidateBundle(bundle); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return bundle, nil
}

func (rp *RulesParser) convert(doc *RulesDocument) (*RuleBundle, error) {
	bundle := &RuleBundle{Catalog: rules.NewCatalog(doc.Catalog...)}

	var allQuestions []domain.Question
	for wi, w := range doc.Wizards {
		cfg := domain.WizardConfig{
			ID:          w.ID,
			Title:       w.Title,
			Description: w.Description,
			PayTypes:    w.PayTypes,
		}
		for si, s := range w.Steps {
			step := domain.WizardStep{ID: s.ID, Title: s.Title, Description: s.Description}
			for qi, qd := range s.Questions {
				q := qd.Question
				if q.PayType == "" {
					q.PayType = domain.GeneralPayType
				}
				if qd.ShowIf != nil {
					path := fmt.Sprintf("wizards[%d].steps[%d].questions[%d].show_if", wi, si, qi)
					cond, err := qd.ShowIf.toCondition(path)
					if err != nil {
						return nil, err
					}
					q.ShowIf = cond
				}
				step.Questions = append(step.Questions, q)
				allQuestions = append(allQuestions, q)
			}
			cfg.Steps = append(cfg.Steps, step)
		}
		bundle.Wizards = append(bundle.Wizards, cfg)
	}

	ruleList := make([]domain.Rule, 0, len(doc.Rules))
	for i, rd := range doc.Rules {
		conds, err := rd.Conditions.ruleConditions(fmt.Sprintf("rules[%d].conditions", i))
		if err != nil {
			return nil, err
		}
		r := rd.Rule
		r.Conditions = conds
		ruleList = append(ruleList, r)
	}
	bundle.Rules = rules.NewRuleSet(ruleList, allQuestions...)
	return bundle, nil
}

// ValidateBundle checks the references a schema cannot express: unique ids, branch targets,
// condition question ids, option lists, patterns and formula specs
func (rp *RulesParser) ValidateBundle(b *RuleBundle) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	known := make(map[string]bool)
	wizardIDs := make(map[string]bool)
	for _, w := range b.Wizards {
		if wizardIDs[w.ID] {
			add("duplicate wizard id %q", w.ID)
		}
		wizardIDs[w.ID] = true

		ids := make(map[string]bool)
		for _, q := range w.Questions() {
			if ids[q.ID] {
				add("wizard %s: duplicate question id %q", w.ID, q.ID)
			}
			ids[q.ID] = true
			known[q.ID] = true
		}
		for _, q := range w.Questions() {
			rp.validateQuestion(w.ID, q, ids, add)
		}
	}

	ruleIDs := make(map[string]bool)
	for _, pt := range b.Rules.PayTypes() {
		for _, r := range b.Rules.RulesFor(pt) {
			if ruleIDs[r.ID] {
				add("duplicate rule id %q", r.ID)
			}
			ruleIDs[r.ID] = true
			if !r.Result.Status.Valid() {
				add("rule %s: unknown status %q", r.ID, r.Result.Status)
			}
			if r.Result.Amount != nil && r.Result.Amount.IsNegative() {
				add("rule %s: amount cannot be negative", r.ID)
			}
			if r.Result.AmountFormula != "" {
				if _, err := rp.formulas.Parse(r.Result.AmountFormula); err != nil {
					add("rule %s: %v", r.ID, err)
				}
			}
			for _, leaf := range domain.Leaves(r.Conditions) {
				if !known[leaf.QuestionID] {
					add("rule %s: unknown question %q", r.ID, leaf.QuestionID)
				}
			}
		}
	}

	for _, info := range b.Catalog.All() {
		if rng := info.AmountRange; rng != nil && rng.Min.GreaterThan(rng.Max) {
			add("catalog %s: amount range min exceeds max", info.PayType)
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (rp *RulesParser) validateQuestion(wizardID string, q domain.Question, ids map[string]bool, add func(string, ...any)) {
	switch q.Type {
	case domain.QuestionSelect, domain.QuestionMultiSelect:
		if len(q.Options) == 0 {
			add("wizard %s: question %s needs options", wizardID, q.ID)
		}
	}
	if q.NextQuestionID != "" && !ids[q.NextQuestionID] {
		add("wizard %s: question %s: next_question_id %q not found", wizardID, q.ID, q.NextQuestionID)
	}
	for value, target := range q.SkipTo {
		if !ids[target] {
			add("wizard %s: question %s: skip_to[%s] %q not found", wizardID, q.ID, value, target)
		}
	}
	for _, leaf := range domain.Leaves(q.ShowIf) {
		if !ids[leaf.QuestionID] {
			add("wizard %s: question %s: show_if references unknown question %q", wizardID, q.ID, leaf.QuestionID)
		}
	}
	if v := q.Validation; v != nil {
		if v.Pattern != "" {
			if _, err := regexp.Compile(v.Pattern); err != nil {
				add("wizard %s: question %s: invalid pattern: %v", wizardID, q.ID, err)
			}
		}
		if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
			add("wizard %s: question %s: min exceeds max", wizardID, q.ID)
		}
	}
}
