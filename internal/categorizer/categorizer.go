// Package categorizer assigns a category and necessity to imported bank
// entries by keyword matching against their descriptions.
package categorizer

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

//go:embed default_rules.yaml
var defaultRules []byte

// Rule maps keywords to a category and necessity.
type Rule struct {
	Category  models.Category  `yaml:"category"`
	Necessity models.Necessity `yaml:"necessity"`
	Keywords  []string         `yaml:"keywords"`
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Categorizer matches descriptions against an ordered rule list.
type Categorizer struct {
	rules  []Rule
	logger logging.Logger
}

// New loads rules from rulesFile, or the embedded defaults when rulesFile is empty.
func New(rulesFile string, logger logging.Logger) (*Categorizer, error) {
	data := defaultRules
	source := "embedded"
	if rulesFile != "" {
		var err error
		data, err = os.ReadFile(rulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read rules file %s: %w", rulesFile, err)
		}
		source = rulesFile
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("invalid rules in %s: %w", source, err)
	}

	logger.Debug("Loaded categorization rules",
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return NewWithRules(rules, logger), nil
}

// NewWithRules creates a Categorizer from already validated rules.
func NewWithRules(rules []Rule, logger logging.Logger) *Categorizer {
	return &Categorizer{rules: rules, logger: logger}
}

// ParseRules decodes and validates a YAML rule document. Keywords are
// lower-cased; blank keywords are dropped.
func ParseRules(data []byte) ([]Rule, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, r := range file.Rules {
		if !r.Category.IsValid() {
			return nil, fmt.Errorf("rule %d: unknown category '%s'", i, r.Category)
		}
		if r.Necessity == "" {
			r.Necessity = models.NecessityLow
		}
		if !r.Necessity.IsValid() {
			return nil, fmt.Errorf("rule %d: unknown necessity '%s'", i, r.Necessity)
		}
		keywords := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}
		r.Keywords = keywords
		rules = append(rules, r)
	}
	return rules, nil
}

// Rules returns a copy of the loaded rules.
func (c *Categorizer) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Categorize returns the category and necessity of the first rule with a
// keyword contained in description, or other/low when none matches.
func (c *Categorizer) Categorize(description string) (models.Category, models.Necessity) {
	text := strings.ToLower(description)
	if strings.TrimSpace(text) == "" {
		return models.CategoryOther, models.NecessityLow
	}

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				c.logger.Debug("Description matched keyword",
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: logging.FieldCategory, Value: rule.Category.String()})
				return rule.Category, rule.Necessity
			}
		}
	}
	return models.CategoryOther, models.NecessityLow
}
