// Package validator checks page metadata records against the SEO rule set
// and normalizes them.
//
// Rules are table-driven: each field maps to one Rule variant, and the
// Validator runs all of them in order. Adding a rule never requires
// touching the aggregation code.
package validator

import (
	"github.com/dtnitsch/seo-meta-lint/models"
)

type Validator struct {
	rules      []Rule
	normalizer Normalizer
	workers    int
}

// Option configures a Validator.
type Option func(*Validator)

// WithRules appends rules after the defaults.
func WithRules(rules ...Rule) Option {
	return func(v *Validator) { v.rules = append(v.rules, rules...) }
}

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n Normalizer) Option {
	return func(v *Validator) { v.normalizer = n }
}

// WithWorkers sets the batch worker count.
func WithWorkers(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.workers = n
		}
	}
}

// New builds a Validator with the default rules for the given limits.
func New(limits models.Limits, opts ...Option) *Validator {
	v := &Validator{
		rules:   DefaultRules(limits),
		workers: 4,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewFromConfig builds a Validator from runtime configuration.
func NewFromConfig(cfg models.Config) *Validator {
	return New(cfg.Limits,
		WithNormalizer(Normalizer{
			PostContentTypes: cfg.PostContentTypes,
			SiteLang:         cfg.Site.Lang,
		}),
		WithWorkers(cfg.Workers),
	)
}

// Rules returns the active rules in evaluation order.
func (v *Validator) Rules() []Rule {
	return append([]Rule(nil), v.rules...)
}

// Normalize applies the validator's normalizer.
func (v *Validator) Normalize(meta models.PageMetadata) models.PageMetadata {
	return v.normalizer.Normalize(meta)
}

// Validate runs every rule against meta and returns the findings in rule
// order together with the normalized record. Rules are independent: one
// field's findings never stop the others from running.
func (v *Validator) Validate(meta models.PageMetadata) models.ValidationReport {
	findings := []models.Finding{}
	for _, r := range v.rules {
		findings = append(findings, r.Check(meta)...)
	}
	return models.ValidationReport{
		Normalized: v.normalizer.Normalize(meta),
		Findings:   findings,
	}
}
