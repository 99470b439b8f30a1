package checks

import (
	"context"

	"github.com/bartekus/skillcheck/internal/conformance"
	"github.com/bartekus/skillcheck/internal/finding"
	"github.com/bartekus/skillcheck/internal/runner"
)

// CheckParse identifies findings for skill documents that failed to parse.
const CheckParse = "catalog:parse"

type CatalogParse struct {
	id string
}

func NewCatalogParse() runner.Check {
	return &CatalogParse{id: CheckParse}
}

func (s *CatalogParse) ID() string { return s.id }

func (s *CatalogParse) Run(ctx context.Context, deps *runner.Deps) (runner.CheckResult, error) {
	var fs finding.List
	for _, perr := range deps.ParseFailures {
		fs.Add(finding.Errorf(s.id, finding.At(perr.Path), "failed to parse SKILL.md (%v)", perr.Err))
	}
	return runner.ResultFrom(s.id, fs), nil
}

type SkillsMetadata struct {
	id    string
	rules conformance.MetadataRules
}

func NewSkillsMetadata() runner.Check {
	return &SkillsMetadata{id: conformance.CheckMetadata, rules: conformance.DefaultMetadataRules()}
}

func (s *SkillsMetadata) ID() string { return s.id }

func (s *SkillsMetadata) Run(ctx context.Context, deps *runner.Deps) (runner.CheckResult, error) {
	v := conformance.NewMetadataValidator(s.rules)
	var fs finding.List
	for _, skill := range deps.Catalog.Skills() {
		fs.Add(v.Validate(skill)...)
	}
	return runner.ResultFrom(s.id, fs), nil
}

type SkillsStructure struct {
	id string
}

func NewSkillsStructure() runner.Check {
	return &SkillsStructure{id: conformance.CheckStructure}
}

func (s *SkillsStructure) ID() string { return s.id }

func (s *SkillsStructure) Run(ctx context.Context, deps *runner.Deps) (runner.CheckResult, error) {
	rules := conformance.DefaultStructureRules()
	if deps.MaxLines > 0 {
		rules.MaxLines = deps.MaxLines
	}
	v := conformance.NewStructureValidator(rules)

	var fs finding.List
	for _, skill := range deps.Catalog.Skills() {
		fs.Add(v.Validate(skill)...)
	}
	return runner.ResultFrom(s.id, fs), nil
}

type UniqueNames struct {
	id string
}

func NewUniqueNames() runner.Check {
	return &UniqueNames{id: conformance.CheckUniqueNames}
}

func (s *UniqueNames) ID() string { return s.id }

func (s *UniqueNames) Run(ctx context.Context, deps *runner.Deps) (runner.CheckResult, error) {
	return runner.ResultFrom(s.id, conformance.UniqueNames(deps.Catalog.Skills())), nil
}
