//go:build !integration

package constants

import (
	"regexp"
	"testing"
)

func TestTriggerNodeTypes(t *testing.T) {
	if len(TriggerNodeTypes) == 0 {
		t.Error("TriggerNodeTypes should not be empty")
	}

	// webhook is the canonical trigger and must stay first-class
	required := []string{"webhook", "cron", "scheduleTrigger", "manualTrigger"}
	typeSet := make(map[string]bool)
	for _, typ := range TriggerNodeTypes {
		typeSet[typ] = true
	}
	for _, want := range required {
		if !typeSet[want] {
			t.Errorf("TriggerNodeTypes missing required type: %q", want)
		}
	}
}

func TestFunctionNodeTypesAreKnown(t *testing.T) {
	known := make(map[string]bool)
	for _, typ := range KnownNodeTypes {
		known[typ] = true
	}
	for _, typ := range FunctionNodeTypes {
		if !known[typ] {
			t.Errorf("function node type %q must also be listed in KnownNodeTypes", typ)
		}
	}
	for _, typ := range TriggerNodeTypes {
		if !known[typ] {
			t.Errorf("trigger node type %q must also be listed in KnownNodeTypes", typ)
		}
	}
}

func TestCompanionDocs(t *testing.T) {
	if len(CompanionDocs) == 0 {
		t.Fatal("CompanionDocs should not be empty")
	}

	var requiredCount int
	for _, doc := range CompanionDocs {
		if doc.Required {
			requiredCount++
			if doc.Name != "README.md" {
				t.Errorf("only README.md should be required, got %q", doc.Name)
			}
		}
	}
	if requiredCount != 1 {
		t.Errorf("exactly one companion doc should be required, got %d", requiredCount)
	}
}

func TestReadmeSectionPatternsCompile(t *testing.T) {
	for _, section := range ReadmeSections {
		re, err := regexp.Compile(section.Pattern)
		if err != nil {
			t.Fatalf("section %q pattern does not compile: %v", section.Label, err)
		}
		if section.Label == "quickstart" {
			if !re.MatchString("## Quick Start\n") {
				t.Error("quickstart pattern should match '## Quick Start' header")
			}
			if re.MatchString("Quick start is described elsewhere\n") {
				t.Error("quickstart pattern should only match markdown headers")
			}
		}
	}
}

func TestCodeParameterKeys(t *testing.T) {
	if len(CodeParameterKeys) == 0 {
		t.Fatal("CodeParameterKeys should not be empty")
	}
	if CodeParameterKeys[0] != "functionCode" {
		t.Errorf("functionCode should be the first code parameter probed, got %q", CodeParameterKeys[0])
	}
}
