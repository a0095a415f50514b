package validation

import (
	"regexp"
	"strings"
)

// # Pattern library
//
// A fixed table of regular-expression rules grouped into tiers. Credential,
// transport, and placeholder tiers scan the raw serialized document;
// injection and performance tiers scan only the code parameters of
// function-kind nodes, which keeps dangerous-pattern matching away from
// legitimate configuration strings.
//
// Go's regexp engine has no lookaround, so exemptions (placeholder values,
// local endpoints) are expressed as SkipValues filters applied to the
// captured value instead of inside the pattern.

// Tier groups rules by concern and scan scope.
type Tier string

const (
	TierHigh         Tier = "high"
	TierMedium       Tier = "medium"
	TierPlaceholder  Tier = "placeholder"
	TierInjection    Tier = "injection"
	TierPerformance  Tier = "performance"
	TierGoodPractice Tier = "good-practice"
)

// Rule is one compiled pattern with its classification. ValueGroup names the
// submatch that holds the sensitive value (0 = whole match); findings are
// deduplicated on that value so one secret is reported once, at the severity
// of the first tier that matched it.
type Rule struct {
	ID          string
	Tier        Tier
	Severity    Severity
	Pattern     *regexp.Regexp
	Description string
	ValueGroup  int
	SkipValues  func(string) bool
}

// patternLibrary is ordered: high-tier rules come first so value
// deduplication keeps the most severe classification.
var patternLibrary = []Rule{
	// Plausible real secrets. Any match is an error.
	{
		ID:          "credential-literal",
		Tier:        TierHigh,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`(?i)\b(password|passwd|secret|api[_-]?key|apikey)\b["']?\s*[:=]\s*["']?([^\s"']{3,})`),
		Description: "hardcoded credential assignment",
		ValueGroup:  2,
		SkipValues:  isPlaceholderValue,
	},
	{
		ID:          "token-literal",
		Tier:        TierHigh,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`(?i)\b(token|access[_-]?key|private[_-]?key|credential)\b["']?\s*[:=]\s*["']?([A-Za-z0-9+/=_\-]{20,})`),
		Description: "hardcoded access token",
		ValueGroup:  2,
		SkipValues:  isPlaceholderValue,
	},
	{
		ID:          "private-key-block",
		Tier:        TierHigh,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`),
		Description: "embedded private key",
	},
	{
		ID:          "github-token",
		Tier:        TierHigh,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`\b(?:ghp|gho|ghs|ghr)_[A-Za-z0-9]{36}\b|\bgithub_pat_[A-Za-z0-9_]{22,}\b`),
		Description: "GitHub token",
	},
	{
		ID:          "openai-key",
		Tier:        TierHigh,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`\bsk-[A-Za-z0-9_\-]{20,}\b`),
		Description: "OpenAI-style API key",
	},
	{
		ID:          "slack-token",
		Tier:        TierHigh,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`\bxox[abpr]-[A-Za-z0-9\-]{10,}\b`),
		Description: "Slack token",
	},
	{
		ID:          "aws-access-key",
		Tier:        TierHigh,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
		Description: "AWS access key id",
	},
	{
		ID:          "jwt",
		Tier:        TierHigh,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`\beyJ[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]{5,}\b`),
		Description: "JWT embedded in document",
	},

	// Looser heuristics. Worth a look, not proof of a leak.
	{
		ID:          "auth-assignment",
		Tier:        TierMedium,
		Severity:    SeverityWarning,
		Pattern:     regexp.MustCompile(`(?i)\b(bearer|authorization|auth)\b["']?\s*[:=]\s*["']?(?:bearer\s+)?([^\s"']{3,})`),
		Description: "authorization value in configuration",
		ValueGroup:  2,
		SkipValues:  isPlaceholderValue,
	},
	{
		ID:          "long-opaque-string",
		Tier:        TierMedium,
		Severity:    SeverityWarning,
		Pattern:     regexp.MustCompile(`["']?\w+["']?\s*[:=]\s*["']([A-Za-z0-9+/=_\-]{32,})["']`),
		Description: "long opaque string assignment",
		ValueGroup:  1,
		SkipValues:  isNonSecretOpaque,
	},
	{
		ID:          "insecure-http-url",
		Tier:        TierMedium,
		Severity:    SeverityWarning,
		Pattern:     regexp.MustCompile(`\bhttp://[^\s"'<>]+`),
		Description: "unencrypted http:// endpoint",
		SkipValues:  isLocalURL,
	},

	// Known non-secret development artifacts.
	{
		ID:          "placeholder-token",
		Tier:        TierPlaceholder,
		Severity:    SeverityWarning,
		Pattern:     regexp.MustCompile(`\bYOUR_[A-Z0-9_]+\b`),
		Description: "unresolved placeholder value",
	},
	{
		ID:          "local-endpoint",
		Tier:        TierPlaceholder,
		Severity:    SeverityInfo,
		Pattern:     regexp.MustCompile(`(?i)\b(?:https?://)?(?:localhost|127\.0\.0\.1|0\.0\.0\.0)(?::\d+)?\b`),
		Description: "local development endpoint",
	},

	// Function-code injection. Scanned over code parameters only.
	{
		ID:          "eval-call",
		Tier:        TierInjection,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`\beval\s*\(`),
		Description: "eval() call in function code",
	},
	{
		ID:          "new-function",
		Tier:        TierInjection,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`\bnew\s+Function\s*\(`),
		Description: "dynamic code via new Function()",
	},
	{
		ID:          "child-process",
		Tier:        TierInjection,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`\b(?:child_process|execSync|spawnSync|execFileSync)\b`),
		Description: "child process execution in function code",
	},
	{
		ID:          "env-exfiltration",
		Tier:        TierInjection,
		Severity:    SeverityError,
		Pattern:     regexp.MustCompile(`(?s)process\.env.{0,120}?\b(?:fetch|axios|request)\s*\(`),
		Description: "environment variables read next to a network call",
	},
	{
		ID:          "dynamic-require",
		Tier:        TierInjection,
		Severity:    SeverityWarning,
		Pattern:     regexp.MustCompile(`\brequire\s*\(\s*[A-Za-z_$\[]`),
		Description: "require() with a dynamic module path",
	},
	{
		ID:          "function-constructor",
		Tier:        TierInjection,
		Severity:    SeverityWarning,
		Pattern:     regexp.MustCompile(`\bFunction\s*\.\s*constructor\b`),
		Description: "constructor access on Function",
	},

	// Blocking and unbounded constructs in function code.
	{
		ID:          "while-true",
		Tier:        TierPerformance,
		Severity:    SeverityWarning,
		Pattern:     regexp.MustCompile(`(?i)\bwhile\s*\(\s*(?:true|1)\s*\)`),
		Description: "unbounded while loop",
	},
	{
		ID:          "infinite-for",
		Tier:        TierPerformance,
		Severity:    SeverityWarning,
		Pattern:     regexp.MustCompile(`\bfor\s*\(\s*;\s*;\s*\)`),
		Description: "unbounded for(;;) loop",
	},
	{
		ID:          "set-interval",
		Tier:        TierPerformance,
		Severity:    SeverityWarning,
		Pattern:     regexp.MustCompile(`\bsetInterval\s*\(`),
		Description: "setInterval timer in function code",
	},

	// Rewarded, not penalized.
	{
		ID:          "env-reference",
		Tier:        TierGoodPractice,
		Severity:    SeverityInfo,
		Pattern:     regexp.MustCompile(`\$\{[^}]+\}|\{\{[^}]*\$env[^}]*\}\}`),
		Description: "environment-style references in use",
	},
}

// rulesByTier returns the library rules for the given tiers, preserving table
// order.
func rulesByTier(tiers ...Tier) []Rule {
	var rules []Rule
	for _, rule := range patternLibrary {
		for _, tier := range tiers {
			if rule.Tier == tier {
				rules = append(rules, rule)
				break
			}
		}
	}
	return rules
}

// scriptPlaceholderURL flags URLs inside shell scripts that still carry an
// unresolved placeholder host or path.
var scriptPlaceholderURL = regexp.MustCompile(`https?://[^\s"']*YOUR_[A-Z0-9_]+[^\s"']*`)

// isPlaceholderValue reports whether a captured value is a known non-secret
// stand-in rather than a plausible credential.
func isPlaceholderValue(value string) bool {
	if strings.HasPrefix(strings.ToUpper(value), "YOUR_") {
		return true
	}
	if strings.Contains(value, "${") || strings.HasPrefix(value, "{{") {
		return true
	}
	if strings.HasPrefix(value, "<") && strings.HasSuffix(value, ">") {
		return true
	}
	switch strings.ToLower(value) {
	case "changeme", "change_me", "placeholder", "example", "dummy":
		return true
	}
	return false
}

var uuidValue = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// isNonSecretOpaque exempts long values that are structurally opaque but not
// secrets: placeholders and UUIDs (node ids, version ids).
func isNonSecretOpaque(value string) bool {
	return isPlaceholderValue(value) || uuidValue.MatchString(value)
}

// isLocalURL reports whether a matched URL points at a local development
// endpoint.
func isLocalURL(url string) bool {
	lower := strings.ToLower(url)
	return strings.Contains(lower, "localhost") ||
		strings.Contains(lower, "127.0.0.1") ||
		strings.Contains(lower, "0.0.0.0") ||
		strings.Contains(lower, "[::1]")
}

// excerpt truncates matched text for finding details.
func excerpt(s string) string {
	const maxLen = 80
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
