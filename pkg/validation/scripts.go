package validation

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/flowlint/flowlint/pkg/constants"
	"github.com/flowlint/flowlint/pkg/fileutil"
	"github.com/flowlint/flowlint/pkg/logger"
)

var scriptsLog = logger.New("validation:scripts")

// syntaxResult is the cached outcome of a shell dry parse. A syntax failure is
// a result, not a compute error, so single-flight memoizes it like a success.
type syntaxResult struct {
	OK     bool
	Output string
}

// scriptsValidator checks companion shell scripts next to the workflow
// document: existence, execute permission, a bash dry parse, and leftover
// placeholder URLs. Checks are additive, so one script can accumulate several
// findings. Targets come from Limits.Scripts when configured, otherwise from
// *.sh discovery in the document directory and its scripts/ subdirectory.
type scriptsValidator struct{}

func (scriptsValidator) Name() string { return "scripts" }
func (scriptsValidator) Category() Category { return CategoryTests }

func (v scriptsValidator) Evaluate(ctx context.Context, run *Run) []Finding {
	var findings []Finding
	add := func(severity Severity, message, detail string) {
		findings = append(findings, Finding{
			Category:  CategoryTests,
			Severity:  severity,
			Message:   message,
			Detail:    detail,
			Validator: v.Name(),
		})
	}

	configured := len(run.Limits.Scripts) > 0
	scripts, err := v.targetScripts(run)
	if err != nil {
		add(SeverityWarning, "script discovery failed", err.Error())
		return findings
	}
	if len(scripts) == 0 {
		add(SeverityInfo, "no companion scripts found", "")
		return findings
	}

	for _, script := range scripts {
		name := filepath.Base(script)
		issues := 0

		data, loadErr := run.Cache.Load(script)
		switch {
		case errors.Is(loadErr, ErrNotFound):
			if configured {
				add(SeverityError, fmt.Sprintf("configured script %s is missing", name), "")
			} else {
				add(SeverityWarning, fmt.Sprintf("script %s could not be read", name), loadErr.Error())
			}
			continue
		case loadErr != nil:
			add(SeverityWarning, fmt.Sprintf("script %s could not be read", name), loadErr.Error())
			continue
		}

		if !fileutil.IsExecutable(script) {
			issues++
			add(SeverityWarning, fmt.Sprintf("script %s is not executable", name), "")
		}

		result, parseErr := v.dryParse(ctx, run.Cache, script)
		switch {
		case parseErr != nil:
			issues++
			add(SeverityWarning, fmt.Sprintf("script %s could not be dry-parsed", name), parseErr.Error())
		case !result.OK:
			issues++
			add(SeverityError, fmt.Sprintf("script %s has shell syntax errors", name), excerpt(result.Output))
		}

		if match := scriptPlaceholderURL.FindString(string(data)); match != "" {
			issues++
			add(SeverityWarning, fmt.Sprintf("script %s contains an unresolved placeholder URL", name), excerpt(match))
		}

		if issues == 0 {
			add(SeverityPass, fmt.Sprintf("script %s passed all checks", name), "")
		}
	}

	scriptsLog.Printf("Script findings: %d across %d scripts", len(findings), len(scripts))
	return findings
}

// targetScripts resolves the scripts to check. A configured list wins and is
// resolved against the document directory; otherwise *.sh files are discovered
// through the cache so watch-mode reruns share one directory walk.
func (v scriptsValidator) targetScripts(run *Run) ([]string, error) {
	if len(run.Limits.Scripts) > 0 {
		scripts := make([]string, 0, len(run.Limits.Scripts))
		for _, script := range run.Limits.Scripts {
			if !filepath.IsAbs(script) {
				script = filepath.Join(run.BaseDir, script)
			}
			scripts = append(scripts, script)
		}
		return scripts, nil
	}

	return Compute(run.Cache, run.BaseDir, "shell-scripts", func() ([]string, error) {
		var scripts []string
		for _, dir := range []string{run.BaseDir, filepath.Join(run.BaseDir, "scripts")} {
			matches, err := filepath.Glob(filepath.Join(dir, "*.sh"))
			if err != nil {
				return nil, fmt.Errorf("discovering scripts in %s: %w", dir, err)
			}
			scripts = append(scripts, matches...)
		}
		return scripts, nil
	})
}

// dryParse runs the shell interpreter in no-exec mode against the script. The
// outcome is cached per script path, so sequential and parallel runs invoke
// bash at most once per file.
func (v scriptsValidator) dryParse(ctx context.Context, cache *Cache, script string) (syntaxResult, error) {
	return Compute(cache, script, "shell-syntax", func() (syntaxResult, error) {
		cmd := exec.CommandContext(ctx, constants.ShellInterpreter, "-n", script)
		output, err := cmd.CombinedOutput()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return syntaxResult{OK: false, Output: strings.TrimSpace(string(output))}, nil
			}
			return syntaxResult{}, fmt.Errorf("running %s -n: %w", constants.ShellInterpreter, err)
		}
		return syntaxResult{OK: true}, nil
	})
}
