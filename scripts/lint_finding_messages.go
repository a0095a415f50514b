// Command lint_finding_messages checks the style of validator finding
// messages: lowercase first word and no trailing punctuation. Run from the
// repository root:
//
//	go run scripts/lint_finding_messages.go
package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// StyleIssue is one finding message that breaks the style rules.
type StyleIssue struct {
	File    string
	Line    int
	Message string
	Problem string
}

// Acronyms and file names allowed to open a message with an uppercase rune.
var uppercaseAllowed = regexp.MustCompile(`^(README|LICENSE|SECURITY|CONTRIBUTING|JSON|URL|PATH|JWT|AWS|HTTP)`)

func main() {
	roots := []string{"pkg/validation"}
	var issues []StyleIssue
	total := 0

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			found, checked, err := lintFile(path)
			if err != nil {
				return err
			}
			issues = append(issues, found...)
			total += checked
			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "walking %s: %v\n", root, err)
			os.Exit(2)
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}
		return issues[i].Line < issues[j].Line
	})

	for _, issue := range issues {
		fmt.Printf("%s:%d: %s: %q\n", issue.File, issue.Line, issue.Problem, issue.Message)
	}
	fmt.Printf("checked %d finding messages, %d issues\n", total, len(issues))
	if len(issues) > 0 {
		os.Exit(1)
	}
}

// lintFile parses one source file and checks every Finding literal's Message
// field. Messages built through fmt.Sprintf are checked on the format string.
func lintFile(path string) ([]StyleIssue, int, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, 0, err
	}

	var issues []StyleIssue
	checked := 0
	ast.Inspect(file, func(n ast.Node) bool {
		lit, ok := n.(*ast.CompositeLit)
		if !ok {
			return true
		}
		ident, ok := lit.Type.(*ast.Ident)
		if !ok || ident.Name != "Finding" {
			return true
		}
		for _, elt := range lit.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}
			key, ok := kv.Key.(*ast.Ident)
			if !ok || key.Name != "Message" {
				continue
			}
			message, ok := messageText(kv.Value)
			if !ok {
				continue
			}
			checked++
			if problem := checkStyle(message); problem != "" {
				issues = append(issues, StyleIssue{
					File:    path,
					Line:    fset.Position(kv.Value.Pos()).Line,
					Message: message,
					Problem: problem,
				})
			}
		}
		return true
	})
	return issues, checked, nil
}

// messageText extracts the literal text behind a Message expression: either a
// plain string literal or the format string of a fmt.Sprintf call.
func messageText(expr ast.Expr) (string, bool) {
	switch v := expr.(type) {
	case *ast.BasicLit:
		if v.Kind != token.STRING {
			return "", false
		}
		text, err := strconv.Unquote(v.Value)
		if err != nil {
			return "", false
		}
		return text, true
	case *ast.CallExpr:
		sel, ok := v.Fun.(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != "Sprintf" || len(v.Args) == 0 {
			return "", false
		}
		pkg, ok := sel.X.(*ast.Ident)
		if !ok || pkg.Name != "fmt" {
			return "", false
		}
		return messageText(v.Args[0])
	}
	return "", false
}

func checkStyle(message string) string {
	if strings.TrimSpace(message) == "" {
		return "empty message"
	}
	if strings.HasSuffix(message, ".") || strings.HasSuffix(message, "!") {
		return "trailing punctuation"
	}
	// A leading format verb takes its case from the substituted value.
	if strings.HasPrefix(message, "%") {
		return ""
	}
	first := []rune(message)[0]
	if unicode.IsUpper(first) && !uppercaseAllowed.MatchString(message) {
		return "message starts uppercase"
	}
	return ""
}
