package assist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// keywordEnv builds the evaluation environment of template predicates.
// text is the lower-cased input.
func keywordEnv(text string) map[string]any {
	return map[string]any{"text": strings.ToLower(text)}
}

// compileKeywords builds a predicate true when text contains any of words.
// Matching is plain substring matching.
func compileKeywords(words ...string) (*vm.Program, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("at least one keyword is required")
	}
	terms := make([]string, len(words))
	for i, w := range words {
		terms[i] = "text contains " + strconv.Quote(strings.ToLower(w))
	}

	program, err := expr.Compile(strings.Join(terms, " or "),
		expr.Env(keywordEnv("")),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile keyword predicate: %w", err)
	}
	return program, nil
}

func mustKeywords(words ...string) *vm.Program {
	p, err := compileKeywords(words...)
	if err != nil {
		panic(err)
	}
	return p
}

// rule applies a content block to T when its predicate matches.
type rule[T any] struct {
	when  *vm.Program
	apply func(*T)
}

// ruleSet is an ordered list of rules. With firstMatch only the first
// matching rule applies and otherwise applies when none match; without it
// every matching rule applies in order, later ones overwriting earlier ones.
type ruleSet[T any] struct {
	rules      []rule[T]
	firstMatch bool
	otherwise  func(*T)
}

func (s ruleSet[T]) apply(text string, out *T) {
	env := keywordEnv(text)
	for _, r := range s.rules {
		if !matches(r.when, env) {
			continue
		}
		r.apply(out)
		if s.firstMatch {
			return
		}
	}
	if s.firstMatch && s.otherwise != nil {
		s.otherwise(out)
	}
}

func matches(p *vm.Program, env map[string]any) bool {
	out, err := expr.Run(p, env)
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}
