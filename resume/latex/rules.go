package latex

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Stage groups rules; stages run in declaration order.
type Stage int

const (
	StagePreamble Stage = iota + 1
	StageDocument
	StageBlocks
	StageHeadings
	StageEmphasis
	StageSizes
	StageLists
	StageBreaks
	StageFill
	StageLinks
	StageEscapes
	StageDate
	StageWhitespace
	StageStructure
)

var stageNames = map[Stage]string{
	StagePreamble:   "preamble",
	StageDocument:   "document",
	StageBlocks:     "blocks",
	StageHeadings:   "headings",
	StageEmphasis:   "emphasis",
	StageSizes:      "sizes",
	StageLists:      "lists",
	StageBreaks:     "breaks",
	StageFill:       "fill",
	StageLinks:      "links",
	StageEscapes:    "escapes",
	StageDate:       "date",
	StageWhitespace: "whitespace",
	StageStructure:  "structure",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Env carries the per-call inputs rules may read.
type Env struct {
	Today time.Time
}

// Rule is one rewrite pass over the whole document.
type Rule struct {
	Name  string
	Stage Stage
	apply func(src string, env Env) string
}

// Apply runs the rule on src.
func (r Rule) Apply(src string, env Env) string {
	if r.apply == nil {
		return src
	}
	return r.apply(src, env)
}

// replaceRule rewrites every match of pattern with a regexp template.
func replaceRule(name string, stage Stage, pattern, repl string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{Name: name, Stage: stage, apply: func(src string, _ Env) string {
		return re.ReplaceAllString(src, repl)
	}}
}

// commandRule rewrites a command and its brace-balanced arguments.
func commandRule(name string, stage Stage, head, spec string, fn func(args []string) string) Rule {
	re := regexp.MustCompile(head)
	return Rule{Name: name, Stage: stage, apply: func(src string, _ Env) string {
		return rewriteCommand(src, re, spec, fn)
	}}
}

// textRule rewrites only the text between tags, leaving tag names and
// attribute values such as link targets alone.
func textRule(name string, stage Stage, pattern, repl string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{Name: name, Stage: stage, apply: func(src string, _ Env) string {
		return outsideTags(src, func(text string) string { return re.ReplaceAllString(text, repl) })
	}}
}

func funcRule(name string, stage Stage, fn func(src string, env Env) string) Rule {
	return Rule{Name: name, Stage: stage, apply: fn}
}

func wrapWith(format string) func(args []string) string {
	return func(args []string) string {
		vals := make([]any, len(args))
		for i, a := range args {
			vals[i] = a
		}
		return fmt.Sprintf(format, vals...)
	}
}

func drop(args []string) string { return "" }

// preambleCommands lists configuration commands that carry no visible content.
var preambleCommands = []struct {
	name string
	spec string
}{
	{"documentclass", "[{"},
	{"usepackage", "[{"},
	{"geometry", "{"},
	{"setlist", "[{"},
	{"titleformat", "{[{{{{["},
	{"titlespacing", "{{{{["},
	{"hypersetup", "{"},
	{"pagestyle", "{"},
	{"thispagestyle", "{"},
	{"linespread", "{"},
	{"urlstyle", "{"},
}

var blockEnvironments = []struct {
	env  string
	open string
}{
	{"center", `<div class="center">`},
	{"flushright", `<div style="text-align: right;">`},
	{"flushleft", `<div style="text-align: left;">`},
}

var inlineCommands = []struct {
	name string
	tag  string
}{
	{"textbf", "strong"},
	{"textit", "em"},
	{"texttt", "code"},
	{"emph", "em"},
	{"underline", "u"},
}

var listEnvironments = []struct {
	env string
	tag string
}{
	{"itemize", "ul"},
	{"enumerate", "ol"},
}

// DefaultRules returns the translation pipeline in application order.
// The returned slice is a fresh copy.
func DefaultRules() []Rule {
	var rules []Rule

	rules = append(rules, replaceRule("comments", StagePreamble, `(?m)^[ \t]*%.*$`, ""))
	for _, cmd := range preambleCommands {
		rules = append(rules, commandRule(cmd.name, StagePreamble, `\\`+cmd.name+`\b\*?`, cmd.spec, drop))
	}

	rules = append(rules,
		replaceRule("begin-document", StageDocument, `\\begin\{document\}`, ""),
		replaceRule("end-document", StageDocument, `\\end\{document\}`, ""),
	)

	for _, block := range blockEnvironments {
		rules = append(rules,
			replaceRule("begin-"+block.env, StageBlocks, `\\begin\{`+block.env+`\}`, block.open),
			replaceRule("end-"+block.env, StageBlocks, `\\end\{`+block.env+`\}`, "</div>"),
		)
	}

	rules = append(rules,
		commandRule("section", StageHeadings, `\\section\b\*?`, "{", wrapWith("<h2>%s</h2>")),
		commandRule("subsection", StageHeadings, `\\subsection\b\*?`, "{", wrapWith("<h3>%s</h3>")),
	)

	rules = append(rules, commandRule("title", StageEmphasis, `\\Large\s*\\textbf\b`, "{", wrapWith("<h1>%s</h1>")))
	for _, cmd := range inlineCommands {
		format := "<" + cmd.tag + ">%s</" + cmd.tag + ">"
		rules = append(rules, commandRule(cmd.name, StageEmphasis, `\\`+cmd.name+`\b`, "{", wrapWith(format)))
	}

	rules = append(rules, replaceRule("sizes", StageSizes,
		`\\(?:Huge|huge|LARGE|Large|large|normalsize|small|footnotesize|scriptsize|tiny)\b`, ""))

	for _, list := range listEnvironments {
		rules = append(rules,
			replaceRule("begin-"+list.env, StageLists, `\\begin\{`+list.env+`\}(?:\[[^\]]*\])?`, "<"+list.tag+">"),
			replaceRule("end-"+list.env, StageLists, `\\end\{`+list.env+`\}`, "</"+list.tag+">"),
		)
	}
	rules = append(rules,
		replaceRule("item", StageLists, `\\item\b\s*`, "<li>"),
		funcRule("close-items", StageLists, func(src string, _ Env) string { return closeListItems(src) }),
	)

	rules = append(rules,
		replaceRule("double-break", StageBreaks, `\\\\\\\\`, "<br><br>"),
		replaceRule("break", StageBreaks, `\\\\(?:\[[^\]]*\])?\s*`, "<br>"),
		replaceRule("newline", StageBreaks, `\\(?:newline|linebreak)\b\s*`, "<br>"),
		replaceRule("par", StageBreaks, `\\par\b\s*`, "<br><br>"),
		commandRule("vspace", StageBreaks, `\\vspace\b\*?`, "{", wrapWith(`<div style="margin-bottom: %s;"></div>`)),
		commandRule("hspace", StageBreaks, `\\hspace\b\*?`, "{", wrapWith(`<span style="margin-left: %s;"></span>`)),
	)

	rules = append(rules,
		replaceRule("hfill", StageFill, `\\hfill\b\s*`, dateRangeOpen),
		funcRule("close-date-range", StageFill, func(src string, _ Env) string { return closeDateRanges(src) }),
	)

	rules = append(rules,
		commandRule("href", StageLinks, `\\href\b`, "{{", func(args []string) string {
			return `<a href="` + attr(args[0]) + `">` + args[1] + `</a>`
		}),
		commandRule("url", StageLinks, `\\url\b`, "{", func(args []string) string {
			return `<a href="` + attr(args[0]) + `">` + args[0] + `</a>`
		}),
	)

	rules = append(rules,
		replaceRule("math-bar", StageEscapes, `\$\s*\|\s*\$`, " | "),
		// Keeps the dollar sign rather than dropping it with the escape.
		replaceRule("dollar", StageEscapes, `\\\$`, "$$"),
		replaceRule("specials", StageEscapes, `\\([&%#_{}])`, "$1"),
		replaceRule("textbackslash", StageEscapes, `\\textbackslash\b(?:\{\})?`, `\`),
		textRule("em-dash", StageEscapes, `---`, "—"),
		textRule("en-dash", StageEscapes, `--`, "–"),
		replaceRule("placeholders", StageEscapes, `<([A-Z][A-Z0-9_ ]*)>`, "&lt;$1&gt;"),
	)

	todayRe := regexp.MustCompile(`\\today\b`)
	rules = append(rules, funcRule("today", StageDate, func(src string, env Env) string {
		if env.Today.IsZero() {
			return src
		}
		return todayRe.ReplaceAllLiteralString(src, env.Today.Format("January 2, 2006"))
	}))

	rules = append(rules,
		replaceRule("blank-lines", StageWhitespace, `\n\s*\n`, "\n"),
		replaceRule("spaces", StageWhitespace, `\s+`, " "),
		funcRule("trim", StageWhitespace, func(src string, _ Env) string { return strings.TrimSpace(src) }),
	)

	rules = append(rules, structureRules()...)
	return rules
}

// Lookup returns the default rule with the given name.
func Lookup(name string) (Rule, bool) {
	for _, r := range DefaultRules() {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

func attr(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}
