package query

import (
	"fmt"
	"strings"
)

// filter collects the arguments of one root field. String and boolean
// values travel as variables; enum values are inlined as literals.
type filter struct {
	decls  []string
	fields []string
	vars   map[string]interface{}
}

func newFilter() *filter {
	return &filter{vars: make(map[string]interface{})}
}

// variable adds `name: {op: $name}` and declares $name.
func (f *filter) variable(name, op, gqlType string, value interface{}) {
	f.decls = append(f.decls, fmt.Sprintf("$%s: %s", name, gqlType))
	f.fields = append(f.fields, fmt.Sprintf("%s: {%s: $%s}", name, op, name))
	f.vars[name] = value
}

// enum adds `name: {op: Literal}`. The caller has already checked the literal.
func (f *filter) enum(name, op, literal string) {
	f.fields = append(f.fields, fmt.Sprintf("%s: {%s: %s}", name, op, literal))
}

func (f *filter) empty() bool {
	return len(f.fields) == 0
}

// declarations renders `($a: String, $b: Boolean)` or nothing.
func (f *filter) declarations() string {
	if len(f.decls) == 0 {
		return ""
	}
	return "(" + strings.Join(f.decls, ", ") + ")"
}

// argument renders `(filter: {...})` or nothing.
func (f *filter) argument() string {
	if f.empty() {
		return ""
	}
	return "(filter: {" + strings.Join(f.fields, ", ") + "})"
}

// document renders `query name(decls) { root(args) { selection } }`.
func document(name, decls, root, args, selection string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "query %s%s {\n", name, decls)
	fmt.Fprintf(&b, "  %s%s {\n", root, args)
	for _, line := range strings.Split(strings.TrimSpace(selection), "\n") {
		b.WriteString("    ")
		b.WriteString(strings.TrimSpace(line))
		b.WriteString("\n")
	}
	b.WriteString("  }\n}")
	return b.String()
}
