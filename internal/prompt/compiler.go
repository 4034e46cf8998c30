package prompt

import "strings"

// Compile substitutes variables into a template body. Every {name}
// occurrence whose name exists in vars is replaced with the supplied value,
// all occurrences not just the first. Names absent from vars are left as
// literal {name} text: unresolved placeholders are a tolerated authoring
// mismatch, not a failure condition. No brace escaping is performed, so
// template authors must avoid accidental literal braces.
//
// Compilation is deterministic: the same template and variables always
// produce byte-identical output.
func Compile(content string, vars map[string]string) string {
	if len(vars) == 0 {
		return content
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}

	return strings.NewReplacer(pairs...).Replace(content)
}
