// Package relaxed declares the opt-in, off-by-default grammar deviations a caller may permit when parsing. KDL
// 2.0 proper has none of these, but a config-file consumer often benefits from them, so they are modeled as a
// separate flag set a caller must explicitly enable rather than folded into the strict grammar.
package relaxed

// Flags is a bitmask of noncompliant parsing extensions. The zero value enables none of them, so a parse with a
// zero Flags value follows strict KDL 2.0 exactly as the core grammar requires.
type Flags int

const (
	// NGINXSyntax accepts nginx-style unquoted paths: a bare value that starts with `/` (`/`, `/var/www/html`)
	// reads as a string running up to the next whitespace, newline, `;`, brace, or parenthesis. Node bodies still
	// need the KDL `{ }` delimiters.
	NGINXSyntax Flags = 1 << iota
	// YAMLTOMLAssignments accepts `=` between a node's name and its first argument, or a `:` directly after a bare
	// node name (`key: value`), the way YAML and TOML punctuate a key from its value, even though KDL 2.0 itself
	// never separates a node name from its arguments.
	YAMLTOMLAssignments
	// MultiplierSuffixes accepts a bare numeric literal followed by a unit suffix: time.ParseDuration suffixes
	// (`15s`, `2h30m`) for time.Duration-typed destinations, or [kKMgGtTpP]?[bB]? for everything else — a
	// single-letter suffix (`32k`) multiplies decimally (32 * 1000); one followed by `b`/`B` (`32kb`) multiplies
	// by the binary unit instead (32 * 1024).
	MultiplierSuffixes
)

// Permit reports whether every bit set in q is also set in f.
func (f Flags) Permit(q Flags) bool {
	return f&q == q
}
