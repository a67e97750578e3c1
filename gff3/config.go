package gff3

import "strings"

// Policy is the action an unsatisfied rule, a missing-ID line, or a
// column-count mismatch dispatches to (§4.5, §6).
type Policy int

const (
	PolicyIgnore Policy = iota
	PolicyWarn
	PolicyDie
	PolicySkip
	PolicyFind
	PolicyMake
	PolicyForce
)

// ParsePolicy maps a configuration string to a Policy. An unrecognized
// string for LacksID is treated specially by the builder (§4.3 step 4: "any
// other string is treated as an alternative attribute name"), so this
// function is only used where a literal policy name is required.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(s) {
	case "ignore":
		return PolicyIgnore, true
	case "warn":
		return PolicyWarn, true
	case "die":
		return PolicyDie, true
	case "skip":
		return PolicySkip, true
	case "find":
		return PolicyFind, true
	case "make":
		return PolicyMake, true
	case "force":
		return PolicyForce, true
	default:
		return PolicyIgnore, false
	}
}

// Rule is one registered expectation (§4.5): `(type_pattern, relation, alt,
// flag)`. type_pattern has already been split into individual lower-cased
// type names by the time a Rule is stored — AddExpectation registers one
// Rule per name in a `|`-joined pattern.
type Rule struct {
	Type     string
	Relation string // hasParent, hasChild, hasSister, or a <op>[a,b] comparison
	Alt      string // type pattern (structural) or SELF/PARENT (comparison)
	Flag     Policy
}

// Config holds the engine's configuration surface (§6): every knob must be
// set before the first call to Parse, mirroring the teacher's
// "configure-before-first-Read" convention (gff.Reader.SetGeneTag).
type Config struct {
	separator string

	commentPatterns []CommentPattern

	typeMap map[string]string

	multilineAll   bool
	multilineTypes map[string]bool

	lacksIDDefault  string // policy name or alternative attribute name
	lacksIDPerType  map[string]string
	undefinedParent Policy

	expectColumns     int
	expectColumnsFlag Policy

	rules map[string][]*Rule // keyed by lower-cased type

	diag *diagSink

	started bool // true after the first Parse call; configuration is then frozen
}

// NewConfig returns a Config with GFF3's documented defaults: TAB
// separator, lacks_id "ignore", undefined_parent "make".
func NewConfig() *Config {
	return &Config{
		separator:       "\t",
		typeMap:         make(map[string]string),
		multilineTypes:  make(map[string]bool),
		lacksIDDefault:  "ignore",
		lacksIDPerType:  make(map[string]string),
		undefinedParent: PolicyMake,
		rules:           make(map[string][]*Rule),
		diag:            newDiagSink(nil),
	}
}

func (c *Config) guardUnstarted(knob string) {
	if c.started {
		panic("gff3: cannot call " + knob + " after parsing has started")
	}
}

// Separator overrides the column separator (default TAB).
func (c *Config) Separator(sep string) *Config {
	c.guardUnstarted("Separator")
	c.separator = sep
	return c
}

// HasComments declares inline comment delimiters/pairs applied to every
// data line before tokenization (§4.2).
func (c *Config) HasComments(patterns ...CommentPattern) *Config {
	c.guardUnstarted("HasComments")
	c.commentPatterns = append(c.commentPatterns, patterns...)
	return c
}

// MapTypes declares type aliasing at parse time: raw column-3 values that
// are keys of m are substituted with their mapped canonical type (§4.3
// BUILD step 2).
func (c *Config) MapTypes(m map[string]string) *Config {
	c.guardUnstarted("MapTypes")
	for k, v := range m {
		c.typeMap[lower(k)] = v
	}
	return c
}

// Multiline allows typ (case-insensitive) to coalesce across lines; "all"
// allows any type (§3, §4.3.1).
func (c *Config) Multiline(typ string) *Config {
	c.guardUnstarted("Multiline")
	if lower(typ) == "all" {
		c.multilineAll = true
		return c
	}
	c.multilineTypes[lower(typ)] = true
	return c
}

func (c *Config) isMultiline(typ string) bool {
	return c.multilineAll || c.multilineTypes[lower(typ)]
}

// LacksID sets the policy for a missing ID attribute on typ: one of
// ignore/warn/die/make, or any other string naming an alternative
// attribute to use as the ID (§4.3 step 4). typ "all" sets the default.
func (c *Config) LacksID(typ, policy string) *Config {
	c.guardUnstarted("LacksID")
	if lower(typ) == "all" {
		c.lacksIDDefault = policy
		return c
	}
	c.lacksIDPerType[lower(typ)] = policy
	return c
}

func (c *Config) lacksIDPolicy(typ string) string {
	if p, ok := c.lacksIDPerType[lower(typ)]; ok {
		return p
	}
	return c.lacksIDDefault
}

// UndefinedParent sets the policy (die or make) applied to a node whose
// Parent attribute never resolves after the orphan-resolution fixpoint
// (§4.3.2). Default is make.
func (c *Config) UndefinedParent(policy Policy) *Config {
	c.guardUnstarted("UndefinedParent")
	c.undefinedParent = policy
	return c
}

// ExpectColumns enforces exactly n columns per data line, dispatching flag
// on violation (§4.1).
func (c *Config) ExpectColumns(n int, flag Policy) *Config {
	c.guardUnstarted("ExpectColumns")
	c.expectColumns = n
	c.expectColumnsFlag = flag
	return c
}

// AddExpectation registers a validation rule. typePattern is one or more
// lower-cased type names joined by '|'; the rule is registered once per
// name (§4.5).
func (c *Config) AddExpectation(typePattern, relation, alt string, flag Policy) *Config {
	c.guardUnstarted("AddExpectation")
	for _, name := range strings.Split(typePattern, "|") {
		name = lower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		c.rules[name] = append(c.rules[name], &Rule{Type: name, Relation: relation, Alt: alt, Flag: flag})
	}
	return c
}

// Logger installs a diagnostic sink used for warn-level messages and the
// log line accompanying every die action. The default sink is silent.
func (c *Config) Logger(l Logger) *Config {
	c.guardUnstarted("Logger")
	c.diag = newDiagSink(l)
	return c
}
