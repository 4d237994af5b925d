package plan

import (
	"strings"

	"copy-generator/internal/common"
)

// Mode selects which kind of copy method is synthesized.
type Mode int

const (
	ModeInit         Mode = iota // constructor from a source
	ModeCopy                     // void copy from a source into this
	ModeUpdate                   // change-counted copy from a source into this
	ModeCopyTo                   // void copy from this into a foreign target
	ModeUpdateTarget             // change-counted copy from this into a foreign target
)

// AllModes returns every mode in emission order.
func AllModes() []Mode {
	return []Mode{ModeInit, ModeCopy, ModeUpdate, ModeCopyTo, ModeUpdateTarget}
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeInit:
		return "init"
	case ModeCopy:
		return "copy"
	case ModeUpdate:
		return "update"
	case ModeCopyTo:
		return "copy_to"
	case ModeUpdateTarget:
		return "update_target"
	default:
		return common.UnknownStr
	}
}

// AttributeName returns the short name of the attribute requesting the mode.
func (m Mode) AttributeName() string {
	switch m {
	case ModeInit:
		return "EnableInitFrom"
	case ModeCopy:
		return "EnableCopyFrom"
	case ModeUpdate:
		return "EnableUpdateFrom"
	case ModeCopyTo:
		return "EnableCopyTo"
	case ModeUpdateTarget:
		return "EnableUpdateTarget"
	default:
		return common.UnknownStr
	}
}

// ParseMode parses a configuration name ("update_target", "UpdateTarget"
// and "update-target" are all accepted).
func ParseMode(s string) (Mode, bool) {
	key := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range AllModes() {
		if strings.ReplaceAll(m.String(), "_", "") == key {
			return m, true
		}
	}

	return 0, false
}

// ModeForAttribute maps an attribute short name to its mode.
func ModeForAttribute(shortName string) (Mode, bool) {
	for _, m := range AllModes() {
		if m.AttributeName() == shortName {
			return m, true
		}
	}

	return 0, false
}

// ReturnShape is what a generated method returns.
type ReturnShape int

const (
	ReturnVoid        ReturnShape = iota // nothing
	ReturnSelf                           // this, for chaining
	ReturnCount                          // number of members changed
	ReturnConstructor                    // the method is a constructor
)

// String returns a human-readable shape name.
func (r ReturnShape) String() string {
	switch r {
	case ReturnVoid:
		return "void"
	case ReturnSelf:
		return "self"
	case ReturnCount:
		return "count"
	case ReturnConstructor:
		return "constructor"
	default:
		return common.UnknownStr
	}
}

// ModeConfig fixes the shape of the methods generated for a mode.
type ModeConfig struct {
	Mode Mode
	// BaseName prefixes hook names, e.g. "CopyFrom" gives BeforeCopyFrom and
	// CopyFromTransform_Name.
	BaseName string
	Return   ReturnShape
	// Before and After request the partial hook declarations and calls.
	Before bool
	After  bool
	// Swap makes the foreign type the one written to.
	Swap bool
}

// DefaultModeConfig returns the built-in configuration of a mode.
func DefaultModeConfig(m Mode) ModeConfig {
	switch m {
	case ModeInit:
		return ModeConfig{Mode: m, BaseName: "InitFrom", Return: ReturnConstructor, Before: false, After: true}
	case ModeCopy:
		return ModeConfig{Mode: m, BaseName: "CopyFrom", Return: ReturnVoid, Before: true, After: true}
	case ModeUpdate:
		return ModeConfig{Mode: m, BaseName: "UpdateFrom", Return: ReturnCount, Before: true, After: true}
	case ModeCopyTo:
		return ModeConfig{Mode: m, BaseName: "CopyTo", Return: ReturnVoid, Before: true, After: true, Swap: true}
	case ModeUpdateTarget:
		return ModeConfig{Mode: m, BaseName: "UpdateTarget", Return: ReturnCount, Before: true, After: true, Swap: true}
	default:
		return ModeConfig{Mode: m, BaseName: common.UnknownStr}
	}
}

// DefaultModeConfigs returns the built-in configuration of every mode.
func DefaultModeConfigs() map[Mode]ModeConfig {
	out := make(map[Mode]ModeConfig, len(AllModes()))
	for _, m := range AllModes() {
		out[m] = DefaultModeConfig(m)
	}

	return out
}

// IsConstructor reports whether the mode produces constructors.
func (c ModeConfig) IsConstructor() bool {
	return c.Return == ReturnConstructor
}

// Counted reports whether the mode returns a change count.
func (c ModeConfig) Counted() bool {
	return c.Return == ReturnCount
}

// ParamName is the name of the foreign parameter.
func (c ModeConfig) ParamName() string {
	if c.Swap {
		return "target"
	}

	return "source"
}
