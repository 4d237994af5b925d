package gen

import (
	"fmt"

	"copy-generator/internal/analyze"
	"copy-generator/internal/plan"
)

// Shape describes the method a formatter renders.
type Shape struct {
	Mode     plan.Mode
	BaseName string
	Return   plan.ReturnShape
	// ByRef is set when the parameter is passed by reference.
	ByRef bool
	// Kind is the kind of the type owning the method.
	Kind analyze.TypeKind
}

// DeclarationFunc renders a method signature, without body or initializer.
type DeclarationFunc func(target, source, param string, shape Shape) string

// CommentFunc renders the text of a method's summary comment.
type CommentFunc func(target, source string, shape Shape) string

// Formatter holds the formatters of one mode.
type Formatter struct {
	Declaration DeclarationFunc
	Comment     CommentFunc
}

// Formatters maps modes to their formatters. Missing entries and nil
// functions fall back to the defaults.
type Formatters map[plan.Mode]Formatter

// DefaultFormatters returns the default formatter of every mode.
func DefaultFormatters() Formatters {
	out := make(Formatters, len(plan.AllModes()))
	for _, m := range plan.AllModes() {
		out[m] = Formatter{Declaration: DefaultDeclaration, Comment: DefaultComment}
	}

	return out
}

func (f Formatters) declaration(target, source, param string, shape Shape) string {
	if fm, ok := f[shape.Mode]; ok && fm.Declaration != nil {
		return fm.Declaration(target, source, param, shape)
	}

	return DefaultDeclaration(target, source, param, shape)
}

func (f Formatters) comment(target, source string, shape Shape) string {
	if fm, ok := f[shape.Mode]; ok && fm.Comment != nil {
		return fm.Comment(target, source, shape)
	}

	return DefaultComment(target, source, shape)
}

// DefaultDeclaration renders a public constructor or method named after the
// mode's base name.
func DefaultDeclaration(target, source, param string, shape Shape) string {
	ref := ""
	if shape.ByRef {
		ref = "ref "
	}

	switch shape.Return {
	case plan.ReturnConstructor:
		return fmt.Sprintf("public %s(%s%s %s)", target, ref, source, param)
	case plan.ReturnSelf:
		return fmt.Sprintf("public %s %s(%s%s %s)", target, shape.BaseName, ref, source, param)
	case plan.ReturnCount:
		return fmt.Sprintf("public int %s(%s%s %s)", shape.BaseName, ref, source, param)
	default:
		return fmt.Sprintf("public void %s(%s%s %s)", shape.BaseName, ref, source, param)
	}
}

// DefaultComment describes what the method copies.
func DefaultComment(target, source string, shape Shape) string {
	switch shape.Mode {
	case plan.ModeInit:
		return fmt.Sprintf("Creates a new %s from the values of %s.", target, source)
	case plan.ModeCopy:
		return fmt.Sprintf("Copies the values of %s into this %s.", source, target)
	case plan.ModeUpdate:
		return fmt.Sprintf("Updates this %s from %s and returns the number of values changed.", target, source)
	case plan.ModeCopyTo:
		return fmt.Sprintf("Copies the values of this %s into %s.", target, source)
	case plan.ModeUpdateTarget:
		return fmt.Sprintf("Updates %s from this %s and returns the number of values changed.", source, target)
	default:
		return fmt.Sprintf("Copies values between %s and %s.", target, source)
	}
}
