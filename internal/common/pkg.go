package common

import "strings"

// QualifiedName joins a namespace and a type name with a dot.
// Returns name unchanged if namespace is empty (global namespace).
func QualifiedName(namespace, name string) string {
	if namespace == "" {
		return name
	}

	return namespace + "." + name
}

// SplitQualified splits "A.B.C" into namespace "A.B" and name "C".
func SplitQualified(qualified string) (namespace, name string) {
	lastDot := strings.LastIndex(qualified, ".")
	if lastDot < 0 {
		return "", qualified
	}

	return qualified[:lastDot], qualified[lastDot+1:]
}
