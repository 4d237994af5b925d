package manifest

import (
	"fmt"
	"strings"

	"copy-generator/internal/analyze"
)

const defaultAccessors = "get; set;"

// parseAccessors parses a property accessor list such as "get; private set;",
// "get; init;" or "get => _value;". Accessors without a modifier inherit the
// property's accessibility.
func parseAccessors(s string, propertyAccess analyze.Accessibility) (getter, setter *analyze.Accessor, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = defaultAccessors
	}

	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")

	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Expression bodies are irrelevant to copying.
		if idx := strings.Index(part, "=>"); idx >= 0 {
			part = strings.TrimSpace(part[:idx])
		}

		fields := strings.Fields(part)
		if len(fields) == 0 {
			return nil, nil, fmt.Errorf("accessor list %q: empty accessor", s)
		}

		keyword := fields[len(fields)-1]
		access := propertyAccess

		if len(fields) > 1 {
			parsed, ok := analyze.ParseAccessibility(strings.Join(fields[:len(fields)-1], " "))
			if !ok {
				return nil, nil, fmt.Errorf("accessor list %q: invalid modifier in %q", s, part)
			}

			access = parsed
		}

		acc := &analyze.Accessor{Access: access}

		switch keyword {
		case "get":
			if getter != nil {
				return nil, nil, fmt.Errorf("accessor list %q: duplicate get", s)
			}

			getter = acc
		case "set", "init":
			if setter != nil {
				return nil, nil, fmt.Errorf("accessor list %q: duplicate set/init", s)
			}

			acc.InitOnly = keyword == "init"
			setter = acc
		default:
			return nil, nil, fmt.Errorf("accessor list %q: unknown accessor %q", s, keyword)
		}
	}

	if getter == nil && setter == nil {
		return nil, nil, fmt.Errorf("accessor list %q: no accessors", s)
	}

	return getter, setter, nil
}
