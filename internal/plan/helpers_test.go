package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"copy-generator/internal/analyze"
	"copy-generator/internal/manifest"
)

const samplesYAML = `
namespace: OneBarker.Samples
types:
  - name: Bravo
    default_constructor: true
    attributes:
      - EnableInitFrom(typeof(Bravo))
      - EnableCopyFrom(typeof(Bravo))
      - EnableUpdateFrom(typeof(Bravo))
    members:
      - {name: NonNullableString, type: string}
      - {name: NullableString, type: "string?"}
      - name: IgnoredProperty
        type: int
        attributes: [SkipOnCopy]
  - name: Delta
    kind: record
    default_constructor: true
    attributes:
      - EnableInitFrom(typeof(Delta))
      - EnableInitFrom(typeof(Delta2))
    members:
      - {name: Name, type: string, accessors: "get; init;"}
      - {name: Age, type: int, accessors: "get; init;"}
  - name: Delta2
    kind: record
    members:
      - {name: Name, type: string, accessors: "get; init;"}
      - {name: Age, type: int, accessors: "get; init;"}
  - name: Foxtrot
    kind: record
    primary_constructor: ["string Name", "int Age"]
    attributes:
      - EnableInitFrom(typeof(Foxtrot2))
      - EnableInitFrom(typeof(Foxtrot))
    members:
      - {name: BirthYear, type: "int?", accessors: "get; init;"}
  - name: Foxtrot2
    kind: record
    primary_constructor: ["string Name", "int Age", "int? BirthYear"]
  - name: Kilo
    kind: record struct
    primary_constructor: ["float X", "float Y", "string? Name"]
    attributes:
      - EnableInitFrom(typeof(Kilo2))
      - EnableInitFrom(typeof(Kilo))
  - name: Kilo2
    kind: struct
    members:
      - {name: X, kind: field, type: float}
      - {name: Y, kind: field, type: float}
      - {name: Name, kind: field, type: "string?"}
  - name: Lima
    attributes:
      - EnableCopyTo(typeof(Lima2))
      - EnableUpdateTarget(typeof(Lima2))
      - EnableCopyTo(typeof(Lima3))
    members:
      - {name: Value, type: int, accessors: "get; init;"}
      - {name: ReadOnlyValue, type: int}
      - {name: Name, type: "string?"}
      - {name: Hits, type: int}
  - name: Lima2
    members:
      - {name: Value, type: int}
      - {name: ReadOnlyValue, type: int, accessors: "get; init;"}
      - {name: Name, type: "string?", accessors: "get; private set;"}
      - {name: Hits, type: int, accessors: "private get; set;"}
  - name: Lima3
    kind: struct
    members:
      - {name: Value, kind: field, type: int}
  - name: Counter
    attributes:
      - EnableUpdateFrom(typeof(Counter))
      - EnableUpdateFrom(typeof(CounterSource))
      - EnableCopyFrom(typeof(CounterSource))
    members:
      - {name: _a, kind: field, type: int, access: private}
      - {name: B, type: string}
      - {name: C, type: "string?"}
  - name: CounterSource
    members:
      - {name: A, type: int}
      - {name: B, type: string}
      - {name: C, type: "string?"}
`

const vectorsYAML = `
namespace: TestNamespace
types:
  - name: Vector1
    attributes:
      - EnableCopyFrom(typeof(Vector1))
      - EnableCopyFrom(typeof(Vector3))
      - EnableCopyFrom(typeof(Vector2))
      - EnableCopyFrom(typeof(Vector4))
    members:
      - {name: Name, type: string, accessors: "get; init;"}
      - {name: X, type: float}
      - {name: IsVector, type: bool, accessors: "get => true;"}
  - name: Vector2
    base: Vector1
    members:
      - {name: Y, type: float}
  - name: Vector3
    base: Vector2
    default_constructor: true
    attributes:
      - EnableInitFrom(typeof(Vector2))
      - EnableInitFrom(typeof(Coordinate))
    members:
      - {name: Z, type: float}
  - name: Vector4
    base: Vector3
    members:
      - {name: W, type: float}
  - name: Coordinate
    kind: record
    members:
      - {name: X, type: float, accessors: "get; init;"}
      - {name: Y, type: float, accessors: "get; init;"}
      - {name: Z, type: float, accessors: "get; init;"}
      - {name: IsVector, type: bool, accessors: "get; init;"}
`

func buildGraph(t *testing.T, docs ...string) *analyze.TypeGraph {
	t.Helper()

	files := make([]*manifest.File, 0, len(docs))

	for _, doc := range docs {
		mf, err := manifest.Parse([]byte(doc))
		require.NoError(t, err)

		files = append(files, mf)
	}

	graph, diags := manifest.Build(files...)
	require.NoError(t, diags.Error())

	return graph
}

func mustType(t *testing.T, g *analyze.TypeGraph, name string) *analyze.TypeInfo {
	t.Helper()

	typ := g.Lookup(name, "")
	require.NotNil(t, typ, name)

	return typ
}

func planFor(t *testing.T, g *analyze.TypeGraph, target string, opts ...Option) TargetPlan {
	t.Helper()

	reqs, diags := ResolveRequests(g)
	require.NoError(t, diags.Error())

	typ := mustType(t, g, target)

	var own []Request

	for _, r := range reqs {
		if r.Target.Same(typ) {
			own = append(own, r)
		}
	}

	require.NotEmpty(t, own, "no requests for %s", target)

	return NewPlanner(opts...).PlanTarget(typ, own)
}

func findMethod(t *testing.T, tp TargetPlan, mode Mode, source string) *MethodPlan {
	t.Helper()

	for i := range tp.Methods {
		if tp.Methods[i].Mode == mode && tp.Methods[i].Source == source {
			return &tp.Methods[i]
		}
	}

	require.FailNow(t, "method not found", "%s %s(%s)", tp.Name, mode, source)

	return nil
}

// object is an in-memory instance used to execute method plans.
type object map[string]any

// execute runs m the way the generated C# would, with identity transforms.
// receiver is "this"; param is the method parameter (nil for a null argument).
// It returns the change count for counted modes.
func execute(t *testing.T, m *MethodPlan, receiver, param object) int {
	t.Helper()

	if m.NullGuard && param == nil {
		require.False(t, m.Config.IsConstructor(), "constructors throw on a null source")
		return 0
	}

	if m.SelfGuard && sameObject(receiver, param) {
		return 0
	}

	write, read := receiver, param
	if m.Config.Swap {
		write, read = param, receiver
	}

	count := 0

	for _, s := range m.Steps {
		incoming := read[s.ReadMember]
		current := write[s.Member]

		if s.Null == NullNonNullable && incoming == nil {
			continue
		}

		if !m.Config.Counted() {
			write[s.Member] = incoming
			continue
		}

		if current != incoming {
			write[s.Member] = incoming
			count++
		}
	}

	return count
}

func sameObject(a, b object) bool {
	if a == nil || b == nil {
		return false
	}

	a["\x00probe"] = true
	defer delete(a, "\x00probe")

	_, ok := b["\x00probe"]

	return ok
}
