package gen

import (
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const fileTemplateText = `// <auto-generated/>

using System;
{{- if .Namespace}}

namespace {{.Namespace}};
{{- end}}

#nullable enable
#pragma warning disable CS0109  // the member does not hide an inherited member.

partial {{.Kind}} {{.Name}}
{
{{- range $i, $b := .Blocks}}
{{- if $i}}
{{end}}
{{if $b.Transform}}{{template "transform" $b.Transform}}
{{- else if $b.Passthrough}}{{template "passthrough" $b.Passthrough}}
{{- else}}{{template "method" $b.Method}}{{end}}
{{- end}}
}
`

const transformTemplateText = `{{define "transform"}}    /// <summary>
    /// Transforms the {{.Member}} value before assigning the value to the target.
    /// </summary>
    static partial void {{.Name}}(ref {{.Type}} value);
{{- end}}`

const passthroughTemplateText = `{{define "passthrough"}}    /// <summary>
    /// Transforms the {{.Member}} value and returns the new value.
    /// </summary>
    static {{.Type}} {{.Name}}({{.Source}} {{.Param}})
    {
{{- if .NullGuard}}
        if (ReferenceEquals(null, {{.Param}})) throw new ArgumentNullException(nameof({{.Param}}));
{{- end}}
        var value = {{.Param}}.{{.ReadMember}};
        {{.Transform}}(ref value);
        return value;
    }
{{- end}}`

const methodTemplateText = `{{define "method"}}{{range .Hooks}}    /// <summary>
    /// {{.Summary}}
    /// </summary>
    partial void {{.Name}}({{.Params}});

{{end}}    /// <summary>
    /// {{.Comment}}
    /// </summary>
    {{.Declaration}}
{{- if .Initializer}}
        : {{.Initializer}}
{{- end}}
    {
{{- if .Body}}
{{.Body | join "\n" | indent 8}}
{{- end}}
    }
{{- end}}`

var fileTemplate = template.Must(
	template.New("file").
		Funcs(sprig.TxtFuncMap()).
		Parse(fileTemplateText + transformTemplateText + passthroughTemplateText + methodTemplateText),
)
