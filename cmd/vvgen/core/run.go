// Package core implements vvgen's code generation: it parses a single
// Go source file, finds struct type declarations, and emits a
// "*_vv.go" companion defining MarshalVV/UnmarshalVV methods for each
// one, so callers don't pay adapter's reflection cost at runtime.
package core

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

// generatedStructs tracks struct types vvgen is generating methods for
// in the current run, so a field of one of those types can call its
// sibling's generated MarshalVV/UnmarshalVV directly instead of
// falling back to adapter's reflection path.
var generatedStructs = map[string]struct{}{}

// Options configures how generation runs.
type Options struct {
	Verbose bool
	// Structs, if non-empty, restricts generation to the named
	// struct types. Names must match Go type names exactly (no
	// package qualification).
	Structs []string
}

// Run generates vv code for a single Go source file, emitting
// per-struct MarshalVV/UnmarshalVV implementations into outputPath.
func Run(inputPath, outputPath string, opts Options) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, inputPath, nil, parser.ParseComments)
	if err != nil {
		return err
	}
	if opts.Verbose {
		fmt.Fprintf(os.Stderr, "vvgen: processing %s\n", inputPath)
	}
	return generateStructCode(file, outputPath, file.Name.Name, opts)
}

type fieldSpec struct {
	GoName      string
	VVName      string
	OmitEmpty   bool
	EncodeExpr  string // value.Value expression for this field
	DecodeStmt  string // statement(s) assigning the field from "entryVal"
	Unsupported bool
}

type structSpec struct {
	Name   string
	Fields []fieldSpec
}

// generateStructCode finds struct types in file and generates
// MarshalVV/UnmarshalVV methods for each, honoring vv tags.
//
// vv tags: "vv:\"name,omitempty\"" renames the field and/or skips it
// from MarshalVV's output when it is the zero value. A tag of "-"
// drops the field entirely; this differs from adapter.fieldName, which
// keeps a "-" tagged field under its Go name.
func generateStructCode(file *ast.File, outputPath, pkg string, opts Options) error {
	var structs []structSpec

	var allowed map[string]struct{}
	if len(opts.Structs) > 0 {
		allowed = make(map[string]struct{}, len(opts.Structs))
		for _, name := range opts.Structs {
			if name = strings.TrimSpace(name); name != "" {
				allowed[name] = struct{}{}
			}
		}
	}

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			if len(allowed) > 0 {
				if _, ok := allowed[ts.Name.Name]; !ok {
					continue
				}
			}
			ss := buildStructSpec(ts.Name.Name, st)
			if len(ss.Fields) > 0 {
				generatedStructs[ss.Name] = struct{}{}
				structs = append(structs, ss)
			}
		}
	}

	if len(structs) == 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	var buf bytes.Buffer
	data := struct {
		Package string
		Structs []structSpec
	}{Package: pkg, Structs: structs}
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return err
	}

	src, err := imports.Process(outputPath, buf.Bytes(), nil)
	if err != nil {
		if formatted, ferr := format.Source(buf.Bytes()); ferr == nil {
			src = formatted
		} else {
			src = buf.Bytes()
		}
	}
	_, err = out.Write(src)
	return err
}

func buildStructSpec(name string, st *ast.StructType) structSpec {
	ss := structSpec{Name: name}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue // skip embedded fields
		}
		goName := field.Names[0].Name
		if !ast.IsExported(goName) {
			continue
		}
		vvName, omitEmpty, ignore := resolveTag(goName, field.Tag)
		if ignore {
			continue
		}
		fs := fieldSpec{GoName: goName, VVName: vvName, OmitEmpty: omitEmpty}
		fs.EncodeExpr, fs.Unsupported = encodeExprForField(goName, field.Type)
		fs.DecodeStmt = decodeStmtForField(goName, field.Type)
		ss.Fields = append(ss.Fields, fs)
	}
	return ss
}

// resolveTag applies the "vv" struct tag, falling back to the Go
// field name when absent (as adapter.fieldName does; unlike it, "-"
// sets ignore).
func resolveTag(goName string, tag *ast.BasicLit) (vvName string, omitEmpty, ignore bool) {
	vvName = goName
	if tag == nil {
		return
	}
	raw := tag.Value
	if len(raw) >= 2 && raw[0] == '`' && raw[len(raw)-1] == '`' {
		raw = raw[1 : len(raw)-1]
	}
	val, ok := structTagLookup(raw, "vv")
	if !ok {
		return
	}
	parts := strings.Split(val, ",")
	if parts[0] == "-" {
		ignore = true
		return
	}
	if parts[0] != "" {
		vvName = parts[0]
	}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			omitEmpty = true
		}
	}
	return
}

func structTagLookup(raw, key string) (string, bool) {
	tag := stripQuoted(raw)
	for tag != "" {
		tag = strings.TrimLeft(tag, " \t")
		if tag == "" {
			break
		}
		i := 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' {
			i++
		}
		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			break
		}
		name := tag[:i]
		tag = tag[i+1:]
		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			break
		}
		value := tag[1:i]
		tag = tag[i+1:]
		if name == key {
			return value, true
		}
	}
	return "", false
}

func stripQuoted(raw string) string { return raw }

// encodeExprForField returns a Go expression of type value.Value that
// encodes x.<goName>, and whether typ fell back to adapter.ToValue
// because vvgen doesn't special-case it.
func encodeExprForField(goName string, typ ast.Expr) (string, bool) {
	sel := "x." + goName
	switch t := typ.(type) {
	case *ast.Ident:
		switch t.Name {
		case "bool":
			return fmt.Sprintf("value.Bool(%s)", sel), false
		case "int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64":
			return fmt.Sprintf("value.Int(int64(%s))", sel), false
		case "float32", "float64":
			return fmt.Sprintf("value.Float(float64(%s))", sel), false
		case "string":
			return fmt.Sprintf("adapterStringToValue(%s)", sel), false
		}
		if _, ok := generatedStructs[t.Name]; ok {
			return fmt.Sprintf("mustMarshalVV(%s)", sel), false
		}
	case *ast.ArrayType:
		if id, ok := t.Elt.(*ast.Ident); ok && id.Name == "byte" && t.Len == nil {
			return fmt.Sprintf("adapterBytesToValue(%s)", sel), false
		}
	}
	return fmt.Sprintf("mustToValue(%s)", sel), true
}

// decodeStmtForField returns a Go statement assigning x.<goName> from
// a local variable "entryVal" already bound by the caller.
func decodeStmtForField(goName string, typ ast.Expr) string {
	dst := "x." + goName
	switch t := typ.(type) {
	case *ast.Ident:
		switch t.Name {
		case "bool":
			return fmt.Sprintf("%s = entryVal.AsBool()", dst)
		case "int", "int8", "int16", "int32", "int64":
			return fmt.Sprintf("%s = %s(entryVal.AsInt())", dst, t.Name)
		case "uint", "uint8", "uint16", "uint32", "uint64":
			return fmt.Sprintf("%s = %s(entryVal.AsInt())", dst, t.Name)
		case "float32", "float64":
			return fmt.Sprintf("%s = %s(entryVal.AsFloat())", dst, t.Name)
		case "string":
			return fmt.Sprintf("if s, err := adapterValueToString(entryVal); err != nil { return err } else { %s = s }", dst)
		}
		if _, ok := generatedStructs[t.Name]; ok {
			return fmt.Sprintf("if err := (&%s).UnmarshalVV(entryVal); err != nil { return err }", dst)
		}
	case *ast.ArrayType:
		if id, ok := t.Elt.(*ast.Ident); ok && id.Name == "byte" && t.Len == nil {
			return fmt.Sprintf("if bs, err := adapterValueToBytes(entryVal); err != nil { return err } else { %s = bs }", dst)
		}
	}
	return fmt.Sprintf("if err := adapterFromValue(entryVal, &%s); err != nil { return err }", dst)
}

var fileTemplate = template.Must(template.New("vv_file").Parse(`// Code generated by vvgen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/synadia-labs/valuable-value-go/adapter"
	"github.com/synadia-labs/valuable-value-go/value"
)

func mustToValue(x any) value.Value {
	v, err := adapter.ToValue(x)
	if err != nil {
		panic(err)
	}
	return v
}

func mustMarshalVV(m adapter.Marshaler) value.Value {
	v, err := m.MarshalVV()
	if err != nil {
		panic(err)
	}
	return v
}

func adapterFromValue(v value.Value, out any) error { return adapter.FromValue(v, out) }

func adapterStringToValue(s string) value.Value {
	v, _ := adapter.ToValue(s)
	return v
}

func adapterBytesToValue(bs []byte) value.Value {
	v, _ := adapter.ToValue(bs)
	return v
}

func adapterValueToString(v value.Value) (string, error) {
	var s string
	err := adapter.FromValue(v, &s)
	return s, err
}

func adapterValueToBytes(v value.Value) ([]byte, error) {
	var bs []byte
	err := adapter.FromValue(v, &bs)
	return bs, err
}

{{range .Structs}}
// MarshalVV converts a {{.Name}} to a value.Value.
func (x {{.Name}}) MarshalVV() (value.Value, error) {
	entries := make([]value.MapEntry, 0, {{len .Fields}})
{{range .Fields}}{{if .OmitEmpty}}	if !isZeroVV(x.{{.GoName}}) {
		entries = append(entries, value.MapEntry{Key: adapterStringToValue("{{.VVName}}"), Val: {{.EncodeExpr}}})
	}
{{else}}	entries = append(entries, value.MapEntry{Key: adapterStringToValue("{{.VVName}}"), Val: {{.EncodeExpr}}})
{{end}}{{end}}	return value.Map(entries...), nil
}

// UnmarshalVV populates a {{.Name}} from v.
func (x *{{.Name}}) UnmarshalVV(v value.Value) error {
{{range .Fields}}	if entryVal, ok := v.Get(adapterStringToValue("{{.VVName}}")); ok {
		{{.DecodeStmt}}
	}
{{end}}	return nil
}
{{end}}

func isZeroVV(x any) bool {
	switch t := x.(type) {
	case string:
		return t == ""
	case []byte:
		return len(t) == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case float64:
		return t == 0
	case bool:
		return !t
	default:
		return false
	}
}
`))
