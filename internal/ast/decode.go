package ast

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/strata-lang/strata/internal/source"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// The parser service hands the checker its syntax tree as a JSON dump, one
// object per node with a "kind" discriminator. DecodeFile reconstructs the
// immutable tree from that dump. Unknown kinds are decode errors, not
// diagnostics: a malformed dump means the parser and checker disagree on the
// wire contract, which is not something the user can fix in their document.

type wireSpan struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

type wireNode struct {
	Kind string   `json:"kind"`
	Span wireSpan `json:"span"`

	Name string `json:"name,omitempty"` // ident, decl and property names
	Type string `json:"type,omitempty"` // resource type ref / module source
	Op   string `json:"op,omitempty"`

	Int  int64  `json:"int,omitempty"`
	Str  string `json:"str,omitempty"`
	Bool bool   `json:"bool,omitempty"`

	Left   *wireNode `json:"left,omitempty"`
	Right  *wireNode `json:"right,omitempty"`
	Cond   *wireNode `json:"cond,omitempty"`
	Then   *wireNode `json:"then,omitempty"`
	Else   *wireNode `json:"else,omitempty"`
	Callee *wireNode `json:"callee,omitempty"`
	Target *wireNode `json:"target,omitempty"`
	Index  *wireNode `json:"index,omitempty"`
	Member *wireNode `json:"member,omitempty"`
	Value  *wireNode `json:"value,omitempty"`
	Source *wireNode `json:"source,omitempty"`
	Body   *wireNode `json:"body,omitempty"`
	Item   *wireNode `json:"item,omitempty"`

	Args   []*wireNode `json:"args,omitempty"`
	Items  []*wireNode `json:"items,omitempty"`
	Params []*wireNode `json:"params,omitempty"`
	Props  []*wireNode `json:"props,omitempty"`
	Decls  []*wireNode `json:"decls,omitempty"`
}

// DecodeFile decodes a parser tree dump into a File.
func DecodeFile(data []byte) (*File, error) {
	var root wireNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "unmarshaling tree dump")
	}
	if root.Kind != "file" {
		return nil, errors.Errorf("tree dump root has kind %q, want \"file\"", root.Kind)
	}

	decls := make([]Decl, 0, len(root.Decls))
	for _, wd := range root.Decls {
		decl, err := decodeDecl(wd)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return NewFile(decls, root.Span.toSpan()), nil
}

func (w wireSpan) toSpan() source.Span {
	return source.Span{
		Filename: w.File,
		Line:     w.Line,
		Column:   w.Column,
		Start:    w.Start,
		End:      w.End,
	}
}

func decodeDecl(w *wireNode) (Decl, error) {
	if w == nil {
		return nil, errors.New("missing declaration node")
	}
	name := NewIdent(w.Name, w.Span.toSpan())

	switch w.Kind {
	case "var":
		value, err := decodeExpr(w.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "var %q", w.Name)
		}
		return NewVarDecl(name, value, w.Span.toSpan()), nil
	case "resource":
		body, err := decodeExpr(w.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "resource %q", w.Name)
		}
		return NewResourceDecl(name, w.Type, body, w.Span.toSpan()), nil
	case "module":
		body, err := decodeExpr(w.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "module %q", w.Name)
		}
		return NewModuleDecl(name, w.Type, body, w.Span.toSpan()), nil
	default:
		return nil, errors.Errorf("unknown declaration kind %q", w.Kind)
	}
}

func decodeExpr(w *wireNode) (Expr, error) {
	if w == nil {
		return nil, errors.New("missing expression node")
	}
	span := w.Span.toSpan()

	switch w.Kind {
	case "ident":
		return NewIdent(w.Name, span), nil
	case "int":
		return NewIntegerLit(w.Int, span), nil
	case "string":
		return NewStringLit(w.Str, span), nil
	case "bool":
		return NewBoolLit(w.Bool, span), nil
	case "null":
		return NewNullLit(span), nil

	case "array":
		items, err := decodeExprs(w.Items)
		if err != nil {
			return nil, errors.Wrap(err, "array item")
		}
		return NewArrayExpr(items, span), nil

	case "object":
		props := make([]*ObjectProperty, 0, len(w.Props))
		for _, wp := range w.Props {
			value, err := decodeExpr(wp.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "property %q", wp.Name)
			}
			props = append(props, NewObjectProperty(NewIdent(wp.Name, wp.Span.toSpan()), value, wp.Span.toSpan()))
		}
		return NewObjectExpr(props, span), nil

	case "binary":
		left, err := decodeExpr(w.Left)
		if err != nil {
			return nil, errors.Wrapf(err, "left operand of %q", w.Op)
		}
		right, err := decodeExpr(w.Right)
		if err != nil {
			return nil, errors.Wrapf(err, "right operand of %q", w.Op)
		}
		return NewBinaryExpr(Operator(w.Op), left, right, span), nil

	case "ternary":
		cond, err := decodeExpr(w.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "ternary condition")
		}
		then, err := decodeExpr(w.Then)
		if err != nil {
			return nil, errors.Wrap(err, "ternary true branch")
		}
		els, err := decodeExpr(w.Else)
		if err != nil {
			return nil, errors.Wrap(err, "ternary false branch")
		}
		return NewTernaryExpr(cond, then, els, span), nil

	case "call":
		callee, err := decodeExpr(w.Callee)
		if err != nil {
			return nil, errors.Wrap(err, "callee")
		}
		args, err := decodeExprs(w.Args)
		if err != nil {
			return nil, errors.Wrap(err, "call argument")
		}
		return NewCallExpr(callee, args, span), nil

	case "lambda":
		params := make([]*Ident, 0, len(w.Params))
		for _, wp := range w.Params {
			params = append(params, NewIdent(wp.Name, wp.Span.toSpan()))
		}
		// A nil body is legal here: it encodes a dangling arrow the parser
		// recovered past, which the checker reports as IncompleteLambda.
		var body Expr
		if w.Body != nil {
			var err error
			body, err = decodeExpr(w.Body)
			if err != nil {
				return nil, errors.Wrap(err, "lambda body")
			}
		}
		return NewLambdaExpr(params, body, span), nil

	case "member":
		target, err := decodeExpr(w.Target)
		if err != nil {
			return nil, errors.Wrap(err, "member target")
		}
		return NewMemberExpr(target, NewIdent(w.Name, span), span), nil

	case "index":
		target, err := decodeExpr(w.Target)
		if err != nil {
			return nil, errors.Wrap(err, "index target")
		}
		index, err := decodeExpr(w.Index)
		if err != nil {
			return nil, errors.Wrap(err, "index expression")
		}
		return NewIndexExpr(target, index, span), nil

	case "paren":
		inner, err := decodeExpr(w.Value)
		if err != nil {
			return nil, errors.Wrap(err, "parenthesized expression")
		}
		return NewParenExpr(inner, span), nil

	case "for":
		var item, index *Ident
		if w.Item != nil {
			item = NewIdent(w.Item.Name, w.Item.Span.toSpan())
		}
		if w.Index != nil && w.Index.Kind == "ident" {
			index = NewIdent(w.Index.Name, w.Index.Span.toSpan())
		}
		src, err := decodeExpr(w.Source)
		if err != nil {
			return nil, errors.Wrap(err, "for source")
		}
		body, err := decodeExpr(w.Body)
		if err != nil {
			return nil, errors.Wrap(err, "for body")
		}
		return NewForExpr(item, index, src, body, span), nil

	default:
		return nil, errors.Errorf("unknown expression kind %q", w.Kind)
	}
}

func decodeExprs(ws []*wireNode) ([]Expr, error) {
	exprs := make([]Expr, 0, len(ws))
	for _, w := range ws {
		expr, err := decodeExpr(w)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}
