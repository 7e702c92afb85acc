// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

const i18nPkgName = "i18n"

// message identifies a catalogue entry.
type message struct {
	ctx    string
	id     string
	plural string
}

type ref struct {
	file string
	line int
}

// callShape locates the string arguments of an i18n function.
// A negative index means the function has no such argument.
type callShape struct {
	ctx, id, plural int
}

var callShapes = map[string]callShape{
	"Tr":           {ctx: -1, id: 1, plural: -1},
	"NewUserError": {ctx: -1, id: 1, plural: -1},
	"TrC":          {ctx: 1, id: 2, plural: -1},
	"TrN":          {ctx: -1, id: 1, plural: 2},
	"TrNC":         {ctx: 1, id: 2, plural: 3},
}

// catalog accumulates message references across packages.
type catalog struct {
	root string
	refs map[message][]ref

	// per package
	fset *token.FileSet
	info *types.Info
}

func newCatalog(root string) *catalog {
	return &catalog{root: root, refs: make(map[message][]ref)}
}

// scan records the messages of one package: calls of the i18n functions,
// conversions to i18n.MsgKey, arguments passed as MsgKey parameters and
// constant MsgKey elements of composite literals.
func (c *catalog) scan(pkg *packages.Package) {
	if pkg.TypesInfo == nil {
		return
	}

	c.fset = pkg.Fset
	c.info = pkg.TypesInfo

	for _, file := range pkg.Syntax {
		ast.Inspect(file, func(n ast.Node) bool {
			switch x := n.(type) {
			case *ast.CallExpr:
				c.call(x)
			case *ast.CompositeLit:
				c.literal(x)
			}

			return true
		})
	}
}

func (c *catalog) call(x *ast.CallExpr) {
	if tv, ok := c.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && isMsgKey(tv.Type) {
			c.addConst(x.Args[0])
		}

		return
	}

	if sel, ok := x.Fun.(*ast.SelectorExpr); ok {
		if fn, ok := c.info.Uses[sel.Sel].(*types.Func); ok && inI18n(fn) {
			if shape, ok := callShapes[fn.Name()]; ok {
				c.addCall(x, shape)

				return
			}
		}
	}

	sig, ok := c.info.TypeOf(x.Fun).(*types.Signature)
	if !ok || sig.Params().Len() == 0 {
		return
	}

	params := sig.Params()
	last := params.Len() - 1

	for i, arg := range x.Args {
		var pt types.Type

		switch {
		case sig.Variadic() && i >= last:
			if x.Ellipsis != token.NoPos {
				continue
			}

			pt = params.At(last).Type().(*types.Slice).Elem()
		case i <= last:
			pt = params.At(i).Type()
		default:
			return
		}

		if isMsgKey(pt) {
			c.addConst(arg)
		}
	}
}

func (c *catalog) addCall(x *ast.CallExpr, shape callShape) {
	arg := func(i int) (string, bool) {
		if i < 0 {
			return "", true
		}

		if i >= len(x.Args) {
			return "", false
		}

		return c.constString(x.Args[i])
	}

	ctx, ok1 := arg(shape.ctx)
	id, ok2 := arg(shape.id)
	plural, ok3 := arg(shape.plural)

	if ok1 && ok2 && ok3 {
		c.add(x.Args[shape.id].Pos(), message{ctx: ctx, id: id, plural: plural})
	}
}

func (c *catalog) literal(x *ast.CompositeLit) {
	t := c.info.TypeOf(x)
	if t == nil {
		return
	}

	if p, ok := t.Underlying().(*types.Pointer); ok {
		t = p.Elem()
	}

	switch u := t.Underlying().(type) {
	case *types.Map:
		keys, values := isMsgKey(u.Key()), isMsgKey(u.Elem())

		for _, elt := range x.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}

			if keys {
				c.addConst(kv.Key)
			}

			if values {
				c.addConst(kv.Value)
			}
		}

	case *types.Slice:
		c.elements(x, u.Elem())

	case *types.Array:
		c.elements(x, u.Elem())

	case *types.Struct:
		for i, elt := range x.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				if f := structField(u, kv.Key); f != nil && isMsgKey(f.Type()) {
					c.addConst(kv.Value)
				}

				continue
			}

			if i < u.NumFields() && isMsgKey(u.Field(i).Type()) {
				c.addConst(elt)
			}
		}
	}
}

func (c *catalog) elements(x *ast.CompositeLit, elem types.Type) {
	if !isMsgKey(elem) {
		return
	}

	for _, elt := range x.Elts {
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			elt = kv.Value
		}

		c.addConst(elt)
	}
}

func structField(s *types.Struct, key ast.Expr) *types.Var {
	id, ok := key.(*ast.Ident)
	if !ok {
		return nil
	}

	for i := range s.NumFields() {
		if f := s.Field(i); f.Name() == id.Name {
			return f
		}
	}

	return nil
}

func (c *catalog) addConst(expr ast.Expr) {
	if id, ok := c.constString(expr); ok {
		c.add(expr.Pos(), message{id: id})
	}
}

func (c *catalog) add(pos token.Pos, msg message) {
	if msg.id == "" {
		return
	}

	p := c.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(c.root, file); err == nil {
		file = rel
	}

	c.refs[msg] = append(c.refs[msg], ref{file: filepath.ToSlash(file), line: p.Line})
}

// constString evaluates expr as a constant string, including named
// constants and concatenations.
func (c *catalog) constString(expr ast.Expr) (string, bool) {
	tv, ok := c.info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

func inI18n(obj types.Object) bool {
	return obj.Pkg() != nil && obj.Pkg().Name() == i18nPkgName
}

// isMsgKey reports whether t is the i18n.MsgKey type.
func isMsgKey(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()

	return obj != nil && obj.Name() == "MsgKey" && inI18n(obj)
}
