package sqlplan

import (
	"strings"

	"github.com/kokes/colexec/internal/errs"
	"github.com/kokes/colexec/internal/types"
)

// precedence levels, named after the teacher's commented-out ladder in
// query/expr/parser.go (LOWEST/EQUALS/LESSGREATER/SUM/PRODUCT/PREFIX/
// CALL) - that file never wires them up, so this is the first working
// implementation of the ladder it sketches, not a copy of one.
const (
	precLowest = iota
	precOr
	precAnd
	precEquals     // = != < <= > >=
	precSum        // + -
	precProduct    // * / %
	precPrefix     // unary -
	precCall
)

func precedenceOf(t tokenType) int {
	switch t {
	case tokOr:
		return precOr
	case tokAnd:
		return precAnd
	case tokEq, tokNeq, tokLt, tokLte, tokGt, tokGte:
		return precEquals
	case tokPlus, tokMinus:
		return precSum
	case tokStar, tokSlash, tokPercent:
		return precProduct
	default:
		return precLowest
	}
}

type parser struct {
	toks []token
	pos  int
}

// Parse tokenizes and parses a single SQL statement.
func Parse(sql string) (Statement, error) {
	toks, err := tokenize(sql)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	switch p.cur().typ {
	case tokCreate:
		return p.parseCreateExternalTable()
	case tokSelect:
		return p.parseSelect()
	default:
		return nil, errs.Parsef("expected CREATE or SELECT, got %q", p.cur().value)
	}
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) peek() token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return token{typ: tokEOF}
}
func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(t tokenType, what string) (token, error) {
	if p.cur().typ != t {
		return token{}, errs.Parsef("expected %s, got %q", what, p.cur().value)
	}
	return p.advance(), nil
}

// ---- CREATE EXTERNAL TABLE ----

func (p *parser) parseCreateExternalTable() (Statement, error) {
	if _, err := p.expect(tokCreate, "CREATE"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokExternal, "EXTERNAL"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokTable, "TABLE"); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent, "table name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLparen, "("); err != nil {
		return nil, err
	}
	var cols []ColumnDef
	for {
		colName, err := p.expect(tokIdent, "column name")
		if err != nil {
			return nil, err
		}
		typeTok, err := p.expect(tokIdent, "column type")
		if err != nil {
			return nil, err
		}
		dt, err := types.ParseDtype(typeTok.value)
		if err != nil {
			return nil, errs.Parsef("column %s: %s", colName.value, err)
		}
		cols = append(cols, ColumnDef{Name: colName.value, Dtype: dt})
		if p.cur().typ == tokComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(tokRparen, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokStored, "STORED"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokAs, "AS"); err != nil {
		return nil, err
	}
	formatTok, err := p.expect(tokIdent, "storage format")
	if err != nil {
		return nil, err
	}
	format, err := parseStorageFormat(formatTok.value)
	if err != nil {
		return nil, err
	}

	hasHeader := true
	if format == StorageCSV && (p.cur().typ == tokWith || p.cur().typ == tokWithout) {
		without := p.cur().typ == tokWithout
		p.advance()
		if _, err := p.expect(tokHeader, "HEADER"); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRow, "ROW"); err != nil {
			return nil, err
		}
		hasHeader = !without
	}

	if _, err := p.expect(tokLocation, "LOCATION"); err != nil {
		return nil, err
	}
	loc, err := p.expect(tokLiteralString, "location string")
	if err != nil {
		return nil, err
	}

	return CreateExternalTable{
		TableName: name.value,
		Columns:   cols,
		Format:    format,
		HasHeader: hasHeader,
		Location:  loc.value,
	}, nil
}

func parseStorageFormat(s string) (StorageFormat, error) {
	switch strings.ToUpper(s) {
	case "CSV":
		return StorageCSV, nil
	case "NDJSON":
		return StorageNdJSON, nil
	case "PARQUET":
		return StorageParquet, nil
	default:
		return 0, errs.Parsef("unknown storage format: %s", s)
	}
}

// ---- SELECT ----

func (p *parser) parseSelect() (Statement, error) {
	if _, err := p.expect(tokSelect, "SELECT"); err != nil {
		return nil, err
	}

	var items []SelectItem
	for {
		if p.cur().typ == tokStar {
			p.advance()
			items = append(items, SelectItem{Star: true})
		} else {
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			alias := ""
			if p.cur().typ == tokAs {
				p.advance()
				tok, err := p.expect(tokIdent, "alias")
				if err != nil {
					return nil, err
				}
				alias = tok.value
			}
			items = append(items, SelectItem{Expr: e, Alias: alias})
		}
		if p.cur().typ == tokComma {
			p.advance()
			continue
		}
		break
	}

	sel := Select{Items: items}

	if p.cur().typ == tokFrom {
		p.advance()
		tableTok, err := p.expect(tokIdent, "table name")
		if err != nil {
			return nil, err
		}
		sel.From = tableTok.value
	}

	if p.cur().typ == tokWhere {
		p.advance()
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		sel.Where = e
	}

	if p.cur().typ == tokGroup {
		p.advance()
		if _, err := p.expect(tokBy, "BY"); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			sel.GroupBy = append(sel.GroupBy, e)
			if p.cur().typ == tokComma {
				p.advance()
				continue
			}
			break
		}
	}

	if p.cur().typ == tokLimit {
		p.advance()
		n, err := p.expect(tokLiteralInt, "LIMIT count")
		if err != nil {
			return nil, err
		}
		v, err := parseIntLiteral(n.value)
		if err != nil {
			return nil, err
		}
		limit := int(v)
		sel.Limit = &limit
	}

	if p.cur().typ != tokEOF {
		return nil, errs.Parsef("unexpected trailing input at %q", p.cur().value)
	}

	return sel, nil
}

// ---- expressions: precedence-climbing over binary operators, with IS
// [NOT] NULL as a postfix operator bound just above comparison. ----

func (p *parser) parseExpression(minPrec int) (sqlExpr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		if p.cur().typ == tokIs && minPrec < precSum {
			node, err := p.parseIsNull(left)
			if err != nil {
				return nil, err
			}
			left = node
			continue
		}
		prec := precedenceOf(p.cur().typ)
		if prec <= minPrec {
			break
		}
		op := p.advance().typ
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = sqlBinary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseIsNull(e sqlExpr) (sqlExpr, error) {
	p.advance() // IS
	not := false
	if p.cur().typ == tokNot {
		not = true
		p.advance()
	}
	if _, err := p.expect(tokNull, "NULL"); err != nil {
		return nil, err
	}
	return sqlIsNull{Expr: e, Not: not}, nil
}

func (p *parser) parsePrefix() (sqlExpr, error) {
	if p.cur().typ == tokMinus {
		p.advance()
		switch p.cur().typ {
		case tokLiteralInt:
			v, err := parseIntLiteral(p.advance().value)
			if err != nil {
				return nil, err
			}
			return sqlLiteralInt{Value: -v}, nil
		case tokLiteralFloat:
			v, err := parseFloatLiteral(p.advance().value)
			if err != nil {
				return nil, err
			}
			return sqlLiteralFloat{Value: -v}, nil
		default:
			return nil, errs.Parsef("unary - is only supported directly on a numeric literal")
		}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (sqlExpr, error) {
	tok := p.cur()
	switch tok.typ {
	case tokLiteralInt:
		p.advance()
		v, err := parseIntLiteral(tok.value)
		if err != nil {
			return nil, err
		}
		return sqlLiteralInt{Value: v}, nil

	case tokLiteralFloat:
		p.advance()
		v, err := parseFloatLiteral(tok.value)
		if err != nil {
			return nil, err
		}
		return sqlLiteralFloat{Value: v}, nil

	case tokLiteralString:
		p.advance()
		return sqlLiteralString{Value: tok.value}, nil

	case tokNull:
		p.advance()
		return sqlLiteralNull{}, nil

	case tokCast:
		return p.parseCast()

	case tokLparen:
		p.advance()
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRparen, ")"); err != nil {
			return nil, err
		}
		return e, nil

	case tokIdent:
		p.advance()
		if p.cur().typ == tokLparen {
			return p.parseFuncCallArgs(tok.value)
		}
		if p.cur().typ == tokDot {
			p.advance()
			col, err := p.expect(tokIdent, "column name")
			if err != nil {
				return nil, err
			}
			return sqlColumn{Table: tok.value, Name: col.value}, nil
		}
		return sqlColumn{Name: tok.value}, nil

	default:
		return nil, errs.Parsef("unexpected token %q in expression", tok.value)
	}
}

func (p *parser) parseCast() (sqlExpr, error) {
	p.advance() // CAST
	if _, err := p.expect(tokLparen, "("); err != nil {
		return nil, err
	}
	e, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokAs, "AS"); err != nil {
		return nil, err
	}
	typeTok, err := p.expect(tokIdent, "type name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRparen, ")"); err != nil {
		return nil, err
	}
	return sqlCast{Expr: e, TypeName: typeTok.value}, nil
}

func (p *parser) parseFuncCallArgs(name string) (sqlExpr, error) {
	p.advance() // (
	if strings.ToUpper(name) == "COUNT" && p.cur().typ == tokStar {
		p.advance()
		if _, err := p.expect(tokRparen, ")"); err != nil {
			return nil, err
		}
		return sqlFuncCall{Name: name, Star: true}, nil
	}
	var args []sqlExpr
	if p.cur().typ != tokRparen {
		for {
			a, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.cur().typ == tokComma {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(tokRparen, ")"); err != nil {
		return nil, err
	}
	return sqlFuncCall{Name: name, Args: args}, nil
}
