//******************************************************************************************************
//  Parser.go - Gbtc
//
//  Copyright © 2021, Grid Protection Alliance.  All Rights Reserved.
//
//  Licensed to the Grid Protection Alliance (GPA) under one or more contributor license agreements. See
//  the NOTICE file distributed with this work for additional information regarding copyright ownership.
//  The GPA licenses this file to you under the MIT License (MIT), the "License"; you may not use this
//  file except in compliance with the License. You may obtain a copy of the License at:
//
//      http://opensource.org/licenses/MIT
//
//  Unless agreed to in writing, the subject software distributed under the License is distributed on an
//  "AS-IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. Refer to the
//  License for the specific language governing permissions and limitations.
//
//  Code Modification History:
//  ----------------------------------------------------------------------------------------------------
//  10/09/2021 - J. Ritchie Carroll
//       Generated original version of source code.
//
//******************************************************************************************************

package data

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/sttp/goapi/sttp/guid"
)

// parser implements a hand-written recursive-descent, precedence-climbing parser that
// converts a filter expression string into an Expression tree. Operator precedence,
// loosest to tightest, follows: OR, AND, NOT keyword, comparison/predicate, bitwise-or,
// bitwise-xor, bitwise-and, shift, additive, multiplicative, unary (+ - ~ !), primary.
type parser struct {
	lex     *lexer
	current lexerToken
}

func newParser(source string) (*parser, error) {
	p := &parser{lex: newLexer(source)}
	return p, p.advance()
}

func (p *parser) advance() error {
	token, err := p.lex.next()

	if err != nil {
		return err
	}

	p.current = token
	return nil
}

func (p *parser) atEOF() bool {
	return p.current.kind == tokenEOF
}

func (p *parser) isSymbol(text string) bool {
	switch p.current.kind {
	case tokenSymbol, tokenLeftParen, tokenRightParen:
		return p.current.text == text
	default:
		return false
	}
}

func (p *parser) isKeyword(text string) bool {
	return p.current.kind == tokenKeyword && p.current.text == text
}

func (p *parser) expectSymbol(text string) error {
	if !p.isSymbol(text) {
		return fmt.Errorf("expected %q, found %q", text, p.current.text)
	}

	return p.advance()
}

func (p *parser) expectKeyword(text string) error {
	if !p.isKeyword(text) {
		return fmt.Errorf("expected keyword %q, found %q", text, p.current.text)
	}

	return p.advance()
}

// parseExpression parses a complete expression and confirms the entire input was consumed.
func (p *parser) parseExpression() (Expression, error) {
	expr, err := p.parseOrExpression()

	if err != nil {
		return nil, err
	}

	if !p.atEOF() {
		return nil, fmt.Errorf("unexpected token %q following expression", p.current.text)
	}

	return expr, nil
}

func (p *parser) parseOrExpression() (Expression, error) {
	left, err := p.parseAndExpression()

	if err != nil {
		return nil, err
	}

	for p.isKeyword("OR") || p.isSymbol("||") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseAndExpression()

		if err != nil {
			return nil, err
		}

		left = NewOperatorExpression(ExpressionOperatorType.Or, left, right)
	}

	return left, nil
}

func (p *parser) parseAndExpression() (Expression, error) {
	left, err := p.parsePredicateExpression()

	if err != nil {
		return nil, err
	}

	for p.isKeyword("AND") || p.isSymbol("&&") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parsePredicateExpression()

		if err != nil {
			return nil, err
		}

		left = NewOperatorExpression(ExpressionOperatorType.And, left, right)
	}

	return left, nil
}

//gocyclo:ignore
func (p *parser) parsePredicateExpression() (Expression, error) {
	left, err := p.parseBitwiseOrExpression()

	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.isKeyword("IS"):
			if err := p.advance(); err != nil {
				return nil, err
			}

			negated := false

			if p.current.kind == tokenSymbol && p.current.text == "!" {
				negated = true

				if err := p.advance(); err != nil {
					return nil, err
				}
			} else if p.isKeyword("NOT") {
				negated = true

				if err := p.advance(); err != nil {
					return nil, err
				}
			}

			if err := p.expectKeyword("NULL"); err != nil {
				return nil, err
			}

			operator := ExpressionOperatorType.IsNull

			if negated {
				operator = ExpressionOperatorType.IsNotNull
			}

			left = NewOperatorExpression(operator, left, nil)
		case p.isKeyword("LIKE") || p.isKeyword("NOT") || (p.current.kind == tokenSymbol && p.current.text == "!"):
			negated := false

			if p.isKeyword("NOT") || (p.current.kind == tokenSymbol && p.current.text == "!") {
				// Only consume as negation when followed by LIKE or IN; otherwise this belongs to unary parsing.
				savedToken := p.current
				savedPos := p.lex.pos

				if err := p.advance(); err != nil {
					return nil, err
				}

				if !p.isKeyword("LIKE") && !p.isKeyword("IN") {
					p.current = savedToken
					p.lex.pos = savedPos
					return left, nil
				}

				negated = true
			}

			if p.isKeyword("LIKE") {
				if err := p.advance(); err != nil {
					return nil, err
				}

				exactMatch := false

				if p.isKeyword("BINARY") {
					exactMatch = true

					if err := p.advance(); err != nil {
						return nil, err
					}
				} else if p.isSymbol("===") {
					exactMatch = true

					if err := p.advance(); err != nil {
						return nil, err
					}
				}

				right, err := p.parseBitwiseOrExpression()

				if err != nil {
					return nil, err
				}

				operator := ExpressionOperatorType.Like

				switch {
				case negated && exactMatch:
					operator = ExpressionOperatorType.NotLikeExactMatch
				case negated:
					operator = ExpressionOperatorType.NotLike
				case exactMatch:
					operator = ExpressionOperatorType.LikeExactMatch
				}

				left = NewOperatorExpression(operator, left, right)
				continue
			}

			if p.isKeyword("IN") {
				inList, err := p.parseInList(left, negated)

				if err != nil {
					return nil, err
				}

				left = inList
				continue
			}

			return left, nil
		case p.isKeyword("IN"):
			inList, err := p.parseInList(left, false)

			if err != nil {
				return nil, err
			}

			left = inList
		case p.current.kind == tokenSymbol:
			operator, matched := comparisonOperatorFor(p.current.text)

			if !matched {
				return left, nil
			}

			if err := p.advance(); err != nil {
				return nil, err
			}

			right, err := p.parseBitwiseOrExpression()

			if err != nil {
				return nil, err
			}

			left = NewOperatorExpression(operator, left, right)
		default:
			return left, nil
		}
	}
}

func comparisonOperatorFor(symbol string) (ExpressionOperatorTypeEnum, bool) {
	switch symbol {
	case "=", "==":
		return ExpressionOperatorType.Equal, true
	case "===":
		return ExpressionOperatorType.EqualExactMatch, true
	case "<>", "!=":
		return ExpressionOperatorType.NotEqual, true
	case "!==":
		return ExpressionOperatorType.NotEqualExactMatch, true
	case "<":
		return ExpressionOperatorType.LessThan, true
	case "<=":
		return ExpressionOperatorType.LessThanOrEqual, true
	case ">":
		return ExpressionOperatorType.GreaterThan, true
	case ">=":
		return ExpressionOperatorType.GreaterThanOrEqual, true
	default:
		return 0, false
	}
}

func (p *parser) parseInList(value Expression, hasNotKeyword bool) (Expression, error) {
	if err := p.expectKeyword("IN"); err != nil {
		return nil, err
	}

	exactMatch := false

	if p.isKeyword("BINARY") || p.isSymbol("===") {
		exactMatch = true

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	var arguments []Expression

	if !p.isSymbol(")") {
		for {
			argument, err := p.parseOrExpression()

			if err != nil {
				return nil, err
			}

			arguments = append(arguments, argument)

			if p.current.kind == tokenComma {
				if err := p.advance(); err != nil {
					return nil, err
				}

				continue
			}

			break
		}
	}

	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}

	return NewInListExpression(value, arguments, hasNotKeyword, exactMatch), nil
}

func (p *parser) parseBitwiseOrExpression() (Expression, error) {
	left, err := p.parseBitwiseXorExpression()

	if err != nil {
		return nil, err
	}

	for p.isSymbol("|") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseBitwiseXorExpression()

		if err != nil {
			return nil, err
		}

		left = NewOperatorExpression(ExpressionOperatorType.BitwiseOr, left, right)
	}

	return left, nil
}

func (p *parser) parseBitwiseXorExpression() (Expression, error) {
	left, err := p.parseBitwiseAndExpression()

	if err != nil {
		return nil, err
	}

	for p.isSymbol("^") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseBitwiseAndExpression()

		if err != nil {
			return nil, err
		}

		left = NewOperatorExpression(ExpressionOperatorType.BitwiseXor, left, right)
	}

	return left, nil
}

func (p *parser) parseBitwiseAndExpression() (Expression, error) {
	left, err := p.parseShiftExpression()

	if err != nil {
		return nil, err
	}

	for p.isSymbol("&") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseShiftExpression()

		if err != nil {
			return nil, err
		}

		left = NewOperatorExpression(ExpressionOperatorType.BitwiseAnd, left, right)
	}

	return left, nil
}

func (p *parser) parseShiftExpression() (Expression, error) {
	left, err := p.parseAdditiveExpression()

	if err != nil {
		return nil, err
	}

	for p.isSymbol("<<") || p.isSymbol(">>") {
		operator := ExpressionOperatorType.BitShiftLeft

		if p.current.text == ">>" {
			operator = ExpressionOperatorType.BitShiftRight
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseAdditiveExpression()

		if err != nil {
			return nil, err
		}

		left = NewOperatorExpression(operator, left, right)
	}

	return left, nil
}

func (p *parser) parseAdditiveExpression() (Expression, error) {
	left, err := p.parseMultiplicativeExpression()

	if err != nil {
		return nil, err
	}

	for p.isSymbol("+") || p.isSymbol("-") {
		operator := ExpressionOperatorType.Add

		if p.current.text == "-" {
			operator = ExpressionOperatorType.Subtract
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseMultiplicativeExpression()

		if err != nil {
			return nil, err
		}

		left = NewOperatorExpression(operator, left, right)
	}

	return left, nil
}

func (p *parser) parseMultiplicativeExpression() (Expression, error) {
	left, err := p.parseUnaryExpression()

	if err != nil {
		return nil, err
	}

	for p.isSymbol("*") || p.isSymbol("/") || p.isSymbol("%") {
		var operator ExpressionOperatorTypeEnum

		switch p.current.text {
		case "*":
			operator = ExpressionOperatorType.Multiply
		case "/":
			operator = ExpressionOperatorType.Divide
		default:
			operator = ExpressionOperatorType.Modulus
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseUnaryExpression()

		if err != nil {
			return nil, err
		}

		left = NewOperatorExpression(operator, left, right)
	}

	return left, nil
}

func (p *parser) parseUnaryExpression() (Expression, error) {
	switch {
	case p.isSymbol("+"):
		if err := p.advance(); err != nil {
			return nil, err
		}

		value, err := p.parseUnaryExpression()

		if err != nil {
			return nil, err
		}

		return NewUnaryExpression(ExpressionUnaryType.Plus, value), nil
	case p.isSymbol("-"):
		if err := p.advance(); err != nil {
			return nil, err
		}

		value, err := p.parseUnaryExpression()

		if err != nil {
			return nil, err
		}

		return NewUnaryExpression(ExpressionUnaryType.Minus, value), nil
	case p.isKeyword("NOT"):
		if err := p.advance(); err != nil {
			return nil, err
		}

		value, err := p.parsePredicateExpression()

		if err != nil {
			return nil, err
		}

		return NewUnaryExpression(ExpressionUnaryType.Not, value), nil
	case p.isSymbol("~") || p.isSymbol("!"):
		if err := p.advance(); err != nil {
			return nil, err
		}

		value, err := p.parseUnaryExpression()

		if err != nil {
			return nil, err
		}

		return NewUnaryExpression(ExpressionUnaryType.Not, value), nil
	default:
		return p.parsePrimaryExpression()
	}
}

//gocyclo:ignore
func (p *parser) parsePrimaryExpression() (Expression, error) {
	switch p.current.kind {
	case tokenLeftParen:
		if err := p.advance(); err != nil {
			return nil, err
		}

		expr, err := p.parseOrExpression()

		if err != nil {
			return nil, err
		}

		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}

		return expr, nil
	case tokenInteger:
		return p.parseIntegerLiteral()
	case tokenHexInteger:
		return p.parseHexLiteral()
	case tokenDecimal:
		value, err := decimal.NewFromString(p.current.text)

		if err != nil {
			return nil, fmt.Errorf("invalid decimal literal %q: %w", p.current.text, err)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return NewValueExpression(ExpressionValueType.Decimal, value), nil
	case tokenDouble:
		value, err := strconv.ParseFloat(p.current.text, 64)

		if err != nil {
			return nil, fmt.Errorf("invalid floating-point literal %q: %w", p.current.text, err)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return NewValueExpression(ExpressionValueType.Double, value), nil
	case tokenString:
		value := p.current.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		return NewValueExpression(ExpressionValueType.String, value), nil
	case tokenGuid:
		value, err := guid.TryParse(p.current.text)

		if err != nil {
			return nil, fmt.Errorf("invalid Guid literal %q: %w", p.current.text, err)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return NewValueExpression(ExpressionValueType.Guid, value), nil
	case tokenDateTime:
		value, err := dateparse.ParseAny(p.current.text)

		if err != nil {
			return nil, fmt.Errorf("invalid date/time literal %q: %w", p.current.text, err)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return NewValueExpression(ExpressionValueType.DateTime, value), nil
	case tokenBoolean:
		value := strings.EqualFold(p.current.text, "TRUE")

		if err := p.advance(); err != nil {
			return nil, err
		}

		return NewValueExpression(ExpressionValueType.Boolean, value), nil
	case tokenNull:
		if err := p.advance(); err != nil {
			return nil, err
		}

		return NullValue(ExpressionValueType.Undefined), nil
	case tokenIdentifier:
		return p.parseIdentifierOrFunctionCall()
	default:
		return nil, fmt.Errorf("unexpected token %q while parsing expression", p.current.text)
	}
}

func (p *parser) parseIntegerLiteral() (Expression, error) {
	text := p.current.text

	if value, err := strconv.ParseInt(text, 10, 32); err == nil {
		if err := p.advance(); err != nil {
			return nil, err
		}

		return NewValueExpression(ExpressionValueType.Int32, int32(value)), nil
	}

	value, err := strconv.ParseInt(text, 10, 64)

	if err != nil {
		decimalValue, decimalErr := decimal.NewFromString(text)

		if decimalErr != nil {
			return nil, fmt.Errorf("invalid integer literal %q: %w", text, err)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return NewValueExpression(ExpressionValueType.Decimal, decimalValue), nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	return NewValueExpression(ExpressionValueType.Int64, value), nil
}

func (p *parser) parseHexLiteral() (Expression, error) {
	text := p.current.text

	if value, err := strconv.ParseInt(text, 16, 32); err == nil {
		if err := p.advance(); err != nil {
			return nil, err
		}

		return NewValueExpression(ExpressionValueType.Int32, int32(value)), nil
	}

	value, err := strconv.ParseInt(text, 16, 64)

	if err != nil {
		return nil, fmt.Errorf("invalid hexadecimal literal %q: %w", text, err)
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	return NewValueExpression(ExpressionValueType.Int64, value), nil
}

func (p *parser) parseIdentifierOrFunctionCall() (Expression, error) {
	name := p.current.text

	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.current.kind == tokenLeftParen {
		functionType, isFunction := functionTypeFor(name)

		if !isFunction {
			return nil, fmt.Errorf("unrecognized function %q", name)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		var arguments []Expression

		if p.current.kind != tokenRightParen {
			for {
				argument, err := p.parseOrExpression()

				if err != nil {
					return nil, err
				}

				arguments = append(arguments, argument)

				if p.current.kind == tokenComma {
					if err := p.advance(); err != nil {
						return nil, err
					}

					continue
				}

				break
			}
		}

		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}

		return NewFunctionExpression(functionType, arguments), nil
	}

	return &unresolvedColumn{name: name}, nil
}

// unresolvedColumn is a placeholder Expression produced while parsing bare identifiers. The
// expression tree resolves it against the active DataTable's columns at evaluation/build time.
type unresolvedColumn struct {
	name string
}

// Type gets expression type of the unresolvedColumn; it is never evaluated directly.
func (*unresolvedColumn) Type() ExpressionTypeEnum {
	return ExpressionType.Column
}
