//******************************************************************************************************
//  ExpressionTree.go - Gbtc
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
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sttp/goapi/sttp/guid"
)

// ExpressionTree represents a parsed filter expression that can be evaluated against a
// DataRow, or, when built with a table context, selected against the rows of a DataTable.
type ExpressionTree struct {
	root Expression

	// TableIDFields defines the table identification field names used to resolve
	// identifier-only filter expression statements, e.g., a bare Guid or measurement key.
	TableIDFields *TableIDFields

	// Table is the DataTable context this expression tree was generated against, if any.
	Table *DataTable

	// TopLimit restricts the number of matching rows Select returns; -1 means unlimited.
	TopLimit int

	// OrderByTerms defines the column sort order Select applies to matching rows.
	OrderByTerms []*OrderByTerm
}

func newExpressionTree(root Expression) *ExpressionTree {
	return &ExpressionTree{root: root, TableIDFields: DefaultTableIDFields, TopLimit: -1}
}

// Evaluate evaluates the expression tree using an optional DataRow context, required only
// when the expression references table columns.
func (et *ExpressionTree) Evaluate(row *DataRow) (*ValueExpression, error) {
	return et.evaluate(et.root, row)
}

// Select evaluates the expression tree as a WHERE clause against each row of the specified
// DataTable, applying any parsed TOP limit and ORDER BY terms.
func (et *ExpressionTree) Select(table *DataTable) ([]*DataRow, error) {
	matched := make([]*DataRow, 0, table.RowCount())

	for i := 0; i < table.RowCount(); i++ {
		row := table.Row(i)
		value, err := et.Evaluate(row)

		if err != nil {
			return nil, err
		}

		boolValue, err := value.Convert(ExpressionValueType.Boolean)

		if err != nil {
			return nil, err
		}

		if !boolValue.IsNull() && boolValue.booleanValue() {
			matched = append(matched, row)
		}
	}

	if len(et.OrderByTerms) > 0 {
		sortDataRows(matched, et.OrderByTerms)
	}

	if et.TopLimit > -1 && et.TopLimit < len(matched) {
		matched = matched[:et.TopLimit]
	}

	return matched, nil
}

func sortDataRows(rows []*DataRow, terms []*OrderByTerm) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, term := range terms {
			a := rows[i].ValueAsString(term.Column.Index())
			b := rows[j].ValueAsString(term.Column.Index())

			if !term.ExactMatch {
				a = strings.ToUpper(a)
				b = strings.ToUpper(b)
			}

			if a == b {
				continue
			}

			if term.Ascending {
				return a < b
			}

			return a > b
		}

		return false
	})
}

//gocyclo:ignore
func (et *ExpressionTree) evaluate(expr Expression, row *DataRow) (*ValueExpression, error) {
	if expr == nil {
		return NullValue(ExpressionValueType.Boolean), nil
	}

	switch expr.Type() {
	case ExpressionType.Value:
		return expr.(*ValueExpression), nil
	case ExpressionType.Unary:
		return et.evaluateUnary(expr.(*UnaryExpression), row)
	case ExpressionType.Column:
		return et.evaluateColumn(expr, row)
	case ExpressionType.InList:
		return et.evaluateInList(expr.(*InListExpression), row)
	case ExpressionType.Function:
		return et.evaluateFunction(expr.(*FunctionExpression), row)
	case ExpressionType.Operator:
		return et.evaluateOperator(expr.(*OperatorExpression), row)
	default:
		return nil, errors.New("unexpected expression type encountered")
	}
}

func (et *ExpressionTree) evaluateColumn(expr Expression, row *DataRow) (*ValueExpression, error) {
	var columnName string

	switch column := expr.(type) {
	case *ColumnExpression:
		return et.readColumnValue(column.DataColumn(), row)
	case *unresolvedColumn:
		columnName = column.name
	default:
		return nil, errors.New("unexpected column expression encountered")
	}

	var table *DataTable

	if row != nil {
		table = row.Parent()
	} else {
		table = et.Table
	}

	if table == nil {
		return nil, fmt.Errorf("cannot resolve column \"%s\", no table context is available", columnName)
	}

	dataColumn := table.ColumnByName(columnName)

	if dataColumn == nil {
		return nil, fmt.Errorf("column \"%s\" was not found in table \"%s\"", columnName, table.Name())
	}

	return et.readColumnValue(dataColumn, row)
}

func (et *ExpressionTree) readColumnValue(column *DataColumn, row *DataRow) (*ValueExpression, error) {
	if row == nil {
		return nil, fmt.Errorf("cannot evaluate column \"%s\" without a row context", column.Name())
	}

	value, err := row.Value(column.Index())

	if err != nil {
		return nil, err
	}

	return columnValueToExpressionValue(column.Type(), value)
}

//gocyclo:ignore
func columnValueToExpressionValue(dataType DataTypeEnum, value interface{}) (*ValueExpression, error) {
	switch dataType {
	case DataType.String:
		if value == nil {
			return NullValue(ExpressionValueType.String), nil
		}
		return NewValueExpression(ExpressionValueType.String, value.(string)), nil
	case DataType.Boolean:
		if value == nil {
			return NullValue(ExpressionValueType.Boolean), nil
		}
		return NewValueExpression(ExpressionValueType.Boolean, value.(bool)), nil
	case DataType.DateTime:
		if value == nil {
			return NullValue(ExpressionValueType.DateTime), nil
		}
		return NewValueExpression(ExpressionValueType.DateTime, value.(time.Time)), nil
	case DataType.Single:
		if value == nil {
			return NullValue(ExpressionValueType.Double), nil
		}
		return NewValueExpression(ExpressionValueType.Double, float64(value.(float32))), nil
	case DataType.Double:
		if value == nil {
			return NullValue(ExpressionValueType.Double), nil
		}
		return NewValueExpression(ExpressionValueType.Double, value.(float64)), nil
	case DataType.Decimal:
		if value == nil {
			return NullValue(ExpressionValueType.Decimal), nil
		}
		return NewValueExpression(ExpressionValueType.Decimal, value.(decimal.Decimal)), nil
	case DataType.Guid:
		if value == nil {
			return NullValue(ExpressionValueType.Guid), nil
		}
		return NewValueExpression(ExpressionValueType.Guid, value.(guid.Guid)), nil
	case DataType.Int8:
		if value == nil {
			return NullValue(ExpressionValueType.Int32), nil
		}
		return NewValueExpression(ExpressionValueType.Int32, int32(value.(int8))), nil
	case DataType.Int16:
		if value == nil {
			return NullValue(ExpressionValueType.Int32), nil
		}
		return NewValueExpression(ExpressionValueType.Int32, int32(value.(int16))), nil
	case DataType.Int32:
		if value == nil {
			return NullValue(ExpressionValueType.Int32), nil
		}
		return NewValueExpression(ExpressionValueType.Int32, value.(int32)), nil
	case DataType.Int64:
		if value == nil {
			return NullValue(ExpressionValueType.Int64), nil
		}
		return NewValueExpression(ExpressionValueType.Int64, value.(int64)), nil
	case DataType.UInt8:
		if value == nil {
			return NullValue(ExpressionValueType.Int32), nil
		}
		return NewValueExpression(ExpressionValueType.Int32, int32(value.(uint8))), nil
	case DataType.UInt16:
		if value == nil {
			return NullValue(ExpressionValueType.Int32), nil
		}
		return NewValueExpression(ExpressionValueType.Int32, int32(value.(uint16))), nil
	case DataType.UInt32:
		if value == nil {
			return NullValue(ExpressionValueType.Int64), nil
		}
		return NewValueExpression(ExpressionValueType.Int64, int64(value.(uint32))), nil
	case DataType.UInt64:
		if value == nil {
			return NullValue(ExpressionValueType.Decimal), nil
		}
		return NewValueExpression(ExpressionValueType.Decimal, decimal.RequireFromString(strconv.FormatUint(value.(uint64), 10))), nil
	default:
		return nil, fmt.Errorf("unexpected column data type encountered: %s", dataType.String())
	}
}

// expressionValueToColumnValue narrows a ValueExpression result down to the exact native Go type
// a computed DataColumn's typed getters expect for dataType, e.g. a computed Decimal column yields a
// float64, which DataRow.DecimalValue returns as is (non-computed Decimal columns are stored as
// decimal.Decimal and converted to float64 by DataRow.DecimalValue).
//gocyclo:ignore
func expressionValueToColumnValue(dataType DataTypeEnum, ve *ValueExpression) (interface{}, error) {
	if ve == nil || ve.IsNull() {
		return nil, nil
	}

	switch dataType {
	case DataType.String:
		converted, err := ve.Convert(ExpressionValueType.String)
		if err != nil {
			return nil, err
		}
		return converted.stringValue(), nil
	case DataType.Boolean:
		converted, err := ve.Convert(ExpressionValueType.Boolean)
		if err != nil {
			return nil, err
		}
		return converted.booleanValue(), nil
	case DataType.DateTime:
		converted, err := ve.Convert(ExpressionValueType.DateTime)
		if err != nil {
			return nil, err
		}
		return converted.dateTimeValue(), nil
	case DataType.Single:
		converted, err := ve.Convert(ExpressionValueType.Double)
		if err != nil {
			return nil, err
		}
		return float32(converted.doubleValue()), nil
	case DataType.Double:
		converted, err := ve.Convert(ExpressionValueType.Double)
		if err != nil {
			return nil, err
		}
		return converted.doubleValue(), nil
	case DataType.Decimal:
		converted, err := ve.Convert(ExpressionValueType.Double)
		if err != nil {
			return nil, err
		}
		return converted.doubleValue(), nil
	case DataType.Guid:
		converted, err := ve.Convert(ExpressionValueType.Guid)
		if err != nil {
			return nil, err
		}
		return converted.guidValue(), nil
	case DataType.Int8:
		converted, err := ve.Convert(ExpressionValueType.Int32)
		if err != nil {
			return nil, err
		}
		return int8(converted.int32Value()), nil
	case DataType.Int16:
		converted, err := ve.Convert(ExpressionValueType.Int32)
		if err != nil {
			return nil, err
		}
		return int16(converted.int32Value()), nil
	case DataType.Int32:
		converted, err := ve.Convert(ExpressionValueType.Int32)
		if err != nil {
			return nil, err
		}
		return converted.int32Value(), nil
	case DataType.Int64:
		converted, err := ve.Convert(ExpressionValueType.Int64)
		if err != nil {
			return nil, err
		}
		return converted.int64Value(), nil
	case DataType.UInt8:
		converted, err := ve.Convert(ExpressionValueType.Int32)
		if err != nil {
			return nil, err
		}
		return uint8(converted.int32Value()), nil
	case DataType.UInt16:
		converted, err := ve.Convert(ExpressionValueType.Int32)
		if err != nil {
			return nil, err
		}
		return uint16(converted.int32Value()), nil
	case DataType.UInt32:
		converted, err := ve.Convert(ExpressionValueType.Int64)
		if err != nil {
			return nil, err
		}
		return uint32(converted.int64Value()), nil
	case DataType.UInt64:
		converted, err := ve.Convert(ExpressionValueType.Int64)
		if err != nil {
			return nil, err
		}
		return uint64(converted.int64Value()), nil
	default:
		return nil, fmt.Errorf("unexpected column data type encountered: %s", dataType.String())
	}
}

func (et *ExpressionTree) evaluateUnary(expr *UnaryExpression, row *DataRow) (*ValueExpression, error) {
	value, err := et.evaluate(expr.Value(), row)

	if err != nil {
		return nil, err
	}

	if value.IsNull() {
		return NullValue(value.ValueType()), nil
	}

	switch expr.UnaryType() {
	case ExpressionUnaryType.Plus:
		return value, nil
	case ExpressionUnaryType.Minus:
		return negateValue(value)
	case ExpressionUnaryType.Not:
		return notValue(value)
	default:
		return nil, errors.New("unexpected unary expression type encountered")
	}
}

func negateValue(value *ValueExpression) (*ValueExpression, error) {
	switch value.ValueType() {
	case ExpressionValueType.Int32:
		return NewValueExpression(ExpressionValueType.Int32, -value.int32Value()), nil
	case ExpressionValueType.Int64:
		return NewValueExpression(ExpressionValueType.Int64, -value.int64Value()), nil
	case ExpressionValueType.Decimal:
		return NewValueExpression(ExpressionValueType.Decimal, value.decimalValue().Neg()), nil
	case ExpressionValueType.Double:
		return NewValueExpression(ExpressionValueType.Double, -value.doubleValue()), nil
	default:
		return nil, fmt.Errorf("cannot negate \"%s\" value", value.ValueType().String())
	}
}

func notValue(value *ValueExpression) (*ValueExpression, error) {
	switch value.ValueType() {
	case ExpressionValueType.Boolean:
		return NewValueExpression(ExpressionValueType.Boolean, !value.booleanValue()), nil
	case ExpressionValueType.Int32:
		return NewValueExpression(ExpressionValueType.Int32, ^value.int32Value()), nil
	case ExpressionValueType.Int64:
		return NewValueExpression(ExpressionValueType.Int64, ^value.int64Value()), nil
	default:
		return nil, fmt.Errorf("cannot apply \"NOT\" to \"%s\" value", value.ValueType().String())
	}
}

func (et *ExpressionTree) evaluateInList(expr *InListExpression, row *DataRow) (*ValueExpression, error) {
	sourceValue, err := et.evaluate(expr.Value(), row)

	if err != nil {
		return nil, err
	}

	if sourceValue.IsNull() {
		return NullValue(ExpressionValueType.Boolean), nil
	}

	found := false

	for _, argument := range expr.Arguments() {
		testValue, err := et.evaluate(argument, row)

		if err != nil {
			return nil, err
		}

		if testValue.IsNull() {
			continue
		}

		equal, err := valuesEqual(sourceValue, testValue, expr.ExactMatch())

		if err != nil {
			return nil, err
		}

		if equal {
			found = true
			break
		}
	}

	if expr.HasNotKeyword() {
		found = !found
	}

	return NewValueExpression(ExpressionValueType.Boolean, found), nil
}

func valuesEqual(left, right *ValueExpression, exactMatch bool) (bool, error) {
	if exactMatch && left.ValueType() == ExpressionValueType.String && right.ValueType() == ExpressionValueType.String {
		return left.stringValue() == right.stringValue(), nil
	}

	operator := ExpressionOperatorType.Equal

	if exactMatch {
		operator = ExpressionOperatorType.EqualExactMatch
	}

	result, err := applyComparisonOperator(operator, left, right)

	if err != nil {
		return false, err
	}

	return !result.IsNull() && result.booleanValue(), nil
}

func (et *ExpressionTree) evaluateOperator(expr *OperatorExpression, row *DataRow) (*ValueExpression, error) {
	left, err := et.evaluate(expr.LeftValue(), row)

	if err != nil {
		return nil, err
	}

	operator := expr.OperatorType()

	if operator == ExpressionOperatorType.IsNull {
		return NewValueExpression(ExpressionValueType.Boolean, left.IsNull()), nil
	}

	if operator == ExpressionOperatorType.IsNotNull {
		return NewValueExpression(ExpressionValueType.Boolean, !left.IsNull()), nil
	}

	if operator == ExpressionOperatorType.And || operator == ExpressionOperatorType.Or {
		return et.evaluateBooleanOperator(operator, left, expr, row)
	}

	right, err := et.evaluate(expr.RightValue(), row)

	if err != nil {
		return nil, err
	}

	switch operator {
	case ExpressionOperatorType.Like, ExpressionOperatorType.LikeExactMatch,
		ExpressionOperatorType.NotLike, ExpressionOperatorType.NotLikeExactMatch:
		return applyLikeOperator(operator, left, right)
	default:
		return applyComparisonOperator(operator, left, right)
	}
}

// evaluateBooleanOperator short-circuits AND / OR once the outcome is already determined.
func (et *ExpressionTree) evaluateBooleanOperator(operator ExpressionOperatorTypeEnum, left *ValueExpression, expr *OperatorExpression, row *DataRow) (*ValueExpression, error) {
	if !left.IsNull() {
		leftBool := left.booleanValue()

		if operator == ExpressionOperatorType.And && !leftBool {
			return False, nil
		}

		if operator == ExpressionOperatorType.Or && leftBool {
			return True, nil
		}
	}

	right, err := et.evaluate(expr.RightValue(), row)

	if err != nil {
		return nil, err
	}

	if left.IsNull() || right.IsNull() {
		return NullValue(ExpressionValueType.Boolean), nil
	}

	if operator == ExpressionOperatorType.And {
		return NewValueExpression(ExpressionValueType.Boolean, left.booleanValue() && right.booleanValue()), nil
	}

	return NewValueExpression(ExpressionValueType.Boolean, left.booleanValue() || right.booleanValue()), nil
}

//gocyclo:ignore
func applyComparisonOperator(operator ExpressionOperatorTypeEnum, left, right *ValueExpression) (*ValueExpression, error) {
	if left.IsNull() || right.IsNull() {
		switch operator {
		case ExpressionOperatorType.Equal, ExpressionOperatorType.EqualExactMatch:
			return NewValueExpression(ExpressionValueType.Boolean, left.IsNull() && right.IsNull()), nil
		case ExpressionOperatorType.NotEqual, ExpressionOperatorType.NotEqualExactMatch:
			return NewValueExpression(ExpressionValueType.Boolean, !(left.IsNull() && right.IsNull())), nil
		default:
			return NullValue(ExpressionValueType.Boolean), nil
		}
	}

	valueType, err := operator.deriveOperationValueType(left.ValueType(), right.ValueType())

	if err != nil {
		return nil, err
	}

	leftValue, err := left.Convert(valueType)

	if err != nil {
		return nil, err
	}

	rightValue, err := right.Convert(valueType)

	if err != nil {
		return nil, err
	}

	switch operator {
	case ExpressionOperatorType.Multiply, ExpressionOperatorType.Divide, ExpressionOperatorType.Add,
		ExpressionOperatorType.Subtract, ExpressionOperatorType.Modulus, ExpressionOperatorType.BitwiseAnd,
		ExpressionOperatorType.BitwiseOr, ExpressionOperatorType.BitwiseXor, ExpressionOperatorType.BitShiftLeft,
		ExpressionOperatorType.BitShiftRight:
		return applyArithmeticOperator(operator, leftValue, rightValue)
	default:
		return applyRelationalOperator(operator, leftValue, rightValue)
	}
}

//gocyclo:ignore
func applyArithmeticOperator(operator ExpressionOperatorTypeEnum, left, right *ValueExpression) (*ValueExpression, error) {
	valueType := left.ValueType()

	switch valueType {
	case ExpressionValueType.Int32:
		l, r := left.int32Value(), right.int32Value()

		switch operator {
		case ExpressionOperatorType.Multiply:
			return NewValueExpression(valueType, l*r), nil
		case ExpressionOperatorType.Divide:
			if r == 0 {
				return nil, errors.New("attempt to divide by zero")
			}
			return NewValueExpression(valueType, l/r), nil
		case ExpressionOperatorType.Add:
			return NewValueExpression(valueType, l+r), nil
		case ExpressionOperatorType.Subtract:
			return NewValueExpression(valueType, l-r), nil
		case ExpressionOperatorType.Modulus:
			if r == 0 {
				return nil, errors.New("attempt to divide by zero")
			}
			return NewValueExpression(valueType, l%r), nil
		case ExpressionOperatorType.BitwiseAnd:
			return NewValueExpression(valueType, l&r), nil
		case ExpressionOperatorType.BitwiseOr:
			return NewValueExpression(valueType, l|r), nil
		case ExpressionOperatorType.BitwiseXor:
			return NewValueExpression(valueType, l^r), nil
		case ExpressionOperatorType.BitShiftLeft:
			return NewValueExpression(valueType, l<<(uint(r)&31)), nil
		case ExpressionOperatorType.BitShiftRight:
			return NewValueExpression(valueType, l>>(uint(r)&31)), nil
		}
	case ExpressionValueType.Int64:
		l, r := left.int64Value(), right.int64Value()

		switch operator {
		case ExpressionOperatorType.Multiply:
			return NewValueExpression(valueType, l*r), nil
		case ExpressionOperatorType.Divide:
			if r == 0 {
				return nil, errors.New("attempt to divide by zero")
			}
			return NewValueExpression(valueType, l/r), nil
		case ExpressionOperatorType.Add:
			return NewValueExpression(valueType, l+r), nil
		case ExpressionOperatorType.Subtract:
			return NewValueExpression(valueType, l-r), nil
		case ExpressionOperatorType.Modulus:
			if r == 0 {
				return nil, errors.New("attempt to divide by zero")
			}
			return NewValueExpression(valueType, l%r), nil
		case ExpressionOperatorType.BitwiseAnd:
			return NewValueExpression(valueType, l&r), nil
		case ExpressionOperatorType.BitwiseOr:
			return NewValueExpression(valueType, l|r), nil
		case ExpressionOperatorType.BitwiseXor:
			return NewValueExpression(valueType, l^r), nil
		case ExpressionOperatorType.BitShiftLeft:
			return NewValueExpression(valueType, l<<(uint(r)&63)), nil
		case ExpressionOperatorType.BitShiftRight:
			return NewValueExpression(valueType, l>>(uint(r)&63)), nil
		}
	case ExpressionValueType.Decimal:
		l, r := left.decimalValue(), right.decimalValue()

		switch operator {
		case ExpressionOperatorType.Multiply:
			return NewValueExpression(valueType, l.Mul(r)), nil
		case ExpressionOperatorType.Divide:
			if r.Equal(decimal.Zero) {
				return nil, errors.New("attempt to divide by zero")
			}
			return NewValueExpression(valueType, l.Div(r)), nil
		case ExpressionOperatorType.Add:
			return NewValueExpression(valueType, l.Add(r)), nil
		case ExpressionOperatorType.Subtract:
			return NewValueExpression(valueType, l.Sub(r)), nil
		}
	case ExpressionValueType.Double:
		l, r := left.doubleValue(), right.doubleValue()

		switch operator {
		case ExpressionOperatorType.Multiply:
			return NewValueExpression(valueType, l*r), nil
		case ExpressionOperatorType.Divide:
			return NewValueExpression(valueType, l/r), nil
		case ExpressionOperatorType.Add:
			return NewValueExpression(valueType, l+r), nil
		case ExpressionOperatorType.Subtract:
			return NewValueExpression(valueType, l-r), nil
		}
	case ExpressionValueType.String:
		if operator == ExpressionOperatorType.Add {
			return NewValueExpression(valueType, left.stringValue()+right.stringValue()), nil
		}
	}

	return nil, fmt.Errorf("cannot perform \"%s\" operation on \"%s\" values", operator.String(), valueType.String())
}

//gocyclo:ignore
func applyRelationalOperator(operator ExpressionOperatorTypeEnum, left, right *ValueExpression) (*ValueExpression, error) {
	var compare int

	switch left.ValueType() {
	case ExpressionValueType.Boolean:
		compare = compareInt(left.booleanValueAsInt(), right.booleanValueAsInt())
	case ExpressionValueType.Int32:
		compare = compareInt64(int64(left.int32Value()), int64(right.int32Value()))
	case ExpressionValueType.Int64:
		compare = compareInt64(left.int64Value(), right.int64Value())
	case ExpressionValueType.Decimal:
		compare = left.decimalValue().Cmp(right.decimalValue())
	case ExpressionValueType.Double:
		compare = compareFloat64(left.doubleValue(), right.doubleValue())
	case ExpressionValueType.String:
		if operator == ExpressionOperatorType.Equal || operator == ExpressionOperatorType.NotEqual {
			compare = strings.Compare(strings.ToUpper(left.stringValue()), strings.ToUpper(right.stringValue()))
		} else if operator == ExpressionOperatorType.EqualExactMatch || operator == ExpressionOperatorType.NotEqualExactMatch {
			compare = strings.Compare(left.stringValue(), right.stringValue())
		} else {
			compare = strings.Compare(left.stringValue(), right.stringValue())
		}
	case ExpressionValueType.Guid:
		compare = strings.Compare(left.guidValue().String(), right.guidValue().String())
	case ExpressionValueType.DateTime:
		compare = compareTime(left.dateTimeValue(), right.dateTimeValue())
	default:
		return nil, fmt.Errorf("unexpected expression value type encountered: %s", left.ValueType().String())
	}

	var result bool

	switch operator {
	case ExpressionOperatorType.LessThan:
		result = compare < 0
	case ExpressionOperatorType.LessThanOrEqual:
		result = compare <= 0
	case ExpressionOperatorType.GreaterThan:
		result = compare > 0
	case ExpressionOperatorType.GreaterThanOrEqual:
		result = compare >= 0
	case ExpressionOperatorType.Equal, ExpressionOperatorType.EqualExactMatch:
		result = compare == 0
	case ExpressionOperatorType.NotEqual, ExpressionOperatorType.NotEqualExactMatch:
		result = compare != 0
	default:
		return nil, fmt.Errorf("unexpected relational operator encountered: %s", operator.String())
	}

	return NewValueExpression(ExpressionValueType.Boolean, result), nil
}

func compareInt(left, right int) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

func compareInt64(left, right int64) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

func compareFloat64(left, right float64) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

func compareTime(left, right time.Time) int {
	switch {
	case left.Before(right):
		return -1
	case left.After(right):
		return 1
	default:
		return 0
	}
}

func applyLikeOperator(operator ExpressionOperatorTypeEnum, left, right *ValueExpression) (*ValueExpression, error) {
	if left.IsNull() || right.IsNull() {
		return NullValue(ExpressionValueType.Boolean), nil
	}

	leftValue, err := left.Convert(ExpressionValueType.String)

	if err != nil {
		return nil, err
	}

	rightValue, err := right.Convert(ExpressionValueType.String)

	if err != nil {
		return nil, err
	}

	exactMatch := operator == ExpressionOperatorType.LikeExactMatch || operator == ExpressionOperatorType.NotLikeExactMatch
	negated := operator == ExpressionOperatorType.NotLike || operator == ExpressionOperatorType.NotLikeExactMatch

	matched, err := likePatternMatch(leftValue.stringValue(), rightValue.stringValue(), exactMatch)

	if err != nil {
		return nil, err
	}

	if negated {
		matched = !matched
	}

	return NewValueExpression(ExpressionValueType.Boolean, matched), nil
}

// likePatternMatch supports both SQL wildcards ('%' any sequence, '_' any single character)
// and glob wildcards ('*' any sequence, '?' any single character) within the same pattern.
func likePatternMatch(source, pattern string, exactMatch bool) (bool, error) {
	var builder strings.Builder
	builder.WriteString("^")

	for _, r := range pattern {
		switch r {
		case '%', '*':
			builder.WriteString(".*")
		case '_', '?':
			builder.WriteString(".")
		default:
			builder.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	builder.WriteString("$")

	flags := "(?s)"

	if !exactMatch {
		flags += "(?i)"
	}

	expr, err := regexp.Compile(flags + builder.String())

	if err != nil {
		return false, err
	}

	return expr.MatchString(source), nil
}

func functionTypeFor(name string) (ExpressionFunctionTypeEnum, bool) {
	switch strings.ToUpper(name) {
	case "ABS":
		return ExpressionFunctionType.Abs, true
	case "CEILING":
		return ExpressionFunctionType.Ceiling, true
	case "COALESCE":
		return ExpressionFunctionType.Coalesce, true
	case "CONVERT":
		return ExpressionFunctionType.Convert, true
	case "CONTAINS":
		return ExpressionFunctionType.Contains, true
	case "DATEADD":
		return ExpressionFunctionType.DateAdd, true
	case "DATEDIFF":
		return ExpressionFunctionType.DateDiff, true
	case "DATEPART":
		return ExpressionFunctionType.DatePart, true
	case "ENDSWITH":
		return ExpressionFunctionType.EndsWith, true
	case "FLOOR":
		return ExpressionFunctionType.Floor, true
	case "IIF":
		return ExpressionFunctionType.IIf, true
	case "INDEXOF":
		return ExpressionFunctionType.IndexOf, true
	case "ISDATE":
		return ExpressionFunctionType.IsDate, true
	case "ISINTEGER":
		return ExpressionFunctionType.IsInteger, true
	case "ISGUID":
		return ExpressionFunctionType.IsGuid, true
	case "ISNULL":
		return ExpressionFunctionType.IsNull, true
	case "ISNUMERIC":
		return ExpressionFunctionType.IsNumeric, true
	case "LASTINDEXOF":
		return ExpressionFunctionType.LastIndexOf, true
	case "LEN":
		return ExpressionFunctionType.Len, true
	case "LOWER":
		return ExpressionFunctionType.Lower, true
	case "MAXOF":
		return ExpressionFunctionType.MaxOf, true
	case "MINOF":
		return ExpressionFunctionType.MinOf, true
	case "NOW":
		return ExpressionFunctionType.Now, true
	case "NTHINDEXOF":
		return ExpressionFunctionType.NthIndexOf, true
	case "POWER":
		return ExpressionFunctionType.Power, true
	case "REGEXMATCH":
		return ExpressionFunctionType.RegExMatch, true
	case "REGEXVAL":
		return ExpressionFunctionType.RegExVal, true
	case "REPLACE":
		return ExpressionFunctionType.Replace, true
	case "REVERSE":
		return ExpressionFunctionType.Reverse, true
	case "ROUND":
		return ExpressionFunctionType.Round, true
	case "SPLIT":
		return ExpressionFunctionType.Split, true
	case "SQRT":
		return ExpressionFunctionType.Sqrt, true
	case "STARTSWITH":
		return ExpressionFunctionType.StartsWith, true
	case "STRCOUNT":
		return ExpressionFunctionType.StrCount, true
	case "STRCMP":
		return ExpressionFunctionType.StrCmp, true
	case "SUBSTR", "SUBSTRING":
		return ExpressionFunctionType.SubStr, true
	case "TRIM":
		return ExpressionFunctionType.Trim, true
	case "TRIMLEFT":
		return ExpressionFunctionType.TrimLeft, true
	case "TRIMRIGHT":
		return ExpressionFunctionType.TrimRight, true
	case "UPPER":
		return ExpressionFunctionType.Upper, true
	case "UTCNOW":
		return ExpressionFunctionType.UtcNow, true
	default:
		return 0, false
	}
}

func (et *ExpressionTree) evaluateArguments(arguments []Expression, row *DataRow) ([]*ValueExpression, error) {
	values := make([]*ValueExpression, len(arguments))

	for i, argument := range arguments {
		value, err := et.evaluate(argument, row)

		if err != nil {
			return nil, err
		}

		values[i] = value
	}

	return values, nil
}

//gocyclo:ignore
func (et *ExpressionTree) evaluateFunction(expr *FunctionExpression, row *DataRow) (*ValueExpression, error) {
	// IIf and Coalesce short-circuit, so their arguments are evaluated individually below.
	switch expr.FunctionType() {
	case ExpressionFunctionType.IIf:
		return et.evaluateIIf(expr.Arguments(), row)
	case ExpressionFunctionType.Coalesce:
		return et.evaluateCoalesce(expr.Arguments(), row)
	}

	arguments, err := et.evaluateArguments(expr.Arguments(), row)

	if err != nil {
		return nil, err
	}

	switch expr.FunctionType() {
	case ExpressionFunctionType.Abs:
		return functionAbs(arguments)
	case ExpressionFunctionType.Ceiling:
		return functionCeiling(arguments)
	case ExpressionFunctionType.Convert:
		return functionConvert(arguments)
	case ExpressionFunctionType.Contains:
		return functionContains(arguments)
	case ExpressionFunctionType.DateAdd:
		return functionDateAdd(arguments)
	case ExpressionFunctionType.DateDiff:
		return functionDateDiff(arguments)
	case ExpressionFunctionType.DatePart:
		return functionDatePart(arguments)
	case ExpressionFunctionType.EndsWith:
		return functionEndsWith(arguments)
	case ExpressionFunctionType.Floor:
		return functionFloor(arguments)
	case ExpressionFunctionType.IndexOf:
		return functionIndexOf(arguments, false)
	case ExpressionFunctionType.IsDate:
		return functionIsDate(arguments)
	case ExpressionFunctionType.IsInteger:
		return functionIsInteger(arguments)
	case ExpressionFunctionType.IsGuid:
		return functionIsGuid(arguments)
	case ExpressionFunctionType.IsNull:
		return functionIsNull(arguments)
	case ExpressionFunctionType.IsNumeric:
		return functionIsNumeric(arguments)
	case ExpressionFunctionType.LastIndexOf:
		return functionLastIndexOf(arguments)
	case ExpressionFunctionType.Len:
		return functionLen(arguments)
	case ExpressionFunctionType.Lower:
		return functionLower(arguments)
	case ExpressionFunctionType.MaxOf:
		return functionMaxOf(arguments)
	case ExpressionFunctionType.MinOf:
		return functionMinOf(arguments)
	case ExpressionFunctionType.Now:
		return NewValueExpression(ExpressionValueType.DateTime, time.Now()), nil
	case ExpressionFunctionType.NthIndexOf:
		return functionIndexOf(arguments, true)
	case ExpressionFunctionType.Power:
		return functionPower(arguments)
	case ExpressionFunctionType.RegExMatch:
		return functionRegExMatch(arguments)
	case ExpressionFunctionType.RegExVal:
		return functionRegExVal(arguments)
	case ExpressionFunctionType.Replace:
		return functionReplace(arguments)
	case ExpressionFunctionType.Reverse:
		return functionReverse(arguments)
	case ExpressionFunctionType.Round:
		return functionRound(arguments)
	case ExpressionFunctionType.Split:
		return functionSplit(arguments)
	case ExpressionFunctionType.Sqrt:
		return functionSqrt(arguments)
	case ExpressionFunctionType.StartsWith:
		return functionStartsWith(arguments)
	case ExpressionFunctionType.StrCount:
		return functionStrCount(arguments)
	case ExpressionFunctionType.StrCmp:
		return functionStrCmp(arguments)
	case ExpressionFunctionType.SubStr:
		return functionSubStr(arguments)
	case ExpressionFunctionType.Trim:
		return functionTrim(arguments, strings.TrimSpace)
	case ExpressionFunctionType.TrimLeft:
		return functionTrim(arguments, func(s string) string { return strings.TrimLeft(s, " \t\r\n") })
	case ExpressionFunctionType.TrimRight:
		return functionTrim(arguments, func(s string) string { return strings.TrimRight(s, " \t\r\n") })
	case ExpressionFunctionType.Upper:
		return functionUpper(arguments)
	case ExpressionFunctionType.UtcNow:
		return NewValueExpression(ExpressionValueType.DateTime, time.Now().UTC()), nil
	default:
		return nil, fmt.Errorf("unexpected function type encountered: %s", expr.FunctionType().String())
	}
}

func (et *ExpressionTree) evaluateIIf(arguments []Expression, row *DataRow) (*ValueExpression, error) {
	if len(arguments) != 3 {
		return nil, errors.New("IIf function expects 3 arguments")
	}

	test, err := et.evaluate(arguments[0], row)

	if err != nil {
		return nil, err
	}

	testValue, err := test.Convert(ExpressionValueType.Boolean)

	if err != nil {
		return nil, err
	}

	if !testValue.IsNull() && testValue.booleanValue() {
		return et.evaluate(arguments[1], row)
	}

	return et.evaluate(arguments[2], row)
}

func (et *ExpressionTree) evaluateCoalesce(arguments []Expression, row *DataRow) (*ValueExpression, error) {
	for _, argument := range arguments {
		value, err := et.evaluate(argument, row)

		if err != nil {
			return nil, err
		}

		if !value.IsNull() {
			return value, nil
		}
	}

	return NullValue(ExpressionValueType.Undefined), nil
}

func requireNumeric(arguments []*ValueExpression, count int) error {
	if len(arguments) != count {
		return fmt.Errorf("function expects %d argument(s)", count)
	}

	return nil
}

func functionAbs(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value := arguments[0]

	if value.IsNull() {
		return NullValue(value.ValueType()), nil
	}

	switch value.ValueType() {
	case ExpressionValueType.Int32:
		v := value.int32Value()
		if v < 0 {
			v = -v
		}
		return NewValueExpression(ExpressionValueType.Int32, v), nil
	case ExpressionValueType.Int64:
		v := value.int64Value()
		if v < 0 {
			v = -v
		}
		return NewValueExpression(ExpressionValueType.Int64, v), nil
	case ExpressionValueType.Decimal:
		return NewValueExpression(ExpressionValueType.Decimal, value.decimalValue().Abs()), nil
	case ExpressionValueType.Double:
		return NewValueExpression(ExpressionValueType.Double, math.Abs(value.doubleValue())), nil
	default:
		return nil, fmt.Errorf("Abs function cannot operate on \"%s\" value", value.ValueType().String())
	}
}

func toDouble(value *ValueExpression) (float64, bool, error) {
	if value.IsNull() {
		return 0, true, nil
	}

	converted, err := value.Convert(ExpressionValueType.Double)

	if err != nil {
		return 0, false, err
	}

	return converted.doubleValue(), false, nil
}

func functionCeiling(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value, isNull, err := toDouble(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.Double), nil
	}

	return NewValueExpression(ExpressionValueType.Double, math.Ceil(value)), nil
}

func functionFloor(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value, isNull, err := toDouble(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.Double), nil
	}

	return NewValueExpression(ExpressionValueType.Double, math.Floor(value)), nil
}

func functionRound(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value, isNull, err := toDouble(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.Double), nil
	}

	return NewValueExpression(ExpressionValueType.Double, math.Round(value)), nil
}

func functionSqrt(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value, isNull, err := toDouble(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.Double), nil
	}

	return NewValueExpression(ExpressionValueType.Double, math.Sqrt(value)), nil
}

func functionPower(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	base, isNull, err := toDouble(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.Double), nil
	}

	exponent, isNull, err := toDouble(arguments[1])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.Double), nil
	}

	return NewValueExpression(ExpressionValueType.Double, math.Pow(base, exponent)), nil
}

func toStringArg(value *ValueExpression) (string, bool, error) {
	if value.IsNull() {
		return "", true, nil
	}

	converted, err := value.Convert(ExpressionValueType.String)

	if err != nil {
		return "", false, err
	}

	return converted.stringValue(), false, nil
}

func functionLen(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value, isNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.Int32), nil
	}

	return NewValueExpression(ExpressionValueType.Int32, int32(len([]rune(value)))), nil
}

func functionUpper(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value, isNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.String), nil
	}

	return NewValueExpression(ExpressionValueType.String, strings.ToUpper(value)), nil
}

func functionLower(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value, isNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.String), nil
	}

	return NewValueExpression(ExpressionValueType.String, strings.ToLower(value)), nil
}

func functionReverse(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value, isNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.String), nil
	}

	runes := []rune(value)

	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return NewValueExpression(ExpressionValueType.String, string(runes)), nil
}

func functionTrim(arguments []*ValueExpression, trimmer func(string) string) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value, isNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.String), nil
	}

	return NewValueExpression(ExpressionValueType.String, trimmer(value)), nil
}

func functionContains(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	source, sourceNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	test, testNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if sourceNull || testNull {
		return NullValue(ExpressionValueType.Boolean), nil
	}

	return NewValueExpression(ExpressionValueType.Boolean, strings.Contains(strings.ToUpper(source), strings.ToUpper(test))), nil
}

func functionStartsWith(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	source, sourceNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	test, testNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if sourceNull || testNull {
		return NullValue(ExpressionValueType.Boolean), nil
	}

	return NewValueExpression(ExpressionValueType.Boolean, strings.HasPrefix(strings.ToUpper(source), strings.ToUpper(test))), nil
}

func functionEndsWith(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	source, sourceNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	test, testNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if sourceNull || testNull {
		return NullValue(ExpressionValueType.Boolean), nil
	}

	return NewValueExpression(ExpressionValueType.Boolean, strings.HasSuffix(strings.ToUpper(source), strings.ToUpper(test))), nil
}

func functionIndexOf(arguments []*ValueExpression, nth bool) (*ValueExpression, error) {
	expectedCount := 2

	if nth {
		expectedCount = 3
	}

	if err := requireNumeric(arguments, expectedCount); err != nil {
		return nil, err
	}

	source, sourceNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	test, testNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if sourceNull || testNull {
		return NullValue(ExpressionValueType.Int32), nil
	}

	if !nth {
		return NewValueExpression(ExpressionValueType.Int32, int32(strings.Index(source, test))), nil
	}

	index, isNull, err := toInt(arguments[2])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.Int32), nil
	}

	remainder := source
	offset := 0

	for i := int64(0); i <= index; i++ {
		found := strings.Index(remainder, test)

		if found < 0 {
			return NewValueExpression(ExpressionValueType.Int32, int32(-1)), nil
		}

		if i == index {
			return NewValueExpression(ExpressionValueType.Int32, int32(offset+found)), nil
		}

		offset += found + len(test)
		remainder = remainder[found+len(test):]
	}

	return NewValueExpression(ExpressionValueType.Int32, int32(-1)), nil
}

func functionLastIndexOf(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	source, sourceNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	test, testNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if sourceNull || testNull {
		return NullValue(ExpressionValueType.Int32), nil
	}

	return NewValueExpression(ExpressionValueType.Int32, int32(strings.LastIndex(source, test))), nil
}

func toInt(value *ValueExpression) (int64, bool, error) {
	if value.IsNull() {
		return 0, true, nil
	}

	converted, err := value.Convert(ExpressionValueType.Int64)

	if err != nil {
		return 0, false, err
	}

	return converted.int64Value(), false, nil
}

func functionSubStr(arguments []*ValueExpression) (*ValueExpression, error) {
	if len(arguments) != 2 && len(arguments) != 3 {
		return nil, errors.New("SubStr function expects 2 or 3 arguments")
	}

	source, sourceNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	if sourceNull {
		return NullValue(ExpressionValueType.String), nil
	}

	runes := []rune(source)

	index, isNull, err := toInt(arguments[1])

	if err != nil {
		return nil, err
	}

	if isNull || index < 0 || int(index) > len(runes) {
		return NullValue(ExpressionValueType.String), nil
	}

	if len(arguments) == 2 {
		return NewValueExpression(ExpressionValueType.String, string(runes[index:])), nil
	}

	length, isNull, err := toInt(arguments[2])

	if err != nil {
		return nil, err
	}

	if isNull || length < 0 {
		return NullValue(ExpressionValueType.String), nil
	}

	end := index + length

	if end > int64(len(runes)) {
		end = int64(len(runes))
	}

	return NewValueExpression(ExpressionValueType.String, string(runes[index:end])), nil
}

func functionReplace(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 3); err != nil {
		return nil, err
	}

	source, sourceNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	test, testNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	replace, replaceNull, err := toStringArg(arguments[2])

	if err != nil {
		return nil, err
	}

	if sourceNull || testNull || replaceNull {
		return NullValue(ExpressionValueType.String), nil
	}

	return NewValueExpression(ExpressionValueType.String, strings.ReplaceAll(source, test, replace)), nil
}

func functionSplit(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 3); err != nil {
		return nil, err
	}

	source, sourceNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	delimiter, delimiterNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if sourceNull || delimiterNull {
		return NullValue(ExpressionValueType.String), nil
	}

	index, isNull, err := toInt(arguments[2])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.String), nil
	}

	parts := strings.Split(source, delimiter)

	if index < 0 || int(index) >= len(parts) {
		return NullValue(ExpressionValueType.String), nil
	}

	return NewValueExpression(ExpressionValueType.String, parts[index]), nil
}

func functionStrCount(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	source, sourceNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	test, testNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if sourceNull || testNull || len(test) == 0 {
		return NullValue(ExpressionValueType.Int32), nil
	}

	return NewValueExpression(ExpressionValueType.Int32, int32(strings.Count(source, test))), nil
}

func functionStrCmp(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	left, leftNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	right, rightNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if leftNull || rightNull {
		return NullValue(ExpressionValueType.Int32), nil
	}

	return NewValueExpression(ExpressionValueType.Int32, int32(strings.Compare(left, right))), nil
}

func functionRegExMatch(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	pattern, patternNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	test, testNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if patternNull || testNull {
		return NullValue(ExpressionValueType.Boolean), nil
	}

	expr, err := regexp.Compile(pattern)

	if err != nil {
		return nil, err
	}

	return NewValueExpression(ExpressionValueType.Boolean, expr.MatchString(test)), nil
}

func functionRegExVal(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	pattern, patternNull, err := toStringArg(arguments[0])

	if err != nil {
		return nil, err
	}

	test, testNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if patternNull || testNull {
		return NullValue(ExpressionValueType.String), nil
	}

	expr, err := regexp.Compile(pattern)

	if err != nil {
		return nil, err
	}

	return NewValueExpression(ExpressionValueType.String, expr.FindString(test)), nil
}

func functionIsNull(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	if arguments[0].IsNull() {
		return arguments[1], nil
	}

	return arguments[0], nil
}

func functionIsDate(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value := arguments[0]

	if value.IsNull() {
		return NewValueExpression(ExpressionValueType.Boolean, false), nil
	}

	if value.ValueType() == ExpressionValueType.DateTime {
		return True, nil
	}

	_, err := value.Convert(ExpressionValueType.DateTime)
	return NewValueExpression(ExpressionValueType.Boolean, err == nil), nil
}

func functionIsInteger(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value := arguments[0]

	if value.IsNull() {
		return NewValueExpression(ExpressionValueType.Boolean, false), nil
	}

	if value.ValueType().IsIntegerType() {
		return True, nil
	}

	text, _, err := toStringArg(value)

	if err != nil {
		return nil, err
	}

	_, parseErr := strconv.ParseInt(strings.TrimSpace(text), 0, 64)
	return NewValueExpression(ExpressionValueType.Boolean, parseErr == nil), nil
}

func functionIsGuid(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value := arguments[0]

	if value.IsNull() {
		return NewValueExpression(ExpressionValueType.Boolean, false), nil
	}

	if value.ValueType() == ExpressionValueType.Guid {
		return True, nil
	}

	text, _, err := toStringArg(value)

	if err != nil {
		return nil, err
	}

	_, parseErr := guid.TryParse(text)
	return NewValueExpression(ExpressionValueType.Boolean, parseErr == nil), nil
}

func functionIsNumeric(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 1); err != nil {
		return nil, err
	}

	value := arguments[0]

	if value.IsNull() {
		return NewValueExpression(ExpressionValueType.Boolean, false), nil
	}

	if value.ValueType().IsNumericType() {
		return True, nil
	}

	text, _, err := toStringArg(value)

	if err != nil {
		return nil, err
	}

	_, parseErr := strconv.ParseFloat(strings.TrimSpace(text), 64)
	return NewValueExpression(ExpressionValueType.Boolean, parseErr == nil), nil
}

func functionMaxOf(arguments []*ValueExpression) (*ValueExpression, error) {
	if len(arguments) == 0 {
		return nil, errors.New("MaxOf function expects at least 1 argument")
	}

	return extremeOf(arguments, true)
}

func functionMinOf(arguments []*ValueExpression) (*ValueExpression, error) {
	if len(arguments) == 0 {
		return nil, errors.New("MinOf function expects at least 1 argument")
	}

	return extremeOf(arguments, false)
}

func extremeOf(arguments []*ValueExpression, max bool) (*ValueExpression, error) {
	best := arguments[0]

	for _, candidate := range arguments[1:] {
		if candidate.IsNull() {
			continue
		}

		if best.IsNull() {
			best = candidate
			continue
		}

		greater, err := applyComparisonOperator(ExpressionOperatorType.GreaterThan, candidate, best)

		if err != nil {
			return nil, err
		}

		isGreater := !greater.IsNull() && greater.booleanValue()

		if (max && isGreater) || (!max && !isGreater) {
			best = candidate
		}
	}

	return best, nil
}

func functionConvert(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	targetName, isNull, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	if isNull {
		return nil, errors.New("Convert function requires a non-null target type name")
	}

	targetType, err := parseExpressionValueTypeName(targetName)

	if err != nil {
		return nil, err
	}

	return arguments[0].Convert(targetType)
}

func parseExpressionValueTypeName(name string) (ExpressionValueTypeEnum, error) {
	trimmed := strings.TrimSpace(name)

	if index := strings.LastIndex(trimmed, "."); index >= 0 {
		trimmed = trimmed[index+1:]
	}

	switch strings.ToUpper(trimmed) {
	case "BOOLEAN", "BOOL":
		return ExpressionValueType.Boolean, nil
	case "SBYTE", "BYTE", "INT16", "UINT16", "INT32", "UINT32", "INT", "UINT":
		return ExpressionValueType.Int32, nil
	case "INT64", "UINT64", "LONG", "ULONG":
		return ExpressionValueType.Int64, nil
	case "DECIMAL":
		return ExpressionValueType.Decimal, nil
	case "SINGLE", "DOUBLE", "FLOAT":
		return ExpressionValueType.Double, nil
	case "STRING":
		return ExpressionValueType.String, nil
	case "GUID":
		return ExpressionValueType.Guid, nil
	case "DATETIME":
		return ExpressionValueType.DateTime, nil
	default:
		return 0, fmt.Errorf("unrecognized target type name %q", name)
	}
}

func functionDatePart(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 2); err != nil {
		return nil, err
	}

	source, isNull, err := toTime(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.Int32), nil
	}

	intervalName, _, err := toStringArg(arguments[1])

	if err != nil {
		return nil, err
	}

	interval, err := ParseTimeInterval(intervalName)

	if err != nil {
		return nil, err
	}

	return NewValueExpression(ExpressionValueType.Int32, int32(datePart(source, interval))), nil
}

func toTime(value *ValueExpression) (time.Time, bool, error) {
	if value.IsNull() {
		return time.Time{}, true, nil
	}

	converted, err := value.Convert(ExpressionValueType.DateTime)

	if err != nil {
		return time.Time{}, false, err
	}

	return converted.dateTimeValue(), false, nil
}

func datePart(source time.Time, interval TimeIntervalEnum) int {
	switch interval {
	case TimeInterval.Year:
		return source.Year()
	case TimeInterval.Month:
		return int(source.Month())
	case TimeInterval.DayOfYear:
		return source.YearDay()
	case TimeInterval.Day:
		return source.Day()
	case TimeInterval.Week:
		_, week := source.ISOWeek()
		return week
	case TimeInterval.WeekDay:
		return int(source.Weekday()) + 1
	case TimeInterval.Hour:
		return source.Hour()
	case TimeInterval.Minute:
		return source.Minute()
	case TimeInterval.Second:
		return source.Second()
	case TimeInterval.Millisecond:
		return source.Nanosecond() / int(time.Millisecond)
	default:
		return 0
	}
}

func functionDateAdd(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 3); err != nil {
		return nil, err
	}

	source, isNull, err := toTime(arguments[0])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.DateTime), nil
	}

	amount, isNull, err := toInt(arguments[1])

	if err != nil {
		return nil, err
	}

	if isNull {
		return NullValue(ExpressionValueType.DateTime), nil
	}

	intervalName, _, err := toStringArg(arguments[2])

	if err != nil {
		return nil, err
	}

	interval, err := ParseTimeInterval(intervalName)

	if err != nil {
		return nil, err
	}

	return NewValueExpression(ExpressionValueType.DateTime, addInterval(source, int(amount), interval)), nil
}

func addInterval(source time.Time, amount int, interval TimeIntervalEnum) time.Time {
	switch interval {
	case TimeInterval.Year:
		return source.AddDate(amount, 0, 0)
	case TimeInterval.Month:
		return source.AddDate(0, amount, 0)
	case TimeInterval.DayOfYear, TimeInterval.Day, TimeInterval.WeekDay:
		return source.AddDate(0, 0, amount)
	case TimeInterval.Week:
		return source.AddDate(0, 0, amount*7)
	case TimeInterval.Hour:
		return source.Add(time.Duration(amount) * time.Hour)
	case TimeInterval.Minute:
		return source.Add(time.Duration(amount) * time.Minute)
	case TimeInterval.Second:
		return source.Add(time.Duration(amount) * time.Second)
	case TimeInterval.Millisecond:
		return source.Add(time.Duration(amount) * time.Millisecond)
	default:
		return source
	}
}

func functionDateDiff(arguments []*ValueExpression) (*ValueExpression, error) {
	if err := requireNumeric(arguments, 3); err != nil {
		return nil, err
	}

	left, leftNull, err := toTime(arguments[0])

	if err != nil {
		return nil, err
	}

	right, rightNull, err := toTime(arguments[1])

	if err != nil {
		return nil, err
	}

	if leftNull || rightNull {
		return NullValue(ExpressionValueType.Int64), nil
	}

	intervalName, _, err := toStringArg(arguments[2])

	if err != nil {
		return nil, err
	}

	interval, err := ParseTimeInterval(intervalName)

	if err != nil {
		return nil, err
	}

	return NewValueExpression(ExpressionValueType.Int64, diffInterval(left, right, interval)), nil
}

func diffInterval(left, right time.Time, interval TimeIntervalEnum) int64 {
	duration := right.Sub(left)

	switch interval {
	case TimeInterval.Year:
		return int64(right.Year() - left.Year())
	case TimeInterval.Month:
		return int64((right.Year()-left.Year())*12 + int(right.Month()) - int(left.Month()))
	case TimeInterval.Week:
		return int64(duration.Hours() / (24 * 7))
	case TimeInterval.Day, TimeInterval.DayOfYear, TimeInterval.WeekDay:
		return int64(duration.Hours() / 24)
	case TimeInterval.Hour:
		return int64(duration.Hours())
	case TimeInterval.Minute:
		return int64(duration.Minutes())
	case TimeInterval.Second:
		return int64(duration.Seconds())
	case TimeInterval.Millisecond:
		return duration.Milliseconds()
	default:
		return 0
	}
}
