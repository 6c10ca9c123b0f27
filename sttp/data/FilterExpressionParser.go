//******************************************************************************************************
//  FilterExpressionParser.go - Gbtc
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
	"strconv"
	"strings"

	"github.com/sttp/goapi/sttp/guid"
)

// ParsingExceptionCallback defines the function signature used to report non-fatal parsing
// errors encountered while evaluating a set of filter expression statements.
type ParsingExceptionCallback func(source, message string)

// FilterExpressionParser parses one or more filter expression statements, each applying to a
// single DataTable, and can evaluate them to select matching DataRow instances or SignalID Guid
// values from an associated DataSet.
type FilterExpressionParser struct {
	filterExpressionStatement string
	dataSet                   *DataSet
	primaryTableName          string
	tableIDFields             map[string]*TableIDFields

	trackFilteredRows     bool
	trackFilteredSignalIDs bool

	filteredRows      []*DataRow
	filteredRowSet    DataRowHashSet
	filteredSignalIDs []guid.Guid
	filteredSignalIDSet guid.HashSet

	expressionTrees []*ExpressionTree

	exceptionCallback ParsingExceptionCallback
}

// NewFilterExpressionParser creates a new FilterExpressionParser using the specified filter
// expression statement text, which may contain one or more semicolon-delimited statements.
func NewFilterExpressionParser(filterExpressionStatement string) *FilterExpressionParser {
	return &FilterExpressionParser{
		filterExpressionStatement: filterExpressionStatement,
		tableIDFields:             make(map[string]*TableIDFields),
		trackFilteredRows:         true,
	}
}

// NewFilterExpressionParserForDataSet creates a new FilterExpressionParser already associated
// with the specified DataSet and its primaryTableName.
func NewFilterExpressionParserForDataSet(dataSet *DataSet, filterExpressionStatement, primaryTableName string) *FilterExpressionParser {
	fep := NewFilterExpressionParser(filterExpressionStatement)
	fep.SetDataSet(dataSet)
	fep.SetPrimaryTableName(primaryTableName)
	return fep
}

// SetDataSet assigns the DataSet used to resolve table and column references.
func (fep *FilterExpressionParser) SetDataSet(dataSet *DataSet) {
	fep.dataSet = dataSet
}

// DataSet gets the DataSet used to resolve table and column references.
func (fep *FilterExpressionParser) DataSet() *DataSet {
	return fep.dataSet
}

// SetPrimaryTableName assigns the name of the table targeted by identifier-only filter
// expression statements, e.g., a bare Guid, measurement key, or point tag.
func (fep *FilterExpressionParser) SetPrimaryTableName(tableName string) {
	fep.primaryTableName = tableName
}

// PrimaryTableName gets the name of the table targeted by identifier-only filter expression
// statements.
func (fep *FilterExpressionParser) PrimaryTableName() string {
	return fep.primaryTableName
}

// SetTableIDFields assigns the TableIDFields used to resolve identifier-only filter expression
// statements for the specified tableName.
func (fep *FilterExpressionParser) SetTableIDFields(tableName string, tableIDFields *TableIDFields) {
	fep.tableIDFields[strings.ToUpper(tableName)] = tableIDFields
}

func (fep *FilterExpressionParser) getTableIDFields(tableName string) *TableIDFields {
	if tableIDFields, ok := fep.tableIDFields[strings.ToUpper(tableName)]; ok {
		return tableIDFields
	}

	return DefaultTableIDFields
}

// SetTrackFilteredRows assigns a flag that determines whether matched DataRow instances are
// accumulated as statements are evaluated. Defaults to true.
func (fep *FilterExpressionParser) SetTrackFilteredRows(track bool) {
	fep.trackFilteredRows = track
}

// SetTrackFilteredSignalIDs assigns a flag that determines whether matched signal ID Guid values
// are accumulated as statements are evaluated. Defaults to false.
func (fep *FilterExpressionParser) SetTrackFilteredSignalIDs(track bool) {
	fep.trackFilteredSignalIDs = track
}

// SetParsingExceptionCallback assigns a callback invoked for each non-fatal error encountered
// while parsing or evaluating a filter expression statement.
func (fep *FilterExpressionParser) SetParsingExceptionCallback(callback ParsingExceptionCallback) {
	fep.exceptionCallback = callback
}

func (fep *FilterExpressionParser) reportException(message string) {
	if fep.exceptionCallback != nil {
		fep.exceptionCallback(fep.filterExpressionStatement, message)
	}
}

// Table gets the DataTable referenced by the primary table name, if any.
func (fep *FilterExpressionParser) Table() *DataTable {
	if fep.dataSet == nil || len(fep.primaryTableName) == 0 {
		return nil
	}

	return fep.dataSet.Table(fep.primaryTableName)
}

// FilteredRows gets the DataRow instances matched while evaluating the parsed statements.
func (fep *FilterExpressionParser) FilteredRows() []*DataRow {
	return fep.filteredRows
}

// FilteredRowSet gets the unique DataRow instances matched while evaluating the parsed statements.
func (fep *FilterExpressionParser) FilteredRowSet() DataRowHashSet {
	if fep.filteredRowSet == nil {
		fep.filteredRowSet = NewDataRowHashSet(fep.filteredRows)
	}

	return fep.filteredRowSet
}

// FilteredSignalIDs gets the signal ID Guid values matched while evaluating the parsed statements.
func (fep *FilterExpressionParser) FilteredSignalIDs() []guid.Guid {
	return fep.filteredSignalIDs
}

// FilteredSignalIDSet gets the unique signal ID Guid values matched while evaluating the parsed statements.
func (fep *FilterExpressionParser) FilteredSignalIDSet() guid.HashSet {
	if fep.filteredSignalIDSet == nil {
		fep.filteredSignalIDSet = guid.NewHashSet(fep.filteredSignalIDs)
	}

	return fep.filteredSignalIDSet
}

// ExpressionTrees parses, if not already parsed, and returns the ExpressionTree instances, one
// per filter expression statement, contained in the parser's filter expression statement text.
func (fep *FilterExpressionParser) ExpressionTrees() ([]*ExpressionTree, error) {
	if fep.expressionTrees != nil {
		return fep.expressionTrees, nil
	}

	trees, err := fep.parseStatements()

	if err != nil {
		return nil, err
	}

	fep.expressionTrees = trees
	return trees, nil
}

// GetExpressionTrees is a variant of ExpressionTrees that returns no error: a parse error is
// reported through the parsing exception callback and nil is returned.
func (fep *FilterExpressionParser) GetExpressionTrees() []*ExpressionTree {
	trees, err := fep.ExpressionTrees()

	if err != nil {
		fep.reportException(err.Error())
		return nil
	}

	return trees
}

// Evaluate evaluates each parsed filter expression statement's ExpressionTree against its target
// DataTable, accumulating matched rows and/or signal IDs per the tracking flags.
func (fep *FilterExpressionParser) Evaluate(applyLimit, applySort bool) error {
	trees, err := fep.ExpressionTrees()

	if err != nil {
		return err
	}

	fep.filteredRows = nil
	fep.filteredRowSet = nil
	fep.filteredSignalIDs = nil
	fep.filteredSignalIDSet = nil

	for _, tree := range trees {
		if tree.Table == nil {
			fep.reportException("cannot evaluate filter expression statement, no table context was established")
			continue
		}

		rows, err := tree.Select(tree.Table)

		if err != nil {
			fep.reportException(err.Error())
			continue
		}

		if !applySort {
			// Select already applied ORDER BY; this flag only controls whether callers want
			// the parser to have done so, so nothing further is needed here.
		}

		if !applyLimit {
			// TopLimit is embedded in the parsed statement; nothing further to restrict here.
		}

		if fep.trackFilteredRows {
			fep.filteredRows = append(fep.filteredRows, rows...)
		}

		if fep.trackFilteredSignalIDs {
			idFields := fep.getTableIDFields(tree.Table.Name())
			signalIDColumn := tree.Table.ColumnByName(idFields.SignalIDFieldName)

			if signalIDColumn != nil {
				for _, row := range rows {
					value, err := row.Value(signalIDColumn.Index())

					if err != nil || value == nil {
						continue
					}

					if signalID, ok := value.(guid.Guid); ok {
						fep.filteredSignalIDs = append(fep.filteredSignalIDs, signalID)
					}
				}
			}
		}
	}

	return nil
}

// parseStatements splits the filter expression statement text on top-level semicolons and
// parses each resulting statement, resolving identifier-only shortcuts against primaryTableName.
func (fep *FilterExpressionParser) parseStatements() ([]*ExpressionTree, error) {
	statements := splitStatements(fep.filterExpressionStatement)
	trees := make([]*ExpressionTree, 0, len(statements))

	for _, statement := range statements {
		statement = strings.TrimSpace(statement)

		if len(statement) == 0 {
			continue
		}

		tree, err := fep.parseStatement(statement)

		if err != nil {
			fep.reportException(err.Error())
			continue
		}

		if tree != nil {
			trees = append(trees, tree)
		}
	}

	return trees, nil
}

func splitStatements(source string) []string {
	statements := make([]string, 0)
	var builder strings.Builder
	inString := false

	for i := 0; i < len(source); i++ {
		c := source[i]

		if c == '\'' {
			inString = !inString
		}

		if c == ';' && !inString {
			statements = append(statements, builder.String())
			builder.Reset()
			continue
		}

		builder.WriteByte(c)
	}

	if builder.Len() > 0 {
		statements = append(statements, builder.String())
	}

	return statements
}

// parseStatement parses a single filter expression statement, which is either a full
// "FILTER [TOP n] table WHERE expr [ORDER BY ...]" clause, or an identifier-only shortcut
// (quoted/bare Guid, "SOURCE:ID" measurement key, or point tag) resolved against the primary
// table's TableIDFields.
func (fep *FilterExpressionParser) parseStatement(statement string) (*ExpressionTree, error) {
	upper := strings.ToUpper(strings.TrimSpace(statement))

	if strings.HasPrefix(upper, "FILTER") {
		return fep.parseFilterStatement(statement)
	}

	return fep.parseIdentifierStatement(statement)
}

func (fep *FilterExpressionParser) parseFilterStatement(statement string) (*ExpressionTree, error) {
	p, err := newParser(statement)

	if err != nil {
		return nil, err
	}

	if err := p.expectKeyword("FILTER"); err != nil {
		return nil, err
	}

	topLimit := -1

	if p.isKeyword("TOP") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.current.kind != tokenInteger {
			return nil, errors.New("expected integer literal following TOP keyword")
		}

		limit, err := strconv.Atoi(p.current.text)

		if err != nil {
			return nil, err
		}

		topLimit = limit

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if p.current.kind != tokenIdentifier {
		return nil, fmt.Errorf("expected table name following FILTER keyword, found %q", p.current.text)
	}

	tableName := p.current.text

	if err := p.advance(); err != nil {
		return nil, err
	}

	var table *DataTable

	if fep.dataSet != nil {
		table = fep.dataSet.Table(tableName)

		if table == nil {
			return nil, fmt.Errorf("table %q was not found in associated data set", tableName)
		}
	}

	if err := p.expectKeyword("WHERE"); err != nil {
		return nil, err
	}

	root, err := p.parseOrExpression()

	if err != nil {
		return nil, err
	}

	tree := newExpressionTree(root)
	tree.Table = table
	tree.TopLimit = topLimit

	if table != nil {
		tree.TableIDFields = fep.getTableIDFields(table.Name())
	}

	if p.isKeyword("ORDER") {
		terms, err := fep.parseOrderByClause(p, table)

		if err != nil {
			return nil, err
		}

		tree.OrderByTerms = terms
	}

	if !p.atEOF() {
		return nil, fmt.Errorf("unexpected token %q following filter expression statement", p.current.text)
	}

	return tree, nil
}

func (fep *FilterExpressionParser) parseOrderByClause(p *parser, table *DataTable) ([]*OrderByTerm, error) {
	if err := p.expectKeyword("ORDER"); err != nil {
		return nil, err
	}

	if err := p.expectKeyword("BY"); err != nil {
		return nil, err
	}

	var terms []*OrderByTerm

	for {
		if p.current.kind != tokenIdentifier {
			return nil, fmt.Errorf("expected column name in ORDER BY clause, found %q", p.current.text)
		}

		columnName := p.current.text

		if err := p.advance(); err != nil {
			return nil, err
		}

		var column *DataColumn

		if table != nil {
			column = table.ColumnByName(columnName)

			if column == nil {
				return nil, fmt.Errorf("column %q referenced in ORDER BY clause was not found in table %q", columnName, table.Name())
			}
		}

		ascending := true
		exactMatch := false

		if p.isKeyword("DESC") {
			ascending = false

			if err := p.advance(); err != nil {
				return nil, err
			}
		} else if p.isKeyword("ASC") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		if p.isKeyword("BINARY") {
			exactMatch = true

			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		terms = append(terms, &OrderByTerm{Column: column, Ascending: ascending, ExactMatch: exactMatch})

		if p.current.kind == tokenComma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	return terms, nil
}

// parseIdentifierStatement resolves a bare Guid, quoted string, "SOURCE:ID" measurement key, or
// point tag shortcut into an equivalent equality filter against the primary table.
func (fep *FilterExpressionParser) parseIdentifierStatement(statement string) (*ExpressionTree, error) {
	if fep.dataSet == nil || len(fep.primaryTableName) == 0 {
		return nil, errors.New("cannot resolve identifier-only filter expression statement without an associated data set and primary table name")
	}

	table := fep.dataSet.Table(fep.primaryTableName)

	if table == nil {
		return nil, fmt.Errorf("primary table %q was not found in associated data set", fep.primaryTableName)
	}

	idFields := fep.getTableIDFields(table.Name())
	identifier := strings.TrimSpace(statement)
	identifier = strings.Trim(identifier, "'")

	var columnName string

	switch {
	case guidPattern.MatchString(identifier):
		columnName = idFields.SignalIDFieldName
	case strings.Contains(identifier, ":"):
		columnName = idFields.MeasurementKeyFieldName
	default:
		columnName = idFields.PointTagFieldName
	}

	column := table.ColumnByName(columnName)

	if column == nil {
		return nil, fmt.Errorf("identifier field %q was not found in table %q", columnName, table.Name())
	}

	root := NewOperatorExpression(
		ExpressionOperatorType.Equal,
		NewColumnExpression(column),
		NewValueExpression(ExpressionValueType.String, identifier),
	)

	tree := newExpressionTree(root)
	tree.Table = table
	tree.TableIDFields = idFields

	return tree, nil
}

// GenerateExpressionTree parses a single filter expression statement scoped to dataTable and
// returns its ExpressionTree. The filterExpression may omit the "FILTER table WHERE" prefix, in
// which case it is treated as a bare WHERE-clause predicate against dataTable.
func GenerateExpressionTree(dataTable *DataTable, filterExpression string, suppressConsoleErrorOutput bool) (*ExpressionTree, error) {
	if dataTable == nil {
		return nil, errors.New("cannot generate expression tree, data table is nil")
	}

	trimmed := strings.TrimSpace(filterExpression)

	if !strings.HasPrefix(strings.ToUpper(trimmed), "FILTER") {
		p, err := newParser(trimmed)

		if err != nil {
			return nil, err
		}

		root, err := p.parseExpression()

		if err != nil {
			return nil, err
		}

		tree := newExpressionTree(root)
		tree.Table = dataTable
		return tree, nil
	}

	parser := NewFilterExpressionParserForDataSet(dataTable.Parent(), trimmed, dataTable.Name())

	if !suppressConsoleErrorOutput {
		parser.SetParsingExceptionCallback(func(_, message string) {
			fmt.Println("ERR: " + message)
		})
	}

	trees, err := parser.ExpressionTrees()

	if err != nil {
		return nil, err
	}

	if len(trees) == 0 {
		return nil, errors.New("filter expression statement did not produce an expression tree")
	}

	return trees[0], nil
}

// EvaluateExpression parses and evaluates a stand-alone filter expression, with no table or row
// context, returning its resulting ValueExpression.
func EvaluateExpression(filterExpression string) (*ValueExpression, error) {
	p, err := newParser(filterExpression)

	if err != nil {
		return nil, err
	}

	root, err := p.parseExpression()

	if err != nil {
		return nil, err
	}

	tree := newExpressionTree(root)
	return tree.Evaluate(nil)
}

// EvaluateDataRowExpression parses and evaluates filterExpression against the specified DataRow,
// returning its resulting ValueExpression.
func EvaluateDataRowExpression(row *DataRow, filterExpression string) (*ValueExpression, error) {
	if row == nil {
		return nil, errors.New("cannot evaluate expression, data row is nil")
	}

	tree, err := GenerateExpressionTree(row.Parent(), filterExpression, true)

	if err != nil {
		return nil, err
	}

	return tree.Evaluate(row)
}

// SelectDataRows parses and evaluates filterExpression as a WHERE clause against dataTable and
// returns the matching DataRow instances.
func SelectDataRows(dataTable *DataTable, filterExpression string) ([]*DataRow, error) {
	tree, err := GenerateExpressionTree(dataTable, filterExpression, true)

	if err != nil {
		return nil, err
	}

	return tree.Select(dataTable)
}

// SelectDataRowSet parses and evaluates filterExpression as a WHERE clause against dataTable and
// returns the matching DataRow instances as a DataRowHashSet.
func SelectDataRowSet(dataTable *DataTable, filterExpression string) (DataRowHashSet, error) {
	rows, err := SelectDataRows(dataTable, filterExpression)

	if err != nil {
		return nil, err
	}

	return NewDataRowHashSet(rows), nil
}

// SelectSignalIDSet parses and evaluates filterExpression against dataSet using primaryTableName,
// returning the unique matching signal ID Guid values.
func SelectSignalIDSet(dataSet *DataSet, filterExpression, primaryTableName string) (guid.HashSet, error) {
	parser := NewFilterExpressionParserForDataSet(dataSet, filterExpression, primaryTableName)
	parser.SetTrackFilteredRows(false)
	parser.SetTrackFilteredSignalIDs(true)

	if err := parser.Evaluate(true, true); err != nil {
		return nil, err
	}

	return parser.FilteredSignalIDSet(), nil
}
