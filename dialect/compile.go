package dialect

import "strings"

// ----------------------------------------------------------------------------
// ORDER BY Types
// ----------------------------------------------------------------------------

// OrderDirection, sıralama yönünü belirtir.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// IsValid, yönün geçerli olup olmadığını kontrol eder.
func (d OrderDirection) IsValid() bool {
	return d == OrderAsc || d == OrderDesc
}

// ParseDirection, "asc"/"DESC" gibi serbest yazımı OrderDirection'a çevirir.
// Boş string ASC kabul edilir.
func ParseDirection(dir string) (OrderDirection, bool) {
	d := OrderDirection(strings.ToUpper(strings.TrimSpace(dir)))
	if d == "" {
		return OrderAsc, true
	}
	return d, d.IsValid()
}

// OrderClause, ORDER BY ifadesini temsil eder.
type OrderClause struct {
	Field     string
	Direction OrderDirection
}

// ----------------------------------------------------------------------------
// JOIN Types
// ----------------------------------------------------------------------------

// JoinType, JOIN türünü belirtir.
type JoinType string

const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
)

// JoinClause, JOIN ifadesini temsil eder. Koşullar ham SQL parçalarıdır ve
// AND ile birleştirilir.
type JoinClause struct {
	Type       JoinType
	Table      string
	Conditions []string
}

// ----------------------------------------------------------------------------
// Statement shapes
// ----------------------------------------------------------------------------

// SelectQuery, bir SELECT şablonunu üretmek için gereken bütün parçaları taşır.
// Where ve Having elemanları ham koşullardır, her biri parantez içine alınır.
type SelectQuery struct {
	Fields  []string
	Table   string
	Joins   []JoinClause
	Wheres  []string
	GroupBy []string
	Having  []string
	Orders  []OrderClause
	Limit   int
	Offset  int
}

// InsertQuery, çok satırlı INSERT şablonu. Rows elemanları Columns ile aynı
// sırada yer tutucu (veya literal) metinleridir.
type InsertQuery struct {
	Table   string
	Columns []string
	Rows    [][]string
}

// Assignment, UPDATE ... SET içindeki tek bir "kolon = değer" çiftidir.
type Assignment struct {
	Column string
	Value  string
}

// UpdateQuery, UPDATE şablonu.
type UpdateQuery struct {
	Table  string
	Set    []Assignment
	Wheres []string
}

// DeleteQuery, DELETE şablonu. Wheres boşsa WHERE cümlesi yazılmaz.
type DeleteQuery struct {
	Table  string
	Wheres []string
}

// ----------------------------------------------------------------------------
// Compilers
// ----------------------------------------------------------------------------

// CompileSelect, SELECT şablonunu derler:
//
//	SELECT <fields> FROM <table> [joins] [WHERE (c1) AND (c2)]
//	[GROUP BY g [HAVING (h1) AND (h2)]] [ORDER BY f DIR, ...] [LIMIT]
func CompileSelect(d Dialect, q SelectQuery) (string, error) {
	if q.Table == "" {
		return "", ErrNoTable
	}

	var sql strings.Builder
	sql.WriteString("SELECT ")

	if len(q.Fields) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(quoteFields(d, q.Fields))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(d.QuoteTable(q.Table))

	for _, join := range q.Joins {
		sql.WriteString(" ")
		sql.WriteString(compileJoin(d, join))
	}

	sql.WriteString(compileConditions(" WHERE ", q.Wheres))

	if len(q.GroupBy) > 0 {
		sql.WriteString(" GROUP BY ")
		sql.WriteString(quoteFields(d, q.GroupBy))
		sql.WriteString(compileConditions(" HAVING ", q.Having))
	}

	if len(q.Orders) > 0 {
		sql.WriteString(" ORDER BY ")
		for i, order := range q.Orders {
			if i > 0 {
				sql.WriteString(", ")
			}
			sql.WriteString(d.QuoteField(order.Field))
			sql.WriteString(" ")
			sql.WriteString(string(order.Direction))
		}
	}

	sql.WriteString(d.Limit(q.Limit, q.Offset))

	return sql.String(), nil
}

// CompileCount, verilen SELECT şablonunu bir COUNT(*) alt sorgusuna sarar.
func CompileCount(d Dialect, selectSQL string) string {
	return "SELECT COUNT(*) FROM (" + selectSQL + ") AS " + d.QuoteIdent("_count")
}

// CompileInsert, tek veya çok satırlı INSERT şablonunu derler.
func CompileInsert(d Dialect, q InsertQuery) (string, error) {
	if q.Table == "" {
		return "", ErrNoTable
	}
	if len(q.Columns) == 0 || len(q.Rows) == 0 {
		return "", ErrNoColumns
	}

	columns := make([]string, len(q.Columns))
	for i, col := range q.Columns {
		columns[i] = d.QuoteField(col)
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(d.QuoteTable(q.Table))
	sql.WriteString(" (")
	sql.WriteString(strings.Join(columns, ", "))
	sql.WriteString(") VALUES ")

	for i, row := range q.Rows {
		if len(row) != len(q.Columns) {
			return "", ErrInconsistentRows
		}
		if i > 0 {
			sql.WriteString(", ")
		}
		sql.WriteString("(")
		sql.WriteString(strings.Join(row, ", "))
		sql.WriteString(")")
	}

	return sql.String(), nil
}

// CompileUpdate, UPDATE şablonunu derler. Koşul yoksa WHERE yazılmaz.
func CompileUpdate(d Dialect, q UpdateQuery) (string, error) {
	if q.Table == "" {
		return "", ErrNoTable
	}
	if len(q.Set) == 0 {
		return "", ErrNoColumns
	}

	sets := make([]string, len(q.Set))
	for i, a := range q.Set {
		sets[i] = d.QuoteField(a.Column) + " = " + a.Value
	}

	return "UPDATE " + d.QuoteTable(q.Table) + " SET " + strings.Join(sets, ", ") +
		compileConditions(" WHERE ", q.Wheres), nil
}

// CompileDelete, DELETE şablonunu derler. Koşul yoksa WHERE yazılmaz.
func CompileDelete(d Dialect, q DeleteQuery) (string, error) {
	if q.Table == "" {
		return "", ErrNoTable
	}
	return "DELETE FROM " + d.QuoteTable(q.Table) + compileConditions(" WHERE ", q.Wheres), nil
}

// ----------------------------------------------------------------------------
// Internal helpers
// ----------------------------------------------------------------------------

func quoteFields(d Dialect, fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = d.QuoteField(f)
	}
	return strings.Join(quoted, ", ")
}

// compileConditions, koşulları "(c1) AND (c2)" biçiminde birleştirir.
func compileConditions(keyword string, conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return keyword + "(" + strings.Join(conds, ") AND (") + ")"
}

func compileJoin(d Dialect, join JoinClause) string {
	clause := string(join.Type) + " JOIN " + d.QuoteTable(join.Table)
	if len(join.Conditions) > 0 {
		clause += " ON " + strings.Join(join.Conditions, " AND ")
	}
	return clause
}
