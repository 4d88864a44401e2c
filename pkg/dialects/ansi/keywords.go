package ansi

// ReservedKeywords may never be used as naked identifiers. Derived
// dialects move words between the tables with ReserveKeywords and
// UnreserveKeywords.
var ReservedKeywords = []string{
	"ALL", "AND", "AS", "ASC", "BETWEEN", "BY",
	"CASE", "CAST", "CREATE", "CROSS",
	"DELETE", "DESC", "DISTINCT", "DROP",
	"ELSE", "END", "EXCEPT",
	"FALSE", "FROM", "FULL",
	"GROUP", "HAVING",
	"IN", "INNER", "INSERT", "INTERSECT", "INTO", "IS",
	"JOIN",
	"LEFT", "LIKE", "LIMIT",
	"NOT", "NULL",
	"ON", "OR", "ORDER", "OUTER",
	"PRIMARY", "RIGHT",
	"SELECT", "SET",
	"TABLE", "THEN", "TRUE",
	"UNION", "UPDATE", "USING",
	"VALUES",
	"WHEN", "WHERE", "WITH",
}

// UnreservedKeywords have grammatical meaning in some positions but stay
// usable as identifiers everywhere else.
var UnreservedKeywords = []string{
	"DEFAULT", "EXISTS", "FIRST", "FUNCTION", "IF", "KEY",
	"LANGUAGE", "LAST", "NULLS", "OFFSET", "REPLACE", "RETURNS",
	"UNIQUE",
}
