package repository

import (
	"fmt"
	"strings"

	"github.com/spec-kit/usuario-service/internal/domain"
)

const userColumns = "id, nome, email, ativo"

// Dialect renders the SQL fragments that differ between backends.
type Dialect struct {
	Name string
	// Placeholder returns the bind marker for the n-th (1-based) argument.
	Placeholder func(n int) string
	// ContainsMatch renders a case-insensitive LIKE of column against the
	// bound pattern.
	ContainsMatch func(column, placeholder string) string
}

var (
	// DialectPostgres targets PostgreSQL through pgx.
	DialectPostgres = Dialect{
		Name:        "postgres",
		Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		ContainsMatch: func(column, placeholder string) string {
			return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, column, placeholder)
		},
	}
	// DialectSQLite targets SQLite. Its LIKE only folds ASCII, so both sides go
	// through unicode_lower, registered by persistence.NewSQLite.
	DialectSQLite = Dialect{
		Name:        "sqlite",
		Placeholder: func(int) string { return "?" },
		ContainsMatch: func(column, placeholder string) string {
			return fmt.Sprintf(`unicode_lower(%s) LIKE unicode_lower(%s) ESCAPE '\'`, column, placeholder)
		},
	}
)

// sortColumns is the closed set of columns a listing may be ordered by.
var sortColumns = map[string]string{
	"id":    "id",
	"nome":  "nome",
	"ativo": "ativo",
}

// SortColumn resolves a caller supplied sort key; unknown keys fall back to id.
func SortColumn(key string) string {
	if col, ok := sortColumns[strings.ToLower(strings.TrimSpace(key))]; ok {
		return col
	}
	return "id"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching value anywhere in the column.
func ContainsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(value)) + "%"
}

type argList struct {
	dialect Dialect
	args    []any
}

func (a *argList) bind(v any) string {
	a.args = append(a.args, v)
	return a.dialect.Placeholder(len(a.args))
}

// BuildListQuery composes the filtered, ordered SELECT for a listing.
func BuildListQuery(d Dialect, filter domain.UserFilter) (string, []any) {
	args := &argList{dialect: d}
	clauses := []string{}

	switch filter.Active {
	case domain.ActiveAny:
		clauses = append(clauses, fmt.Sprintf("ativo IN (%d, %d)", domain.UserInactive, domain.UserActive))
	default:
		clauses = append(clauses, "ativo = "+args.bind(filter.Active))
	}
	if filter.ID != nil {
		clauses = append(clauses, "id = "+args.bind(*filter.ID))
	}
	if strings.TrimSpace(filter.Name) != "" {
		clauses = append(clauses, d.ContainsMatch("nome", args.bind(ContainsPattern(filter.Name))))
	}

	query := "SELECT " + userColumns + " FROM usuarios WHERE " + strings.Join(clauses, " AND ")

	col := SortColumn(filter.OrderBy)
	query += " ORDER BY " + col + " ASC"
	if col != "id" {
		query += ", id ASC"
	}
	return query, args.args
}

// BuildInsertQuery returns the INSERT for a new user.
func BuildInsertQuery(d Dialect, user *domain.User) (string, []any) {
	args := &argList{dialect: d}
	query := fmt.Sprintf("INSERT INTO usuarios (nome, email, ativo) VALUES (%s, %s, %s) RETURNING id",
		args.bind(user.Name), args.bind(user.Email), args.bind(user.Active))
	return query, args.args
}

// BuildUpdateQuery returns an UPDATE touching only the fields set in patch.
// The patch must not be empty.
func BuildUpdateQuery(d Dialect, id int64, patch domain.UserPatch) (string, []any) {
	args := &argList{dialect: d}
	sets := []string{}
	if patch.Name != nil {
		sets = append(sets, "nome = "+args.bind(*patch.Name))
	}
	if patch.Email != nil {
		sets = append(sets, "email = "+args.bind(*patch.Email))
	}
	if patch.Active != nil {
		sets = append(sets, "ativo = "+args.bind(*patch.Active))
	}
	query := "UPDATE usuarios SET " + strings.Join(sets, ", ") +
		" WHERE id = " + args.bind(id) + " RETURNING " + userColumns
	return query, args.args
}

// BuildDeactivateQuery returns the soft-delete UPDATE.
func BuildDeactivateQuery(d Dialect, id int64) (string, []any) {
	args := &argList{dialect: d}
	query := fmt.Sprintf("UPDATE usuarios SET ativo = %d WHERE id = %s RETURNING %s",
		domain.UserInactive, args.bind(id), userColumns)
	return query, args.args
}
