package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/usuario-service/internal/domain"
)

var userRowColumns = []string{"id", "nome", "email", "ativo"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPostgresCreate(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO usuarios (nome, email, ativo) VALUES ($1, $2, $3) RETURNING id")).
		WithArgs("Ana", "ana@x.com", 1).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectCommit()

	repo := NewPostgresUserRepository(mock)
	user := &domain.User{Name: "Ana", Email: "ana@x.com", Active: domain.UserActive}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Equal(t, int64(11), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateDuplicateEmailRollsBack(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO usuarios").
		WithArgs("Ana", "ana@x.com", 1).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, Message: "duplicate key value violates unique constraint \"usuarios_email_key\""})
	mock.ExpectRollback()

	repo := NewPostgresUserRepository(mock)
	err := repo.Create(context.Background(), &domain.User{Name: "Ana", Email: "ana@x.com", Active: domain.UserActive})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailTaken)
	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBeginFailure(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	repo := NewPostgresUserRepository(mock)
	_, err := repo.Deactivate(context.Background(), 1)

	assert.EqualError(t, err, "too many connections")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList(t *testing.T) {
	mock := newMockPool(t)
	filter := domain.UserFilter{Active: domain.UserActive, Name: "ana", OrderBy: "nome"}
	query, args := BuildListQuery(DialectPostgres, filter)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(args...).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(int64(1), "Ana Silva", "ana@x.com", 1).
			AddRow(int64(2), "MARIANA", "mariana@x.com", 1))

	repo := NewPostgresUserRepository(mock)
	got, err := repo.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, []domain.User{
		{ID: 1, Name: "Ana Silva", Email: "ana@x.com", Active: 1},
		{ID: 2, Name: "MARIANA", Email: "mariana@x.com", Active: 1},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListEmpty(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT id, nome, email, ativo FROM usuarios").
		WillReturnRows(pgxmock.NewRows(userRowColumns))

	repo := NewPostgresUserRepository(mock)
	got, err := repo.List(context.Background(), domain.NewUserFilter())

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateReturnsStoredRow(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE usuarios SET ativo = $1 WHERE id = $2 RETURNING id, nome, email, ativo")).
		WithArgs(0, int64(3)).
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(int64(3), "Ana", "ana@x.com", 0))
	mock.ExpectCommit()

	repo := NewPostgresUserRepository(mock)
	got, err := repo.Update(context.Background(), 3, domain.UserPatch{Active: intPtr(domain.UserInactive)})

	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 3, Name: "Ana", Email: "ana@x.com", Active: 0}, *got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateUnknownID(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE usuarios SET nome").
		WithArgs("Bia", int64(404)).
		WillReturnRows(pgxmock.NewRows(userRowColumns))
	mock.ExpectRollback()

	repo := NewPostgresUserRepository(mock)
	got, err := repo.Update(context.Background(), 404, domain.UserPatch{Name: strPtr("Bia")})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeactivate(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE usuarios SET ativo = 0 WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(int64(5), "Ana", "ana@x.com", 0))
	mock.ExpectCommit()

	repo := NewPostgresUserRepository(mock)
	got, err := repo.Deactivate(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.UserInactive, got.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}
