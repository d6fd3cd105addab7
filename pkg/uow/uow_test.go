package uow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fsdevblog/adashi/pkg/uow"
	"github.com/fsdevblog/adashi/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repo struct {
	conn uow.DBTX
}

// fakeTx реализует только Commit и Rollback, остальные методы pgx.Tx не вызываются.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if f.committed {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

func newRepo(conn uow.DBTX) uow.Repository {
	return &repo{conn: conn}
}

func TestRegister(t *testing.T) {
	u := uow.NewUnitOfWork(nil)

	require.NoError(t, u.Register("repo", newRepo))
	require.ErrorIs(t, u.Register("repo", newRepo), uow.ErrRepositoryAlreadyRegistered)
	require.ErrorIs(t, u.Register("nil", nil), uow.ErrNilRepositoryFactory)
}

func TestGetRepositoryAs(t *testing.T) {
	conn := mocks.NewMockConn(gomock.NewController(t))
	u := uow.NewUnitOfWork(conn)
	require.NoError(t, u.Register("repo", newRepo))

	r, err := uow.GetRepositoryAs[*repo](u, "repo")
	require.NoError(t, err)
	assert.Equal(t, conn, r.conn)

	_, err = uow.GetRepositoryAs[*repo](u, "missing")
	require.ErrorIs(t, err, uow.ErrRepositoryNotRegistered)

	_, err = uow.GetRepositoryAs[string](u, "repo")
	require.ErrorIs(t, err, uow.ErrInvalidRepositoryType)
}

func TestDo_Commit(t *testing.T) {
	conn := mocks.NewMockConn(gomock.NewController(t))
	tx := new(fakeTx)
	conn.EXPECT().BeginTx(gomock.Any(), pgx.TxOptions{IsoLevel: pgx.ReadCommitted}).Return(tx, nil)

	u := uow.NewUnitOfWork(conn)
	require.NoError(t, u.Register("repo", newRepo))

	err := u.Do(context.Background(), func(_ context.Context, tr uow.TX) error {
		r, getErr := uow.GetAs[*repo](tr, "repo")
		require.NoError(t, getErr)
		// репозиторий внутри Do работает через транзакцию, а не через пул.
		assert.Same(t, tx, r.conn)

		again, getErr := uow.GetAs[*repo](tr, "repo")
		require.NoError(t, getErr)
		assert.Same(t, r, again)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestDo_Rollback(t *testing.T) {
	conn := mocks.NewMockConn(gomock.NewController(t))
	tx := new(fakeTx)
	conn.EXPECT().BeginTx(gomock.Any(), pgx.TxOptions{IsoLevel: pgx.Serializable}).Return(tx, nil)

	u := uow.NewUnitOfWork(conn).SetTxOptions(pgx.TxOptions{IsoLevel: pgx.Serializable})
	fnErr := errors.New("boom")

	err := u.Do(context.Background(), func(context.Context, uow.TX) error {
		return fnErr
	})

	require.ErrorIs(t, err, fnErr)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestDo_BeginError(t *testing.T) {
	conn := mocks.NewMockConn(gomock.NewController(t))
	beginErr := errors.New("no connection")
	conn.EXPECT().BeginTx(gomock.Any(), gomock.Any()).Return(nil, beginErr)

	called := false
	err := uow.NewUnitOfWork(conn).Do(context.Background(), func(context.Context, uow.TX) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, beginErr)
	assert.False(t, called)
}
