package memory_test

import (
	"context"
	"testing"
	"time"

	"purchasing/internal/adapters/out/memory"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/core/ports"
	"purchasing/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	suite.factory = memory.NewUnitOfWorkFactory(memory.NewStore())
}

func (suite *UnitOfWorkTestSuite) newOrder(engine order.Engine) order.Lifecycle {
	o, err := order.NewFactory().New(engine, kernel.NewUUID(), order.Pending)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkTestSuite) addCommitted(orders ...order.Lifecycle) {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	for _, o := range orders {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	}
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkTestSuite) TestCommit_PublishesStagedOrders() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.EngineTable)

	suite.addCommitted(o)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	got, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Same(o, got)
}

func (suite *UnitOfWorkTestSuite) TestRollback_DiscardsStagedOrders() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.EngineConditional)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	staged, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Same(o, staged)
	suite.Require().NoError(uow.Rollback(ctx))

	next := suite.factory.Create()
	suite.Require().NoError(next.Begin(ctx))
	defer func() { _ = next.Rollback(ctx) }()

	_, err = next.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkTestSuite) TestRollback_AfterCommitIsNoOp() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Rollback(ctx))
	suite.Require().ErrorIs(uow.Commit(ctx), memory.ErrTransactionNotActive)
}

func (suite *UnitOfWorkTestSuite) TestRepository_RequiresActiveUnit() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	_, err := uow.OrderRepository().GetAll(ctx)
	suite.Require().ErrorIs(err, memory.ErrTransactionNotActive)

	err = uow.OrderRepository().Add(ctx, suite.newOrder(order.EngineTable))
	suite.Require().ErrorIs(err, memory.ErrTransactionNotActive)
}

func (suite *UnitOfWorkTestSuite) TestBegin_SerializesUnits() {
	ctx := suite.T().Context()
	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	second := suite.factory.Create()
	err := second.Begin(waitCtx)
	suite.Require().ErrorIs(err, context.DeadlineExceeded)

	suite.Require().NoError(first.Rollback(ctx))
	suite.Require().NoError(second.Begin(ctx))
	suite.Require().NoError(second.Rollback(ctx))
}

func (suite *UnitOfWorkTestSuite) TestBegin_IsIdempotent() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkTestSuite) TestAdd_RejectsDuplicateID() {
	ctx := suite.T().Context()
	o := suite.newOrder(order.EngineTable)
	suite.addCommitted(o)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	err := uow.OrderRepository().Add(ctx, o)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)

	err = uow.OrderRepository().Add(ctx, nil)
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *UnitOfWorkTestSuite) TestGetAll_SortedByID() {
	ctx := suite.T().Context()
	orders := []order.Lifecycle{
		suite.newOrder(order.EngineTable),
		suite.newOrder(order.EngineConditional),
		suite.newOrder(order.EngineTable),
	}
	suite.addCommitted(orders...)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	all, err := uow.OrderRepository().GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	for i := range len(all) - 1 {
		suite.Negative(all[i].ID().Compare(all[i+1].ID()))
	}
}

func (suite *UnitOfWorkTestSuite) TestGetAllInStatus_ReflectsFiredTriggers() {
	ctx := suite.T().Context()
	paid := suite.newOrder(order.EngineTable)
	paid.Pay()
	pending := suite.newOrder(order.EngineConditional)
	suite.addCommitted(paid, pending)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	repo := uow.OrderRepository()

	got, err := repo.Get(ctx, paid.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(got.Confirm())

	inPending, err := repo.GetAllInStatus(ctx, order.Pending)
	suite.Require().NoError(err)
	suite.Require().Len(inPending, 1)
	suite.True(inPending[0].ID().IsEqual(pending.ID()))

	inProcessing, err := repo.GetAllInStatus(ctx, order.Processing)
	suite.Require().NoError(err)
	suite.Require().Len(inProcessing, 1)
	suite.True(inProcessing[0].ID().IsEqual(paid.ID()))
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
