package donationrepo_test

import (
	"context"
	"testing"
	"time"

	"donations/internal/adapters/out/postgres/donationrepo"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type DonationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *donationrepo.GormDonationRepository
	tracker    *MockAggregateTracker
	day        time.Time
}

func (suite *DonationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&donationrepo.DonationDTO{}))
	suite.day = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (suite *DonationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE donations").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = donationrepo.NewGormDonationRepository(suite.db, suite.tracker)
}

func (suite *DonationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DonationRepositoryIntegrationTestSuite) newDonation(donorID kernel.UUID, donatedAt time.Time) *donation.Donation {
	d, err := donation.NewDonation(kernel.NewUUID(), donorID, "Bread", 10, kernel.UnitLoaves, donatedAt)
	suite.Require().NoError(err)
	return d
}

func (suite *DonationRepositoryIntegrationTestSuite) TestAdd_TracksAndPersists() {
	ctx := context.Background()
	tracker := new(MockAggregateTracker)
	repository := donationrepo.NewGormDonationRepository(suite.db, tracker)

	d := suite.newDonation(kernel.NewUUID(), suite.day)
	tracker.On("TrackAggregate", d.ID(), d).Once()

	suite.Require().NoError(repository.Add(ctx, d))

	loaded, err := repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(d.Snapshot(), loaded.Snapshot())
	suite.Nil(loaded.CenterID())
	tracker.AssertExpectations(suite.T())
}

func (suite *DonationRepositoryIntegrationTestSuite) TestUpdate_WritesZeroAndNilFields() {
	ctx := context.Background()
	centerID := kernel.NewUUID()

	d := suite.newDonation(kernel.NewUUID(), suite.day)
	suite.Require().NoError(d.LinkToCenter(centerID))
	suite.Require().NoError(suite.repository.Add(ctx, d))

	d.UnlinkCenter()
	suite.Require().NoError(d.Reject())
	suite.Require().NoError(suite.repository.Update(ctx, d))

	loaded, err := suite.repository.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Nil(loaded.CenterID())
	suite.Equal(donation.Rejected, loaded.Status())
}

func (suite *DonationRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newDonation(kernel.NewUUID(), suite.day))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DonationRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DonationRepositoryIntegrationTestSuite) TestFind_FiltersNewestFirst() {
	ctx := context.Background()
	donorA, donorB := kernel.NewUUID(), kernel.NewUUID()
	centerID := kernel.NewUUID()

	older := suite.newDonation(donorA, suite.day)
	newer := suite.newDonation(donorA, suite.day.Add(time.Hour))
	other := suite.newDonation(donorB, suite.day.Add(2*time.Hour))
	suite.Require().NoError(newer.LinkToCenter(centerID))
	suite.Require().NoError(newer.Accept())
	for _, d := range []*donation.Donation{older, newer, other} {
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}

	all, err := suite.repository.Find(ctx, ports.DonationFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal(other.ID(), all[0].ID())
	suite.Equal(older.ID(), all[2].ID())

	byDonor, err := suite.repository.Find(ctx, ports.DonationFilter{DonorID: &donorA})
	suite.Require().NoError(err)
	suite.Require().Len(byDonor, 2)
	suite.Equal(newer.ID(), byDonor[0].ID())

	collected := donation.Collected
	byStatus, err := suite.repository.Find(ctx, ports.DonationFilter{Status: &collected, CenterID: &centerID})
	suite.Require().NoError(err)
	suite.Require().Len(byStatus, 1)
	suite.Equal(newer.ID(), byStatus[0].ID())

	none, err := suite.repository.Find(ctx, ports.DonationFilter{DonorID: &centerID})
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *DonationRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	d := suite.newDonation(kernel.NewUUID(), suite.day)
	suite.Require().NoError(suite.repository.Add(ctx, d))

	suite.Require().NoError(suite.repository.Delete(ctx, d.ID()))

	_, err := suite.repository.Get(ctx, d.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, d.ID()), errs.ErrObjectNotFound)
}

func TestDonationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DonationRepositoryIntegrationTestSuite))
}
