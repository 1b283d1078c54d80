package queries_test

import (
	"testing"
	"time"

	"donations/internal/adapters/out/memory"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/domain/model/center"
	"donations/internal/core/domain/model/content"
	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/driver"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seed struct {
	readers   queries.UnitOfWorkReaders
	center    *center.CollectionCenter
	luna      *donor.Donor
	other     *donor.Donor
	lunaGift  *donation.Donation
	otherGift *donation.Donation
	driver    *driver.DeliveryPartner
	delivery  *delivery.Delivery
	thanks    []*content.GeneratedContent
}

func principal(t *testing.T, username string, roles ...kernel.Role) kernel.Principal {
	t.Helper()
	p, err := kernel.NewPrincipal(username, roles...)
	require.NoError(t, err)
	return p
}

func newSeed(t *testing.T) *seed {
	t.Helper()
	ctx := t.Context()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	s := &seed{readers: queries.UnitOfWorkReaders{Factory: factory}}
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	var err error
	s.center, err = center.NewCollectionCenter(kernel.NewUUID(), "North depot", "Harbour Rd 1", 100, "maria")
	require.NoError(t, err)
	s.luna, err = donor.NewDonor(kernel.NewUUID(), "Cafe Luna", "", "", donor.TypeRestaurant, "luna")
	require.NoError(t, err)
	s.other, err = donor.NewDonor(kernel.NewUUID(), "Bakery Sol", "", "", donor.TypeGrocery, "sol")
	require.NoError(t, err)
	s.lunaGift, err = donation.NewDonation(kernel.NewUUID(), s.luna.ID(), "Rice", 5, kernel.UnitKilogram, day)
	require.NoError(t, err)
	require.NoError(t, s.lunaGift.LinkToCenter(s.center.ID()))
	require.NoError(t, s.lunaGift.Accept())
	s.otherGift, err = donation.NewDonation(kernel.NewUUID(), s.other.ID(), "Bread", 3, kernel.UnitLoaves, day)
	require.NoError(t, err)
	s.driver, err = driver.NewDeliveryPartner(kernel.NewUUID(), "Sam", "", "", "VAN", "sam", nil)
	require.NoError(t, err)
	r, err := recipient.NewRecipient(kernel.NewUUID(), "Hope Shelter", recipient.TypeShelter, "Elm St 7", recipient.Contact{})
	require.NoError(t, err)
	s.delivery, err = delivery.NewDelivery(kernel.NewUUID(), s.lunaGift.ID(), s.center.ID(), s.driver.ID(), r.ID(), nil, "", day)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.CollectionCenterRepository().Add(ctx, s.center))
	require.NoError(t, uow.DonorRepository().Add(ctx, s.luna))
	require.NoError(t, uow.DonorRepository().Add(ctx, s.other))
	require.NoError(t, uow.DonationRepository().Add(ctx, s.lunaGift))
	require.NoError(t, uow.DonationRepository().Add(ctx, s.otherGift))
	require.NoError(t, uow.DeliveryPartnerRepository().Add(ctx, s.driver))
	require.NoError(t, uow.RecipientRepository().Add(ctx, r))
	require.NoError(t, uow.DeliveryRepository().Add(ctx, s.delivery))
	for i := range 7 {
		c, err := content.NewGeneratedContent(
			kernel.NewUUID(), kernel.NewUUID(), content.TypeThankYou, "Thanks!", []string{"Rice"},
			content.Source{DonorID: s.luna.ID(), GeneratedBy: "maria"}, day.Add(time.Duration(i)*time.Hour),
		)
		require.NoError(t, err)
		require.NoError(t, uow.ContentRepository().Add(ctx, c))
		s.thanks = append(s.thanks, c)
	}
	require.NoError(t, uow.Commit(ctx))
	return s
}

func TestListDonations(t *testing.T) {
	s := newSeed(t)
	handler := queries.NewListDonationsQueryHandler(s.readers)

	t.Run("staff sees all", func(t *testing.T) {
		q, err := queries.NewListDonationsQuery(principal(t, "maria", kernel.RoleStaff), nil, nil, nil)
		require.NoError(t, err)
		got, err := handler.Handle(t.Context(), q)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		collected := donation.Collected
		q, err := queries.NewListDonationsQuery(principal(t, "maria", kernel.RoleStaff), &collected, nil, nil)
		require.NoError(t, err)
		got, err := handler.Handle(t.Context(), q)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "COLLECTED", got[0].Status)
	})

	t.Run("donor filter is forced to own record", func(t *testing.T) {
		otherID := s.other.ID()
		q, err := queries.NewListDonationsQuery(principal(t, "luna", kernel.RoleDonor), nil, &otherID, nil)
		require.NoError(t, err)
		got, err := handler.Handle(t.Context(), q)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, s.lunaGift.ID(), got[0].ID)
	})

	t.Run("driver is refused", func(t *testing.T) {
		q, err := queries.NewListDonationsQuery(principal(t, "sam", kernel.RoleDriver), nil, nil, nil)
		require.NoError(t, err)
		_, err = handler.Handle(t.Context(), q)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestGetDonation_DonorOwnership(t *testing.T) {
	s := newSeed(t)
	handler := queries.NewGetDonationQueryHandler(s.readers)

	own, err := queries.NewGetDonationQuery(principal(t, "luna", kernel.RoleDonor), s.lunaGift.ID())
	require.NoError(t, err)
	view, err := handler.Handle(t.Context(), own)
	require.NoError(t, err)
	assert.Equal(t, "Rice", view.ItemName)
	assert.True(t, kernel.SameRef(view.CenterID, s.center.ID()))

	foreign, err := queries.NewGetDonationQuery(principal(t, "luna", kernel.RoleDonor), s.otherGift.ID())
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), foreign)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestListMyDeliveries(t *testing.T) {
	s := newSeed(t)
	handler := queries.NewListMyDeliveriesQueryHandler(s.readers)

	q, err := queries.NewListMyDeliveriesQuery(principal(t, "sam", kernel.RoleDriver), nil)
	require.NoError(t, err)
	got, err := handler.Handle(t.Context(), q)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, s.delivery.ID(), got[0].ID)
	assert.Equal(t, "ASSIGNED", got[0].Status)

	unknown, err := queries.NewListMyDeliveriesQuery(principal(t, "ghost", kernel.RoleDriver), nil)
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), unknown)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestListDeliveries_StaffOnly(t *testing.T) {
	s := newSeed(t)
	handler := queries.NewListDeliveriesQueryHandler(s.readers)
	centerID := s.center.ID()

	q, err := queries.NewListDeliveriesQuery(principal(t, "maria", kernel.RoleStaff), nil, &centerID, nil)
	require.NoError(t, err)
	got, err := handler.Handle(t.Context(), q)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	q, err = queries.NewListDeliveriesQuery(principal(t, "sam", kernel.RoleDriver), nil, nil, nil)
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), q)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestRegistryQueries(t *testing.T) {
	s := newSeed(t)
	handler := queries.NewRegistryQueryHandler(s.readers)
	staff := principal(t, "maria", kernel.RoleStaff)

	q, err := queries.NewRegistryQuery(staff, true)
	require.NoError(t, err)

	mine, err := handler.GetMyCenter(t.Context(), q)
	require.NoError(t, err)
	assert.Equal(t, s.center.ID(), mine.ID)
	assert.Equal(t, 100, mine.AvailableCapacity)

	drivers, err := handler.ListDeliveryPartners(t.Context(), q)
	require.NoError(t, err)
	assert.Len(t, drivers, 1)

	recipients, err := handler.ListRecipients(t.Context(), q)
	require.NoError(t, err)
	assert.Len(t, recipients, 1)

	donors, err := handler.ListDonors(t.Context(), q)
	require.NoError(t, err)
	require.Len(t, donors, 2)
	assert.Equal(t, "Bakery Sol", donors[0].Name)

	asDonor, err := queries.NewRegistryQuery(principal(t, "luna", kernel.RoleDonor), false)
	require.NoError(t, err)
	centers, err := handler.ListCenters(t.Context(), asDonor)
	require.NoError(t, err)
	assert.Len(t, centers, 1)
	_, err = handler.ListDonors(t.Context(), asDonor)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestContentQueries(t *testing.T) {
	s := newSeed(t)
	handler := queries.NewContentQueryHandler(s.readers)

	q, err := queries.NewRegistryQuery(principal(t, "luna", kernel.RoleDonor), false)
	require.NoError(t, err)
	latest, err := handler.ListMyThankYouMessages(t.Context(), q)
	require.NoError(t, err)
	require.Len(t, latest, 5)
	assert.Equal(t, s.thanks[6].ID(), latest[0].ID)
	assert.Equal(t, s.thanks[2].ID(), latest[4].ID)

	saved, err := queries.NewGetSavedContentQuery(principal(t, "luna", kernel.RoleDonor), s.thanks[0].DonationID(), content.TypeThankYou)
	require.NoError(t, err)
	first, err := handler.GetSaved(t.Context(), saved)
	require.NoError(t, err)
	second, err := handler.GetSaved(t.Context(), saved)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	missing, err := queries.NewGetSavedContentQuery(principal(t, "maria", kernel.RoleStaff), s.lunaGift.ID(), content.TypeFoodTips)
	require.NoError(t, err)
	_, err = handler.GetSaved(t.Context(), missing)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	stranger, err := queries.NewGetSavedContentQuery(principal(t, "sol", kernel.RoleDonor), s.thanks[0].DonationID(), content.TypeThankYou)
	require.NoError(t, err)
	_, err = handler.GetSaved(t.Context(), stranger)
	require.ErrorIs(t, err, errs.ErrForbidden)
}
