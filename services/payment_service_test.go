package services

import (
	"context"
	"strings"
	"testing"

	"petcare-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) mustBooking(t *testing.T) *models.Booking {
	t.Helper()
	booking, err := NewBookingService(f.store).Create(context.Background(), f.ownerActor(), CreateBookingInput{
		PetID:     f.pet.ID,
		ServiceID: f.daycare.ID,
		Start:     slot(1, 9, 0),
		End:       slot(1, 15, 0),
	})
	require.NoError(t, err)
	return booking
}

func TestCreatePayment_Success(t *testing.T) {
	f := newFixture(t)
	booking := f.mustBooking(t)
	svc := NewPaymentService(f.store)

	payment, err := svc.Create(context.Background(), f.ownerActor(), CreatePaymentInput{
		BookingID: booking.ID,
		Amount:    70,
		Method:    "pix",
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Nil(t, payment.PaidAt)
	assert.True(t, strings.HasPrefix(payment.Reference, "PAY-"))
	assert.Equal(t, booking.ID, payment.BookingID)
}

func TestCreatePayment_NegativeAmountWritesNothing(t *testing.T) {
	f := newFixture(t)
	booking := f.mustBooking(t)
	svc := NewPaymentService(f.store)
	ctx := context.Background()

	_, err := svc.Create(ctx, f.ownerActor(), CreatePaymentInput{
		BookingID: booking.ID,
		Amount:    -5,
		Method:    "pix",
	})

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)

	payments, err := svc.List(ctx, f.ownerActor(), nil)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestCreatePayment_InvalidMethod(t *testing.T) {
	f := newFixture(t)
	booking := f.mustBooking(t)
	svc := NewPaymentService(f.store)

	_, err := svc.Create(context.Background(), f.ownerActor(), CreatePaymentInput{
		BookingID: booking.ID,
		Amount:    70,
		Method:    "cheque",
	})

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}

func TestCreatePayment_BookingNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewPaymentService(f.store)

	_, err := svc.Create(context.Background(), f.ownerActor(), CreatePaymentInput{
		BookingID: uuid.New(),
		Amount:    70,
		Method:    "pix",
	})

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Status)
}

func TestCreatePayment_CancelledBookingConflicts(t *testing.T) {
	f := newFixture(t)
	booking := f.mustBooking(t)
	ctx := context.Background()

	_, err := NewBookingService(f.store).Cancel(ctx, f.ownerActor(), booking.ID)
	require.NoError(t, err)

	_, err = NewPaymentService(f.store).Create(ctx, f.ownerActor(), CreatePaymentInput{
		BookingID: booking.ID,
		Amount:    70,
		Method:    "pix",
	})

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)
}

func TestCreatePayment_ForeignBookingForbidden(t *testing.T) {
	f := newFixture(t)
	booking := f.mustBooking(t)
	svc := NewPaymentService(f.store)

	_, err := svc.Create(context.Background(), f.otherActor(), CreatePaymentInput{
		BookingID: booking.ID,
		Amount:    70,
		Method:    "card",
	})

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 403, svcErr.Status)
}

func TestCreatePayment_CompletedConfirmsBooking(t *testing.T) {
	f := newFixture(t)
	booking := f.mustBooking(t)
	svc := NewPaymentService(f.store)
	ctx := context.Background()

	completed := models.PaymentCompleted
	payment, err := svc.Create(ctx, f.ownerActor(), CreatePaymentInput{
		BookingID: booking.ID,
		Amount:    70,
		Method:    "pix",
		Status:    &completed,
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	require.NotNil(t, payment.PaidAt)

	stored, err := f.store.BookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
}

func TestUpdatePayment_AdminOnly(t *testing.T) {
	f := newFixture(t)
	booking := f.mustBooking(t)
	svc := NewPaymentService(f.store)
	ctx := context.Background()

	payment, err := svc.Create(ctx, f.ownerActor(), CreatePaymentInput{
		BookingID: booking.ID,
		Amount:    70,
		Method:    "boleto",
	})
	require.NoError(t, err)

	processing := models.PaymentProcessing
	_, err = svc.Update(ctx, f.ownerActor(), payment.ID, UpdatePaymentInput{Status: &processing})

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 403, svcErr.Status)

	updated, err := svc.Update(ctx, f.adminActor(), payment.ID, UpdatePaymentInput{Status: &processing})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentProcessing, updated.Status)
}

func TestUpdatePayment_CompletingSetsPaidAtAndConfirms(t *testing.T) {
	f := newFixture(t)
	booking := f.mustBooking(t)
	svc := NewPaymentService(f.store)
	ctx := context.Background()

	payment, err := svc.Create(ctx, f.ownerActor(), CreatePaymentInput{
		BookingID: booking.ID,
		Amount:    70,
		Method:    "cash",
	})
	require.NoError(t, err)
	require.Nil(t, payment.PaidAt)

	completed := models.PaymentCompleted
	updated, err := svc.Update(ctx, f.adminActor(), payment.ID, UpdatePaymentInput{Status: &completed})

	require.NoError(t, err)
	require.NotNil(t, updated.PaidAt)

	stored, err := f.store.BookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
}

func TestGetPayment_ScopedByBookingOwner(t *testing.T) {
	f := newFixture(t)
	booking := f.mustBooking(t)
	svc := NewPaymentService(f.store)
	ctx := context.Background()

	payment, err := svc.Create(ctx, f.ownerActor(), CreatePaymentInput{
		BookingID: booking.ID,
		Amount:    70,
		Method:    "pix",
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, f.otherActor(), payment.ID)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 403, svcErr.Status)

	got, err := svc.Get(ctx, f.ownerActor(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)
}

func TestListPayments_ScopedAndFiltered(t *testing.T) {
	f := newFixture(t)
	booking := f.mustBooking(t)
	svc := NewPaymentService(f.store)
	ctx := context.Background()

	otherPet := models.Pet{UserID: f.other.ID, Name: "Mia", IsActive: true}
	require.NoError(t, f.store.CreatePet(ctx, &otherPet))
	otherBooking, err := NewBookingService(f.store).Create(ctx, f.otherActor(), CreateBookingInput{
		PetID: otherPet.ID, ServiceID: f.daycare.ID, Start: slot(2, 9, 0), End: slot(2, 15, 0),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, f.ownerActor(), CreatePaymentInput{BookingID: booking.ID, Amount: 70, Method: "pix"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, f.otherActor(), CreatePaymentInput{BookingID: otherBooking.ID, Amount: 70, Method: "card"})
	require.NoError(t, err)

	payments, err := svc.List(ctx, f.ownerActor(), nil)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, booking.ID, payments[0].BookingID)

	payments, err = svc.List(ctx, f.adminActor(), nil)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	payments, err = svc.List(ctx, f.adminActor(), &otherBooking.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, otherBooking.ID, payments[0].BookingID)
}
