package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stresshub/db"
	"stresshub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Booking validation failures the HTTP layer maps to client errors.
var (
	ErrBookingPast       = errors.New("booking date must be in the future")
	ErrSlotUnavailable   = errors.New("consultant is not available at the requested time")
	ErrSlotTaken         = errors.New("consultant already has a booking at the requested time")
	ErrInvalidTransition = errors.New("booking status transition not allowed")
	ErrNotBookingOwner   = errors.New("booking does not belong to the caller")
)

// defaultBookingMinutes is used when a request omits the duration.
const defaultBookingMinutes = 60

// AvailabilityCovers reports whether a weekly availability slot covers a
// session starting at start and running for durationMinutes. DayOfWeek
// on the slot runs 0=Monday through 6=Sunday.
func AvailabilityCovers(av models.Availability, start time.Time, durationMinutes int) bool {
	if !av.IsAvailable {
		return false
	}
	if int(start.Weekday()+6)%7 != av.DayOfWeek {
		return false
	}

	slotStart, err := minutesOfDay(av.StartTime)
	if err != nil {
		return false
	}
	slotEnd, err := minutesOfDay(av.EndTime)
	if err != nil {
		return false
	}

	begin := start.Hour()*60 + start.Minute()
	end := begin + durationMinutes
	return begin >= slotStart && end <= slotEnd
}

// minutesOfDay parses an "HH:MM" clock time into minutes since midnight.
func minutesOfDay(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CanTransition reports whether a booking may move from one status to
// another. Pending bookings await consultant approval; approved bookings
// can still be cancelled or marked completed. Rejected, cancelled and
// completed are terminal.
func CanTransition(from, to models.BookingStatus) bool {
	switch from {
	case models.BookingPending:
		return to == models.BookingApproved || to == models.BookingRejected || to == models.BookingCancelled
	case models.BookingApproved:
		return to == models.BookingCompleted || to == models.BookingCancelled
	default:
		return false
	}
}

// ListConsultants returns every registered consultant.
func ListConsultants(ctx context.Context) ([]models.Consultant, error) {
	cursor, err := db.GetCollection(db.ConsultantsCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch consultants: %w", err)
	}
	defer cursor.Close(ctx)

	var consultants []models.Consultant
	if err := cursor.All(ctx, &consultants); err != nil {
		return nil, fmt.Errorf("failed to decode consultants: %w", err)
	}
	return consultants, nil
}

// GetConsultant resolves a consultant by hex id.
func GetConsultant(ctx context.Context, consultantID string) (*models.Consultant, error) {
	oid, err := primitive.ObjectIDFromHex(consultantID)
	if err != nil {
		return nil, fmt.Errorf("invalid consultant id %q: %w", consultantID, err)
	}

	var consultant models.Consultant
	if err := db.GetCollection(db.ConsultantsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&consultant); err != nil {
		return nil, err
	}
	return &consultant, nil
}

// CreateConsultant registers a new consultant with their weekly slots.
func CreateConsultant(ctx context.Context, consultant models.Consultant) (*models.Consultant, error) {
	consultant.ID = primitive.NewObjectID()
	consultant.CreatedAt = time.Now()

	if _, err := db.GetCollection(db.ConsultantsCollection).InsertOne(ctx, consultant); err != nil {
		return nil, fmt.Errorf("failed to create consultant: %w", err)
	}
	return &consultant, nil
}

// UpdateConsultant replaces the mutable fields of a consultant record.
func UpdateConsultant(ctx context.Context, consultantID string, consultant models.Consultant) (*models.Consultant, error) {
	oid, err := primitive.ObjectIDFromHex(consultantID)
	if err != nil {
		return nil, fmt.Errorf("invalid consultant id %q: %w", consultantID, err)
	}

	result := db.GetCollection(db.ConsultantsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":               consultant.Name,
			"qualifications":     consultant.Qualifications,
			"registrationNumber": consultant.RegistrationNumber,
			"hospital":           consultant.Hospital,
			"specialization":     consultant.Specialization,
			"availabilities":     consultant.Availabilities,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Consultant
	if err := result.Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteConsultant removes a consultant and cancels their open bookings,
// notifying the affected employees.
func DeleteConsultant(ctx context.Context, consultantID string) error {
	consultant, err := GetConsultant(ctx, consultantID)
	if err != nil {
		return err
	}

	bookings := db.GetCollection(db.BookingsCollection)
	cursor, err := bookings.Find(ctx, bson.M{
		"consultantId": consultant.ID,
		"status":       bson.M{"$in": []models.BookingStatus{models.BookingPending, models.BookingApproved}},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch consultant bookings: %w", err)
	}
	var open []models.Booking
	if err := cursor.All(ctx, &open); err != nil {
		cursor.Close(ctx)
		return fmt.Errorf("failed to decode consultant bookings: %w", err)
	}

	now := time.Now()
	for _, booking := range open {
		_, err := bookings.UpdateOne(ctx, bson.M{"_id": booking.ID}, bson.M{"$set": bson.M{
			"status":       models.BookingCancelled,
			"statusReason": "consultant no longer available",
			"updatedAt":    now,
		}})
		if err != nil {
			continue
		}
		message := fmt.Sprintf("Your booking with %s on %s was cancelled: the consultant is no longer available",
			booking.ConsultantName, booking.BookingDate.Format("Jan 2 15:04"))
		NotifyUser(ctx, booking.EmployeeID, "booking_cancelled", message)
	}

	if _, err := db.GetCollection(db.ConsultantsCollection).DeleteOne(ctx, bson.M{"_id": consultant.ID}); err != nil {
		return fmt.Errorf("failed to delete consultant: %w", err)
	}
	return nil
}

// CreateBooking reserves a consultation slot for an employee. The booking
// must start in the future, fall inside one of the consultant's weekly
// availability slots, and not overlap another open booking with the same
// consultant. bookedByID differs from employeeID when a supervisor or HR
// manager books on the employee's behalf.
func CreateBooking(ctx context.Context, consultantID, employeeID, bookedByID string, date time.Time, durationMinutes int, notes string) (*models.Booking, error) {
	if durationMinutes <= 0 {
		durationMinutes = defaultBookingMinutes
	}

	consultant, err := GetConsultant(ctx, consultantID)
	if err != nil {
		return nil, err
	}

	if err := validateSlot(ctx, consultant, primitive.NilObjectID, date, durationMinutes); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := models.Booking{
		ID:              primitive.NewObjectID(),
		ConsultantID:    consultant.ID,
		ConsultantName:  consultant.Name,
		EmployeeID:      employeeID,
		BookedByID:      bookedByID,
		BookingDate:     date,
		DurationMinutes: durationMinutes,
		Status:          models.BookingPending,
		Notes:           notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if employee, err := LookupUser(ctx, employeeID); err == nil {
		booking.EmployeeName = employee.DisplayName
	}
	if booker, err := LookupUser(ctx, bookedByID); err == nil {
		booking.BookedByName = booker.DisplayName
	}

	if _, err := db.GetCollection(db.BookingsCollection).InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	notifyBookingCreated(ctx, booking)
	return &booking, nil
}

// validateSlot enforces the future-only, availability and conflict rules
// shared by create and reschedule. excludeID skips the booking being
// rescheduled in the conflict check.
func validateSlot(ctx context.Context, consultant *models.Consultant, excludeID primitive.ObjectID, date time.Time, durationMinutes int) error {
	if !date.After(time.Now()) {
		return ErrBookingPast
	}

	covered := false
	for _, av := range consultant.Availabilities {
		if AvailabilityCovers(av, date, durationMinutes) {
			covered = true
			break
		}
	}
	if !covered {
		return ErrSlotUnavailable
	}

	end := date.Add(time.Duration(durationMinutes) * time.Minute)
	filter := bson.M{
		"consultantId": consultant.ID,
		"status":       bson.M{"$in": []models.BookingStatus{models.BookingPending, models.BookingApproved}},
		"bookingDate":  bson.M{"$lt": end},
	}
	if excludeID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	cursor, err := db.GetCollection(db.BookingsCollection).Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check booking conflicts: %w", err)
	}
	defer cursor.Close(ctx)

	var candidates []models.Booking
	if err := cursor.All(ctx, &candidates); err != nil {
		return fmt.Errorf("failed to decode booking conflicts: %w", err)
	}
	for _, other := range candidates {
		otherEnd := other.BookingDate.Add(time.Duration(other.DurationMinutes) * time.Minute)
		if otherEnd.After(date) {
			return ErrSlotTaken
		}
	}
	return nil
}

// MyBookings returns an employee's bookings, newest session first.
func MyBookings(ctx context.Context, employeeID string) ([]models.Booking, error) {
	return findBookings(ctx, bson.M{"employeeId": employeeID})
}

// TeamBookings returns the bookings of the viewer's team members, for
// supervisors and HR managers reviewing sessions they arranged.
func TeamBookings(ctx context.Context, viewerID string, role models.Role) ([]models.Booking, error) {
	memberIDs, err := TeamMemberIDs(ctx, viewerID, role)
	if err != nil {
		return nil, err
	}
	if len(memberIDs) == 0 {
		return []models.Booking{}, nil
	}
	return findBookings(ctx, bson.M{"employeeId": bson.M{"$in": memberIDs}})
}

// ConsultantBookings returns every booking made against a consultant, for
// the psychiatrist reviewing their own schedule.
func ConsultantBookings(ctx context.Context, consultantID primitive.ObjectID) ([]models.Booking, error) {
	return findBookings(ctx, bson.M{"consultantId": consultantID})
}

func findBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	cursor, err := db.GetCollection(db.BookingsCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "bookingDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// GetBooking resolves a booking by hex id.
func GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking id %q: %w", bookingID, err)
	}

	var booking models.Booking
	if err := db.GetCollection(db.BookingsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// RescheduleBooking moves an open future booking of the caller to a new
// slot. The new slot is validated like a fresh booking and the status
// resets to pending so the consultant re-approves it.
func RescheduleBooking(ctx context.Context, bookingID, requesterID string, date time.Time, durationMinutes int) (*models.Booking, error) {
	booking, err := GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.EmployeeID != requesterID && booking.BookedByID != requesterID {
		return nil, ErrNotBookingOwner
	}
	if booking.Status != models.BookingPending && booking.Status != models.BookingApproved {
		return nil, ErrInvalidTransition
	}
	if !booking.BookingDate.After(time.Now()) {
		return nil, ErrBookingPast
	}

	if durationMinutes <= 0 {
		durationMinutes = booking.DurationMinutes
	}

	consultant, err := GetConsultant(ctx, booking.ConsultantID.Hex())
	if err != nil {
		return nil, err
	}
	if err := validateSlot(ctx, consultant, booking.ID, date, durationMinutes); err != nil {
		return nil, err
	}

	result := db.GetCollection(db.BookingsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": booking.ID},
		bson.M{"$set": bson.M{
			"bookingDate":     date,
			"durationMinutes": durationMinutes,
			"status":          models.BookingPending,
			"statusReason":    "",
			"updatedAt":       time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Booking
	if err := result.Decode(&updated); err != nil {
		return nil, err
	}
	notifyBookingCreated(ctx, updated)
	return &updated, nil
}

// CancelBooking lets the employee or the booker cancel an open future
// booking, notifying the consultant's psychiatrist account.
func CancelBooking(ctx context.Context, bookingID, requesterID string) (*models.Booking, error) {
	booking, err := GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.EmployeeID != requesterID && booking.BookedByID != requesterID {
		return nil, ErrNotBookingOwner
	}
	if !CanTransition(booking.Status, models.BookingCancelled) {
		return nil, ErrInvalidTransition
	}
	if !booking.BookingDate.After(time.Now()) {
		return nil, ErrBookingPast
	}

	return setBookingStatus(ctx, booking, models.BookingCancelled, "cancelled by "+requesterID)
}

// UpdateBookingStatus applies a consultant-side status change: approval,
// rejection, or completion.
func UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus, reason string) (*models.Booking, error) {
	booking, err := GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(booking.Status, status) {
		return nil, ErrInvalidTransition
	}
	return setBookingStatus(ctx, booking, status, reason)
}

func setBookingStatus(ctx context.Context, booking *models.Booking, status models.BookingStatus, reason string) (*models.Booking, error) {
	result := db.GetCollection(db.BookingsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": booking.ID},
		bson.M{"$set": bson.M{
			"status":       status,
			"statusReason": reason,
			"updatedAt":    time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Booking
	if err := result.Decode(&updated); err != nil {
		return nil, err
	}
	notifyBookingStatus(ctx, updated)
	return &updated, nil
}

// notifyBookingCreated informs the consultant's psychiatrist account of a
// new or rescheduled request, and the employee when someone else booked
// for them. Notification failures never fail the booking.
func notifyBookingCreated(ctx context.Context, booking models.Booking) {
	when := booking.BookingDate.Format("Jan 2 15:04")
	if psychiatrist, err := findPsychiatristByName(ctx, booking.ConsultantName); err == nil {
		message := fmt.Sprintf("New booking request from %s for %s", booking.EmployeeName, when)
		NotifyUser(ctx, psychiatrist.ID.Hex(), "booking_created", message)
	}
	if booking.BookedByID != booking.EmployeeID {
		message := fmt.Sprintf("%s booked a consultation with %s for you on %s", booking.BookedByName, booking.ConsultantName, when)
		NotifyUser(ctx, booking.EmployeeID, "booking_created", message)
	}
}

// notifyBookingStatus tells the employee (and the booker, when different)
// about approval, rejection, cancellation or completion.
func notifyBookingStatus(ctx context.Context, booking models.Booking) {
	when := booking.BookingDate.Format("Jan 2 15:04")
	message := fmt.Sprintf("Your booking with %s on %s is now %s", booking.ConsultantName, when, booking.Status)
	if booking.StatusReason != "" {
		message += ": " + booking.StatusReason
	}

	notificationType := "booking_" + string(booking.Status)
	NotifyUser(ctx, booking.EmployeeID, notificationType, message)
	if booking.BookedByID != booking.EmployeeID {
		NotifyUser(ctx, booking.BookedByID, notificationType, message)
	}
	if booking.Status == models.BookingCancelled {
		if psychiatrist, err := findPsychiatristByName(ctx, booking.ConsultantName); err == nil {
			NotifyUser(ctx, psychiatrist.ID.Hex(), notificationType,
				fmt.Sprintf("Booking with %s on %s was cancelled", booking.EmployeeName, when))
		}
	}
}

// findPsychiatristByName matches a consultant record to the psychiatrist
// user account sharing its display name. Consultant records carry no user
// id, so the name is the only link.
func findPsychiatristByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	err := db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{
		"displayName": name,
		"role":        models.RolePsychiatrist,
	}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ConsultantForPsychiatrist resolves the consultant record backing a
// psychiatrist user, matched by display name.
func ConsultantForPsychiatrist(ctx context.Context, userID string) (*models.Consultant, error) {
	user, err := LookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var consultant models.Consultant
	err = db.GetCollection(db.ConsultantsCollection).FindOne(ctx, bson.M{"name": user.DisplayName}).Decode(&consultant)
	if err != nil {
		return nil, err
	}
	return &consultant, nil
}
