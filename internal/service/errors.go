package service

import (
	"errors"

	"hopeplates/internal/statemachine"
)

var (
	// ErrInvalidDonorID is returned when donor ID is empty.
	ErrInvalidDonorID = errors.New("invalid donor id")

	// ErrInvalidNGOID is returned when NGO ID is empty.
	ErrInvalidNGOID = errors.New("invalid ngo id")

	// ErrInvalidMatchID is returned when match ID is empty.
	ErrInvalidMatchID = errors.New("invalid match id")

	// ErrInvalidLocation is returned when location coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidNGOProfile is returned when capacity or service radius is negative.
	ErrInvalidNGOProfile = errors.New("invalid ngo profile")

	// ErrInvalidPeopleServed is returned when a delivery reports a negative head count.
	ErrInvalidPeopleServed = errors.New("invalid people served")

	// ErrInvalidTransition is returned when a lifecycle action is out of order.
	ErrInvalidTransition = statemachine.ErrInvalidTransition

	// ErrDonationAlreadyClaimed is returned when another NGO already accepted the donation.
	ErrDonationAlreadyClaimed = errors.New("donation already claimed by another ngo")

	// ErrStateBusy is returned when the state lock could not be acquired in time.
	ErrStateBusy = errors.New("state is locked by another request")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserAlreadyExists is returned when registering a taken email.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidRole is returned when role is not donor or ngo.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidEmail is returned when email is empty.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidPassword is returned when password is empty.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidToken is returned when a bearer token cannot be verified.
	ErrInvalidToken = errors.New("invalid token")
)
