package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	NotAuthenticated    failure.ErrorCode = "NotAuthenticated"
	CredentialsMismatch failure.ErrorCode = "CredentialsMismatch"
	BackendUnavailable  failure.ErrorCode = "BackendUnavailable"
	DecodeError         failure.ErrorCode = "DecodeError"

	// Offers and the negotiation workflow.
	OfferNotFound        failure.ErrorCode = "OfferNotFound"
	OfferClosed          failure.ErrorCode = "OfferClosed"
	InvalidOfferID       failure.ErrorCode = "InvalidOfferID"
	InvalidOfferStatus   failure.ErrorCode = "InvalidOfferStatus"
	InvalidAmount        failure.ErrorCode = "InvalidAmount"
	InvalidEquity        failure.ErrorCode = "InvalidEquity"
	NegotiationStep      failure.ErrorCode = "NegotiationStepFailed"
	TransactionNotFound  failure.ErrorCode = "TransactionNotFound"
	InvalidTransaction   failure.ErrorCode = "InvalidTransaction"
	MessageDeliveryError failure.ErrorCode = "MessageDeliveryError"

	// Simulated payment capture.
	InvalidCardNumber    failure.ErrorCode = "InvalidCardNumber"
	InvalidCVV           failure.ErrorCode = "InvalidCVV"
	InvalidExpiry        failure.ErrorCode = "InvalidExpiry"
	CardExpired          failure.ErrorCode = "CardExpired"
	InvalidUPIID         failure.ErrorCode = "InvalidUPIID"
	MissingPaymentProof  failure.ErrorCode = "MissingPaymentProof"
	InvalidPaymentProof  failure.ErrorCode = "InvalidPaymentProof"
	InvalidAccountHolder failure.ErrorCode = "InvalidAccountHolder"
	InvalidAccountNumber failure.ErrorCode = "InvalidAccountNumber"
	InvalidIFSC          failure.ErrorCode = "InvalidIFSC"
	InvalidBankName      failure.ErrorCode = "InvalidBankName"
	UnknownPaymentMethod failure.ErrorCode = "UnknownPaymentMethod"

	// Profiles and accounts.
	UserNotFound     failure.ErrorCode = "UserNotFound"
	ProfileNotFound  failure.ErrorCode = "ProfileNotFound"
	InvalidUserRole  failure.ErrorCode = "InvalidUserRole"
	InvalidUserID    failure.ErrorCode = "InvalidUserID"
	PitchDeckTooBig  failure.ErrorCode = "PitchDeckTooBig"
	PitchDeckOwnerID failure.ErrorCode = "PitchDeckOwnerMismatch"
)
