package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Key errors
	CodeKeyNameEmpty          Code = "KEY_NAME_EMPTY"
	CodeKeyOwnerEmpty         Code = "KEY_OWNER_EMPTY"
	CodeKeyInvalidValueType   Code = "KEY_INVALID_VALUE_TYPE"
	CodeKeyInvalidScope       Code = "KEY_INVALID_SCOPE"
	CodeKeySubScopeGlobal     Code = "KEY_SUB_SCOPE_ON_GLOBAL_KEY"
	CodeKeyNotShareable       Code = "KEY_NOT_SHAREABLE"
	CodeKeyValueTypeImmutable Code = "KEY_VALUE_TYPE_IMMUTABLE"

	// Session errors
	CodeSessionEmptyCampaignID Code = "SESSION_EMPTY_CAMPAIGN_ID"

	// Ledger event errors
	CodeEventEmptySessionID        Code = "EVENT_EMPTY_SESSION_ID"
	CodeEventEmptyKeyID            Code = "EVENT_EMPTY_KEY_ID"
	CodeEventUnknownVerb           Code = "EVENT_UNKNOWN_VERB"
	CodeEventVerbNotAllowed        Code = "EVENT_VERB_NOT_ALLOWED_FOR_TYPE"
	CodeEventMalformedPayload      Code = "EVENT_MALFORMED_PAYLOAD"
	CodeEventEmptyValue            Code = "EVENT_EMPTY_VALUE"
	CodeEventEmptyValues           Code = "EVENT_EMPTY_VALUES"
	CodeEventEmptyItems            Code = "EVENT_EMPTY_ITEMS"
	CodeEventEmptyItemName         Code = "EVENT_EMPTY_ITEM_NAME"
	CodeEventInvalidQuantity       Code = "EVENT_INVALID_QUANTITY"
	CodeEventSubScopeWithoutPlayer Code = "EVENT_SUB_SCOPE_WITHOUT_PLAYER"
	CodeEventPlayerRequired        Code = "EVENT_PLAYER_REQUIRED"
	CodeEventPlayerOnGlobalKey     Code = "EVENT_PLAYER_ON_GLOBAL_KEY"
	CodeEventSessionMismatch       Code = "EVENT_SESSION_MISMATCH"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeKeyNameEmpty,
		CodeKeyOwnerEmpty,
		CodeKeyInvalidValueType,
		CodeKeyInvalidScope,
		CodeKeySubScopeGlobal,
		CodeSessionEmptyCampaignID,
		CodeEventEmptySessionID,
		CodeEventEmptyKeyID,
		CodeEventUnknownVerb,
		CodeEventVerbNotAllowed,
		CodeEventMalformedPayload,
		CodeEventEmptyValue,
		CodeEventEmptyValues,
		CodeEventEmptyItems,
		CodeEventEmptyItemName,
		CodeEventInvalidQuantity,
		CodeEventSubScopeWithoutPlayer,
		CodeEventPlayerRequired,
		CodeEventPlayerOnGlobalKey,
		CodeEventSessionMismatch:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeKeyNotShareable,
		CodeKeyValueTypeImmutable,
		CodeAlreadyExists:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
