package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeKeyNameEmpty          = "KEY_NAME_EMPTY"
	CodeKeyOwnerEmpty         = "KEY_OWNER_EMPTY"
	CodeKeyInvalidValueType   = "KEY_INVALID_VALUE_TYPE"
	CodeKeyInvalidScope       = "KEY_INVALID_SCOPE"
	CodeKeySubScopeGlobal     = "KEY_SUB_SCOPE_ON_GLOBAL_KEY"
	CodeKeyNotShareable       = "KEY_NOT_SHAREABLE"
	CodeKeyValueTypeImmutable = "KEY_VALUE_TYPE_IMMUTABLE"

	CodeSessionEmptyCampaignID = "SESSION_EMPTY_CAMPAIGN_ID"

	CodeEventEmptySessionID        = "EVENT_EMPTY_SESSION_ID"
	CodeEventEmptyKeyID            = "EVENT_EMPTY_KEY_ID"
	CodeEventUnknownVerb           = "EVENT_UNKNOWN_VERB"
	CodeEventVerbNotAllowed        = "EVENT_VERB_NOT_ALLOWED_FOR_TYPE"
	CodeEventMalformedPayload      = "EVENT_MALFORMED_PAYLOAD"
	CodeEventEmptyValue            = "EVENT_EMPTY_VALUE"
	CodeEventEmptyValues           = "EVENT_EMPTY_VALUES"
	CodeEventEmptyItems            = "EVENT_EMPTY_ITEMS"
	CodeEventEmptyItemName         = "EVENT_EMPTY_ITEM_NAME"
	CodeEventInvalidQuantity       = "EVENT_INVALID_QUANTITY"
	CodeEventSubScopeWithoutPlayer = "EVENT_SUB_SCOPE_WITHOUT_PLAYER"
	CodeEventPlayerRequired        = "EVENT_PLAYER_REQUIRED"
	CodeEventPlayerOnGlobalKey     = "EVENT_PLAYER_ON_GLOBAL_KEY"
	CodeEventSessionMismatch       = "EVENT_SESSION_MISMATCH"

	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[string]string{
		// Key errors
		CodeKeyNameEmpty:          "Key name cannot be empty",
		CodeKeyOwnerEmpty:         "Key owner is required",
		CodeKeyInvalidValueType:   "Invalid key value type specified",
		CodeKeyInvalidScope:       "Invalid key scope specified",
		CodeKeySubScopeGlobal:     "Only player-scoped keys can be scoped to a custom field",
		CodeKeyNotShareable:       "This key is not shared by its owner",
		CodeKeyValueTypeImmutable: "The value type of a key cannot change after creation",

		// Session errors
		CodeSessionEmptyCampaignID: "Campaign ID is required for session",

		// Ledger event errors
		CodeEventEmptySessionID:        "Session ID is required for ledger event",
		CodeEventEmptyKeyID:            "Key ID is required for ledger event",
		CodeEventUnknownVerb:           "Unknown verb: {{.Verb}}",
		CodeEventVerbNotAllowed:        "Verb {{.Verb}} is not allowed for {{.ValueType}} keys",
		CodeEventMalformedPayload:      "Event payload is malformed",
		CodeEventEmptyValue:            "A non-empty value is required",
		CodeEventEmptyValues:           "At least one value is required",
		CodeEventEmptyItems:            "At least one item is required",
		CodeEventEmptyItemName:         "Item name cannot be empty",
		CodeEventInvalidQuantity:       "Item quantity must be at least 1",
		CodeEventSubScopeWithoutPlayer: "A sub-scope requires a player scope",
		CodeEventPlayerRequired:        "A player is required for player-scoped keys",
		CodeEventPlayerOnGlobalKey:     "Global keys cannot be scoped to a player",
		CodeEventSessionMismatch:       "Session does not belong to the campaign",

		// Storage errors
		CodeNotFound:      "The requested resource was not found",
		CodeAlreadyExists: "The resource already exists",
	},
}
