// Package idp holds the domain knowledge of the external identity provider
// entity: its field names, the provider type modes and the pre-populated
// OAuth 2.0 device flow endpoint templates.
package idp

// Entity is the registered name of the identity provider entity.
const Entity = "idp"

// Field names of the identity provider entity.
const (
	FieldName          = "cn"
	FieldDescription   = "description"
	FieldType          = "type"
	FieldProvider      = "ipaidpprovider"
	FieldClientID      = "ipaidpclientid"
	FieldClientSecret  = "ipaidpclientsecret"
	FieldSecretVerify  = "secret_verify"
	FieldAuthEndpoint  = "ipaidpauthendpoint"
	FieldTokenEndpoint = "ipaidptokenendpoint"
	FieldScope         = "ipaidpscope"
	FieldSubject       = "ipaidpsub"
)

// Provider type modes selected by FieldType.
const (
	ModeTemplate = "template"
	ModeCustom   = "custom"
)
