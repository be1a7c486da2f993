package structs

import "encoding/json"

type IdQualifier struct {
	Type    string `json:"type"`
	Issuers []int  `json:"issuers"`
}

// AtomicStatement is one attribute predicate. Range statements set
// Lower/Upper, membership statements set Set.
type AtomicStatement struct {
	Type         string   `json:"type"`
	AttributeTag string   `json:"attributeTag"`
	Lower        string   `json:"lower,omitempty"`
	Upper        string   `json:"upper,omitempty"`
	Set          []string `json:"set,omitempty"`
}

type QualifiedStatement struct {
	IdQualifier IdQualifier       `json:"idQualifier"`
	Statement   []AtomicStatement `json:"statement"`
}

type StatementResponse struct {
	Statement any `json:"statement"`
}

type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}

type VerifyRequest struct {
	Statement    json.RawMessage `json:"statement" validate:"required"`
	Presentation json.RawMessage `json:"presentation" validate:"required"`
}

type VerifyResponse struct {
	Verified bool `json:"verified"`
}
