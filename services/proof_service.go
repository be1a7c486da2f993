package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/MonkyMars/gecho"
)

const (
	statementAttributeInRange = "AttributeInRange"
	statementAttributeInSet   = "AttributeInSet"
	dobLowerBound             = "18000101"
	challengeBytes            = 32
)

// Credential issuers accepted for the age statement.
var ageIssuers = []int{0, 1, 2, 3, 4, 5}

// Verifier checks a wallet presentation against the statement it answers.
type Verifier interface {
	Verify(ctx context.Context, statement, presentation json.RawMessage) (bool, error)
}

// AcceptAllVerifier verifies nothing and accepts every presentation.
type AcceptAllVerifier struct {
	logger *gecho.Logger
}

func NewAcceptAllVerifier(logger *gecho.Logger) *AcceptAllVerifier {
	return &AcceptAllVerifier{logger: logger}
}

func (v *AcceptAllVerifier) Verify(ctx context.Context, statement, presentation json.RawMessage) (bool, error) {
	v.logger.Warn("Presentation accepted without verification",
		gecho.Field("statement_bytes", len(statement)),
		gecho.Field("presentation_bytes", len(presentation)),
	)
	return true, nil
}

// ProofService hands out the eligibility statements the storefront asks
// wallets to prove.
type ProofService struct {
	logger   *gecho.Logger
	verifier Verifier
	now      func() time.Time
}

func NewProofService(logger *gecho.Logger, verifier Verifier) *ProofService {
	return &ProofService{
		logger:   logger,
		verifier: verifier,
		now:      time.Now,
	}
}

// Age18Statement requires a date of birth at least 18 years and one day
// before today.
func (ps *ProofService) Age18Statement() []structs.QualifiedStatement {
	upper := ps.now().AddDate(-18, 0, -1).Format("20060102")

	return []structs.QualifiedStatement{{
		IdQualifier: structs.IdQualifier{Type: "cred", Issuers: ageIssuers},
		Statement: []structs.AtomicStatement{{
			Type:         statementAttributeInRange,
			AttributeTag: "dob",
			Lower:        dobLowerBound,
			Upper:        upper,
		}},
	}}
}

// UKStatement requires British nationality. "uk" is accepted alongside the
// ISO code for demo identities.
func (ps *ProofService) UKStatement() []structs.AtomicStatement {
	return []structs.AtomicStatement{{
		Type:         statementAttributeInSet,
		AttributeTag: "nationality",
		Set:          []string{"GB", "uk"},
	}}
}

// Challenge returns 32 random bytes as hex.
func (ps *ProofService) Challenge() (string, error) {
	return lib.GenerateRandomHex(challengeBytes)
}

func (ps *ProofService) Verify(ctx context.Context, statement, presentation json.RawMessage) (bool, error) {
	ok, err := ps.verifier.Verify(ctx, statement, presentation)
	if err != nil {
		ps.logger.Error("Presentation verification failed", gecho.Field("error", err))
		return false, err
	}
	return ok, nil
}
