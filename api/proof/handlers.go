package proof

import (
	"net/http"

	"github.com/Arihaan/ZKShop/handling"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
)

func (prm *ProofRoutesManager) GetAge18Statement(w http.ResponseWriter, r *http.Request) {
	handling.Respond(w, r, http.StatusOK, structs.StatementResponse{Statement: prm.proofService.Age18Statement()})
}

func (prm *ProofRoutesManager) GetUKStatement(w http.ResponseWriter, r *http.Request) {
	handling.Respond(w, r, http.StatusOK, structs.StatementResponse{Statement: prm.proofService.UKStatement()})
}

func (prm *ProofRoutesManager) GetChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := prm.proofService.Challenge()
	if err != nil {
		handling.HandleError(err, "failed to generate challenge", prm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, structs.ChallengeResponse{Challenge: challenge})
}

// Verify handles POST /proof/verify through the configured verifier.
func (prm *ProofRoutesManager) Verify(w http.ResponseWriter, r *http.Request) {
	req, err := lib.ExtractAndValidateBody[structs.VerifyRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid presentation", prm.logger, w, r)
		return
	}

	verified, err := prm.proofService.Verify(r.Context(), req.Statement, req.Presentation)
	if err != nil {
		handling.HandleError(err, "verification failed", prm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, structs.VerifyResponse{Verified: verified})
}
