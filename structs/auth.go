package structs

import (
	"time"

	"github.com/google/uuid"
)

type AdminClaims struct {
	Sub string    `json:"sub"`
	Iat time.Time `json:"iat"`
	Exp time.Time `json:"exp"`
	Jti uuid.UUID `json:"jti"`
}
