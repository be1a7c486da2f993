package lib_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAndValidateBody(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantField string
	}{
		{name: "valid", body: `{"title":"Widget","pricePence":500}`},
		{name: "snake case price", body: `{"title":"Widget","price_pence":500}`},
		{name: "missing title", body: `{"pricePence":500}`, wantErr: true, wantField: "title"},
		{name: "missing price", body: `{"title":"Widget"}`, wantErr: true, wantField: "pricePence"},
		{name: "negative price", body: `{"title":"Widget","pricePence":-1}`, wantErr: true, wantField: "pricePence"},
		{name: "string price", body: `{"title":"Widget","pricePence":"500"}`, wantErr: true, wantField: "body"},
		{name: "fractional price", body: `{"title":"Widget","pricePence":5.5}`, wantErr: true, wantField: "body"},
		{name: "unknown field", body: `{"title":"Widget","pricePence":1,"colour":"red"}`, wantErr: true, wantField: "body"},
		{name: "empty body", body: ``, wantErr: true, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/products", strings.NewReader(tt.body))
			body, err := lib.ExtractAndValidateBody[structs.CreateProductRequest](r)
			if !tt.wantErr {
				require.NoError(t, err)
				require.NotNil(t, body.PricePence)
				assert.Equal(t, int64(500), *body.PricePence)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, lib.ErrValidation)
			var ve *lib.ValidationError
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve.Errors)
			assert.Equal(t, tt.wantField, ve.Errors[0].Field)
		})
	}
}

func TestPurchaseAmountLiteral(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{raw: `12.5`, want: "12.5", wantOK: true},
		{raw: `5`, want: "5", wantOK: true},
		{raw: `1e2`, want: "1e2", wantOK: true},
		{raw: `"12.5"`},
		{raw: `null`},
		{raw: `true`},
		{raw: `[1]`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := structs.PurchaseRequest{AmountDecimal: []byte(tt.raw)}
			got, ok := req.AmountLiteral()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
