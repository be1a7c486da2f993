package structs

// CreateProductRequest is the body of POST /products. The snake_case aliases
// accept the column names reads return; read-only columns such as id and
// seller are unknown fields and rejected.
type CreateProductRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  *string `json:"description"`
	PricePence   *int64  `json:"pricePence" validate:"required,gte=0"`
	RequireAge18 *bool   `json:"requireAge18"`
	RequireUK    *bool   `json:"requireUk"`

	PricePenceAlias   *int64 `json:"price_pence,omitempty" validate:"-"`
	RequireAge18Alias *bool  `json:"require_age18,omitempty" validate:"-"`
	RequireUKAlias    *bool  `json:"require_uk,omitempty" validate:"-"`
}

func (r *CreateProductRequest) Normalize() {
	if r.PricePence == nil {
		r.PricePence = r.PricePenceAlias
	}
	if r.RequireAge18 == nil {
		r.RequireAge18 = r.RequireAge18Alias
	}
	if r.RequireUK == nil {
		r.RequireUK = r.RequireUKAlias
	}
}

// UpdateProductRequest is a partial patch; nil fields keep their stored value.
type UpdateProductRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1"`
	Description  *string `json:"description"`
	PricePence   *int64  `json:"pricePence" validate:"omitempty,gte=0"`
	RequireAge18 *bool   `json:"requireAge18"`
	RequireUK    *bool   `json:"requireUk"`

	PricePenceAlias   *int64 `json:"price_pence,omitempty" validate:"-"`
	RequireAge18Alias *bool  `json:"require_age18,omitempty" validate:"-"`
	RequireUKAlias    *bool  `json:"require_uk,omitempty" validate:"-"`
}

func (r *UpdateProductRequest) Normalize() {
	if r.PricePence == nil {
		r.PricePence = r.PricePenceAlias
	}
	if r.RequireAge18 == nil {
		r.RequireAge18 = r.RequireAge18Alias
	}
	if r.RequireUK == nil {
		r.RequireUK = r.RequireUKAlias
	}
}

// Empty reports whether the patch changes nothing.
func (r *UpdateProductRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.PricePence == nil &&
		r.RequireAge18 == nil && r.RequireUK == nil
}
