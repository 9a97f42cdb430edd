package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom rules registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// Variant keys come in either the nested or the legacy flat shape;
	// struct-level validation on every cart request ensures at least one
	// is present.
	v.RegisterStructValidation(cartVariantStructValidation,
		AddCartItemRequest{},
		UpdateCartQuantityRequest{},
		RemoveCartItemRequest{},
	)

	return v
}

func cartVariantStructValidation(sl validatorv10.StructLevel) {
	var variant VariantRequest
	var legacyColor, legacySize string

	switch req := sl.Current().Interface().(type) {
	case AddCartItemRequest:
		variant, legacyColor, legacySize = req.Variant, req.Color, req.Size
	case UpdateCartQuantityRequest:
		variant, legacyColor, legacySize = req.Variant, req.Color, req.Size
	case RemoveCartItemRequest:
		variant, legacyColor, legacySize = req.Variant, req.Color, req.Size
	}

	color := variant.Color
	if color == "" {
		color = legacyColor
	}
	size := variant.Size
	if size == "" {
		size = legacySize
	}

	if color == "" {
		sl.ReportError(variant.Color, "variant.color", "Color", "variant_required", "")
	}
	if size == "" {
		sl.ReportError(variant.Size, "variant.size", "Size", "variant_required", "")
	}
}
