package order

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Type categorizes how an order is fulfilled. It is fixed at creation and
// determines whether a supplier reference is required.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown Type = iota

	// TypeInternal is an in-house production order; no supplier involved.
	TypeInternal

	// TypeExternal is a subcontracted manufacturing order placed with a supplier.
	TypeExternal

	// TypeGlass is a glass order placed with a glass supplier; line items
	// carry a glass type and combination instead of free-text notes.
	TypeGlass
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:  "unknown",
		TypeInternal: "internal",
		TypeExternal: "external",
		TypeGlass:    "glass",
	}
}

func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		TypeInternal: "internal",
		TypeExternal: "external",
		TypeGlass:    "glass",
	}
}

// TypeFromString parses an order type name as it appears on the wire and in
// the database.
func TypeFromString(s string) (Type, error) {
	for t, str := range getValidTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not a valid order type", s))
}

// Validate checks if the Type value is one of the three valid order types.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// RequiresSupplier reports whether orders of this type must reference a
// supplier. External and glass orders are placed with a supplier; internal
// production is not.
func (t Type) RequiresSupplier() bool {
	return t == TypeExternal || t == TypeGlass
}

// String returns the wire name of the order type.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
