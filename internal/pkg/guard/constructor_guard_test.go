package guard_test

import (
	"errors"
	"testing"

	"production/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := g.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard should be
// used in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Quantity struct {
		amount int
		unit   string
		guard  guard.ConstructorGuard
	}

	var errQuantityNotConstructed = errors.New("Quantity must be created via NewQuantity")

	newQuantity := func(amount int, unit string) (Quantity, error) {
		if amount <= 0 {
			return Quantity{}, errors.New("amount must be positive")
		}
		if unit == "" {
			return Quantity{}, errors.New("unit is required")
		}
		return Quantity{amount: amount, unit: unit, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		q, err := newQuantity(10, "pcs")
		require.NoError(t, err)
		require.NoError(t, q.guard.Validate(errQuantityNotConstructed))
		assert.Equal(t, 10, q.amount)
		assert.Equal(t, "pcs", q.unit)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		var q Quantity
		err := q.guard.Validate(errQuantityNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errQuantityNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newQuantity(-10, "pcs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount must be positive")

		_, err = newQuantity(10, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unit is required")
	})
}

// TestConstructorGuardImmutability verifies that ConstructorGuard can be
// safely copied by value without losing its constructed state.
func TestConstructorGuardImmutability(t *testing.T) {
	g := guard.NewConstructorGuard()
	testError := errors.New("test error")

	guardCopy := g

	require.NoError(t, g.Validate(testError))
	require.NoError(t, guardCopy.Validate(testError))
}
