// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/zmhindex/internal/platform/builderr"
	"github.com/taibuivan/zmhindex/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "outDir", "dist", false},
		{"empty_string", "outDir", "", true},
		{"whitespace_only", "outDir", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.Error(t, err)

				be := builderr.As(err)
				require.NotNil(t, be)
				assert.Equal(t, "VALIDATION_ERROR", be.Code)
				assert.Equal(t, tt.field, be.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.NoError(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Range checks the inclusive bounds-checking rule.
*/
func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		isValid bool
	}{
		{"below_min", 0, false},
		{"at_min", 1, true},
		{"in_range", 512, true},
		{"at_max", 65535, true},
		{"above_max", 70000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Range("indexShardCount", tt.value, 1, 65535)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_OneOf checks membership against an allowed set.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("catalogKind", "sqlite", "sqlite", "postgres")
	assert.False(t, v.HasErrors())

	v2 := &validate.Validator{}
	v2.OneOf("catalogKind", "mysql", "sqlite", "postgres")
	assert.True(t, v2.HasErrors())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("outDir", "dist").
		Range("indexShardCount", 8, 1, 65535).
		OneOf("catalogKind", "sqlite", "sqlite", "postgres").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("outDir", "").                      // fails
		Range("indexShardCount", 0, 1, 65535).        // fails
		OneOf("catalogKind", "mysql", "sqlite", "postgres"). // fails
		Err()

	require.Error(t, err)
	be := builderr.As(err)
	require.NotNil(t, be)

	assert.Len(t, be.Details, 3)
}
