package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/payroll-tracker/internal/model"
)

func TestParseError_Format(t *testing.T) {
	err := model.NewParseError(model.KindMissingStamp, "TimbreFiscalDigital", "digital stamp node not found", nil)
	assert.Equal(t, "[missing_fiscal_stamp] TimbreFiscalDigital: digital stamp node not found", err.Error())
}

func TestParseError_FormatWithCause(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := model.NewParseError(model.KindMalformedXML, "document", "not well-formed XML", cause)

	assert.Contains(t, err.Error(), "malformed_xml")
	assert.Contains(t, err.Error(), "unexpected EOF")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestParseError_ErrorsAs(t *testing.T) {
	var wrapped error = fmt.Errorf("processing file a.xml: %w",
		model.NewParseError(model.KindInvalidDate, "FechaInicialPago", "bad date", nil))

	var parseErr *model.ParseError
	require.ErrorAs(t, wrapped, &parseErr)
	assert.Equal(t, model.KindInvalidDate, parseErr.Kind)
}

func TestValidationError_Format(t *testing.T) {
	err := model.NewValidationError("fiscal_folio", "abc", "unique", "already imported")
	assert.Contains(t, err.Error(), "fiscal_folio")
	assert.Contains(t, err.Error(), "rule=unique")

	err = model.NewValidationError("category_id", nil, "required", "category is required")
	assert.Contains(t, err.Error(), "rule=required")
}
